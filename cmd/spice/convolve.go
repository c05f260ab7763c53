package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wbrown/spice"
	"github.com/wbrown/spice/convolve"
	"github.com/wbrown/spice/function"
	"github.com/wbrown/spice/imageutil"
	"github.com/wbrown/spice/internal/config"
)

var convolveCmd = &cobra.Command{
	Use:   "convolve",
	Short: "Convolve an image with a custom kernel",
	Long: `Convolve an image with a kernel given as rows separated by ';' and
values separated by ',' or spaces, for example

  spice convolve -i in.png -o out.png -k "0,-1,0; -1,5,-1; 0,-1,0"

The kernel may also be read from a single channel image with --kernel-image.`,
	RunE: runConvolve,
}

func init() {
	convolveCmd.Flags().StringP("input", "i", "", "Input image file")
	convolveCmd.Flags().StringP("output", "o", "", "Output image file")
	convolveCmd.Flags().StringP("kernel", "k", "", "Kernel rows, e.g. \"1,2,1;2,4,2;1,2,1\"")
	convolveCmd.Flags().String("kernel-image", "", "Image file holding the kernel")
	convolveCmd.Flags().Bool("normalize", false, "Scale the kernel to sum to one")
	convolveCmd.Flags().StringP("method", "m", "", "Convolution method: spatial, separable, frequency, opencv (default from config)")
	convolveCmd.MarkFlagRequired("input")
	convolveCmd.MarkFlagRequired("output")
	convolveCmd.MarkFlagsMutuallyExclusive("kernel", "kernel-image")
	convolveCmd.MarkFlagsOneRequired("kernel", "kernel-image")
	rootCmd.AddCommand(convolveCmd)
}

func runConvolve(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	kernelText, _ := cmd.Flags().GetString("kernel")
	kernelPath, _ := cmd.Flags().GetString("kernel-image")
	normalize, _ := cmd.Flags().GetBool("normalize")

	var kernel *spice.Image[float32]
	var err error
	if kernelPath != "" {
		kernel, err = imageutil.Load[float32](kernelPath)
	} else {
		kernel, err = parseKernel(kernelText)
	}
	if err != nil {
		return fmt.Errorf("kernel: %w", err)
	}
	if normalize {
		if err := function.Normalize(kernel); err != nil {
			return err
		}
	}

	img, err := imageutil.Load[float32](inputPath)
	if err != nil {
		return err
	}
	cv, err := newConvolver(settings)
	if err != nil {
		return err
	}

	var out *spice.Image[float32]
	switch settings.Method {
	case config.MethodSeparable:
		if !convolve.IsSeparable(kernel, 1e-6) {
			slog.Warn("kernel is not separable, falling back to spatial convolution")
			out, err = cv.Spatial(img, kernel)
		} else {
			out, err = cv.Separable2D(img, kernel)
		}
	case config.MethodFrequency:
		out, err = cv.Frequency(img, kernel)
	default:
		out, err = cv.Spatial(img, kernel)
	}
	if err != nil {
		return fmt.Errorf("convolve: %w", err)
	}
	slog.Info("convolved", "input", inputPath, "kernel", kernel, "method", settings.Method)
	return save(outputPath, out)
}

// parseKernel parses rows separated by ';' of values separated by ',' or
// whitespace into a single channel kernel.
func parseKernel(text string) (*spice.Image[float32], error) {
	var values []float32
	width, height := -1, 0
	for _, row := range strings.Split(text, ";") {
		fields := strings.FieldsFunc(row, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n'
		})
		if len(fields) == 0 {
			continue
		}
		if width >= 0 && len(fields) != width {
			return nil, fmt.Errorf("row %d has %d values, want %d", height+1, len(fields), width)
		}
		width = len(fields)
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 32)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", height+1, err)
			}
			values = append(values, float32(v))
		}
		height++
	}
	if height == 0 {
		return nil, errors.New("empty kernel")
	}
	return spice.FromSamples(values, width, height, 1)
}
