package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/wbrown/spice"
	"github.com/wbrown/spice/function"
	"github.com/wbrown/spice/imageutil"
	"github.com/wbrown/spice/internal/config"
)

var blurCmd = &cobra.Command{
	Use:   "blur",
	Short: "Gaussian blur an image",
	RunE:  runBlur,
}

func init() {
	blurCmd.Flags().StringP("input", "i", "", "Input image file")
	blurCmd.Flags().StringP("output", "o", "", "Output image file")
	blurCmd.Flags().Float64P("sigma", "s", 2, "Gaussian standard deviation in pixels")
	blurCmd.Flags().StringP("method", "m", "", "Convolution method: spatial, separable, frequency, opencv (default from config)")
	blurCmd.MarkFlagRequired("input")
	blurCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(blurCmd)
}

func runBlur(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")

	img, err := imageutil.Load[float32](inputPath)
	if err != nil {
		return err
	}
	cv, err := newConvolver(settings)
	if err != nil {
		return err
	}

	start := time.Now()
	var out *spice.Image[float32]
	switch settings.Method {
	case config.MethodSeparable, config.MethodOpenCV:
		var h *spice.Image[float32]
		if h, err = function.GaussianKernel1D[float32](settings.Sigma); err == nil {
			out, err = cv.Separable(img, h, function.Transpose(h))
		}
	default:
		var k *spice.Image[float32]
		if k, err = function.GaussianKernel2D[float32](settings.Sigma); err != nil {
			break
		}
		if settings.Method == config.MethodFrequency {
			out, err = cv.Frequency(img, k)
		} else {
			out, err = cv.Spatial(img, k)
		}
	}
	if err != nil {
		return fmt.Errorf("blur: %w", err)
	}
	slog.Info("blurred", "input", inputPath, "size", fmt.Sprintf("%dx%d", img.Width(), img.Height()),
		"sigma", settings.Sigma, "method", settings.Method, "elapsed", time.Since(start))

	return save(outputPath, out)
}

// save writes img in the configured sample format.
func save(path string, img *spice.Image[float32]) error {
	format, err := imageutil.ParseFormat(settings.Format)
	if err != nil {
		return err
	}
	if err := imageutil.Save(path, img, format); err != nil {
		return err
	}
	slog.Debug("saved", "path", path, "format", format)
	return nil
}
