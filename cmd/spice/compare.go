package main

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wbrown/spice"
	"github.com/wbrown/spice/imageutil"
)

var compareCmd = &cobra.Command{
	Use:   "compare [a] [b]",
	Short: "Report the difference between two images",
	Args:  cobra.ExactArgs(2),
	RunE:  runCompare,
}

func init() {
	compareCmd.Flags().String("sheet", "", "Write a labelled side by side PNG with the difference image")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	a, err := imageutil.Load[float32](args[0])
	if err != nil {
		return err
	}
	b, err := imageutil.Load[float32](args[1])
	if err != nil {
		return err
	}

	mse, err := imageutil.MSE(a, b)
	if err != nil {
		return err
	}
	maxDiff, _ := imageutil.MaxDiff(a, b)
	psnr, _ := imageutil.PSNR(a, b)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "mse:      %.6g\n", mse)
	fmt.Fprintf(out, "max diff: %.6g\n", maxDiff)
	fmt.Fprintf(out, "psnr:     %.2f dB\n", psnr)

	sheetPath, _ := cmd.Flags().GetString("sheet")
	if sheetPath == "" {
		return nil
	}
	diff, err := spice.Subtract(a, b)
	if err != nil {
		return err
	}
	diff = spice.Map(diff, func(v float32) float32 { return float32(math.Abs(float64(v))) })

	sheet, err := imageutil.ComparisonSheet(
		[]string{filepath.Base(args[0]), filepath.Base(args[1]), "|difference|"},
		a, b, diff)
	if err != nil {
		return err
	}
	if err := writePNG(sheetPath, sheet); err != nil {
		return err
	}
	slog.Info("wrote comparison sheet", "path", sheetPath)
	return nil
}

// writePNG encodes img to path, reporting encode and close failures.
func writePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}
