package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/wbrown/spice/imageutil"
	"github.com/wbrown/spice/threshold"
)

var thresholdCmd = &cobra.Command{
	Use:   "threshold",
	Short: "Segment an image with an adaptive threshold",
	RunE:  runThreshold,
}

func init() {
	thresholdCmd.Flags().StringP("input", "i", "", "Input image file")
	thresholdCmd.Flags().StringP("output", "o", "", "Output image file")
	thresholdCmd.Flags().Float64P("threshold", "t", 0.5, "Threshold level in [0, 1]")
	thresholdCmd.Flags().IntP("radius", "r", 15, "Radius of the averaging window")
	thresholdCmd.MarkFlagRequired("input")
	thresholdCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(thresholdCmd)
}

func runThreshold(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")

	img, err := imageutil.Load[float32](inputPath)
	if err != nil {
		return err
	}
	out, err := threshold.Adaptive(img, float32(settings.Threshold), settings.Radius)
	if err != nil {
		return fmt.Errorf("threshold: %w", err)
	}
	slog.Info("thresholded", "input", inputPath, "threshold", settings.Threshold, "radius", settings.Radius)
	return save(outputPath, out)
}
