package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wbrown/spice/imageutil"
	"github.com/wbrown/spice/statistics"
)

var histogramCmd = &cobra.Command{
	Use:   "histogram [file]",
	Short: "Print per channel histograms and statistics",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistogram,
}

func init() {
	histogramCmd.Flags().IntP("bins", "b", 16, "Number of histogram bins")
	histogramCmd.Flags().Int("bar-width", 50, "Width of the longest histogram bar")
	rootCmd.AddCommand(histogramCmd)
}

func runHistogram(cmd *cobra.Command, args []string) error {
	bins, _ := cmd.Flags().GetInt("bins")
	barWidth, _ := cmd.Flags().GetInt("bar-width")
	if barWidth < 0 {
		return fmt.Errorf("bar width must not be negative, got %d", barWidth)
	}

	img, err := imageutil.Load[float32](args[0])
	if err != nil {
		return err
	}
	hist, err := statistics.Histogram(img, bins)
	if err != nil {
		return err
	}
	means := statistics.Mean(img)
	devs := statistics.StdDev(img)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %dx%d, %d channels\n", args[0], img.Width(), img.Height(), img.Channels())
	for c, h := range hist {
		fmt.Fprintf(out, "channel %d: mean %.4f, stddev %.4f\n", c, means[c], devs[c])
		peak := 0
		for _, n := range h {
			peak = max(peak, n)
		}
		for i, n := range h {
			bar := 0
			if peak > 0 {
				bar = n * barWidth / peak
			}
			lower := float64(i) / float64(max(1, bins-1))
			fmt.Fprintf(out, "  %5.3f %8d %s\n", lower, n, strings.Repeat("#", bar))
		}
	}
	return nil
}
