// Package statistics computes per channel statistics of images.
package statistics

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/wbrown/spice"
)

// ErrNoSamples is returned by Histogram when asked for fewer than one bin.
var ErrNoSamples = errors.New("statistics: histogram needs at least one bin")

// Histogram counts the samples of every channel in bins evenly dividing
// [Black, White]. Samples are clamped to that range and assigned to bin
// round(v/White * (bins-1)); NaN samples are not counted. The result is
// indexed [channel][bin].
func Histogram[T spice.Float](img *spice.Image[T], bins int) ([][]int, error) {
	if bins < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrNoSamples, bins)
	}
	hist := make([][]int, img.Channels())
	for c := range hist {
		hist[c] = make([]int, bins)
		for _, v := range img.Channel(c) {
			if math.IsNaN(float64(v)) {
				continue
			}
			clamped := math.Min(math.Max(float64(v), spice.Black), spice.White)
			hist[c][int(math.Round(clamped/spice.White*float64(bins-1)))]++
		}
	}
	return hist, nil
}

// Mean returns the arithmetic mean of every channel. Empty images yield NaN.
func Mean[T spice.Float](img *spice.Image[T]) []float64 {
	means := make([]float64, img.Channels())
	for c := range means {
		means[c] = stat.Mean(plane(img, c), nil)
	}
	return means
}

// StdDev returns the sample standard deviation of every channel.
func StdDev[T spice.Float](img *spice.Image[T]) []float64 {
	devs := make([]float64, img.Channels())
	for c := range devs {
		devs[c] = stat.StdDev(plane(img, c), nil)
	}
	return devs
}

// MinMax returns the smallest and largest sample of every channel.
func MinMax[T spice.Float](img *spice.Image[T]) (lo, hi []float64) {
	lo = make([]float64, img.Channels())
	hi = make([]float64, img.Channels())
	for c := range lo {
		p := plane(img, c)
		if len(p) == 0 {
			lo[c], hi[c] = math.NaN(), math.NaN()
			continue
		}
		lo[c], hi[c] = floats.Min(p), floats.Max(p)
	}
	return lo, hi
}

func plane[T spice.Float](img *spice.Image[T], c int) []float64 {
	src := img.Channel(c)
	out := make([]float64, len(src))
	for i, v := range src {
		out[i] = float64(v)
	}
	return out
}
