// Package threshold segments images into Black and White samples.
package threshold

import (
	"fmt"

	"github.com/wbrown/spice"
	"github.com/wbrown/spice/filter"
)

// Adaptive segments img channel by channel. Each sample is compared against
// the mean of the (2*radius+1)² window centered on it, computed with a box
// blur that repeats edge pixels: the output is White where the local mean
// exceeds threshold and Black elsewhere.
//
// Comparing the local mean rather than the sample itself makes the result
// robust against slow illumination gradients.
func Adaptive[T spice.Float](img *spice.Image[T], threshold T, radius int) (*spice.Image[T], error) {
	if radius < 0 {
		return nil, fmt.Errorf("threshold: negative radius %d", radius)
	}
	blurred, err := filter.BoxBlur(img, radius)
	if err != nil {
		return nil, fmt.Errorf("threshold: %w", err)
	}
	return Binary(blurred, threshold), nil
}

// Binary returns White where a sample of img exceeds threshold and Black
// elsewhere.
func Binary[T spice.Float](img *spice.Image[T], threshold T) *spice.Image[T] {
	return spice.Map(img, func(v T) T {
		if v > threshold {
			return spice.White
		}
		return spice.Black
	})
}
