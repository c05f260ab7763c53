// Package convolve convolves planar images with filter kernels.
//
// Three strategies compute the same result:
//
//	Spatial    direct summation over the kernel
//	Separable  a horizontal 1D pass followed by a vertical 1D pass
//	Frequency  multiplication of zero-padded spectra
//
// Filters are images with either one channel, applied to every image
// channel, or one channel per image channel. Samples outside the image are
// taken from the nearest edge pixel. Kernels are not normalized; a blur
// kernel must sum to one to preserve brightness.
package convolve

import (
	"fmt"

	"github.com/wbrown/spice"
	"github.com/wbrown/spice/fft"
)

// Convolver bundles the execution choices for a series of convolutions.
// The zero value is not usable; use NewConvolver.
type Convolver[T spice.Float] struct {
	// Executor runs the inner loop of Spatial and Separable.
	Executor Executor[T]
	// Workers bounds the channels transformed concurrently by Frequency.
	// Values <= 0 mean GOMAXPROCS. It is a hint, not a guarantee.
	Workers int
	// Plans supplies transform plans to Frequency.
	Plans *fft.Cache
}

// NewConvolver returns a Convolver using the reference executor and the
// default plan cache.
func NewConvolver[T spice.Float](workers int) *Convolver[T] {
	return &Convolver[T]{
		Executor: Reference[T]{Workers: workers},
		Workers:  workers,
		Plans:    fft.Default,
	}
}

// Spatial convolves img with filter using the reference executor.
func Spatial[T spice.Float](img, filter *spice.Image[T]) (*spice.Image[T], error) {
	return NewConvolver[T](0).Spatial(img, filter)
}

// Separable convolves img with filterH horizontally, then with filterV
// vertically, using the reference executor.
func Separable[T spice.Float](img, filterH, filterV *spice.Image[T]) (*spice.Image[T], error) {
	return NewConvolver[T](0).Separable(img, filterH, filterV)
}

// Separable2D decomposes filter into two 1D passes and applies them with
// the reference executor. See Convolver.Separable2D.
func Separable2D[T spice.Float](img, filter *spice.Image[T]) (*spice.Image[T], error) {
	return NewConvolver[T](0).Separable2D(img, filter)
}

// Frequency convolves img with filter in the frequency domain using the
// default plan cache.
func Frequency[T spice.Float](img, filter *spice.Image[T]) (*spice.Image[T], error) {
	return NewConvolver[T](0).Frequency(img, filter)
}

// Spatial returns the convolution of img with filter:
//
//	out(x,y,c) = Σ_{i,j} img(x-i+rh, y-j+rv, c) * filter(i, j, min(F-1, c))
//
// where rh = (filter.Width()-1)/2, rv = (filter.Height()-1)/2 and image
// coordinates are clamped to the edges. The kernel's reference point is its
// center for odd sizes. The output has the shape of img.
func (cv *Convolver[T]) Spatial(img, filter *spice.Image[T]) (*spice.Image[T], error) {
	if err := checkFilter(img, filter); err != nil {
		return nil, err
	}
	out := spice.New[T](img.Width(), img.Height(), img.Channels())
	if err := cv.Executor.Convolve(out, img, filter); err != nil {
		return nil, fmt.Errorf("convolve: executor: %w", err)
	}
	return out, nil
}

func checkFilter[T spice.Float](img, filter *spice.Image[T]) error {
	if filter.Width() == 0 || filter.Height() == 0 {
		return fmt.Errorf("%w: %v", ErrEmptyFilter, filter)
	}
	if f := filter.Channels(); f != 1 && f != img.Channels() {
		return fmt.Errorf("%w: filter has %d, image has %d",
			ErrChannelMismatch, f, img.Channels())
	}
	return nil
}
