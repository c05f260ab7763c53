package convolve

import "errors"

var (
	// ErrChannelMismatch is returned when a filter has neither one channel
	// nor as many channels as the image.
	ErrChannelMismatch = errors.New("convolve: filter must have 1 channel or as many as the image")

	// ErrEmptyFilter is returned for filters with zero width or height.
	ErrEmptyFilter = errors.New("convolve: empty filter")

	// ErrNotOneDimensional is returned by Separable when the horizontal
	// filter is not a single row or the vertical filter not a single column.
	ErrNotOneDimensional = errors.New("convolve: separable passes must be one-dimensional")

	// ErrZeroKernel is returned when a filter channel holds only zeros and
	// cannot be decomposed.
	ErrZeroKernel = errors.New("convolve: filter channel is all zero")

	// ErrTooLarge is returned when the padded transform buffers would exceed
	// MaxPaddedSamples.
	ErrTooLarge = errors.New("convolve: padded buffer too large")
)
