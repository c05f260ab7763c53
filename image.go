// Package spice provides planar floating point images, pixel views and
// channelwise arithmetic. The convolution engine that operates on these
// images lives in the convolve package.
package spice

import (
	"errors"
	"fmt"
)

// Float is the set of sample types an Image can hold.
type Float interface {
	~float32 | ~float64
}

const (
	// Black is the sample value representing no emission.
	Black = 0
	// White is the sample value representing full emission.
	White = 1
)

var (
	// ErrShapeMismatch is returned when two images that must share
	// dimensions and channel count do not.
	ErrShapeMismatch = errors.New("spice: image shapes differ")

	// ErrBufferSize is returned when a sample buffer does not hold exactly
	// width*height*channels samples.
	ErrBufferSize = errors.New("spice: sample buffer has wrong length")
)

// Image is a width x height image with a fixed number of channels. Samples
// are stored in planar layout: all samples of channel 0 in row-major order,
// then all samples of channel 1, and so on.
type Image[T Float] struct {
	width    int
	height   int
	channels int
	data     []T
}

// New creates a zero-filled image. It panics if width or height is negative
// or channels is less than one.
func New[T Float](width, height, channels int) *Image[T] {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("spice: negative image size %dx%d", width, height))
	}
	if channels < 1 {
		panic(fmt.Sprintf("spice: invalid channel count %d", channels))
	}
	return &Image[T]{
		width:    width,
		height:   height,
		channels: channels,
		data:     make([]T, width*height*channels),
	}
}

// FromSamples creates an image holding a copy of data, which must be in
// planar layout and hold exactly width*height*channels samples.
func FromSamples[T Float](data []T, width, height, channels int) (*Image[T], error) {
	if width < 0 || height < 0 || channels < 1 {
		return nil, fmt.Errorf("%w: %dx%d with %d channels", ErrBufferSize, width, height, channels)
	}
	if len(data) != width*height*channels {
		return nil, fmt.Errorf("%w: got %d samples, want %d (%dx%dx%d)",
			ErrBufferSize, len(data), width*height*channels, width, height, channels)
	}
	img := New[T](width, height, channels)
	copy(img.data, data)
	return img, nil
}

// Width returns the image width in pixels.
func (img *Image[T]) Width() int {
	return img.width
}

// Height returns the image height in pixels.
func (img *Image[T]) Height() int {
	return img.height
}

// Channels returns the number of channels per pixel.
func (img *Image[T]) Channels() int {
	return img.channels
}

// Len returns the total number of samples.
func (img *Image[T]) Len() int {
	return len(img.data)
}

// PlaneSize returns the number of samples in one channel plane. It is also
// the stride between the channel samples of a single pixel.
func (img *Image[T]) PlaneSize() int {
	return img.width * img.height
}

// Data returns the underlying sample buffer. Writes through the returned
// slice modify the image.
func (img *Image[T]) Data() []T {
	return img.data
}

// Offset returns the index of sample (x, y, c) in the planar buffer.
// All sample addressing in this module goes through Offset or Channel.
func (img *Image[T]) Offset(x, y, c int) int {
	return c*img.width*img.height + y*img.width + x
}

// InBounds reports whether (x, y) lies inside the image.
func (img *Image[T]) InBounds(x, y int) bool {
	return x >= 0 && x < img.width && y >= 0 && y < img.height
}

// Channel returns the contiguous plane of channel c.
func (img *Image[T]) Channel(c int) []T {
	start := img.Offset(0, 0, c)
	return img.data[start : start+img.PlaneSize()]
}

// Row returns row y of channel c.
func (img *Image[T]) Row(y, c int) []T {
	start := img.Offset(0, y, c)
	return img.data[start : start+img.width]
}

// Sample returns the value of channel c at (x, y).
func (img *Image[T]) Sample(x, y, c int) T {
	return img.data[img.Offset(x, y, c)]
}

// SetSample sets the value of channel c at (x, y).
func (img *Image[T]) SetSample(x, y, c int, v T) {
	img.data[img.Offset(x, y, c)] = v
}

// View returns a mutable view of the pixel at (x, y). The view references
// the image buffer and must not outlive the image.
func (img *Image[T]) View(x, y int) ColorView[T] {
	return ColorView[T]{
		data:     img.data,
		base:     img.Offset(x, y, 0),
		stride:   img.PlaneSize(),
		channels: img.channels,
	}
}

// At returns a copy of the pixel at (x, y).
func (img *Image[T]) At(x, y int) Color[T] {
	return img.View(x, y).Color()
}

// SetColor writes c to the pixel at (x, y). Extra channels in c are
// ignored; missing channels are left unchanged.
func (img *Image[T]) SetColor(x, y int, c Color[T]) {
	img.View(x, y).Assign(c)
}

// Fill sets every sample of every channel to v.
func (img *Image[T]) Fill(v T) {
	for i := range img.data {
		img.data[i] = v
	}
}

// FillColor sets every pixel to c.
func (img *Image[T]) FillColor(c Color[T]) {
	for ch := 0; ch < min(img.channels, len(c)); ch++ {
		plane := img.Channel(ch)
		for i := range plane {
			plane[i] = c[ch]
		}
	}
}

// Clone creates a deep copy of the image.
func (img *Image[T]) Clone() *Image[T] {
	clone := New[T](img.width, img.height, img.channels)
	copy(clone.data, img.data)
	return clone
}

// SameShape reports whether a and b have the same width, height and
// channel count.
func SameShape[T, U Float](a *Image[T], b *Image[U]) bool {
	return a.width == b.width && a.height == b.height && a.channels == b.channels
}

// Equal reports whether a and b have the same shape and identical samples.
func Equal[T Float](a, b *Image[T]) bool {
	if !SameShape(a, b) {
		return false
	}
	for i := range a.data {
		if a.data[i] != b.data[i] {
			return false
		}
	}
	return true
}

// ExtractChannel returns a single-channel copy of channel c.
func (img *Image[T]) ExtractChannel(c int) *Image[T] {
	out := New[T](img.width, img.height, 1)
	copy(out.data, img.Channel(c))
	return out
}

// Split returns one single-channel image per channel.
func Split[T Float](img *Image[T]) []*Image[T] {
	planes := make([]*Image[T], img.channels)
	for c := range planes {
		planes[c] = img.ExtractChannel(c)
	}
	return planes
}

// Merge stacks the channels of planes into one image. All planes must have
// the same width and height.
func Merge[T Float](planes ...*Image[T]) (*Image[T], error) {
	if len(planes) == 0 {
		return nil, fmt.Errorf("%w: no planes to merge", ErrShapeMismatch)
	}
	w, h := planes[0].width, planes[0].height
	channels := 0
	for _, p := range planes {
		if p.width != w || p.height != h {
			return nil, fmt.Errorf("%w: plane %dx%d, want %dx%d",
				ErrShapeMismatch, p.width, p.height, w, h)
		}
		channels += p.channels
	}
	out := New[T](w, h, channels)
	n := 0
	for _, p := range planes {
		n += copy(out.data[n:], p.data)
	}
	return out, nil
}

// Map returns a new image with fn applied to every sample.
func Map[T Float](img *Image[T], fn func(T) T) *Image[T] {
	out := New[T](img.width, img.height, img.channels)
	for i, v := range img.data {
		out.data[i] = fn(v)
	}
	return out
}

// Convert returns a copy of img with samples converted to type U.
func Convert[U, T Float](img *Image[T]) *Image[U] {
	out := New[U](img.width, img.height, img.channels)
	for i, v := range img.data {
		out.data[i] = U(v)
	}
	return out
}

func (img *Image[T]) String() string {
	return fmt.Sprintf("Image(%dx%d, %d channels)", img.width, img.height, img.channels)
}
