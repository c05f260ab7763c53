// Package filter provides common spatial filters built on the convolve
// package: blurs, sharpening and gradient operators.
package filter

import (
	"fmt"
	"math"

	"github.com/wbrown/spice"
	"github.com/wbrown/spice/convolve"
	"github.com/wbrown/spice/function"
)

// SharpeningKernel returns a mild 3x3 sharpening kernel. Its samples sum
// to one, so flat regions keep their value.
func SharpeningKernel[T spice.Float]() *spice.Image[T] {
	k, _ := spice.FromSamples([]T{
		0, -0.5, 0,
		-0.5, 3, -0.5,
		0, -0.5, 0,
	}, 3, 3, 1)
	return k
}

// SobelXKernel returns the horizontal Sobel kernel. It is stored flipped
// so that convolution yields right minus left.
func SobelXKernel[T spice.Float]() *spice.Image[T] {
	k, _ := spice.FromSamples([]T{
		1, 0, -1,
		2, 0, -2,
		1, 0, -1,
	}, 3, 3, 1)
	return k
}

// SobelYKernel returns the vertical Sobel kernel, bottom minus top.
func SobelYKernel[T spice.Float]() *spice.Image[T] {
	return function.Transpose(SobelXKernel[T]())
}

// GaussianBlur convolves img with a normalized Gaussian of standard
// deviation sigma, applied as two 1D passes.
func GaussianBlur[T spice.Float](img *spice.Image[T], sigma float64) (*spice.Image[T], error) {
	h, err := function.GaussianKernel1D[T](sigma)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	return convolve.Separable(img, h, function.Transpose(h))
}

// BoxBlur replaces every sample with the mean of the (2*radius+1)² window
// around it.
func BoxBlur[T spice.Float](img *spice.Image[T], radius int) (*spice.Image[T], error) {
	if radius < 0 {
		return nil, fmt.Errorf("filter: negative box radius %d", radius)
	}
	h := function.BoxKernel1D[T](radius)
	return convolve.Separable(img, h, function.Transpose(h))
}

// Sharpen applies SharpeningKernel to every channel.
func Sharpen[T spice.Float](img *spice.Image[T]) (*spice.Image[T], error) {
	return convolve.Spatial(img, SharpeningKernel[T]())
}

// Gradients returns the horizontal and vertical Sobel responses of img.
func Gradients[T spice.Float](img *spice.Image[T]) (gx, gy *spice.Image[T], err error) {
	gx, err = convolve.Spatial(img, SobelXKernel[T]())
	if err != nil {
		return nil, nil, err
	}
	gy, err = convolve.Spatial(img, SobelYKernel[T]())
	if err != nil {
		return nil, nil, err
	}
	return gx, gy, nil
}

// Sobel returns the gradient magnitude sqrt(gx² + gy²) of every channel.
func Sobel[T spice.Float](img *spice.Image[T]) (*spice.Image[T], error) {
	gx, gy, err := Gradients(img)
	if err != nil {
		return nil, err
	}
	out := spice.New[T](img.Width(), img.Height(), img.Channels())
	mag := out.Data()
	for i, x := range gx.Data() {
		y := gy.Data()[i]
		mag[i] = T(math.Hypot(float64(x), float64(y)))
	}
	return out, nil
}

// Luminance converts img to a single channel. Images with three or more
// channels use the BT.601 weights 0.299 R + 0.587 G + 0.114 B; further
// channels such as alpha are ignored. Images with one or two channels
// return a copy of channel 0.
func Luminance[T spice.Float](img *spice.Image[T]) *spice.Image[T] {
	if img.Channels() < 3 {
		return img.ExtractChannel(0)
	}
	out := spice.New[T](img.Width(), img.Height(), 1)
	r, g, b := img.Channel(0), img.Channel(1), img.Channel(2)
	lum := out.Data()
	for i := range lum {
		lum[i] = 0.299*r[i] + 0.587*g[i] + 0.114*b[i]
	}
	return out
}
