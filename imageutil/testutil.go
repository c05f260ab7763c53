package imageutil

import (
	"fmt"
	"math"

	"github.com/wbrown/spice"
)

// Gradient creates a horizontal gradient from Black on the left to White
// on the right in every channel.
func Gradient[T spice.Float](width, height, channels int) *spice.Image[T] {
	img := spice.New[T](width, height, channels)
	for c := 0; c < channels; c++ {
		for y := 0; y < height; y++ {
			row := img.Row(y, c)
			for x := range row {
				if width > 1 {
					row[x] = T(float64(x) / float64(width-1))
				}
			}
		}
	}
	return img
}

// Checkerboard creates a checkerboard pattern for edge testing. The top
// left square is White. It panics if squareSize is less than one.
func Checkerboard[T spice.Float](width, height, channels, squareSize int) *spice.Image[T] {
	if squareSize < 1 {
		panic(fmt.Sprintf("imageutil: checkerboard square size %d", squareSize))
	}
	img := spice.New[T](width, height, channels)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if ((x/squareSize)+(y/squareSize))%2 == 0 {
				img.View(x, y).Fill(spice.White)
			}
		}
	}
	return img
}

// ColorBars creates a three channel color bars test pattern.
func ColorBars[T spice.Float](width, height int) *spice.Image[T] {
	img := spice.New[T](width, height, 3)
	colors := []spice.Color[T]{
		{1, 1, 1}, // White
		{1, 1, 0}, // Yellow
		{0, 1, 1}, // Cyan
		{0, 1, 0}, // Green
		{1, 0, 1}, // Magenta
		{1, 0, 0}, // Red
		{0, 0, 1}, // Blue
		{0, 0, 0}, // Black
	}

	barWidth := max(1, width/len(colors))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			colorIdx := min(x/barWidth, len(colors)-1)
			img.SetColor(x, y, colors[colorIdx])
		}
	}
	return img
}

// Edges creates an image with sharp edges for testing edge detection: a
// White rectangle on mid gray with a Black diagonal line.
func Edges[T spice.Float](width, height, channels int) *spice.Image[T] {
	img := spice.New[T](width, height, channels)
	img.Fill(0.5)

	rx1, ry1 := width/4, height/4
	rx2, ry2 := 3*width/4, 3*height/4
	for y := ry1; y < ry2; y++ {
		for x := rx1; x < rx2; x++ {
			img.View(x, y).Fill(spice.White)
		}
	}

	for i := 0; i < min(width, height)/2; i++ {
		img.View(i, i).Fill(spice.Black)
	}
	return img
}

// MSE returns the mean squared error between two images of the same shape.
func MSE[T spice.Float](a, b *spice.Image[T]) (float64, error) {
	if !spice.SameShape(a, b) {
		return 0, fmt.Errorf("%w: %v and %v", spice.ErrShapeMismatch, a, b)
	}
	if a.Len() == 0 {
		return 0, nil
	}
	var sumSq float64
	for i, v := range a.Data() {
		d := float64(v) - float64(b.Data()[i])
		sumSq += d * d
	}
	return sumSq / float64(a.Len()), nil
}

// MaxDiff returns the largest absolute sample difference between two
// images of the same shape.
func MaxDiff[T spice.Float](a, b *spice.Image[T]) (float64, error) {
	if !spice.SameShape(a, b) {
		return 0, fmt.Errorf("%w: %v and %v", spice.ErrShapeMismatch, a, b)
	}
	var maxDiff float64
	for i, v := range a.Data() {
		maxDiff = math.Max(maxDiff, math.Abs(float64(v)-float64(b.Data()[i])))
	}
	return maxDiff, nil
}

// PSNR returns the peak signal to noise ratio in decibels for images in
// [Black, White]. Identical images yield +Inf.
func PSNR[T spice.Float](a, b *spice.Image[T]) (float64, error) {
	mse, err := MSE(a, b)
	if err != nil {
		return 0, err
	}
	return 10 * math.Log10(spice.White*spice.White/mse), nil
}
