package filter

import (
	"fmt"
	"math"

	"github.com/wbrown/spice"
)

// CannySigma is the standard deviation of the noise reduction blur applied
// before gradients are computed.
const CannySigma = 1.4

// Canny performs Canny edge detection and returns a single channel edge
// map holding White on edges and Black elsewhere. Color images are reduced
// with Luminance first. low and high are gradient magnitude thresholds in
// sample units; typical values for images in [0, 1] are 0.2 and 0.6.
func Canny[T spice.Float](img *spice.Image[T], low, high float64) (*spice.Image[T], error) {
	if low > high {
		return nil, fmt.Errorf("filter: canny low threshold %v above high threshold %v", low, high)
	}
	width, height := img.Width(), img.Height()
	if width == 0 || height == 0 {
		return spice.New[T](width, height, 1), nil
	}

	// Step 1: Gaussian blur to reduce noise
	blurred, err := GaussianBlur(Luminance(img), CannySigma)
	if err != nil {
		return nil, err
	}

	// Step 2: Sobel gradients
	gx, gy, err := Gradients(blurred)
	if err != nil {
		return nil, err
	}

	// Step 3: magnitude and direction
	magnitude := make([]float64, width*height)
	direction := make([]float64, width*height)
	for i := range magnitude {
		x, y := float64(gx.Data()[i]), float64(gy.Data()[i])
		magnitude[i] = math.Hypot(x, y)
		direction[i] = math.Atan2(y, x)
	}

	suppressed := nonMaxSuppression(magnitude, direction, width, height)
	strong, weak := doubleThreshold(suppressed, low, high)
	return hysteresis[T](strong, weak, width, height), nil
}

// nonMaxSuppression keeps only pixels that are local maxima along the
// gradient direction. The one pixel border is always suppressed.
func nonMaxSuppression(magnitude, direction []float64, width, height int) []float64 {
	suppressed := make([]float64, width*height)
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			i := y*width + x
			mag := magnitude[i]

			// Quantize the angle to 0, 45, 90 or 135 degrees
			angle := direction[i] * 180 / math.Pi
			if angle < 0 {
				angle += 180
			}

			var q, r float64
			switch {
			case angle < 22.5 || angle >= 157.5:
				q, r = magnitude[i+1], magnitude[i-1]
			case angle < 67.5:
				q, r = magnitude[i+width+1], magnitude[i-width-1]
			case angle < 112.5:
				q, r = magnitude[i+width], magnitude[i-width]
			default:
				q, r = magnitude[i+width-1], magnitude[i-width+1]
			}

			if mag >= q && mag >= r {
				suppressed[i] = mag
			}
		}
	}
	return suppressed
}

// doubleThreshold classifies edges as strong or weak.
func doubleThreshold(suppressed []float64, low, high float64) (strong, weak []bool) {
	strong = make([]bool, len(suppressed))
	weak = make([]bool, len(suppressed))
	for i, v := range suppressed {
		if v >= high && v > 0 {
			strong[i] = true
		} else if v >= low && v > 0 {
			weak[i] = true
		}
	}
	return strong, weak
}

// hysteresis keeps weak edges that are 8-connected to a strong edge,
// directly or through other kept weak edges.
func hysteresis[T spice.Float](strong, weak []bool, width, height int) *spice.Image[T] {
	edges := spice.New[T](width, height, 1)
	pix := edges.Data()

	stack := make([]int, 0, 64)
	for i, s := range strong {
		if s {
			pix[i] = spice.White
			stack = append(stack, i)
		}
	}

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%width, i/width
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := x+dx, y+dy
				if !edges.InBounds(nx, ny) {
					continue
				}
				n := ny*width + nx
				if weak[n] && pix[n] == spice.Black {
					pix[n] = spice.White
					stack = append(stack, n)
				}
			}
		}
	}
	return edges
}
