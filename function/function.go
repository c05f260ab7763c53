// Package function evaluates scalar functions over 1D and 2D grids and
// builds the filter kernels used by the convolve package.
package function

import (
	"math"

	"github.com/wbrown/spice"
)

// Sqrt2Pi is the square root of 2π.
var Sqrt2Pi = math.Sqrt(2 * math.Pi)

// Gaussian1D returns the normal density with standard deviation sigma at x.
func Gaussian1D[T spice.Float](sigma, x T) T {
	s, v := float64(sigma), float64(x)
	return T(1 / (Sqrt2Pi * s) * math.Exp(-(v*v)/(2*s*s)))
}

// Gaussian2D returns the isotropic 2D normal density with standard
// deviation sigma at (x, y).
func Gaussian2D[T spice.Float](sigma, x, y T) T {
	s, u, v := float64(sigma), float64(x), float64(y)
	return T(1 / (2 * math.Pi * s * s) * math.Exp(-(u*u+v*v)/(2*s*s)))
}

// Samples returns the number of grid points in [begin, end) at the given
// step: ceil((end-begin)/step), or 0 if the interval is empty.
func Samples[T spice.Float](begin, end, step T) int {
	n := math.Ceil(float64((end - begin) / step))
	if n <= 0 || math.IsNaN(n) {
		return 0
	}
	return int(n)
}

// EvaluateUnary samples fn over [begin, end). Sample i is
// fn(begin + i*step). If step does not divide the interval evenly the last
// sample lies past the last full step.
func EvaluateUnary[T spice.Float](fn func(x T) T, begin, end, step T) []T {
	n := Samples(begin, end, step)
	vals := make([]T, n)
	for i := range vals {
		vals[i] = fn(begin + T(i)*step)
	}
	return vals
}

// EvaluateBinary samples fn over [beginX, endX) x [beginY, endY) in
// row-major order with y as the outer loop. It also returns the grid width
// and height.
func EvaluateBinary[T spice.Float](fn func(x, y T) T,
	beginX, endX, stepX T,
	beginY, endY, stepY T,
) (vals []T, width, height int) {
	width = Samples(beginX, endX, stepX)
	height = Samples(beginY, endY, stepY)
	vals = make([]T, width*height)
	for y := 0; y < height; y++ {
		fy := beginY + T(y)*stepY
		for x := 0; x < width; x++ {
			vals[y*width+x] = fn(beginX+T(x)*stepX, fy)
		}
	}
	return vals, width, height
}
