package function

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/wbrown/spice"
)

// ErrZeroSum is returned when normalizing a kernel channel whose samples
// sum to zero.
var ErrZeroSum = errors.New("function: kernel sums to zero")

// ErrInvalidSigma is returned by the Gaussian kernel builders for a
// standard deviation that is not a positive number.
var ErrInvalidSigma = errors.New("function: gaussian sigma must be positive")

// GaussianRadius returns the half-width of a Gaussian kernel covering three
// standard deviations on each side.
func GaussianRadius(sigma float64) int {
	return int(math.Ceil(3 * sigma))
}

// GaussianKernel1D returns a normalized horizontal (n x 1) Gaussian kernel
// sampled at integer offsets -r..r, r = GaussianRadius(sigma). For integer
// sigma the width is 6*sigma+1. sigma must be positive and finite.
func GaussianKernel1D[T spice.Float](sigma float64) (*spice.Image[T], error) {
	if !(sigma > 0) || math.IsInf(sigma, 1) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidSigma, sigma)
	}
	r := T(GaussianRadius(sigma))
	s := T(sigma)
	vals := EvaluateUnary(func(x T) T { return Gaussian1D(s, x) }, -r, r+1, 1)
	k, err := spice.FromSamples(vals, len(vals), 1, 1)
	if err != nil {
		return nil, err
	}
	if err := Normalize(k); err != nil {
		return nil, err
	}
	return k, nil
}

// GaussianKernel2D returns a normalized square Gaussian kernel sampled at
// integer offsets -r..r in both directions. sigma must be positive and
// finite.
func GaussianKernel2D[T spice.Float](sigma float64) (*spice.Image[T], error) {
	if !(sigma > 0) || math.IsInf(sigma, 1) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidSigma, sigma)
	}
	r := T(GaussianRadius(sigma))
	s := T(sigma)
	vals, w, h := EvaluateBinary(func(x, y T) T { return Gaussian2D(s, x, y) },
		-r, r+1, 1,
		-r, r+1, 1)
	k, err := spice.FromSamples(vals, w, h, 1)
	if err != nil {
		return nil, err
	}
	if err := Normalize(k); err != nil {
		return nil, err
	}
	return k, nil
}

// BoxKernel1D returns a horizontal box kernel of width 2*radius+1 whose
// samples sum to one.
func BoxKernel1D[T spice.Float](radius int) *spice.Image[T] {
	d := 2*radius + 1
	k := spice.New[T](d, 1, 1)
	k.Fill(1 / T(d))
	return k
}

// Transpose returns img with rows and columns swapped in every channel.
// A horizontal 1D kernel becomes a vertical one.
func Transpose[T spice.Float](img *spice.Image[T]) *spice.Image[T] {
	out := spice.New[T](img.Height(), img.Width(), img.Channels())
	for c := 0; c < img.Channels(); c++ {
		for y := 0; y < img.Height(); y++ {
			for x := 0; x < img.Width(); x++ {
				out.SetSample(y, x, c, img.Sample(x, y, c))
			}
		}
	}
	return out
}

// Sum returns the sum of the samples of channel c.
func Sum[T spice.Float](img *spice.Image[T], c int) float64 {
	return floats.Sum(toFloat64(img.Channel(c)))
}

// Normalize scales every channel of k in place so that its samples sum to
// one.
func Normalize[T spice.Float](k *spice.Image[T]) error {
	for c := 0; c < k.Channels(); c++ {
		plane := k.Channel(c)
		vals := toFloat64(plane)
		sum := floats.Sum(vals)
		if math.IsNaN(sum) || math.IsInf(sum, 0) {
			return fmt.Errorf("function: channel %d of %v sums to %v", c, k, sum)
		}
		if sum == 0 {
			return fmt.Errorf("%w: channel %d of %v", ErrZeroSum, c, k)
		}
		floats.Scale(1/sum, vals)
		for i, v := range vals {
			plane[i] = T(v)
		}
	}
	return nil
}

func toFloat64[T spice.Float](s []T) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = float64(v)
	}
	return out
}
