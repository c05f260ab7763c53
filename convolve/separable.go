package convolve

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/wbrown/spice"
)

// Separable convolves img with filterH, a single row, and then with
// filterV, a single column. For kernels that are the outer product of the
// two passes this equals Spatial with the 2D kernel at O(k) instead of
// O(k²) work per pixel.
func (cv *Convolver[T]) Separable(img, filterH, filterV *spice.Image[T]) (*spice.Image[T], error) {
	if filterH.Height() != 1 || filterV.Width() != 1 {
		return nil, fmt.Errorf("%w: horizontal %dx%d, vertical %dx%d", ErrNotOneDimensional,
			filterH.Width(), filterH.Height(), filterV.Width(), filterV.Height())
	}
	horizontal, err := cv.Spatial(img, filterH)
	if err != nil {
		return nil, fmt.Errorf("horizontal pass: %w", err)
	}
	out, err := cv.Spatial(horizontal, filterV)
	if err != nil {
		return nil, fmt.Errorf("vertical pass: %w", err)
	}
	return out, nil
}

// Separable2D splits filter into a horizontal and a vertical pass with
// Decompose and applies them with Separable.
//
// The filter must have rank one in every channel. This is not checked: a
// kernel that is not separable gives a wrong result without an error. Use
// IsSeparable to verify untrusted kernels first.
func (cv *Convolver[T]) Separable2D(img, filter *spice.Image[T]) (*spice.Image[T], error) {
	if err := checkFilter(img, filter); err != nil {
		return nil, err
	}
	filterH, filterV, err := Decompose(filter)
	if err != nil {
		return nil, err
	}
	return cv.Separable(img, filterH, filterV)
}

// Decompose splits every channel of a rank-one filter into a row filterH
// and a column filterV whose outer product is the channel. For each channel
// it takes the first non-zero sample e at (x, y) in row-major order:
// filterH is row y divided by e and filterV is column x.
func Decompose[T spice.Float](filter *spice.Image[T]) (filterH, filterV *spice.Image[T], err error) {
	fw, fh := filter.Width(), filter.Height()
	if fw == 0 || fh == 0 {
		return nil, nil, fmt.Errorf("%w: %v", ErrEmptyFilter, filter)
	}
	filterH = spice.New[T](fw, 1, filter.Channels())
	filterV = spice.New[T](1, fh, filter.Channels())

	for c := 0; c < filter.Channels(); c++ {
		idx := -1
		for i, v := range filter.Channel(c) {
			if v != 0 {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, nil, fmt.Errorf("%w: channel %d", ErrZeroKernel, c)
		}
		x, y := idx%fw, idx/fw
		e := filter.Sample(x, y, c)
		for i := 0; i < fw; i++ {
			filterH.SetSample(i, 0, c, filter.Sample(i, y, c)/e)
		}
		for j := 0; j < fh; j++ {
			filterV.SetSample(0, j, c, filter.Sample(x, j, c))
		}
	}
	return filterH, filterV, nil
}

// IsSeparable reports whether every channel of filter is numerically rank
// one: its second singular value is at most tol times its largest. A
// channel of zeros is not separable.
func IsSeparable[T spice.Float](filter *spice.Image[T], tol float64) bool {
	fw, fh := filter.Width(), filter.Height()
	if fw == 0 || fh == 0 {
		return false
	}
	for c := 0; c < filter.Channels(); c++ {
		plane := filter.Channel(c)
		vals := make([]float64, len(plane))
		for i, v := range plane {
			vals[i] = float64(v)
		}
		var svd mat.SVD
		if !svd.Factorize(mat.NewDense(fh, fw, vals), mat.SVDNone) {
			return false
		}
		s := svd.Values(nil)
		if s[0] == 0 {
			return false
		}
		if len(s) > 1 && s[1] > tol*s[0] {
			return false
		}
	}
	return true
}
