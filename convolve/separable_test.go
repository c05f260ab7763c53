package convolve

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbrown/spice"
	"github.com/wbrown/spice/function"
)

// outer returns the kernel whose (i, j) sample is h(i) * v(j).
func outer(h, v []float64) *spice.Image[float64] {
	k := spice.New[float64](len(h), len(v), 1)
	for j, b := range v {
		for i, a := range h {
			k.SetSample(i, j, 0, a*b)
		}
	}
	return k
}

func TestSeparableMatchesSpatial(t *testing.T) {
	img := randomImage(20, 14, 3, 20)
	h := gaussian1D[float64](t, 2)
	v := function.Transpose(h)
	full := gaussian2D[float64](t, 2)

	sep, err := Separable(img, h, v)
	require.NoError(t, err)
	spatial, err := Spatial(img, full)
	require.NoError(t, err)
	assertClose(t, spatial, sep, 1e-5)
}

func TestSeparableAsymmetric(t *testing.T) {
	img := randomImage(11, 9, 2, 21)
	hv := []float64{0.5, -1, 2, 0.25}
	vv := []float64{1, 3, -0.5}
	h, err := spice.FromSamples(hv, 4, 1, 1)
	require.NoError(t, err)
	v, err := spice.FromSamples(vv, 1, 3, 1)
	require.NoError(t, err)

	sep, err := Separable(img, h, v)
	require.NoError(t, err)
	assertClose(t, naive(img, outer(hv, vv)), sep, 1e-12)
}

func TestSeparableRejectsTwoDimensional(t *testing.T) {
	img := randomImage(5, 5, 1, 22)
	square := gaussian2D[float64](t, 1)
	h := gaussian1D[float64](t, 1)

	_, err := Separable(img, square, function.Transpose(h))
	assert.True(t, errors.Is(err, ErrNotOneDimensional))
	_, err = Separable(img, h, h)
	assert.True(t, errors.Is(err, ErrNotOneDimensional))
}

func TestDecompose(t *testing.T) {
	hv := []float64{0, 2, -1, 4}
	vv := []float64{0, 0.5, 3}
	k := outer(hv, vv)

	h, v, err := Decompose(k)
	require.NoError(t, err)
	assert.Equal(t, 4, h.Width())
	assert.Equal(t, 1, h.Height())
	assert.Equal(t, 1, v.Width())
	assert.Equal(t, 3, v.Height())

	// first non-zero is at (1, 1)
	assert.InDeltaSlice(t, []float64{0, 1, -0.5, 2}, h.Channel(0), 1e-12)
	assert.InDeltaSlice(t, []float64{0, 1, 6}, v.Channel(0), 1e-12)
	assertClose(t, k, outer(h.Channel(0), v.Channel(0)), 1e-12)
}

func TestDecomposeZeroChannel(t *testing.T) {
	k := spice.New[float64](3, 3, 2)
	k.SetSample(1, 1, 0, 1)
	_, _, err := Decompose(k)
	assert.True(t, errors.Is(err, ErrZeroKernel))
}

func TestSeparable2D(t *testing.T) {
	img := randomImage(16, 12, 3, 23)
	k := spice.New[float64](5, 3, 3)
	for c := 0; c < 3; c++ {
		layer := outer([]float64{1, float64(c + 1), 2, 0, -1}, []float64{0.5, 1, float64(c)})
		copy(k.Channel(c), layer.Channel(0))
	}

	got, err := Separable2D(img, k)
	require.NoError(t, err)
	assertClose(t, naive(img, k), got, 1e-9)

	_, err = Separable2D(img, spice.New[float64](3, 3, 1))
	assert.True(t, errors.Is(err, ErrZeroKernel))
}

func TestIsSeparable(t *testing.T) {
	assert.True(t, IsSeparable(gaussian2D[float64](t, 2), 1e-9))
	assert.True(t, IsSeparable(outer([]float64{1, 2, 3}, []float64{-1, 4}), 1e-9))

	laplacian, err := spice.FromSamples([]float64{
		0, 1, 0,
		1, -4, 1,
		0, 1, 0,
	}, 3, 3, 1)
	require.NoError(t, err)
	assert.False(t, IsSeparable(laplacian, 1e-6))
	assert.False(t, IsSeparable(spice.New[float64](3, 3, 1), 1e-6))
	assert.True(t, IsSeparable(gaussian1D[float64](t, 1), 1e-9))
}
