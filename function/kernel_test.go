package function

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbrown/spice"
)

func TestGaussianKernel1D(t *testing.T) {
	k, err := GaussianKernel1D[float64](10)
	require.NoError(t, err)

	assert.Equal(t, 61, k.Width())
	assert.Equal(t, 1, k.Height())
	assert.InDelta(t, 1.0, Sum(k, 0), 1e-12)

	// symmetric around the center sample
	for i := 0; i < 30; i++ {
		assert.InDelta(t, k.Sample(i, 0, 0), k.Sample(60-i, 0, 0), 1e-15)
	}
	assert.Greater(t, k.Sample(30, 0, 0), k.Sample(29, 0, 0))
}

func TestGaussianKernel2D(t *testing.T) {
	k, err := GaussianKernel2D[float32](2)
	require.NoError(t, err)

	assert.Equal(t, 13, k.Width())
	assert.Equal(t, 13, k.Height())
	assert.InDelta(t, 1.0, Sum(k, 0), 1e-5)
	assert.Equal(t, k.Sample(6, 0, 0), k.Sample(0, 6, 0))
}

func TestGaussianKernelInvalidSigma(t *testing.T) {
	for _, sigma := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		k, err := GaussianKernel1D[float64](sigma)
		assert.ErrorIs(t, err, ErrInvalidSigma, "sigma %v", sigma)
		assert.Nil(t, k)

		k, err = GaussianKernel2D[float64](sigma)
		assert.ErrorIs(t, err, ErrInvalidSigma, "sigma %v", sigma)
		assert.Nil(t, k)
	}
}

func TestGaussianKernelTinySigma(t *testing.T) {
	// the center sample overflows float32
	k, err := GaussianKernel1D[float32](1e-40)
	assert.Error(t, err)
	assert.Nil(t, k)
	k64, err := GaussianKernel1D[float64](1e-3)
	require.NoError(t, err)
	assert.Equal(t, 3, k64.Width())
	assert.Equal(t, []float64{0, 1, 0}, k64.Data())
}

func TestNormalizeRejectsNaN(t *testing.T) {
	k, err := spice.FromSamples([]float64{1, math.NaN(), 1}, 3, 1, 1)
	require.NoError(t, err)
	assert.Error(t, Normalize(k))
}

func TestBoxKernel1D(t *testing.T) {
	k := BoxKernel1D[float64](2)
	assert.Equal(t, 5, k.Width())
	for x := 0; x < 5; x++ {
		assert.Equal(t, 0.2, k.Sample(x, 0, 0))
	}
}

func TestTranspose(t *testing.T) {
	k, err := spice.FromSamples([]float64{
		1, 2, 3,
		4, 5, 6,
	}, 3, 2, 1)
	require.NoError(t, err)

	tr := Transpose(k)
	assert.Equal(t, 2, tr.Width())
	assert.Equal(t, 3, tr.Height())
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, tr.Data())
}

func TestNormalize(t *testing.T) {
	k, err := spice.FromSamples([]float64{1, 3, 2, 2}, 2, 1, 2)
	require.NoError(t, err)

	require.NoError(t, Normalize(k))
	assert.Equal(t, []float64{0.25, 0.75, 0.5, 0.5}, k.Data())

	zero := spice.New[float64](3, 1, 1)
	err = Normalize(zero)
	assert.True(t, errors.Is(err, ErrZeroSum))
}
