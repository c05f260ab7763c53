package function

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGaussian1D(t *testing.T) {
	vals := EvaluateUnary(func(x float32) float32 { return Gaussian1D[float32](3, x) },
		-2, 4.2, 0.5)

	require.Len(t, vals, 13)

	want := map[int]float32{
		0:  0.10648267,
		1:  0.11735511,
		2:  0.12579441,
		3:  0.13114657,
		4:  0.13298076,
		5:  0.13114657,
		6:  0.12579441,
		7:  0.11735511,
		8:  0.10648267,
		12: 0.054670025,
	}
	for i, w := range want {
		assert.InEpsilon(t, w, vals[i], 1e-6, "sample %d", i)
	}
}

func TestGaussian2DSymmetric(t *testing.T) {
	// a window of +-15 is wide enough for sigma 2 to hold all of its mass
	vals, w, h := EvaluateBinary(func(x, y float64) float64 { return Gaussian2D(2, x, y) },
		-15, 15, 1,
		-15, 15, 1)

	assert.Equal(t, 30, w)
	assert.Equal(t, 30, h)
	require.Len(t, vals, w*h)

	var sum float64
	for _, v := range vals {
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-6)
}

func TestGaussian2DAsymmetric(t *testing.T) {
	vals, w, h := EvaluateBinary(func(x, y float32) float32 { return Gaussian2D[float32](2, x, y) },
		-4.2, 2.1, 0.25,
		-2, 4.7, 0.5)

	assert.Equal(t, 26, w)
	assert.Equal(t, 14, h)
	require.Len(t, vals, 364)

	assert.InEpsilon(t, float32(0.0026606864), vals[0], 1e-5)   // first
	assert.InEpsilon(t, float32(0.014271595), vals[25], 1e-5)   // end of first row
	assert.InEpsilon(t, float32(0.0018720259), vals[363], 1e-5) // last
}

func TestSamples(t *testing.T) {
	tests := []struct {
		name             string
		begin, end, step float64
		want             int
	}{
		{"exact", 0, 4, 1, 4},
		{"partial step adds a sample", 0, 4.5, 1, 5},
		{"empty", 3, 3, 1, 0},
		{"reversed", 4, 0, 1, 0},
		{"fractional", -2, 4.2, 0.5, 13},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Samples(tt.begin, tt.end, tt.step))
			assert.Len(t, EvaluateUnary(func(x float64) float64 { return x }, tt.begin, tt.end, tt.step), tt.want)
		})
	}
}

func TestEvaluateBinaryRowMajor(t *testing.T) {
	vals, w, h := EvaluateBinary(func(x, y float64) float64 { return 10*y + x },
		0, 3, 1,
		0, 2, 1)
	assert.Equal(t, 3, w)
	assert.Equal(t, 2, h)
	assert.Equal(t, []float64{0, 1, 2, 10, 11, 12}, vals)
}
