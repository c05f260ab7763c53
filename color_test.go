package spice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorConstructors(t *testing.T) {
	assert.Equal(t, Color[float32]{0, 0, 0}, NewColor[float32](3))
	assert.Equal(t, Color[float64]{0.5, 0.5}, Uniform(2, 0.5))

	values := []float64{1, 2}
	c := ColorOf(values...)
	values[0] = 9
	assert.Equal(t, Color[float64]{1, 2}, c)
	assert.Equal(t, 2, c.Channels())
}

func TestColorArithmetic(t *testing.T) {
	a := ColorOf(1.0, 2, 3)
	b := ColorOf(0.5, 4, -1)

	assert.Equal(t, Color[float64]{1.5, 6, 2}, a.Add(b))
	assert.Equal(t, Color[float64]{0.5, -2, 4}, a.Sub(b))
	assert.Equal(t, Color[float64]{0.5, 8, -3}, a.Mul(b))
	assert.Equal(t, Color[float64]{2, 0.5, -3}, a.Div(b))

	assert.Equal(t, Color[float64]{2, 3, 4}, a.AddScalar(1))
	assert.Equal(t, Color[float64]{0, 1, 2}, a.SubScalar(1))
	assert.Equal(t, Color[float64]{2, 4, 6}, a.MulScalar(2))
	assert.Equal(t, Color[float64]{0.5, 1, 1.5}, a.DivScalar(2))

	// operands are unchanged
	assert.Equal(t, Color[float64]{1, 2, 3}, a)
}

func TestColorArithmeticChannelMismatch(t *testing.T) {
	a := ColorOf(1.0, 2, 3)
	assert.Equal(t, Color[float64]{2, 2, 3}, a.Add(ColorOf(1.0)))
	assert.Equal(t, Color[float64]{2}, ColorOf(1.0).Add(a))
}

func TestColorEqual(t *testing.T) {
	assert.True(t, ColorOf(1.0, 2).Equal(ColorOf(1.0, 2)))
	assert.False(t, ColorOf(1.0, 2).Equal(ColorOf(1.0, 3)))
	assert.False(t, ColorOf(1.0, 2).Equal(ColorOf(1.0)))
}

func TestColorViewOverColor(t *testing.T) {
	c := ColorOf[float32](1, 2, 3)
	v := c.View()
	assert.Equal(t, 1, v.Stride())
	assert.Equal(t, 3, v.Channels())

	v.MulScalar(2)
	assert.Equal(t, Color[float32]{2, 4, 6}, c)
	v.Sub(ColorOf[float32](1, 1, 1))
	assert.Equal(t, Color[float32]{1, 3, 5}, c)
}

func TestColorViewInPlace(t *testing.T) {
	img := New[float64](3, 3, 2)
	img.FillColor(ColorOf(1.0, 2))
	v := img.View(1, 1)

	v.Add(ColorOf(1.0, 1))
	assert.True(t, v.Equal(ColorOf(2.0, 3)))
	v.Mul(ColorOf(2.0, 0.5))
	assert.True(t, v.Equal(ColorOf(4.0, 1.5)))
	v.Div(ColorOf(4.0, 3))
	assert.True(t, v.Equal(ColorOf(1.0, 0.5)))
	v.AddScalar(1)
	v.SubScalar(0.5)
	v.DivScalar(0.5)
	assert.True(t, v.Equal(ColorOf(3.0, 2)))
	v.Fill(0)
	assert.True(t, img.At(1, 1).Equal(NewColor[float64](2)))

	// neighbours are untouched
	assert.True(t, img.At(0, 1).Equal(ColorOf(1.0, 2)))
	assert.True(t, img.At(2, 2).Equal(ColorOf(1.0, 2)))
}

func TestColorString(t *testing.T) {
	assert.Equal(t, "(0.5, 1, 0)", ColorOf(0.5, 1, 0).String())
}
