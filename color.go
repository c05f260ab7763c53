package spice

import (
	"fmt"
	"strings"
)

// Color holds the channel samples of one pixel. It owns its samples.
type Color[T Float] []T

// NewColor returns a black color with the given number of channels.
func NewColor[T Float](channels int) Color[T] {
	return make(Color[T], channels)
}

// Uniform returns a color with every channel set to v.
func Uniform[T Float](channels int, v T) Color[T] {
	c := make(Color[T], channels)
	for i := range c {
		c[i] = v
	}
	return c
}

// ColorOf returns a color holding a copy of values.
func ColorOf[T Float](values ...T) Color[T] {
	c := make(Color[T], len(values))
	copy(c, values)
	return c
}

// Channels returns the channel count.
func (c Color[T]) Channels() int {
	return len(c)
}

// View returns a view over the color's own samples.
func (c Color[T]) View() ColorView[T] {
	return ColorView[T]{data: c, stride: 1, channels: len(c)}
}

// Equal reports whether c and other have the same channels and values.
func (c Color[T]) Equal(other Color[T]) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i] != other[i] {
			return false
		}
	}
	return true
}

// Add returns the channelwise sum of c and other.
func (c Color[T]) Add(other Color[T]) Color[T] {
	return c.zip(other, func(a, b T) T { return a + b })
}

// Sub returns the channelwise difference of c and other.
func (c Color[T]) Sub(other Color[T]) Color[T] {
	return c.zip(other, func(a, b T) T { return a - b })
}

// Mul returns the channelwise product of c and other.
func (c Color[T]) Mul(other Color[T]) Color[T] {
	return c.zip(other, func(a, b T) T { return a * b })
}

// Div returns the channelwise quotient of c and other.
func (c Color[T]) Div(other Color[T]) Color[T] {
	return c.zip(other, func(a, b T) T { return a / b })
}

// AddScalar returns c with s added to every channel.
func (c Color[T]) AddScalar(s T) Color[T] {
	return c.each(func(a T) T { return a + s })
}

// SubScalar returns c with s subtracted from every channel.
func (c Color[T]) SubScalar(s T) Color[T] {
	return c.each(func(a T) T { return a - s })
}

// MulScalar returns c with every channel multiplied by s.
func (c Color[T]) MulScalar(s T) Color[T] {
	return c.each(func(a T) T { return a * s })
}

// DivScalar returns c with every channel divided by s.
func (c Color[T]) DivScalar(s T) Color[T] {
	return c.each(func(a T) T { return a / s })
}

// zip combines the channels both colors have; the result has len(c) channels.
func (c Color[T]) zip(other Color[T], fn func(a, b T) T) Color[T] {
	out := make(Color[T], len(c))
	copy(out, c)
	for i := 0; i < min(len(c), len(other)); i++ {
		out[i] = fn(c[i], other[i])
	}
	return out
}

func (c Color[T]) each(fn func(T) T) Color[T] {
	out := make(Color[T], len(c))
	for i, v := range c {
		out[i] = fn(v)
	}
	return out
}

func (c Color[T]) String() string {
	parts := make([]string, len(c))
	for i, v := range c {
		parts[i] = fmt.Sprintf("%g", float64(v))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// ColorView is a non-owning view of the channel samples of one pixel.
// Consecutive channels are stride samples apart in the backing buffer:
// PlaneSize for a planar image, 1 for a Color.
type ColorView[T Float] struct {
	data     []T
	base     int
	stride   int
	channels int
}

// Channels returns the channel count of the view.
func (v ColorView[T]) Channels() int {
	return v.channels
}

// Stride returns the distance between channel samples in the buffer.
func (v ColorView[T]) Stride() int {
	return v.stride
}

// At returns channel i.
func (v ColorView[T]) At(i int) T {
	return v.data[v.base+i*v.stride]
}

// Set writes channel i.
func (v ColorView[T]) Set(i int, value T) {
	v.data[v.base+i*v.stride] = value
}

// Color returns a copy of the viewed samples.
func (v ColorView[T]) Color() Color[T] {
	c := make(Color[T], v.channels)
	for i := range c {
		c[i] = v.At(i)
	}
	return c
}

// Assign copies c into the viewed pixel, limited to the channels both have.
func (v ColorView[T]) Assign(c Color[T]) {
	for i := 0; i < min(v.channels, len(c)); i++ {
		v.Set(i, c[i])
	}
}

// Fill sets every viewed channel to value.
func (v ColorView[T]) Fill(value T) {
	for i := 0; i < v.channels; i++ {
		v.Set(i, value)
	}
}

// Equal reports whether the viewed samples equal c.
func (v ColorView[T]) Equal(c Color[T]) bool {
	if v.channels != len(c) {
		return false
	}
	for i := range c {
		if v.At(i) != c[i] {
			return false
		}
	}
	return true
}

// Add adds c to the viewed pixel in place.
func (v ColorView[T]) Add(c Color[T]) {
	v.apply(c, func(a, b T) T { return a + b })
}

// Sub subtracts c from the viewed pixel in place.
func (v ColorView[T]) Sub(c Color[T]) {
	v.apply(c, func(a, b T) T { return a - b })
}

// Mul multiplies the viewed pixel by c in place.
func (v ColorView[T]) Mul(c Color[T]) {
	v.apply(c, func(a, b T) T { return a * b })
}

// Div divides the viewed pixel by c in place.
func (v ColorView[T]) Div(c Color[T]) {
	v.apply(c, func(a, b T) T { return a / b })
}

// AddScalar adds s to every viewed channel in place.
func (v ColorView[T]) AddScalar(s T) {
	v.Add(Uniform(v.channels, s))
}

// SubScalar subtracts s from every viewed channel in place.
func (v ColorView[T]) SubScalar(s T) {
	v.Sub(Uniform(v.channels, s))
}

// MulScalar multiplies every viewed channel by s in place.
func (v ColorView[T]) MulScalar(s T) {
	v.Mul(Uniform(v.channels, s))
}

// DivScalar divides every viewed channel by s in place.
func (v ColorView[T]) DivScalar(s T) {
	v.Div(Uniform(v.channels, s))
}

func (v ColorView[T]) apply(c Color[T], fn func(a, b T) T) {
	for i := 0; i < min(v.channels, len(c)); i++ {
		v.Set(i, fn(v.At(i), c[i]))
	}
}
