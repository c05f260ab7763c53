package spice

import "fmt"

// Add returns the samplewise sum a + b.
func Add[T Float](a, b *Image[T]) (*Image[T], error) {
	return combine(a, b, func(x, y T) T { return x + y })
}

// Subtract returns the samplewise difference a - b.
func Subtract[T Float](a, b *Image[T]) (*Image[T], error) {
	return combine(a, b, func(x, y T) T { return x - y })
}

// Multiply returns the samplewise product a * b.
func Multiply[T Float](a, b *Image[T]) (*Image[T], error) {
	return combine(a, b, func(x, y T) T { return x * y })
}

// Divide returns the samplewise quotient a / b. Division by zero follows
// IEEE 754 rules.
func Divide[T Float](a, b *Image[T]) (*Image[T], error) {
	return combine(a, b, func(x, y T) T { return x / y })
}

// AddScalar returns img with s added to every sample.
func AddScalar[T Float](img *Image[T], s T) *Image[T] {
	return Map(img, func(v T) T { return v + s })
}

// SubtractScalar returns img with s subtracted from every sample.
func SubtractScalar[T Float](img *Image[T], s T) *Image[T] {
	return Map(img, func(v T) T { return v - s })
}

// MultiplyScalar returns img with every sample multiplied by s.
func MultiplyScalar[T Float](img *Image[T], s T) *Image[T] {
	return Map(img, func(v T) T { return v * s })
}

// DivideScalar returns img with every sample divided by s.
func DivideScalar[T Float](img *Image[T], s T) *Image[T] {
	return Map(img, func(v T) T { return v / s })
}

// AddInPlace adds other to img.
func (img *Image[T]) AddInPlace(other *Image[T]) error {
	return img.combineInPlace(other, func(x, y T) T { return x + y })
}

// SubtractInPlace subtracts other from img.
func (img *Image[T]) SubtractInPlace(other *Image[T]) error {
	return img.combineInPlace(other, func(x, y T) T { return x - y })
}

// MultiplyInPlace multiplies img by other.
func (img *Image[T]) MultiplyInPlace(other *Image[T]) error {
	return img.combineInPlace(other, func(x, y T) T { return x * y })
}

// DivideInPlace divides img by other.
func (img *Image[T]) DivideInPlace(other *Image[T]) error {
	return img.combineInPlace(other, func(x, y T) T { return x / y })
}

// Scale multiplies every sample of img by s in place.
func (img *Image[T]) Scale(s T) {
	for i := range img.data {
		img.data[i] *= s
	}
}

// Shift adds s to every sample of img in place.
func (img *Image[T]) Shift(s T) {
	for i := range img.data {
		img.data[i] += s
	}
}

func combine[T Float](a, b *Image[T], fn func(x, y T) T) (*Image[T], error) {
	out := a.Clone()
	if err := out.combineInPlace(b, fn); err != nil {
		return nil, err
	}
	return out, nil
}

func (img *Image[T]) combineInPlace(other *Image[T], fn func(x, y T) T) error {
	if !SameShape(img, other) {
		return fmt.Errorf("%w: %v and %v", ErrShapeMismatch, img, other)
	}
	for i, v := range other.data {
		img.data[i] = fn(img.data[i], v)
	}
	return nil
}
