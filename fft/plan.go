// Package fft provides 2D real-to-complex and complex-to-real discrete
// Fourier transforms for image planes, built on gonum's 1D transforms.
//
// Transforms are unnormalized: Inverse(Forward(x)) equals x scaled by
// width*height. Callers divide.
package fft

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"
)

// ErrInvalidSize is returned for plans with a non-positive dimension.
var ErrInvalidSize = errors.New("fft: invalid plan size")

// Plan transforms real width x height buffers in row-major order. The
// spectrum produced by Forward holds only the non-redundant half of each
// row: SpectrumWidth() = width/2+1 complex values per row, height rows.
//
// A Plan holds scratch buffers and is not safe for concurrent use. Use a
// Cache to share plans between goroutines.
type Plan struct {
	width  int
	height int

	rows *fourier.FFT
	cols *fourier.CmplxFFT

	rowOut []complex128
	colIn  []complex128
	colOut []complex128
	work   []complex128
}

// NewPlan builds a plan for width x height buffers.
func NewPlan(width, height int) (*Plan, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	sw := width/2 + 1
	return &Plan{
		width:  width,
		height: height,
		rows:   fourier.NewFFT(width),
		cols:   fourier.NewCmplxFFT(height),
		rowOut: make([]complex128, sw),
		colIn:  make([]complex128, height),
		colOut: make([]complex128, height),
		work:   make([]complex128, sw*height),
	}, nil
}

// Width returns the spatial width of the plan.
func (p *Plan) Width() int { return p.width }

// Height returns the spatial height of the plan.
func (p *Plan) Height() int { return p.height }

// SpectrumWidth returns the number of complex values per spectrum row.
func (p *Plan) SpectrumWidth() int { return p.width/2 + 1 }

// SpectrumLen returns the length of a full half-spectrum buffer.
func (p *Plan) SpectrumLen() int { return p.SpectrumWidth() * p.height }

// Forward computes the half-spectrum of src into dst and returns it. If dst
// is nil a new buffer is allocated. It panics if the buffer lengths do not
// match the plan.
func (p *Plan) Forward(dst []complex128, src []float64) []complex128 {
	if len(src) != p.width*p.height {
		panic("fft: source length mismatch")
	}
	sw := p.SpectrumWidth()
	if dst == nil {
		dst = make([]complex128, sw*p.height)
	} else if len(dst) != sw*p.height {
		panic("fft: destination length mismatch")
	}

	for y := 0; y < p.height; y++ {
		p.rows.Coefficients(p.rowOut, src[y*p.width:(y+1)*p.width])
		copy(dst[y*sw:(y+1)*sw], p.rowOut)
	}
	for k := 0; k < sw; k++ {
		for y := 0; y < p.height; y++ {
			p.colIn[y] = dst[y*sw+k]
		}
		p.cols.Coefficients(p.colOut, p.colIn)
		for y := 0; y < p.height; y++ {
			dst[y*sw+k] = p.colOut[y]
		}
	}
	return dst
}

// Inverse computes the real buffer whose half-spectrum is src into dst and
// returns it. src is not modified. The result is scaled by width*height.
func (p *Plan) Inverse(dst []float64, src []complex128) []float64 {
	sw := p.SpectrumWidth()
	if len(src) != sw*p.height {
		panic("fft: spectrum length mismatch")
	}
	if dst == nil {
		dst = make([]float64, p.width*p.height)
	} else if len(dst) != p.width*p.height {
		panic("fft: destination length mismatch")
	}

	for k := 0; k < sw; k++ {
		for y := 0; y < p.height; y++ {
			p.colIn[y] = src[y*sw+k]
		}
		p.cols.Sequence(p.colOut, p.colIn)
		for y := 0; y < p.height; y++ {
			p.work[y*sw+k] = p.colOut[y]
		}
	}
	for y := 0; y < p.height; y++ {
		p.rows.Sequence(dst[y*p.width:(y+1)*p.width], p.work[y*sw:(y+1)*sw])
	}
	return dst
}

// MultiplySpectra stores the elementwise complex product of a and b in dst.
// dst may alias a or b.
func MultiplySpectra(dst, a, b []complex128) {
	if len(a) != len(b) || len(dst) != len(a) {
		panic("fft: spectrum length mismatch")
	}
	for i := range dst {
		ar, ai := real(a[i]), imag(a[i])
		br, bi := real(b[i]), imag(b[i])
		dst[i] = complex(ar*br-ai*bi, ar*bi+ai*br)
	}
}
