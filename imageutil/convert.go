package imageutil

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/wbrown/spice"
)

// Format is the numeric sample format used when an image is encoded.
type Format int

const (
	// Uint8 stores 8 bits per sample.
	Uint8 Format = iota
	// Uint16 stores 16 bits per sample where the codec supports it and
	// falls back to 8 bits elsewhere.
	Uint16
)

// ErrUnsupportedChannels is returned when an image has a channel count
// with no image.Image equivalent.
var ErrUnsupportedChannels = errors.New("imageutil: unsupported channel count")

// ParseFormat maps "uint8"/"8" and "uint16"/"16" to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "uint8", "8", "":
		return Uint8, nil
	case "uint16", "16":
		return Uint16, nil
	}
	return Uint8, fmt.Errorf("imageutil: unknown sample format %q", s)
}

func (f Format) String() string {
	if f == Uint16 {
		return "uint16"
	}
	return "uint8"
}

func (f Format) max() float64 {
	if f == Uint16 {
		return math.MaxUint16
	}
	return math.MaxUint8
}

// FromImage converts img to planar samples in [Black, White]. Gray images
// become one channel, opaque images three (R, G, B) and all others four
// with non-premultiplied alpha last.
func FromImage[T spice.Float](img image.Image) *spice.Image[T] {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	switch img.(type) {
	case *image.Gray, *image.Gray16:
		out := spice.New[T](w, h, 1)
		p := out.Channel(0)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				g := color.Gray16Model.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray16)
				p[y*w+x] = T(float64(g.Y) / math.MaxUint16)
			}
		}
		return out
	}

	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		out := spice.New[T](w, h, 3)
		r, g, bl := out.Channel(0), out.Channel(1), out.Channel(2)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				cr, cg, cb, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
				i := y*w + x
				r[i] = T(float64(cr) / math.MaxUint16)
				g[i] = T(float64(cg) / math.MaxUint16)
				bl[i] = T(float64(cb) / math.MaxUint16)
			}
		}
		return out
	}

	out := spice.New[T](w, h, 4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA64Model.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA64)
			out.SetColor(x, y, spice.ColorOf(
				T(float64(c.R)/math.MaxUint16),
				T(float64(c.G)/math.MaxUint16),
				T(float64(c.B)/math.MaxUint16),
				T(float64(c.A)/math.MaxUint16),
			))
		}
	}
	return out
}

// ToImage converts img to an image.Image with samples quantized to format.
// Samples are clamped to [Black, White]; NaN becomes Black. One channel
// yields a gray image, two channels gray with alpha, three RGB and four
// RGB with non-premultiplied alpha.
func ToImage[T spice.Float](img *spice.Image[T], format Format) (image.Image, error) {
	w, h := img.Width(), img.Height()
	rect := image.Rect(0, 0, w, h)
	q := quantizer(format)

	switch img.Channels() {
	case 1:
		p := img.Channel(0)
		if format == Uint16 {
			out := image.NewGray16(rect)
			for i, v := range p {
				out.SetGray16(i%w, i/w, color.Gray16{Y: q(float64(v))})
			}
			return out, nil
		}
		out := image.NewGray(rect)
		for i, v := range p {
			out.Pix[(i/w)*out.Stride+i%w] = uint8(q(float64(v)))
		}
		return out, nil
	case 2, 3, 4:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedChannels, img.Channels())
	}

	// r, g, b, a indexes into the pixel's channels
	var idx [4]int
	switch img.Channels() {
	case 2:
		idx = [4]int{0, 0, 0, 1}
	case 3:
		idx = [4]int{0, 1, 2, -1}
	case 4:
		idx = [4]int{0, 1, 2, 3}
	}
	sample := func(x, y, k int) uint16 {
		if idx[k] < 0 {
			return q(spice.White)
		}
		return q(float64(img.Sample(x, y, idx[k])))
	}

	if format == Uint16 {
		out := image.NewNRGBA64(rect)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out.SetNRGBA64(x, y, color.NRGBA64{
					R: sample(x, y, 0), G: sample(x, y, 1), B: sample(x, y, 2), A: sample(x, y, 3),
				})
			}
		}
		return out, nil
	}
	out := image.NewNRGBA(rect)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.SetNRGBA(x, y, color.NRGBA{
				R: uint8(sample(x, y, 0)), G: uint8(sample(x, y, 1)),
				B: uint8(sample(x, y, 2)), A: uint8(sample(x, y, 3)),
			})
		}
	}
	return out, nil
}

// quantizer returns a function mapping a sample to the integer range of
// format.
func quantizer(format Format) func(float64) uint16 {
	scale := format.max()
	return func(v float64) uint16 {
		if !(v > spice.Black) {
			return 0
		}
		if v >= spice.White {
			return uint16(scale)
		}
		return uint16(math.Round(v * scale))
	}
}
