package convolve

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/wbrown/spice"
	"github.com/wbrown/spice/fft"
)

// MaxPaddedSamples bounds the size of one padded transform buffer in
// Frequency. Larger requests fail with ErrTooLarge instead of attempting
// the allocation.
var MaxPaddedSamples = 1 << 26

// freqLayout holds the padded geometry shared by all channels of one
// Frequency call.
type freqLayout struct {
	w, h   int // image
	fw, fh int // filter
	pw, ph int // padded, linear convolution size

	// position of the filter's top-left sample in the padded buffer
	filterX, filterY int
	// position of the image's top-left sample in the padded buffer
	shiftX, shiftY int
	// padded coordinate holding output pixel (0, 0)
	originX, originY int
}

func newFreqLayout(w, h, fw, fh int) freqLayout {
	l := freqLayout{w: w, h: h, fw: fw, fh: fh, pw: w + fw - 1, ph: h + fh - 1}
	rh, rv := (fw-1)/2, (fh-1)/2
	l.filterX, l.filterY = l.pw/2-fw/2, l.ph/2-fh/2
	// equal to rh, rv for odd filters; one more for even ones so that the
	// padded image still covers every clamped sample Spatial reads
	l.shiftX, l.shiftY = fw-1-rh, fh-1-rv
	l.originX = l.filterX + rh + l.shiftX
	l.originY = l.filterY + rv + l.shiftY
	return l
}

// Frequency returns the convolution of img with filter computed by
// multiplying spectra. The result matches Spatial, including the edge
// repetition, up to transform rounding.
//
// Per channel the image is padded to (w+fw-1) x (h+fh-1) by edge
// repetition, the filter is zero-padded around the buffer center, both are
// transformed, multiplied and transformed back, and the output window is
// read with wraparound. Filter spectra are computed once per filter channel
// and shared between image channels. Transform plans come from cv.Plans
// and are reused across channels and calls.
func (cv *Convolver[T]) Frequency(img, filter *spice.Image[T]) (*spice.Image[T], error) {
	if err := checkFilter(img, filter); err != nil {
		return nil, err
	}
	out := spice.New[T](img.Width(), img.Height(), img.Channels())
	if img.Width() == 0 || img.Height() == 0 {
		return out, nil
	}

	l := newFreqLayout(img.Width(), img.Height(), filter.Width(), filter.Height())
	if l.pw*l.ph > MaxPaddedSamples {
		return nil, fmt.Errorf("%w: %dx%d padded for image %dx%d and filter %dx%d",
			ErrTooLarge, l.pw, l.ph, l.w, l.h, l.fw, l.fh)
	}
	plans := cv.Plans
	if plans == nil {
		plans = fft.Default
	}

	var g errgroup.Group
	g.SetLimit(workerCount(cv.Workers))

	spectra := make([][]complex128, filter.Channels())
	for fc := range spectra {
		fc := fc
		g.Go(func() error {
			s, err := filterSpectrum(plans, l, filter.Channel(fc))
			if err != nil {
				return err
			}
			spectra[fc] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for c := 0; c < img.Channels(); c++ {
		c := c
		g.Go(func() error {
			return convolveChannel(plans, l, out.Channel(c), img.Channel(c),
				spectra[min(len(spectra)-1, c)])
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func filterSpectrum[T spice.Float](plans *fft.Cache, l freqLayout, kernel []T) ([]complex128, error) {
	plan, err := plans.Get(l.pw, l.ph)
	if err != nil {
		return nil, fmt.Errorf("convolve: transform plan %dx%d: %w", l.pw, l.ph, err)
	}
	defer plans.Put(plan)

	buf := make([]float64, l.pw*l.ph)
	for j := 0; j < l.fh; j++ {
		row := buf[(l.filterY+j)*l.pw+l.filterX:]
		for i := 0; i < l.fw; i++ {
			row[i] = float64(kernel[j*l.fw+i])
		}
	}
	return plan.Forward(nil, buf), nil
}

func convolveChannel[T spice.Float](plans *fft.Cache, l freqLayout, dst, src []T, filterSpec []complex128) error {
	plan, err := plans.Get(l.pw, l.ph)
	if err != nil {
		return fmt.Errorf("convolve: transform plan %dx%d: %w", l.pw, l.ph, err)
	}
	defer plans.Put(plan)

	buf := make([]float64, l.pw*l.ph)
	for v := 0; v < l.ph; v++ {
		row := src[clamp(v-l.shiftY, l.h)*l.w:]
		padded := buf[v*l.pw : (v+1)*l.pw]
		for u := range padded {
			padded[u] = float64(row[clamp(u-l.shiftX, l.w)])
		}
	}

	spec := plan.Forward(nil, buf)
	fft.MultiplySpectra(spec, spec, filterSpec)
	plan.Inverse(buf, spec)

	scale := 1 / float64(l.pw*l.ph)
	for y := 0; y < l.h; y++ {
		py := (l.originY + y) % l.ph
		out := dst[y*l.w : (y+1)*l.w]
		for x := range out {
			px := (l.originX + x) % l.pw
			out[x] = T(buf[py*l.pw+px] * scale)
		}
	}
	return nil
}
