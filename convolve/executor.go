package convolve

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/wbrown/spice"
)

// Executor computes the inner loop of spatial convolution. Implementations
// may use any strategy but must produce the output Spatial documents:
//
//	dst(x,y,c) = Σ src(x-i+rh, y-j+rv, c) * filter(i, j, min(F-1, c))
//
// with rh = (filter.Width()-1)/2, rv = (filter.Height()-1)/2 and source
// coordinates clamped to the image edges.
//
// Callers validate shapes before calling Convolve: dst and src have the
// same shape, the filter is non-empty and has 1 or src.Channels() channels.
// dst is zero-filled.
type Executor[T spice.Float] interface {
	Convolve(dst, src, filter *spice.Image[T]) error
}

// Reference is the portable executor. Rows of every channel are processed
// in parallel by up to Workers goroutines; Workers <= 0 means GOMAXPROCS.
type Reference[T spice.Float] struct {
	Workers int
}

// Convolve implements Executor.
func (r Reference[T]) Convolve(dst, src, filter *spice.Image[T]) error {
	w, h := src.Width(), src.Height()
	if w == 0 || h == 0 {
		return nil
	}
	workers := workerCount(r.Workers)
	chunk := max(1, (h+workers-1)/workers)

	var g errgroup.Group
	g.SetLimit(workers)
	for c := 0; c < src.Channels(); c++ {
		fc := min(filter.Channels()-1, c)
		for y0 := 0; y0 < h; y0 += chunk {
			c, y0, y1 := c, y0, min(y0+chunk, h)
			g.Go(func() error {
				convolveRows(dst, src, filter, c, fc, y0, y1)
				return nil
			})
		}
	}
	return g.Wait()
}

// convolveRows computes rows [y0, y1) of channel c. Each contributing
// source row is first copied into ext, extended on both sides by edge
// repetition, so the inner loop runs without bounds clamping:
// ext[e] = row[clamp(e - lead)], and src(x-i+rh) = ext[x + fw-1 - i].
func convolveRows[T spice.Float](dst, src, filter *spice.Image[T], c, fc, y0, y1 int) {
	w, h := src.Width(), src.Height()
	fw, fh := filter.Width(), filter.Height()
	rh, rv := (fw-1)/2, (fh-1)/2
	lead := fw - 1 - rh

	ext := make([]T, w+fw-1)
	for y := y0; y < y1; y++ {
		out := dst.Row(y, c)
		clear(out)
		for j := 0; j < fh; j++ {
			row := src.Row(clamp(y-j+rv, h), c)
			for e := range ext {
				ext[e] = row[clamp(e-lead, w)]
			}
			for i, k := range filter.Row(j, fc) {
				seg := ext[fw-1-i : fw-1-i+w]
				for x := range out {
					out[x] += seg[x] * k
				}
			}
		}
	}
}

// clamp returns index clamped to [0, size-1].
func clamp(index, size int) int {
	if index < 0 {
		return 0
	}
	if index >= size {
		return size - 1
	}
	return index
}

func workerCount(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}
