//go:build opencv

// Package opencv runs spatial convolution through OpenCV's filter2D.
//
// Build with -tags opencv. OpenCV 4 must be installed, see
// https://gocv.io/getting-started/.
package opencv

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/wbrown/spice"
	"github.com/wbrown/spice/convolve"
)

// Executor is a convolve.Executor for float32 images backed by OpenCV.
// Channels are filtered one after another; OpenCV parallelizes internally.
type Executor struct{}

var _ convolve.Executor[float32] = Executor{}

// Convolve implements convolve.Executor.
func (Executor) Convolve(dst, src, filter *spice.Image[float32]) error {
	w, h := src.Width(), src.Height()
	if w == 0 || h == 0 {
		return nil
	}
	fw, fh := filter.Width(), filter.Height()
	// filter2D correlates; the anchor maps kernel index fw-1-rh onto the
	// output pixel once the kernel is flipped
	anchor := image.Pt(fw-1-(fw-1)/2, fh-1-(fh-1)/2)

	kernels := make([]gocv.Mat, filter.Channels())
	for c := range kernels {
		kernels[c] = flippedKernel(filter, c)
	}
	defer func() {
		for _, k := range kernels {
			k.Close()
		}
	}()

	in := gocv.NewMatWithSize(h, w, gocv.MatTypeCV32F)
	defer in.Close()
	out := gocv.NewMat()
	defer out.Close()

	for c := 0; c < src.Channels(); c++ {
		if err := copyIn(in, src.Channel(c)); err != nil {
			return err
		}
		kernel := kernels[min(len(kernels)-1, c)]
		gocv.Filter2D(in, &out, -1, kernel, anchor, 0, gocv.BorderReplicate)
		if err := copyOut(dst.Channel(c), out); err != nil {
			return fmt.Errorf("opencv: channel %d: %w", c, err)
		}
	}
	return nil
}

func flippedKernel(filter *spice.Image[float32], c int) gocv.Mat {
	fw, fh := filter.Width(), filter.Height()
	k := gocv.NewMatWithSize(fh, fw, gocv.MatTypeCV32F)
	for j := 0; j < fh; j++ {
		for i := 0; i < fw; i++ {
			k.SetFloatAt(fh-1-j, fw-1-i, filter.Sample(i, j, c))
		}
	}
	return k
}

func copyIn(m gocv.Mat, plane []float32) error {
	data, err := m.DataPtrFloat32()
	if err != nil {
		return fmt.Errorf("opencv: input buffer: %w", err)
	}
	copy(data, plane)
	return nil
}

func copyOut(plane []float32, m gocv.Mat) error {
	if m.Rows()*m.Cols() != len(plane) {
		return fmt.Errorf("opencv: result is %dx%d, want %d samples", m.Cols(), m.Rows(), len(plane))
	}
	data, err := m.DataPtrFloat32()
	if err != nil {
		return fmt.Errorf("opencv: result buffer: %w", err)
	}
	copy(plane, data)
	return nil
}
