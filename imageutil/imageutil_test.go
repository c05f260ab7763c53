package imageutil

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbrown/spice"
)

// saveTestImage writes img to the test output directory when
// SAVE_TEST_IMAGES=1.
func saveTestImage(t *testing.T, name string, img image.Image) {
	t.Helper()
	if os.Getenv("SAVE_TEST_IMAGES") != "1" {
		return
	}
	dir := filepath.Join("testdata", "output")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	f, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, Encode(f, ".png", FromImage[float32](img), Uint8))
}

func TestFromImageGray(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 3, 2))
	g.SetGray(1, 0, color.Gray{Y: 255})
	g.SetGray(2, 1, color.Gray{Y: 51})

	img := FromImage[float64](g)
	assert.Equal(t, 1, img.Channels())
	assert.Equal(t, 3, img.Width())
	assert.InDelta(t, 1, img.Sample(1, 0, 0), 1e-12)
	assert.InDelta(t, 0.2, img.Sample(2, 1, 0), 1e-12)
}

func TestFromImageChannels(t *testing.T) {
	opaque := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			opaque.SetRGBA(x, y, color.RGBA{R: 255, G: 0, B: 51, A: 255})
		}
	}
	img := FromImage[float32](opaque)
	assert.Equal(t, 3, img.Channels())
	assert.InDeltaSlice(t, []float32{1, 0, 0.2}, []float32(img.At(1, 1)), 1e-6)

	translucent := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	translucent.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 102, B: 0, A: 51})
	img = FromImage[float32](translucent)
	assert.Equal(t, 4, img.Channels())
	// unpremultiplying through 16-bit color loses a little precision
	assert.InDeltaSlice(t, []float32{1, 0.4, 0, 0.2}, []float32(img.At(0, 0)), 1e-3)
}

func TestFromImageOffsetBounds(t *testing.T) {
	g := image.NewGray(image.Rect(5, 5, 8, 7))
	g.SetGray(5, 5, color.Gray{Y: 255})
	img := FromImage[float64](g)
	assert.Equal(t, 3, img.Width())
	assert.Equal(t, 2, img.Height())
	assert.Equal(t, 1.0, img.Sample(0, 0, 0))
}

func TestToImageClampsAndQuantizes(t *testing.T) {
	img, err := spice.FromSamples([]float64{-1, 0.5, 2, math.NaN()}, 4, 1, 1)
	require.NoError(t, err)

	m, err := ToImage(img, Uint8)
	require.NoError(t, err)
	g := m.(*image.Gray)
	assert.Equal(t, []uint8{0, 128, 255, 0}, g.Pix)

	m, err = ToImage(img, Uint16)
	require.NoError(t, err)
	assert.Equal(t, uint16(32768), m.(*image.Gray16).Gray16At(1, 0).Y)
}

func TestToImageUnsupportedChannels(t *testing.T) {
	_, err := ToImage(spice.New[float32](2, 2, 5), Uint8)
	assert.True(t, errors.Is(err, ErrUnsupportedChannels))
}

func TestToImageGrayAlpha(t *testing.T) {
	img := spice.New[float64](1, 1, 2)
	img.SetColor(0, 0, spice.ColorOf(0.6, 1))
	m, err := ToImage(img, Uint8)
	require.NoError(t, err)
	c := m.(*image.NRGBA).NRGBAAt(0, 0)
	assert.Equal(t, color.NRGBA{R: 153, G: 153, B: 153, A: 255}, c)
}

func TestParseFormat(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want Format
		ok   bool
	}{
		{"uint8", Uint8, true},
		{"8", Uint8, true},
		{"", Uint8, true},
		{"uint16", Uint16, true},
		{"16", Uint16, true},
		{"float", Uint8, false},
	} {
		got, err := ParseFormat(tt.in)
		if !tt.ok {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestSaveLoadPNG(t *testing.T) {
	img := ColorBars[float32](64, 16)
	path := filepath.Join(t.TempDir(), "bars.png")
	require.NoError(t, Save(path, img, Uint8))

	loaded, err := Load[float32](path)
	require.NoError(t, err)
	require.True(t, spice.SameShape(img, loaded))
	diff, err := MaxDiff(img, loaded)
	require.NoError(t, err)
	assert.LessOrEqual(t, diff, 0.5/255+1e-6)
}

func TestSaveLoadGradientPNG16(t *testing.T) {
	img := Gradient[float64](300, 4, 1)
	path := filepath.Join(t.TempDir(), "gradient.png")
	require.NoError(t, Save(path, img, Uint16))

	loaded, err := Load[float64](path)
	require.NoError(t, err)
	diff, err := MaxDiff(img, loaded)
	require.NoError(t, err)
	assert.LessOrEqual(t, diff, 0.5/65535+1e-12)
}

func TestSaveLoadTIFF16(t *testing.T) {
	img := spice.New[float64](5, 3, 3)
	for i := range img.Data() {
		img.Data()[i] = float64(i) / float64(img.Len())
	}
	path := filepath.Join(t.TempDir(), "ramp.tiff")
	require.NoError(t, Save(path, img, Uint16))

	loaded, err := Load[float64](path)
	require.NoError(t, err)
	require.True(t, spice.SameShape(img, loaded))
	diff, err := MaxDiff(img, loaded)
	require.NoError(t, err)
	assert.LessOrEqual(t, diff, 0.5/65535+1e-12)
}

func TestEncodeOtherFormats(t *testing.T) {
	img := Checkerboard[float32](16, 16, 1, 4)
	for _, ext := range []string{".jpg", ".gif", ".bmp"} {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, ext, img, Uint16), ext)
		decoded, _, err := Decode[float32](&buf)
		require.NoError(t, err, ext)
		assert.Equal(t, 16, decoded.Width(), ext)
		// checkerboard survives lossy coding at its square centers
		assert.InDelta(t, 1, decoded.Sample(1, 1, 0), 0.1, ext)
		assert.InDelta(t, 0, decoded.Sample(5, 1, 0), 0.1, ext)
	}
}

func TestSaveErrors(t *testing.T) {
	dir := t.TempDir()
	img := spice.New[float32](2, 2, 1)

	err := Save(filepath.Join(dir, "image.xyz"), img, Uint8)
	assert.True(t, errors.Is(err, ErrUnknownExtension))

	err = Save(filepath.Join(dir, "bad.png"), spice.New[float32](2, 2, 6), Uint8)
	assert.True(t, errors.Is(err, ErrUnsupportedChannels))
	assert.Contains(t, err.Error(), "2x2")

	_, err = Load[float32](filepath.Join(dir, "missing.png"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestResize(t *testing.T) {
	img := Checkerboard[float64](16, 16, 2, 8)

	half, err := Resize(img, 2, 2, InterpolationNearest)
	require.NoError(t, err)
	assert.Equal(t, 2, half.Channels())
	assert.Equal(t, []float64{1, 0, 0, 1}, half.Channel(1))

	flat := spice.New[float64](10, 10, 1)
	flat.Fill(0.25)
	up, err := Resize(flat, 23, 17, InterpolationArea)
	require.NoError(t, err)
	for _, v := range up.Data() {
		require.InDelta(t, 0.25, v, 1e-4)
	}

	wide, err := ResizeToWidth(flat, 5, InterpolationLinear)
	require.NoError(t, err)
	assert.Equal(t, 5, wide.Height())

	_, err = Resize(flat, -1, 2, InterpolationLinear)
	assert.Error(t, err)
}

func TestPatterns(t *testing.T) {
	g := Gradient[float32](5, 2, 3)
	assert.Equal(t, float32(0), g.Sample(0, 1, 2))
	assert.Equal(t, float32(0.5), g.Sample(2, 1, 2))
	assert.Equal(t, float32(1), g.Sample(4, 0, 0))

	cb := Checkerboard[float32](8, 8, 3, 4)
	assert.True(t, cb.At(0, 0).Equal(spice.Uniform[float32](3, 1)))
	assert.True(t, cb.At(4, 0).Equal(spice.Uniform[float32](3, 0)))

	bars := ColorBars[float64](80, 4)
	assert.True(t, bars.At(15, 0).Equal(spice.ColorOf(1.0, 1, 0)))
	assert.True(t, bars.At(79, 3).Equal(spice.ColorOf(0.0, 0, 0)))

	e := Edges[float64](40, 40, 1)
	assert.Equal(t, 0.5, e.Sample(39, 0, 0))
	assert.Equal(t, 1.0, e.Sample(25, 20, 0))
	assert.Equal(t, 0.0, e.Sample(5, 5, 0))
}

func TestCheckerboardRejectsEmptySquares(t *testing.T) {
	assert.Panics(t, func() { Checkerboard[float32](8, 8, 1, 0) })
	assert.Panics(t, func() { Checkerboard[float32](8, 8, 1, -2) })
}

func TestMetrics(t *testing.T) {
	a := spice.New[float64](2, 1, 1)
	b, err := spice.FromSamples([]float64{0.5, -0.25}, 2, 1, 1)
	require.NoError(t, err)

	mse, err := MSE(a, b)
	require.NoError(t, err)
	assert.InDelta(t, (0.25+0.0625)/2, mse, 1e-12)

	d, err := MaxDiff(a, b)
	require.NoError(t, err)
	assert.Equal(t, 0.5, d)

	psnr, err := PSNR(a, a)
	require.NoError(t, err)
	assert.True(t, math.IsInf(psnr, 1))

	_, err = MSE(a, spice.New[float64](1, 2, 1))
	assert.True(t, errors.Is(err, spice.ErrShapeMismatch))
}

func TestComparisonSheet(t *testing.T) {
	imgs := []*spice.Image[float32]{
		Gradient[float32](40, 30, 3),
		Checkerboard[float32](20, 50, 1, 5),
	}
	sheet, err := ComparisonSheet([]string{"gradient", "checker"}, imgs...)
	require.NoError(t, err)

	b := sheet.Bounds()
	assert.Equal(t, sheetPadding*3+60, b.Dx())
	assert.Equal(t, 50+captionHeight+2*sheetPadding, b.Dy())

	// caption pixels are dark, the rest of the caption band is white
	dark := 0
	for y := sheetPadding; y < sheetPadding+captionHeight; y++ {
		for x := 0; x < b.Dx(); x++ {
			if sheet.RGBAAt(x, y).R < 128 {
				dark++
			}
		}
	}
	assert.Greater(t, dark, 0)

	// padding between the tiles stays white, the gradient starts black
	top := sheetPadding + captionHeight
	assert.Equal(t, uint8(255), sheet.RGBAAt(sheetPadding+41, top).R)
	assert.Equal(t, uint8(0), sheet.RGBAAt(sheetPadding, top).R)
	saveTestImage(t, "comparison_sheet.png", sheet)

	_, err = ComparisonSheet([]string{"one"}, imgs...)
	assert.Error(t, err)
}
