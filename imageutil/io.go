package imageutil

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // Register WebP decoder

	"github.com/wbrown/spice"
)

// ErrUnknownExtension is returned by Save for file names whose extension
// does not select an encoder.
var ErrUnknownExtension = errors.New("imageutil: unknown image file extension")

// JPEGQuality is the quality used when saving JPEG files.
var JPEGQuality = 95

// Load decodes the image at path into planar samples in [Black, White].
// Supports PNG, JPEG, GIF, TIFF, BMP and WebP. See FromImage for the
// resulting channel layout.
func Load[T spice.Float](path string) (*spice.Image[T], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := Decode[T](f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}

// Decode reads an image in any registered format from r. It also returns
// the format name reported by image.Decode.
func Decode[T spice.Float](r io.Reader) (*spice.Image[T], string, error) {
	img, name, err := image.Decode(r)
	if err != nil {
		return nil, "", err
	}
	return FromImage[T](img), name, nil
}

// Save encodes img to path. The encoder is chosen by file extension:
// .png, .jpg/.jpeg, .gif, .tif/.tiff or .bmp. format selects the sample
// depth; only PNG and TIFF store 16 bits.
func Save[T spice.Float](path string, img *spice.Image[T], format Format) (err error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !knownExtension(ext) {
		return fmt.Errorf("%w: %q", ErrUnknownExtension, path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	if err := Encode(f, ext, img, format); err != nil {
		return fmt.Errorf("failed to encode %s (%dx%d, %d channels, %v): %w",
			path, img.Width(), img.Height(), img.Channels(), format, err)
	}
	return nil
}

// Encode writes img to w in the format named by ext, a file extension
// including the dot.
func Encode[T spice.Float](w io.Writer, ext string, img *spice.Image[T], format Format) error {
	ext = strings.ToLower(ext)
	if !knownExtension(ext) {
		return fmt.Errorf("%w: %q", ErrUnknownExtension, ext)
	}
	switch ext {
	case ".png", ".tif", ".tiff":
	default:
		format = Uint8
	}
	m, err := ToImage(img, format)
	if err != nil {
		return err
	}

	switch ext {
	case ".png":
		return png.Encode(w, m)
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, m, &jpeg.Options{Quality: JPEGQuality})
	case ".gif":
		return gif.Encode(w, m, nil)
	case ".tif", ".tiff":
		return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate})
	default:
		return bmp.Encode(w, m)
	}
}

func knownExtension(ext string) bool {
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".tif", ".tiff", ".bmp":
		return true
	}
	return false
}
