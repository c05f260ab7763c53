package imageutil

import (
	"fmt"
	"image"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/wbrown/spice"
)

const (
	sheetPadding  = 8
	captionSize   = 12 // points at 72 DPI, so also pixels
	captionHeight = captionSize + 8
)

var captionFont = sync.OnceValues(func() (*truetype.Font, error) {
	return freetype.ParseFont(goregular.TTF)
})

// ComparisonSheet places images side by side on a white background with
// labels[i] drawn above images[i]. Images of different sizes are aligned
// at the top. It is meant for visually checking filter results.
func ComparisonSheet[T spice.Float](labels []string, images ...*spice.Image[T]) (*image.RGBA, error) {
	if len(labels) != len(images) {
		return nil, fmt.Errorf("imageutil: %d labels for %d images", len(labels), len(images))
	}

	width, height := sheetPadding, 0
	tiles := make([]image.Image, len(images))
	for i, img := range images {
		m, err := ToImage(img, Uint8)
		if err != nil {
			return nil, fmt.Errorf("imageutil: sheet tile %q: %w", labels[i], err)
		}
		tiles[i] = m
		width += img.Width() + sheetPadding
		height = max(height, img.Height())
	}
	height += captionHeight + 2*sheetPadding

	sheet := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(sheet, sheet.Bounds(), image.White, image.Point{}, draw.Src)

	ttf, err := captionFont()
	if err != nil {
		return nil, fmt.Errorf("imageutil: caption font: %w", err)
	}
	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(ttf)
	ctx.SetFontSize(captionSize)
	ctx.SetClip(sheet.Bounds())
	ctx.SetDst(sheet)
	ctx.SetSrc(image.Black)
	ctx.SetHinting(font.HintingFull)

	x := sheetPadding
	top := sheetPadding + captionHeight
	for i, tile := range tiles {
		if _, err := ctx.DrawString(labels[i], freetype.Pt(x, sheetPadding+captionSize)); err != nil {
			return nil, fmt.Errorf("imageutil: caption %q: %w", labels[i], err)
		}
		r := tile.Bounds().Add(image.Pt(x, top))
		draw.Draw(sheet, r, tile, tile.Bounds().Min, draw.Over)
		x += tile.Bounds().Dx() + sheetPadding
	}
	return sheet, nil
}
