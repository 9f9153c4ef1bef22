package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/itchan-dev/threadsim/shared/domain"
)

const (
	placeholderWidth  = 320
	placeholderHeight = 240
	// the label is drawn small and scaled up so basicfont stays legible
	labelScale = 3
)

// Placeholder draws a stand-in PNG for an attached image id.
func Placeholder(id domain.ImageId) ([]byte, error) {
	small := image.NewRGBA(image.Rect(0, 0, placeholderWidth/labelScale, placeholderHeight/labelScale))
	draw.Draw(small, small.Bounds(), image.NewUniform(placeholderColor(id)), image.Point{}, draw.Src)

	label := fmt.Sprintf("object %d", id)
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  small,
		Src:  image.NewUniform(color.White),
		Face: face,
	}
	width := d.MeasureString(label)
	d.Dot = fixed.Point26_6{
		X: (fixed.I(small.Bounds().Dx()) - width) / 2,
		Y: fixed.I((small.Bounds().Dy() + face.Metrics().Ascent.Ceil()) / 2),
	}
	d.DrawString(label)

	dst := image.NewRGBA(image.Rect(0, 0, placeholderWidth, placeholderHeight))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), small, small.Bounds(), draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("failed to encode placeholder %d: %w", id, err)
	}
	return buf.Bytes(), nil
}

// placeholderColor spreads ids around a muted palette.
func placeholderColor(id domain.ImageId) color.RGBA {
	h := uint32(id) * 2654435761
	return color.RGBA{
		R: uint8(40 + h%120),
		G: uint8(40 + (h>>8)%120),
		B: uint8(40 + (h>>16)%120),
		A: 255,
	}
}
