package host

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"github.com/temirov/qrclip/internal/viewer"
)

const (
	tooltipPadding      = 6
	tooltipOffset       = 16
	tooltipBorderWidth  = 1
	labelColorIntensity = 0xdc
)

var (
	labelColor         = color.RGBA{R: labelColorIntensity, G: labelColorIntensity, B: labelColorIntensity, A: 0xff}
	tooltipFillColor   = color.RGBA{R: 0x2e, G: 0x2e, B: 0x2e, A: 0xf0}
	tooltipBorderColor = color.RGBA{R: 0x5a, G: 0x5a, B: 0x5a, A: 0xff}
)

// screenCanvas draws one frame onto the ebiten screen.
type screenCanvas struct {
	screen *ebiten.Image
	face   font.Face
}

func (canvas *screenCanvas) Size() (int, int) {
	bounds := canvas.screen.Bounds()
	return bounds.Dx(), bounds.Dy()
}

func (canvas *screenCanvas) DrawTexture(handle viewer.Texture, bounds viewer.Rectangle) {
	uploaded, isEbitenTexture := handle.(*texture)
	if !isEbitenTexture {
		return
	}
	width, height := uploaded.Size()
	if width == 0 || height == 0 {
		return
	}
	options := &ebiten.DrawImageOptions{}
	options.Filter = uploaded.filter
	options.GeoM.Scale(bounds.Width/float64(width), bounds.Height/float64(height))
	options.GeoM.Translate(bounds.X, bounds.Y)
	canvas.screen.DrawImage(uploaded.image, options)
}

func (canvas *screenCanvas) DrawLabel(label string, bounds viewer.Rectangle) {
	labelBounds := text.BoundString(canvas.face, label)
	x := bounds.X + (bounds.Width-float64(labelBounds.Dx()))/2 - float64(labelBounds.Min.X)
	y := bounds.Y + (bounds.Height-float64(labelBounds.Dy()))/2 - float64(labelBounds.Min.Y)
	text.Draw(canvas.screen, label, canvas.face, int(x), int(y), labelColor)
}

func (canvas *screenCanvas) DrawTooltip(lines []string, pointerX int, pointerY int) {
	if len(lines) == 0 {
		return
	}
	metrics := canvas.face.Metrics()
	lineHeight := metrics.Height.Ceil()
	ascent := metrics.Ascent.Ceil()
	textWidth := 0
	for _, line := range lines {
		textWidth = max(textWidth, font.MeasureString(canvas.face, line).Ceil())
	}
	boxWidth := textWidth + 2*tooltipPadding
	boxHeight := lineHeight*len(lines) + 2*tooltipPadding
	viewportWidth, viewportHeight := canvas.Size()
	x, y := viewer.PlaceTooltip(pointerX, pointerY, tooltipOffset, boxWidth, boxHeight, viewportWidth, viewportHeight)

	vector.DrawFilledRect(canvas.screen, float32(x), float32(y), float32(boxWidth), float32(boxHeight), tooltipFillColor, false)
	vector.StrokeRect(canvas.screen, float32(x), float32(y), float32(boxWidth), float32(boxHeight), tooltipBorderWidth, tooltipBorderColor, false)
	for index, line := range lines {
		text.Draw(canvas.screen, line, canvas.face, x+tooltipPadding, y+tooltipPadding+ascent+index*lineHeight, labelColor)
	}
}

var _ viewer.Canvas = (*screenCanvas)(nil)
