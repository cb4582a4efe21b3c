// Package host runs the viewer inside an ebiten window.
package host

import (
	"context"
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/temirov/qrclip/internal/bitmap"
	"github.com/temirov/qrclip/internal/viewer"
)

const (
	// DefaultWindowTitle is the title of the preview window.
	DefaultWindowTitle = "QR Clipboard Copy - Preview"
	// DefaultWindowWidth is the initial window width in pixels.
	DefaultWindowWidth = 800
	// DefaultWindowHeight is the initial window height in pixels.
	DefaultWindowHeight = 600

	runGameErrorFormat     = "run viewer window: %w"
	textureUploadFormat    = "%w: %v"
	emptyBufferErrorFormat = "%w: %dx%d buffer with %d pixels"
)

var (
	// ErrEmptyBuffer indicates a pixel buffer that cannot back a texture.
	ErrEmptyBuffer = errors.New("pixel buffer is empty")
	// ErrTextureUpload indicates that the graphics backend rejected the upload.
	ErrTextureUpload = errors.New("texture upload failed")

	backgroundColor = color.RGBA{R: 0x1b, G: 0x1b, B: 0x1b, A: 0xff}
)

// WindowOptions configures the preview window.
type WindowOptions struct {
	Title  string
	Width  int
	Height int
}

type texture struct {
	image  *ebiten.Image
	filter ebiten.Filter
}

func (texture *texture) Size() (int, int) {
	bounds := texture.image.Bounds()
	return bounds.Dx(), bounds.Dy()
}

// TextureHost uploads pixel buffers as ebiten images sampled nearest-neighbour.
type TextureHost struct{}

// CreateTexture uploads buffer once. Backend panics are reported as ErrTextureUpload.
func (TextureHost) CreateTexture(buffer bitmap.PixelBuffer) (created viewer.Texture, uploadError error) {
	if buffer.Empty() {
		return nil, fmt.Errorf(emptyBufferErrorFormat, ErrEmptyBuffer, buffer.Width, buffer.Height, len(buffer.Pixels))
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			created = nil
			uploadError = fmt.Errorf(textureUploadFormat, ErrTextureUpload, recovered)
		}
	}()
	image := ebiten.NewImageFromImage(buffer.RGBA())
	return &texture{image: image, filter: ebiten.FilterNearest}, nil
}

// Game adapts a viewer to ebiten's game loop.
type Game struct {
	ctx    context.Context
	viewer *viewer.Viewer
	face   font.Face
}

// NewGame wraps previewer. The game ends once ctx is done.
func NewGame(ctx context.Context, previewer *viewer.Viewer) *Game {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Game{ctx: ctx, viewer: previewer, face: basicfont.Face7x13}
}

// Update samples wheel and cursor input and advances the viewer.
// Escape or a done context closes the window.
func (game *Game) Update() error {
	if game.ctx.Err() != nil {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	_, wheelY := ebiten.Wheel()
	pointerX, pointerY := ebiten.CursorPosition()
	game.viewer.Update(viewer.FrameInput{ScrollDelta: wheelY, PointerX: pointerX, PointerY: pointerY})
	return nil
}

// Draw renders the current frame.
func (game *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	game.viewer.Render(&screenCanvas{screen: screen, face: game.face})
}

// Layout keeps a one-to-one mapping between window and screen pixels.
func (game *Game) Layout(outsideWidth int, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it is closed or ctx is done.
func Run(ctx context.Context, previewer *viewer.Viewer, options WindowOptions) error {
	if options.Title == "" {
		options.Title = DefaultWindowTitle
	}
	if options.Width <= 0 {
		options.Width = DefaultWindowWidth
	}
	if options.Height <= 0 {
		options.Height = DefaultWindowHeight
	}
	ebiten.SetWindowTitle(options.Title)
	ebiten.SetWindowSize(options.Width, options.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(NewGame(ctx, previewer)); err != nil {
		return fmt.Errorf(runGameErrorFormat, err)
	}
	return nil
}

var (
	_ viewer.TextureHost = TextureHost{}
	_ ebiten.Game        = (*Game)(nil)
)
