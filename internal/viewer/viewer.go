// Package viewer drives the per-frame state of the QR preview window.
//
// The package is independent of any windowing library: a host feeds FrameInput
// into Update once per tick and hands a Canvas to Render once per frame.
package viewer

import (
	"go.uber.org/zap"

	"github.com/temirov/qrclip/internal/bitmap"
)

const (
	// DefaultFallbackMessage replaces the image when the texture could not be created.
	DefaultFallbackMessage = "Failed to load image."
	// DefaultTooltipColumns limits the width of a tooltip line.
	DefaultTooltipColumns = 80
	// DefaultTooltipLines limits the number of tooltip lines.
	DefaultTooltipLines = 24
)

// Phase names the texture lifecycle state.
type Phase int

const (
	// PhaseAwaitingTexture is the initial state before the first upload attempt.
	PhaseAwaitingTexture Phase = iota
	// PhaseReady is terminal: the texture exists or its creation failed once.
	PhaseReady
)

func (phase Phase) String() string {
	switch phase {
	case PhaseAwaitingTexture:
		return "awaiting_texture"
	case PhaseReady:
		return "ready"
	default:
		return "unknown"
	}
}

type textureState interface {
	phase() Phase
}

type awaitingTexture struct {
	buffer bitmap.PixelBuffer
}

func (awaitingTexture) phase() Phase { return PhaseAwaitingTexture }

type readyTexture struct {
	texture Texture
	failure error
}

func (readyTexture) phase() Phase { return PhaseReady }

// Rectangle is an axis-aligned area in screen pixels.
type Rectangle struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Contains reports whether the point lies inside the rectangle.
func (rectangle Rectangle) Contains(x float64, y float64) bool {
	return x >= rectangle.X && y >= rectangle.Y && x < rectangle.X+rectangle.Width && y < rectangle.Y+rectangle.Height
}

// FrameInput is the input sampled by the host for one tick.
type FrameInput struct {
	ScrollDelta float64
	PointerX    int
	PointerY    int
}

// Canvas draws into the current frame.
type Canvas interface {
	Size() (width int, height int)
	DrawTexture(texture Texture, bounds Rectangle)
	DrawLabel(text string, bounds Rectangle)
	DrawTooltip(lines []string, pointerX int, pointerY int)
}

// Options configures a Viewer.
type Options struct {
	Zoom            ZoomConfiguration
	FallbackMessage string
	TooltipColumns  int
	TooltipLines    int
	Logger          *zap.Logger
}

// Viewer owns the zoom factor and the texture lifecycle of a single document.
type Viewer struct {
	text            string
	tooltip         []string
	fallbackMessage string
	cache           *TextureCache
	zoomController  ZoomController
	zoom            float64
	state           textureState
	pointerX        int
	pointerY        int
	logger          *zap.Logger
}

// New constructs a viewer for text and its decoded QR pixels.
// Zero-valued options fall back to the defaults; an invalid zoom configuration
// is replaced by the default one.
func New(text string, buffer bitmap.PixelBuffer, host TextureHost, options Options) *Viewer {
	if options.FallbackMessage == "" {
		options.FallbackMessage = DefaultFallbackMessage
	}
	if options.TooltipColumns == 0 {
		options.TooltipColumns = DefaultTooltipColumns
	}
	if options.TooltipLines == 0 {
		options.TooltipLines = DefaultTooltipLines
	}
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}
	options.Zoom = completeZoomConfiguration(options.Zoom)
	if err := options.Zoom.Validate(); err != nil {
		options.Logger.Warn("using default zoom", zap.Error(err))
		options.Zoom = DefaultZoomConfiguration()
	}
	zoomController := NewZoomController(options.Zoom)
	return &Viewer{
		text:            text,
		tooltip:         TooltipLines(text, options.TooltipColumns, options.TooltipLines),
		fallbackMessage: options.FallbackMessage,
		cache:           NewTextureCache(host),
		zoomController:  zoomController,
		zoom:            zoomController.Initial(),
		state:           awaitingTexture{buffer: buffer},
		logger:          options.Logger,
	}
}

func completeZoomConfiguration(configuration ZoomConfiguration) ZoomConfiguration {
	defaults := DefaultZoomConfiguration()
	if configuration.Initial == 0 {
		configuration.Initial = defaults.Initial
	}
	if configuration.Minimum == 0 {
		configuration.Minimum = defaults.Minimum
	}
	if configuration.Maximum == 0 {
		configuration.Maximum = defaults.Maximum
	}
	if configuration.Speed == 0 {
		configuration.Speed = defaults.Speed
	}
	return configuration.withStepDefaults()
}

// Text returns the clipboard text shown in the tooltip.
func (viewer *Viewer) Text() string {
	return viewer.text
}

// Zoom returns the current scale factor.
func (viewer *Viewer) Zoom() float64 {
	return viewer.zoom
}

// Phase returns the texture lifecycle state.
func (viewer *Viewer) Phase() Phase {
	return viewer.state.phase()
}

// Failure returns the texture creation error once the viewer gave up on the image.
func (viewer *Viewer) Failure() error {
	if ready, isReady := viewer.state.(readyTexture); isReady {
		return ready.failure
	}
	return nil
}

// Update advances the viewer by one tick.
func (viewer *Viewer) Update(input FrameInput) {
	if awaiting, isAwaiting := viewer.state.(awaitingTexture); isAwaiting {
		viewer.state = viewer.createTexture(awaiting.buffer)
	}
	viewer.zoom = viewer.zoomController.Apply(input.ScrollDelta, viewer.zoom)
	viewer.pointerX = input.PointerX
	viewer.pointerY = input.PointerY
}

func (viewer *Viewer) createTexture(buffer bitmap.PixelBuffer) readyTexture {
	texture, creationError := viewer.cache.Ensure(buffer)
	if creationError != nil {
		viewer.logger.Warn("texture creation failed", zap.Error(creationError))
		return readyTexture{failure: creationError}
	}
	width, height := texture.Size()
	viewer.logger.Debug("texture created", zap.Int("width", width), zap.Int("height", height))
	return readyTexture{texture: texture}
}

// ImageBounds returns where the texture is drawn in a viewport of the given size.
// The second result is false until a texture exists.
func (viewer *Viewer) ImageBounds(viewportWidth int, viewportHeight int) (Rectangle, bool) {
	ready, isReady := viewer.state.(readyTexture)
	if !isReady || ready.texture == nil {
		return Rectangle{}, false
	}
	textureWidth, textureHeight := ready.texture.Size()
	width := float64(textureWidth) * viewer.zoom
	height := float64(textureHeight) * viewer.zoom
	return Rectangle{
		X:      (float64(viewportWidth) - width) / 2,
		Y:      (float64(viewportHeight) - height) / 2,
		Width:  width,
		Height: height,
	}, true
}

// Render draws the current frame onto canvas.
func (viewer *Viewer) Render(canvas Canvas) {
	viewportWidth, viewportHeight := canvas.Size()
	switch state := viewer.state.(type) {
	case awaitingTexture:
		return
	case readyTexture:
		if state.texture == nil {
			canvas.DrawLabel(viewer.fallbackMessage, Rectangle{Width: float64(viewportWidth), Height: float64(viewportHeight)})
			return
		}
		bounds, _ := viewer.ImageBounds(viewportWidth, viewportHeight)
		canvas.DrawTexture(state.texture, bounds)
		if bounds.Contains(float64(viewer.pointerX), float64(viewer.pointerY)) {
			canvas.DrawTooltip(viewer.tooltip, viewer.pointerX, viewer.pointerY)
		}
	}
}
