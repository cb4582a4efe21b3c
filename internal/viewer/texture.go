package viewer

import (
	"github.com/temirov/qrclip/internal/bitmap"
)

// Texture is a host-owned image handle.
type Texture interface {
	Size() (width int, height int)
}

// TextureHost uploads pixel buffers. Implementations sample nearest-neighbour
// so that magnified modules keep hard edges.
type TextureHost interface {
	CreateTexture(buffer bitmap.PixelBuffer) (Texture, error)
}

// TextureCache uploads a buffer once and hands out the same texture afterwards.
type TextureCache struct {
	host    TextureHost
	texture Texture
}

// NewTextureCache constructs an empty cache for host.
func NewTextureCache(host TextureHost) *TextureCache {
	return &TextureCache{host: host}
}

// Ensure returns the cached texture, creating it from buffer on the first successful call.
// Once a texture exists later buffers are ignored.
func (cache *TextureCache) Ensure(buffer bitmap.PixelBuffer) (Texture, error) {
	if cache.texture != nil {
		return cache.texture, nil
	}
	texture, creationError := cache.host.CreateTexture(buffer)
	if creationError != nil {
		return nil, creationError
	}
	cache.texture = texture
	return texture, nil
}
