// Package bitmap converts QR module matrices into top-left origin pixel buffers.
package bitmap

import (
	"image"
	"image/color"

	"github.com/temirov/qrclip/internal/symbol"
)

// Color is a binary pixel value.
type Color uint8

const (
	// Black marks a dark module.
	Black Color = iota
	// White marks a light module.
	White
)

// ToRGBA returns the opaque color for the pixel value.
func (value Color) ToRGBA() color.RGBA {
	if value == White {
		return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return color.RGBA{A: 0xff}
}

// PixelBuffer stores pixels row by row starting at the top-left corner.
type PixelBuffer struct {
	Width  int
	Height int
	Pixels []Color
}

// At returns the pixel at column x and row y counted from the top.
func (buffer PixelBuffer) At(x int, y int) Color {
	return buffer.Pixels[y*buffer.Width+x]
}

// Empty reports whether the buffer holds no pixels.
func (buffer PixelBuffer) Empty() bool {
	return buffer.Width <= 0 || buffer.Height <= 0 || len(buffer.Pixels) != buffer.Width*buffer.Height
}

// RGBA expands the buffer into an image ready for texture upload.
func (buffer PixelBuffer) RGBA() *image.RGBA {
	rgbaImage := image.NewRGBA(image.Rect(0, 0, buffer.Width, buffer.Height))
	for index, pixel := range buffer.Pixels {
		rgba := pixel.ToRGBA()
		offset := index * 4
		rgbaImage.Pix[offset] = rgba.R
		rgbaImage.Pix[offset+1] = rgba.G
		rgbaImage.Pix[offset+2] = rgba.B
		rgbaImage.Pix[offset+3] = rgba.A
	}
	return rgbaImage
}

// Decode flips the matrix vertically so that the top row of the buffer holds the
// matrix's top row. Light modules become white and dark modules black.
func Decode(matrix symbol.Matrix) PixelBuffer {
	width := matrix.Width()
	height := matrix.Height()
	pixels := make([]Color, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pixel := Black
			if matrix.Light(x, height-1-y) {
				pixel = White
			}
			pixels = append(pixels, pixel)
		}
	}
	return PixelBuffer{Width: width, Height: height, Pixels: pixels}
}
