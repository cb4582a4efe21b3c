package symbol

import (
	"errors"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

var (
	// ErrEmptyContent indicates that there is no text to encode.
	ErrEmptyContent = errors.New("no content to encode")
	// ErrEncodingFailed wraps failures reported by the QR library, typically content over capacity.
	ErrEncodingFailed = errors.New("qr encoding failed")
)

const (
	encodingFailedFormat = "%w: %w"
	emptyBitmapFormat    = "%w: encoder returned an empty bitmap"
)

// Encoder turns text into a module matrix.
type Encoder interface {
	Encode(text string) (Matrix, error)
}

// QREncoder encodes text as a QR symbol at a fixed medium recovery level.
// The produced matrix includes the standard quiet zone.
type QREncoder struct {
	recoveryLevel qrcode.RecoveryLevel
}

// NewQREncoder constructs the QR encoder.
func NewQREncoder() *QREncoder {
	return &QREncoder{recoveryLevel: qrcode.Medium}
}

// Encode renders text into a bottom-left origin matrix.
func (encoder *QREncoder) Encode(text string) (Matrix, error) {
	if text == "" {
		return Matrix{}, ErrEmptyContent
	}
	code, encodeError := qrcode.New(text, encoder.recoveryLevel)
	if encodeError != nil {
		return Matrix{}, fmt.Errorf(encodingFailedFormat, ErrEncodingFailed, encodeError)
	}
	return matrixFromTopDownBitmap(code.Bitmap())
}

// matrixFromTopDownBitmap converts a top-left origin bitmap whose true cells are dark
// into a bottom-left origin matrix whose true cells are light.
func matrixFromTopDownBitmap(bitmap [][]bool) (Matrix, error) {
	height := len(bitmap)
	if height == 0 || len(bitmap[0]) == 0 {
		return Matrix{}, fmt.Errorf(emptyBitmapFormat, ErrEncodingFailed)
	}
	width := len(bitmap[0])
	modules := make([]bool, width*height)
	for row, cells := range bitmap {
		if len(cells) != width {
			return Matrix{}, fmt.Errorf(invalidDimensionsFormat, ErrInvalidDimensions, len(cells), height, width*height)
		}
		y := height - 1 - row
		for x, dark := range cells {
			modules[y*width+x] = !dark
		}
	}
	return NewMatrix(width, height, modules)
}

var _ Encoder = (*QREncoder)(nil)
