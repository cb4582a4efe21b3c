// Package preview runs the startup pipeline from clipboard text to QR pixels.
package preview

import (
	"context"
	"fmt"

	"github.com/temirov/qrclip/internal/bitmap"
	"github.com/temirov/qrclip/internal/symbol"
)

// Stage names the pipeline step that failed.
type Stage string

const (
	// StageClipboard covers reading the clipboard.
	StageClipboard Stage = "clipboard"
	// StageEncoding covers turning text into a QR symbol.
	StageEncoding Stage = "encoding"

	acquisitionErrorFormat = "%s stage failed: %v"
)

// TextAcquirer returns the text to encode.
type TextAcquirer interface {
	Acquire(ctx context.Context) (string, error)
}

// Document is the immutable result of a successful startup.
type Document struct {
	Text    string
	Pixels  bitmap.PixelBuffer
	Modules int
}

// AcquisitionError reports a startup failure together with its stage.
type AcquisitionError struct {
	Stage Stage
	Err   error
}

func (acquisitionError *AcquisitionError) Error() string {
	return fmt.Sprintf(acquisitionErrorFormat, acquisitionError.Stage, acquisitionError.Err)
}

func (acquisitionError *AcquisitionError) Unwrap() error {
	return acquisitionError.Err
}

// Prepare reads the clipboard, encodes the text and decodes the symbol into pixels.
// It never terminates the process; failures are returned as *AcquisitionError.
func Prepare(ctx context.Context, acquirer TextAcquirer, encoder symbol.Encoder) (Document, error) {
	text, acquireError := acquirer.Acquire(ctx)
	if acquireError != nil {
		return Document{}, &AcquisitionError{Stage: StageClipboard, Err: acquireError}
	}
	matrix, encodeError := encoder.Encode(text)
	if encodeError != nil {
		return Document{}, &AcquisitionError{Stage: StageEncoding, Err: encodeError}
	}
	return Document{
		Text:    text,
		Pixels:  bitmap.Decode(matrix),
		Modules: matrix.Width(),
	}, nil
}
