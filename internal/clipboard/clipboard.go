// Package clipboard reads text from the desktop clipboard through an ordered list of sources.
package clipboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"
)

const (
	systemSourceName      = "system"
	sourceErrorFormat     = "clipboard source %s: %v"
	readSystemErrorFormat = "read system clipboard: %w"
)

var (
	// ErrNoClipboardContent indicates that every source returned empty text.
	ErrNoClipboardContent = errors.New("no clipboard content was found")
	// ErrClipboardUnsupported indicates that the platform offers no clipboard utility.
	ErrClipboardUnsupported = errors.New("system clipboard is not supported on this platform")
)

// Source reads the current clipboard text.
// An empty string with a nil error means the source had nothing to offer.
type Source interface {
	Name() string
	ReadText(ctx context.Context) (string, error)
}

// SourceError reports a hard failure of a single source.
type SourceError struct {
	Source string
	Err    error
}

func (sourceError *SourceError) Error() string {
	return fmt.Sprintf(sourceErrorFormat, sourceError.Source, sourceError.Err)
}

func (sourceError *SourceError) Unwrap() error {
	return sourceError.Err
}

// SystemSource reads the clipboard using github.com/atotto/clipboard.
type SystemSource struct {
	unsupported bool
	readAll     func() (string, error)
}

// NewSystemSource constructs the primary clipboard source.
func NewSystemSource() *SystemSource {
	return &SystemSource{unsupported: clipboard.Unsupported, readAll: clipboard.ReadAll}
}

// Name identifies the source in logs and errors.
func (source *SystemSource) Name() string {
	return systemSourceName
}

// ReadText returns the clipboard text.
func (source *SystemSource) ReadText(ctx context.Context) (string, error) {
	if source.unsupported {
		return "", ErrClipboardUnsupported
	}
	if contextError := ctx.Err(); contextError != nil {
		return "", contextError
	}
	text, readError := source.readAll()
	if readError != nil {
		return "", fmt.Errorf(readSystemErrorFormat, readError)
	}
	return text, nil
}

// Acquirer walks its sources in order and returns the first non-empty text.
// A source error ends the walk; only empty reads fall through to the next source.
type Acquirer struct {
	sources []Source
	logger  *zap.Logger
}

// NewAcquirer constructs an Acquirer. A nil logger disables logging.
func NewAcquirer(logger *zap.Logger, sources ...Source) *Acquirer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Acquirer{sources: sources, logger: logger}
}

// Acquire returns the clipboard text.
func (acquirer *Acquirer) Acquire(ctx context.Context) (string, error) {
	for _, source := range acquirer.sources {
		text, readError := source.ReadText(ctx)
		if readError != nil {
			return "", &SourceError{Source: source.Name(), Err: readError}
		}
		if text != "" {
			acquirer.logger.Debug("clipboard text acquired", zap.String("source", source.Name()), zap.Int("bytes", len(text)))
			return text, nil
		}
		acquirer.logger.Debug("clipboard source returned no text", zap.String("source", source.Name()))
	}
	return "", ErrNoClipboardContent
}

var _ Source = (*SystemSource)(nil)
