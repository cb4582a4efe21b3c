package clipboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultFallbackCommand reads the Wayland clipboard when the system source comes back empty.
const DefaultFallbackCommand = "wl-paste"

const (
	commandSourceNameFormat = "command %s"
	commandFailedFormat     = "%w: %s exited with status %d"
	commandStderrFormat     = "%w: %s exited with status %d: %s"
	commandStartFormat      = "execute %s: %w"
	replacementCharacter    = "\uFFFD"
)

var (
	// ErrCommandFailed indicates that the clipboard command exited with a non-zero status.
	ErrCommandFailed = errors.New("clipboard command failed")
	// ErrEmptyCommand indicates that no command name was configured.
	ErrEmptyCommand = errors.New("clipboard command is empty")
)

// CommandSource reads the clipboard from the standard output of an external utility.
type CommandSource struct {
	name      string
	arguments []string
}

// NewCommandSource constructs a source running name with arguments.
func NewCommandSource(name string, arguments ...string) *CommandSource {
	return &CommandSource{name: name, arguments: append([]string(nil), arguments...)}
}

// Name identifies the source in logs and errors.
func (source *CommandSource) Name() string {
	return fmt.Sprintf(commandSourceNameFormat, source.name)
}

// ReadText runs the command and returns its whole standard output.
// Invalid UTF-8 sequences are replaced rather than rejected.
func (source *CommandSource) ReadText(ctx context.Context) (string, error) {
	if strings.TrimSpace(source.name) == "" {
		return "", ErrEmptyCommand
	}
	// #nosec G204
	command := exec.CommandContext(ctx, source.name, source.arguments...)
	var standardError bytes.Buffer
	command.Stderr = &standardError
	output, runError := command.Output()
	if runError != nil {
		var exitError *exec.ExitError
		if errors.As(runError, &exitError) {
			message := strings.TrimSpace(standardError.String())
			if message == "" {
				return "", fmt.Errorf(commandFailedFormat, ErrCommandFailed, source.name, exitError.ExitCode())
			}
			return "", fmt.Errorf(commandStderrFormat, ErrCommandFailed, source.name, exitError.ExitCode(), message)
		}
		return "", fmt.Errorf(commandStartFormat, source.name, runError)
	}
	return strings.ToValidUTF8(string(output), replacementCharacter), nil
}

var _ Source = (*CommandSource)(nil)
