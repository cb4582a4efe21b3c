package clipboard

import (
	"context"
	"errors"
	"testing"
)

type stubSource struct {
	name  string
	text  string
	err   error
	calls int
}

func (source *stubSource) Name() string { return source.name }

func (source *stubSource) ReadText(context.Context) (string, error) {
	source.calls++
	return source.text, source.err
}

func TestAcquirerWalksSourcesInOrder(t *testing.T) {
	t.Parallel()

	hardFailure := errors.New("display unavailable")

	testCases := []struct {
		name           string
		primary        *stubSource
		secondary      *stubSource
		expectedText   string
		expectedError  error
		secondaryCalls int
	}{
		{
			name:           "primary_text_wins",
			primary:        &stubSource{name: "primary", text: "HELLO"},
			secondary:      &stubSource{name: "secondary", text: "unused"},
			expectedText:   "HELLO",
			secondaryCalls: 0,
		},
		{
			name:           "empty_primary_falls_back",
			primary:        &stubSource{name: "primary"},
			secondary:      &stubSource{name: "secondary", text: "fallback text"},
			expectedText:   "fallback text",
			secondaryCalls: 1,
		},
		{
			name:           "primary_error_skips_fallback",
			primary:        &stubSource{name: "primary", err: hardFailure},
			secondary:      &stubSource{name: "secondary", text: "unused"},
			expectedError:  hardFailure,
			secondaryCalls: 0,
		},
		{
			name:           "secondary_error_is_fatal",
			primary:        &stubSource{name: "primary"},
			secondary:      &stubSource{name: "secondary", err: ErrCommandFailed},
			expectedError:  ErrCommandFailed,
			secondaryCalls: 1,
		},
		{
			name:           "all_empty_fails",
			primary:        &stubSource{name: "primary"},
			secondary:      &stubSource{name: "secondary"},
			expectedError:  ErrNoClipboardContent,
			secondaryCalls: 1,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			acquirer := NewAcquirer(nil, testCase.primary, testCase.secondary)
			text, err := acquirer.Acquire(context.Background())
			if testCase.expectedError != nil {
				if !errors.Is(err, testCase.expectedError) {
					t.Fatalf("expected error %v, got %v", testCase.expectedError, err)
				}
				if text != "" {
					t.Fatalf("expected empty text on error, got %q", text)
				}
			} else {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if text != testCase.expectedText {
					t.Fatalf("expected %q, got %q", testCase.expectedText, text)
				}
			}
			if testCase.primary.calls != 1 {
				t.Fatalf("expected primary source to be read once, got %d", testCase.primary.calls)
			}
			if testCase.secondary.calls != testCase.secondaryCalls {
				t.Fatalf("expected %d secondary reads, got %d", testCase.secondaryCalls, testCase.secondary.calls)
			}
		})
	}
}

func TestAcquirerReportsFailingSource(t *testing.T) {
	acquirer := NewAcquirer(nil, &stubSource{name: "primary", err: errors.New("boom")})
	_, err := acquirer.Acquire(context.Background())
	var sourceError *SourceError
	if !errors.As(err, &sourceError) {
		t.Fatalf("expected SourceError, got %T", err)
	}
	if sourceError.Source != "primary" {
		t.Fatalf("expected failing source primary, got %s", sourceError.Source)
	}
}

func TestAcquirerWithoutSourcesFails(t *testing.T) {
	_, err := NewAcquirer(nil).Acquire(context.Background())
	if !errors.Is(err, ErrNoClipboardContent) {
		t.Fatalf("expected ErrNoClipboardContent, got %v", err)
	}
}

func TestSystemSource(t *testing.T) {
	t.Parallel()

	readFailure := errors.New("xclip missing")

	testCases := []struct {
		name          string
		source        *SystemSource
		expectedText  string
		expectedError error
	}{
		{
			name:         "returns_text",
			source:       &SystemSource{readAll: func() (string, error) { return "copied", nil }},
			expectedText: "copied",
		},
		{
			name:          "wraps_read_errors",
			source:        &SystemSource{readAll: func() (string, error) { return "", readFailure }},
			expectedError: readFailure,
		},
		{
			name:          "unsupported_platform",
			source:        &SystemSource{unsupported: true},
			expectedError: ErrClipboardUnsupported,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			text, err := testCase.source.ReadText(context.Background())
			if testCase.expectedError != nil {
				if !errors.Is(err, testCase.expectedError) {
					t.Fatalf("expected %v, got %v", testCase.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if text != testCase.expectedText {
				t.Fatalf("expected %q, got %q", testCase.expectedText, text)
			}
		})
	}
}
