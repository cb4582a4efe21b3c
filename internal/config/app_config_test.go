package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func writeConfiguration(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadApplicationConfigurationMergesSources(t *testing.T) {
	testCases := []struct {
		name           string
		globalContent  string
		localContent   string
		explicitPath   string
		expectTitle    string
		expectInitial  *float64
		expectMaximum  *float64
		expectFallback *bool
		expectCommand  []string
		expectDialog   *bool
		expectWidth    *int
	}{
		{
			name:          "local_overrides_global",
			globalContent: "window:\n  title: Global\n  width: 640\nzoom:\n  initial: 1.5\n  max: 4\n",
			localContent:  "window:\n  title: Local\nzoom:\n  initial: 3\n",
			expectTitle:   "Local",
			expectInitial: floatPointer(3),
			expectMaximum: floatPointer(4),
			expectWidth:   intPointer(640),
		},
		{
			name:           "global_only",
			globalContent:  "clipboard:\n  fallback: false\n  fallback_command: [xclip, -o]\nerror_dialog: true\n",
			expectFallback: boolPointer(false),
			expectCommand:  []string{"xclip", "-o"},
			expectDialog:   boolPointer(true),
		},
		{
			name:          "explicit_path_replaces_local_lookup",
			localContent:  "window:\n  title: Ignored\n",
			explicitPath:  "custom.yaml",
			expectTitle:   "Explicit",
			expectInitial: floatPointer(1),
		},
		{
			name: "no_files",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			homeDirectory := t.TempDir()
			t.Setenv("HOME", homeDirectory)
			t.Setenv("USERPROFILE", homeDirectory)
			workingDirectory := t.TempDir()
			if testCase.globalContent != "" {
				writeConfiguration(t, filepath.Join(homeDirectory, ".qrclip", "config.yaml"), testCase.globalContent)
			}
			if testCase.localContent != "" {
				writeConfiguration(t, filepath.Join(workingDirectory, "config.yaml"), testCase.localContent)
			}
			if testCase.explicitPath != "" {
				writeConfiguration(t, filepath.Join(workingDirectory, testCase.explicitPath), "window:\n  title: Explicit\nzoom:\n  initial: 1\n")
			}

			loaded, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDirectory, ExplicitFilePath: testCase.explicitPath})
			if err != nil {
				t.Fatalf("LoadApplicationConfiguration error: %v", err)
			}
			if loaded.Window.Title != testCase.expectTitle {
				t.Fatalf("expected title %q, got %q", testCase.expectTitle, loaded.Window.Title)
			}
			assertFloatPointer(t, "initial zoom", testCase.expectInitial, loaded.Zoom.Initial)
			assertFloatPointer(t, "maximum zoom", testCase.expectMaximum, loaded.Zoom.Maximum)
			assertBoolPointer(t, "fallback", testCase.expectFallback, loaded.Clipboard.Fallback)
			assertBoolPointer(t, "error dialog", testCase.expectDialog, loaded.ErrorDialog)
			if (testCase.expectWidth == nil) != (loaded.Window.Width == nil) || (testCase.expectWidth != nil && *testCase.expectWidth != *loaded.Window.Width) {
				t.Fatalf("unexpected width %v", loaded.Window.Width)
			}
			if len(testCase.expectCommand) != len(loaded.Clipboard.FallbackCommand) {
				t.Fatalf("expected command %v, got %v", testCase.expectCommand, loaded.Clipboard.FallbackCommand)
			}
			for index := range testCase.expectCommand {
				if testCase.expectCommand[index] != loaded.Clipboard.FallbackCommand[index] {
					t.Fatalf("expected command %v, got %v", testCase.expectCommand, loaded.Clipboard.FallbackCommand)
				}
			}
		})
	}
}

func TestLoadApplicationConfigurationRejectsDirectory(t *testing.T) {
	homeDirectory := t.TempDir()
	t.Setenv("HOME", homeDirectory)
	t.Setenv("USERPROFILE", homeDirectory)
	workingDirectory := t.TempDir()
	if err := os.Mkdir(filepath.Join(workingDirectory, "config.yaml"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if _, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDirectory}); err == nil {
		t.Fatalf("expected error when configuration path is a directory")
	}
}

func TestLoadApplicationConfigurationRequiresExplicitFile(t *testing.T) {
	homeDirectory := t.TempDir()
	t.Setenv("HOME", homeDirectory)
	t.Setenv("USERPROFILE", homeDirectory)
	workingDirectory := t.TempDir()

	_, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDirectory, ExplicitFilePath: "missing.yaml"})
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected a not-exist error for a missing explicit file, got %v", err)
	}

	if _, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDirectory}); err != nil {
		t.Fatalf("missing implicit configuration must be ignored, got %v", err)
	}
}

func TestLoadApplicationConfigurationReportsMalformedYAML(t *testing.T) {
	homeDirectory := t.TempDir()
	t.Setenv("HOME", homeDirectory)
	t.Setenv("USERPROFILE", homeDirectory)
	workingDirectory := t.TempDir()
	writeConfiguration(t, filepath.Join(workingDirectory, "config.yaml"), "zoom: [unterminated\n")
	if _, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDirectory}); err == nil {
		t.Fatalf("expected error for malformed configuration")
	}
}

func TestMergeDoesNotAliasOverride(t *testing.T) {
	override := ApplicationConfiguration{Clipboard: ClipboardConfiguration{FallbackCommand: []string{"wl-paste"}}, Zoom: ZoomConfiguration{Speed: floatPointer(0.2)}}
	merged := ApplicationConfiguration{}.Merge(override)
	override.Clipboard.FallbackCommand[0] = "changed"
	*override.Zoom.Speed = 9
	if merged.Clipboard.FallbackCommand[0] != "wl-paste" {
		t.Fatalf("merged command aliases the override")
	}
	if *merged.Zoom.Speed != 0.2 {
		t.Fatalf("merged speed aliases the override")
	}
}

func boolPointer(value bool) *bool {
	pointer := value
	return &pointer
}

func intPointer(value int) *int {
	pointer := value
	return &pointer
}

func floatPointer(value float64) *float64 {
	pointer := value
	return &pointer
}

func assertBoolPointer(t *testing.T, label string, expected *bool, actual *bool) {
	t.Helper()
	if expected == nil {
		if actual != nil {
			t.Fatalf("expected %s unset, got %v", label, *actual)
		}
		return
	}
	if actual == nil || *actual != *expected {
		t.Fatalf("expected %s %v, got %v", label, *expected, actual)
	}
}

func assertFloatPointer(t *testing.T, label string, expected *float64, actual *float64) {
	t.Helper()
	if expected == nil {
		if actual != nil {
			t.Fatalf("expected %s unset, got %v", label, *actual)
		}
		return
	}
	if actual == nil || *actual != *expected {
		t.Fatalf("expected %s %v, got %v", label, *expected, actual)
	}
}
