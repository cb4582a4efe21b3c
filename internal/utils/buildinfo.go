// Package utils holds the logger, version lookup and constants shared by qrclip's commands.
package utils

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime/debug"
	"strings"
)

const (
	unknownVersion     = "unknown"
	develVersion       = "(devel)"
	gitDirectoryName   = ".git"
	gitNotFoundFormat  = ".git directory not found in or above %s"
	absolutePathFormat = "failed to get absolute path for %s: %w"
)

// Version is stamped at link time with -ldflags "-X github.com/temirov/qrclip/internal/utils.Version=...".
var Version = ""

// GetApplicationVersion reports the linked version, then the module version from build info,
// then the closest git tag of the working tree, and finally "unknown".
func GetApplicationVersion() string {
	if Version != "" {
		return Version
	}
	if buildInfo, available := debug.ReadBuildInfo(); available && buildInfo.Main.Version != "" && buildInfo.Main.Version != develVersion {
		return buildInfo.Main.Version
	}
	gitDirectoryPath, gitDirectoryError := findGitDirectory(".")
	if gitDirectoryError != nil {
		return unknownVersion
	}
	for _, describeArguments := range [][]string{
		{"describe", "--tags", "--exact-match"},
		{"describe", "--tags", "--long", "--dirty"},
	} {
		if described := gitDescribe(gitDirectoryPath, describeArguments); described != "" {
			return described
		}
	}
	return unknownVersion
}

func gitDescribe(directory string, arguments []string) string {
	// #nosec G204
	command := exec.Command("git", arguments...)
	command.Dir = directory
	output, err := command.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(output))
}

// findGitDirectory walks up from startDirectory to the first directory containing .git.
func findGitDirectory(startDirectory string) (string, error) {
	absoluteStartDirectory, errorAbsolute := filepath.Abs(startDirectory)
	if errorAbsolute != nil {
		return "", fmt.Errorf(absolutePathFormat, startDirectory, errorAbsolute)
	}
	currentDirectory := absoluteStartDirectory
	for {
		fileInformation, errorStat := os.Stat(filepath.Join(currentDirectory, gitDirectoryName))
		if errorStat == nil && fileInformation.IsDir() {
			return currentDirectory, nil
		}
		parentDirectory := filepath.Dir(currentDirectory)
		if parentDirectory == currentDirectory {
			return "", fmt.Errorf(gitNotFoundFormat, absoluteStartDirectory)
		}
		currentDirectory = parentDirectory
	}
}
