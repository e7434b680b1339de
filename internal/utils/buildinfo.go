package utils

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime/debug"
	"strings"
)

const unknownVersion = "unknown"

// GetApplicationVersion resolves the version reported by initialize responses
// and the --version flag. Module build info wins; source builds fall back to
// describing the surrounding git checkout.
func GetApplicationVersion() string {
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if buildInfoAvailable && buildInfo.Main.Version != "" && buildInfo.Main.Version != "(devel)" {
		return buildInfo.Main.Version
	}

	repositoryDirectory, repositoryError := findGitDirectory(".")
	if repositoryError == nil && repositoryDirectory != "" {
		if described := describeFromGit(repositoryDirectory); described != "" {
			return described
		}
	}
	return unknownVersion
}

// describeFromGit asks git for a tag-relative description of the checkout,
// preferring an exact tag match.
func describeFromGit(repositoryDirectory string) string {
	describeVariants := [][]string{
		{"describe", "--tags", "--exact-match"},
		{"describe", "--tags", "--long", "--dirty"},
	}
	for _, describeArguments := range describeVariants {
		// #nosec G204
		describeCommand := exec.Command("git", describeArguments...)
		describeCommand.Dir = repositoryDirectory
		describeOutput, describeError := describeCommand.Output()
		if describeError == nil && len(describeOutput) > 0 {
			return strings.TrimSpace(string(describeOutput))
		}
	}
	return ""
}

// findGitDirectory walks upward from startDirectory to the nearest directory
// that contains a .git folder.
func findGitDirectory(startDirectory string) (string, error) {
	absoluteStartDirectory, absoluteError := filepath.Abs(startDirectory)
	if absoluteError != nil {
		return "", fmt.Errorf("resolve absolute path for %s: %w", startDirectory, absoluteError)
	}

	currentDirectory := absoluteStartDirectory
	for {
		gitInformation, gitStatError := os.Stat(filepath.Join(currentDirectory, GitDirectoryName))
		if gitStatError == nil && gitInformation.IsDir() {
			return currentDirectory, nil
		}

		parentDirectory := filepath.Dir(currentDirectory)
		if parentDirectory == currentDirectory {
			return "", fmt.Errorf("no %s directory found in or above %s", GitDirectoryName, absoluteStartDirectory)
		}
		currentDirectory = parentDirectory
	}
}
