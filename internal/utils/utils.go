// Package utils contains general helper functions used across the semnav tool.
package utils

import (
	"path/filepath"
	"strings"
	"unicode"
)

// GitDirectoryName is the name of the Git repository directory.
const GitDirectoryName = ".git"

const pathSegmentSeparator = "/"

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// ContainsString checks if a slice of strings contains a specific target string.
func ContainsString(stringSlice []string, targetString string) bool {
	for _, currentString := range stringSlice {
		if currentString == targetString {
			return true
		}
	}
	return false
}

// RelativePathOrSelf calculates the relative path from root to fullPath.
// Returns the cleaned fullPath if relative calculation fails.
// Returns "." if fullPath and root resolve to the same directory.
func RelativePathOrSelf(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	absoluteRoot, err := filepath.Abs(root)
	if err != nil {
		return cleanPath
	}
	cleanAbsoluteRoot := filepath.Clean(absoluteRoot)

	if cleanPath == cleanAbsoluteRoot {
		return "."
	}

	relativePath, relErr := filepath.Rel(cleanAbsoluteRoot, cleanPath)
	if relErr != nil {
		return cleanPath
	}
	return filepath.ToSlash(relativePath)
}

// PathComponents splits a forward-slash relative path into its components.
func PathComponents(relativePath string) []string {
	normalizedPath := strings.ReplaceAll(relativePath, "\\", pathSegmentSeparator)
	trimmedPath := strings.Trim(normalizedPath, pathSegmentSeparator)
	if trimmedPath == "" {
		return nil
	}
	return strings.Split(trimmedPath, pathSegmentSeparator)
}

// CapitalizeWord upper-cases the first rune of a word and lower-cases the rest.
func CapitalizeWord(word string) string {
	if word == "" {
		return word
	}
	runes := []rune(word)
	first := unicode.ToUpper(runes[0])
	rest := strings.ToLower(string(runes[1:]))
	return string(first) + rest
}
