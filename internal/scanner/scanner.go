// Package scanner walks a source tree and collects file records for clustering.
package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/temirov/semnav/internal/types"
	"github.com/temirov/semnav/internal/utils"
)

const (
	// ContentPrefixLimit bounds the number of characters retained from each
	// file. The prefix is kept for downstream consumers; current clustering
	// rules do not consult it.
	ContentPrefixLimit = 2000

	hiddenEntryPrefix        = "."
	invalidSequenceReplacer  = string(utf8.RuneError)
	errorRootMissingFormat   = "root path '%s' does not exist"
	errorRootNotDirectory    = "root path '%s' is not a directory"
	errorStatFormat          = "stat failed for '%s': %w"
	warningAccessPathMessage = "error accessing path"
	warningReadFileMessage   = "failed to read file"
)

// DefaultExtensions lists the file extensions scanned when the caller does
// not supply its own set.
var DefaultExtensions = []string{".ts", ".tsx", ".js", ".jsx", ".py", ".java", ".go", ".rs"}

// DefaultExcludedDirectories lists directory names pruned from every walk in
// addition to hidden entries.
var DefaultExcludedDirectories = []string{"node_modules", "dist", "build", "__pycache__"}

// NotDirectoryError reports a scan root that is missing or not a directory.
// Callers treat it as an empty result rather than a protocol failure.
type NotDirectoryError struct {
	Path string
	Err  error
}

// Error returns the error string.
func (rootError NotDirectoryError) Error() string {
	if rootError.Err != nil {
		return rootError.Err.Error()
	}
	return fmt.Sprintf(errorRootNotDirectory, rootError.Path)
}

// Unwrap exposes the wrapped error.
func (rootError NotDirectoryError) Unwrap() error {
	return rootError.Err
}

// Options configures a Service.
type Options struct {
	// ExcludedDirectories extends DefaultExcludedDirectories.
	ExcludedDirectories []string
	// ContentPrefixLimit overrides ContentPrefixLimit when positive.
	ContentPrefixLimit int
}

// Service scans directory trees into flat lists of file records.
type Service struct {
	logger              *zap.Logger
	excludedDirectories []string
	contentPrefixLimit  int
}

// NewService constructs a Service with defaults applied.
func NewService(logger *zap.Logger, options Options) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	excluded := append([]string{}, DefaultExcludedDirectories...)
	excluded = append(excluded, options.ExcludedDirectories...)
	limit := options.ContentPrefixLimit
	if limit <= 0 {
		limit = ContentPrefixLimit
	}
	return &Service{
		logger:              logger,
		excludedDirectories: utils.DeduplicatePatterns(excluded),
		contentPrefixLimit:  limit,
	}
}

// Scan walks rootPath and returns one record per retained file. Files are
// retained when their name ends with one of the requested extensions and no
// path component below the root is hidden or excluded. Per-file read errors
// are logged and skipped; they never abort the walk. A missing or
// non-directory root yields a NotDirectoryError.
func (service *Service) Scan(rootPath string, extensions []string) ([]types.FileRecord, error) {
	var fileRecords []types.FileRecord
	walkError := service.walk(rootPath, extensions, func(record types.FileRecord) error {
		fileRecords = append(fileRecords, record)
		return nil
	})
	if walkError != nil {
		return nil, walkError
	}
	return fileRecords, nil
}

// ScanStream walks rootPath and sends each retained record to out, stopping
// early when ctx is canceled. The channel is not closed by this function.
func (service *Service) ScanStream(ctx context.Context, rootPath string, extensions []string, out chan<- types.FileRecord) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return service.walk(rootPath, extensions, func(record types.FileRecord) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case out <- record:
			return nil
		}
	})
}

// walk performs the filtered traversal shared by Scan and ScanStream.
func (service *Service) walk(rootPath string, extensions []string, visit func(types.FileRecord) error) error {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	absoluteRootPath, absolutePathError := filepath.Abs(rootPath)
	if absolutePathError != nil {
		return NotDirectoryError{Path: rootPath, Err: absolutePathError}
	}
	cleanedRootPath := filepath.Clean(absoluteRootPath)

	rootInformation, rootStatError := os.Stat(cleanedRootPath)
	if rootStatError != nil {
		if os.IsNotExist(rootStatError) {
			return NotDirectoryError{Path: rootPath, Err: fmt.Errorf(errorRootMissingFormat, rootPath)}
		}
		return NotDirectoryError{Path: rootPath, Err: fmt.Errorf(errorStatFormat, rootPath, rootStatError)}
	}
	if !rootInformation.IsDir() {
		return NotDirectoryError{Path: rootPath}
	}

	directoryWalkError := filepath.WalkDir(cleanedRootPath, func(walkedPath string, directoryEntry os.DirEntry, accessError error) error {
		if accessError != nil {
			service.logger.Warn(warningAccessPathMessage, zap.String("path", walkedPath), zap.Error(accessError))
			if directoryEntry != nil && directoryEntry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relativePath := utils.RelativePathOrSelf(walkedPath, cleanedRootPath)
		if relativePath == "." {
			return nil
		}
		entryName := directoryEntry.Name()
		if directoryEntry.IsDir() {
			if service.isExcludedComponent(entryName) {
				return filepath.SkipDir
			}
			return nil
		}
		if service.isExcludedComponent(entryName) {
			return nil
		}

		matchedExtension, matched := matchExtension(entryName, extensions)
		if !matched {
			return nil
		}

		fileBytes, fileReadError := os.ReadFile(walkedPath)
		if fileReadError != nil {
			service.logger.Warn(warningReadFileMessage, zap.String("path", walkedPath), zap.Error(fileReadError))
			return nil
		}

		decodedContent := decodePermissively(fileBytes)
		return visit(types.FileRecord{
			RelativePath:  relativePath,
			AbsolutePath:  walkedPath,
			ContentPrefix: truncateRunes(decodedContent, service.contentPrefixLimit),
			Size:          utf8.RuneCountInString(decodedContent),
			Extension:     matchedExtension,
		})
	})
	return directoryWalkError
}

// isExcludedComponent reports whether a single path component blocks
// traversal: hidden entries and excluded directory names are pruned wherever
// they appear in the tree, not only at the leaf.
func (service *Service) isExcludedComponent(componentName string) bool {
	if strings.HasPrefix(componentName, hiddenEntryPrefix) {
		return true
	}
	return utils.ContainsString(service.excludedDirectories, componentName)
}

// matchExtension returns the first extension the file name ends with.
func matchExtension(fileName string, extensions []string) (string, bool) {
	for _, extension := range extensions {
		if strings.HasSuffix(fileName, extension) {
			return extension, true
		}
	}
	return "", false
}

// decodePermissively converts raw bytes to a string, replacing invalid UTF-8
// sequences instead of failing.
func decodePermissively(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	return strings.ToValidUTF8(string(raw), invalidSequenceReplacer)
}

// truncateRunes bounds text to the first limit characters.
func truncateRunes(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:limit])
}
