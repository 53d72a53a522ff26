package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/claudewatch/claudewatch/internal/util"
)

// FileScanner locates usage log files under the provider's local data
// directory.
type FileScanner struct {
	baseDir string
}

// NewFileScanner creates a new FileScanner instance.
func NewFileScanner(baseDir string) *FileScanner {
	return &FileScanner{baseDir: baseDir}
}

// Scan walks the data directory and returns all .jsonl file paths. A
// missing directory yields an empty result, not an error: no logs is a
// valid state for a fresh installation.
func (s *FileScanner) Scan() ([]string, error) {
	start := time.Now()
	var files []string
	dirCount := 0
	totalCount := 0

	util.LogDebug(fmt.Sprintf("Start scanning directory: %s", s.baseDir))

	if _, err := os.Stat(s.baseDir); os.IsNotExist(err) {
		util.LogDebug(fmt.Sprintf("Data directory does not exist: %s", s.baseDir))
		return nil, nil
	}

	err := filepath.Walk(s.baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			util.LogDebug(fmt.Sprintf("Skip file (error): %s - %v", path, err))
			return nil
		}

		if info.IsDir() {
			dirCount++
			return nil
		}

		totalCount++
		if strings.HasSuffix(strings.ToLower(path), ".jsonl") {
			files = append(files, path)
		}

		return nil
	})

	duration := time.Since(start)
	util.LogDebug(fmt.Sprintf("File scan completed: duration %v, scanned %d directories, %d files, found %d JSONL files",
		duration, dirCount, totalCount, len(files)))

	return files, err
}
