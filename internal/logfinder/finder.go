// Package logfinder locates the log file to diagram when only a directory is given.
package logfinder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// EnvLogDir names the environment variable consulted when no directory is given.
const EnvLogDir = "LOG2SEQ_LOGDIR"

// DefaultGlob selects log files inside a log directory.
const DefaultGlob = "*.log"

// Sentinel errors.
var (
	ErrLogDirNotFound = errors.New("log directory not found")
	ErrNoLogFiles     = errors.New("no log files found")
)

// FindLogDir returns the log directory to search.
//
// Priority:
//  1. explicit (if non-empty)
//  2. LOG2SEQ_LOGDIR environment variable
//
// The returned path has symlinks resolved.
func FindLogDir(explicit string) (string, error) {
	if explicit != "" {
		if resolved := resolveDir(explicit); resolved != "" {
			return resolved, nil
		}
		return "", fmt.Errorf("%w: specified path is not a directory", ErrLogDirNotFound)
	}

	if envDir := os.Getenv(EnvLogDir); envDir != "" {
		if resolved := resolveDir(envDir); resolved != "" {
			return resolved, nil
		}
		return "", fmt.Errorf("%w: %s environment variable points to invalid directory", ErrLogDirNotFound, EnvLogDir)
	}

	return "", ErrLogDirNotFound
}

// logCandidate caches a file's modification time so files deleted between
// stat and sort cannot disturb the ordering.
type logCandidate struct {
	path    string
	modTime int64
}

// FindLatestLogFile returns the most recently modified regular file in dir
// matching glob (DefaultGlob if empty). Ties are broken by name, latest first.
//
// Returns ErrNoLogFiles if nothing matches.
func FindLatestLogFile(dir, glob string) (string, error) {
	if glob == "" {
		glob = DefaultGlob
	}
	matches, err := filepath.Glob(filepath.Join(dir, glob))
	if err != nil {
		return "", fmt.Errorf("globbing log files: %w", err)
	}

	candidates := make([]logCandidate, 0, len(matches))
	for _, m := range matches {
		info, err := os.Lstat(m)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		candidates = append(candidates, logCandidate{
			path:    m,
			modTime: info.ModTime().UnixNano(),
		})
	}

	if len(candidates) == 0 {
		return "", ErrNoLogFiles
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].modTime != candidates[j].modTime {
			return candidates[i].modTime > candidates[j].modTime
		}
		return candidates[i].path > candidates[j].path
	})
	return candidates[0].path, nil
}

// Find resolves the directory with FindLogDir and returns its latest log file.
func Find(explicitDir, glob string) (string, error) {
	dir, err := FindLogDir(explicitDir)
	if err != nil {
		return "", err
	}
	return FindLatestLogFile(dir, glob)
}

// resolveDir returns dir with symlinks resolved, or "" if it is not a directory.
func resolveDir(dir string) string {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return ""
	}
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return ""
	}
	return resolved
}
