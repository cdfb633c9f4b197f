// Package session locates Claude Code session transcripts on disk.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotFound reports that a session spec did not resolve to a
// transcript file.
var ErrNotFound = errors.New("session not found")

// DefaultSearchDirs returns the project directories searched when no
// explicit list is configured: every directory under ~/.claude/projects,
// in lexical order.
func DefaultSearchDirs() []string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	matches, err := filepath.Glob(filepath.Join(homeDir, ".claude", "projects", "*"))
	if err != nil {
		return nil
	}
	sort.Strings(matches)

	var dirs []string
	for _, match := range matches {
		if info, err := os.Stat(match); err == nil && info.IsDir() {
			dirs = append(dirs, match)
		}
	}
	return dirs
}

// Resolve finds the transcript file for a session spec, which can be a
// direct file path, a transcript filename, or a bare session ID.
// Search dirs are tried in order; the first <dir>/<id>.jsonl that
// exists wins.
func Resolve(spec string, searchDirs []string) (string, error) {
	if strings.ContainsRune(spec, os.PathSeparator) {
		path := expandHome(spec)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	sessionID := strings.TrimSuffix(spec, ".jsonl")

	for _, dir := range searchDirs {
		candidate := filepath.Join(expandHome(dir), sessionID+".jsonl")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("could not find session file for %q: %w", spec, ErrNotFound)
}

// expandHome resolves a leading ~ against the user's home directory.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if homeDir, err := os.UserHomeDir(); err == nil {
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}
