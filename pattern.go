package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// loadPatterns reads the pattern file: one hex suffix per line, trimmed and
// uppercased. Lines shorter than minPatternLen are dropped with a single
// aggregated warning. An empty result falls back to defaultPattern so the
// search always has something to look for.
func loadPatterns(path string) ([]string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("pattern file %s does not exist", path)
		}
		return nil, fmt.Errorf("stat pattern file %s: %w", path, err)
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("pattern path %s is a directory, not a file", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pattern file %s: %w", path, err)
	}
	defer f.Close()

	var patterns []string
	droppedShort := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.ToUpper(strings.TrimSpace(sc.Text()))
		switch {
		case line == "":
		case len(line) < minPatternLen:
			droppedShort++
		default:
			patterns = append(patterns, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read pattern file %s: %w", path, err)
	}

	if droppedShort > 0 {
		logger.Warn("dropped short patterns, suffixes this short match too often",
			"path", path, "dropped", droppedShort, "min_length", minPatternLen)
	}
	if len(patterns) == 0 {
		logger.Warn("no usable patterns found, using default", "pattern", defaultPattern)
		patterns = append(patterns, defaultPattern)
	}
	return patterns, nil
}
