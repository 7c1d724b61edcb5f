// Package module implements MiniScript's import path resolution. It
// is deliberately pure — filesystem probing only, no
// lexing/parsing/evaluating — so it has no dependency on package eval
// and can be unit tested in isolation.
package module

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Resolve finds the file import path refers to, trying each
// candidate base directory in order:
//  1. the directory containing currentFile, if known (not "" and not
//     the synthetic "<unknown>" used for interactive sessions)
//  2. the current working directory
//  3. each ';'-separated entry of MODULESPATH, in order
//
// At each base directory, path is tried as given, then with a ".ms"
// suffix appended if it lacks one. The first candidate that exists
// wins; otherwise Resolve reports "Cannot find module: PATH".
func Resolve(path string, currentFile string) (string, error) {
	for _, dir := range searchDirs(currentFile) {
		for _, candidate := range candidates(path) {
			full := candidate
			if !filepath.IsAbs(full) {
				full = filepath.Join(dir, candidate)
			}
			if _, err := os.Stat(full); err == nil {
				return full, nil
			}
		}
	}
	return "", fmt.Errorf("Cannot find module: %s", path)
}

func searchDirs(currentFile string) []string {
	var dirs []string
	if currentFile != "" && currentFile != "<unknown>" {
		dirs = append(dirs, filepath.Dir(currentFile))
	}
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, cwd)
	}
	if mp := os.Getenv("MODULESPATH"); mp != "" {
		for _, entry := range strings.Split(mp, ";") {
			if entry != "" {
				dirs = append(dirs, entry)
			}
		}
	}
	return dirs
}

func candidates(path string) []string {
	if strings.HasSuffix(path, ".ms") {
		return []string{path}
	}
	return []string{path, path + ".ms"}
}
