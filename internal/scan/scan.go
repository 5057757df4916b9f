// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan collects input files from a directory tree.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/zwli/paperbatch/pkg/types"
)

// Scan walks root recursively and returns every regular file whose
// extension matches ext (case-insensitive, with leading dot: ".pdf").
// The order is filepath.WalkDir order, lexical within each directory.
//
// A missing root is a configuration error: it aborts before any work,
// never mid-batch. Unreadable subdirectories are skipped, not fatal.
func Scan(root, ext string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &types.ConfigError{Field: "input-dir", Reason: fmt.Sprintf("directory %s does not exist", root)}
		}
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, &types.ConfigError{Field: "input-dir", Reason: fmt.Sprintf("%s is not a directory", root)}
	}

	ext = strings.ToLower(ext)
	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// An unreadable subtree drops out of the scan; it must not
			// abort a batch that has readable work elsewhere.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if strings.ToLower(filepath.Ext(path)) == ext {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return paths, nil
}
