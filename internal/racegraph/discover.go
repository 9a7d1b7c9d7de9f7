package racegraph

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/banshee-data/racegraph/internal/fsutil"
	"github.com/banshee-data/racegraph/internal/security"
)

// discover lists the files in dir whose extension is one of exts, sorted by
// name. Subdirectories are ignored. Symlinks are followed only when they stay
// inside dir; anything else is reported in skipped and left alone.
func discover(fsys fsutil.FileSystem, dir string, exts []string) (files, skipped []string, err error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("list %s: %w", dir, err)
	}

	for _, e := range entries {
		if !hasExtension(e.Name(), exts) {
			continue
		}
		path := filepath.Join(dir, e.Name())

		if e.Type()&fs.ModeSymlink != 0 {
			if err := security.ValidatePathWithinDirectory(path, dir); err != nil {
				skipped = append(skipped, path)
				continue
			}
			if fsutil.IsDir(fsys, path) {
				continue
			}
		} else if e.IsDir() {
			continue
		}

		files = append(files, path)
	}

	sort.Strings(files)
	return files, skipped, nil
}

func hasExtension(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return false
	}
	for _, e := range exts {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}
