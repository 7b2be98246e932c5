package mzml

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/524D/mzindex/msdata"
)

// ResolveSources expands a dataset root into the ordered list of mzML
// files it denotes. A root that is itself an mzML file yields just
// that file. A directory yields its mzML entries in lexicographic
// order, subdirectories are not descended into.
func ResolveSources(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("mzml: dataset root: %v: %w", err, msdata.ErrNoSources)
	}
	if !info.IsDir() {
		if !isMzML(root) {
			return nil, fmt.Errorf("mzml: %s is not an mzML file: %w", root, msdata.ErrNoSources)
		}
		return []string{root}, nil
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("mzml: dataset root: %v: %w", err, msdata.ErrNoSources)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !isMzML(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(root, e.Name()))
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("mzml: no mzML files under %s: %w", root, msdata.ErrNoSources)
	}
	return paths, nil
}

func isMzML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".mzml")
}
