package imageio

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// supported extensions, matched case-sensitively against the literal suffix
var supportedExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// Discover lists candidate images directly under dir in lexicographic path
// order, the canonical iteration order for reproducible runs. When limit > 0
// the list is truncated to the first limit paths; files beyond the cap are
// never opened.
func Discover(dir string, limit int) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read images dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if supportedExts[filepath.Ext(e.Name())] {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	if limit > 0 && len(paths) > limit {
		paths = paths[:limit]
	}
	return paths, nil
}
