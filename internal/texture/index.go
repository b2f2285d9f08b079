package texture

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"material-texture-bench/internal/naming"
)

// Copies maps generated material indexes to the files written for them.
type Copies struct {
	entries map[int][]string
}

// ScanCopies indexes the image copies and previews of generated materials in dir.
func ScanCopies(dir string) (*Copies, error) {
	c := &Copies{entries: make(map[int][]string)}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("texture: scan %s: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		base := e.Name()
		var stem string
		switch {
		case strings.HasSuffix(base, ".preview.webp"):
			stem = strings.TrimSuffix(base, ".preview.webp")
		case strings.EqualFold(filepath.Ext(base), ".jpg"):
			stem = strings.TrimSuffix(base, filepath.Ext(base))
		default:
			continue
		}
		if i, ok := naming.IndexOf(stem); ok {
			c.entries[i] = append(c.entries[i], filepath.Join(dir, base))
		}
	}
	return c, nil
}

// Len returns the number of indexes with files.
func (c *Copies) Len() int {
	return len(c.entries)
}

// Beyond returns the files of every index >= n, sorted.
func (c *Copies) Beyond(n int) []string {
	var out []string
	for i, files := range c.entries {
		if i >= n {
			out = append(out, files...)
		}
	}
	sort.Strings(out)
	return out
}

// RemoveBeyond deletes the files of every index >= n and returns how many went.
func (c *Copies) RemoveBeyond(n int) (int, error) {
	var errs []error
	removed := 0
	for _, p := range c.Beyond(n) {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
			continue
		}
		removed++
	}
	return removed, errors.Join(errs...)
}
