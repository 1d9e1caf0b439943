// Package cycler keeps the ordered set of shader files in a directory and
// steps through it with wraparound.
package cycler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrEmptyDirectory is returned by Load when no candidate file was found.
var ErrEmptyDirectory = errors.New("no shader files found")

// Cycler is the file selection state machine. The listing is read once per
// Load; later changes on disk are not noticed until the next Load.
type Cycler struct {
	dir        string
	extensions []string
	files      []string
	current    string
}

// New returns a cycler over dir for files with one of the extensions
// (compared case-insensitively, with the leading dot).
func New(dir string, extensions ...string) *Cycler {
	if dir == "" {
		dir = "."
	}
	exts := make([]string, 0, len(extensions))
	for _, e := range extensions {
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts = append(exts, strings.ToLower(e))
	}
	return &Cycler{dir: dir, extensions: exts}
}

// Dir returns the directory being listed.
func (c *Cycler) Dir() string { return c.dir }

// Load lists the directory in lexicographic order.
func (c *Cycler) Load() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", c.dir, err)
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !c.recognised(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(c.dir, e.Name()))
	}
	sort.Strings(files)
	c.files = files
	if len(files) == 0 {
		return fmt.Errorf("%s: %w", c.dir, ErrEmptyDirectory)
	}
	return nil
}

func (c *Cycler) recognised(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range c.extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Files returns the current listing.
func (c *Cycler) Files() []string {
	return append([]string(nil), c.files...)
}

// Current returns the selected path, empty before any selection.
func (c *Cycler) Current() string { return c.current }

// SetCurrent records path as selected, whether or not it is in the listing.
func (c *Cycler) SetCurrent(path string) { c.current = path }

// Index returns the position of the current file, -1 if it is not listed.
func (c *Cycler) Index() int {
	if c.current == "" {
		return -1
	}
	want := canonical(c.current)
	for i, f := range c.files {
		if canonical(f) == want {
			return i
		}
	}
	return -1
}

// Next selects the file after the current one. A current file outside the
// listing counts as sitting just before the first entry. ok is false, and
// nothing changes, when the listing is empty.
func (c *Cycler) Next() (string, bool) {
	return c.step(1)
}

// Previous selects the file before the current one. A current file outside
// the listing counts as sitting just after the last entry.
func (c *Cycler) Previous() (string, bool) {
	return c.step(-1)
}

func (c *Cycler) step(delta int) (string, bool) {
	n := len(c.files)
	if n == 0 {
		return "", false
	}
	i := c.Index()
	if i < 0 && delta < 0 {
		i = n
	}
	i = ((i+delta)%n + n) % n
	c.current = c.files[i]
	return c.current, true
}

func canonical(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
