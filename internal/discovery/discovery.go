// Package discovery finds survey files of batch distances under a root
// directory.
package discovery

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPatterns are used when no batch patterns are configured.
var DefaultPatterns = []string{"**/*.distances", "**/distances.txt", "**/distances.csv"}

// SurveyFile is one distance file. Lines holds its distance entries with
// comments and blank lines removed.
type SurveyFile struct {
	Path  string
	Name  string // slash-separated, relative to the finder root
	Lines []string
}

// Finder globs survey files below a root directory.
type Finder struct {
	root        string
	fsys        fs.FS
	followLinks bool
}

// NewFinder creates a Finder rooted at root. Symlinked files are read only
// when followLinks is set.
func NewFinder(root string, followLinks bool) *Finder {
	return &Finder{root: root, fsys: os.DirFS(root), followLinks: followLinks}
}

// Find returns the survey files matching any pattern, once each and sorted
// by name. Directories, binary files and files without distance lines are
// left out.
func (f *Finder) Find(patterns []string) ([]SurveyFile, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}

	var names []string
	for _, p := range patterns {
		matched, err := doublestar.Glob(f.fsys, filepath.ToSlash(p))
		if err != nil {
			return nil, fmt.Errorf("bad batch pattern %q: %w", p, err)
		}
		names = append(names, matched...)
	}
	slices.Sort(names)
	names = slices.Compact(names)

	surveys := make([]SurveyFile, 0, len(names))
	for _, name := range names {
		sf, ok := f.load(name)
		if !ok {
			continue
		}
		surveys = append(surveys, sf)
	}
	return surveys, nil
}

func (f *Finder) load(name string) (SurveyFile, bool) {
	path := filepath.Join(f.root, filepath.FromSlash(name))
	target, ok := f.target(path)
	if !ok {
		return SurveyFile{}, false
	}

	data, err := os.ReadFile(target)
	if err != nil || looksBinary(data) {
		return SurveyFile{}, false
	}
	lines := distanceLines(string(data))
	if len(lines) == 0 {
		return SurveyFile{}, false
	}
	return SurveyFile{Path: path, Name: name, Lines: lines}, true
}

// target returns the regular file to read for path. Symlinks are only
// followed when enabled and when they resolve inside the root.
func (f *Finder) target(path string) (string, bool) {
	info, err := os.Lstat(path)
	if err != nil {
		return "", false
	}
	if info.Mode()&os.ModeSymlink != 0 {
		if !f.followLinks {
			return "", false
		}
		if path, err = filepath.EvalSymlinks(path); err != nil || !f.inside(path) {
			return "", false
		}
		if info, err = os.Stat(path); err != nil {
			return "", false
		}
	}
	return path, info.Mode().IsRegular()
}

func (f *Finder) inside(path string) bool {
	root, err := filepath.EvalSymlinks(f.root)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(root, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// looksBinary reports a NUL byte in the first 512 bytes.
func looksBinary(data []byte) bool {
	return bytes.IndexByte(data[:min(len(data), 512)], 0) >= 0
}

func distanceLines(text string) []string {
	var lines []string
	for raw := range strings.Lines(text) {
		line := strings.TrimSpace(raw)
		if line == "" || line[0] == '#' {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// Distances joins the distance lines of all files, one per line.
func Distances(files []SurveyFile) string {
	var all []string
	for _, sf := range files {
		all = append(all, sf.Lines...)
	}
	return strings.Join(all, "\n")
}
