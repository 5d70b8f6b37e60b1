// Package tree renders directory hierarchies as connector-glyph line art,
// either from live filesystem traversal or reconstructed from a flat list of
// matched paths.
package tree

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ataylor/dirsnap/internal/criteria"
)

type fsEntry struct {
	name  string
	path  string
	isDir bool
}

// RenderFilesystem walks root live, honoring crit, and emits one line per
// included node. Children sort alphabetically, case-insensitive. With stats
// enabled each directory line carries an
// " [I: Xf, Yd | T: Xf, Yd]" annotation: included vs total children.
func RenderFilesystem(root string, crit *criteria.Criteria, style Style, showStats bool) []string {
	var totals map[string][2]int
	if showStats {
		totals = collectTotals(root, crit)
	}
	r := &fsRenderer{crit: crit, style: style, totals: totals, showStats: showStats}

	var lines []string
	r.build(root, filepath.Base(root), nil, &lines)
	return lines
}

type fsRenderer struct {
	crit      *criteria.Criteria
	style     Style
	totals    map[string][2]int
	showStats bool
}

func (r *fsRenderer) build(dir, displayName string, prefix []string, lines *[]string) {
	children, err := r.displayable(dir)
	if err != nil {
		*lines = append(*lines,
			strings.Join(prefix, "")+r.style.Elbow+
				fmt.Sprintf("[error accessing %s]", filepath.Base(dir)))
		return
	}
	if len(prefix) == 0 {
		*lines = append(*lines, r.label(dir, displayName, children))
	}
	for i, child := range children {
		last := i == len(children)-1
		connector := r.style.Tee
		if last {
			connector = r.style.Elbow
		}
		name := child.name
		if child.isDir {
			if sub, subErr := r.displayable(child.path); subErr == nil {
				name = r.label(child.path, child.name, sub)
			}
		}
		*lines = append(*lines, strings.Join(prefix, "")+connector+name)
		if child.isDir {
			ext := r.style.Pipe
			if last {
				ext = r.style.Space
			}
			r.build(child.path, child.name, append(prefix, ext), lines)
		}
	}
}

// displayable lists the included children of dir, sorted case-insensitively
// by name.
func (r *fsRenderer) displayable(dir string) ([]fsEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		slog.Debug("Cannot read directory for tree rendering.", "path", dir, "error", err)
		return nil, err
	}
	out := make([]fsEntry, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			if !r.crit.PruneDir(e.Name()) {
				out = append(out, fsEntry{name: e.Name(), path: filepath.Join(dir, e.Name()), isDir: true})
			}
			continue
		}
		if r.crit.IncludeFile(e.Name()) {
			out = append(out, fsEntry{name: e.Name(), path: filepath.Join(dir, e.Name())})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].name) < strings.ToLower(out[j].name)
	})
	return out, nil
}

func (r *fsRenderer) label(path, name string, children []fsEntry) string {
	if !r.showStats {
		return name
	}
	var inclFiles, inclDirs int
	for _, c := range children {
		if c.isDir {
			inclDirs++
		} else {
			inclFiles++
		}
	}
	total := r.totals[path]
	return fmt.Sprintf("%s [I: %df, %dd | T: %df, %dd]",
		name, inclFiles, inclDirs, total[0], total[1])
}

// collectTotals counts, per directory, the children that survive subtree
// pruning but ignore the file-level filters. Pruned subtrees contribute
// nothing at any depth.
func collectTotals(root string, crit *criteria.Criteria) map[string][2]int {
	totals := make(map[string][2]int)
	var visit func(dir string)
	visit = func(dir string) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return
		}
		var files, dirs int
		for _, e := range entries {
			if crit.PruneDir(e.Name()) {
				continue
			}
			if e.IsDir() {
				dirs++
			} else {
				files++
			}
		}
		totals[dir] = [2]int{files, dirs}
		for _, e := range entries {
			if e.IsDir() && !crit.PruneDir(e.Name()) {
				visit(filepath.Join(dir, e.Name()))
			}
		}
	}
	visit(root)
	return totals
}
