package tree

import (
	"fmt"
	"sort"
	"strings"
)

// node is a name-keyed hierarchy; an empty map denotes a file.
type node map[string]node

// RenderPaths reconstructs a nested hierarchy from flat slash-separated
// relative paths and renders it. Children sort with leaves (files) after
// non-leaves, then case-insensitively by name. With stats enabled each
// directory line carries an " [M: Xf, Yd]" annotation counting its matched
// children.
func RenderPaths(rootName string, relPaths []string, style Style, showStats bool) []string {
	root := node{}
	for _, p := range relPaths {
		cur := root
		for _, part := range strings.Split(p, "/") {
			if part == "" || part == "." {
				continue
			}
			child, ok := cur[part]
			if !ok {
				child = node{}
				cur[part] = child
			}
			cur = child
		}
	}
	if len(root) == 0 {
		return nil
	}

	var lines []string
	buildPathLines(root, "", rootName, style, showStats, &lines)
	return lines
}

func buildPathLines(n node, prefix, rootName string, style Style, showStats bool, lines *[]string) {
	names := sortedChildren(n)
	if prefix == "" {
		*lines = append(*lines, matchLabel(rootName, n, showStats))
	}
	for i, name := range names {
		last := i == len(names)-1
		connector := style.Tee
		if last {
			connector = style.Elbow
		}
		child := n[name]
		display := name
		if len(child) > 0 {
			display = matchLabel(name, child, showStats)
		}
		*lines = append(*lines, prefix+connector+display)
		if len(child) > 0 {
			ext := style.Pipe
			if last {
				ext = style.Space
			}
			buildPathLines(child, prefix+ext, rootName, style, showStats, lines)
		}
	}
}

func sortedChildren(n node) []string {
	names := make([]string, 0, len(n))
	for name := range n {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		li, lj := len(n[names[i]]) == 0, len(n[names[j]]) == 0
		if li != lj {
			return !li // non-leaves (directories) first
		}
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	return names
}

func matchLabel(name string, n node, showStats bool) string {
	if !showStats {
		return name
	}
	var files, dirs int
	for _, child := range n {
		if len(child) == 0 {
			files++
		} else {
			dirs++
		}
	}
	return fmt.Sprintf("%s [M: %df, %dd]", name, files, dirs)
}
