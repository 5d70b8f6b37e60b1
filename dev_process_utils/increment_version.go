// Command increment_version bumps the patch component of the Version
// constant in cmd/dirsnap/main.go. Run it before tagging a release.
package main

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

const defaultVersionFile = "cmd/dirsnap/main.go"

var versionLine = regexp.MustCompile(`^(const Version\s*=\s*"(\d+\.\d+\.))(\d+)(".*)$`)

func bumpPatch(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %q: %w", path, err)
	}

	lines := strings.Split(string(content), "\n")
	bumped := ""
	for i, line := range lines {
		m := versionLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		patch, err := strconv.Atoi(m[3])
		if err != nil {
			return "", fmt.Errorf("invalid patch number %q in %q", m[3], path)
		}
		bumped = fmt.Sprintf("%s%d", m[2], patch+1)
		lines[i] = fmt.Sprintf("%s%d%s", m[1], patch+1, m[4])
		break
	}
	if bumped == "" {
		return "", fmt.Errorf("no Version constant found in %q", path)
	}

	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return "", fmt.Errorf("writing %q: %w", path, err)
	}
	return bumped, nil
}

func main() {
	path := defaultVersionFile
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	version, err := bumpPatch(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Version bumped to %s in %s\n", version, path)
}
