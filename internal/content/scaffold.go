package content

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"
)

var numberedFile = regexp.MustCompile(`^(\d+)-.*\.md$`)

type scaffoldMeta struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
	Time        string   `yaml:"time"`
	Draft       bool     `yaml:"draft"`
}

const transcriptSkeleton = "## User\n\n\n\n## Assistant\n\n"

// Scaffold creates <dir>/<YYYY-MM-DD>/<NNN>-<name>.md for now, numbered one
// past the highest existing conversation of that day, and returns its path.
// The file starts as a draft.
func Scaffold(dir, name string, now time.Time) (string, error) {
	slug := slugify(name)
	if slug == "" {
		return "", fmt.Errorf("cannot derive a file name from %q", name)
	}

	dayDir := filepath.Join(dir, now.Format(time.DateOnly))
	if err := os.MkdirAll(dayDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create directory %q: %w", dayDir, err)
	}
	n, err := nextNumber(dayDir)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dayDir, fmt.Sprintf("%03d-%s%s", n, slug, markdownExt))

	title := cases.Title(language.English).String(strings.ReplaceAll(slug, "-", " "))
	fm, err := yaml.Marshal(scaffoldMeta{
		Title:       title,
		Description: "",
		Tags:        []string{},
		Time:        now.Format("15:04"),
		Draft:       true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode frontmatter: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(fm)
	buf.WriteString("---\n\n")
	buf.WriteString(transcriptSkeleton)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create %q: %w", path, err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		return "", errors.Join(fmt.Errorf("failed to write %q: %w", path, err), f.Close())
	}
	return path, f.Close()
}

func nextNumber(dayDir string) (int, error) {
	entries, err := os.ReadDir(dayDir)
	if err != nil {
		return 0, fmt.Errorf("failed to read %q: %w", dayDir, err)
	}
	highest := 0
	for _, e := range entries {
		m := numberedFile.FindStringSubmatch(e.Name())
		if m == nil || e.IsDir() {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > highest {
			highest = n
		}
	}
	return highest + 1, nil
}
