package content

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/hayatroid/daily-llm/internal/model"
)

var ErrUnsupportedPath = errors.New("unsupported content path")

const (
	markdownExt = ".md"
	indexName   = "index"
	summaryName = "summary"
)

// Location is where a content file sits in the site.
type Location struct {
	Slug string
	Date string
	Name string
	Kind model.Kind
}

// Locate maps a path relative to the content directory to its slug:
//
//	index.md                -> ""
//	2024-01-15/index.md     -> 2024-01-15
//	2024-01-15/001-topic.md -> 2024-01-15/001-topic
func Locate(rel string) (Location, error) {
	rel = filepath.ToSlash(filepath.Clean(rel))
	if path.Ext(rel) != markdownExt {
		return Location{}, fmt.Errorf("%s: not a markdown file: %w", rel, ErrUnsupportedPath)
	}

	parts := strings.Split(strings.TrimSuffix(rel, markdownExt), "/")
	switch len(parts) {
	case 1:
		if parts[0] != indexName {
			return Location{}, fmt.Errorf("%s: only index.md may live at the top level: %w", rel, ErrUnsupportedPath)
		}
		return Location{Name: indexName, Kind: model.KindIndex}, nil

	case 2:
		date, name := parts[0], parts[1]
		if date == "tags" {
			return Location{}, fmt.Errorf("%s: %q is reserved: %w", rel, date, ErrUnsupportedPath)
		}
		if !validSegment(date) || !validSegment(name) {
			return Location{}, fmt.Errorf("%s: empty or relative path segment: %w", rel, ErrUnsupportedPath)
		}
		switch name {
		case indexName:
			return Location{Slug: date, Date: date, Name: name, Kind: model.KindIndex}, nil
		case summaryName:
			return Location{Slug: date + "/" + name, Date: date, Name: name, Kind: model.KindSummary}, nil
		}
		return Location{Slug: date + "/" + name, Date: date, Name: name, Kind: model.KindConversation}, nil
	}
	return Location{}, fmt.Errorf("%s: nested too deep: %w", rel, ErrUnsupportedPath)
}

// validSegment rejects names that would resolve to another page's
// output directory once joined into a path.
func validSegment(s string) bool {
	return s != "" && s != "." && s != ".."
}
