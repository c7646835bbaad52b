package content

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/hayatroid/daily-llm/internal/model"
)

// ParseFrontmatter splits src into its YAML frontmatter and the markdown
// body. A file without frontmatter yields an empty Meta and the whole file
// as body.
func ParseFrontmatter(src []byte) (model.Meta, []byte, error) {
	var meta model.Meta
	body, err := frontmatter.Parse(bytes.NewReader(src), &meta)
	if err != nil {
		return model.Meta{}, src, err
	}
	return meta, body, nil
}

// ValidateMeta checks the frontmatter schema: title and description are
// required and tags must be usable as a path segment.
func ValidateMeta(meta model.Meta) error {
	var errs []error
	if strings.TrimSpace(meta.Title) == "" {
		errs = append(errs, errors.New("missing title"))
	}
	if strings.TrimSpace(meta.Description) == "" {
		errs = append(errs, errors.New("missing description"))
	}
	for _, t := range meta.Tags {
		switch {
		case strings.TrimSpace(t) == "":
			errs = append(errs, errors.New("empty tag"))
		case strings.ContainsAny(t, `/\`):
			errs = append(errs, fmt.Errorf("tag %q contains a slash", t))
		case t == "." || t == "..":
			errs = append(errs, fmt.Errorf("tag %q is not a valid path segment", t))
		}
	}
	return errors.Join(errs...)
}
