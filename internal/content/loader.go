package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hayatroid/daily-llm/internal/model"
)

// Loader reads a content directory into a model.Site.
type Loader struct {
	Markdown      *Markdown
	PreviewLength int
	IncludeDrafts bool
	// Workers bounds concurrent file parsing; defaults to GOMAXPROCS.
	Workers int
	Logger  *zap.Logger
}

func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		Markdown:      NewMarkdown(),
		PreviewLength: DefaultPreviewLength,
		Logger:        logger,
	}
}

type sourceFile struct {
	path string
	loc  Location
}

// Load walks dir and parses every markdown file in it concurrently.
func (l *Loader) Load(ctx context.Context, dir string) (*model.Site, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("content directory %q: %w", dir, err)
	}

	var files []sourceFile
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("error accessing path %q during walk: %w", path, err)
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), markdownExt) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		loc, err := Locate(rel)
		if errors.Is(err, ErrUnsupportedPath) {
			l.Logger.Warn("skipping content file", zap.String("path", path), zap.Error(err))
			return nil
		}
		if err != nil {
			return err
		}
		files = append(files, sourceFile{path: path, loc: loc})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error during content collection walk: %w", err)
	}

	entries := make([]*model.Entry, len(files))
	g, ctx := errgroup.WithContext(ctx)
	workers := l.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(workers)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			e, err := l.parseFile(f)
			if err != nil {
				return err
			}
			entries[i] = e
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	kept := entries[:0]
	for _, e := range entries {
		if e != nil {
			kept = append(kept, e)
		}
	}
	site := model.NewSite(kept)
	l.Logger.Info("content loaded",
		zap.String("dir", dir),
		zap.Int("entries", len(site.Entries)),
		zap.Int("conversations", len(site.Conversations())))
	return site, nil
}

func (l *Loader) parseFile(f sourceFile) (*model.Entry, error) {
	src, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", f.path, err)
	}

	meta, body, parseErr := ParseFrontmatter(src)
	if parseErr != nil {
		l.Logger.Warn("could not parse frontmatter, treating as pure markdown",
			zap.String("path", f.path), zap.Error(parseErr))
	}
	if meta.Draft() && !l.IncludeDrafts {
		l.Logger.Debug("skipping draft", zap.String("path", f.path))
		return nil, nil
	}
	if err := ValidateMeta(meta); err != nil {
		return nil, fmt.Errorf("invalid frontmatter in %q: %w", f.path, errors.Join(err, parseErr))
	}

	body = bytes.TrimSpace(body)
	html, err := l.Markdown.Render(body)
	if err != nil {
		return nil, fmt.Errorf("failed to convert markdown to HTML for file %q: %w", f.path, err)
	}

	text := string(body)
	return &model.Entry{
		Slug:       f.loc.Slug,
		Date:       f.loc.Date,
		Name:       f.loc.Name,
		Kind:       f.loc.Kind,
		SourcePath: f.path,
		Meta:       meta,
		Body:       body,
		HTML:       html,
		Preview:    Preview(text, l.PreviewLength),
		Exchanges:  CountExchanges(text),
		HasCode:    HasCode(text),
	}, nil
}
