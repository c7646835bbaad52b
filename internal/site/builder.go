// Package site renders a loaded model.Site into a directory of HTML pages,
// assets and Atom feeds.
package site

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/otiai10/copy"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hayatroid/daily-llm/internal/config"
	"github.com/hayatroid/daily-llm/internal/model"
	"github.com/hayatroid/daily-llm/internal/route"
	"github.com/hayatroid/daily-llm/internal/theme"
)

type Builder struct {
	Config config.Config
	Logger *zap.Logger
	// Workers bounds concurrent page rendering; defaults to GOMAXPROCS.
	Workers int
}

func NewBuilder(cfg config.Config, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{Config: cfg, Logger: logger}
}

// Build replaces the output directory with a fresh rendering of site.
// Layouts are parsed first so that a broken template leaves the previous
// output in place.
func (b *Builder) Build(ctx context.Context, site *model.Site) error {
	start := time.Now()
	out := b.Config.OutputDir

	tpls, err := NewTemplates(b.Config.LayoutsDir)
	if err != nil {
		return err
	}

	b.Logger.Debug("cleaning output directory", zap.String("dir", out))
	if err := os.RemoveAll(out); err != nil {
		return fmt.Errorf("failed to remove output directory %q: %w", out, err)
	}
	if err := os.MkdirAll(out, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create output directory %q: %w", out, err)
	}

	if err := b.copyStatic(); err != nil {
		return err
	}

	routes := route.Paths(site)
	g, ctx := errgroup.WithContext(ctx)
	workers := b.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(workers)
	for _, r := range routes {
		r := r
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := b.newPage(site, r)
			if err != nil {
				return err
			}
			path := filepath.Join(out, filepath.FromSlash(r.Slug()), "index.html")
			return b.render(tpls, layouts[r.Kind], path, p)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := b.render(tpls, notFoundLayout, filepath.Join(out, "404.html"), b.notFoundPage(site)); err != nil {
		return err
	}
	if err := b.writeFeeds(site); err != nil {
		return fmt.Errorf("failed to write atom feeds: %w", err)
	}

	b.Logger.Info("site built",
		zap.String("output", out),
		zap.Int("pages", len(routes)+1),
		zap.Duration("took", time.Since(start)))
	return nil
}

// copyStatic writes the embedded theme assets, then the user's static
// directory on top of them.
func (b *Builder) copyStatic() error {
	out := b.Config.OutputDir
	err := copy.Copy(".", out, copy.Options{
		FS:                theme.Static(),
		PermissionControl: copy.AddPermission(0o200),
	})
	if err != nil {
		return fmt.Errorf("failed to copy theme assets: %w", err)
	}

	dir := b.Config.StaticDir
	if dir == "" {
		return nil
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		b.Logger.Debug("static directory not found, skipping copy", zap.String("dir", dir))
		return nil
	}
	b.Logger.Debug("copying static assets", zap.String("from", dir), zap.String("to", out))
	if err := copy.Copy(dir, out); err != nil {
		return fmt.Errorf("failed to copy static assets: %w", err)
	}
	return nil
}

func (b *Builder) render(tpls *Templates, layout, path string, p *Page) error {
	var buf bytes.Buffer
	if err := tpls.Execute(&buf, layout, p); err != nil {
		return fmt.Errorf("failed to render %q: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory for %q: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %q: %w", path, err)
	}
	b.Logger.Debug("generated page", zap.String("path", path), zap.String("layout", layout))
	return nil
}
