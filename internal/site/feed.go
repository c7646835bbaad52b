package site

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"time"

	atom "github.com/thomas11/atomgenerator"
	"go.uber.org/zap"

	"github.com/hayatroid/daily-llm/internal/model"
	"github.com/hayatroid/daily-llm/internal/route"
)

const feedFile = "index.xml"

func (b *Builder) feedsEnabled() bool {
	return b.Config.BaseURL != ""
}

func (b *Builder) writeFeeds(site *model.Site) error {
	if !b.feedsEnabled() {
		b.Logger.Warn("baseURL is empty, skipping atom feeds")
		return nil
	}

	out := b.Config.OutputDir
	if err := b.renderAndSaveFeed(b.Config.SiteTitle, "/", filepath.Join(out, feedFile), site.Conversations()); err != nil {
		return err
	}
	for _, tc := range site.Tags() {
		r := route.NewTag(tc.Name)
		title := b.Config.SiteTitle + " #" + tc.Name
		path := filepath.Join(out, filepath.FromSlash(r.Slug()), feedFile)
		if err := b.renderAndSaveFeed(title, r.URL(), path, site.Tagged(tc.Name)); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) renderAndSaveFeed(title, relURL, path string, entries []*model.Entry) error {
	xml, err := b.renderFeed(title, relURL, entries)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	return os.WriteFile(path, xml, 0o644)
}

func (b *Builder) renderFeed(title, relURL string, entries []*model.Entry) ([]byte, error) {
	dated := b.newestFirst(entries)

	updated := time.Now().UTC()
	if len(dated) > 0 {
		updated = dated[0].published
	}
	feed := atom.Feed{
		Title:   title,
		Link:    b.Config.AbsoluteURL(relURL),
		PubDate: updated,
	}
	author := b.Config.Author
	if author == "" {
		author = b.Config.SiteTitle
	}
	feed.AddAuthor(atom.Author{
		Name: author,
		Uri:  b.Config.AuthorURI,
	})

	for _, d := range dated {
		feed.AddEntry(b.entryFor(d.entry, d.published))
	}

	if errs := feed.Validate(); len(errs) > 0 {
		for _, e := range errs {
			b.Logger.Error("atom feed is not valid", zap.String("feed", relURL), zap.Error(e))
		}
		return nil, errors.Join(errs...)
	}
	return feed.GenXml()
}

func (b *Builder) entryFor(e *model.Entry, published time.Time) *atom.Entry {
	ae := &atom.Entry{
		Title:       e.DisplayTitle(),
		Description: e.Meta.Description,
		Link:        b.Config.AbsoluteURL(e.URL()),
		PubDate:     published,
		Content:     string(e.HTML),
	}
	for _, t := range e.Meta.Tags {
		ae.AddCategory(atom.Category{Term: t})
	}
	return ae
}

type datedEntry struct {
	entry     *model.Entry
	published time.Time
}

// newestFirst drops entries whose date cannot be parsed.
func (b *Builder) newestFirst(entries []*model.Entry) []datedEntry {
	dated := make([]datedEntry, 0, len(entries))
	for _, e := range entries {
		t, err := PublishedAt(e)
		if err != nil {
			b.Logger.Warn("leaving entry out of feed", zap.String("slug", e.Slug), zap.Error(err))
			continue
		}
		dated = append(dated, datedEntry{entry: e, published: t})
	}
	sort.SliceStable(dated, func(i, j int) bool {
		if !dated[i].published.Equal(dated[j].published) {
			return dated[i].published.After(dated[j].published)
		}
		return dated[i].entry.Slug > dated[j].entry.Slug
	})
	return dated
}

// PublishedAt combines the date directory with the optional "time"
// frontmatter field (HH:MM), in UTC.
func PublishedAt(e *model.Entry) (time.Time, error) {
	day, err := time.Parse(time.DateOnly, e.Date)
	if err != nil {
		return time.Time{}, err
	}
	if e.Meta.Time == "" {
		return day, nil
	}
	clock, err := time.Parse("15:04", e.Meta.Time)
	if err != nil {
		return day, nil
	}
	return day.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute), nil
}
