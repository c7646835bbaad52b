package site

import (
	"fmt"

	"github.com/hayatroid/daily-llm/internal/config"
	"github.com/hayatroid/daily-llm/internal/model"
	"github.com/hayatroid/daily-llm/internal/nav"
	"github.com/hayatroid/daily-llm/internal/route"
	"github.com/hayatroid/daily-llm/internal/stats"
	"github.com/hayatroid/daily-llm/internal/tree"
)

// Page is the data every layout is executed with. Fields that do not apply
// to a route are left zero.
type Page struct {
	Site        config.Config
	Route       route.Route
	Title       string
	Description string
	FeedURL     string

	Crumbs []nav.Breadcrumb
	Nav    nav.Context
	Tree   []tree.Item

	// Entry is the conversation, or the index.md of the root or a date.
	Entry   *model.Entry
	Summary *model.Entry
	Entries []*model.Entry
	Tag     string
	Tags    []model.TagCount

	DateNav   nav.DateContext
	DateStats stats.DateStats
	Stats     stats.GlobalStats
}

var layouts = map[route.Kind]string{
	route.Root:         "home.html",
	route.Date:         "date.html",
	route.Conversation: "conversation.html",
	route.Tags:         "tags.html",
	route.Tag:          "tag.html",
}

const notFoundLayout = "404.html"

func (b *Builder) newPage(site *model.Site, r route.Route) (*Page, error) {
	navCtx, err := nav.ForRoute(site, r)
	if err != nil {
		return nil, fmt.Errorf("route %s: %w", r, err)
	}
	p := &Page{
		Site:   b.Config,
		Route:  r,
		Crumbs: nav.Breadcrumbs(r.URL()),
		Nav:    navCtx,
		Tree:   tree.Build(site, r),
	}
	if b.feedsEnabled() {
		p.FeedURL = "/" + feedFile
	}

	switch r.Kind {
	case route.Root:
		p.Entry = site.Index("")
		p.Stats = stats.Global(site)
	case route.Date:
		p.Title = r.Date
		p.Entry = site.Index(r.Date)
		p.Summary = site.Summary(r.Date)
		p.Entries = site.ConversationsOn(r.Date)
		p.DateNav = nav.NewDateContext(site, r.Date)
		p.DateStats = stats.ForDate(site, r.Date)
	case route.Conversation:
		e, ok := site.Get(r.Slug())
		if !ok {
			return nil, fmt.Errorf("route %s: %w", r, nav.ErrNotFound)
		}
		p.Entry = e
		p.Title = e.DisplayTitle()
	case route.Tags:
		p.Title = "tags"
		p.Tags = site.Tags()
	case route.Tag:
		p.Title = "#" + r.Tag
		p.Tag = r.Tag
		p.Entries = site.Tagged(r.Tag)
		if b.feedsEnabled() {
			p.FeedURL = r.URL() + feedFile
		}
	}
	if p.Entry != nil {
		p.Description = p.Entry.Meta.Description
	}
	return p, nil
}

func (b *Builder) notFoundPage(site *model.Site) *Page {
	return &Page{
		Site:   b.Config,
		Route:  route.NewRoot(),
		Title:  "404",
		Crumbs: nav.Breadcrumbs("/"),
		Nav:    nav.Context{ParentURL: "/"},
		Tree:   tree.HomeTree(site),
	}
}
