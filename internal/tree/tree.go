// Package tree flattens the site into indentation-levelled items for the
// `tree` view.
package tree

import (
	"fmt"
	"sort"

	"github.com/hayatroid/daily-llm/internal/model"
	"github.com/hayatroid/daily-llm/internal/route"
)

type Item struct {
	Level int
	Href  string
	Text  string
	Meta  string
	Gem   bool
}

// Build picks the tree for r. Conversation pages show the tree of their
// date.
func Build(site *model.Site, r route.Route) []Item {
	switch r.Kind {
	case route.Date, route.Conversation:
		return DateTree(site, r.Date)
	case route.Tags:
		return TagsTree(site)
	case route.Tag:
		return TagTree(site, r.Tag)
	}
	return HomeTree(site)
}

// HomeTree lists every date, newest first, with its conversations.
func HomeTree(site *model.Site) []Item {
	items := []Item{{Level: 0, Href: "/", Text: "Home/"}}

	dates := site.Dates()
	for i := len(dates) - 1; i >= 0; i-- {
		date := dates[i]
		convs := site.ConversationsOn(date)

		item := Item{Level: 1, Href: route.NewDate(date).URL(), Text: date + "/"}
		if len(convs) > 0 {
			item.Meta = countLabel(len(convs))
		}
		items = append(items, item)
		items = appendConversations(items, 2, convs)
	}
	return items
}

func DateTree(site *model.Site, date string) []Item {
	items := []Item{{Level: 0, Href: route.NewDate(date).URL(), Text: date + "/"}}
	return appendConversations(items, 1, site.ConversationsOn(date))
}

func TagsTree(site *model.Site) []Item {
	items := []Item{{Level: 0, Href: route.NewTags().URL(), Text: "tags/"}}
	for _, t := range site.Tags() {
		items = append(items, Item{
			Level: 1,
			Href:  route.NewTag(t.Name).URL(),
			Text:  t.Name + "/",
			Meta:  countLabel(t.Count),
		})
	}
	return items
}

// TagTree groups the conversations carrying tag by date, newest date first.
func TagTree(site *model.Site, tag string) []Item {
	items := []Item{{Level: 0, Href: route.NewTag(tag).URL(), Text: "tags/" + tag + "/"}}

	byDate := make(map[string][]*model.Entry)
	var dates []string
	for _, e := range site.Tagged(tag) {
		if _, ok := byDate[e.Date]; !ok {
			dates = append(dates, e.Date)
		}
		byDate[e.Date] = append(byDate[e.Date], e)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	for _, date := range dates {
		convs := byDate[date]
		items = append(items, Item{
			Level: 1,
			Href:  route.NewDate(date).URL(),
			Text:  date + "/",
			Meta:  countLabel(len(convs)),
		})
		items = appendConversations(items, 2, convs)
	}
	return items
}

func appendConversations(items []Item, level int, convs []*model.Entry) []Item {
	for _, c := range convs {
		items = append(items, Item{
			Level: level,
			Href:  c.URL(),
			Text:  c.DisplayTitle(),
			Gem:   c.Meta.Gem,
		})
	}
	return items
}

func countLabel(n int) string {
	return fmt.Sprintf("%d conversations", n)
}
