// Package nav computes breadcrumbs and previous / next / parent links for
// every route of the site.
package nav

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/hayatroid/daily-llm/internal/model"
	"github.com/hayatroid/daily-llm/internal/route"
)

var ErrNotFound = errors.New("content not found")

// Breadcrumb is one segment of the pwd line.
type Breadcrumb struct {
	Text    string
	Href    string
	Current bool
}

// Breadcrumbs splits a URL path into cumulative crumbs, starting at "~".
func Breadcrumbs(urlPath string) []Breadcrumb {
	crumbs := []Breadcrumb{{Text: "~", Href: "/"}}
	href := "/"
	for _, seg := range strings.Split(strings.Trim(urlPath, "/"), "/") {
		if seg == "" {
			continue
		}
		href += seg + "/"
		text := seg
		if u, err := url.PathUnescape(seg); err == nil {
			text = u
		}
		crumbs = append(crumbs, Breadcrumb{Text: text, Href: href})
	}
	crumbs[len(crumbs)-1].Current = true
	return crumbs
}

// Context links a page to its neighbours and parent. Empty URLs mean there
// is no such neighbour.
type Context struct {
	PrevURL   string
	NextURL   string
	ParentURL string
}

// ForRoute computes the navigation context of r. Dates step through date
// directories, conversations through their siblings of the same date and
// tags through the sorted tag list.
func ForRoute(site *model.Site, r route.Route) (Context, error) {
	ctx := Context{ParentURL: r.ParentURL()}

	switch r.Kind {
	case route.Date:
		dates := site.Dates()
		i := indexOf(dates, r.Date)
		if i < 0 {
			return Context{}, fmt.Errorf("date %q: %w", r.Date, ErrNotFound)
		}
		if i > 0 {
			ctx.PrevURL = route.NewDate(dates[i-1]).URL()
		}
		if i < len(dates)-1 {
			ctx.NextURL = route.NewDate(dates[i+1]).URL()
		}

	case route.Conversation:
		siblings := site.ConversationsOn(r.Date)
		i := -1
		for j, e := range siblings {
			if e.Name == r.Conversation {
				i = j
				break
			}
		}
		if i < 0 {
			return Context{}, fmt.Errorf("conversation %q: %w", r.Slug(), ErrNotFound)
		}
		if i > 0 {
			ctx.PrevURL = siblings[i-1].URL()
		}
		if i < len(siblings)-1 {
			ctx.NextURL = siblings[i+1].URL()
		}

	case route.Tag:
		tags := site.Tags()
		i := sort.Search(len(tags), func(j int) bool { return tags[j].Name >= r.Tag })
		if i == len(tags) || tags[i].Name != r.Tag {
			return Context{}, fmt.Errorf("tag %q: %w", r.Tag, ErrNotFound)
		}
		if i > 0 {
			ctx.PrevURL = route.NewTag(tags[i-1].Name).URL()
		}
		if i < len(tags)-1 {
			ctx.NextURL = route.NewTag(tags[i+1].Name).URL()
		}
	}
	return ctx, nil
}

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// DateContext describes where a date sits among all dates that have
// conversations.
type DateContext struct {
	AvailableDates []string
	PreviousDate   string
	NextDate       string
	TotalDates     int
	// CurrentPosition is 1-based; 0 when the date has no conversations.
	CurrentPosition int
	IsFirstDate     bool
	IsLastDate      bool
}

func NewDateContext(site *model.Site, current string) DateContext {
	dates := AvailableDates(site)
	dc := DateContext{AvailableDates: dates, TotalDates: len(dates)}

	i := indexOf(dates, current)
	if i < 0 {
		// A date without conversations sits outside the sequence: it gets
		// no neighbours and is neither first nor last, rather than pointing
		// at the earliest date.
		return dc
	}
	dc.CurrentPosition = i + 1
	dc.IsFirstDate = i == 0
	dc.IsLastDate = i == len(dates)-1
	if i > 0 {
		dc.PreviousDate = dates[i-1]
	}
	if i < len(dates)-1 {
		dc.NextDate = dates[i+1]
	}
	return dc
}

// AvailableDates returns the YYYY-MM-DD dates that hold at least one
// conversation, ascending.
func AvailableDates(site *model.Site) []string {
	seen := make(map[string]bool)
	var dates []string
	for _, e := range site.Conversations() {
		if !datePattern.MatchString(e.Date) || seen[e.Date] {
			continue
		}
		seen[e.Date] = true
		dates = append(dates, e.Date)
	}
	sort.Strings(dates)
	return dates
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
