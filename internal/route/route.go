// Package route classifies site slugs into the five kinds of page the site
// renders and converts between slugs, URLs and routes.
package route

import (
	"net/url"
	"strings"

	"github.com/hayatroid/daily-llm/internal/model"
)

type Kind int

const (
	Root Kind = iota
	Date
	Conversation
	Tags
	Tag
)

func (k Kind) String() string {
	switch k {
	case Root:
		return "root"
	case Date:
		return "date"
	case Conversation:
		return "conversation"
	case Tags:
		return "tags"
	case Tag:
		return "tag"
	}
	return "unknown"
}

// Route is a tagged value; only the fields of its Kind are set.
type Route struct {
	Kind         Kind
	Date         string
	Conversation string
	Tag          string
}

func NewRoot() Route { return Route{Kind: Root} }

func NewDate(date string) Route { return Route{Kind: Date, Date: date} }

func NewTags() Route { return Route{Kind: Tags} }

func NewTag(tag string) Route { return Route{Kind: Tag, Tag: tag} }

func NewConversation(date, conversation string) Route {
	return Route{Kind: Conversation, Date: date, Conversation: conversation}
}

const tagsPrefix = "tags/"

// ParseSlug classifies a slug without leading or trailing slashes.
func ParseSlug(slug string) Route {
	switch {
	case slug == "":
		return NewRoot()
	case slug == "tags":
		return NewTags()
	case strings.HasPrefix(slug, tagsPrefix):
		return NewTag(slug[len(tagsPrefix):])
	case strings.Contains(slug, "/"):
		parts := strings.Split(slug, "/")
		return NewConversation(parts[0], parts[1])
	default:
		return NewDate(slug)
	}
}

// ParseURLPath strips surrounding slashes and percent-decoding before
// classifying the path.
func ParseURLPath(p string) Route {
	clean := strings.Trim(p, "/")
	if unescaped, err := url.PathUnescape(clean); err == nil {
		clean = unescaped
	}
	return ParseSlug(clean)
}

func (r Route) URL() string {
	switch r.Kind {
	case Date:
		return "/" + url.PathEscape(r.Date) + "/"
	case Conversation:
		return "/" + url.PathEscape(r.Date) + "/" + url.PathEscape(r.Conversation) + "/"
	case Tags:
		return "/tags/"
	case Tag:
		return "/tags/" + url.PathEscape(r.Tag) + "/"
	}
	return "/"
}

func (r Route) Slug() string {
	switch r.Kind {
	case Date:
		return r.Date
	case Conversation:
		return r.Date + "/" + r.Conversation
	case Tags:
		return "tags"
	case Tag:
		return tagsPrefix + r.Tag
	}
	return ""
}

func (r Route) ParentURL() string {
	switch r.Kind {
	case Conversation:
		return "/" + url.PathEscape(r.Date) + "/"
	case Tag:
		return "/tags/"
	}
	return "/"
}

func (r Route) IsConversation() bool { return r.Kind == Conversation }

func (r Route) IsDate() bool { return r.Kind == Date }

func (r Route) HasDate() bool { return r.Kind == Date || r.Kind == Conversation }

func (r Route) String() string { return r.Kind.String() + ":" + r.Slug() }

// Paths lists every route the site renders: the root, the tags index, each
// date, each conversation and each tag.
func Paths(site *model.Site) []Route {
	routes := []Route{NewRoot(), NewTags()}
	for _, d := range site.Dates() {
		routes = append(routes, NewDate(d))
	}
	for _, c := range site.Conversations() {
		routes = append(routes, NewConversation(c.Date, c.Name))
	}
	for _, t := range site.Tags() {
		routes = append(routes, NewTag(t.Name))
	}
	return routes
}
