package model

import (
	"html/template"
	"net/url"
	"sort"
	"strings"
)

// Kind tells apart the three kinds of markdown file in a date directory.
type Kind int

const (
	KindConversation Kind = iota
	KindIndex
	KindSummary
)

func (k Kind) String() string {
	switch k {
	case KindIndex:
		return "index"
	case KindSummary:
		return "summary"
	default:
		return "conversation"
	}
}

// Meta is the frontmatter of a content file.
type Meta struct {
	Title       string                 `yaml:"title"`
	Description string                 `yaml:"description"`
	Tags        []string               `yaml:"tags,omitempty"`
	Gem         bool                   `yaml:"gem,omitempty"`
	Date        string                 `yaml:"date,omitempty"`
	Time        string                 `yaml:"time,omitempty"`
	Extra       map[string]interface{} `yaml:",inline"`
}

// HasTag reports whether tag is listed in the frontmatter.
func (m Meta) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Draft reports a truthy "draft" key.
func (m Meta) Draft() bool {
	d, ok := m.Extra["draft"].(bool)
	return ok && d
}

// Entry represents a single content file (a conversation, a date index or
// a daily summary).
type Entry struct {
	Slug       string
	Date       string
	Name       string
	Kind       Kind
	SourcePath string
	Meta       Meta
	Body       []byte
	HTML       template.HTML
	Preview    string
	Exchanges  int
	HasCode    bool
}

func (e *Entry) IsConversation() bool { return e.Kind == KindConversation }

func (e *Entry) URL() string {
	if e.Slug == "" {
		return "/"
	}
	segs := strings.Split(e.Slug, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return "/" + strings.Join(segs, "/") + "/"
}

// DisplayTitle falls back to the file name when the title is empty.
func (e *Entry) DisplayTitle() string {
	if e.Meta.Title != "" {
		return e.Meta.Title
	}
	return e.Name
}

// TagCount is a tag with the number of conversations carrying it.
type TagCount struct {
	Name  string
	Count int
}

// Site holds every entry of the content directory, sorted by slug.
type Site struct {
	Entries []*Entry
	bySlug  map[string]*Entry
}

func NewSite(entries []*Entry) *Site {
	sorted := make([]*Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Slug < sorted[j].Slug })

	s := &Site{Entries: sorted, bySlug: make(map[string]*Entry, len(sorted))}
	for _, e := range sorted {
		s.bySlug[e.Slug] = e
	}
	return s
}

func (s *Site) Get(slug string) (*Entry, bool) {
	e, ok := s.bySlug[strings.Trim(slug, "/")]
	return e, ok
}

// Conversations returns all conversation entries in slug order.
func (s *Site) Conversations() []*Entry {
	var out []*Entry
	for _, e := range s.Entries {
		if e.IsConversation() {
			out = append(out, e)
		}
	}
	return out
}

// Dates returns the unique date directories in ascending order.
func (s *Site) Dates() []string {
	seen := make(map[string]bool)
	var dates []string
	for _, e := range s.Entries {
		if e.Date == "" || seen[e.Date] {
			continue
		}
		seen[e.Date] = true
		dates = append(dates, e.Date)
	}
	sort.Strings(dates)
	return dates
}

func (s *Site) ConversationsOn(date string) []*Entry {
	var out []*Entry
	for _, e := range s.Entries {
		if e.Date == date && e.IsConversation() {
			out = append(out, e)
		}
	}
	return out
}

// Index returns the index.md of a date directory, or the root index for "".
func (s *Site) Index(date string) *Entry {
	e, ok := s.bySlug[date]
	if !ok || e.Kind != KindIndex {
		return nil
	}
	return e
}

func (s *Site) Summary(date string) *Entry {
	e, ok := s.bySlug[date+"/summary"]
	if !ok || e.Kind != KindSummary {
		return nil
	}
	return e
}

// Tags counts tags over conversations, sorted by name.
func (s *Site) Tags() []TagCount {
	counts := make(map[string]int)
	for _, e := range s.Conversations() {
		for _, t := range e.Meta.Tags {
			counts[t]++
		}
	}
	tags := make([]TagCount, 0, len(counts))
	for name, n := range counts {
		tags = append(tags, TagCount{Name: name, Count: n})
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	return tags
}

func (s *Site) Tagged(tag string) []*Entry {
	var out []*Entry
	for _, e := range s.Conversations() {
		if e.Meta.HasTag(tag) {
			out = append(out, e)
		}
	}
	return out
}
