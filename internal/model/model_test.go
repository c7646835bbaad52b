package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func conv(date, name string, tags ...string) *Entry {
	return &Entry{Slug: date + "/" + name, Date: date, Name: name, Meta: Meta{Title: name, Tags: tags}}
}

func testSite() *Site {
	return NewSite([]*Entry{
		conv("2024-01-16", "001-go", "go"),
		{Slug: "2024-01-15", Date: "2024-01-15", Name: "index", Kind: KindIndex},
		conv("2024-01-15", "002-css", "css", "web"),
		conv("2024-01-15", "001-astro", "web"),
		{Slug: "2024-01-15/summary", Date: "2024-01-15", Name: "summary", Kind: KindSummary},
		{Slug: "", Name: "index", Kind: KindIndex},
	})
}

func TestSiteOrderingAndLookup(t *testing.T) {
	s := testSite()

	require.Len(t, s.Entries, 6)
	assert.Equal(t, "", s.Entries[0].Slug)
	assert.Equal(t, "2024-01-15", s.Entries[1].Slug)

	e, ok := s.Get("/2024-01-15/001-astro/")
	require.True(t, ok)
	assert.Equal(t, "001-astro", e.Name)

	_, ok = s.Get("2024-02-01")
	assert.False(t, ok)
}

func TestSiteQueries(t *testing.T) {
	s := testSite()

	assert.Equal(t, []string{"2024-01-15", "2024-01-16"}, s.Dates())
	assert.Len(t, s.Conversations(), 3)

	on := s.ConversationsOn("2024-01-15")
	require.Len(t, on, 2)
	assert.Equal(t, "001-astro", on[0].Name)
	assert.Equal(t, "002-css", on[1].Name)

	require.NotNil(t, s.Index("2024-01-15"))
	assert.Nil(t, s.Index("2024-01-16"))
	require.NotNil(t, s.Index(""))
	require.NotNil(t, s.Summary("2024-01-15"))
	assert.Nil(t, s.Summary("2024-01-16"))

	assert.Equal(t, []TagCount{{"css", 1}, {"go", 1}, {"web", 2}}, s.Tags())
	assert.Len(t, s.Tagged("web"), 2)
	assert.Empty(t, s.Tagged("rust"))
}

func TestEntryHelpers(t *testing.T) {
	e := &Entry{Slug: "2024-01-15/001-astro", Name: "001-astro"}
	assert.Equal(t, "/2024-01-15/001-astro/", e.URL())
	assert.Equal(t, "001-astro", e.DisplayTitle())
	assert.True(t, e.IsConversation())

	e.Meta.Title = "Astro setup"
	assert.Equal(t, "Astro setup", e.DisplayTitle())

	odd := &Entry{Slug: "2024-01-15/what-is-go?"}
	assert.Equal(t, "/2024-01-15/what-is-go%3F/", odd.URL())

	root := &Entry{Kind: KindIndex}
	assert.Equal(t, "/", root.URL())
	assert.Equal(t, "index", root.Kind.String())
}

func TestMetaDraft(t *testing.T) {
	assert.False(t, Meta{}.Draft())
	assert.True(t, Meta{Extra: map[string]interface{}{"draft": true}}.Draft())
	assert.False(t, Meta{Extra: map[string]interface{}{"draft": "yes"}}.Draft())
}
