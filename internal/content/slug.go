package content

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark/ast"
	"golang.org/x/text/unicode/norm"
)

const (
	maxSlugLength = 50
	fallbackSlug  = "heading"
)

var (
	leadingMarker = regexp.MustCompile(`^#+\s*`)
	// ASCII word characters, whitespace, hyphens, hiragana, katakana and
	// CJK ideographs survive.
	slugIllegal = regexp.MustCompile(`[^\w\s\x{3040}-\x{309F}\x{30A0}-\x{30FF}\x{4E00}-\x{9FAF}-]`)
	slugSpaces  = regexp.MustCompile(`\s+`)
)

// HeadingSlug turns heading text into an anchor id.
func HeadingSlug(text string) string {
	if s := slugify(text); s != "" {
		return s
	}
	return fallbackSlug
}

func slugify(text string) string {
	s := strings.TrimSpace(strings.ToLower(norm.NFKC.String(text)))
	s = leadingMarker.ReplaceAllString(s, "")
	s = slugIllegal.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if r := []rune(s); len(r) > maxSlugLength {
		s = strings.TrimRight(string(r[:maxSlugLength]), "-")
	}
	return s
}

// UniqueSlug appends -1, -2, ... to base until it is not in used.
func UniqueSlug(base string, used map[string]bool) string {
	slug := base
	for n := 1; used[slug]; n++ {
		slug = fmt.Sprintf("%s-%d", base, n)
	}
	return slug
}

// HeadingIDs hands out unique heading anchors within one document. It
// implements goldmark's parser.IDs.
type HeadingIDs struct {
	used map[string]bool
}

func NewHeadingIDs() *HeadingIDs {
	return &HeadingIDs{used: make(map[string]bool)}
}

func (h *HeadingIDs) Generate(value []byte, _ ast.NodeKind) []byte {
	id := UniqueSlug(HeadingSlug(string(value)), h.used)
	h.used[id] = true
	return []byte(id)
}

func (h *HeadingIDs) Put(value []byte) {
	h.used[string(value)] = true
}
