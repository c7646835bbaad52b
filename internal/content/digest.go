package content

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const DefaultPreviewLength = 150

var (
	userHeadingTurn = regexp.MustCompile(`(?s)## User\s*\n\n(.*?)(?:\n\n##|$)`)
	userColonTurn   = regexp.MustCompile(`(?s)User:\s*\n?(.*?)(?:\n\nAssistant:|\n\n##|$)`)
	firstParagraph  = regexp.MustCompile(`(?s)(?:##.*?\n\n|^)(.*?)(?:\n\n|$)`)

	fencedCode  = regexp.MustCompile("(?s)```.*?```")
	inlineCode  = regexp.MustCompile("`([^`]+)`")
	mdLink      = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	emphasis    = regexp.MustCompile(`[*_]{1,2}([^*_]+)[*_]{1,2}`)
	headingMark = regexp.MustCompile(`#+\s*`)
	newlines    = regexp.MustCompile(`\n+`)

	userLine      = regexp.MustCompile(`(?m)^User:`)
	assistantLine = regexp.MustCompile(`(?m)^Assistant:`)
)

// Preview extracts the first user turn of a transcript as plain text of at
// most max runes.
func Preview(body string, max int) string {
	if max <= 0 {
		max = DefaultPreviewLength
	}

	var user string
	for _, re := range []*regexp.Regexp{userHeadingTurn, userColonTurn, firstParagraph} {
		if m := re.FindStringSubmatch(body); m != nil {
			user = strings.TrimSpace(m[1])
			break
		}
	}
	// An empty turn makes the capture run into the next turn's heading.
	if strings.HasPrefix(user, "## ") {
		user = ""
	}

	if user != "" {
		clean := fencedCode.ReplaceAllString(user, "[code block]")
		clean = inlineCode.ReplaceAllString(clean, "$1")
		clean = mdLink.ReplaceAllString(clean, "$1")
		clean = emphasis.ReplaceAllString(clean, "$1")
		clean = headingMark.ReplaceAllString(clean, "")
		clean = strings.TrimSpace(newlines.ReplaceAllString(clean, " "))
		if utf8.RuneCountInString(clean) > max {
			return truncate(clean, max) + "..."
		}
		return clean
	}

	clean := fencedCode.ReplaceAllString(body, "[code block]")
	clean = headingMark.ReplaceAllString(clean, "")
	clean = strings.TrimSpace(newlines.ReplaceAllString(clean, " "))
	return truncate(clean, max) + "..."
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) > max {
		r = r[:max]
	}
	return strings.TrimSpace(string(r))
}

// CountExchanges counts user and assistant turns in both the "## User"
// heading and the "User:" line styles.
func CountExchanges(body string) int {
	return strings.Count(body, "## User") +
		len(userLine.FindAllStringIndex(body, -1)) +
		strings.Count(body, "## Assistant") +
		len(assistantLine.FindAllStringIndex(body, -1))
}

func HasCode(body string) bool {
	return fencedCode.MatchString(body)
}
