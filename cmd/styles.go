package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hayatroid/daily-llm/internal/nav"
	"github.com/hayatroid/daily-llm/internal/tree"
)

// Colours follow the web theme's term palette.
var (
	promptColor = lipgloss.AdaptiveColor{Light: "#40a02b", Dark: "#a6e3a1"}
	accentColor = lipgloss.AdaptiveColor{Light: "#1e66f5", Dark: "#89b4fa"}
	dimColor    = lipgloss.AdaptiveColor{Light: "#8c8fa1", Dark: "#7f849c"}

	promptStyle  = lipgloss.NewStyle().Foreground(promptColor)
	dirStyle     = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	linkStyle    = lipgloss.NewStyle().Foreground(accentColor)
	metaStyle    = lipgloss.NewStyle().Foreground(dimColor)
	currentStyle = lipgloss.NewStyle().Bold(true)
	keyStyle     = lipgloss.NewStyle().Foreground(dimColor).Width(28)
)

func prompt(command string) string {
	return promptStyle.Render("$") + " " + command
}

func renderTree(items []tree.Item) string {
	var b strings.Builder
	for _, it := range items {
		b.WriteString(strings.Repeat("    ", it.Level))
		if it.Level > 0 {
			b.WriteString(metaStyle.Render("├── "))
		}
		if strings.HasSuffix(it.Text, "/") {
			b.WriteString(dirStyle.Render(it.Text))
		} else {
			b.WriteString(linkStyle.Render(it.Text))
		}
		if it.Gem {
			b.WriteString(" 💎")
		}
		if it.Meta != "" {
			b.WriteString(" " + metaStyle.Render("("+it.Meta+")"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderCrumbs(crumbs []nav.Breadcrumb) string {
	parts := make([]string, len(crumbs))
	for i, c := range crumbs {
		if c.Current {
			parts[i] = currentStyle.Render(c.Text)
		} else {
			parts[i] = c.Text
		}
	}
	return strings.Join(parts, metaStyle.Render("/")) + "\n"
}

type stat struct {
	key   string
	value any
}

func renderStats(rows []stat) string {
	var b strings.Builder
	for _, s := range rows {
		fmt.Fprintf(&b, "%s%v\n", keyStyle.Render(s.key), s.value)
	}
	return b.String()
}
