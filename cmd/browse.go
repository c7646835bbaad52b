package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/hayatroid/daily-llm/internal/model"
	"github.com/hayatroid/daily-llm/internal/nav"
	"github.com/hayatroid/daily-llm/internal/route"
	"github.com/hayatroid/daily-llm/internal/stats"
	"github.com/hayatroid/daily-llm/internal/tree"
)

var rawOutput bool

var treeCmd = &cobra.Command{
	Use:   "tree [path]",
	Short: "Prints the tree view of a page",
	Long: `Prints the same tree the website shows for a URL path, e.g.
"/", "/2024-01-15/", "/tags/" or "/tags/go/".`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := loadSite(cmd.Context(), appConfig)
		if err != nil {
			return err
		}
		p := "/"
		if len(args) == 1 {
			p = args[0]
		}
		r := route.ParseURLPath(p)
		if _, err := nav.ForRoute(st, r); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, prompt("tree"))
		fmt.Fprint(out, renderTree(tree.Build(st, r)))
		return nil
	},
}

var pwdCmd = &cobra.Command{
	Use:   "pwd <path>",
	Short: "Prints the breadcrumbs of a URL path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprint(cmd.OutOrStdout(), renderCrumbs(nav.Breadcrumbs(args[0])))
		return nil
	},
}

var catCmd = &cobra.Command{
	Use:   "cat <slug>",
	Short: "Renders a conversation in the terminal",
	Long: `Renders a transcript such as "2024-01-15/001-astro-setup" with glamour.
Use --raw to print the markdown body unchanged.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := loadSite(cmd.Context(), appConfig)
		if err != nil {
			return err
		}
		e, ok := st.Get(args[0])
		if !ok {
			return fmt.Errorf("%s: %w", args[0], nav.ErrNotFound)
		}
		doc := entryMarkdown(e)
		if rawOutput {
			fmt.Fprint(cmd.OutOrStdout(), doc)
			return nil
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err != nil {
			return fmt.Errorf("failed to create markdown renderer: %w", err)
		}
		rendered, err := r.Render(doc)
		if err != nil {
			return fmt.Errorf("failed to render %s: %w", e.Slug, err)
		}
		fmt.Fprint(cmd.OutOrStdout(), rendered)
		return nil
	},
}

func entryMarkdown(e *model.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s", e.DisplayTitle())
	if e.Meta.Gem {
		b.WriteString(" 💎")
	}
	b.WriteString("\n\n")
	if e.Meta.Description != "" {
		fmt.Fprintf(&b, "> %s\n\n", e.Meta.Description)
	}
	if len(e.Meta.Tags) > 0 {
		tags := make([]string, len(e.Meta.Tags))
		for i, t := range e.Meta.Tags {
			tags[i] = "#" + t
		}
		fmt.Fprintf(&b, "%s\n\n", strings.Join(tags, " "))
	}
	b.Write(e.Body)
	b.WriteString("\n")
	return b.String()
}

var statsCmd = &cobra.Command{
	Use:   "stats [date]",
	Short: "Prints global or per-date statistics",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := loadSite(cmd.Context(), appConfig)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			g := stats.Global(st)
			fmt.Fprintln(out, prompt("stats"))
			fmt.Fprint(out, renderStats([]stat{
				{"conversations", g.TotalConversations},
				{"exchanges", g.TotalExchanges},
				{"days", g.TotalDates},
				{"topics", g.TotalTopics},
				{"with code", fmt.Sprintf("%d (%d%%)", g.HasCodeCount, g.CodePercent)},
				{"per day", g.AvgConversationsPerDay},
				{"exchanges / conversation", g.AvgExchangesPerConversation},
			}))
			return nil
		}

		date := strings.Trim(args[0], "/")
		if _, err := nav.ForRoute(st, route.NewDate(date)); err != nil {
			return fmt.Errorf("%s: %w", date, err)
		}
		d := stats.ForDate(st, date)
		dc := nav.NewDateContext(st, date)
		topics := "-"
		if len(d.TopicTags) > 0 {
			topics = strings.Join(d.TopicTags, ", ")
		}
		fmt.Fprintln(out, prompt("stats "+date))
		fmt.Fprint(out, renderStats([]stat{
			{"conversations", d.Conversations},
			{"exchanges", d.TotalExchanges},
			{"topics", fmt.Sprintf("%s (%d)", topics, d.TopicCount)},
			{"with code", fmt.Sprintf("%d (%d%%)", d.HasCodeCount, d.CodePercent)},
			{"day", fmt.Sprintf("%d / %d", dc.CurrentPosition, dc.TotalDates)},
		}))
		return nil
	},
}

func init() {
	catCmd.Flags().BoolVar(&rawOutput, "raw", false, "print markdown without terminal rendering")
	rootCmd.AddCommand(treeCmd, pwdCmd, catCmd, statsCmd)
}
