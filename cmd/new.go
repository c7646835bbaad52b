package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hayatroid/daily-llm/internal/content"
)

var newDate string

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Creates a new conversation file for today",
	Long: `Creates content/<YYYY-MM-DD>/<NNN>-<name>.md with the next free number
and a draft frontmatter block. Remove "draft: true" once the transcript is
filled in.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now()
		if newDate != "" {
			d, err := time.ParseInLocation(time.DateOnly, newDate, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --date %q: %w", newDate, err)
			}
			now = time.Date(d.Year(), d.Month(), d.Day(), now.Hour(), now.Minute(), 0, 0, time.Local)
		}
		path, err := content.Scaffold(appConfig.ContentDir, strings.Join(args, " "), now)
		if err != nil {
			return err
		}
		logger.Debug("created conversation", zap.String("path", path))
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	newCmd.Flags().StringVar(&newDate, "date", "", "date directory to use instead of today (YYYY-MM-DD)")
	rootCmd.AddCommand(newCmd)
}
