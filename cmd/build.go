package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/hayatroid/daily-llm/internal/config"
	"github.com/hayatroid/daily-llm/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Builds the static site from content, layouts, and static assets",
	Long: `The build command loads every transcript under the content directory,
renders each root, date, conversation and tag page with the embedded theme
(or layouts from the layouts directory), copies static assets and writes
Atom feeds into the output directory (default './public/').`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuildProcess(cmd.Context(), appConfig)
	},
}

func runBuildProcess(ctx context.Context, cfg config.Config) error {
	st, err := loadSite(ctx, cfg)
	if err != nil {
		return err
	}
	return site.NewBuilder(cfg, logger).Build(ctx, st)
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
