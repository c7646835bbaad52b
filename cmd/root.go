package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hayatroid/daily-llm/internal/config"
	"github.com/hayatroid/daily-llm/internal/content"
	"github.com/hayatroid/daily-llm/internal/model"
)

var (
	cfgFile   string
	verbose   bool
	appConfig config.Config
	logger    = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "daily-llm",
	Short: "daily-llm - a terminal-styled journal of daily LLM conversations",
	Long: `daily-llm turns a directory of dated Markdown transcripts into a static,
terminal-styled website with date and tag navigation, statistics and Atom
feeds. It can also browse the same content from the command line.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initializeLogger(); err != nil {
			return err
		}
		return initializeConfig()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func initializeLogger() error {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = l
	return nil
}

func initializeConfig() error {
	cfg, used, err := config.Load(cfgFile, ".")
	if err != nil {
		return err
	}
	if used != "" {
		logger.Debug("using config file", zap.String("path", used))
	} else {
		logger.Debug("no config file found, using defaults and environment")
	}
	appConfig = cfg
	return nil
}

// loadSite reads the content directory named by the active config.
func loadSite(ctx context.Context, cfg config.Config) (*model.Site, error) {
	l := content.NewLoader(logger)
	l.PreviewLength = cfg.PreviewLength
	l.IncludeDrafts = cfg.Drafts
	return l.Load(ctx, cfg.ContentDir)
}
