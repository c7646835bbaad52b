package config

import (
	"errors"
	"fmt"
	"strings"
)

// Config holds the site settings decoded from config.yaml and DAILY_*
// environment variables.
type Config struct {
	SiteTitle     string `mapstructure:"siteTitle"`
	BaseURL       string `mapstructure:"baseURL"`
	Author        string `mapstructure:"author"`
	AuthorURI     string `mapstructure:"authorURI"`
	ContentDir    string `mapstructure:"contentDir"`
	LayoutsDir    string `mapstructure:"layoutsDir"`
	StaticDir     string `mapstructure:"staticDir"`
	OutputDir     string `mapstructure:"outputDir"`
	PreviewLength int    `mapstructure:"previewLength"`
	Drafts        bool   `mapstructure:"drafts"`
	Port          int    `mapstructure:"port"`
}

// Defaults mirrors the values registered with viper.
func Defaults() Config {
	return Config{
		SiteTitle:     "daily-llm",
		ContentDir:    "content",
		LayoutsDir:    "layouts",
		StaticDir:     "static",
		OutputDir:     "public",
		PreviewLength: 150,
		Port:          1313,
	}
}

func (c Config) Validate() error {
	var errs []error
	if c.ContentDir == "" {
		errs = append(errs, errors.New("contentDir must not be empty"))
	}
	if c.OutputDir == "" {
		errs = append(errs, errors.New("outputDir must not be empty"))
	}
	if c.PreviewLength <= 0 {
		errs = append(errs, fmt.Errorf("previewLength must be positive, got %d", c.PreviewLength))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port out of range: %d", c.Port))
	}
	return errors.Join(errs...)
}

// AbsoluteURL joins BaseURL and a site path such as "/2024-01-15/".
func (c Config) AbsoluteURL(path string) string {
	return strings.TrimSuffix(c.BaseURL, "/") + "/" + strings.TrimPrefix(path, "/")
}
