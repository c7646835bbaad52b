package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "DAILY"

// Load reads config.yaml from dir (or cfgFile when set), applies DAILY_*
// environment overrides and returns the decoded config together with the
// file that was used. A missing default config file is not an error.
func Load(cfgFile, dir string) (Config, string, error) {
	v := viper.New()

	d := Defaults()
	v.SetDefault("siteTitle", d.SiteTitle)
	v.SetDefault("baseURL", d.BaseURL)
	v.SetDefault("author", d.Author)
	v.SetDefault("authorURI", d.AuthorURI)
	v.SetDefault("contentDir", d.ContentDir)
	v.SetDefault("layoutsDir", d.LayoutsDir)
	v.SetDefault("staticDir", d.StaticDir)
	v.SetDefault("outputDir", d.OutputDir)
	v.SetDefault("previewLength", d.PreviewLength)
	v.SetDefault("drafts", d.Drafts)
	v.SetDefault("port", d.Port)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	used := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			return Config{}, "", fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		used = v.ConfigFileUsed()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, "", fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, "", fmt.Errorf("invalid config: %w", err)
	}
	return cfg, used, nil
}
