// Package config loads application configuration from file and environment
// and initializes the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Google    GoogleConfig    `yaml:"google" mapstructure:"google"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Crawl     CrawlConfig     `yaml:"crawl" mapstructure:"crawl"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// GoogleConfig holds Custom Search API credentials.
type GoogleConfig struct {
	APIKey   string `yaml:"api_key" mapstructure:"api_key"`
	EngineID string `yaml:"cse_id" mapstructure:"cse_id"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// CrawlConfig configures URL selection.
type CrawlConfig struct {
	MaxSearchResults   int      `yaml:"max_search_results" mapstructure:"max_search_results"`
	MarketplaceDomains []string `yaml:"marketplace_domains" mapstructure:"marketplace_domains"`
}

// StoreConfig configures the optional run store.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("COMPANYINFO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. Credentials default to empty so the env override is bound;
	// Validate rejects them when still unset.
	v.SetDefault("google.api_key", "")
	v.SetDefault("google.cse_id", "")
	v.SetDefault("anthropic.key", "")
	v.SetDefault("store.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("crawl.max_search_results", 5)
	v.SetDefault("crawl.marketplace_domains", []string{"amazon.com", "walmart.com"})

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that every credential the pipeline needs is present.
// Called at startup so a missing value fails before any network call.
func (c *Config) Validate() error {
	var missing []string

	if c.Google.APIKey == "" {
		missing = append(missing, "COMPANYINFO_GOOGLE_API_KEY (required: search)")
	}
	if c.Google.EngineID == "" {
		missing = append(missing, "COMPANYINFO_GOOGLE_CSE_ID (required: search)")
	}
	if c.Anthropic.Key == "" {
		missing = append(missing, "COMPANYINFO_ANTHROPIC_KEY (required: extraction)")
	}
	if c.Anthropic.Model == "" {
		missing = append(missing, "COMPANYINFO_ANTHROPIC_MODEL (required: extraction)")
	}

	if len(missing) > 0 {
		return eris.Errorf("config: missing required values:\n  %s", strings.Join(missing, "\n  "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
