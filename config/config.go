// Package config loads sentiview settings from an optional YAML file and
// SENTIVIEW_* environment variables, and builds the zap logger.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/sentiview"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix prefixes every environment override, e.g. SENTIVIEW_API_BASE_URL.
const EnvPrefix = "SENTIVIEW"

// Config holds the full application configuration.
type Config struct {
	API     APIConfig     `yaml:"api" mapstructure:"api"`
	Labels  LabelsConfig  `yaml:"labels" mapstructure:"labels"`
	Render  RenderConfig  `yaml:"render" mapstructure:"render"`
	Upload  UploadConfig  `yaml:"upload" mapstructure:"upload"`
	Cache   CacheConfig   `yaml:"cache" mapstructure:"cache"`
	History HistoryConfig `yaml:"history" mapstructure:"history"`
	Demo    DemoConfig    `yaml:"demo" mapstructure:"demo"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// APIConfig locates the classification service.
type APIConfig struct {
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// Timeout returns the request timeout.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// LabelsConfig maps service labels to sentiments.
type LabelsConfig struct {
	Positive      []string `yaml:"positive" mapstructure:"positive"`
	Neutral       []string `yaml:"neutral" mapstructure:"neutral"`
	CaseSensitive bool     `yaml:"case_sensitive" mapstructure:"case_sensitive"`
}

// RenderConfig configures result presentation.
type RenderConfig struct {
	MaxTextLen int `yaml:"max_text_len" mapstructure:"max_text_len"`
}

// UploadConfig limits dataset uploads.
type UploadConfig struct {
	MaxBytes int64 `yaml:"max_bytes" mapstructure:"max_bytes"`
}

// CacheConfig configures the on-disk response cache.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Dir     string `yaml:"dir" mapstructure:"dir"` // Empty means the XDG cache dir
}

// HistoryConfig configures where completed runs are appended.
type HistoryConfig struct {
	File string `yaml:"file" mapstructure:"file"` // Empty means the XDG state dir
}

// DemoConfig configures the local stand-in service.
type DemoConfig struct {
	Addr           string   `yaml:"addr" mapstructure:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
	File   string `yaml:"file" mapstructure:"file"` // Empty means stderr
}

// LabelScheme returns the configured label mapping.
func (c *Config) LabelScheme() sentiview.LabelScheme {
	return sentiview.LabelScheme{
		Positive:      c.Labels.Positive,
		Neutral:       c.Labels.Neutral,
		CaseSensitive: c.Labels.CaseSensitive,
	}
}

// RenderOptions returns the configured presentation options.
func (c *Config) RenderOptions() sentiview.RenderOptions {
	return sentiview.RenderOptions{MaxTextLen: c.Render.MaxTextLen}
}

// Load reads configuration from file and environment. The file is named
// sentiview.yaml and searched in dirs, or in the working directory and
// $XDG_CONFIG_HOME/sentiview when dirs is empty. A missing file is not an
// error.
func Load(dirs ...string) (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("sentiview")
	v.SetConfigType("yaml")
	if len(dirs) == 0 {
		dirs = defaultConfigDirs()
	}
	for _, d := range dirs {
		v.AddConfigPath(d)
	}

	// Environment
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("api.base_url", "http://localhost:8000")
	v.SetDefault("api.timeout_secs", 60)
	v.SetDefault("labels.positive", []string{"LABEL_1", "positive"})
	v.SetDefault("labels.neutral", []string{"neutral"})
	v.SetDefault("labels.case_sensitive", false)
	v.SetDefault("render.max_text_len", sentiview.DefaultMaxTextLen)
	v.SetDefault("upload.max_bytes", 10<<20)
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.dir", "")
	v.SetDefault("history.file", "")
	v.SetDefault("demo.addr", "127.0.0.1:8000")
	v.SetDefault("demo.allowed_origins", []string{"http://localhost:5500", "http://127.0.0.1:5500"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "")

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

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return eris.New("config: api.base_url is empty")
	}
	if c.API.TimeoutSecs <= 0 {
		return eris.Errorf("config: api.timeout_secs must be positive, got %d", c.API.TimeoutSecs)
	}
	if len(c.Labels.Positive) == 0 {
		return eris.New("config: labels.positive is empty")
	}
	return nil
}

func defaultConfigDirs() []string {
	dirs := []string{"."}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, "sentiview"))
	} else if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "sentiview"))
	}
	return dirs
}

// NewLogger builds a zap logger. Output goes to cfg.File when set, which
// keeps log lines off a terminal owned by the TUI.
func NewLogger(cfg LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, eris.Wrap(err, "config: create log directory")
		}
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, eris.Wrap(err, "config: build logger")
	}
	return logger, nil
}
