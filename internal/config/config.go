package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/phenixzain/portfolio-blog/internal/markup"
)

// Config holds the application configuration loaded from files, environment variables and flags.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`

	APIBase  string `mapstructure:"devto_api_base"`
	Username string `mapstructure:"devto_username"`
	PerPage  int    `mapstructure:"devto_per_page"`

	HTTPTimeoutSeconds int64         `mapstructure:"http_timeout_seconds"`
	HTTPTimeout        time.Duration `mapstructure:"-"`
	UserAgent          string        `mapstructure:"user_agent"`

	BodyPolicy string `mapstructure:"body_policy"`

	// PublishersFile lists the sinks an export is announced to; empty disables delivery.
	PublishersFile string `mapstructure:"publishers_file"`
}

// EnvFile is loaded (if present) before environment variables are read.
var EnvFile = "configs/.env"

// Load reads configuration from environment variables, the optional env file
// and fs. Flags are named after the keys with '-' in place of '_'.
func Load(fs *pflag.FlagSet) (*Config, error) {
	_ = godotenv.Load(EnvFile)

	v := viper.New()

	v.SetDefault("app_name", "portfolio-blog")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("devto_api_base", "https://dev.to/api")
	v.SetDefault("devto_username", "phenixzain")
	v.SetDefault("devto_per_page", 100)
	v.SetDefault("http_timeout_seconds", 0) // no timeout
	v.SetDefault("user_agent", "portfolio-blog/1.0")
	v.SetDefault("body_policy", markup.PolicyTrusted)
	v.SetDefault("publishers_file", "")

	v.AutomaticEnv()

	if fs != nil {
		var bindErr error
		fs.VisitAll(func(f *pflag.Flag) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if !isConfigKey(key) || bindErr != nil {
				return
			}
			bindErr = v.BindPFlag(key, f)
		})
		if bindErr != nil {
			return nil, fmt.Errorf("bind flags: %w", bindErr)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = time.Duration(cfg.HTTPTimeoutSeconds) * time.Second

	return &cfg, nil
}

// RegisterFlags declares the flags Load understands on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("log-level", "", "log level (debug, info, warn, error)")
	fs.String("log-file", "", "write JSON logs to this file instead of stderr")
	fs.String("devto-api-base", "", "article API base URL")
	fs.String("devto-username", "", "author handle whose articles are mirrored")
	fs.Int("devto-per-page", 0, "articles requested per listing fetch")
	fs.Int64("http-timeout-seconds", 0, "per-request timeout; 0 disables")
	fs.String("body-policy", "", "article body policy (trusted, sanitize)")
	fs.String("publishers-file", "", "YAML/JSON file of sinks notified after an export")
}

func isConfigKey(key string) bool {
	switch key {
	case "log_level", "log_file", "devto_api_base", "devto_username",
		"devto_per_page", "http_timeout_seconds", "body_policy", "publishers_file":
		return true
	}
	return false
}

func (c *Config) validate() error {
	c.Username = strings.TrimSpace(c.Username)
	if c.Username == "" {
		return fmt.Errorf("invalid devto_username (must not be empty)")
	}
	if c.PerPage <= 0 {
		return fmt.Errorf("invalid devto_per_page (must be positive)")
	}
	if c.HTTPTimeoutSeconds < 0 {
		return fmt.Errorf("invalid http_timeout_seconds (must be zero or positive)")
	}
	u, err := url.ParseRequestURI(strings.TrimSpace(c.APIBase))
	if err != nil || u.Host == "" {
		return fmt.Errorf("invalid devto_api_base %q", c.APIBase)
	}
	if _, err := markup.PolicyFor(c.BodyPolicy); err != nil {
		return fmt.Errorf("invalid body_policy: %w", err)
	}
	return nil
}
