package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance
func New() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/mail-triage/")
	v.AddConfigPath("$HOME/.mail-triage")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("MAIL_TRIAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewFromFile creates a configuration instance from an explicit file path
func NewFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Mailbox defaults
	v.SetDefault("mailbox.provider", "gmail")
	v.SetDefault("mailbox.user", "me")

	// Gmail defaults
	v.SetDefault("gmail.credentials_file", "/etc/mail-triage/credentials.json")
	v.SetDefault("gmail.token_file", "/etc/mail-triage/token.json")
	v.SetDefault("gmail.max_body_size", 65536)

	// Triage defaults
	v.SetDefault("triage.dry_run", true)
	v.SetDefault("triage.hard_delete", false)
	v.SetDefault("triage.batch_size", 50)
	v.SetDefault("triage.views", []string{"inbox", "spam", "trash"})
	v.SetDefault("triage.interval", "10m")
	v.SetDefault("triage.run_once", false)
	v.SetDefault("triage.labels.important", "Triage/Important")
	v.SetDefault("triage.labels.suspicious", "Triage/Suspicious")
	v.SetDefault("triage.labels.processed", "Triage/Processed")

	// Heuristic rule defaults
	v.SetDefault("rules.known_senders", []string{})
	v.SetDefault("rules.important_keywords", []string{
		"invoice", "statement", "receipt", "password reset", "security alert",
	})
	v.SetDefault("rules.spam_tlds", []string{"ru", "cn", "tk", "top", "gq"})
	v.SetDefault("rules.shortener_domains", []string{
		"bit.ly", "tinyurl.com", "goo.gl", "t.co", "ow.ly", "is.gd",
	})
	v.SetDefault("rules.phishing_phrases", []string{
		"click here", "verify your account", "act now",
		"account suspended", "confirm your password", "urgent action required",
	})

	// Audit defaults
	v.SetDefault("audit.type", "memory")
	v.SetDefault("audit.enabled", true)
	v.SetDefault("audit.retention", "720h")
	v.SetDefault("audit.cleanup_frequency", "1h")
	v.SetDefault("audit.sqlite_path", "/data/triage_audit.db")
	v.SetDefault("audit.mysql_dsn", "user:password@tcp(localhost:3306)/mail_triage")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetInt64 gets a 64-bit integer value from the configuration
func (c *Config) GetInt64(key string) int64 {
	return c.v.GetInt64(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetStringSlice gets a string slice value from the configuration
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	return time.ParseDuration(c.GetString(key))
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
