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
	v.AddConfigPath("/etc/phishguard/")
	v.AddConfigPath("$HOME/.phishguard")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("PHISHGUARD")
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
	// Classifier defaults
	v.SetDefault("classifier.provider", "static")
	v.SetDefault("classifier.timeout", "10s")

	// Static classifier defaults
	v.SetDefault("static.probability", 0.2)

	// OpenAI defaults
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.model_name", "gpt-4")
	v.SetDefault("openai.max_tokens", 100)
	v.SetDefault("openai.temperature", 0.0)
	v.SetDefault("openai.max_text_size", 4096)

	// Bedrock defaults
	v.SetDefault("bedrock.region", "us-east-1")
	v.SetDefault("bedrock.model_id", "anthropic.claude-v2")
	v.SetDefault("bedrock.max_tokens", 100)
	v.SetDefault("bedrock.temperature", 0.0)
	v.SetDefault("bedrock.max_text_size", 4096)

	// Gemini defaults
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model_name", "gemini-pro")
	v.SetDefault("gemini.max_tokens", 100)
	v.SetDefault("gemini.temperature", 0.0)
	v.SetDefault("gemini.max_text_size", 4096)

	// Signature store defaults
	v.SetDefault("store.type", "memory")
	v.SetDefault("store.timeout", "5s")
	v.SetDefault("store.sqlite_path", "/data/phishguard_signatures.db")
	v.SetDefault("store.mysql_dsn", "user:password@tcp(localhost:3306)/phishguard")
	v.SetDefault("store.redis_url", "redis://localhost:6379")
	v.SetDefault("store.redis_prefix", "phishguard:sig")

	// Trigger vocabulary defaults
	v.SetDefault("triggers.vocabulary", defaultTriggerVocabulary)

	// Server defaults
	v.SetDefault("server.listen_address", ":8080")

	// Monitor defaults
	v.SetDefault("monitor.enabled", false)
	v.SetDefault("monitor.queue_size", 256)
	v.SetDefault("monitor.redis_url", "redis://localhost:6379")
	v.SetDefault("monitor.ingest_channel", "phishguard:ingest")
	v.SetDefault("monitor.scan_channel", "phishguard:scans")
	v.SetDefault("monitor.alert_channel", "phishguard:alerts")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// defaultTriggerVocabulary seeds the heuristic trigger set. The list is
// configuration and can be replaced wholesale in the config file.
var defaultTriggerVocabulary = []string{
	"winner",
	"urgent",
	"verify",
	"suspended",
	"prize",
	"lottery",
	"congratulations",
	"claim",
	"click here",
	"bank details",
	"gift card",
	"wire transfer",
	"act now",
	"limited time",
	"account locked",
	"refund pending",
	"free iphone",
	"inheritance",
	"password expired",
	"confirm your account",
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetFloat64 gets a float64 value from the configuration
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
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
