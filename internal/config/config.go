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
	v.AddConfigPath("/etc/phish-trainer/")
	v.AddConfigPath("$HOME/.phish-trainer")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	setDefaults(v)
	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return &Config{v: v}, nil
}

// NewFromFile creates a configuration instance from an explicit file
func NewFromFile(path string) (*Config, error) {
	v := NewEmptyViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults and env bindings
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	bindEnv(v)
	return v
}

func bindEnv(v *viper.Viper) {
	v.AutomaticEnv()
	v.SetEnvPrefix("PHISH_TRAINER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// the conventional variable for the default DeepSeek backend
	_ = v.BindEnv("openai.api_key", "PHISH_TRAINER_OPENAI_API_KEY", "DEEPSEEK_API_KEY")
	_ = v.BindEnv("gemini.api_key", "PHISH_TRAINER_GEMINI_API_KEY", "GEMINI_API_KEY")
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Ordered generation backends
	v.SetDefault("llm.backends", []map[string]any{
		{"provider": "openai", "model": "deepseek-chat"},
	})

	// OpenAI-compatible (DeepSeek) defaults
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.base_url", "https://api.deepseek.com")
	v.SetDefault("openai.model_name", "deepseek-chat")
	v.SetDefault("openai.max_tokens", 1500)
	v.SetDefault("openai.top_p", 1.0)

	// Gemini defaults
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model_name", "gemini-1.5-flash")
	v.SetDefault("gemini.max_tokens", 1500)
	v.SetDefault("gemini.top_p", 0.95)

	// Bedrock defaults
	v.SetDefault("bedrock.region", "")
	v.SetDefault("bedrock.model_id", "anthropic.claude-3-haiku-20240307-v1:0")
	v.SetDefault("bedrock.max_tokens", 1500)
	v.SetDefault("bedrock.top_p", 0.95)

	// Generator defaults
	v.SetDefault("generator.attempt_timeout", "45s")
	v.SetDefault("generator.rate_limit_pause", "1s")
	v.SetDefault("generator.live_temperature", 1.2)
	v.SetDefault("generator.batch_temperature", 1.0)
	v.SetDefault("generator.strict_quality", false)
	v.SetDefault("generator.preload_concurrency", 3)

	// Pool defaults
	v.SetDefault("pool.store", "file")
	v.SetDefault("pool.dir", "./data")
	v.SetDefault("pool.sqlite_path", "./data/email-pool.db")
	v.SetDefault("pool.mysql_dsn", "user:password@tcp(localhost:3306)/phish_trainer?parseTime=true")
	v.SetDefault("pool.default_locale", "en")

	// Builder defaults
	v.SetDefault("builder.delay", "1500ms")
	v.SetDefault("seeds.file", "")

	// Quality defaults
	v.SetDefault("quality.trusted_domains", []string{})
	v.SetDefault("quality.min_words", 150)
	v.SetDefault("quality.max_words", 300)
	v.SetDefault("quality.min_clues", 2)
	v.SetDefault("quality.max_clues", 4)

	// Server defaults
	v.SetDefault("server.listen_address", ":8080")
	v.SetDefault("server.request_timeout", "120s")
	v.SetDefault("server.max_batch", 20)

	// SMTP delivery defaults
	v.SetDefault("smtp.enabled", false)
	v.SetDefault("smtp.address", "localhost:25")
	v.SetDefault("smtp.envelope_from", "phish-trainer@localhost")
	v.SetDefault("smtp.helo", "phish-trainer.local")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("metrics.enabled", true)
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

// Set overrides a configuration value
func (c *Config) Set(key string, value any) {
	c.v.Set(key, value)
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
