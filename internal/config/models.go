package config

import (
	"fmt"
	"strings"
	"time"
)

// BackendConfig is one entry of the ordered llm.backends list
type BackendConfig struct {
	Provider string `mapstructure:"provider"`
	Model    string `mapstructure:"model"`
}

// OpenAIConfig represents the configuration for OpenAI-compatible APIs
type OpenAIConfig struct {
	APIKey    string
	BaseURL   string
	ModelName string
	MaxTokens int
	TopP      float32
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey    string
	ModelName string
	MaxTokens int
	TopP      float32
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region    string
	ModelID   string
	MaxTokens int
	TopP      float32
}

// GeneratorConfig holds the retry and sampling policy
type GeneratorConfig struct {
	AttemptTimeout     time.Duration
	RateLimitPause     time.Duration
	LiveTemperature    float32
	BatchTemperature   float32
	StrictQuality      bool
	PreloadConcurrency int
}

// PoolConfig selects and locates the pool repository
type PoolConfig struct {
	Store         string
	Dir           string
	SQLitePath    string
	MySQLDSN      string
	DefaultLocale string
}

// BuilderConfig holds the batch builder settings
type BuilderConfig struct {
	Delay     time.Duration
	SeedsFile string
}

// QualityConfig holds the quality checker thresholds
type QualityConfig struct {
	TrustedDomains []string
	MinWords       int
	MaxWords       int
	MinClues       int
	MaxClues       int
}

// ServerConfig holds the HTTP server settings
type ServerConfig struct {
	ListenAddress  string
	RequestTimeout time.Duration
	MaxBatch       int
	MetricsEnabled bool
}

// SMTPConfig holds the training inbox relay settings
type SMTPConfig struct {
	Enabled      bool
	Address      string
	EnvelopeFrom string
	Helo         string
}

// GetBackends returns the ordered backend list
func (c *Config) GetBackends() ([]BackendConfig, error) {
	var backends []BackendConfig
	if err := c.v.UnmarshalKey("llm.backends", &backends); err != nil {
		return nil, fmt.Errorf("invalid llm.backends: %w", err)
	}
	for i := range backends {
		backends[i].Provider = strings.ToLower(strings.TrimSpace(backends[i].Provider))
	}
	return backends, nil
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:    c.GetString("openai.api_key"),
		BaseURL:   c.GetString("openai.base_url"),
		ModelName: c.GetString("openai.model_name"),
		MaxTokens: c.GetInt("openai.max_tokens"),
		TopP:      float32(c.GetFloat64("openai.top_p")),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:    c.GetString("gemini.api_key"),
		ModelName: c.GetString("gemini.model_name"),
		MaxTokens: c.GetInt("gemini.max_tokens"),
		TopP:      float32(c.GetFloat64("gemini.top_p")),
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:    c.GetString("bedrock.region"),
		ModelID:   c.GetString("bedrock.model_id"),
		MaxTokens: c.GetInt("bedrock.max_tokens"),
		TopP:      float32(c.GetFloat64("bedrock.top_p")),
	}
}

// GetGenerator returns the generator configuration
func (c *Config) GetGenerator() (GeneratorConfig, error) {
	timeout, err := c.GetDuration("generator.attempt_timeout")
	if err != nil {
		return GeneratorConfig{}, fmt.Errorf("invalid generator.attempt_timeout: %w", err)
	}
	pause, err := c.GetDuration("generator.rate_limit_pause")
	if err != nil {
		return GeneratorConfig{}, fmt.Errorf("invalid generator.rate_limit_pause: %w", err)
	}

	return GeneratorConfig{
		AttemptTimeout:     timeout,
		RateLimitPause:     pause,
		LiveTemperature:    float32(c.GetFloat64("generator.live_temperature")),
		BatchTemperature:   float32(c.GetFloat64("generator.batch_temperature")),
		StrictQuality:      c.GetBool("generator.strict_quality"),
		PreloadConcurrency: c.GetInt("generator.preload_concurrency"),
	}, nil
}

// GetPool returns the pool repository configuration
func (c *Config) GetPool() PoolConfig {
	return PoolConfig{
		Store:         strings.ToLower(c.GetString("pool.store")),
		Dir:           c.GetString("pool.dir"),
		SQLitePath:    c.GetString("pool.sqlite_path"),
		MySQLDSN:      c.GetString("pool.mysql_dsn"),
		DefaultLocale: c.GetString("pool.default_locale"),
	}
}

// GetBuilder returns the batch builder configuration
func (c *Config) GetBuilder() (BuilderConfig, error) {
	delay, err := c.GetDuration("builder.delay")
	if err != nil {
		return BuilderConfig{}, fmt.Errorf("invalid builder.delay: %w", err)
	}
	return BuilderConfig{
		Delay:     delay,
		SeedsFile: c.GetString("seeds.file"),
	}, nil
}

// GetQuality returns the quality checker configuration
func (c *Config) GetQuality() QualityConfig {
	return QualityConfig{
		TrustedDomains: c.GetStringSlice("quality.trusted_domains"),
		MinWords:       c.GetInt("quality.min_words"),
		MaxWords:       c.GetInt("quality.max_words"),
		MinClues:       c.GetInt("quality.min_clues"),
		MaxClues:       c.GetInt("quality.max_clues"),
	}
}

// GetServer returns the HTTP server configuration
func (c *Config) GetServer() (ServerConfig, error) {
	timeout, err := c.GetDuration("server.request_timeout")
	if err != nil {
		return ServerConfig{}, fmt.Errorf("invalid server.request_timeout: %w", err)
	}
	return ServerConfig{
		ListenAddress:  c.GetString("server.listen_address"),
		RequestTimeout: timeout,
		MaxBatch:       c.GetInt("server.max_batch"),
		MetricsEnabled: c.GetBool("metrics.enabled"),
	}, nil
}

// GetSMTP returns the delivery relay configuration
func (c *Config) GetSMTP() SMTPConfig {
	return SMTPConfig{
		Enabled:      c.GetBool("smtp.enabled"),
		Address:      c.GetString("smtp.address"),
		EnvelopeFrom: c.GetString("smtp.envelope_from"),
		Helo:         c.GetString("smtp.helo"),
	}
}
