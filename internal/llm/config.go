package llm

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config selects a provider and carries the settings of every vendor, so
// switching providers on the command line needs no other change.
type Config struct {
	// Provider is "gemini", "openai", "anthropic", "openrouter" or "mock".
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call, retries included.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// OpenRouterConfig models carry a vendor prefix, e.g. "google/gemini-2.5-flash".
type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

func DefaultConfig() Config {
	return Config{
		Provider:   "gemini",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		// A failed call surfaces to the user, who can retry the action.
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 90 * time.Second,
	}
}

// vendor binds a provider name to its environment variables and to the
// fields of Config they fill.
type vendor struct {
	name string
	// env prefixes TUBEQUIZ_<env>_API_KEY, _MODEL and _BASE_URL.
	env string
	// standardKey is the variable the vendor's own tools read.
	standardKey string

	apiKey, model, baseURL *string
}

// vendors lists providers in discovery order.
func (c *Config) vendors() []vendor {
	return []vendor{
		{"gemini", "GEMINI", "GEMINI_API_KEY", &c.Gemini.APIKey, &c.Gemini.Model, &c.Gemini.BaseURL},
		{"openai", "OPENAI", "OPENAI_API_KEY", &c.OpenAI.APIKey, &c.OpenAI.Model, &c.OpenAI.BaseURL},
		{"anthropic", "ANTHROPIC", "ANTHROPIC_API_KEY", &c.Anthropic.APIKey, &c.Anthropic.Model, &c.Anthropic.BaseURL},
		{"openrouter", "OPENROUTER", "OPENROUTER_API_KEY", &c.OpenRouter.APIKey, &c.OpenRouter.Model, &c.OpenRouter.BaseURL},
	}
}

func (c *Config) vendor(name string) (vendor, bool) {
	for _, v := range c.vendors() {
		if v.name == name {
			return v, true
		}
	}
	return vendor{}, false
}

// ConfigFromEnv reads TUBEQUIZ_LLM_PROVIDER and the TUBEQUIZ_<VENDOR>_*
// variables over DefaultConfig.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	setFromEnv(&cfg.Provider, "TUBEQUIZ_LLM_PROVIDER")
	for _, v := range cfg.vendors() {
		setFromEnv(v.apiKey, "TUBEQUIZ_"+v.env+"_API_KEY")
		setFromEnv(v.model, "TUBEQUIZ_"+v.env+"_MODEL")
		setFromEnv(v.baseURL, "TUBEQUIZ_"+v.env+"_BASE_URL")
	}
	applyTuningEnv(&cfg)
	return cfg
}

// DiscoverConfig picks the first vendor whose standard API key variable is
// set (GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY).
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	for _, v := range cfg.vendors() {
		if key := os.Getenv(v.standardKey); key != "" {
			cfg.Provider = v.name
			*v.apiKey = key
			applyTuningEnv(&cfg)
			return cfg, true
		}
	}
	return Config{}, false
}

// UseProvider switches to name, taking the vendor's standard API key
// variable when no key is configured yet.
func (c *Config) UseProvider(name string) {
	c.Provider = name
	if v, ok := c.vendor(name); ok && *v.apiKey == "" {
		*v.apiKey = os.Getenv(v.standardKey)
	}
}

func applyTuningEnv(cfg *Config) {
	if n, err := strconv.Atoi(os.Getenv("TUBEQUIZ_LLM_MAX_ATTEMPTS")); err == nil && n > 0 {
		cfg.Retry.MaxAttempts = n
	}
	if d, err := time.ParseDuration(os.Getenv("TUBEQUIZ_LLM_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate checks that the selected provider exists and has an API key.
func (c Config) Validate() error {
	if c.Provider == "mock" {
		return nil
	}
	v, ok := c.vendor(c.Provider)
	if !ok {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if *v.apiKey == "" {
		return fmt.Errorf("TUBEQUIZ_%s_API_KEY (or %s) is required for the %s provider", v.env, v.standardKey, v.name)
	}
	return nil
}
