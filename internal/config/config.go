// Package config gathers runtime settings from an optional .env file and
// TUBEQUIZ_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/abhisek/tubequiz/internal/chunker"
	"github.com/abhisek/tubequiz/internal/llm"
	"github.com/abhisek/tubequiz/internal/logger"
	"github.com/abhisek/tubequiz/internal/store"
	"github.com/abhisek/tubequiz/internal/transcript"
)

// Config is the resolved application configuration.
type Config struct {
	DBPath             string
	LogFile            string
	LogMode            string
	ChunkWords         int
	Languages          []string
	TranscriptCacheTTL time.Duration
	ExportDir          string
	// StructuredQuiz asks the model for JSON quizzes instead of the text
	// layout.
	StructuredQuiz bool

	LLM llm.Config
	// LLMConfigured is false when neither TUBEQUIZ_LLM_PROVIDER nor any
	// known API key variable is set.
	LLMConfigured bool
}

// Load reads envFiles (".env" when none are given) into the environment
// without overriding variables already set, then resolves the
// configuration. A missing .env file is not an error.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv resolves the configuration from the current environment.
func FromEnv() (Config, error) {
	cfg := Config{
		LogMode:            envOr("TUBEQUIZ_LOG_MODE", "dev"),
		LogFile:            os.Getenv("TUBEQUIZ_LOG_FILE"),
		ChunkWords:         chunker.DefaultMaxWords,
		Languages:          []string{"en"},
		TranscriptCacheTTL: transcript.DefaultCacheTTL,
		ExportDir:          os.Getenv("TUBEQUIZ_EXPORT_DIR"),
	}

	var err error
	if cfg.DBPath, err = store.DefaultDBPath(); err != nil {
		return Config{}, err
	}
	if cfg.LogFile == "" {
		if cfg.LogFile, err = logger.DefaultPath(); err != nil {
			return Config{}, err
		}
	}

	if v := os.Getenv("TUBEQUIZ_CHUNK_WORDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("TUBEQUIZ_CHUNK_WORDS must be a positive integer, got %q", v)
		}
		cfg.ChunkWords = n
	}
	if v := os.Getenv("TUBEQUIZ_TRANSCRIPT_LANG"); v != "" {
		cfg.Languages = splitList(v)
	}
	if v := os.Getenv("TUBEQUIZ_TRANSCRIPT_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("TUBEQUIZ_TRANSCRIPT_CACHE_TTL: %w", err)
		}
		cfg.TranscriptCacheTTL = d
	}

	if v := os.Getenv("TUBEQUIZ_QUIZ_STRUCTURED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("TUBEQUIZ_QUIZ_STRUCTURED: %w", err)
		}
		cfg.StructuredQuiz = b
	}

	cfg.LLM, cfg.LLMConfigured = resolveLLM()
	return cfg, nil
}

// resolveLLM prefers an explicit TUBEQUIZ_LLM_PROVIDER and falls back to
// probing well-known API key variables.
func resolveLLM() (llm.Config, bool) {
	if os.Getenv("TUBEQUIZ_LLM_PROVIDER") != "" {
		return llm.ConfigFromEnv(), true
	}
	if cfg, ok := llm.DiscoverConfig(); ok {
		return cfg, true
	}
	return llm.ConfigFromEnv(), false
}

// SetProvider switches the LLM provider, picking up the matching API key
// from the standard variables when the TUBEQUIZ_ one is not set.
func (c *Config) SetProvider(name string) {
	c.LLM.UseProvider(name)
	c.LLMConfigured = true
}

// Validate reports settings that would make the pipeline fail.
func (c Config) Validate() error {
	var errs []error
	if !c.LLMConfigured {
		errs = append(errs, errors.New("no LLM configured: set GEMINI_API_KEY (or OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY) or TUBEQUIZ_LLM_PROVIDER"))
	} else if err := c.LLM.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.ChunkWords <= 0 {
		errs = append(errs, fmt.Errorf("chunk size must be positive, got %d", c.ChunkWords))
	}
	if len(c.Languages) == 0 {
		errs = append(errs, errors.New("at least one transcript language is required"))
	}
	return errors.Join(errs...)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
