package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"wanderplan/internal/services"
	"wanderplan/pkg/utils"
)

const DefaultGenerationTimeout = 45 * time.Second

type ServerConfig struct {
	Port string
}

type LLMConfig struct {
	Provider   string
	APIKey     string
	Model      string
	OllamaHost string
	Timeout    time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type AppConfig struct {
	Env       string
	LogLevel  string
	Server    ServerConfig
	LLM       LLMConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

// Load reads configuration from the environment, after merging a .env file
// from the working directory when one exists.
func Load() (AppConfig, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Ignoring unreadable .env file: %v", err)
	}

	cfg := AppConfig{
		Env:      getEnvWithDefault("APP_ENV", "development"),
		LogLevel: getEnvWithDefault("LOG_LEVEL", "info"),
		Server: ServerConfig{
			Port: getEnvWithDefault("PORT", "5001"),
		},
		LLM: loadLLMConfig(),
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnvWithDefault("CORS_ALLOWED_ORIGINS", "*")),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvFloat("RATE_LIMIT_RPS", 2),
			Burst:             getEnvInt("RATE_LIMIT_BURST", 5),
		},
	}

	return cfg, cfg.Validate()
}

func loadLLMConfig() LLMConfig {
	provider := strings.ToLower(getEnvWithDefault("LLM_PROVIDER", utils.ProviderGemini))
	cfg := LLMConfig{
		Provider: provider,
		Timeout:  getEnvDuration("GENERATION_TIMEOUT", DefaultGenerationTimeout),
	}

	switch provider {
	case utils.ProviderOpenAI:
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		cfg.Model = getEnvWithDefault("OPENAI_MODEL", utils.DefaultOpenAIModel)
	case utils.ProviderOllama:
		cfg.OllamaHost = os.Getenv("OLLAMA_HOST")
		cfg.Model = getEnvWithDefault("OLLAMA_MODEL", utils.DefaultOllamaModel)
	default:
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
		cfg.Model = getEnvWithDefault("GEMINI_MODEL", utils.DefaultGeminiModel)
	}
	return cfg
}

func (c AppConfig) Validate() error {
	switch c.LLM.Provider {
	case utils.ProviderGemini:
		if c.LLM.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when using Gemini provider")
		}
	case utils.ProviderOpenAI:
		if c.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when using OpenAI provider")
		}
	case utils.ProviderOllama:
	default:
		return fmt.Errorf("%w: %s", utils.ErrUnsupportedProvider, c.LLM.Provider)
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("GENERATION_TIMEOUT must be positive")
	}
	if c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst < 1 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	return nil
}

func (c AppConfig) GenerativeConfig() utils.GenerativeConfig {
	return utils.GenerativeConfig{
		Provider:   c.LLM.Provider,
		APIKey:     c.LLM.APIKey,
		Model:      c.LLM.Model,
		OllamaHost: c.LLM.OllamaHost,
	}
}

func (c AppConfig) GenerationSettings() services.GenerationSettings {
	return services.GenerationSettings{Model: c.LLM.Model, Timeout: c.LLM.Timeout}
}

// getEnvWithDefault returns environment variable or default value
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
