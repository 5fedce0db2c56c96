package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort          string        `env:"HTTP_PORT" envDefault:"8080"`
	LLMProvider       string        `env:"LLM_PROVIDER" envDefault:"openai"`
	LLMAPIKey         string        `env:"LLM_API_KEY,required,notEmpty"`
	LLMBaseURL        string        `env:"LLM_BASE_URL" envDefault:"https://api.openai.com/v1"`
	LLMModel          string        `env:"LLM_MODEL" envDefault:"gpt-5-mini"`
	KnowledgeBasePath string        `env:"KNOWLEDGE_BASE_PATH" envDefault:"data/portfolio.json"`
	SMTPHost          string        `env:"SMTP_HOST"`
	SMTPPort          int           `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser          string        `env:"SMTP_USER"`
	SMTPPass          string        `env:"SMTP_PASS"`
	SMTPFrom          string        `env:"SMTP_FROM"`
	SMTPFromName      string        `env:"SMTP_FROM_NAME" envDefault:"Portfolio"`
	SMTPUseTLS        bool          `env:"SMTP_USE_TLS" envDefault:"false"`
	ContactTo         string        `env:"CONTACT_TO"`
	RedisAddr         string        `env:"REDIS_ADDR"`
	RedisPassword     string        `env:"REDIS_PASSWORD"`
	RedisDB           int           `env:"REDIS_DB" envDefault:"0"`
	RateLimitWindow   time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
	RateLimitMax      int           `env:"RATE_LIMIT_MAX" envDefault:"20"`
}

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate revisa combinaciones que env no puede expresar con tags.
func (c *Config) Validate() error {
	switch c.LLMProvider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q", c.LLMProvider)
	}
	if c.SMTPHost != "" && c.ContactTo == "" {
		return fmt.Errorf("CONTACT_TO is required when SMTP_HOST is set")
	}
	if c.RateLimitMax < 0 {
		return fmt.Errorf("RATE_LIMIT_MAX must not be negative")
	}
	return nil
}
