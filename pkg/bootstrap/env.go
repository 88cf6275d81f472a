package bootstrap

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v9"
)

// ErrInvalidConfig is returned when the process environment cannot be
// resolved into a usable configuration, e.g. a malformed PORT value.
var ErrInvalidConfig = errors.New("invalid configuration")

type Env struct {
	DB     DBEnv     `envPrefix:"DB_"`
	Redis  RedisEnv  `envPrefix:"REDIS_"`
	Server ServerEnv
	API    APIEnv
	Agent  AgentEnv
	Teams  TeamsEnv
	Domain string `env:"DOMAIN" envDefault:""`
}

type APIEnv struct {
	// SecretKey protects the mutating endpoints via the X-API-Key header.
	SecretKey string `env:"API_SECRET_KEY" envDefault:""`
}

type AgentEnv struct {
	GeminiAPIKey string `env:"GEMINI_API_KEY" envDefault:""`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	TavilyAPIKey string `env:"TAVILY_API_KEY" envDefault:""`
	MaxResults   int    `env:"TAVILY_MAX_RESULTS" envDefault:"10"`
}

type TeamsEnv struct {
	WebhookURL string `env:"TEAMS_WEBHOOK_URL" envDefault:""`
}

// NewEnv resolves the process environment into an immutable Env record.
// This is the only place the environment is read; everything downstream
// receives the resolved record.
func NewEnv() (*Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if e.Server.Port == 0 {
		return nil, fmt.Errorf("%w: PORT must be in range 1-65535", ErrInvalidConfig)
	}
	// A set-but-empty TZ falls back to the default, same as unset.
	if e.Server.TimeZone == "" {
		e.Server.TimeZone = "UTC"
	}
	return &e, nil
}
