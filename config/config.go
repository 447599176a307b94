package config

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port           string  `env:"PORT,default=8080"`
	AWSRegion      string  `env:"AWS_REGION,default=us-east-1"`
	JWTSecret      string  `env:"JWT_SECRET,required"`
	PushGatewayURL string  `env:"PUSH_GATEWAY_URL"`
	LogLevel       string  `env:"LOG_LEVEL,default=info"`
	LogDev         bool    `env:"LOG_DEV"`
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS,default=10"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST,default=20"`
	EventPoolSize  int     `env:"EVENT_POOL_SIZE,default=64"`
}

// Load reads .env when present, then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{}
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing env vars: %w", err)
	}
	return cfg, nil
}
