package server

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/impresso/CLEF-HIPE-2020-scorer/pkg/config/env"
)

const DefaultEnvPath = "cmd/hipe_api/.env"

type Config struct {
	Port        string   `envconfig:"HIPE_API_PORT" default:"8080"`
	UseHttp2    bool     `envconfig:"HIPE_API_USE_HTTP2"`
	CorsOrigins []string `envconfig:"HIPE_API_CORS_ORIGINS"`
}

func LoadConfig() (*Config, error) {
	if err := env.LoadDotEnv(DefaultEnvPath); err != nil {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("processing api env config: %w", err)
	}

	if err := validatePort(cfg.Port); err != nil {
		return nil, fmt.Errorf("invalid port: %w", err)
	}

	origins := cfg.CorsOrigins[:0]
	for _, o := range cfg.CorsOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	cfg.CorsOrigins = origins

	return &cfg, nil
}

func validatePort(port string) error {
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return errors.New("port must be a number")
	}
	if portNum < 1 || portNum > 65535 {
		return errors.New("port must be between 1 and 65535")
	}
	return nil
}
