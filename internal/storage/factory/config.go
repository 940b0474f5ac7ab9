package factory

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/storage/es"
	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/storage/pg"
)

const DefaultESIndex = "hipe-results"

// Config holds the sink settings read from the environment.
type Config struct {
	PgConnStr   string   `envconfig:"HIPE_PG_CONN_STR"`
	EsAddresses []string `envconfig:"HIPE_ES_ADDRESSES" default:"http://localhost:9200"`
	EsIndex     string   `envconfig:"HIPE_ES_INDEX" default:"hipe-results"`
	EsUsername  string   `envconfig:"HIPE_ES_USERNAME"`
	EsPassword  string   `envconfig:"HIPE_ES_PASSWORD"`
}

func LoadEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("processing sink env config: %w", err)
	}
	return &cfg, nil
}

func (c Config) PG() (pg.PoolConfig, error) {
	if c.PgConnStr == "" {
		return pg.PoolConfig{}, fmt.Errorf("HIPE_PG_CONN_STR is not set")
	}
	return pg.PoolConfig{ConnStr: c.PgConnStr}, nil
}

func (c Config) ES() (es.ClientConfig, error) {
	if len(c.EsAddresses) == 0 || c.EsIndex == "" {
		return es.ClientConfig{}, fmt.Errorf("elasticsearch configuration is incomplete: addresses or index name is missing")
	}
	return es.ClientConfig{
		Addresses: c.EsAddresses,
		IndexName: c.EsIndex,
		Username:  c.EsUsername,
		Password:  c.EsPassword,
	}, nil
}
