package factory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/storage"
	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/storage/es"
	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/storage/pg"
)

// NewSink connects the configured sink. It returns nil for storage.None.
func NewSink(ctx context.Context, t storage.Type, cfg Config, logger *slog.Logger) (storage.Sink, error) {
	switch t {
	case storage.None, "":
		return nil, nil

	case storage.PG:
		store, _, err := NewPGStore(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return store, nil

	case storage.ES:
		esCfg, err := cfg.ES()
		if err != nil {
			return nil, err
		}
		sink, err := es.NewSink(ctx, esCfg, logger)
		if err != nil {
			return nil, err
		}
		return sink, nil

	default:
		return nil, fmt.Errorf("unsupported sink type: %s", t)
	}
}

// NewPGStore connects to Postgres and makes sure the results schema exists.
func NewPGStore(ctx context.Context, cfg Config, logger *slog.Logger) (*pg.Store, *pg.ConnectionPool, error) {
	pgCfg, err := cfg.PG()
	if err != nil {
		return nil, nil, err
	}

	pool, err := pg.NewConnectionPool(ctx, pgCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
	}
	if err := pg.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, err
	}

	return pg.NewStore(pool, logger), pool, nil
}
