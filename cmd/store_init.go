package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/pawstays/petpolicy-cli/internal/extract"
	"github.com/pawstays/petpolicy-cli/internal/store"
	"github.com/pawstays/petpolicy-cli/pkg/anthropic"
)

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "petpolicy.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		var poolCfg *store.PoolConfig
		if cfg.Store.MaxConns > 0 || cfg.Store.MinConns > 0 {
			poolCfg = &store.PoolConfig{MaxConns: cfg.Store.MaxConns, MinConns: cfg.Store.MinConns}
		}
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, poolCfg)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

func initFallback() (extract.Fallback, error) {
	if cfg.Anthropic.Key == "" {
		return nil, eris.New("anthropic API key is required (PETPOLICY_ANTHROPIC_KEY)")
	}
	client := anthropic.NewClient(cfg.Anthropic.Key)
	return extract.NewExtractor(client, cfg.Anthropic.FallbackModel, cfg.Anthropic.RatePerSec), nil
}

func initPetInfo() (*extract.PetInfoExtractor, error) {
	if cfg.Anthropic.Key == "" {
		return nil, eris.New("anthropic API key is required (PETPOLICY_ANTHROPIC_KEY)")
	}
	client := anthropic.NewClient(cfg.Anthropic.Key)
	return extract.NewPetInfoExtractor(client, cfg.Anthropic.ExtractModel), nil
}
