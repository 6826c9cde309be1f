package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/shopcfg/internal/config"
	"github.com/mark3labs/shopcfg/internal/logger"
	natsembed "github.com/mark3labs/shopcfg/internal/nats"
	"github.com/mark3labs/shopcfg/internal/store"
	"github.com/mark3labs/shopcfg/internal/submit"
)

var rootFlags struct {
	store    string
	dataDir  string
	endpoint string
	locale   string
	logLevel string
	logFile  string
}

// loadConfig reads the layered config, applies the persistent flags on top
// and configures logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	override(&cfg.Store, rootFlags.store)
	override(&cfg.DataDir, rootFlags.dataDir)
	override(&cfg.Endpoint, rootFlags.endpoint)
	override(&cfg.Locale, rootFlags.locale)
	override(&cfg.LogLevel, rootFlags.logLevel)
	override(&cfg.LogFile, rootFlags.logFile)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFile); err != nil {
		return nil, err
	}
	return cfg, nil
}

func override(dst *string, flag string) {
	if flag != "" {
		*dst = flag
	}
}

// openStore builds the configured backend. The returned close func releases
// it and is never nil.
func openStore(ctx context.Context, cfg *config.Config) (*store.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store {
	case config.StoreMemory:
		return store.New(store.NewMemoryBackend(), cfg.StoreKey), noop, nil

	case config.StoreNATS:
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, noop, fmt.Errorf("creating data dir: %w", err)
		}
		emb, err := natsembed.Start(cfg.DataDir)
		if err != nil {
			return nil, noop, fmt.Errorf("starting nats: %w", err)
		}
		kv, err := emb.SelectionBucket(ctx)
		if err != nil {
			_ = emb.Close()
			return nil, noop, fmt.Errorf("opening selection bucket: %w", err)
		}
		return store.New(store.NewKVBackend(kv), cfg.StoreKey), emb.Close, nil

	default:
		return store.New(store.NewFileBackend(cfg.DataDir), cfg.StoreKey), noop, nil
	}
}

func newGateway(cfg *config.Config) *submit.Gateway {
	return submit.New(submit.Config{
		Endpoint: cfg.Endpoint,
		Timeout:  cfg.SubmitTimeout,
	})
}
