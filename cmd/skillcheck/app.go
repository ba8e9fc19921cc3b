package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-skillcheck/internal/engine"
	"github.com/KirkDiggler/rpg-skillcheck/internal/kvstore"
	"github.com/KirkDiggler/rpg-skillcheck/internal/orchestrators/roster"
	"github.com/KirkDiggler/rpg-skillcheck/internal/orchestrators/session"
	"github.com/KirkDiggler/rpg-skillcheck/internal/orchestrators/transfer"
	"github.com/KirkDiggler/rpg-skillcheck/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-skillcheck/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-skillcheck/internal/redis"
	"github.com/KirkDiggler/rpg-skillcheck/internal/repositories/dataset"
)

const (
	storeSQLite = "sqlite"
	storeRedis  = "redis"
	storeMemory = "memory"
)

// app wires the services for one command invocation
type app struct {
	store    kvstore.Store
	roster   roster.Service
	sessions session.Service
	transfer transfer.Service
}

func newApp(ctx context.Context) (*app, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := openStore()
	if err != nil {
		return nil, err
	}

	repo, err := dataset.NewRepository(&dataset.Config{Store: store})
	if err != nil {
		return nil, fmt.Errorf("failed to create dataset repository: %w", err)
	}

	rosterService, err := roster.NewOrchestrator(ctx, &roster.Config{
		Repository:       repo,
		IDGenerator:      idgen.NewUUID(""),
		OnStorageWarning: warnStorage,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create roster service: %w", err)
	}

	rules, err := engine.New(&engine.Config{Roller: dice.DefaultRoller})
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	sessionService, err := session.NewOrchestrator(ctx, &session.Config{
		Repository:       repo,
		Engine:           rules,
		IDGenerator:      idgen.NewUUID(""),
		Clock:            clock.New(),
		OnStorageWarning: warnStorage,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session service: %w", err)
	}

	transferService, err := transfer.NewOrchestrator(&transfer.Config{
		Roster:   rosterService,
		Sessions: sessionService,
		Clock:    clock.New(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create transfer service: %w", err)
	}

	return &app{
		store:    store,
		roster:   rosterService,
		sessions: sessionService,
		transfer: transferService,
	}, nil
}

// Close releases the store
func (a *app) Close() error {
	return a.store.Close()
}

func openStore() (kvstore.Store, error) {
	switch storeKind {
	case storeSQLite:
		store, err := kvstore.OpenSQLite(dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", dbPath, err)
		}
		return store, nil
	case storeRedis:
		client, err := redis.NewClient(redisAddr, &redis.Options{
			Password:    redisPassword,
			DialTimeout: 2 * time.Second,
			MaxRetries:  1,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create redis client: %w", err)
		}
		store, err := kvstore.NewRedis(&kvstore.RedisConfig{
			Client:    client,
			KeyPrefix: redisKeyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create redis store: %w", err)
		}
		return store, nil
	case storeMemory:
		return kvstore.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store %q (want sqlite, redis or memory)", storeKind)
	}
}

// warnStorage surfaces a failed save without failing the command
func warnStorage(err error) {
	fmt.Fprintf(os.Stderr, "warning: changes kept in memory only: %v\n", err)
}
