package dataset

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/KirkDiggler/rpg-skillcheck/internal/entities"
	"github.com/KirkDiggler/rpg-skillcheck/internal/errors"
	"github.com/KirkDiggler/rpg-skillcheck/internal/kvstore"
)

// Config holds the configuration for the store-backed repository
type Config struct {
	Store kvstore.Store
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Store == nil {
		vb.RequiredField("Store")
	}

	return vb.Build()
}

type storeRepository struct {
	store kvstore.Store
}

// Ensure storeRepository implements Repository
var _ Repository = (*storeRepository)(nil)

// NewRepository creates a repository over the given key-value store
func NewRepository(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &storeRepository{store: cfg.Store}, nil
}

// LoadPlayers reads the players record
func (r *storeRepository) LoadPlayers(ctx context.Context) []*entities.Player {
	players := load[entities.Player](ctx, r.store, KeyPlayers)
	for _, p := range players {
		if p.Skills == nil {
			p.Skills = map[string]int{}
		}
	}
	return players
}

// SavePlayers overwrites the players record
func (r *storeRepository) SavePlayers(ctx context.Context, players []*entities.Player) error {
	return save(ctx, r.store, KeyPlayers, players)
}

// LoadEvents reads the events record
func (r *storeRepository) LoadEvents(ctx context.Context) []*entities.SkillCheckEvent {
	return load[entities.SkillCheckEvent](ctx, r.store, KeyEvents)
}

// SaveEvents overwrites the events record
func (r *storeRepository) SaveEvents(ctx context.Context, events []*entities.SkillCheckEvent) error {
	return save(ctx, r.store, KeyEvents, events)
}

// LoadSessions reads the session history. createdAt and completedAt are
// decoded from their RFC 3339 text back into times.
func (r *storeRepository) LoadSessions(ctx context.Context) []*entities.CheckSession {
	sessions := load[entities.CheckSession](ctx, r.store, KeySessionHistory)
	for _, s := range sessions {
		s.Normalize()
	}
	return sessions
}

// SaveSessions overwrites the session history
func (r *storeRepository) SaveSessions(ctx context.Context, sessions []*entities.CheckSession) error {
	return save(ctx, r.store, KeySessionHistory, sessions)
}

func load[E any](ctx context.Context, store kvstore.Store, key string) []*E {
	data, err := store.Get(ctx, key)
	if err != nil {
		if !errors.IsNotFound(err) {
			slog.Warn("Failed to read collection, starting empty",
				"key", key,
				"error", err,
			)
		}
		return []*E{}
	}

	var items []*E
	if err := json.Unmarshal(data, &items); err != nil {
		slog.Warn("Failed to parse collection, starting empty",
			"key", key,
			"error", err,
		)
		return []*E{}
	}

	// JSON null entries decode to nil pointers
	out := make([]*E, 0, len(items))
	for _, item := range items {
		if item != nil {
			out = append(out, item)
		}
	}
	return out
}

func save[T any](ctx context.Context, store kvstore.Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal %s", key)
	}

	if err := store.Set(ctx, key, data); err != nil {
		return errors.Storagef(err, "failed to save %s", key)
	}

	return nil
}
