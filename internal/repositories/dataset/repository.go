// Package dataset mirrors the tracker's three collections (players, events
// and session history) into a key-value store, one JSON record per
// collection.
package dataset

import (
	"context"

	"github.com/KirkDiggler/rpg-skillcheck/internal/entities"
)

// Keys under which each collection is stored
const (
	KeyPlayers        = "players"
	KeyEvents         = "events"
	KeySessionHistory = "sessionHistory"
)

// Repository loads and saves whole collections. Saves always rewrite the
// full collection.
//
// Loads never fail: a missing record yields an empty collection and a record
// that cannot be parsed is logged and treated as empty.
type Repository interface {
	LoadPlayers(ctx context.Context) []*entities.Player
	SavePlayers(ctx context.Context, players []*entities.Player) error

	LoadEvents(ctx context.Context) []*entities.SkillCheckEvent
	SaveEvents(ctx context.Context, events []*entities.SkillCheckEvent) error

	LoadSessions(ctx context.Context) []*entities.CheckSession
	SaveSessions(ctx context.Context, sessions []*entities.CheckSession) error
}

// WarnFunc receives storage failures that were absorbed so the caller could
// keep running on in-memory state
type WarnFunc func(err error)
