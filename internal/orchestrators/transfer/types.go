package transfer

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/rpg-skillcheck/internal/entities"
)

// Scope selects which collections an export or import covers
type Scope string

// Transfer scopes
const (
	ScopePlayers  Scope = "players"
	ScopeEvents   Scope = "events"
	ScopeSessions Scope = "sessions"
	ScopeAll      Scope = "all"
)

// Scopes lists every valid scope
var Scopes = []Scope{ScopePlayers, ScopeEvents, ScopeSessions, ScopeAll}

// ExportInput selects what to export
type ExportInput struct {
	Scope Scope
}

// ExportOutput is a ready-to-write export document
type ExportOutput struct {
	// Filename follows dnd-<dataset>-YYYY-MM-DD.json
	Filename    string
	ContentType string
	Data        []byte
}

// PreviewImportInput is an uploaded document and the scope to import from it
type PreviewImportInput struct {
	Scope       Scope
	ContentType string
	Data        []byte
}

// ImportPlan holds the records that passed validation. A nil collection is
// left untouched on commit; a non-nil one, even empty, replaces the current
// collection.
type ImportPlan struct {
	Scope    Scope
	Players  []*entities.Player
	Events   []*entities.SkillCheckEvent
	Sessions []*entities.CheckSession

	// Skipped counts records dropped by shape validation
	Skipped int
}

// Summary describes what the plan would replace, e.g. "2 players, 3 events"
func (p *ImportPlan) Summary() string {
	var parts []string
	if p.Players != nil {
		parts = append(parts, fmt.Sprintf("%d players", len(p.Players)))
	}
	if p.Events != nil {
		parts = append(parts, fmt.Sprintf("%d events", len(p.Events)))
	}
	if p.Sessions != nil {
		parts = append(parts, fmt.Sprintf("%d sessions", len(p.Sessions)))
	}
	if len(parts) == 0 {
		return "nothing"
	}
	return strings.Join(parts, ", ")
}

// PreviewImportOutput contains the plan awaiting confirmation
type PreviewImportOutput struct {
	Plan *ImportPlan
}

// CommitImportInput confirms a previewed plan
type CommitImportInput struct {
	Plan *ImportPlan
}

// CommitImportOutput reports what was replaced
type CommitImportOutput struct {
	Message string
}
