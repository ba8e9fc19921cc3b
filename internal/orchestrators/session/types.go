package session

import (
	"github.com/KirkDiggler/rpg-skillcheck/internal/entities"
)

// CreateSessionInput contains the selection a new session is built from.
// Duplicate ids are collapsed.
type CreateSessionInput struct {
	// Name is optional; a timestamped label is used when empty
	Name    string
	Players []*entities.Player
	Events  []*entities.SkillCheckEvent
}

// CreateSessionOutput contains the new current session
type CreateSessionOutput struct {
	Session *entities.CheckSession
	// CompletedSessionID is set when a still-active session was completed to
	// make room for the new one
	CompletedSessionID string
}

// GetActiveOutput contains the current session, if any
type GetActiveOutput struct {
	// Session is nil when no session is active
	Session *entities.CheckSession
	Stats   entities.ResultStats
}

// GetSessionInput identifies a session in history
type GetSessionInput struct {
	SessionID string
}

// GetSessionOutput contains a session and its derived views
type GetSessionOutput struct {
	Session *entities.CheckSession
	Summary entities.SessionSummary
	Stats   entities.ResultStats
}

// ListSessionsInput filters the history listing
type ListSessionsInput struct {
	// Status is one of all, active, completed, archived. Empty means all.
	Status string
	// Search matches session names, case insensitive
	Search string
}

// ListSessionsOutput lists summaries, most recently created first
type ListSessionsOutput struct {
	Sessions         []entities.SessionSummary
	CurrentSessionID string
}

// GetHistoryOutput contains the full history in storage order
type GetHistoryOutput struct {
	Sessions []*entities.CheckSession
}

// CloseSessionOutput contains the session that was closed
type CloseSessionOutput struct {
	Session *entities.CheckSession
}

// LoadSessionInput identifies the session to make current
type LoadSessionInput struct {
	SessionID string
}

// LoadSessionOutput contains the newly current session
type LoadSessionOutput struct {
	Session *entities.CheckSession
	// CompletedSessionID is set when the outgoing session was auto-completed
	CompletedSessionID string
}

// ArchiveSessionInput identifies the session to archive
type ArchiveSessionInput struct {
	SessionID string
}

// ArchiveSessionOutput contains the archived session
type ArchiveSessionOutput struct {
	Session *entities.CheckSession
}

// DeleteSessionInput identifies the session to delete
type DeleteSessionInput struct {
	SessionID string
}

// ReplaceHistoryInput contains the sessions that replace the whole history
type ReplaceHistoryInput struct {
	Sessions []*entities.CheckSession
}

// RollItemInput rolls one item of the current session
type RollItemInput struct {
	ItemID string
	// CustomBonus replaces the item's bonus when set
	CustomBonus *int
}

// RollAllOutput reports a batch roll over the current session
type RollAllOutput struct {
	Rolled  int
	Session *entities.CheckSession
}

// ApplyCustomValueInput enters a die face by hand
type ApplyCustomValueInput struct {
	ItemID string
	// Value clears the custom value when nil
	Value       *int
	CustomBonus *int
}

// SetCustomBonusInput replaces an item's bonus
type SetCustomBonusInput struct {
	ItemID string
	// CustomBonus clears the bonus when nil
	CustomBonus *int
}

// ItemInput identifies an item in the current session
type ItemInput struct {
	ItemID string
}

// ItemOutput contains an item after an action
type ItemOutput struct {
	Item *entities.CheckItem
}

// ResetAllOutput contains the current session after every item was reset
type ResetAllOutput struct {
	Session *entities.CheckSession
}
