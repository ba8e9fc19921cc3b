// Package session builds check sessions and runs them through their
// lifecycle: active, completed, archived, deleted.
//
// At most one session is current. Creating or loading a session while another
// is still active completes the outgoing one first. Item actions always
// target the current session.
package session

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/KirkDiggler/rpg-skillcheck/internal/engine"
	"github.com/KirkDiggler/rpg-skillcheck/internal/entities"
	"github.com/KirkDiggler/rpg-skillcheck/internal/errors"
	"github.com/KirkDiggler/rpg-skillcheck/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-skillcheck/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-skillcheck/internal/repositories/dataset"
)

// DefaultNameLayout formats the label of a session created without a name
const DefaultNameLayout = "Session 2006-01-02 15:04"

// StatusAll selects every status when listing
const StatusAll = "all"

// Service defines the interface for session operations
type Service interface {
	// Creation and lifecycle
	CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error)
	GetActive(ctx context.Context) (*GetActiveOutput, error)
	GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error)
	ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error)
	GetHistory(ctx context.Context) (*GetHistoryOutput, error)
	CloseSession(ctx context.Context) (*CloseSessionOutput, error)
	LoadSession(ctx context.Context, input *LoadSessionInput) (*LoadSessionOutput, error)
	ArchiveSession(ctx context.Context, input *ArchiveSessionInput) (*ArchiveSessionOutput, error)
	DeleteSession(ctx context.Context, input *DeleteSessionInput) error
	ReplaceHistory(ctx context.Context, input *ReplaceHistoryInput) error

	// Item actions on the current session
	RollItem(ctx context.Context, input *RollItemInput) (*ItemOutput, error)
	RollAll(ctx context.Context) (*RollAllOutput, error)
	ApplyCustomValue(ctx context.Context, input *ApplyCustomValueInput) (*ItemOutput, error)
	SetCustomBonus(ctx context.Context, input *SetCustomBonusInput) (*ItemOutput, error)
	ToggleAdvantage(ctx context.Context, input *ItemInput) (*ItemOutput, error)
	ToggleDisadvantage(ctx context.Context, input *ItemInput) (*ItemOutput, error)
	ResetItem(ctx context.Context, input *ItemInput) (*ItemOutput, error)
	ResetAll(ctx context.Context) (*ResetAllOutput, error)
}

// Config holds the dependencies for the session orchestrator
type Config struct {
	Repository  dataset.Repository
	Engine      engine.Engine
	IDGenerator idgen.Generator
	Clock       clock.Clock
	// OnStorageWarning is called after a save fails; optional
	OnStorageWarning dataset.WarnFunc
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

type orchestrator struct {
	repo   dataset.Repository
	engine engine.Engine
	idGen  idgen.Generator
	clock  clock.Clock
	warn   dataset.WarnFunc

	// history is kept in creation order
	history   []*entities.CheckSession
	currentID string
}

// NewOrchestrator loads session history from the repository. The current
// session is the most recently created one that is still active; any older
// active sessions are completed and the history is saved.
func NewOrchestrator(ctx context.Context, cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		repo:    cfg.Repository,
		engine:  cfg.Engine,
		idGen:   cfg.IDGenerator,
		clock:   cfg.Clock,
		warn:    cfg.OnStorageWarning,
		history: cfg.Repository.LoadSessions(ctx),
	}
	if settled := o.settleActive(); settled > 0 {
		o.save(ctx)
	}

	slog.Info("Session history loaded",
		"sessions", len(o.history),
		"current_session_id", o.currentID,
	)

	return o, nil
}

// CreateSession builds the players x events cross product and makes the new
// session current
func (o *orchestrator) CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	players := uniquePlayers(input.Players)
	events := uniqueEvents(input.Events)
	if len(players) == 0 || len(events) == 0 {
		return nil, errors.InvalidArgument("select at least one player and one event")
	}

	now := o.clock.Now()
	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = now.Format(DefaultNameLayout)
	}

	items := make([]*entities.CheckItem, 0, len(players)*len(events))
	for _, player := range players {
		for _, event := range events {
			items = append(items, &entities.CheckItem{
				ID:         o.idGen.Generate(),
				PlayerID:   player.ID,
				PlayerName: player.Name,
				EventID:    event.ID,
				EventName:  event.Name,
				Skill:      event.Skill,
				Modifier:   player.Modifier(event.Skill),
				Difficulty: event.Difficulty,
				Result:     entities.ResultPending,
			})
		}
	}

	completedID := o.completeCurrent()

	session := &entities.CheckSession{
		ID:        o.idGen.Generate(),
		Name:      name,
		Items:     items,
		CreatedAt: now,
		Status:    entities.StatusActive,
	}
	o.history = append(o.history, session)
	o.currentID = session.ID
	o.save(ctx)

	slog.Info("Session created",
		"session_id", session.ID,
		"players", len(players),
		"events", len(events),
		"items", len(items),
	)

	return &CreateSessionOutput{
		Session:            session.Clone(),
		CompletedSessionID: completedID,
	}, nil
}

// GetActive returns the current session. No current session is not an error.
func (o *orchestrator) GetActive(_ context.Context) (*GetActiveOutput, error) {
	current := o.current()
	if current == nil {
		return &GetActiveOutput{}, nil
	}

	return &GetActiveOutput{
		Session: current.Clone(),
		Stats:   current.Stats(),
	}, nil
}

// GetSession returns one session from history
func (o *orchestrator) GetSession(_ context.Context, input *GetSessionInput) (*GetSessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	_, s := o.find(input.SessionID)
	if s == nil {
		return nil, notFound(input.SessionID)
	}

	return &GetSessionOutput{
		Session: s.Clone(),
		Summary: s.Summary(),
		Stats:   s.Stats(),
	}, nil
}

// ListSessions returns summaries of the matching sessions, newest first
func (o *orchestrator) ListSessions(_ context.Context, input *ListSessionsInput) (*ListSessionsOutput, error) {
	if input == nil {
		input = &ListSessionsInput{}
	}

	status := strings.ToLower(strings.TrimSpace(input.Status))
	if status == "" {
		status = StatusAll
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("status", status, statusFilters(), vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(input.Search))
	matched := make([]*entities.CheckSession, 0, len(o.history))
	// walk backwards so creation-time ties list the later insert first
	for i := len(o.history) - 1; i >= 0; i-- {
		s := o.history[i]
		if status != StatusAll && string(s.Status) != status {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(s.Name), search) {
			continue
		}
		matched = append(matched, s)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	summaries := make([]entities.SessionSummary, len(matched))
	for i, s := range matched {
		summaries[i] = s.Summary()
	}

	return &ListSessionsOutput{
		Sessions:         summaries,
		CurrentSessionID: o.currentID,
	}, nil
}

// GetHistory returns every session in storage order
func (o *orchestrator) GetHistory(_ context.Context) (*GetHistoryOutput, error) {
	sessions := make([]*entities.CheckSession, len(o.history))
	for i, s := range o.history {
		sessions[i] = s.Clone()
	}
	return &GetHistoryOutput{Sessions: sessions}, nil
}

// CloseSession completes the current session and clears the pointer
func (o *orchestrator) CloseSession(ctx context.Context) (*CloseSessionOutput, error) {
	current := o.current()
	if current == nil {
		return nil, errNoActiveSession()
	}

	o.complete(current)
	o.currentID = ""
	o.save(ctx)

	stats := current.Stats()
	slog.Info("Session closed",
		"session_id", current.ID,
		"success", stats.Success,
		"failure", stats.Failure,
		"pending", stats.Pending,
	)

	return &CloseSessionOutput{Session: current.Clone()}, nil
}

// LoadSession makes a session from history current. A still-active outgoing
// session is completed first. The loaded session becomes active with its
// items, stats and completedAt intact.
func (o *orchestrator) LoadSession(ctx context.Context, input *LoadSessionInput) (*LoadSessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	_, target := o.find(input.SessionID)
	if target == nil {
		return nil, notFound(input.SessionID)
	}

	var completedID string
	if o.currentID != target.ID {
		completedID = o.completeCurrent()
	}

	target.Status = entities.StatusActive
	o.currentID = target.ID
	o.save(ctx)

	slog.Info("Session loaded",
		"session_id", target.ID,
		"completed_session_id", completedID,
	)

	return &LoadSessionOutput{
		Session:            target.Clone(),
		CompletedSessionID: completedID,
	}, nil
}

// ArchiveSession moves a session to archived. Any status may be archived.
func (o *orchestrator) ArchiveSession(ctx context.Context, input *ArchiveSessionInput) (*ArchiveSessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	_, s := o.find(input.SessionID)
	if s == nil {
		return nil, notFound(input.SessionID)
	}

	s.Status = entities.StatusArchived
	if o.currentID == s.ID {
		o.currentID = ""
	}
	o.save(ctx)

	slog.Info("Session archived", "session_id", s.ID)

	return &ArchiveSessionOutput{Session: s.Clone()}, nil
}

// DeleteSession removes a session from history
func (o *orchestrator) DeleteSession(ctx context.Context, input *DeleteSessionInput) error {
	if input == nil || input.SessionID == "" {
		return errors.InvalidArgument("session ID is required")
	}

	idx, _ := o.find(input.SessionID)
	if idx < 0 {
		return notFound(input.SessionID)
	}

	o.history = append(o.history[:idx], o.history[idx+1:]...)
	if o.currentID == input.SessionID {
		o.currentID = ""
	}
	o.save(ctx)

	slog.Info("Session deleted", "session_id", input.SessionID)
	return nil
}

// ReplaceHistory swaps in a whole new history and re-picks the current
// session the same way startup does, completing any other active session
func (o *orchestrator) ReplaceHistory(ctx context.Context, input *ReplaceHistoryInput) error {
	if input == nil {
		return errors.InvalidArgument("input is required")
	}

	history := make([]*entities.CheckSession, 0, len(input.Sessions))
	for _, s := range input.Sessions {
		if s == nil {
			continue
		}
		c := s.Clone()
		c.Normalize()
		history = append(history, c)
	}
	o.history = history
	settled := o.settleActive()
	o.save(ctx)

	slog.Info("Session history replaced",
		"sessions", len(o.history),
		"current_session_id", o.currentID,
		"completed", settled,
	)
	return nil
}

func (o *orchestrator) find(id string) (int, *entities.CheckSession) {
	for i, s := range o.history {
		if s.ID == id {
			return i, s
		}
	}
	return -1, nil
}

func (o *orchestrator) current() *entities.CheckSession {
	if o.currentID == "" {
		return nil
	}
	_, s := o.find(o.currentID)
	return s
}

// completeCurrent completes the current session if it is still active and
// returns its id
func (o *orchestrator) completeCurrent() string {
	current := o.current()
	if current == nil || current.Status != entities.StatusActive {
		return ""
	}
	o.complete(current)
	return current.ID
}

func (o *orchestrator) complete(s *entities.CheckSession) {
	s.Status = entities.StatusCompleted
	if s.CompletedAt == nil {
		now := o.clock.Now()
		s.CompletedAt = &now
	}
}

// settleActive makes the newest active session current and completes every
// other active one, so at most one session is active. It returns how many
// were completed.
func (o *orchestrator) settleActive() int {
	o.currentID = o.newestActiveID()

	settled := 0
	for _, s := range o.history {
		if s.Status == entities.StatusActive && s.ID != o.currentID {
			o.complete(s)
			settled++
		}
	}
	if settled > 0 {
		slog.Info("Completed stale active sessions", "count", settled)
	}
	return settled
}

func (o *orchestrator) newestActiveID() string {
	var newest *entities.CheckSession
	for _, s := range o.history {
		if s.Status != entities.StatusActive {
			continue
		}
		if newest == nil || !s.CreatedAt.Before(newest.CreatedAt) {
			newest = s
		}
	}
	if newest == nil {
		return ""
	}
	return newest.ID
}

// save rewrites the history record. A failure is logged and handed to the
// warning hook; in-memory history stays authoritative.
func (o *orchestrator) save(ctx context.Context) {
	err := o.repo.SaveSessions(ctx, o.history)
	if err == nil {
		return
	}
	slog.Warn("Session history not persisted, continuing in memory", "error", err)
	if o.warn != nil {
		o.warn(err)
	}
}

func notFound(sessionID string) error {
	return errors.NotFoundf("session %s not found", sessionID).WithMeta("session_id", sessionID)
}

func errNoActiveSession() error {
	return errors.FailedPrecondition("no active session")
}

func statusFilters() []string {
	filters := []string{StatusAll}
	for _, s := range entities.Statuses {
		filters = append(filters, string(s))
	}
	return filters
}

func uniquePlayers(players []*entities.Player) []*entities.Player {
	seen := make(map[string]bool, len(players))
	out := make([]*entities.Player, 0, len(players))
	for _, p := range players {
		if p == nil || seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	return out
}

func uniqueEvents(events []*entities.SkillCheckEvent) []*entities.SkillCheckEvent {
	seen := make(map[string]bool, len(events))
	out := make([]*entities.SkillCheckEvent, 0, len(events))
	for _, e := range events {
		if e == nil || seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		out = append(out, e)
	}
	return out
}
