// Package roster manages the players and skill check events a facilitator
// builds sessions from.
package roster

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/KirkDiggler/rpg-skillcheck/internal/entities"
	"github.com/KirkDiggler/rpg-skillcheck/internal/errors"
	"github.com/KirkDiggler/rpg-skillcheck/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-skillcheck/internal/repositories/dataset"
)

// Service defines the interface for roster operations
type Service interface {
	ListPlayers(ctx context.Context) (*ListPlayersOutput, error)
	GetPlayer(ctx context.Context, input *GetPlayerInput) (*GetPlayerOutput, error)
	AddPlayer(ctx context.Context, input *AddPlayerInput) (*AddPlayerOutput, error)
	UpdatePlayer(ctx context.Context, input *UpdatePlayerInput) (*UpdatePlayerOutput, error)
	SetPlayerSkill(ctx context.Context, input *SetPlayerSkillInput) (*SetPlayerSkillOutput, error)
	RemovePlayer(ctx context.Context, input *RemovePlayerInput) error
	ReplacePlayers(ctx context.Context, input *ReplacePlayersInput) error

	ListEvents(ctx context.Context) (*ListEventsOutput, error)
	GetEvent(ctx context.Context, input *GetEventInput) (*GetEventOutput, error)
	AddEvent(ctx context.Context, input *AddEventInput) (*AddEventOutput, error)
	UpdateEvent(ctx context.Context, input *UpdateEventInput) (*UpdateEventOutput, error)
	RemoveEvent(ctx context.Context, input *RemoveEventInput) error
	ReplaceEvents(ctx context.Context, input *ReplaceEventsInput) error
}

// Config holds the dependencies for the roster orchestrator
type Config struct {
	Repository  dataset.Repository
	IDGenerator idgen.Generator
	// OnStorageWarning is called after a save fails; optional
	OnStorageWarning dataset.WarnFunc
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	repo  dataset.Repository
	idGen idgen.Generator
	warn  dataset.WarnFunc

	players []*entities.Player
	events  []*entities.SkillCheckEvent
}

// NewOrchestrator loads the roster from the repository and returns a service
// that owns it
func NewOrchestrator(ctx context.Context, cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		repo:    cfg.Repository,
		idGen:   cfg.IDGenerator,
		warn:    cfg.OnStorageWarning,
		players: normalizePlayers(cfg.Repository.LoadPlayers(ctx)),
		events:  normalizeEvents(cfg.Repository.LoadEvents(ctx)),
	}, nil
}

// ListPlayers returns every player in insertion order
func (o *orchestrator) ListPlayers(_ context.Context) (*ListPlayersOutput, error) {
	players := make([]*entities.Player, len(o.players))
	for i, p := range o.players {
		players[i] = p.Clone()
	}
	return &ListPlayersOutput{Players: players}, nil
}

// GetPlayer returns one player
func (o *orchestrator) GetPlayer(_ context.Context, input *GetPlayerInput) (*GetPlayerOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	_, player := o.findPlayer(input.PlayerID)
	if player == nil {
		return nil, errors.NotFoundf("player %s not found", input.PlayerID).WithMeta("player_id", input.PlayerID)
	}

	return &GetPlayerOutput{Player: player.Clone()}, nil
}

// AddPlayer creates a player with a fresh id
func (o *orchestrator) AddPlayer(ctx context.Context, input *AddPlayerInput) (*AddPlayerOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", input.Name, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	player := &entities.Player{
		ID:     o.idGen.Generate(),
		Name:   strings.TrimSpace(input.Name),
		Skills: normalizeSkills(input.Skills),
	}
	o.players = append(o.players, player)
	o.savePlayers(ctx)

	slog.Info("Player added",
		"player_id", player.ID,
		"name", player.Name,
		"skills", len(player.Skills),
	)

	return &AddPlayerOutput{Player: player.Clone()}, nil
}

// UpdatePlayer replaces a player's name and, when given, skills
func (o *orchestrator) UpdatePlayer(ctx context.Context, input *UpdatePlayerInput) (*UpdatePlayerOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", input.Name, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	_, player := o.findPlayer(input.PlayerID)
	if player == nil {
		return nil, errors.NotFoundf("player %s not found", input.PlayerID)
	}

	player.Name = strings.TrimSpace(input.Name)
	if input.Skills != nil {
		player.Skills = normalizeSkills(input.Skills)
	}
	o.savePlayers(ctx)

	return &UpdatePlayerOutput{Player: player.Clone()}, nil
}

// SetPlayerSkill sets a single skill modifier on a player
func (o *orchestrator) SetPlayerSkill(ctx context.Context, input *SetPlayerSkillInput) (*SetPlayerSkillOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("skill", input.Skill, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	_, player := o.findPlayer(input.PlayerID)
	if player == nil {
		return nil, errors.NotFoundf("player %s not found", input.PlayerID)
	}

	skill, _ := entities.NormalizeSkill(input.Skill)
	player.Skills = normalizeSkills(player.Skills)
	player.Skills[skill] = input.Modifier
	o.savePlayers(ctx)

	return &SetPlayerSkillOutput{Player: player.Clone()}, nil
}

// RemovePlayer deletes a player. Sessions keep their snapshot of the player.
func (o *orchestrator) RemovePlayer(ctx context.Context, input *RemovePlayerInput) error {
	if input == nil || input.PlayerID == "" {
		return errors.InvalidArgument("player ID is required")
	}

	idx, _ := o.findPlayer(input.PlayerID)
	if idx < 0 {
		return errors.NotFoundf("player %s not found", input.PlayerID)
	}

	o.players = append(o.players[:idx], o.players[idx+1:]...)
	o.savePlayers(ctx)

	slog.Info("Player removed", "player_id", input.PlayerID)
	return nil
}

// ReplacePlayers swaps in a whole new roster
func (o *orchestrator) ReplacePlayers(ctx context.Context, input *ReplacePlayersInput) error {
	if input == nil {
		return errors.InvalidArgument("input is required")
	}

	players := make([]*entities.Player, 0, len(input.Players))
	for _, p := range input.Players {
		if p != nil {
			players = append(players, p.Clone())
		}
	}
	o.players = normalizePlayers(players)
	o.savePlayers(ctx)

	slog.Info("Players replaced", "count", len(o.players))
	return nil
}

// ListEvents returns every event in insertion order
func (o *orchestrator) ListEvents(_ context.Context) (*ListEventsOutput, error) {
	events := make([]*entities.SkillCheckEvent, len(o.events))
	for i, e := range o.events {
		events[i] = e.Clone()
	}
	return &ListEventsOutput{Events: events}, nil
}

// GetEvent returns one event
func (o *orchestrator) GetEvent(_ context.Context, input *GetEventInput) (*GetEventOutput, error) {
	if input == nil || input.EventID == "" {
		return nil, errors.InvalidArgument("event ID is required")
	}

	_, event := o.findEvent(input.EventID)
	if event == nil {
		return nil, errors.NotFoundf("event %s not found", input.EventID).WithMeta("event_id", input.EventID)
	}

	return &GetEventOutput{Event: event.Clone()}, nil
}

// AddEvent creates an event with a fresh id
func (o *orchestrator) AddEvent(ctx context.Context, input *AddEventInput) (*AddEventOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateEvent(input.Name, input.Skill); err != nil {
		return nil, err
	}

	event := buildEvent(o.idGen.Generate(), input.Name, input.Skill, input.Difficulty, input.Description)
	o.events = append(o.events, event)
	o.saveEvents(ctx)

	slog.Info("Event added",
		"event_id", event.ID,
		"skill", event.Skill,
		"difficulty", event.Difficulty,
	)

	return &AddEventOutput{Event: event.Clone()}, nil
}

// UpdateEvent replaces an event's fields. As with AddEvent, a zero
// difficulty is stored as entities.DefaultDifficulty.
func (o *orchestrator) UpdateEvent(ctx context.Context, input *UpdateEventInput) (*UpdateEventOutput, error) {
	if input == nil || input.EventID == "" {
		return nil, errors.InvalidArgument("event ID is required")
	}
	if err := validateEvent(input.Name, input.Skill); err != nil {
		return nil, err
	}

	idx, event := o.findEvent(input.EventID)
	if event == nil {
		return nil, errors.NotFoundf("event %s not found", input.EventID)
	}

	o.events[idx] = buildEvent(event.ID, input.Name, input.Skill, input.Difficulty, input.Description)
	o.saveEvents(ctx)

	return &UpdateEventOutput{Event: o.events[idx].Clone()}, nil
}

// RemoveEvent deletes an event. Sessions keep their snapshot of the event.
func (o *orchestrator) RemoveEvent(ctx context.Context, input *RemoveEventInput) error {
	if input == nil || input.EventID == "" {
		return errors.InvalidArgument("event ID is required")
	}

	idx, _ := o.findEvent(input.EventID)
	if idx < 0 {
		return errors.NotFoundf("event %s not found", input.EventID)
	}

	o.events = append(o.events[:idx], o.events[idx+1:]...)
	o.saveEvents(ctx)

	slog.Info("Event removed", "event_id", input.EventID)
	return nil
}

// ReplaceEvents swaps in a whole new event list
func (o *orchestrator) ReplaceEvents(ctx context.Context, input *ReplaceEventsInput) error {
	if input == nil {
		return errors.InvalidArgument("input is required")
	}

	events := make([]*entities.SkillCheckEvent, 0, len(input.Events))
	for _, e := range input.Events {
		if e != nil {
			events = append(events, e.Clone())
		}
	}
	o.events = normalizeEvents(events)
	o.saveEvents(ctx)

	slog.Info("Events replaced", "count", len(o.events))
	return nil
}

func (o *orchestrator) findPlayer(id string) (int, *entities.Player) {
	for i, p := range o.players {
		if p.ID == id {
			return i, p
		}
	}
	return -1, nil
}

func (o *orchestrator) findEvent(id string) (int, *entities.SkillCheckEvent) {
	for i, e := range o.events {
		if e.ID == id {
			return i, e
		}
	}
	return -1, nil
}

func (o *orchestrator) savePlayers(ctx context.Context) {
	o.absorb(o.repo.SavePlayers(ctx, o.players))
}

func (o *orchestrator) saveEvents(ctx context.Context) {
	o.absorb(o.repo.SaveEvents(ctx, o.events))
}

// absorb logs a failed save and hands it to the warning hook. The in-memory
// roster stays authoritative.
func (o *orchestrator) absorb(err error) {
	if err == nil {
		return
	}
	slog.Warn("Roster not persisted, continuing in memory", "error", err)
	if o.warn != nil {
		o.warn(err)
	}
}

func validateEvent(name, skill string) error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", name, vb)
	errors.ValidateRequired("skill", skill, vb)
	return vb.Build()
}

// buildEvent treats a difficulty of 0 as unset and stores DefaultDifficulty,
// so a DC of 0 cannot be saved through add or update.
func buildEvent(id, name, skill string, difficulty int, description string) *entities.SkillCheckEvent {
	normalized, _ := entities.NormalizeSkill(skill)
	if difficulty == 0 {
		difficulty = entities.DefaultDifficulty
	}
	return &entities.SkillCheckEvent{
		ID:          id,
		Name:        strings.TrimSpace(name),
		Skill:       normalized,
		Difficulty:  difficulty,
		Description: strings.TrimSpace(description),
	}
}

// normalizeSkills maps every key onto its canonical skill name. When two keys
// name the same skill the canonical spelling wins, then the first key in
// sorted order.
func normalizeSkills(in map[string]int) map[string]int {
	names := make([]string, 0, len(in))
	for name := range in {
		if strings.TrimSpace(name) != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	out := make(map[string]int, len(names))
	canonical := make(map[string]bool, len(names))
	for _, name := range names {
		skill, _ := entities.NormalizeSkill(name)
		exact := name == skill
		if _, taken := out[skill]; taken && (canonical[skill] || !exact) {
			continue
		}
		out[skill] = in[name]
		canonical[skill] = exact
	}
	return out
}

func normalizePlayers(players []*entities.Player) []*entities.Player {
	for _, p := range players {
		p.Skills = normalizeSkills(p.Skills)
	}
	return players
}

func normalizeEvents(events []*entities.SkillCheckEvent) []*entities.SkillCheckEvent {
	for _, e := range events {
		e.Skill, _ = entities.NormalizeSkill(e.Skill)
	}
	return events
}
