// Package entities provides core data structures for rpg-skillcheck.
package entities

import (
	"github.com/KirkDiggler/rpg-toolkit/core"
)

const (
	// EntityTypePlayer identifies players to rpg-toolkit
	EntityTypePlayer = "player"
	// EntityTypeEvent identifies skill check events to rpg-toolkit
	EntityTypeEvent = "skill_check_event"

	// DefaultDifficulty is the DC used when an event is created without one
	DefaultDifficulty = 10
)

var (
	_ core.Entity = (*Player)(nil)
	_ core.Entity = (*SkillCheckEvent)(nil)
)

// Player is a roster member with a modifier per skill
type Player struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Skills map[string]int `json:"skills"`
}

// GetID returns the player's ID
func (p *Player) GetID() string {
	return p.ID
}

// GetType returns the entity type for rpg-toolkit
func (p *Player) GetType() string {
	return EntityTypePlayer
}

// Modifier returns the player's modifier for skill, 0 when the skill is
// absent. A legacy or differently cased skill name is looked up under its
// canonical name.
func (p *Player) Modifier(skill string) int {
	if v, ok := p.Skills[skill]; ok {
		return v
	}
	canonical, _ := NormalizeSkill(skill)
	return p.Skills[canonical]
}

// Clone returns a deep copy of the player
func (p *Player) Clone() *Player {
	if p == nil {
		return nil
	}
	skills := make(map[string]int, len(p.Skills))
	for k, v := range p.Skills {
		skills[k] = v
	}
	return &Player{
		ID:     p.ID,
		Name:   p.Name,
		Skills: skills,
	}
}

// SkillCheckEvent is a named check against a skill at a fixed DC
type SkillCheckEvent struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Skill       string `json:"skill"`
	Difficulty  int    `json:"difficulty"`
	Description string `json:"description,omitempty"`
}

// GetID returns the event's ID
func (e *SkillCheckEvent) GetID() string {
	return e.ID
}

// GetType returns the entity type for rpg-toolkit
func (e *SkillCheckEvent) GetType() string {
	return EntityTypeEvent
}

// Clone returns a copy of the event
func (e *SkillCheckEvent) Clone() *SkillCheckEvent {
	if e == nil {
		return nil
	}
	c := *e
	return &c
}
