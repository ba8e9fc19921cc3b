package roster

import (
	"github.com/KirkDiggler/rpg-skillcheck/internal/entities"
)

// ListPlayersOutput defines the response for listing players
type ListPlayersOutput struct {
	Players []*entities.Player
}

// GetPlayerInput defines the request for getting a player
type GetPlayerInput struct {
	PlayerID string
}

// GetPlayerOutput defines the response for getting a player
type GetPlayerOutput struct {
	Player *entities.Player
}

// AddPlayerInput defines the request for adding a player
type AddPlayerInput struct {
	Name   string
	Skills map[string]int
}

// AddPlayerOutput defines the response for adding a player
type AddPlayerOutput struct {
	Player *entities.Player
}

// UpdatePlayerInput replaces a player's name and skills. A nil Skills map
// keeps the current skills.
type UpdatePlayerInput struct {
	PlayerID string
	Name     string
	Skills   map[string]int
}

// UpdatePlayerOutput defines the response for updating a player
type UpdatePlayerOutput struct {
	Player *entities.Player
}

// SetPlayerSkillInput defines the request for setting one skill modifier
type SetPlayerSkillInput struct {
	PlayerID string
	Skill    string
	Modifier int
}

// SetPlayerSkillOutput defines the response for setting one skill modifier
type SetPlayerSkillOutput struct {
	Player *entities.Player
}

// RemovePlayerInput defines the request for removing a player
type RemovePlayerInput struct {
	PlayerID string
}

// ReplacePlayersInput defines the request for replacing the whole roster
type ReplacePlayersInput struct {
	Players []*entities.Player
}

// ListEventsOutput defines the response for listing events
type ListEventsOutput struct {
	Events []*entities.SkillCheckEvent
}

// GetEventInput defines the request for getting an event
type GetEventInput struct {
	EventID string
}

// GetEventOutput defines the response for getting an event
type GetEventOutput struct {
	Event *entities.SkillCheckEvent
}

// AddEventInput defines the request for adding an event. A zero Difficulty
// becomes entities.DefaultDifficulty.
type AddEventInput struct {
	Name        string
	Skill       string
	Difficulty  int
	Description string
}

// AddEventOutput defines the response for adding an event
type AddEventOutput struct {
	Event *entities.SkillCheckEvent
}

// UpdateEventInput replaces an event's fields
type UpdateEventInput struct {
	EventID     string
	Name        string
	Skill       string
	Difficulty  int
	Description string
}

// UpdateEventOutput defines the response for updating an event
type UpdateEventOutput struct {
	Event *entities.SkillCheckEvent
}

// RemoveEventInput defines the request for removing an event
type RemoveEventInput struct {
	EventID string
}

// ReplaceEventsInput defines the request for replacing every event
type ReplaceEventsInput struct {
	Events []*entities.SkillCheckEvent
}
