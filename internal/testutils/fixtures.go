package testutils

import (
	"time"

	"github.com/KirkDiggler/rpg-skillcheck/internal/entities"
)

// FixedTime is the instant test clocks start at
var FixedTime = time.Date(2026, time.March, 14, 19, 30, 0, 0, time.UTC)

// CreateTestPlayers returns two players with overlapping skills
func CreateTestPlayers() []*entities.Player {
	return []*entities.Player{
		{
			ID:   "player_aria",
			Name: "Aria",
			Skills: map[string]int{
				entities.SkillStealth:    5,
				entities.SkillPerception: 3,
			},
		},
		{
			ID:   "player_borin",
			Name: "Borin",
			Skills: map[string]int{
				entities.SkillAthletics:  4,
				entities.SkillPerception: -1,
			},
		},
	}
}

// CreateTestEvents returns three events; the third uses a skill neither test
// player has.
func CreateTestEvents() []*entities.SkillCheckEvent {
	return []*entities.SkillCheckEvent{
		{ID: "event_ambush", Name: "Spot the ambush", Skill: entities.SkillPerception, Difficulty: 15},
		{ID: "event_sneak", Name: "Sneak past the guards", Skill: entities.SkillStealth, Difficulty: 12},
		{ID: "event_lore", Name: "Recall the old king", Skill: entities.SkillHistory, Difficulty: 10, Description: "Library scene"},
	}
}
