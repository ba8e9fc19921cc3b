package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/rpg-skillcheck/internal/entities"
)

func intPtr(v int) *int { return &v }

func TestFormatDie(t *testing.T) {
	testCases := []struct {
		name string
		item *entities.CheckItem
		want string
	}{
		{name: "pending", item: &entities.CheckItem{}, want: "-"},
		{name: "pending with advantage", item: &entities.CheckItem{Advantage: true}, want: "- adv"},
		{name: "rolled", item: &entities.CheckItem{DiceRoll: intPtr(12)}, want: "12"},
		{name: "rolled with disadvantage", item: &entities.CheckItem{DiceRoll: intPtr(3), Disadvantage: true}, want: "3 dis"},
		{name: "custom", item: &entities.CheckItem{CustomValue: intPtr(20)}, want: "20 (set)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, formatDie(tc.item))
		})
	}
}

func TestFormatSkillsIsSorted(t *testing.T) {
	got := formatSkills(map[string]int{
		entities.SkillStealth:    5,
		entities.SkillAthletics:  -1,
		entities.SkillPerception: 0,
	})
	assert.Equal(t, "Athletics -1, Perception +0, Stealth +5", got)
}

func TestFormatOptional(t *testing.T) {
	assert.Equal(t, "-", formatOptional(nil, true))
	assert.Equal(t, "+2", formatOptional(intPtr(2), true))
	assert.Equal(t, "-2", formatOptional(intPtr(-2), true))
	assert.Equal(t, "17", formatOptional(intPtr(17), false))
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "0f8fad5b", shortID("0f8fad5b-d9cb-469f-a165-70867728950e"))
	assert.Equal(t, "id_1", shortID("id_1"))
}
