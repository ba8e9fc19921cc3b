package entities_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-skillcheck/internal/entities"
)

func intPtr(v int) *int { return &v }

func TestPlayer_Modifier(t *testing.T) {
	p := &entities.Player{ID: "p1", Name: "Aria", Skills: map[string]int{entities.SkillStealth: 5}}

	assert.Equal(t, 5, p.Modifier(entities.SkillStealth))
	assert.Equal(t, 0, p.Modifier(entities.SkillArcana))
	assert.Equal(t, 5, p.Modifier("隐匿"), "legacy name resolves to the canonical key")
	assert.Equal(t, 5, p.Modifier("stealth"))
	assert.Equal(t, entities.EntityTypePlayer, p.GetType())
	assert.Equal(t, "p1", p.GetID())
}

func TestPlayer_CloneIsDeep(t *testing.T) {
	p := &entities.Player{ID: "p1", Name: "Aria", Skills: map[string]int{entities.SkillStealth: 5}}
	c := p.Clone()
	c.Skills[entities.SkillStealth] = 1

	assert.Equal(t, 5, p.Skills[entities.SkillStealth])
	assert.Nil(t, (*entities.Player)(nil).Clone())
}

func TestCheckSession_CloneIsDeep(t *testing.T) {
	done := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s := &entities.CheckSession{
		ID:          "s1",
		Items:       []*entities.CheckItem{{ID: "i1", DiceRoll: intPtr(12), Result: entities.ResultSuccess}},
		Status:      entities.StatusCompleted,
		CompletedAt: &done,
	}

	c := s.Clone()
	*c.Items[0].DiceRoll = 3
	*c.CompletedAt = done.Add(time.Hour)

	assert.Equal(t, 12, *s.Items[0].DiceRoll)
	assert.Equal(t, done, *s.CompletedAt)
	assert.Equal(t, s.Items[0].ID, c.Item("i1").ID)
	assert.Nil(t, c.Item("missing"))
}

func TestCheckItem_IsPending(t *testing.T) {
	assert.True(t, (&entities.CheckItem{Result: entities.ResultPending}).IsPending())
	assert.True(t, (&entities.CheckItem{Result: entities.ResultSuccess}).IsPending(), "no value counts as pending")
	assert.False(t, (&entities.CheckItem{Result: entities.ResultFailure, CustomValue: intPtr(4)}).IsPending())
}

func TestCheckSession_Normalize(t *testing.T) {
	done := time.Now().UTC()
	legacyDone := &entities.CheckSession{CompletedAt: &done, Items: []*entities.CheckItem{{ID: "i1"}, nil}}
	legacyDone.Normalize()
	assert.Equal(t, entities.StatusCompleted, legacyDone.Status)
	assert.Len(t, legacyDone.Items, 1)
	assert.Equal(t, entities.ResultPending, legacyDone.Items[0].Result)

	legacyActive := &entities.CheckSession{}
	legacyActive.Normalize()
	assert.Equal(t, entities.StatusActive, legacyActive.Status)
	assert.NotNil(t, legacyActive.Items)
}

func TestCheckSession_SummaryAndStats(t *testing.T) {
	s := &entities.CheckSession{
		ID:   "s1",
		Name: "Night watch",
		Items: []*entities.CheckItem{
			{PlayerID: "p1", EventID: "e1", Result: entities.ResultSuccess},
			{PlayerID: "p1", EventID: "e2", Result: entities.ResultFailure},
			{PlayerID: "p2", EventID: "e1", Result: entities.ResultSuccess},
			{PlayerID: "p2", EventID: "e2", Result: entities.ResultPending},
		},
	}

	summary := s.Summary()
	assert.Equal(t, 2, summary.PlayerCount)
	assert.Equal(t, 2, summary.EventCount)
	assert.Equal(t, 4, summary.TotalChecks)
	assert.Equal(t, 3, summary.CompletedChecks)
	assert.Equal(t, 2, summary.SuccessCount)
	assert.InDelta(t, 0.5, summary.SuccessRate(), 0.0001)

	stats := s.Stats()
	assert.Equal(t, entities.ResultStats{Total: 4, Success: 2, Failure: 1, Pending: 1}, stats)

	assert.Zero(t, (&entities.CheckSession{}).Summary().SuccessRate())
}

func TestNormalizeSkill(t *testing.T) {
	testCases := []struct {
		in    string
		want  string
		known bool
	}{
		{"stealth", entities.SkillStealth, true},
		{"  Sleight of hand ", entities.SkillSleightOfHand, true},
		{"察觉", entities.SkillPerception, true},
		{"Cooking", "Cooking", false},
	}

	for _, tc := range testCases {
		got, ok := entities.NormalizeSkill(tc.in)
		require.Equal(t, tc.known, ok, tc.in)
		assert.Equal(t, tc.want, got)
	}
	assert.Len(t, entities.Skills, 18)
}

func TestStatus_Valid(t *testing.T) {
	assert.True(t, entities.StatusArchived.Valid())
	assert.False(t, entities.Status("deleted").Valid())
}
