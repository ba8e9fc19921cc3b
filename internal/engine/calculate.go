package engine

import (
	"github.com/KirkDiggler/rpg-skillcheck/internal/entities"
)

// TakeHigher is the advantage rule applied to two dice
func TakeHigher(a, b int) int {
	if a >= b {
		return a
	}
	return b
}

// TakeLower is the disadvantage rule applied to two dice
func TakeLower(a, b int) int {
	if a <= b {
		return a
	}
	return b
}

// Total computes base + modifier + bonus. There is no clamping.
func Total(base, modifier, bonus int) int {
	return base + modifier + bonus
}

// Outcome applies the DC: meeting it is a success
func Outcome(total, difficulty int) entities.Result {
	if total >= difficulty {
		return entities.ResultSuccess
	}
	return entities.ResultFailure
}

// Recalculate re-derives total and result from the item's current fields.
// An item without a die roll or custom value is pending with no total.
func Recalculate(item *entities.CheckItem) {
	if !item.HasValue() {
		item.Total = nil
		item.Result = entities.ResultPending
		return
	}

	base := 0
	switch {
	case item.DiceRoll != nil:
		base = *item.DiceRoll
	case item.CustomValue != nil:
		base = *item.CustomValue
	}

	bonus := 0
	if item.CustomBonus != nil {
		bonus = *item.CustomBonus
	}

	total := Total(base, item.Modifier, bonus)
	item.Total = &total
	item.Result = Outcome(total, item.Difficulty)
}
