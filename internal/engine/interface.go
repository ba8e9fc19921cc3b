// Package engine resolves skill checks: die rolls with advantage and
// disadvantage, custom die values, bonuses, and the success formula.
package engine

import (
	"github.com/KirkDiggler/rpg-skillcheck/internal/entities"
)

// Die is the die every skill check is rolled on
const Die = 20

// Engine mutates check items in place. Every operation touches only the items
// it is given and re-derives total and result from the current fields.
type Engine interface {
	// Raw rolls
	RollDie() (int, error)
	RollWithAdvantage() (int, error)
	RollWithDisadvantage() (int, error)

	// Single item operations
	Resolve(item *entities.CheckItem, customBonus *int) error
	ApplyCustomValue(item *entities.CheckItem, value int, customBonus *int) error
	ClearCustomValue(item *entities.CheckItem)
	SetCustomBonus(item *entities.CheckItem, customBonus *int)
	ToggleAdvantage(item *entities.CheckItem)
	ToggleDisadvantage(item *entities.CheckItem)
	ResetItem(item *entities.CheckItem)

	// Batch operations
	ResolveAllPending(session *entities.CheckSession) (int, error)
	ResetAll(session *entities.CheckSession)
}
