package engine

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-skillcheck/internal/entities"
	"github.com/KirkDiggler/rpg-skillcheck/internal/errors"
)

const (
	// MinCustomValue and MaxCustomValue bound a manually entered die face
	MinCustomValue = 1
	MaxCustomValue = Die
)

// Config holds the dependencies for the engine
type Config struct {
	Roller dice.Roller
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Roller == nil {
		vb.RequiredField("Roller")
	}

	return vb.Build()
}

type engine struct {
	roller dice.Roller
}

// New creates an engine that draws from the configured roller
func New(cfg *Config) (Engine, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &engine{roller: cfg.Roller}, nil
}

// RollDie rolls a single d20
func (e *engine) RollDie() (int, error) {
	v, err := e.roller.Roll(Die)
	if err != nil {
		return 0, errors.Wrap(err, "failed to roll d20")
	}
	if v < 1 || v > Die {
		return 0, errors.Internalf("roller returned %d for a d%d", v, Die)
	}
	return v, nil
}

// RollWithAdvantage draws two fresh dice and keeps the higher
func (e *engine) RollWithAdvantage() (int, error) {
	a, b, err := e.rollPair()
	if err != nil {
		return 0, err
	}
	return TakeHigher(a, b), nil
}

// RollWithDisadvantage draws two fresh dice and keeps the lower
func (e *engine) RollWithDisadvantage() (int, error) {
	a, b, err := e.rollPair()
	if err != nil {
		return 0, err
	}
	return TakeLower(a, b), nil
}

func (e *engine) rollPair() (int, int, error) {
	a, err := e.RollDie()
	if err != nil {
		return 0, 0, err
	}
	b, err := e.RollDie()
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// Resolve rolls a fresh die for the item. Advantage takes precedence if both
// flags are somehow set. A nil customBonus keeps the item's existing bonus.
func (e *engine) Resolve(item *entities.CheckItem, customBonus *int) error {
	if item == nil {
		return errors.InvalidArgument("item is required")
	}

	var (
		roll int
		err  error
	)
	switch {
	case item.Advantage:
		roll, err = e.RollWithAdvantage()
	case item.Disadvantage:
		roll, err = e.RollWithDisadvantage()
	default:
		roll, err = e.RollDie()
	}
	if err != nil {
		return errors.Wrapf(err, "failed to resolve item %s", item.ID)
	}

	item.CustomValue = nil
	item.DiceRoll = &roll
	if customBonus != nil {
		bonus := *customBonus
		item.CustomBonus = &bonus
	}
	Recalculate(item)

	return nil
}

// ApplyCustomValue records a die face entered by hand instead of rolled
func (e *engine) ApplyCustomValue(item *entities.CheckItem, value int, customBonus *int) error {
	if item == nil {
		return errors.InvalidArgument("item is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRange("custom_value", value, MinCustomValue, MaxCustomValue, vb)
	if err := vb.Build(); err != nil {
		return err
	}

	v := value
	item.CustomValue = &v
	item.DiceRoll = nil
	if customBonus != nil {
		bonus := *customBonus
		item.CustomBonus = &bonus
	}
	Recalculate(item)

	return nil
}

// ClearCustomValue empties the item's value entry, returning it to pending
func (e *engine) ClearCustomValue(item *entities.CheckItem) {
	item.CustomValue = nil
	item.DiceRoll = nil
	Recalculate(item)
}

// SetCustomBonus replaces the bonus. nil clears it.
func (e *engine) SetCustomBonus(item *entities.CheckItem, customBonus *int) {
	if customBonus == nil {
		item.CustomBonus = nil
	} else {
		bonus := *customBonus
		item.CustomBonus = &bonus
	}
	Recalculate(item)
}

// ToggleAdvantage flips advantage. Turning it on turns disadvantage off.
func (e *engine) ToggleAdvantage(item *entities.CheckItem) {
	item.Advantage = !item.Advantage
	if item.Advantage {
		item.Disadvantage = false
	}
	invalidateRoll(item)
}

// ToggleDisadvantage flips disadvantage. Turning it on turns advantage off.
func (e *engine) ToggleDisadvantage(item *entities.CheckItem) {
	item.Disadvantage = !item.Disadvantage
	if item.Disadvantage {
		item.Advantage = false
	}
	invalidateRoll(item)
}

// invalidateRoll drops a die roll drawn under the old flags. Custom values
// were never drawn, so they stay and are recomputed.
func invalidateRoll(item *entities.CheckItem) {
	item.DiceRoll = nil
	Recalculate(item)
}

// ResetItem clears every roll input and returns the item to pending
func (e *engine) ResetItem(item *entities.CheckItem) {
	item.DiceRoll = nil
	item.CustomValue = nil
	item.CustomBonus = nil
	item.Total = nil
	item.Advantage = false
	item.Disadvantage = false
	item.Result = entities.ResultPending
}

// ResolveAllPending resolves every pending item in session order and returns
// how many were rolled. Resolved items are left untouched.
func (e *engine) ResolveAllPending(session *entities.CheckSession) (int, error) {
	if session == nil {
		return 0, errors.InvalidArgument("session is required")
	}

	rolled := 0
	for _, item := range session.Items {
		if !item.IsPending() {
			continue
		}
		if err := e.Resolve(item, nil); err != nil {
			return rolled, err
		}
		rolled++
	}

	return rolled, nil
}

// ResetAll resets every item in the session
func (e *engine) ResetAll(session *entities.CheckSession) {
	for _, item := range session.Items {
		e.ResetItem(item)
	}
}
