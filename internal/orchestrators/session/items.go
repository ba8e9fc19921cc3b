package session

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-skillcheck/internal/entities"
	"github.com/KirkDiggler/rpg-skillcheck/internal/errors"
)

// RollItem rolls a fresh die for one item
func (o *orchestrator) RollItem(ctx context.Context, input *RollItemInput) (*ItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	item, err := o.currentItem(input.ItemID)
	if err != nil {
		return nil, err
	}

	if err := o.engine.Resolve(item, input.CustomBonus); err != nil {
		return nil, errors.Wrap(err, "failed to roll item")
	}
	o.save(ctx)

	slog.Info("Item rolled",
		"item_id", item.ID,
		"player", item.PlayerName,
		"event", item.EventName,
		"total", *item.Total,
		"result", item.Result,
	)

	return &ItemOutput{Item: item.Clone()}, nil
}

// RollAll rolls every pending item of the current session
func (o *orchestrator) RollAll(ctx context.Context) (*RollAllOutput, error) {
	current := o.current()
	if current == nil {
		return nil, errNoActiveSession()
	}

	rolled, err := o.engine.ResolveAllPending(current)
	if rolled > 0 {
		o.save(ctx)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "roll all stopped after %d items", rolled)
	}

	slog.Info("Pending items rolled",
		"session_id", current.ID,
		"rolled", rolled,
	)

	return &RollAllOutput{
		Rolled:  rolled,
		Session: current.Clone(),
	}, nil
}

// ApplyCustomValue records a hand-entered die face, or clears it when the
// value is nil
func (o *orchestrator) ApplyCustomValue(ctx context.Context, input *ApplyCustomValueInput) (*ItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	item, err := o.currentItem(input.ItemID)
	if err != nil {
		return nil, err
	}

	if input.Value == nil {
		o.engine.ClearCustomValue(item)
	} else if err := o.engine.ApplyCustomValue(item, *input.Value, input.CustomBonus); err != nil {
		return nil, err
	}
	o.save(ctx)

	return &ItemOutput{Item: item.Clone()}, nil
}

// SetCustomBonus replaces the item's bonus
func (o *orchestrator) SetCustomBonus(ctx context.Context, input *SetCustomBonusInput) (*ItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	item, err := o.currentItem(input.ItemID)
	if err != nil {
		return nil, err
	}

	o.engine.SetCustomBonus(item, input.CustomBonus)
	o.save(ctx)

	return &ItemOutput{Item: item.Clone()}, nil
}

// ToggleAdvantage flips advantage on one item
func (o *orchestrator) ToggleAdvantage(ctx context.Context, input *ItemInput) (*ItemOutput, error) {
	return o.mutateItem(ctx, input, o.engine.ToggleAdvantage)
}

// ToggleDisadvantage flips disadvantage on one item
func (o *orchestrator) ToggleDisadvantage(ctx context.Context, input *ItemInput) (*ItemOutput, error) {
	return o.mutateItem(ctx, input, o.engine.ToggleDisadvantage)
}

// ResetItem returns one item to pending
func (o *orchestrator) ResetItem(ctx context.Context, input *ItemInput) (*ItemOutput, error) {
	return o.mutateItem(ctx, input, o.engine.ResetItem)
}

// ResetAll returns every item of the current session to pending
func (o *orchestrator) ResetAll(ctx context.Context) (*ResetAllOutput, error) {
	current := o.current()
	if current == nil {
		return nil, errNoActiveSession()
	}

	o.engine.ResetAll(current)
	o.save(ctx)

	slog.Info("Session reset", "session_id", current.ID, "items", len(current.Items))

	return &ResetAllOutput{Session: current.Clone()}, nil
}

func (o *orchestrator) mutateItem(ctx context.Context, input *ItemInput, mutate func(*entities.CheckItem)) (*ItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	item, err := o.currentItem(input.ItemID)
	if err != nil {
		return nil, err
	}

	mutate(item)
	o.save(ctx)

	return &ItemOutput{Item: item.Clone()}, nil
}

func (o *orchestrator) currentItem(itemID string) (*entities.CheckItem, error) {
	if itemID == "" {
		return nil, errors.InvalidArgument("item ID is required")
	}

	current := o.current()
	if current == nil {
		return nil, errNoActiveSession()
	}

	item := current.Item(itemID)
	if item == nil {
		return nil, errors.NotFoundf("item %s not found in session %s", itemID, current.ID).
			WithMeta("item_id", itemID).
			WithMeta("session_id", current.ID)
	}

	return item, nil
}
