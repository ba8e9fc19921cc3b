package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-skillcheck/internal/entities"
	"github.com/KirkDiggler/rpg-skillcheck/internal/orchestrators/session"
)

var customBonus int

var rollCmd = &cobra.Command{
	Use:   "roll [item-id]",
	Short: "Roll a d20 for one check of the current session",
	Long: `Roll one check. Item ids may be shortened to any unique prefix, as shown by
"session show". --bonus replaces the item's custom bonus.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		itemID, err := resolveItemID(ctx, args[0])
		if err != nil {
			return err
		}

		out, err := current.sessions.RollItem(ctx, &session.RollItemInput{
			ItemID:      itemID,
			CustomBonus: bonusFlag(cmd),
		})
		if err != nil {
			return err
		}
		printItem(out.Item)
		return nil
	},
}

var rollAllCmd = &cobra.Command{
	Use:   "roll-all",
	Short: "Roll every pending check of the current session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out, err := current.sessions.RollAll(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Rolled %d checks\n\n", out.Rolled)
		printSession(out.Session)
		return nil
	},
}

var customCmd = &cobra.Command{
	Use:   "custom [item-id] [value]",
	Short: "Enter a die face by hand; omit the value to clear it",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		itemID, err := resolveItemID(ctx, args[0])
		if err != nil {
			return err
		}

		input := &session.ApplyCustomValueInput{
			ItemID:      itemID,
			CustomBonus: bonusFlag(cmd),
		}
		if len(args) == 2 {
			v, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("value must be an integer: %w", err)
			}
			input.Value = &v
		}

		out, err := current.sessions.ApplyCustomValue(ctx, input)
		if err != nil {
			return err
		}
		printItem(out.Item)
		return nil
	},
}

var bonusCmd = &cobra.Command{
	Use:   "bonus [item-id] [bonus]",
	Short: "Set a check's custom bonus; omit the bonus to clear it",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		itemID, err := resolveItemID(ctx, args[0])
		if err != nil {
			return err
		}

		input := &session.SetCustomBonusInput{ItemID: itemID}
		if len(args) == 2 {
			v, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("bonus must be an integer: %w", err)
			}
			input.CustomBonus = &v
		}

		out, err := current.sessions.SetCustomBonus(ctx, input)
		if err != nil {
			return err
		}
		printItem(out.Item)
		return nil
	},
}

var advantageCmd = itemActionCmd("advantage", "Toggle advantage on a check", func(ctx context.Context, in *session.ItemInput) (*session.ItemOutput, error) {
	return current.sessions.ToggleAdvantage(ctx, in)
})

var disadvantageCmd = itemActionCmd("disadvantage", "Toggle disadvantage on a check", func(ctx context.Context, in *session.ItemInput) (*session.ItemOutput, error) {
	return current.sessions.ToggleDisadvantage(ctx, in)
})

var resetCmd = itemActionCmd("reset", "Return a check to pending", func(ctx context.Context, in *session.ItemInput) (*session.ItemOutput, error) {
	return current.sessions.ResetItem(ctx, in)
})

var resetAllCmd = &cobra.Command{
	Use:   "reset-all",
	Short: "Return every check of the current session to pending",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out, err := current.sessions.ResetAll(cmd.Context())
		if err != nil {
			return err
		}
		printSession(out.Session)
		return nil
	},
}

func itemActionCmd(use, short string, action func(context.Context, *session.ItemInput) (*session.ItemOutput, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [item-id]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			itemID, err := resolveItemID(ctx, args[0])
			if err != nil {
				return err
			}

			out, err := action(ctx, &session.ItemInput{ItemID: itemID})
			if err != nil {
				return err
			}
			printItem(out.Item)
			return nil
		},
	}
}

// resolveItemID expands a unique id prefix against the current session.
// Anything else is passed through for the service to reject.
func resolveItemID(ctx context.Context, prefix string) (string, error) {
	out, err := current.sessions.GetActive(ctx)
	if err != nil || out.Session == nil {
		return prefix, err
	}
	return matchItemID(out.Session.Items, prefix)
}

// matchItemID returns the item id equal to prefix, else the single id that
// starts with it. No match returns prefix unchanged; several matches fail.
func matchItemID(items []*entities.CheckItem, prefix string) (string, error) {
	if prefix == "" {
		return prefix, nil
	}

	var matches []string
	for _, item := range items {
		if item.ID == prefix {
			return prefix, nil
		}
		if strings.HasPrefix(item.ID, prefix) {
			matches = append(matches, item.ID)
		}
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("item id %q is ambiguous (%d matches)", prefix, len(matches))
	}
	if len(matches) == 1 {
		return matches[0], nil
	}
	return prefix, nil
}

func bonusFlag(cmd *cobra.Command) *int {
	if !cmd.Flags().Changed("bonus") {
		return nil
	}
	v := customBonus
	return &v
}

func init() {
	rollCmd.Flags().IntVar(&customBonus, "bonus", 0, "custom bonus for this check")
	customCmd.Flags().IntVar(&customBonus, "bonus", 0, "custom bonus for this check")
}
