// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	mock_dice "github.com/KirkDiggler/rpg-toolkit/dice/mock"
	"go.uber.org/mock/gomock"
)

// d20 is the only die a skill check draws
const d20 = 20

// ExpectRolls expects one d20 roll per value, returned in order
func ExpectRolls(roller *mock_dice.MockRoller, values ...int) {
	calls := make([]any, 0, len(values))
	for _, v := range values {
		calls = append(calls, roller.EXPECT().Roll(d20).Return(v, nil))
	}
	gomock.InOrder(calls...)
}

// ExpectRollError expects a single d20 roll that fails with err
func ExpectRollError(roller *mock_dice.MockRoller, err error) {
	roller.EXPECT().Roll(d20).Return(0, err)
}
