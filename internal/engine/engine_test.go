package engine_test

import (
	"fmt"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	mock_dice "github.com/KirkDiggler/rpg-toolkit/dice/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-skillcheck/internal/engine"
	"github.com/KirkDiggler/rpg-skillcheck/internal/entities"
	"github.com/KirkDiggler/rpg-skillcheck/internal/errors"
	"github.com/KirkDiggler/rpg-skillcheck/internal/testutils/mocks"
)

func intPtr(v int) *int { return &v }

type EngineTestSuite struct {
	suite.Suite
	ctrl   *gomock.Controller
	roller *mock_dice.MockRoller
	engine engine.Engine
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (s *EngineTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.roller = mock_dice.NewMockRoller(s.ctrl)
	e, err := engine.New(&engine.Config{Roller: s.roller})
	s.Require().NoError(err)
	s.engine = e
}

func (s *EngineTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *EngineTestSuite) script(values ...int) {
	mocks.ExpectRolls(s.roller, values...)
}

func (s *EngineTestSuite) newItem(modifier, difficulty int) *entities.CheckItem {
	return &entities.CheckItem{
		ID:         "item_1",
		PlayerID:   "player_1",
		EventID:    "event_1",
		Skill:      entities.SkillPerception,
		Modifier:   modifier,
		Difficulty: difficulty,
		Result:     entities.ResultPending,
	}
}

func (s *EngineTestSuite) TestNewRequiresRoller() {
	_, err := engine.New(&engine.Config{})
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = engine.New(nil)
	s.Assert().Error(err)
}

func (s *EngineTestSuite) TestRollDieStaysInRange() {
	e, err := engine.New(&engine.Config{Roller: dice.DefaultRoller})
	s.Require().NoError(err)

	for i := 0; i < 2000; i++ {
		v, err := e.RollDie()
		s.Require().NoError(err)
		s.Require().GreaterOrEqual(v, 1)
		s.Require().LessOrEqual(v, 20)
	}
}

func (s *EngineTestSuite) TestRollDieRejectsOutOfRangeRoller() {
	s.script(21)
	_, err := s.engine.RollDie()
	s.Assert().True(errors.IsInternal(err))
}

func (s *EngineTestSuite) TestAdvantageAndDisadvantageUseTwoFreshDice() {
	pairs := [][2]int{{3, 17}, {17, 3}, {9, 9}, {1, 20}}
	for _, p := range pairs {
		s.script(p[0], p[1], p[0], p[1])

		adv, err := s.engine.RollWithAdvantage()
		s.Require().NoError(err)
		dis, err := s.engine.RollWithDisadvantage()
		s.Require().NoError(err)

		s.Assert().Equal(engine.TakeHigher(p[0], p[1]), adv)
		s.Assert().Equal(engine.TakeLower(p[0], p[1]), dis)
		s.Assert().GreaterOrEqual(adv, dis)
	}
}

func (s *EngineTestSuite) TestResolveFormula() {
	testCases := []struct {
		name       string
		difficulty int
		expected   entities.Result
	}{
		{"beats DC", 15, entities.ResultSuccess},
		{"meets DC exactly", 17, entities.ResultSuccess},
		{"misses DC", 18, entities.ResultFailure},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.script(12)
			item := s.newItem(3, tc.difficulty)

			s.Require().NoError(s.engine.Resolve(item, intPtr(2)))

			s.Require().NotNil(item.Total)
			s.Assert().Equal(17, *item.Total)
			s.Assert().Equal(12, *item.DiceRoll)
			s.Assert().Equal(2, *item.CustomBonus)
			s.Assert().Equal(tc.expected, item.Result)
		})
	}
}

func (s *EngineTestSuite) TestResolveNegativeNumbersAreNotClamped() {
	s.script(1)
	item := s.newItem(-3, 5)

	s.Require().NoError(s.engine.Resolve(item, intPtr(-4)))

	s.Assert().Equal(-6, *item.Total)
	s.Assert().Equal(entities.ResultFailure, item.Result)
}

func (s *EngineTestSuite) TestResolveKeepsExistingBonusAndClearsCustomValue() {
	s.script(10)
	item := s.newItem(0, 10)
	item.CustomValue = intPtr(4)
	item.CustomBonus = intPtr(5)

	s.Require().NoError(s.engine.Resolve(item, nil))

	s.Assert().Nil(item.CustomValue)
	s.Assert().Equal(5, *item.CustomBonus)
	s.Assert().Equal(15, *item.Total)
}

func (s *EngineTestSuite) TestResolvePicksGeneratorFromFlags() {
	s.script(4, 16)
	adv := s.newItem(0, 10)
	adv.Advantage = true
	s.Require().NoError(s.engine.Resolve(adv, nil))
	s.Assert().Equal(16, *adv.DiceRoll)

	s.script(4, 16)
	dis := s.newItem(0, 10)
	dis.Disadvantage = true
	s.Require().NoError(s.engine.Resolve(dis, nil))
	s.Assert().Equal(4, *dis.DiceRoll)

	s.script(4, 16)
	both := s.newItem(0, 10)
	both.Advantage = true
	both.Disadvantage = true
	s.Require().NoError(s.engine.Resolve(both, nil))
	s.Assert().Equal(16, *both.DiceRoll, "advantage wins")
}

func (s *EngineTestSuite) TestResolveRollerFailureLeavesItemUntouched() {
	mocks.ExpectRollError(s.roller, fmt.Errorf("entropy unavailable"))
	item := s.newItem(2, 10)

	err := s.engine.Resolve(item, intPtr(3))
	s.Require().Error(err)

	s.Assert().Nil(item.DiceRoll)
	s.Assert().Nil(item.CustomBonus)
	s.Assert().Equal(entities.ResultPending, item.Result)
}

func (s *EngineTestSuite) TestApplyCustomValueBounds() {
	for _, v := range []int{0, 21, -1} {
		item := s.newItem(0, 10)
		err := s.engine.ApplyCustomValue(item, v, nil)
		s.Assert().True(errors.IsInvalidArgument(err), "value %d", v)
		s.Assert().Nil(item.CustomValue)
		s.Assert().Equal(entities.ResultPending, item.Result)
	}

	for _, v := range []int{1, 20} {
		item := s.newItem(0, 10)
		s.Require().NoError(s.engine.ApplyCustomValue(item, v, nil))
		s.Assert().Equal(v, *item.CustomValue)
	}
}

func (s *EngineTestSuite) TestApplyCustomValueClearsRoll() {
	item := s.newItem(2, 10)
	item.DiceRoll = intPtr(19)

	s.Require().NoError(s.engine.ApplyCustomValue(item, 7, intPtr(1)))

	s.Assert().Nil(item.DiceRoll)
	s.Assert().Equal(10, *item.Total)
	s.Assert().Equal(entities.ResultSuccess, item.Result)
}

func (s *EngineTestSuite) TestClearCustomValue() {
	item := s.newItem(2, 10)
	s.Require().NoError(s.engine.ApplyCustomValue(item, 7, nil))

	s.engine.ClearCustomValue(item)

	s.Assert().Nil(item.CustomValue)
	s.Assert().Nil(item.Total)
	s.Assert().Equal(entities.ResultPending, item.Result)
}

func (s *EngineTestSuite) TestSetCustomBonus() {
	pending := s.newItem(2, 10)
	s.engine.SetCustomBonus(pending, intPtr(4))
	s.Assert().Equal(4, *pending.CustomBonus)
	s.Assert().Nil(pending.Total, "no value means no total")
	s.Assert().Equal(entities.ResultPending, pending.Result)

	rolled := s.newItem(2, 14)
	rolled.DiceRoll = intPtr(10)
	s.engine.SetCustomBonus(rolled, intPtr(1))
	s.Assert().Equal(13, *rolled.Total)
	s.Assert().Equal(entities.ResultFailure, rolled.Result)

	s.engine.SetCustomBonus(rolled, intPtr(2))
	s.Assert().Equal(entities.ResultSuccess, rolled.Result)

	s.engine.SetCustomBonus(rolled, nil)
	s.Assert().Nil(rolled.CustomBonus)
	s.Assert().Equal(12, *rolled.Total)
}

func (s *EngineTestSuite) TestToggleMutualExclusion() {
	item := s.newItem(0, 10)

	s.engine.ToggleAdvantage(item)
	s.Assert().True(item.Advantage)
	s.Assert().False(item.Disadvantage)

	s.engine.ToggleDisadvantage(item)
	s.Assert().True(item.Disadvantage)
	s.Assert().False(item.Advantage, "enabling disadvantage disables advantage")

	s.engine.ToggleAdvantage(item)
	s.Assert().True(item.Advantage)
	s.Assert().False(item.Disadvantage, "enabling advantage disables disadvantage")
}

func (s *EngineTestSuite) TestToggleTwiceRestoresFlag() {
	item := s.newItem(0, 10)

	s.engine.ToggleAdvantage(item)
	s.engine.ToggleAdvantage(item)
	s.Assert().False(item.Advantage)

	s.engine.ToggleDisadvantage(item)
	s.engine.ToggleDisadvantage(item)
	s.Assert().False(item.Disadvantage)
}

func (s *EngineTestSuite) TestToggleAfterRollInvalidatesDie() {
	s.script(18)
	item := s.newItem(1, 10)
	s.Require().NoError(s.engine.Resolve(item, intPtr(2)))
	s.Require().Equal(entities.ResultSuccess, item.Result)

	s.engine.ToggleAdvantage(item)

	s.Assert().Nil(item.DiceRoll)
	s.Assert().Nil(item.Total)
	s.Assert().Equal(entities.ResultPending, item.Result)
	s.Assert().Equal(2, *item.CustomBonus, "bonus survives invalidation")
}

func (s *EngineTestSuite) TestToggleAfterCustomValueRecomputes() {
	item := s.newItem(1, 10)
	s.Require().NoError(s.engine.ApplyCustomValue(item, 9, nil))

	s.engine.ToggleDisadvantage(item)

	s.Assert().Equal(9, *item.CustomValue)
	s.Assert().Equal(10, *item.Total)
	s.Assert().Equal(entities.ResultSuccess, item.Result)
}

func (s *EngineTestSuite) TestResetItem() {
	item := s.newItem(1, 10)
	item.DiceRoll = intPtr(5)
	item.CustomBonus = intPtr(3)
	item.Total = intPtr(9)
	item.Advantage = true
	item.Result = entities.ResultFailure

	s.engine.ResetItem(item)

	s.Assert().Nil(item.DiceRoll)
	s.Assert().Nil(item.CustomValue)
	s.Assert().Nil(item.CustomBonus)
	s.Assert().Nil(item.Total)
	s.Assert().False(item.Advantage)
	s.Assert().False(item.Disadvantage)
	s.Assert().Equal(entities.ResultPending, item.Result)
	s.Assert().Equal(1, item.Modifier, "snapshot fields are kept")
}

func (s *EngineTestSuite) TestResolveAllPendingSkipsResolvedItems() {
	resolved := s.newItem(0, 10)
	resolved.ID = "item_done"
	resolved.CustomValue = intPtr(20)
	engine.Recalculate(resolved)

	first := s.newItem(0, 10)
	first.ID = "item_a"
	second := s.newItem(5, 10)
	second.ID = "item_b"

	session := &entities.CheckSession{Items: []*entities.CheckItem{first, resolved, second}}
	s.script(3, 8)

	rolled, err := s.engine.ResolveAllPending(session)
	s.Require().NoError(err)

	s.Assert().Equal(2, rolled)
	s.Assert().Equal(3, *first.DiceRoll, "session order is preserved")
	s.Assert().Equal(8, *second.DiceRoll)
	s.Assert().Equal(entities.ResultSuccess, second.Result)
	s.Assert().Equal(20, *resolved.CustomValue)
	s.Assert().Nil(resolved.DiceRoll)
}

func (s *EngineTestSuite) TestResetAll() {
	a := s.newItem(0, 10)
	a.DiceRoll = intPtr(4)
	b := s.newItem(0, 10)
	b.CustomValue = intPtr(6)
	session := &entities.CheckSession{Items: []*entities.CheckItem{a, b}}

	s.engine.ResetAll(session)

	s.Assert().Equal(entities.ResultStats{Total: 2, Pending: 2}, session.Stats())
}

func (s *EngineTestSuite) TestRecalculateWithoutValueIsPending() {
	item := s.newItem(4, 10)
	item.Total = intPtr(30)
	item.Result = entities.ResultSuccess

	engine.Recalculate(item)

	s.Assert().Nil(item.Total)
	s.Assert().Equal(entities.ResultPending, item.Result)
}
