package dataset_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-skillcheck/internal/entities"
	"github.com/KirkDiggler/rpg-skillcheck/internal/errors"
	"github.com/KirkDiggler/rpg-skillcheck/internal/kvstore"
	kvstoremock "github.com/KirkDiggler/rpg-skillcheck/internal/kvstore/mock"
	"github.com/KirkDiggler/rpg-skillcheck/internal/repositories/dataset"
	"github.com/KirkDiggler/rpg-skillcheck/internal/testutils"
)

type RepositoryTestSuite struct {
	suite.Suite
	store *kvstore.Memory
	repo  dataset.Repository
	ctx   context.Context
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = kvstore.NewMemory()
	repo, err := dataset.NewRepository(&dataset.Config{Store: s.store})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RepositoryTestSuite) TestNewRepositoryRequiresStore() {
	_, err := dataset.NewRepository(&dataset.Config{})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *RepositoryTestSuite) TestMissingKeysLoadEmpty() {
	s.Assert().NotNil(s.repo.LoadPlayers(s.ctx))
	s.Assert().Empty(s.repo.LoadPlayers(s.ctx))
	s.Assert().Empty(s.repo.LoadEvents(s.ctx))
	s.Assert().Empty(s.repo.LoadSessions(s.ctx))
}

func (s *RepositoryTestSuite) TestCorruptRecordLoadsEmpty() {
	s.Require().NoError(s.store.Set(s.ctx, dataset.KeyPlayers, []byte(`{not json`)))
	s.Require().NoError(s.store.Set(s.ctx, dataset.KeyEvents, []byte(`{"id":"not-an-array"}`)))

	s.Assert().Empty(s.repo.LoadPlayers(s.ctx))
	s.Assert().Empty(s.repo.LoadEvents(s.ctx))
}

func (s *RepositoryTestSuite) TestPlayersRoundTrip() {
	players := testutils.CreateTestPlayers()
	s.Require().NoError(s.repo.SavePlayers(s.ctx, players))

	s.Assert().Equal(players, s.repo.LoadPlayers(s.ctx))
}

func (s *RepositoryTestSuite) TestNilCollectionsSaveAsEmptyArrays() {
	s.Require().NoError(s.repo.SaveEvents(s.ctx, nil))

	raw, err := s.store.Get(s.ctx, dataset.KeyEvents)
	s.Require().NoError(err)
	s.Assert().Equal(`[]`, string(raw))
}

func (s *RepositoryTestSuite) TestNullSkillsAndNullEntries() {
	s.Require().NoError(s.store.Set(s.ctx, dataset.KeyPlayers, []byte(`[null,{"id":"p1","name":"Aria","skills":null}]`)))

	players := s.repo.LoadPlayers(s.ctx)
	s.Require().Len(players, 1)
	s.Assert().NotNil(players[0].Skills)
}

func (s *RepositoryTestSuite) TestSessionsRoundTripDates() {
	completed := testutils.FixedTime.Add(90 * time.Minute)
	roll := 14
	total := 17
	sessions := []*entities.CheckSession{
		{
			ID:        "session_1",
			Name:      "Crypt",
			CreatedAt: testutils.FixedTime,
			Status:    entities.StatusCompleted,
			Items: []*entities.CheckItem{{
				ID: "item_1", PlayerID: "player_aria", EventID: "event_ambush",
				Modifier: 3, Difficulty: 15, DiceRoll: &roll, Total: &total,
				Result: entities.ResultSuccess,
			}},
			CompletedAt: &completed,
		},
		{
			ID:        "session_2",
			Name:      "Tavern",
			CreatedAt: testutils.FixedTime.Add(24 * time.Hour),
			Status:    entities.StatusActive,
			Items:     []*entities.CheckItem{},
		},
	}

	s.Require().NoError(s.repo.SaveSessions(s.ctx, sessions))
	loaded := s.repo.LoadSessions(s.ctx)

	s.Require().Len(loaded, 2)
	s.Assert().Equal(sessions, loaded)
	s.Assert().True(loaded[0].CompletedAt.Equal(completed))
	s.Assert().Nil(loaded[1].CompletedAt)
}

func (s *RepositoryTestSuite) TestLegacySessionRecord() {
	legacy := `[{"id":"1700000000000","name":"Old","createdAt":"2024-11-14T22:13:20.123Z",
		"items":[{"id":"a","playerId":"p","eventId":"e","modifier":2,"difficulty":10}]}]`
	s.Require().NoError(s.store.Set(s.ctx, dataset.KeySessionHistory, []byte(legacy)))

	loaded := s.repo.LoadSessions(s.ctx)

	s.Require().Len(loaded, 1)
	s.Assert().Equal(entities.StatusActive, loaded[0].Status)
	s.Assert().Equal(entities.ResultPending, loaded[0].Items[0].Result)
	s.Assert().Equal(time.Date(2024, 11, 14, 22, 13, 20, 123000000, time.UTC), loaded[0].CreatedAt.UTC())
}

func (s *RepositoryTestSuite) TestBadDateLoadsEmpty() {
	s.Require().NoError(s.store.Set(s.ctx, dataset.KeySessionHistory, []byte(`[{"id":"1","name":"x","createdAt":"yesterday","items":[]}]`)))
	s.Assert().Empty(s.repo.LoadSessions(s.ctx))
}

func TestRepository_StoreFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := kvstoremock.NewMockStore(ctrl)
	repo, err := dataset.NewRepository(&dataset.Config{Store: mockStore})
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	t.Run("write failure is a storage error", func(t *testing.T) {
		mockStore.EXPECT().
			Set(ctx, dataset.KeyPlayers, []byte(`[]`)).
			Return(errors.Storage(fmt.Errorf("quota exceeded"), "write failed"))

		err := repo.SavePlayers(ctx, nil)
		if !errors.IsStorage(err) {
			t.Fatalf("expected storage error, got %v", err)
		}
	})

	t.Run("read failure loads empty", func(t *testing.T) {
		mockStore.EXPECT().
			Get(ctx, dataset.KeyEvents).
			Return(nil, errors.Storage(fmt.Errorf("connection refused"), "read failed"))

		if events := repo.LoadEvents(ctx); len(events) != 0 {
			t.Fatalf("expected no events, got %d", len(events))
		}
	})
}
