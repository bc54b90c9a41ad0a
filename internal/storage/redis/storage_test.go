package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/barmonse/teg-server/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) makeSession(id string, status model.SessionStatus) *model.Session {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return &model.Session{
		ID:         model.SessionID(id),
		Name:       "test game",
		Status:     status,
		MaxPlayers: 4,
		CreatorID:  "u_1",
		Players: map[model.UserID]model.PlayerSlot{
			"u_1": {UserID: "u_1", Color: model.ColorRed, TurnOrder: 1, JoinedAt: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// User tests

func (s *StorageSuite) TestSaveAndGetUser() {
	user := &model.User{
		ID:        "u_1",
		Username:  "alice",
		Email:     "alice@example.com",
		CreatedAt: time.Now().UTC(),
	}

	err := s.storage.SaveUser(s.ctx, user)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetUser(s.ctx, "u_1")
	s.Require().NoError(err)
	s.Equal(user.ID, retrieved.ID)
	s.Equal(user.Username, retrieved.Username)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestSaveAndGetRegisteredUser() {
	ru := &model.RegisteredUser{
		UserID:       "u_1",
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$hash",
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}

	err := s.storage.SaveRegisteredUser(s.ctx, ru)
	s.Require().NoError(err)

	byID, err := s.storage.GetRegisteredUser(s.ctx, "u_1")
	s.Require().NoError(err)
	s.Equal(ru.Username, byID.Username)

	byName, err := s.storage.GetRegisteredUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(ru.UserID, byName.UserID)
}

func (s *StorageSuite) TestGetRegisteredUserByUsernameNotFound() {
	_, err := s.storage.GetRegisteredUserByUsername(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrUserNotFound)
}

// Session tests

func (s *StorageSuite) TestSaveAndGetSession() {
	session := s.makeSession("abcd1234", model.StatusWaiting)

	err := s.storage.SaveSession(s.ctx, session)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetSession(s.ctx, "abcd1234")
	s.Require().NoError(err)
	s.Equal(session.ID, retrieved.ID)
	s.Equal(session.Status, retrieved.Status)
	s.Require().Contains(retrieved.Players, model.UserID("u_1"))
	s.Equal(model.ColorRed, retrieved.Players["u_1"].Color)
}

func (s *StorageSuite) TestGetSessionNotFound() {
	_, err := s.storage.GetSession(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestSessionExists() {
	exists, err := s.storage.SessionExists(s.ctx, "abcd1234")
	s.Require().NoError(err)
	s.False(exists)

	s.Require().NoError(s.storage.SaveSession(s.ctx, s.makeSession("abcd1234", model.StatusWaiting)))

	exists, err = s.storage.SessionExists(s.ctx, "abcd1234")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *StorageSuite) TestListSessionsByStatus() {
	s.Require().NoError(s.storage.SaveSession(s.ctx, s.makeSession("wait0001", model.StatusWaiting)))
	s.Require().NoError(s.storage.SaveSession(s.ctx, s.makeSession("wait0002", model.StatusWaiting)))
	s.Require().NoError(s.storage.SaveSession(s.ctx, s.makeSession("prog0001", model.StatusInProgress)))

	waiting, err := s.storage.ListSessionsByStatus(s.ctx, model.StatusWaiting)
	s.Require().NoError(err)
	s.Len(waiting, 2)

	inProgress, err := s.storage.ListSessionsByStatus(s.ctx, model.StatusInProgress)
	s.Require().NoError(err)
	s.Len(inProgress, 1)

	cancelled, err := s.storage.ListSessionsByStatus(s.ctx, model.StatusCancelled)
	s.Require().NoError(err)
	s.Empty(cancelled)
}

func (s *StorageSuite) TestSaveSessionMovesStatusIndex() {
	session := s.makeSession("abcd1234", model.StatusWaiting)
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	session.Status = model.StatusInProgress
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	waiting, err := s.storage.ListSessionsByStatus(s.ctx, model.StatusWaiting)
	s.Require().NoError(err)
	s.Empty(waiting)

	inProgress, err := s.storage.ListSessionsByStatus(s.ctx, model.StatusInProgress)
	s.Require().NoError(err)
	s.Require().Len(inProgress, 1)
	s.Equal(session.ID, inProgress[0].ID)
}

func (s *StorageSuite) TestListDropsStaleIndexEntries() {
	session := s.makeSession("abcd1234", model.StatusWaiting)
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	// Simulate the session value expiring while the index entry remains
	s.mini.Del("teg:session:abcd1234")

	waiting, err := s.storage.ListSessionsByStatus(s.ctx, model.StatusWaiting)
	s.Require().NoError(err)
	s.Empty(waiting)
}

// Country catalog tests

func (s *StorageSuite) TestSaveAndGetCountries() {
	countries := []model.Country{
		{ID: "ARGENTINA", Continent: model.ContinentSouthAmerica},
		{ID: "SPAIN", Continent: model.ContinentEurope},
	}

	err := s.storage.SaveCountries(s.ctx, countries)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetCountries(s.ctx)
	s.Require().NoError(err)
	s.Equal(countries, retrieved)
}

func (s *StorageSuite) TestGetCountriesNotLoaded() {
	_, err := s.storage.GetCountries(s.ctx)
	s.ErrorIs(err, model.ErrCatalogNotLoaded)
}
