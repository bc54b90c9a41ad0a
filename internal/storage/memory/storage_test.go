package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/barmonse/teg-server/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
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
		CreatedAt: time.Now(),
	}

	err := s.storage.SaveUser(s.ctx, user)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetUser(s.ctx, "u_1")
	s.Require().NoError(err)
	s.Equal(user.Username, retrieved.Username)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestRegisteredUserLookupByUsername() {
	ru := &model.RegisteredUser{
		UserID:       "u_1",
		Username:     "alice",
		PasswordHash: "$2a$10$hash",
	}

	err := s.storage.SaveRegisteredUser(s.ctx, ru)
	s.Require().NoError(err)

	found, err := s.storage.GetRegisteredUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.UserID("u_1"), found.UserID)

	_, err = s.storage.GetRegisteredUserByUsername(s.ctx, "bob")
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
	s.True(retrieved.HasPlayer("u_1"))
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
	s.Require().NoError(s.storage.SaveSession(s.ctx, s.makeSession("prog0001", model.StatusInProgress)))

	waiting, err := s.storage.ListSessionsByStatus(s.ctx, model.StatusWaiting)
	s.Require().NoError(err)
	s.Require().Len(waiting, 1)
	s.Equal(model.SessionID("wait0001"), waiting[0].ID)

	cancelled, err := s.storage.ListSessionsByStatus(s.ctx, model.StatusCancelled)
	s.Require().NoError(err)
	s.Empty(cancelled)
}

func (s *StorageSuite) TestSaveSessionReplacesAggregate() {
	session := s.makeSession("abcd1234", model.StatusWaiting)
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	updated := session.Clone()
	updated.Status = model.StatusInProgress
	s.Require().NoError(s.storage.SaveSession(s.ctx, updated))

	retrieved, err := s.storage.GetSession(s.ctx, "abcd1234")
	s.Require().NoError(err)
	s.Equal(model.StatusInProgress, retrieved.Status)
}

// Country catalog tests

func (s *StorageSuite) TestCountriesRoundTrip() {
	_, err := s.storage.GetCountries(s.ctx)
	s.ErrorIs(err, model.ErrCatalogNotLoaded)

	countries := []model.Country{
		{ID: "ARGENTINA", Continent: model.ContinentSouthAmerica},
	}
	s.Require().NoError(s.storage.SaveCountries(s.ctx, countries))

	retrieved, err := s.storage.GetCountries(s.ctx)
	s.Require().NoError(err)
	s.Equal(countries, retrieved)
}
