package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/barmonse/teg-server/internal/broadcast"
	"github.com/barmonse/teg-server/internal/model"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
	s.Require().NoError(s.app.LoadCatalog(s.ctx))
}

func (s *IntegrationSuite) TearDownTest() {
	s.app.Close()
}

// Test: complete flow from registration to a started game
func (s *IntegrationSuite) TestCompleteSessionFlow() {
	// Step 1: Register two users
	aliceToken, err := s.app.AuthService.Register(s.ctx, "alice", "alice@example.com", "hunter22")
	s.Require().NoError(err)
	bobToken, err := s.app.AuthService.Register(s.ctx, "bob", "bob@example.com", "hunter22")
	s.Require().NoError(err)

	// Step 2: Alice creates a session
	s.app.MockRandom.QueueString("abcd1234")
	created, err := s.app.SessionController.Create(s.ctx, aliceToken.UserID, "friday night", 4)
	s.Require().NoError(err)
	s.Equal(model.SessionID("abcd1234"), created.ID)
	s.Equal(model.StatusWaiting, created.Status)

	// Step 3: Subscribe to the session's event feed
	sub, err := s.app.Broker.Subscribe(broadcast.SessionTopic(created.ID))
	s.Require().NoError(err)
	defer sub.Close()

	// Step 4: Bob finds the session in the waiting list and joins
	waiting, err := s.app.SessionController.ListByStatus(s.ctx, model.StatusWaiting)
	s.Require().NoError(err)
	s.Require().Len(waiting, 1)

	joined, err := s.app.SessionController.Join(s.ctx, waiting[0].ID, bobToken.UserID)
	s.Require().NoError(err)
	s.Equal(model.ColorBlue, joined.Slot(bobToken.UserID).Color)

	// Step 5: Bob picks a different color
	recolored, err := s.app.SessionController.SetColor(s.ctx, created.ID, bobToken.UserID, model.ColorBlack)
	s.Require().NoError(err)
	s.Equal(model.ColorBlack, recolored.Slot(bobToken.UserID).Color)

	// Step 6: Alice starts the game
	started, err := s.app.SessionController.Start(s.ctx, created.ID, aliceToken.UserID)
	s.Require().NoError(err)
	s.Equal(model.StatusInProgress, started.Status)

	total := 0
	for _, slot := range started.Players {
		s.NotEmpty(slot.Objective)
		total += len(slot.Countries)
	}
	s.Equal(50, total)

	// Step 7: Events arrived in commit order
	s.Equal(model.EventUserJoined, s.receive(sub).Type)
	s.Equal(model.EventPlayerColorChanged, s.receive(sub).Type)
	s.Equal(model.EventGameStarted, s.receive(sub).Type)
}

func (s *IntegrationSuite) TestCreatorAbandonsLobby() {
	aliceToken, err := s.app.AuthService.Register(s.ctx, "alice", "alice@example.com", "hunter22")
	s.Require().NoError(err)
	bobToken, err := s.app.AuthService.Register(s.ctx, "bob", "bob@example.com", "hunter22")
	s.Require().NoError(err)

	s.app.MockRandom.QueueString("abcd1234")
	created, err := s.app.SessionController.Create(s.ctx, aliceToken.UserID, "doomed", 4)
	s.Require().NoError(err)

	_, err = s.app.SessionController.Join(s.ctx, created.ID, bobToken.UserID)
	s.Require().NoError(err)

	cancelled, err := s.app.SessionController.Leave(s.ctx, created.ID, aliceToken.UserID)
	s.Require().NoError(err)
	s.Equal(model.StatusCancelled, cancelled.Status)
	s.Empty(cancelled.Players)

	// The cancelled session no longer shows up as joinable
	waiting, err := s.app.SessionController.ListByStatus(s.ctx, model.StatusWaiting)
	s.Require().NoError(err)
	s.Empty(waiting)

	cancelledList, err := s.app.SessionController.ListByStatus(s.ctx, model.StatusCancelled)
	s.Require().NoError(err)
	s.Len(cancelledList, 1)
}

func (s *IntegrationSuite) TestLoginAfterRegistration() {
	_, err := s.app.AuthService.Register(s.ctx, "alice", "alice@example.com", "hunter22")
	s.Require().NoError(err)

	s.app.MockClock.Advance(time.Hour)
	token, err := s.app.AuthService.Login(s.ctx, "alice", "hunter22")
	s.Require().NoError(err)

	user, err := s.app.AuthService.GetUser(token.Value)
	s.Require().NoError(err)
	s.Equal("alice", user.Username)
}

func (s *IntegrationSuite) receive(sub *broadcast.Subscription) model.Event {
	select {
	case event, ok := <-sub.C:
		s.Require().True(ok, "subscription closed before event arrived")
		return event
	case <-time.After(time.Second):
		s.Require().FailNow("timed out waiting for event")
		return model.Event{}
	}
}
