package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/barmonse/teg-server/internal/dependencies/mocks"
	"github.com/barmonse/teg-server/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, DefaultConfig())
	s.ctx = context.Background()
}

// Register tests

func (s *ServiceSuite) TestRegisterSucceeds() {
	token, err := s.service.Register(s.ctx, "alice", "alice@example.com", "hunter22")
	s.Require().NoError(err)

	s.NotEmpty(token.Value)
	s.NotEmpty(token.UserID)
	s.Equal("alice", token.User.Username)
	s.Equal("alice@example.com", token.User.Email)
}

func (s *ServiceSuite) TestRegisterPersistsUser() {
	token, err := s.service.Register(s.ctx, "alice", "alice@example.com", "hunter22")
	s.Require().NoError(err)

	user, err := s.storage.GetUser(s.ctx, token.UserID)
	s.Require().NoError(err)
	s.Equal("alice", user.Username)

	registered, err := s.storage.GetRegisteredUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(token.UserID, registered.UserID)
	s.NotEqual("hunter22", registered.PasswordHash)
}

func (s *ServiceSuite) TestRegisterDuplicateUsernameFails() {
	_, err := s.service.Register(s.ctx, "alice", "alice@example.com", "hunter22")
	s.Require().NoError(err)

	_, err = s.service.Register(s.ctx, "alice", "other@example.com", "different")
	s.ErrorIs(err, ErrUsernameExists)
}

// Login tests

func (s *ServiceSuite) TestLoginSucceeds() {
	registerToken, err := s.service.Register(s.ctx, "alice", "alice@example.com", "hunter22")
	s.Require().NoError(err)

	loginToken, err := s.service.Login(s.ctx, "alice", "hunter22")
	s.Require().NoError(err)
	s.Equal(registerToken.UserID, loginToken.UserID)
	s.NotEqual(registerToken.Value, loginToken.Value)
}

func (s *ServiceSuite) TestLoginWrongPasswordFails() {
	_, err := s.service.Register(s.ctx, "alice", "alice@example.com", "hunter22")
	s.Require().NoError(err)

	_, err = s.service.Login(s.ctx, "alice", "wrong")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginUnknownUserFails() {
	_, err := s.service.Login(s.ctx, "nobody", "whatever")
	s.ErrorIs(err, ErrInvalidCredentials)
}

// Token tests

func (s *ServiceSuite) TestValidateTokenSucceeds() {
	token, err := s.service.Register(s.ctx, "alice", "alice@example.com", "hunter22")
	s.Require().NoError(err)

	validated, err := s.service.ValidateToken(token.Value)
	s.Require().NoError(err)
	s.Equal(token.UserID, validated.UserID)
}

func (s *ServiceSuite) TestValidateUnknownTokenFails() {
	_, err := s.service.ValidateToken("tok_bogus")
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *ServiceSuite) TestTokenExpires() {
	token, err := s.service.Register(s.ctx, "alice", "alice@example.com", "hunter22")
	s.Require().NoError(err)

	s.clock.Advance(25 * time.Hour)
	_, err = s.service.ValidateToken(token.Value)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *ServiceSuite) TestInvalidateToken() {
	token, err := s.service.Register(s.ctx, "alice", "alice@example.com", "hunter22")
	s.Require().NoError(err)

	s.service.InvalidateToken(token.Value)
	_, err = s.service.ValidateToken(token.Value)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *ServiceSuite) TestGetUser() {
	token, err := s.service.Register(s.ctx, "alice", "alice@example.com", "hunter22")
	s.Require().NoError(err)

	user, err := s.service.GetUser(token.Value)
	s.Require().NoError(err)
	s.Equal("alice", user.Username)
}

func (s *ServiceSuite) TestCleanExpiredTokens() {
	stale, err := s.service.Register(s.ctx, "alice", "alice@example.com", "hunter22")
	s.Require().NoError(err)

	s.clock.Advance(25 * time.Hour)
	fresh, err := s.service.Login(s.ctx, "alice", "hunter22")
	s.Require().NoError(err)

	s.service.CleanExpiredTokens()

	_, err = s.service.ValidateToken(stale.Value)
	s.ErrorIs(err, ErrInvalidToken)
	_, err = s.service.ValidateToken(fresh.Value)
	s.NoError(err)
}
