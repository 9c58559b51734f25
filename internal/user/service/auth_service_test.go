package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ridloal/smartshop-pos/internal/platform/apperr"
	"github.com/ridloal/smartshop-pos/internal/user/domain"
	"github.com/ridloal/smartshop-pos/internal/user/repository"
	"github.com/ridloal/smartshop-pos/internal/user/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(repo repository.UserRepository) *authService {
	return NewAuthService(repo, NewBcryptHasher(bcrypt.MinCost), "test-secret", time.Hour).(*authService)
}

func adminUser(t *testing.T) *domain.User {
	t.Helper()
	digest, err := NewBcryptHasher(bcrypt.MinCost).Hash("admin")
	require.NoError(t, err)
	return &domain.User{ID: 1, Username: "admin", PasswordHash: digest, Role: "Admin"}
}

func TestAuthService_Check(t *testing.T) {
	mockRepo := new(mocks.MockUserRepository)
	svc := newTestAuthService(mockRepo)
	ctx := context.TODO()

	t.Run("Matching credentials return the role", func(t *testing.T) {
		mockRepo.On("GetUserByUsername", ctx, "admin").Return(adminUser(t), nil).Once()

		role, err := svc.Check(ctx, "admin", "admin")

		assert.NoError(t, err)
		assert.Equal(t, "Admin", role)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Wrong password and unknown user look the same", func(t *testing.T) {
		mockRepo.On("GetUserByUsername", ctx, "admin").Return(adminUser(t), nil).Once()
		mockRepo.On("GetUserByUsername", ctx, "ghost").Return(nil, repository.ErrUserNotFound).Once()

		_, wrongPass := svc.Check(ctx, "admin", "wrong")
		_, unknownUser := svc.Check(ctx, "ghost", "admin")

		assert.ErrorIs(t, wrongPass, ErrInvalidCredentials)
		assert.ErrorIs(t, unknownUser, ErrInvalidCredentials)
		assert.Equal(t, wrongPass.Error(), unknownUser.Error())
		mockRepo.AssertExpectations(t)
	})

	t.Run("Input is not normalized", func(t *testing.T) {
		mockRepo.On("GetUserByUsername", ctx, "admin ").Return(nil, repository.ErrUserNotFound).Once()

		_, err := svc.Check(ctx, "admin ", "admin")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Store failure is surfaced", func(t *testing.T) {
		storeErr := apperr.Store("get user", errors.New("connection refused"))
		mockRepo.On("GetUserByUsername", ctx, "admin").Return(nil, storeErr).Once()

		_, err := svc.Check(ctx, "admin", "admin")

		assert.ErrorIs(t, err, apperr.ErrStore)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
		mockRepo.AssertExpectations(t)
	})
}

func TestAuthService_LoginAndParseToken(t *testing.T) {
	mockRepo := new(mocks.MockUserRepository)
	svc := newTestAuthService(mockRepo)
	ctx := context.TODO()

	t.Run("Issued token round-trips", func(t *testing.T) {
		mockRepo.On("GetUserByUsername", ctx, "admin").Return(adminUser(t), nil).Once()

		resp, err := svc.Login(ctx, domain.LoginRequest{Username: "admin", Password: "admin"})
		require.NoError(t, err)
		assert.Empty(t, resp.User.PasswordHash)
		assert.NotEmpty(t, resp.Token)

		session, err := svc.ParseToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, "admin", session.Username)
		assert.Equal(t, "Admin", session.Role)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Rejected login issues no token", func(t *testing.T) {
		mockRepo.On("GetUserByUsername", ctx, "admin").Return(adminUser(t), nil).Once()

		resp, err := svc.Login(ctx, domain.LoginRequest{Username: "admin", Password: "nope"})

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Expired token is rejected", func(t *testing.T) {
		mockRepo.On("GetUserByUsername", ctx, "admin").Return(adminUser(t), nil).Once()
		resp, err := svc.Login(ctx, domain.LoginRequest{Username: "admin", Password: "admin"})
		require.NoError(t, err)

		svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		defer func() { svc.now = time.Now }()

		_, err = svc.ParseToken(resp.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Token signed with another key is rejected", func(t *testing.T) {
		mockRepo.On("GetUserByUsername", ctx, "admin").Return(adminUser(t), nil).Once()
		other := NewAuthService(mockRepo, NewBcryptHasher(bcrypt.MinCost), "other-secret", time.Hour)
		resp, err := other.Login(ctx, domain.LoginRequest{Username: "admin", Password: "admin"})
		require.NoError(t, err)

		_, err = svc.ParseToken(resp.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)

		_, err = svc.ParseToken("not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestAuthService_SeedDefaultUser(t *testing.T) {
	mockRepo := new(mocks.MockUserRepository)
	svc := newTestAuthService(mockRepo)
	ctx := context.TODO()

	t.Run("First run stores a hashed password", func(t *testing.T) {
		mockRepo.On("CreateUser", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Username == "admin" && u.Role == "Admin" &&
				u.PasswordHash != "admin" &&
				bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("admin")) == nil
		})).Return(nil).Once()

		assert.NoError(t, svc.SeedDefaultUser(ctx, "admin", "admin", "Admin"))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Repeated startup ignores the existing user", func(t *testing.T) {
		mockRepo.On("CreateUser", ctx, mock.AnythingOfType("*domain.User")).Return(repository.ErrUserConflict).Once()

		assert.NoError(t, svc.SeedDefaultUser(ctx, "admin", "admin", "Admin"))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Store failure aborts seeding", func(t *testing.T) {
		mockRepo.On("CreateUser", ctx, mock.AnythingOfType("*domain.User")).Return(apperr.Store("create user", errors.New("disk full"))).Once()

		err := svc.SeedDefaultUser(ctx, "admin", "admin", "Admin")
		assert.ErrorIs(t, err, apperr.ErrStore)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Empty username is rejected", func(t *testing.T) {
		err := svc.SeedDefaultUser(ctx, "", "admin", "Admin")
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})
}

type countingHasher struct {
	PasswordHasher
	verified []string
}

func (h *countingHasher) Verify(digest, password string) bool {
	h.verified = append(h.verified, digest)
	return h.PasswordHasher.Verify(digest, password)
}

func TestAuthService_UnknownUserStillComparesHash(t *testing.T) {
	mockRepo := new(mocks.MockUserRepository)
	hasher := &countingHasher{PasswordHasher: NewBcryptHasher(bcrypt.MinCost)}
	svc := NewAuthService(mockRepo, hasher, "test-secret", time.Hour)
	ctx := context.TODO()

	mockRepo.On("GetUserByUsername", ctx, "ghost").Return(nil, repository.ErrUserNotFound).Once()
	mockRepo.On("GetUserByUsername", ctx, "admin").Return(adminUser(t), nil).Once()

	_, err := svc.Check(ctx, "ghost", "admin")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	require.Len(t, hasher.verified, 1)
	assert.NotEmpty(t, hasher.verified[0])

	_, err = svc.Check(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Len(t, hasher.verified, 2)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Revoke(t *testing.T) {
	mockRepo := new(mocks.MockUserRepository)
	svc := newTestAuthService(mockRepo)
	ctx := context.TODO()
	login := func(t *testing.T) string {
		mockRepo.On("GetUserByUsername", ctx, "admin").Return(adminUser(t), nil).Once()
		resp, err := svc.Login(ctx, domain.LoginRequest{Username: "admin", Password: "admin"})
		require.NoError(t, err)
		return resp.Token
	}

	t.Run("Revoked token is rejected, others stay valid", func(t *testing.T) {
		first, second := login(t), login(t)

		require.NoError(t, svc.Revoke(first))

		_, err := svc.ParseToken(first)
		assert.ErrorIs(t, err, ErrInvalidToken)
		_, err = svc.ParseToken(second)
		assert.NoError(t, err)
	})

	t.Run("Invalid token cannot be revoked", func(t *testing.T) {
		assert.ErrorIs(t, svc.Revoke("not-a-jwt"), ErrInvalidToken)
		assert.ErrorIs(t, svc.Revoke(""), ErrInvalidToken)
	})

	t.Run("Expired entries are pruned", func(t *testing.T) {
		stale := login(t)
		require.NoError(t, svc.Revoke(stale))

		svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		defer func() { svc.now = time.Now }()
		mockRepo.On("GetUserByUsername", ctx, "admin").Return(adminUser(t), nil).Once()
		resp, err := svc.Login(ctx, domain.LoginRequest{Username: "admin", Password: "admin"})
		require.NoError(t, err)
		require.NoError(t, svc.Revoke(resp.Token))

		svc.mu.Lock()
		defer svc.mu.Unlock()
		assert.Len(t, svc.revoked, 1)
	})
	mockRepo.AssertExpectations(t)
}
