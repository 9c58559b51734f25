package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/ridloal/smartshop-pos/internal/platform/apperr"
	"github.com/ridloal/smartshop-pos/internal/platform/logger"
	"github.com/ridloal/smartshop-pos/internal/user/domain"
	"github.com/ridloal/smartshop-pos/internal/user/repository"
)

var (
	// ErrInvalidCredentials is returned for an unknown username and for a wrong
	// password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

type AuthService interface {
	Check(ctx context.Context, username, password string) (string, error)
	Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
	ParseToken(token string) (*domain.Session, error)
	// Revoke rejects token for the rest of its lifetime.
	Revoke(token string) error
	SeedDefaultUser(ctx context.Context, username, password, role string) error
}

type sessionClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type authService struct {
	repo      repository.UserRepository
	hasher    PasswordHasher
	secretKey []byte
	tokenTTL  time.Duration
	now       func() time.Time

	// dummyDigest is verified against when the username is unknown so both
	// rejections cost one hash comparison.
	dummyDigest string

	mu      sync.Mutex
	revoked map[string]time.Time // token id -> expiry
}

func NewAuthService(repo repository.UserRepository, hasher PasswordHasher, secretKey string, tokenTTL time.Duration) AuthService {
	dummyDigest, err := hasher.Hash("smartshop-unknown-user")
	if err != nil {
		logger.Error("NewAuthService: failed to prepare dummy digest", err)
	}
	return &authService{
		repo:        repo,
		hasher:      hasher,
		secretKey:   []byte(secretKey),
		tokenTTL:    tokenTTL,
		now:         time.Now,
		dummyDigest: dummyDigest,
		revoked:     make(map[string]time.Time),
	}
}

// Check returns the role of the matching user.
func (s *authService) Check(ctx context.Context, username, password string) (string, error) {
	user, err := s.authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

func (s *authService) authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.hasher.Verify(s.dummyDigest, password)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.hasher.Verify(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	user, err := s.authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.tokenTTL)
	claims := sessionClaims{
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		logger.Error("Login: failed to sign token", err)
		return nil, fmt.Errorf("could not generate token: %w", err)
	}

	user.PasswordHash = ""
	return &domain.LoginResponse{
		User:      *user,
		Token:     tokenString,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *authService) parseClaims(tokenString string) (*sessionClaims, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || claims.Username == "" || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *authService) ParseToken(tokenString string) (*domain.Session, error) {
	claims, err := s.parseClaims(tokenString)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	_, revoked := s.revoked[claims.ID]
	s.mu.Unlock()
	if revoked {
		return nil, ErrInvalidToken
	}
	return &domain.Session{Username: claims.Username, Role: claims.Role}, nil
}

func (s *authService) Revoke(tokenString string) error {
	claims, err := s.parseClaims(tokenString)
	if err != nil {
		return err
	}

	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, expiresAt := range s.revoked {
		if !expiresAt.After(now) {
			delete(s.revoked, id)
		}
	}
	s.revoked[claims.ID] = claims.ExpiresAt.Time
	return nil
}

// SeedDefaultUser creates the first-run account. An existing user with the same
// name is left untouched.
func (s *authService) SeedDefaultUser(ctx context.Context, username, password, role string) error {
	if username == "" {
		return apperr.New(apperr.ErrValidation, "default username must not be empty")
	}
	digest, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("could not hash default password: %w", err)
	}

	err = s.repo.CreateUser(ctx, &domain.User{Username: username, PasswordHash: digest, Role: role})
	if errors.Is(err, repository.ErrUserConflict) {
		return nil
	}
	if err != nil {
		return err
	}
	logger.Info("Seeded default user", map[string]interface{}{"username": username, "role": role})
	return nil
}
