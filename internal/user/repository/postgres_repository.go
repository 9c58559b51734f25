package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ridloal/smartshop-pos/internal/platform/apperr"
	"github.com/ridloal/smartshop-pos/internal/platform/database"
	"github.com/ridloal/smartshop-pos/internal/platform/logger"
	"github.com/ridloal/smartshop-pos/internal/user/domain"
)

var (
	ErrUserNotFound = apperr.New(apperr.ErrNotFound, "user not found")
	ErrUserConflict = apperr.New(apperr.ErrConflict, "user with this username already exists")
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

type postgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

func (r *postgresUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (username, password_hash, role) VALUES ($1, $2, $3) RETURNING id`

	err := r.db.QueryRowContext(ctx, query, user.Username, user.PasswordHash, user.Role).Scan(&user.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrUserConflict
		}
		logger.Error("CreateUser: failed to insert user", err)
		return apperr.Store("create user", err)
	}
	return nil
}

func (r *postgresUserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT id, username, password_hash, role FROM users WHERE username = $1`
	user := &domain.User{}

	err := r.db.QueryRowContext(ctx, query, username).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		logger.Error("GetUserByUsername: query failed", err)
		return nil, apperr.Store("get user", err)
	}
	return user, nil
}
