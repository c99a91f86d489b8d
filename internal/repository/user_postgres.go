package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/futig/docqa-backend/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, username, email, password_hash, api_token, created_at`

// UserRepository defines the interface for user persistence
type UserRepository interface {
	Create(ctx context.Context, user entity.User) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByToken(ctx context.Context, token string) (*entity.User, error)
}

var _ UserRepository = &UserPostgres{}

// UserPostgres implements UserRepository using PostgreSQL
type UserPostgres struct {
	db DBTX
}

func NewUserPostgres(db *pgxpool.Pool) *UserPostgres {
	return &UserPostgres{db: db}
}

func (r *UserPostgres) Create(ctx context.Context, user entity.User) (*entity.User, error) {
	userID, err := toPgUUID(user.ID)
	if err != nil {
		return nil, fmt.Errorf("parse user ID: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO users (id, username, email, password_hash, api_token)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		userID, user.Username, user.Email, user.PasswordHash, user.APIToken,
	)

	result, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, entity.ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return toEntityUser(result), nil
}

func (r *UserPostgres) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)

	result, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}

	return toEntityUser(result), nil
}

func (r *UserPostgres) GetByToken(ctx context.Context, token string) (*entity.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE api_token = $1`, token)

	result, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by token: %w", err)
	}

	return toEntityUser(result), nil
}
