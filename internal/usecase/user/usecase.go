package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/futig/docqa-backend/internal/config"
	"github.com/futig/docqa-backend/internal/entity"
	"github.com/futig/docqa-backend/internal/pkg/validator"
	"github.com/futig/docqa-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserUsecase implements registration, token issuing and token authentication
type UserUsecase struct {
	userRepo   repository.UserRepository
	validator  *validator.Validator
	principals *cache.Cache
	logger     *zap.Logger
}

// NewUsecase creates a new user use case
func NewUsecase(
	userRepo repository.UserRepository,
	validator *validator.Validator,
	cfg config.AuthConfig,
	logger *zap.Logger,
) *UserUsecase {
	return &UserUsecase{
		userRepo:   userRepo,
		validator:  validator,
		principals: cache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		logger:     logger,
	}
}

// Register creates a user with a hashed password and a fresh API token
func (uc *UserUsecase) Register(ctx context.Context, req *entity.RegisterRequest) (*entity.User, error) {
	if err := uc.validator.ValidateRegister(req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := uc.userRepo.Create(ctx, entity.User{
		ID:           uuid.New().String(),
		Username:     strings.TrimSpace(req.Username),
		Email:        req.Email,
		PasswordHash: string(hash),
		APIToken:     newToken(),
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	ctxzap.Info(ctx, "user registered",
		zap.String("user_id", user.ID),
		zap.String("username", user.Username),
	)

	return user, nil
}

// IssueToken returns the API token of the user after a password check
func (uc *UserUsecase) IssueToken(ctx context.Context, req *entity.TokenRequest) (string, error) {
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return "", entity.ErrInvalidCredentials
	}

	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return "", entity.ErrInvalidCredentials
		}
		return "", fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		ctxzap.Info(ctx, "token request with wrong password", zap.String("user_id", user.ID))
		return "", entity.ErrInvalidCredentials
	}

	ctxzap.Info(ctx, "token issued", zap.String("user_id", user.ID))

	return user.APIToken, nil
}

// Authenticate resolves an API token into its user. Resolved principals
// are cached for the configured TTL.
func (uc *UserUsecase) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, entity.ErrUnauthorized
	}

	if cached, ok := uc.principals.Get(token); ok {
		return cached.(*entity.User), nil
	}

	user, err := uc.userRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, entity.ErrUnauthorized
		}
		return nil, fmt.Errorf("get user by token: %w", err)
	}

	uc.principals.Set(token, user, cache.DefaultExpiration)

	return user, nil
}

func newToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "") + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
