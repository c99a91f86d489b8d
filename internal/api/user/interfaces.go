package user

import (
	"context"

	"github.com/futig/docqa-backend/internal/entity"
)

type UserUsecase interface {
	Register(ctx context.Context, req *entity.RegisterRequest) (*entity.User, error)
	IssueToken(ctx context.Context, req *entity.TokenRequest) (string, error)
}
