package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/futig/docqa-backend/internal/entity"
	"github.com/futig/docqa-backend/internal/pkg/logger"
	"github.com/futig/docqa-backend/internal/pkg/response"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}

type userContextKey struct{}

// Auth resolves "Authorization: Token <t>" or "Authorization: Bearer <t>"
// into the current user. Requests without a valid token get 401.
func Auth(auth Authenticator) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			user, err := auth.Authenticate(ctx, tokenFromHeader(r.Header.Get("Authorization")))
			if err != nil {
				if errors.Is(err, entity.ErrUnauthorized) {
					ctxzap.Info(ctx, "unauthorized request", zap.String("path", r.URL.Path))
					response.Error(w, http.StatusUnauthorized, err.Error())
					return
				}
				ctxzap.Error(ctx, "failed to authenticate request", logger.ErrorText(err))
				response.Error(w, http.StatusInternalServerError, "internal server error")
				return
			}

			ctx = logger.AddFields(WithUser(ctx, user), zap.String("user_id", user.ID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithUser stores the authenticated user in ctx
func WithUser(ctx context.Context, user *entity.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext returns the user stored by Auth
func UserFromContext(ctx context.Context) (*entity.User, bool) {
	user, ok := ctx.Value(userContextKey{}).(*entity.User)
	return user, ok && user != nil
}

func tokenFromHeader(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok {
		return ""
	}
	if !strings.EqualFold(scheme, "Token") && !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
