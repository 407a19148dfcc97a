package ports

import (
	"context"

	"github.com/ezwallet/wallet-system/internal/core/domain"
)

// UserRepository defines the credential store consumed by the session
// service. Lookup misses are reported as domain.ErrUserNotFound; any other
// failure is a store fault and propagates untouched.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByRefreshToken(ctx context.Context, refreshToken string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Save(ctx context.Context, user *domain.User) error
	List(ctx context.Context) ([]*domain.User, error)
}
