package ports

import (
	"context"

	"github.com/ezwallet/wallet-system/internal/core/domain"
)

// SessionService defines registration and the session lifecycle.
type SessionService interface {
	Register(ctx context.Context, username, email, password string) error
	RegisterAdmin(ctx context.Context, username, email, password string) error
	Login(ctx context.Context, email, password string) (*domain.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}
