package ports

import (
	"context"

	"github.com/ezwallet/wallet-system/internal/core/domain"
)

// GroupRepository supplies the member email set for a named group. Misses
// are reported as domain.ErrGroupNotFound.
type GroupRepository interface {
	FindByName(ctx context.Context, name string) (*domain.Group, error)
}
