package cart

import (
	"context"

	"github.com/angelmondragon/littlelemon-backend/pkg/db/models"
	"gorm.io/gorm"
)

// CartRepository defines the persistence surface required by the cart service.
type CartRepository interface {
	WithTx(tx *gorm.DB) CartRepository
	LockOwner(ctx context.Context, userID uint) error
	FindMenuItem(ctx context.Context, id uint) (*models.MenuItem, error)
	ListByUser(ctx context.Context, userID uint) ([]models.CartLine, error)
	Create(ctx context.Context, line *models.CartLine) error
	DeleteByUser(ctx context.Context, userID uint) (int64, error)
	DeleteByIDs(ctx context.Context, userID uint, ids []uint) (int64, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}
