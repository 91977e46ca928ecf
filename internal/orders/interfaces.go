package orders

import (
	"context"

	"github.com/angelmondragon/littlelemon-backend/pkg/db/models"
	"github.com/angelmondragon/littlelemon-backend/pkg/enums"
	"github.com/angelmondragon/littlelemon-backend/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderRepository defines persistence operations for orders and their items.
type OrderRepository interface {
	WithTx(tx *gorm.DB) OrderRepository
	CreateOrder(ctx context.Context, order *models.Order) error
	CreateItems(ctx context.Context, items []models.OrderItem) error
	FindOrder(ctx context.Context, id uint) (*models.Order, error)
	ListItems(ctx context.Context, scope ItemScope, filters ItemFilters, order []string, params pagination.Params) ([]models.OrderItem, int64, error)
	UpdateOrder(ctx context.Context, id uint, updates map[string]any) error
	DeleteOrder(ctx context.Context, id uint) (int64, error)
}

// ItemScope restricts which orders' items a query may return. A zero scope
// returns items across every order.
type ItemScope struct {
	OwnerID *uint
	CrewID  *uint
}

// crewDirectory answers whether a user belongs to a staff group.
type crewDirectory interface {
	IsMember(ctx context.Context, userID uint, group enums.Group) (bool, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type placementRecorder interface {
	ObservePlaced(total decimal.Decimal, lineCount int)
}
