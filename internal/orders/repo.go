package orders

import (
	"context"
	"strings"

	"github.com/angelmondragon/littlelemon-backend/pkg/db/models"
	"github.com/angelmondragon/littlelemon-backend/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists orders and order items.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) OrderRepository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// CreateOrder inserts the order row only; items are written separately.
func (r *Repository) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(order).Error
}

// CreateItems bulk inserts order items.
func (r *Repository) CreateItems(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(&items).Error
}

// FindOrder loads an order and its items.
func (r *Repository) FindOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.id") }).
		Preload("Items.MenuItem").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListItems returns one page of visible order items plus the unpaged count.
func (r *Repository) ListItems(ctx context.Context, scope ItemScope, filters ItemFilters, order []string, params pagination.Params) ([]models.OrderItem, int64, error) {
	var total int64
	if err := r.filtered(ctx, scope, filters).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.filtered(ctx, scope, filters).Select("order_items.*").Preload("MenuItem")
	for _, by := range order {
		query = query.Order(by)
	}
	var items []models.OrderItem
	err := query.Order("order_items.id").
		Offset(params.Offset()).
		Limit(params.Limit()).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *Repository) filtered(ctx context.Context, scope ItemScope, filters ItemFilters) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.OrderItem{})
	if scope.OwnerID != nil {
		query = query.Where("order_items.order_id IN (?)",
			r.db.Model(&models.Order{}).Select("id").Where("user_id = ?", *scope.OwnerID))
	}
	if scope.CrewID != nil {
		query = query.Where("order_items.order_id IN (?)",
			r.db.Model(&models.Order{}).Select("id").Where("delivery_crew_id = ?", *scope.CrewID))
	}
	if filters.OrderID != nil {
		query = query.Where("order_items.order_id = ?", *filters.OrderID)
	}
	if filters.MenuItem != "" || filters.Search != "" {
		query = query.Joins("JOIN menu_items ON menu_items.id = order_items.menuitem_id")
	}
	if filters.MenuItem != "" {
		query = query.Where("menu_items.title = ?", filters.MenuItem)
	}
	if filters.Search != "" {
		query = query.Where(`LOWER(menu_items.title) LIKE ? ESCAPE '\'`, "%"+pagination.EscapeLike(strings.ToLower(filters.Search))+"%")
	}
	return query
}

// UpdateOrder applies column updates to the order.
func (r *Repository) UpdateOrder(ctx context.Context, id uint, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// DeleteOrder removes the order's items and then the order itself.
// Callers run it inside a transaction.
func (r *Repository) DeleteOrder(ctx context.Context, id uint) (int64, error) {
	if err := r.db.WithContext(ctx).Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
		return 0, err
	}
	res := r.db.WithContext(ctx).Delete(&models.Order{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
