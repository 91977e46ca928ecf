package catalog

import (
	"context"
	"strings"

	"github.com/angelmondragon/littlelemon-backend/pkg/db/models"
	"github.com/angelmondragon/littlelemon-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository persists menu items and categories.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListMenuItems returns one page of filtered menu items plus the unpaged count.
// order holds ready-made ORDER BY clauses; id breaks ties.
func (r *Repository) ListMenuItems(ctx context.Context, filters MenuItemFilters, order []string, params pagination.Params) ([]models.MenuItem, int64, error) {
	var total int64
	if err := r.filtered(ctx, filters).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.filtered(ctx, filters).Select("menu_items.*")
	for _, clause := range order {
		query = query.Order(clause)
	}
	var items []models.MenuItem
	err := query.Order("menu_items.id").
		Offset(params.Offset()).
		Limit(params.Limit()).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *Repository) filtered(ctx context.Context, filters MenuItemFilters) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.MenuItem{})
	if filters.Category != "" {
		query = query.Joins("JOIN categories ON categories.id = menu_items.category_id").
			Where("categories.title = ?", filters.Category)
	}
	if filters.Featured != nil {
		query = query.Where("menu_items.featured = ?", *filters.Featured)
	}
	if filters.ToPrice != nil {
		query = query.Where("menu_items.price <= ?", *filters.ToPrice)
	}
	if filters.Search != "" {
		query = query.Where(`LOWER(menu_items.title) LIKE ? ESCAPE '\'`, "%"+pagination.EscapeLike(strings.ToLower(filters.Search))+"%")
	}
	return query
}

// FindMenuItem loads a menu item by id.
func (r *Repository) FindMenuItem(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateMenuItem inserts item.
func (r *Repository) CreateMenuItem(ctx context.Context, item *models.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// UpdateMenuItem applies column updates to the menu item.
func (r *Repository) UpdateMenuItem(ctx context.Context, id uint, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.MenuItem{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// DeleteMenuItem removes the menu item and reports how many rows went away.
func (r *Repository) DeleteMenuItem(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.MenuItem{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

// ListCategories returns every category ordered by id.
func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// CategoryExists reports whether a category with id exists.
func (r *Repository) CategoryExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// CreateCategory inserts category.
func (r *Repository) CreateCategory(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}
