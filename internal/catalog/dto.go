package catalog

import (
	"github.com/angelmondragon/littlelemon-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

// MenuItemDTO is the public menu item shape. Prices render with two decimals.
type MenuItemDTO struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Price    string `json:"price"`
	Featured bool   `json:"featured"`
	Category uint   `json:"category"`
}

// CategoryDTO is the public category shape.
type CategoryDTO struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

// MenuItemFilters narrows ListMenuItems. Zero values mean "no filter".
type MenuItemFilters struct {
	Category string
	Featured *bool
	ToPrice  *decimal.Decimal
	Search   string
	Ordering string
}

// CreateMenuItemInput is the body of POST /menu-items.
type CreateMenuItemInput struct {
	Title    string          `json:"title" validate:"required,max=255"`
	Price    decimal.Decimal `json:"price" validate:"gt=0,lt=10000"`
	Featured bool            `json:"featured"`
	Category uint            `json:"category" validate:"required"`
}

// UpdateMenuItemInput is the body of PUT/PATCH /menu-items/{id}; absent
// fields are left unchanged.
type UpdateMenuItemInput struct {
	Title    *string          `json:"title" validate:"omitempty,min=1,max=255"`
	Price    *decimal.Decimal `json:"price" validate:"omitempty,gt=0,lt=10000"`
	Featured *bool            `json:"featured"`
	Category *uint            `json:"category" validate:"omitempty,gt=0"`
}

func (in UpdateMenuItemInput) isEmpty() bool {
	return in.Title == nil && in.Price == nil && in.Featured == nil && in.Category == nil
}

// CreateCategoryInput is the body of POST /category.
type CreateCategoryInput struct {
	Title string `json:"title" validate:"required,max=255"`
}

func menuItemFromModel(m models.MenuItem) MenuItemDTO {
	return MenuItemDTO{
		ID:       m.ID,
		Title:    m.Title,
		Price:    m.Price.StringFixed(2),
		Featured: m.Featured,
		Category: m.CategoryID,
	}
}

func menuItemsFromModels(list []models.MenuItem) []MenuItemDTO {
	out := make([]MenuItemDTO, 0, len(list))
	for _, m := range list {
		out = append(out, menuItemFromModel(m))
	}
	return out
}

func categoryFromModel(c models.Category) CategoryDTO {
	return CategoryDTO{ID: c.ID, Title: c.Title}
}
