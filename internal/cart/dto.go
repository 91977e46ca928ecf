package cart

import "github.com/angelmondragon/littlelemon-backend/pkg/db/models"

// MaxQuantity is the largest quantity a SMALLINT line column holds.
const MaxQuantity = 32767

// AddToCartInput is the body of POST /cart/menu-items.
type AddToCartInput struct {
	MenuItem uint `json:"menuitem" validate:"required"`
	Quantity int  `json:"quantity" validate:"required,min=1,max=32767"`
}

// CartLineDTO is the public cart line shape.
type CartLineDTO struct {
	ID        uint   `json:"id"`
	User      uint   `json:"user"`
	MenuItem  uint   `json:"menuitem"`
	Title     string `json:"title,omitempty"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Price     string `json:"price"`
}

func lineFromModel(m models.CartLine) CartLineDTO {
	dto := CartLineDTO{
		ID:        m.ID,
		User:      m.UserID,
		MenuItem:  m.MenuItemID,
		Quantity:  m.Quantity,
		UnitPrice: m.UnitPrice.StringFixed(2),
		Price:     m.Price.StringFixed(2),
	}
	if m.MenuItem != nil {
		dto.Title = m.MenuItem.Title
	}
	return dto
}
