package orders

import (
	"github.com/angelmondragon/littlelemon-backend/pkg/db/models"
)

const dateLayout = "2006-01-02"

// OrderDTO is the public order shape. Money renders with two decimals.
type OrderDTO struct {
	ID           uint           `json:"id"`
	User         uint           `json:"user"`
	DeliveryCrew *uint          `json:"delivery_crew"`
	Status       int            `json:"status"`
	Total        string         `json:"total"`
	Date         string         `json:"date"`
	Items        []OrderItemDTO `json:"items"`
}

// OrderItemDTO is one frozen line of a placed order.
type OrderItemDTO struct {
	ID        uint   `json:"id"`
	Order     uint   `json:"order"`
	MenuItem  uint   `json:"menuitem"`
	Title     string `json:"title,omitempty"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Price     string `json:"price"`
}

const placedMessage = "Order placed successfully"

// PlacedOrder is the body returned by POST /orders.
type PlacedOrder struct {
	Message string `json:"message"`
	OrderID uint   `json:"order_id"`
}

// Placed builds the confirmation body for a freshly created order.
func Placed(order *OrderDTO) PlacedOrder {
	return PlacedOrder{Message: placedMessage, OrderID: order.ID}
}

// ItemFilters narrows ListOrderItems.
type ItemFilters struct {
	// MenuItem matches the menu item title exactly.
	MenuItem string
	OrderID  *uint
	Search   string
	Ordering string
}

// UpdateOrderInput is the body of PUT/PATCH /orders/{id}.
type UpdateOrderInput struct {
	DeliveryCrew *uint `json:"delivery_crew"`
	Status       *int  `json:"status"`
}

func orderFromModel(m models.Order) OrderDTO {
	dto := OrderDTO{
		ID:           m.ID,
		User:         m.UserID,
		DeliveryCrew: m.DeliveryCrewID,
		Status:       int(m.Status),
		Total:        m.Total.StringFixed(2),
		Date:         m.Date.Format(dateLayout),
		Items:        make([]OrderItemDTO, 0, len(m.Items)),
	}
	for _, item := range m.Items {
		dto.Items = append(dto.Items, itemFromModel(item))
	}
	return dto
}

func itemFromModel(m models.OrderItem) OrderItemDTO {
	dto := OrderItemDTO{
		ID:        m.ID,
		Order:     m.OrderID,
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

func itemsFromModels(items []models.OrderItem) []OrderItemDTO {
	out := make([]OrderItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, itemFromModel(item))
	}
	return out
}
