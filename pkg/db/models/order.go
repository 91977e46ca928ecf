package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/littlelemon-backend/pkg/enums"
)

// Order is a placed purchase. Total equals the sum of its items' prices.
type Order struct {
	ID             uint              `gorm:"column:id;primaryKey;autoIncrement"`
	UserID         uint              `gorm:"column:user_id;not null;index"`
	DeliveryCrewID *uint             `gorm:"column:delivery_crew_id;index"`
	Status         enums.OrderStatus `gorm:"column:status;type:smallint;not null;index"`
	Total          decimal.Decimal   `gorm:"column:total;type:numeric(16,2);not null"`
	Date           time.Time         `gorm:"column:date;type:date;not null;index"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time         `gorm:"column:updated_at;autoUpdateTime"`
	Items          []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// AssignedTo reports whether the order's delivery crew is userID.
func (o Order) AssignedTo(userID uint) bool {
	return o.DeliveryCrewID != nil && *o.DeliveryCrewID == userID
}
