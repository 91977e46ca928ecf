package models

import "github.com/shopspring/decimal"

// OrderItem is the frozen copy of a cart line inside a placed order.
type OrderItem struct {
	ID         uint            `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID    uint            `gorm:"column:order_id;not null;index"`
	MenuItemID uint            `gorm:"column:menuitem_id;not null;index"`
	Quantity   int             `gorm:"column:quantity;type:smallint;not null"`
	UnitPrice  decimal.Decimal `gorm:"column:unit_price;type:numeric(6,2);not null"`
	Price      decimal.Decimal `gorm:"column:price;type:numeric(14,2);not null"`
	MenuItem   *MenuItem       `gorm:"foreignKey:MenuItemID;constraint:OnDelete:RESTRICT"`
}
