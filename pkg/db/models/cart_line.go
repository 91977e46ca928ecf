package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is a pending selection; Price is Quantity times UnitPrice at write time.
type CartLine struct {
	ID         uint            `gorm:"column:id;primaryKey;autoIncrement"`
	UserID     uint            `gorm:"column:user_id;not null;index"`
	MenuItemID uint            `gorm:"column:menuitem_id;not null"`
	Quantity   int             `gorm:"column:quantity;type:smallint;not null"`
	UnitPrice  decimal.Decimal `gorm:"column:unit_price;type:numeric(6,2);not null"`
	Price      decimal.Decimal `gorm:"column:price;type:numeric(14,2);not null"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
	MenuItem   *MenuItem       `gorm:"foreignKey:MenuItemID;constraint:OnDelete:CASCADE"`
}
