package models

import "github.com/shopspring/decimal"

// MenuItem is an orderable dish.
type MenuItem struct {
	ID         uint            `gorm:"column:id;primaryKey;autoIncrement"`
	Title      string          `gorm:"column:title;type:varchar(255);not null;index"`
	Price      decimal.Decimal `gorm:"column:price;type:numeric(6,2);not null;index"`
	Featured   bool            `gorm:"column:featured;not null;index"`
	CategoryID uint            `gorm:"column:category_id;not null;index"`
	Category   *Category       `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
}
