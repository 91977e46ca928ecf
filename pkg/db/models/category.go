package models

// Category groups menu items.
type Category struct {
	ID    uint   `gorm:"column:id;primaryKey;autoIncrement"`
	Title string `gorm:"column:title;type:varchar(255);not null;uniqueIndex"`
}

func (Category) TableName() string {
	return "categories"
}
