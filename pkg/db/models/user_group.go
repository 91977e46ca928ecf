package models

import (
	"time"

	"github.com/angelmondragon/littlelemon-backend/pkg/enums"
)

// UserGroup records that a user belongs to a staff group.
type UserGroup struct {
	UserID    uint        `gorm:"column:user_id;primaryKey;autoIncrement:false"`
	Group     enums.Group `gorm:"column:group_name;type:varchar(32);primaryKey"`
	CreatedAt time.Time   `gorm:"column:created_at;autoCreateTime"`
}
