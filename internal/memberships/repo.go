package memberships

import (
	"context"
	"fmt"

	"github.com/angelmondragon/littlelemon-backend/pkg/db/models"
	"github.com/angelmondragon/littlelemon-backend/pkg/enums"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists staff group membership.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListGroups returns every group the user belongs to.
func (r *Repository) ListGroups(ctx context.Context, userID uint) ([]enums.Group, error) {
	var groups []enums.Group
	err := r.db.WithContext(ctx).
		Model(&models.UserGroup{}).
		Where("user_id = ?", userID).
		Order("group_name").
		Pluck("group_name", &groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

// IsMember reports whether the user belongs to group.
func (r *Repository) IsMember(ctx context.Context, userID uint, group enums.Group) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.UserGroup{}).
		Where("user_id = ? AND group_name = ?", userID, group).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListUsers returns the members of group ordered by id.
func (r *Repository) ListUsers(ctx context.Context, group enums.Group) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Joins("JOIN user_groups ON user_groups.user_id = users.id").
		Where("user_groups.group_name = ?", group).
		Order("users.id").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Add puts the user in group. Adding an existing member is a no-op.
func (r *Repository) Add(ctx context.Context, userID uint, group enums.Group) error {
	if !group.IsValid() {
		return fmt.Errorf("invalid group %q", group)
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.UserGroup{UserID: userID, Group: group}).Error
}

// Remove takes the user out of group. Removing a non-member is a no-op.
func (r *Repository) Remove(ctx context.Context, userID uint, group enums.Group) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND group_name = ?", userID, group).
		Delete(&models.UserGroup{}).Error
}
