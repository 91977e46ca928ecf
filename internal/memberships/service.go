package memberships

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/littlelemon-backend/internal/users"
	"github.com/angelmondragon/littlelemon-backend/pkg/db/models"
	"github.com/angelmondragon/littlelemon-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/littlelemon-backend/pkg/errors"
	"github.com/angelmondragon/littlelemon-backend/pkg/logger"
	"gorm.io/gorm"
)

type membershipStore interface {
	IsMember(ctx context.Context, userID uint, group enums.Group) (bool, error)
	ListUsers(ctx context.Context, group enums.Group) ([]models.User, error)
	Add(ctx context.Context, userID uint, group enums.Group) error
	Remove(ctx context.Context, userID uint, group enums.Group) error
}

type userLookup interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

// Service manages who sits in the Manager and delivery crew groups.
type Service interface {
	ListMembers(ctx context.Context, group enums.Group) ([]users.UserDTO, error)
	AddMember(ctx context.Context, group enums.Group, username string) (*users.UserDTO, error)
	GetMember(ctx context.Context, group enums.Group, userID uint) (*users.UserDTO, error)
	RemoveMember(ctx context.Context, group enums.Group, userID uint) error
}

type service struct {
	store membershipStore
	users userLookup
	logg  *logger.Logger
}

// NewService builds the role management service.
func NewService(store membershipStore, users userLookup, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("membership store required")
	}
	if users == nil {
		return nil, fmt.Errorf("user lookup required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{store: store, users: users, logg: logg}, nil
}

func (s *service) ListMembers(ctx context.Context, group enums.Group) ([]users.UserDTO, error) {
	if !group.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "group not found")
	}
	list, err := s.store.ListUsers(ctx, group)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list group members")
	}
	return users.FromModels(list), nil
}

func (s *service) AddMember(ctx context.Context, group enums.Group, username string) (*users.UserDTO, error) {
	if !group.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "group not found")
	}
	if username == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, mapUserError(err, "load user")
	}
	if err := s.store.Add(ctx, user.ID, group); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "add group member")
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{"group": group.String(), "member_id": user.ID}), "group.member_added")
	return users.FromModel(user), nil
}

func (s *service) GetMember(ctx context.Context, group enums.Group, userID uint) (*users.UserDTO, error) {
	if !group.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "group not found")
	}
	member, err := s.store.IsMember(ctx, userID, group)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check group membership")
	}
	if !member {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user is not in this group")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, mapUserError(err, "load user")
	}
	return users.FromModel(user), nil
}

func (s *service) RemoveMember(ctx context.Context, group enums.Group, userID uint) error {
	if !group.IsValid() {
		return pkgerrors.New(pkgerrors.CodeNotFound, "group not found")
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return mapUserError(err, "load user")
	}
	if err := s.store.Remove(ctx, userID, group); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove group member")
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{"group": group.String(), "member_id": userID}), "group.member_removed")
	return nil
}

func mapUserError(err error, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, action)
}
