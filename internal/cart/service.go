package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/littlelemon-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/littlelemon-backend/pkg/errors"
	"github.com/angelmondragon/littlelemon-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service exposes a customer's cart.
type Service interface {
	ListCart(ctx context.Context, userID uint) ([]CartLineDTO, error)
	AddToCart(ctx context.Context, userID uint, input AddToCartInput) (*CartLineDTO, error)
	ClearCart(ctx context.Context, userID uint) (int64, error)
}

type service struct {
	repo CartRepository
	tx   txRunner
	logg *logger.Logger
}

// NewService builds a cart service backed by the provided stack.
func NewService(repo CartRepository, tx txRunner, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, tx: tx, logg: logg}, nil
}

func (s *service) ListCart(ctx context.Context, userID uint) ([]CartLineDTO, error) {
	lines, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list cart")
	}
	out := make([]CartLineDTO, 0, len(lines))
	for _, line := range lines {
		out = append(out, lineFromModel(line))
	}
	return out, nil
}

// AddToCart snapshots the menu item's current price into a new line. An
// existing line for the same item is left alone; a second line is created.
func (s *service) AddToCart(ctx context.Context, userID uint, input AddToCartInput) (*CartLineDTO, error) {
	if input.MenuItem == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "menuitem is required")
	}
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive integer")
	}
	if input.Quantity > MaxQuantity {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity is too large")
	}

	var line *models.CartLine
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.LockOwner(ctx, userID); err != nil {
			return notFoundOr(err, "user not found", "lock cart owner")
		}
		item, err := repo.FindMenuItem(ctx, input.MenuItem)
		if err != nil {
			return notFoundOr(err, "menu item not found", "load menu item")
		}

		line = &models.CartLine{
			UserID:     userID,
			MenuItemID: item.ID,
			Quantity:   input.Quantity,
			UnitPrice:  item.Price,
			Price:      item.Price.Mul(decimal.NewFromInt(int64(input.Quantity))),
		}
		if err := repo.Create(ctx, line); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create cart line")
		}
		line.MenuItem = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	dto := lineFromModel(*line)
	return &dto, nil
}

// ClearCart deletes all of the user's lines. Clearing an empty cart is not an error.
func (s *service) ClearCart(ctx context.Context, userID uint) (int64, error) {
	deleted, err := s.repo.DeleteByUser(ctx, userID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
	}
	s.logg.Info(s.logg.WithField(ctx, "deleted", deleted), "cart.cleared")
	return deleted, nil
}

func notFoundOr(err error, notFound, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, notFound)
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, action)
}
