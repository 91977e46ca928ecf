package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/angelmondragon/littlelemon-backend/internal/cart"
	"github.com/angelmondragon/littlelemon-backend/pkg/auth"
	"github.com/angelmondragon/littlelemon-backend/pkg/db/models"
	"github.com/angelmondragon/littlelemon-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/littlelemon-backend/pkg/errors"
	"github.com/angelmondragon/littlelemon-backend/pkg/logger"
	"github.com/angelmondragon/littlelemon-backend/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var itemOrdering = map[string]string{
	"id":         "order_items.id",
	"order":      "order_items.order_id",
	"menuitem":   "order_items.menuitem_id",
	"quantity":   "order_items.quantity",
	"unit_price": "order_items.unit_price",
	"price":      "order_items.price",
}

// Service places orders from carts and enforces who may see or change them.
type Service interface {
	PlaceOrder(ctx context.Context, userID uint) (*OrderDTO, error)
	ListOrderItems(ctx context.Context, p auth.Principal, filters ItemFilters, params pagination.Params) (pagination.Page[OrderItemDTO], error)
	GetOrder(ctx context.Context, p auth.Principal, id uint) (*OrderDTO, error)
	UpdateOrder(ctx context.Context, p auth.Principal, id uint, input UpdateOrderInput) (*OrderDTO, error)
	DeleteOrder(ctx context.Context, p auth.Principal, id uint) error
}

// ServiceParams groups the collaborators of the order service.
type ServiceParams struct {
	Repo    OrderRepository
	Carts   cart.CartRepository
	Crew    crewDirectory
	Tx      txRunner
	Metrics placementRecorder
	Logger  *logger.Logger
	Now     func() time.Time
}

type service struct {
	repo    OrderRepository
	carts   cart.CartRepository
	crew    crewDirectory
	tx      txRunner
	metrics placementRecorder
	logg    *logger.Logger
	now     func() time.Time
}

// NewService builds an order service backed by the provided stack.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if params.Carts == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if params.Crew == nil {
		return nil, fmt.Errorf("crew directory required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:    params.Repo,
		carts:   params.Carts,
		crew:    params.Crew,
		tx:      params.Tx,
		metrics: params.Metrics,
		logg:    params.Logger,
		now:     now,
	}, nil
}

// PlaceOrder drains the user's cart into a new pending order. The owner row
// is locked for the whole transaction so concurrent cart writes wait for it.
// An empty cart still yields an order with a zero total.
func (s *service) PlaceOrder(ctx context.Context, userID uint) (*OrderDTO, error) {
	var order *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		carts := s.carts.WithTx(tx)
		repo := s.repo.WithTx(tx)

		if err := carts.LockOwner(ctx, userID); err != nil {
			return notFoundOr(err, "user not found", "lock cart owner")
		}
		lines, err := carts.ListByUser(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "read cart")
		}

		total := decimal.Zero
		for _, line := range lines {
			total = total.Add(line.Price)
		}
		order = &models.Order{
			UserID: userID,
			Status: enums.OrderStatusPending,
			Total:  total,
			Date:   today(s.now()),
		}
		if err := repo.CreateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
		}

		items := make([]models.OrderItem, 0, len(lines))
		drained := make([]uint, 0, len(lines))
		for _, line := range lines {
			items = append(items, models.OrderItem{
				OrderID:    order.ID,
				MenuItemID: line.MenuItemID,
				Quantity:   line.Quantity,
				UnitPrice:  line.UnitPrice,
				Price:      line.Price,
			})
			drained = append(drained, line.ID)
		}
		if err := repo.CreateItems(ctx, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order items")
		}
		if _, err := carts.DeleteByIDs(ctx, userID, drained); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "drain cart")
		}
		order.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.ObservePlaced(order.Total, len(order.Items))
	}
	logCtx := s.logg.WithFields(ctx, map[string]any{
		"order_id": order.ID,
		"total":    order.Total.StringFixed(2),
		"items":    len(order.Items),
	})
	s.logg.Info(logCtx, "order.placed")

	dto := orderFromModel(*order)
	return &dto, nil
}

// ListOrderItems pages through the order items the principal may see:
// everything for managers, items of assigned orders for delivery crew and
// the principal's own orders otherwise.
func (s *service) ListOrderItems(ctx context.Context, p auth.Principal, filters ItemFilters, params pagination.Params) (pagination.Page[OrderItemDTO], error) {
	order, err := pagination.ParseOrdering(filters.Ordering, itemOrdering)
	if err != nil {
		return pagination.Page[OrderItemDTO]{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, err.Error())
	}
	items, total, err := s.repo.ListItems(ctx, scopeFor(p), filters, order, params)
	if err != nil {
		return pagination.Page[OrderItemDTO]{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list order items")
	}
	return pagination.NewPage(params, total, itemsFromModels(items)), nil
}

func scopeFor(p auth.Principal) ItemScope {
	userID := p.UserID
	switch {
	case p.IsManager():
		return ItemScope{}
	case p.IsDeliveryCrew():
		return ItemScope{CrewID: &userID}
	default:
		return ItemScope{OwnerID: &userID}
	}
}

func (s *service) GetOrder(ctx context.Context, p auth.Principal, id uint) (*OrderDTO, error) {
	order, err := s.repo.FindOrder(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "order not found", "load order")
	}
	if err := canView(p, order); err != nil {
		return nil, err
	}
	dto := orderFromModel(*order)
	return &dto, nil
}

func canView(p auth.Principal, order *models.Order) error {
	switch {
	case p.IsManager():
		return nil
	case p.IsDeliveryCrew():
		if !order.AssignedTo(p.UserID) {
			return pkgerrors.New(pkgerrors.CodeForbidden, "assigned to another delivery crew")
		}
		return nil
	default:
		if order.UserID != p.UserID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "cannot view someone else's order")
		}
		return nil
	}
}

// UpdateOrder sets the delivery status and, for managers, the assigned crew.
// Customers are refused outright; staff see 404 for a missing order before
// any crew or payload check, matching GetOrder.
func (s *service) UpdateOrder(ctx context.Context, p auth.Principal, id uint, input UpdateOrderInput) (*OrderDTO, error) {
	if !p.IsManager() && !p.IsDeliveryCrew() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "customers cannot update orders")
	}

	order, err := s.repo.FindOrder(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "order not found", "load order")
	}
	if p.IsDeliveryCrew() {
		if input.DeliveryCrew != nil {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "delivery crew cannot reassign orders")
		}
		if !order.AssignedTo(p.UserID) {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "assigned to another delivery crew")
		}
	}

	if input.Status == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "status is required").
			WithDetails(map[string]string{"status": "is required"})
	}
	status, err := enums.ParseOrderStatus(*input.Status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "status must be 0 or 1").
			WithDetails(map[string]string{"status": "must be 0 or 1"})
	}

	updates := map[string]any{"status": int(status)}
	if input.DeliveryCrew != nil {
		ok, err := s.crew.IsMember(ctx, *input.DeliveryCrew, enums.GroupDeliveryCrew)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check delivery crew")
		}
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid delivery crew id").
				WithDetails(map[string]string{"delivery_crew": "must reference a delivery crew member"})
		}
		updates["delivery_crew_id"] = *input.DeliveryCrew
	}
	if err := s.repo.UpdateOrder(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update order")
	}

	updated, err := s.repo.FindOrder(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "order not found", "reload order")
	}
	logCtx := s.logg.WithFields(ctx, map[string]any{
		"order_id": id,
		"status":   status.String(),
	})
	s.logg.Info(logCtx, "order.updated")

	dto := orderFromModel(*updated)
	return &dto, nil
}

// DeleteOrder removes an order and its items. Managers only.
func (s *service) DeleteOrder(ctx context.Context, p auth.Principal, id uint) error {
	if !p.IsManager() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only managers can delete orders")
	}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		deleted, err := s.repo.WithTx(tx).DeleteOrder(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete order")
		}
		if deleted == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logg.Info(s.logg.WithField(ctx, "order_id", id), "order.deleted")
	return nil
}

func today(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func notFoundOr(err error, notFound, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, notFound)
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, action)
}
