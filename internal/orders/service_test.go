package orders

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/angelmondragon/littlelemon-backend/internal/cart"
	"github.com/angelmondragon/littlelemon-backend/internal/memberships"
	"github.com/angelmondragon/littlelemon-backend/pkg/auth"
	"github.com/angelmondragon/littlelemon-backend/pkg/db/dbtest"
	"github.com/angelmondragon/littlelemon-backend/pkg/db/models"
	"github.com/angelmondragon/littlelemon-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/littlelemon-backend/pkg/errors"
	"github.com/angelmondragon/littlelemon-backend/pkg/logger"
	"github.com/angelmondragon/littlelemon-backend/pkg/pagination"
)

type recordedPlacement struct {
	total decimal.Decimal
	lines int
}

type stubRecorder struct {
	calls []recordedPlacement
}

func (s *stubRecorder) ObservePlaced(total decimal.Decimal, lineCount int) {
	s.calls = append(s.calls, recordedPlacement{total: total, lines: lineCount})
}

type orderEnv struct {
	svc      Service
	conn     *gorm.DB
	fx       *dbtest.Fixtures
	recorder *stubRecorder
	salad    *models.MenuItem
	cake     *models.MenuItem
	soup     *models.MenuItem
}

var fixedNow = time.Date(2026, 3, 14, 22, 30, 0, 0, time.FixedZone("EST", -5*3600))

func newOrderEnv(t *testing.T) orderEnv {
	t.Helper()
	client := dbtest.Open(t)
	conn := client.DB()
	recorder := &stubRecorder{}

	svc, err := NewService(ServiceParams{
		Repo:    NewRepository(conn),
		Carts:   cart.NewRepository(conn),
		Crew:    memberships.NewRepository(conn),
		Tx:      client,
		Metrics: recorder,
		Logger:  logger.New(logger.Options{Output: io.Discard}),
		Now:     func() time.Time { return fixedNow },
	})
	require.NoError(t, err)

	fx := dbtest.NewFixtures(t, conn)
	mains := fx.Category("Mains")
	return orderEnv{
		svc:      svc,
		conn:     conn,
		fx:       fx,
		recorder: recorder,
		salad:    fx.MenuItem(mains, "Greek Salad", "5.00", true),
		cake:     fx.MenuItem(mains, "Lemon Cake", "3.00", false),
		soup:     fx.MenuItem(mains, "Lentil Soup", "4.50", false),
	}
}

func principal(u *models.User, groups ...enums.Group) auth.Principal {
	return auth.NewPrincipal(u.ID, u.Username, false, groups)
}

func TestPlaceOrderDrainsCart(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()
	customer := env.fx.User("customer")
	env.fx.CartLine(customer, env.salad, 2)
	env.fx.CartLine(customer, env.cake, 1)

	order, err := env.svc.PlaceOrder(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "13.00", order.Total)
	assert.Equal(t, "2026-03-15", order.Date)
	assert.Equal(t, int(enums.OrderStatusPending), order.Status)
	assert.Nil(t, order.DeliveryCrew)
	require.Len(t, order.Items, 2)

	var lines int64
	require.NoError(t, env.conn.Model(&models.CartLine{}).Where("user_id = ?", customer.ID).Count(&lines).Error)
	assert.Zero(t, lines)

	var stored []models.OrderItem
	require.NoError(t, env.conn.Where("order_id = ?", order.ID).Order("id").Find(&stored).Error)
	require.Len(t, stored, 2)
	assert.Equal(t, "10.00", stored[0].Price.StringFixed(2))
	assert.Equal(t, "5.00", stored[0].UnitPrice.StringFixed(2))
	assert.Equal(t, 2, stored[0].Quantity)

	require.Len(t, env.recorder.calls, 1)
	assert.True(t, decimal.NewFromInt(13).Equal(env.recorder.calls[0].total))
	assert.Equal(t, 2, env.recorder.calls[0].lines)
}

func TestPlaceOrderFreezesPrices(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()
	customer := env.fx.User("customer")
	env.fx.CartLine(customer, env.soup, 2)

	order, err := env.svc.PlaceOrder(ctx, customer.ID)
	require.NoError(t, err)

	require.NoError(t, env.conn.Model(&models.MenuItem{}).Where("id = ?", env.soup.ID).
		Update("price", decimal.RequireFromString("9.99")).Error)

	got, err := env.svc.GetOrder(ctx, principal(customer), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "9.00", got.Total)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "4.50", got.Items[0].UnitPrice)
	assert.Equal(t, "Lentil Soup", got.Items[0].Title)
}

func TestPlaceOrderWithEmptyCart(t *testing.T) {
	env := newOrderEnv(t)
	customer := env.fx.User("customer")

	order, err := env.svc.PlaceOrder(context.Background(), customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "0.00", order.Total)
	assert.Empty(t, order.Items)
	require.Len(t, env.recorder.calls, 1)
	assert.Zero(t, env.recorder.calls[0].lines)
}

func TestPlaceOrderLeavesOtherCartsAlone(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()
	customer := env.fx.User("customer")
	other := env.fx.User("other")
	env.fx.CartLine(customer, env.salad, 1)
	env.fx.CartLine(other, env.cake, 3)

	_, err := env.svc.PlaceOrder(ctx, customer.ID)
	require.NoError(t, err)

	var remaining []models.CartLine
	require.NoError(t, env.conn.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, other.ID, remaining[0].UserID)
}

func TestListOrderItemsVisibility(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()
	alice := env.fx.User("alice")
	bob := env.fx.User("bob")
	carol := env.fx.User("carol")
	crew := env.fx.User("crew", enums.GroupDeliveryCrew)
	otherCrew := env.fx.User("othercrew", enums.GroupDeliveryCrew)
	manager := env.fx.User("manager", enums.GroupManager)

	orderA := env.fx.Order(alice, crew, map[*models.MenuItem]int{env.salad: 1})
	orderB := env.fx.Order(bob, crew, map[*models.MenuItem]int{env.cake: 2})
	env.fx.Order(carol, otherCrew, map[*models.MenuItem]int{env.soup: 1})
	env.fx.Order(alice, nil, map[*models.MenuItem]int{env.soup: 3})

	all := pagination.Params{Page: 1, PerPage: 50}

	page, err := env.svc.ListOrderItems(ctx, principal(crew, enums.GroupDeliveryCrew), ItemFilters{}, all)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Count)
	assert.ElementsMatch(t, []uint{orderA.ID, orderB.ID}, orderIDs(page.Results))

	page, err = env.svc.ListOrderItems(ctx, principal(alice), ItemFilters{}, all)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Count)
	for _, item := range page.Results {
		assert.NotEqual(t, orderB.ID, item.Order)
	}

	page, err = env.svc.ListOrderItems(ctx, principal(manager, enums.GroupManager), ItemFilters{}, all)
	require.NoError(t, err)
	assert.Equal(t, int64(4), page.Count)

	page, err = env.svc.ListOrderItems(ctx, principal(env.fx.User("nobody")), ItemFilters{}, all)
	require.NoError(t, err)
	assert.Zero(t, page.Count)
	assert.NotNil(t, page.Results)
}

func TestListOrderItemsFiltersAndPaging(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()
	alice := env.fx.User("alice")
	manager := principal(env.fx.User("manager", enums.GroupManager), enums.GroupManager)

	first := env.fx.Order(alice, nil, map[*models.MenuItem]int{env.salad: 1, env.cake: 4})
	env.fx.Order(alice, nil, map[*models.MenuItem]int{env.soup: 2})
	all := pagination.Params{Page: 1, PerPage: 50}

	page, err := env.svc.ListOrderItems(ctx, manager, ItemFilters{MenuItem: "Lemon Cake"}, all)
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, 4, page.Results[0].Quantity)

	page, err = env.svc.ListOrderItems(ctx, manager, ItemFilters{Search: "LE"}, all)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Count)

	page, err = env.svc.ListOrderItems(ctx, manager, ItemFilters{OrderID: &first.ID}, all)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Count)

	page, err = env.svc.ListOrderItems(ctx, manager, ItemFilters{Ordering: "-price"}, all)
	require.NoError(t, err)
	require.Len(t, page.Results, 3)
	assert.Equal(t, "12.00", page.Results[0].Price)
	assert.Equal(t, "5.00", page.Results[2].Price)

	page, err = env.svc.ListOrderItems(ctx, manager, ItemFilters{}, pagination.Params{Page: 2, PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Count)
	assert.Len(t, page.Results, 1)

	page, err = env.svc.ListOrderItems(ctx, manager, ItemFilters{}, pagination.Params{Page: 9, PerPage: 2})
	require.NoError(t, err)
	assert.Empty(t, page.Results)

	_, err = env.svc.ListOrderItems(ctx, manager, ItemFilters{Ordering: "customer"}, all)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))
}

func TestGetOrderVisibility(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()
	alice := env.fx.User("alice")
	bob := env.fx.User("bob")
	crew := env.fx.User("crew", enums.GroupDeliveryCrew)
	otherCrew := env.fx.User("othercrew", enums.GroupDeliveryCrew)
	manager := env.fx.User("manager", enums.GroupManager)
	order := env.fx.Order(alice, crew, map[*models.MenuItem]int{env.salad: 1})

	_, err := env.svc.GetOrder(ctx, principal(alice), order.ID)
	require.NoError(t, err)
	_, err = env.svc.GetOrder(ctx, principal(crew, enums.GroupDeliveryCrew), order.ID)
	require.NoError(t, err)
	_, err = env.svc.GetOrder(ctx, principal(manager, enums.GroupManager), order.ID)
	require.NoError(t, err)

	_, err = env.svc.GetOrder(ctx, principal(bob), order.ID)
	require.True(t, pkgerrors.Is(err, pkgerrors.CodeForbidden))
	assert.Equal(t, "cannot view someone else's order", pkgerrors.As(err).Message())

	_, err = env.svc.GetOrder(ctx, principal(otherCrew, enums.GroupDeliveryCrew), order.ID)
	require.True(t, pkgerrors.Is(err, pkgerrors.CodeForbidden))
	assert.Equal(t, "assigned to another delivery crew", pkgerrors.As(err).Message())

	_, err = env.svc.GetOrder(ctx, principal(manager, enums.GroupManager), order.ID+100)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))
}

func TestUpdateOrderAsManager(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()
	alice := env.fx.User("alice")
	crew := env.fx.User("crew", enums.GroupDeliveryCrew)
	manager := principal(env.fx.User("manager", enums.GroupManager), enums.GroupManager)
	order := env.fx.Order(alice, nil, map[*models.MenuItem]int{env.salad: 1})

	delivered := 1
	got, err := env.svc.UpdateOrder(ctx, manager, order.ID, UpdateOrderInput{Status: &delivered, DeliveryCrew: &crew.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, got.Status)
	require.NotNil(t, got.DeliveryCrew)
	assert.Equal(t, crew.ID, *got.DeliveryCrew)

	_, err = env.svc.UpdateOrder(ctx, manager, order.ID, UpdateOrderInput{DeliveryCrew: &crew.ID})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))

	bad := 2
	_, err = env.svc.UpdateOrder(ctx, manager, order.ID, UpdateOrderInput{Status: &bad})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))

	_, err = env.svc.UpdateOrder(ctx, manager, order.ID+100, UpdateOrderInput{Status: &delivered})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))
}

func TestUpdateOrderRejectsNonCrewAssignee(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()
	alice := env.fx.User("alice")
	manager := principal(env.fx.User("manager", enums.GroupManager), enums.GroupManager)
	order := env.fx.Order(alice, nil, map[*models.MenuItem]int{env.salad: 1})

	delivered := 1
	_, err := env.svc.UpdateOrder(ctx, manager, order.ID, UpdateOrderInput{Status: &delivered, DeliveryCrew: &alice.ID})
	require.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))
	assert.Equal(t, "invalid delivery crew id", pkgerrors.As(err).Message())

	var stored models.Order
	require.NoError(t, env.conn.First(&stored, order.ID).Error)
	assert.Nil(t, stored.DeliveryCrewID)
	assert.Equal(t, enums.OrderStatusPending, stored.Status)
}

func TestUpdateOrderAsDeliveryCrew(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()
	alice := env.fx.User("alice")
	crewUser := env.fx.User("crew", enums.GroupDeliveryCrew)
	otherUser := env.fx.User("othercrew", enums.GroupDeliveryCrew)
	crew := principal(crewUser, enums.GroupDeliveryCrew)
	other := principal(otherUser, enums.GroupDeliveryCrew)
	order := env.fx.Order(alice, crewUser, map[*models.MenuItem]int{env.salad: 1})

	delivered := 1
	got, err := env.svc.UpdateOrder(ctx, crew, order.ID, UpdateOrderInput{Status: &delivered})
	require.NoError(t, err)
	assert.Equal(t, 1, got.Status)

	_, err = env.svc.UpdateOrder(ctx, crew, order.ID, UpdateOrderInput{Status: &delivered, DeliveryCrew: &otherUser.ID})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeForbidden))

	_, err = env.svc.UpdateOrder(ctx, other, order.ID, UpdateOrderInput{Status: &delivered})
	require.True(t, pkgerrors.Is(err, pkgerrors.CodeForbidden))
	assert.Equal(t, "assigned to another delivery crew", pkgerrors.As(err).Message())
}

func TestUpdateMissingOrderIsNotFoundForStaff(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()
	crewUser := env.fx.User("crew", enums.GroupDeliveryCrew)
	crew := principal(crewUser, enums.GroupDeliveryCrew)
	manager := principal(env.fx.User("manager", enums.GroupManager), enums.GroupManager)
	customer := env.fx.User("alice")
	const missing = 4242

	delivered := 1
	_, err := env.svc.UpdateOrder(ctx, crew, missing, UpdateOrderInput{Status: &delivered, DeliveryCrew: &crewUser.ID})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))

	_, err = env.svc.UpdateOrder(ctx, crew, missing, UpdateOrderInput{})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))

	_, err = env.svc.UpdateOrder(ctx, manager, missing, UpdateOrderInput{})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))

	_, err = env.svc.GetOrder(ctx, crew, missing)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))

	_, err = env.svc.UpdateOrder(ctx, principal(customer), missing, UpdateOrderInput{Status: &delivered})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeForbidden))
}

func TestUpdateOrderAsCustomerIsForbidden(t *testing.T) {
	env := newOrderEnv(t)
	alice := env.fx.User("alice")
	order := env.fx.Order(alice, nil, map[*models.MenuItem]int{env.salad: 1})

	delivered := 1
	_, err := env.svc.UpdateOrder(context.Background(), principal(alice), order.ID, UpdateOrderInput{Status: &delivered})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeForbidden))
}

func TestDeleteOrder(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()
	alice := env.fx.User("alice")
	manager := principal(env.fx.User("manager", enums.GroupManager), enums.GroupManager)
	order := env.fx.Order(alice, nil, map[*models.MenuItem]int{env.salad: 1, env.cake: 1})

	err := env.svc.DeleteOrder(ctx, principal(alice), order.ID)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeForbidden))

	require.NoError(t, env.svc.DeleteOrder(ctx, manager, order.ID))

	var items int64
	require.NoError(t, env.conn.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&items).Error)
	assert.Zero(t, items)

	err = env.svc.DeleteOrder(ctx, manager, order.ID)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))
}

func orderIDs(items []OrderItemDTO) []uint {
	out := make([]uint, 0, len(items))
	for _, item := range items {
		out = append(out, item.Order)
	}
	return out
}
