// Package dbtest opens throwaway SQLite databases with the full schema and
// seeds the rows most tests need.
package dbtest

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/littlelemon-backend/pkg/db"
	"github.com/angelmondragon/littlelemon-backend/pkg/db/models"
	"github.com/angelmondragon/littlelemon-backend/pkg/enums"
)

// Open returns a migrated in-memory database with foreign keys enforced.
func Open(t testing.TB) *db.Client {
	t.Helper()
	return open(t, fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString()))
}

// OpenFile returns a migrated database backed by a file in t.TempDir, for
// tests that run transactions from several goroutines. Transactions begin
// IMMEDIATE so writers queue on the busy timeout instead of deadlocking on
// lock upgrades.
func OpenFile(t testing.TB) *db.Client {
	t.Helper()
	path := filepath.Join(t.TempDir(), "littlelemon.db")
	return open(t, fmt.Sprintf("file:%s?_foreign_keys=1&_busy_timeout=10000&_journal_mode=WAL&_txlock=immediate", path))
}

func open(t testing.TB, dsn string) *db.Client {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	client := db.Wrap(conn)
	require.NoError(t, client.AutoMigrate(context.Background()))
	t.Cleanup(func() { _ = client.Close() })
	return client
}

// Fixtures inserts rows, failing the test on any error.
type Fixtures struct {
	t    testing.TB
	conn *gorm.DB
}

func NewFixtures(t testing.TB, conn *gorm.DB) *Fixtures {
	return &Fixtures{t: t, conn: conn}
}

// User inserts an active user and attaches the given groups.
func (f *Fixtures) User(username string, groups ...enums.Group) *models.User {
	f.t.Helper()
	user := &models.User{Username: username, Email: username + "@littlelemon.test", PasswordHash: "x", IsActive: true}
	require.NoError(f.t, f.conn.Create(user).Error)
	for _, g := range groups {
		require.NoError(f.t, f.conn.Create(&models.UserGroup{UserID: user.ID, Group: g}).Error)
	}
	return user
}

// Category inserts a category.
func (f *Fixtures) Category(title string) *models.Category {
	f.t.Helper()
	category := &models.Category{Title: title}
	require.NoError(f.t, f.conn.Create(category).Error)
	return category
}

// MenuItem inserts a menu item priced at price, e.g. "5.00".
func (f *Fixtures) MenuItem(category *models.Category, title, price string, featured bool) *models.MenuItem {
	f.t.Helper()
	item := &models.MenuItem{
		Title:      title,
		Price:      decimal.RequireFromString(price),
		Featured:   featured,
		CategoryID: category.ID,
	}
	require.NoError(f.t, f.conn.Create(item).Error)
	return item
}

// CartLine inserts a cart line priced from the menu item.
func (f *Fixtures) CartLine(user *models.User, item *models.MenuItem, quantity int) *models.CartLine {
	f.t.Helper()
	line := &models.CartLine{
		UserID:     user.ID,
		MenuItemID: item.ID,
		Quantity:   quantity,
		UnitPrice:  item.Price,
		Price:      item.Price.Mul(decimal.NewFromInt(int64(quantity))),
	}
	require.NoError(f.t, f.conn.Create(line).Error)
	return line
}

// Order inserts an order with one item per line, bypassing the cart.
func (f *Fixtures) Order(owner *models.User, crew *models.User, lines map[*models.MenuItem]int) *models.Order {
	f.t.Helper()
	order := &models.Order{UserID: owner.ID, Status: enums.OrderStatusPending, Total: decimal.Zero}
	if crew != nil {
		order.DeliveryCrewID = &crew.ID
	}
	for item, qty := range lines {
		price := item.Price.Mul(decimal.NewFromInt(int64(qty)))
		order.Items = append(order.Items, models.OrderItem{MenuItemID: item.ID, Quantity: qty, UnitPrice: item.Price, Price: price})
		order.Total = order.Total.Add(price)
	}
	require.NoError(f.t, f.conn.Create(order).Error)
	return order
}
