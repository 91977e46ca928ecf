package enums

import "fmt"

// OrderStatus is the delivery state of an order, stored as a small integer.
type OrderStatus int

const (
	OrderStatusPending   OrderStatus = 0
	OrderStatusDelivered OrderStatus = 1
)

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	switch s {
	case OrderStatusPending:
		return "pending"
	case OrderStatusDelivered:
		return "delivered"
	}
	return fmt.Sprintf("OrderStatus(%d)", int(s))
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	return s == OrderStatusPending || s == OrderStatusDelivered
}

// ParseOrderStatus converts a raw integer flag into an OrderStatus.
func ParseOrderStatus(value int) (OrderStatus, error) {
	s := OrderStatus(value)
	if !s.IsValid() {
		return 0, fmt.Errorf("invalid order status %d", value)
	}
	return s, nil
}
