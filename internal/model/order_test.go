package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderPending, OrderProcessing, true},
		{OrderPending, OrderCancelled, true},
		{OrderPending, OrderCompleted, false},
		{OrderPending, OrderDelivered, false},
		{OrderProcessing, OrderCompleted, true},
		{OrderProcessing, OrderCancelled, true},
		{OrderProcessing, OrderPending, false},
		{OrderCompleted, OrderDelivered, true},
		{OrderCompleted, OrderCancelled, false},
		{OrderDelivered, OrderCancelled, false},
		{OrderCancelled, OrderPending, false},
	}

	for _, tc := range cases {
		got := tc.from.CanTransition(tc.to)
		assert.Equal(t, tc.allowed, got, "%s -> %s", tc.from, tc.to)
	}
}

func TestOrderStatusSelfTransitionNotAllowed(t *testing.T) {
	for status := range orderTransitions {
		assert.False(t, status.CanTransition(status), "%s -> %s should be rejected", status, status)
	}
}

func TestValidOrderStatus(t *testing.T) {
	assert.True(t, ValidOrderStatus(OrderPending))
	assert.True(t, ValidOrderStatus(OrderDelivered))
	assert.False(t, ValidOrderStatus("SHIPPED"))
	assert.False(t, ValidOrderStatus(""))
}

func TestComputeTotal(t *testing.T) {
	items := []OrderItem{
		{ProductID: uuid.New(), Quantity: 3, UnitPrice: decimal.RequireFromString("10.00")},
		{ProductID: uuid.New(), Quantity: 2, UnitPrice: decimal.RequireFromString("5.50")},
	}

	total := ComputeTotal(items)
	assert.True(t, total.Equal(decimal.RequireFromString("41.00")), "got %s", total)
}

func TestComputeTotalEmpty(t *testing.T) {
	assert.True(t, ComputeTotal(nil).Equal(decimal.Zero))
}
