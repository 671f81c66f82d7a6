package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateTotals(t *testing.T) {
	order := Order{
		TaxPercent:   5,
		DiscountType: DiscountPercentage,
		Items: []OrderItem{
			{Quantity: 2, Price: 100},
		},
	}

	order.CalculateTotals()

	assert.Equal(t, 200.0, order.Subtotal)
	assert.Equal(t, 10.0, order.TaxAmount)
	assert.Equal(t, 0.0, order.DiscountAmount)
	assert.Equal(t, 210.0, order.TotalAmount)
}

func TestCalculateTotalsServiceAndDelivery(t *testing.T) {
	order := Order{
		TaxPercent:           10,
		ServiceChargePercent: 5,
		DeliveryCharge:       20,
		DiscountType:         DiscountPercentage,
		DiscountValue:        10,
		Items: []OrderItem{
			{Quantity: 1, Price: 150},
			{Quantity: 3, Price: 50},
		},
	}

	order.CalculateTotals()

	assert.Equal(t, 300.0, order.Subtotal)
	assert.Equal(t, 30.0, order.TaxAmount)
	assert.Equal(t, 15.0, order.ServiceChargeAmount)
	assert.Equal(t, 30.0, order.DiscountAmount)
	// 300 + 30 + 15 + 20 - 30
	assert.Equal(t, 335.0, order.TotalAmount)
}

// A fixed discount above the subtotal is not clamped; the total goes
// negative and the billing UI shows it as a refund line.
func TestCalculateTotalsFixedDiscountExceedsSubtotal(t *testing.T) {
	order := Order{
		DiscountType:  DiscountFixed,
		DiscountValue: 150,
		Items: []OrderItem{
			{Quantity: 1, Price: 100},
		},
	}

	order.CalculateTotals()

	assert.Equal(t, 100.0, order.Subtotal)
	assert.Equal(t, -50.0, order.TotalAmount)
}

func TestCalculateTotalsRounding(t *testing.T) {
	order := Order{
		TaxPercent:   7.5,
		DiscountType: DiscountPercentage,
		Items: []OrderItem{
			{Quantity: 3, Price: 33.33},
		},
	}

	order.CalculateTotals()

	assert.Equal(t, 99.99, order.Subtotal)
	assert.Equal(t, 7.5, order.TaxAmount)
	assert.Equal(t, 107.49, order.TotalAmount)
}

func TestSetStatusStampsTimestamps(t *testing.T) {
	now := time.Now()
	order := Order{Status: OrderPending}

	order.SetStatus(OrderConfirmed, now)
	assert.Equal(t, OrderConfirmed, order.Status)
	assert.NotNil(t, order.ConfirmedAt)
	assert.Equal(t, now, *order.ConfirmedAt)

	later := now.Add(5 * time.Minute)
	order.SetStatus(OrderPreparing, later)
	assert.NotNil(t, order.PreparingAt)
	assert.Equal(t, later, *order.PreparingAt)
	// earlier stamp untouched
	assert.Equal(t, now, *order.ConfirmedAt)
}

func TestSetStatusConfirmCascadesItems(t *testing.T) {
	order := Order{
		Status: OrderPending,
		Items: []OrderItem{
			{Status: OrderPending},
			{Status: OrderPending},
			{Status: OrderCancelled},
		},
	}

	order.SetStatus(OrderConfirmed, time.Now())

	assert.Equal(t, OrderConfirmed, order.Items[0].Status)
	assert.Equal(t, OrderConfirmed, order.Items[1].Status)
	// only pending items cascade
	assert.Equal(t, OrderCancelled, order.Items[2].Status)
}

func TestCanCancel(t *testing.T) {
	cancellable := []string{OrderPending, OrderConfirmed}
	for _, status := range cancellable {
		order := Order{Status: status}
		assert.True(t, order.CanCancel(), "status %s should be cancellable", status)
	}

	locked := []string{OrderPreparing, OrderReady, OrderServed, OrderCompleted, OrderCancelled}
	for _, status := range locked {
		order := Order{Status: status}
		assert.False(t, order.CanCancel(), "status %s should not be cancellable", status)
	}
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(OrderPending))
	assert.True(t, ValidStatus(OrderCompleted))
	assert.False(t, ValidStatus("paid"))
	assert.False(t, ValidStatus(""))
}
