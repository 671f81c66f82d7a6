package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Three 70.10 orders sum to 210.29999999999998 in binary floats; the bill
// must store the displayed 210.30.
func TestRoundAmountsAfterAccumulation(t *testing.T) {
	bill := Bill{}
	for i := 0; i < 3; i++ {
		bill.Subtotal += 70.10
		bill.TotalAmount += 70.10
	}
	assert.NotEqual(t, 210.30, bill.TotalAmount)

	bill.RoundAmounts()
	assert.Equal(t, 210.30, bill.TotalAmount)
	assert.Equal(t, 210.30, bill.Subtotal)
}

func TestSplitCoversTotalTolerance(t *testing.T) {
	bill := Bill{TotalAmount: 210.30, CashAmount: 110.30, CardAmount: 100.00}
	assert.True(t, bill.SplitCoversTotal())

	bill.CardAmount = 99.00
	assert.False(t, bill.SplitCoversTotal())

	// one cent off is still a mismatch
	bill.CardAmount = 100.01
	assert.False(t, bill.SplitCoversTotal())
}

func TestSplitTotal(t *testing.T) {
	bill := Bill{CashAmount: 0.1, CardAmount: 0.2, UPIAmount: 0.3}
	assert.Equal(t, 0.6, bill.SplitTotal())
}

func TestGenerateBillNumber(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	number := GenerateBillNumber(now)

	assert.True(t, strings.HasPrefix(number, "BILL-20260830-"))
	assert.Len(t, number, len("BILL-20260830-")+8)
	assert.Equal(t, strings.ToUpper(number), number)
}
