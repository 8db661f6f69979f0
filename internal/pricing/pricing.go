// Package pricing sums item prices and applies percentage discounts.
//
// Arithmetic is done in decimal so that prices such as 0.1 add up exactly.
// No rounding, currency or range validation is performed: a discount rate of
// 1.5 produces a negative total and a negative rate increases it.
package pricing

import (
	"context"
	"fmt"

	"github.com/dvloznov/finance-utils/internal/events"
	"github.com/shopspring/decimal"
)

// Event names emitted by Calculator.
const (
	EventTotalStarted    = "items.total.started"
	EventTotalComputed   = "items.total.computed"
	EventDiscountApplied = "discount.applied"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// Calculator performs pricing arithmetic and reports what it did to an
// observer.
type Calculator struct {
	obs events.Observer
}

// NewCalculator creates a Calculator. A nil observer discards events.
func NewCalculator(obs events.Observer) *Calculator {
	if obs == nil {
		obs = events.Nop()
	}
	return &Calculator{obs: obs}
}

// CalculateTotal returns the sum of every item's price. An empty list totals
// zero. The first item without a numeric price aborts the sum with an error
// wrapping ErrMissingPrice or ErrNonNumericPrice.
func (c *Calculator) CalculateTotal(ctx context.Context, items []Item) (decimal.Decimal, error) {
	c.obs.Observe(ctx, events.Event{
		Name:   EventTotalStarted,
		Fields: map[string]interface{}{"item_count": len(items)},
	})

	total := decimal.Zero
	for i, item := range items {
		price, err := item.Price()
		if err != nil {
			return decimal.Zero, fmt.Errorf("CalculateTotal: item %d: %w", i, err)
		}
		total = total.Add(price)
	}

	c.obs.Observe(ctx, events.Event{
		Name: EventTotalComputed,
		Fields: map[string]interface{}{
			"item_count": len(items),
			"total":      total.String(),
		},
	})

	return total, nil
}

// ApplyDiscount returns total * (1 - discount).
func (c *Calculator) ApplyDiscount(ctx context.Context, total, discount decimal.Decimal) decimal.Decimal {
	result := total.Mul(one.Sub(discount))

	c.obs.Observe(ctx, events.Event{
		Name: EventDiscountApplied,
		Fields: map[string]interface{}{
			"discount_pct": discount.Mul(hundred).String(),
			"total":        total.String(),
			"result":       result.String(),
		},
	})

	return result
}

var silent = NewCalculator(nil)

// CalculateTotal sums item prices without emitting events.
func CalculateTotal(items []Item) (decimal.Decimal, error) {
	return silent.CalculateTotal(context.Background(), items)
}

// ApplyDiscount applies a discount without emitting events.
func ApplyDiscount(total, discount decimal.Decimal) decimal.Decimal {
	return silent.ApplyDiscount(context.Background(), total, discount)
}
