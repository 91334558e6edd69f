// Package domain defines the sales simulation contracts.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Window is an inclusive range of simulated calendar days. Start never
// exceeds End; both are normalized to UTC midnight.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow builds a window ending at now and reaching back the given number
// of days. Non-positive spans collapse to a single day.
func NewWindow(now time.Time, days int) Window {
	if days < 0 {
		days = 0
	}
	end := truncateDay(now)
	return Window{
		Start: end.AddDate(0, 0, -days),
		End:   end,
	}
}

// Days returns the number of whole days between Start and End.
func (w Window) Days() int {
	return int(w.End.Sub(w.Start).Hours() / 24)
}

// Contains reports whether the date falls inside the window.
func (w Window) Contains(date time.Time) bool {
	d := truncateDay(date)
	return !d.Before(w.Start) && !d.After(w.End)
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// GenerateRequest controls one generation run.
type GenerateRequest struct {
	// ClearExisting wipes all existing orders first, atomically. Without it
	// a run appends more history on top of whatever exists.
	ClearExisting bool `json:"clear_existing"`
}

// Summary reports the outcome of one generation run. The skipped counters
// expose per-record failures that were absorbed without aborting the run.
type Summary struct {
	TotalOrders    int             `json:"total_orders"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	StartDate      string          `json:"start_date"`
	EndDate        string          `json:"end_date"`
	ProductsCount  int             `json:"products_count"`
	CustomersCount int             `json:"customers_count"`

	OrdersSkipped       int `json:"orders_skipped"`
	ItemsSkipped        int `json:"items_skipped"`
	StockUpdatesSkipped int `json:"stock_updates_skipped"`
}

// Service drives synthetic sales generation.
type Service interface {
	Generate(ctx context.Context, req GenerateRequest) (*Summary, error)
}

var (
	ErrEmptyCatalog      = errors.New("empty_catalog")
	ErrEmptyCustomerPool = errors.New("empty_customer_pool")
)
