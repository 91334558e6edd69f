// Package demand models synthetic purchase-volume intensity and basket
// composition.
package demand

import (
	"math"
	"math/rand/v2"
	"time"

	simulationdomain "github.com/electromax/storefront/internal/simulation/domain"
)

// Model maps a calendar date to a daily order count following seasonal,
// trend and weekday demand curves with bounded noise. Noise is re-sampled
// on every call, so repeated calls for the same date may differ.
type Model struct {
	window simulationdomain.Window
	rng    *rand.Rand
}

// NewModel builds a demand model over the given window. A nil rng gets a
// time-seeded source.
func NewModel(window simulationdomain.Window, rng *rand.Rand) *Model {
	if rng == nil {
		rng = newTimeSeededRand()
	}
	return &Model{window: window, rng: rng}
}

// Seasonal returns the month multiplier: a December peak, a January slump
// and elevated mid-year demand.
func (m *Model) Seasonal(date time.Time) float64 {
	switch date.Month() {
	case time.December:
		return 1.5
	case time.January, time.February:
		return 0.7
	case time.July, time.August:
		return 1.3
	case time.June, time.November:
		return 1.2
	default:
		return 1.0
	}
}

// Trend ramps linearly from 1.0 at window start to 1.5 at window end.
func (m *Model) Trend(date time.Time) float64 {
	total := m.window.Days()
	if total <= 0 {
		return 1.5
	}
	elapsed := date.UTC().Sub(m.window.Start).Hours() / 24
	return 1.0 + 0.5*(elapsed/float64(total))
}

// WeekdayFactor boosts weekends and, slightly, Fridays.
func (m *Model) WeekdayFactor(date time.Time) float64 {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return 1.3
	case time.Friday:
		return 1.1
	default:
		return 1.0
	}
}

// DailyOrderCount samples the number of orders to generate on the date.
// Always at least 1.
func (m *Model) DailyOrderCount(date time.Time) int {
	base := float64(5 + m.rng.IntN(11))
	noise := 0.8 + m.rng.Float64()*0.4

	count := int(math.Round(base * m.Seasonal(date) * m.Trend(date) * m.WeekdayFactor(date) * noise))
	if count < 1 {
		return 1
	}
	return count
}

func newTimeSeededRand() *rand.Rand {
	now := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(now, now>>32))
}
