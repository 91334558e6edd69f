package demand

import (
	"math/rand/v2"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/electromax/storefront/internal/catalog/domain"
	"github.com/shopspring/decimal"
)

// defaultPopularity is assumed for products without a weight entry.
const defaultPopularity = 0.5

// Line is one basket candidate: a product with a quantity and the unit
// price captured at sampling time.
type Line struct {
	Product   catalogdomain.Product
	Quantity  int
	UnitPrice decimal.Decimal
}

// Sampler draws popularity-weighted baskets. Slots sample with replacement,
// so the same product may appear on two lines of one basket.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler builds a sampler. A nil rng gets a time-seeded source.
func NewSampler(rng *rand.Rand) *Sampler {
	if rng == nil {
		rng = newTimeSeededRand()
	}
	return &Sampler{rng: rng}
}

var (
	basketSizes       = []int{1, 2, 3, 4}
	basketSizeWeights = []float64{0.5, 0.3, 0.15, 0.05}

	lineQuantities      = []int{1, 2, 3}
	lineQuantityWeights = []float64{0.7, 0.2, 0.1}
)

// Basket draws 1–4 lines from the catalog, weighting product selection by
// the popularity map. Products absent from the map weigh 0.5.
func (s *Sampler) Basket(products []catalogdomain.Product, popularity map[snowflake.ID]float64) []Line {
	if len(products) == 0 {
		return nil
	}

	weights := make([]float64, len(products))
	for i, product := range products {
		if w, ok := popularity[product.ID]; ok {
			weights[i] = w
		} else {
			weights[i] = defaultPopularity
		}
	}

	size := basketSizes[s.weightedIndex(basketSizeWeights)]
	lines := make([]Line, 0, size)
	for slot := 0; slot < size; slot++ {
		product := products[s.weightedIndex(weights)]
		quantity := lineQuantities[s.weightedIndex(lineQuantityWeights)]
		lines = append(lines, Line{
			Product:   product,
			Quantity:  quantity,
			UnitPrice: product.Price,
		})
	}
	return lines
}

// weightedIndex picks an index proportionally to the weights. An all-zero
// (or negative-sum) weight vector falls back to uniform selection rather
// than failing.
func (s *Sampler) weightedIndex(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return s.rng.IntN(len(weights))
	}

	target := s.rng.Float64() * total
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		target -= w
		if target < 0 {
			return i
		}
	}
	return len(weights) - 1
}
