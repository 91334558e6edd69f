package demand

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/electromax/storefront/internal/catalog/domain"
	"github.com/shopspring/decimal"
)

func testProducts(n int) []catalogdomain.Product {
	products := make([]catalogdomain.Product, 0, n)
	for i := 0; i < n; i++ {
		products = append(products, catalogdomain.Product{
			ID:    snowflake.ID(i + 1),
			Price: decimal.NewFromInt(int64(100 * (i + 1))),
		})
	}
	return products
}

func TestBasketEmptyCatalog(t *testing.T) {
	s := NewSampler(testRand())
	if lines := s.Basket(nil, nil); lines != nil {
		t.Fatalf("expected nil basket for empty catalog, got %d lines", len(lines))
	}
}

func TestBasketShape(t *testing.T) {
	s := NewSampler(testRand())
	products := testProducts(10)

	for i := 0; i < 500; i++ {
		lines := s.Basket(products, nil)
		if len(lines) < 1 || len(lines) > 4 {
			t.Fatalf("basket size %d, want 1..4", len(lines))
		}
		for _, line := range lines {
			if line.Quantity < 1 || line.Quantity > 3 {
				t.Fatalf("line quantity %d, want 1..3", line.Quantity)
			}
			if !line.UnitPrice.Equal(line.Product.Price) {
				t.Fatalf("unit price %s does not snapshot product price %s",
					line.UnitPrice, line.Product.Price)
			}
		}
	}
}

func TestBasketPopularitySkew(t *testing.T) {
	s := NewSampler(testRand())
	products := testProducts(2)
	popularity := map[snowflake.ID]float64{
		products[0].ID: 0.99,
		products[1].ID: 0.01,
	}

	counts := map[snowflake.ID]int{}
	for i := 0; i < 2000; i++ {
		for _, line := range s.Basket(products, popularity) {
			counts[line.Product.ID]++
		}
	}
	if counts[products[0].ID] <= counts[products[1].ID]*10 {
		t.Errorf("popular product drawn %d times vs %d, expected a heavy skew",
			counts[products[0].ID], counts[products[1].ID])
	}
}

func TestBasketDefaultPopularity(t *testing.T) {
	s := NewSampler(testRand())
	products := testProducts(3)

	// Only one product carries a weight; the others fall back to 0.5 and
	// must still be drawable.
	popularity := map[snowflake.ID]float64{products[0].ID: 0.5}
	seen := map[snowflake.ID]bool{}
	for i := 0; i < 2000; i++ {
		for _, line := range s.Basket(products, popularity) {
			seen[line.Product.ID] = true
		}
	}
	for _, p := range products {
		if !seen[p.ID] {
			t.Errorf("product %d never sampled", p.ID)
		}
	}
}

func TestWeightedIndexZeroWeightsFallsBackToUniform(t *testing.T) {
	s := NewSampler(testRand())
	weights := []float64{0, 0, 0, 0}

	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		idx := s.weightedIndex(weights)
		if idx < 0 || idx >= len(weights) {
			t.Fatalf("index %d out of range", idx)
		}
		seen[idx] = true
	}
	if len(seen) != len(weights) {
		t.Errorf("uniform fallback covered %d of %d indices", len(seen), len(weights))
	}
}

func TestWeightedIndexSkipsNonPositive(t *testing.T) {
	s := NewSampler(testRand())
	weights := []float64{0, 1, -3, 0}
	for i := 0; i < 200; i++ {
		if idx := s.weightedIndex(weights); idx != 1 {
			t.Fatalf("index %d, want 1 (the only positive weight)", idx)
		}
	}
}
