package service

import (
	"context"
	"math/rand/v2"
	"strings"

	catalogdomain "github.com/electromax/storefront/internal/catalog/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// EnsureMetrics derives a rating and an energy-consumption estimate for a
// product when those fields are still unset. Writes are guarded with
// IS NULL predicates so an already-set value is never overwritten, even
// under concurrent passes. Derivation failures are swallowed: the field
// stays unset for a future pass.
func (s *Service) EnsureMetrics(ctx context.Context, product *catalogdomain.Product, popularity *float64) bool {
	if product == nil || product.ID == 0 {
		return false
	}

	updated := false
	if product.Rating == nil {
		rating := deriveRating(product.Price, popularity)
		if s.setIfAbsent(ctx, product.ID, "rating", rating) {
			updated = true
		}
	}

	if product.EnergyKwhPerYear == nil {
		if energy, ok := s.deriveEnergy(ctx, product); ok {
			if s.setIfAbsent(ctx, product.ID, "energy_kwh_per_year", energy) {
				updated = true
			}
		}
	}

	// Refresh the in-memory copy so repeated calls observe one stable value
	// regardless of which pass won the write.
	var fresh catalogdomain.Product
	if err := s.db.WithContext(ctx).
		Select("rating", "energy_kwh_per_year").
		First(&fresh, "id = ?", product.ID).Error; err == nil {
		product.Rating = fresh.Rating
		product.EnergyKwhPerYear = fresh.EnergyKwhPerYear
	}

	return updated
}

// BackfillMetrics runs EnsureMetrics over existing products. A limit of 0
// checks the whole catalog.
func (s *Service) BackfillMetrics(ctx context.Context, limit int) (catalogdomain.BackfillSummary, error) {
	q := s.db.WithContext(ctx).Model(&catalogdomain.Product{}).Preload("Category").Order("id")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var products []catalogdomain.Product
	if err := q.Find(&products).Error; err != nil {
		return catalogdomain.BackfillSummary{}, err
	}

	summary := catalogdomain.BackfillSummary{}
	for i := range products {
		summary.ProductsChecked++
		if s.EnsureMetrics(ctx, &products[i], nil) {
			summary.ProductsUpdated++
		}
	}

	s.log.Info("metric backfill completed",
		zap.Int("products_checked", summary.ProductsChecked),
		zap.Int("products_updated", summary.ProductsUpdated),
	)
	return summary, nil
}

func (s *Service) setIfAbsent(ctx context.Context, id any, column string, value any) bool {
	result := s.db.WithContext(ctx).
		Model(&catalogdomain.Product{}).
		Where("id = ? AND "+column+" IS NULL", id).
		UpdateColumn(column, value)
	if result.Error != nil {
		s.log.Warn("metric write failed", zap.String("column", column), zap.Error(result.Error))
		return false
	}
	return result.RowsAffected > 0
}

// deriveRating normalizes price (or a popularity hint when present) into a
// 3.5–5.0 band, adds symmetric noise and clamps to the 0–5 scale.
func deriveRating(price decimal.Decimal, popularity *float64) decimal.Decimal {
	var base float64
	if popularity != nil {
		base = 3.5 + (*popularity-0.5)*2.0
	} else {
		norm := price.InexactFloat64() / 2000.0
		if norm > 1.5 {
			norm = 1.5
		}
		base = 3.5 + norm
	}

	value := base + (rand.Float64()*0.6 - 0.3)
	if value < 0 {
		value = 0
	}
	if value > 5 {
		value = 5
	}
	return decimal.NewFromFloat(value).Round(2)
}

// deriveEnergy samples a plausible kWh/year figure from a category-specific
// range. A missing or unreadable category falls back to the generic range;
// a lookup error aborts this pass without failing the caller.
func (s *Service) deriveEnergy(ctx context.Context, product *catalogdomain.Product) (float64, bool) {
	slug := ""
	if product.Category != nil {
		slug = product.Category.Slug
	} else if product.CategoryID != 0 {
		var category catalogdomain.Category
		err := s.db.WithContext(ctx).First(&category, "id = ?", product.CategoryID).Error
		if err == nil {
			slug = category.Slug
		} else {
			s.log.Debug("energy derivation skipped", zap.Error(err))
			return 0, false
		}
	}

	slug = strings.ToLower(slug)
	switch {
	case strings.Contains(slug, "refrigerator"):
		return float64(250 + rand.IntN(301)), true
	case strings.Contains(slug, "wash"):
		return float64(50 + rand.IntN(151)), true
	case strings.Contains(slug, "microwave"):
		return float64(50 + rand.IntN(71)), true
	case strings.Contains(slug, "televis"):
		return float64(30 + rand.IntN(171)), true
	case strings.Contains(slug, "air"):
		return float64(500 + rand.IntN(1501)), true
	case strings.Contains(slug, "range"), strings.Contains(slug, "cook"):
		// Gas appliances draw no mains power about half the time.
		if rand.IntN(2) == 0 {
			return 0, true
		}
		return float64(200 + rand.IntN(601)), true
	default:
		return float64(20 + rand.IntN(481)), true
	}
}
