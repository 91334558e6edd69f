package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type GetOrCreateCategoryRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type GetOrCreateWarrantyRequest struct {
	Name         string `json:"name"`
	DurationDays int    `json:"duration_days"`
}

type GetOrCreateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	CategoryID  snowflake.ID    `json:"category_id"`
	BrandID     *snowflake.ID   `json:"brand_id"`
	WarrantyID  *snowflake.ID   `json:"warranty_id"`
}

type ListProductsRequest struct {
	IDs   []snowflake.ID
	Limit int
}

// BackfillSummary reports a metric maintenance pass over the catalog.
type BackfillSummary struct {
	ProductsChecked int `json:"products_checked"`
	ProductsUpdated int `json:"products_updated"`
}

// Service manages catalog reference entities and their derived metrics.
type Service interface {
	GetOrCreateCategory(ctx context.Context, req GetOrCreateCategoryRequest) (*Category, error)
	GetOrCreateBrand(ctx context.Context, name string) (*Brand, error)
	GetOrCreateWarranty(ctx context.Context, req GetOrCreateWarrantyRequest) (*Warranty, error)
	GetOrCreateProduct(ctx context.Context, req GetOrCreateProductRequest) (*Product, error)

	ListProducts(ctx context.Context, req ListProductsRequest) ([]Product, error)
	GetProductByID(ctx context.Context, id string) (*Product, error)
	CountProducts(ctx context.Context) (int64, error)

	// EnsureMetrics backfills rating and energy estimates on a product when
	// absent. The popularity hint may be nil. It reports whether any field
	// was written; derivation failures are swallowed.
	EnsureMetrics(ctx context.Context, product *Product, popularity *float64) bool

	// BackfillMetrics runs EnsureMetrics across the catalog. A limit of 0
	// means unlimited.
	BackfillMetrics(ctx context.Context, limit int) (BackfillSummary, error)
}

// ParseID parses a snowflake ID from its string form.
func ParseID(raw string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(raw))
}

var (
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidSlug     = errors.New("invalid_slug")
	ErrInvalidPrice    = errors.New("invalid_price")
	ErrInvalidCategory = errors.New("invalid_category")
	ErrInvalidID       = errors.New("invalid_id")
	ErrNotFound        = errors.New("not_found")
)
