// Package domain contains the persistence models for the product catalog.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Category groups products for browsing and energy-profile derivation.
type Category struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	Slug      string       `gorm:"type:text;not null;uniqueIndex" json:"slug"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Category) TableName() string { return "categories" }

// Brand is a product manufacturer.
type Brand struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"type:text;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Brand) TableName() string { return "brands" }

// Warranty is a coverage plan attachable to products.
type Warranty struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	Name         string       `gorm:"type:text;not null;uniqueIndex" json:"name"`
	DurationDays int          `gorm:"not null" json:"duration_days"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Warranty) TableName() string { return "warranties" }

// Product is a catalog item. Rating and EnergyKwhPerYear are derived display
// metrics: once set they are never overwritten by later backfill passes.
type Product struct {
	ID          snowflake.ID    `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"type:text;not null;uniqueIndex" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Stock       int             `gorm:"not null;default:0" json:"stock"`

	CategoryID snowflake.ID  `gorm:"not null;index" json:"category_id"`
	Category   *Category     `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	BrandID    *snowflake.ID `gorm:"index" json:"brand_id,omitempty"`
	WarrantyID *snowflake.ID `gorm:"index" json:"warranty_id,omitempty"`

	Image            string            `gorm:"type:text" json:"image,omitempty"`
	Rating           *decimal.Decimal  `gorm:"type:numeric(3,2)" json:"rating,omitempty"`
	EnergyKwhPerYear *float64          `json:"energy_kwh_per_year,omitempty"`
	Metadata         datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Product) TableName() string { return "products" }
