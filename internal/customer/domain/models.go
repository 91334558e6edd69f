// Package domain contains the buyer pool models.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const RoleBuyer = "buyer"

// Customer is a storefront buyer. The pool is created once by bootstrap and
// only grows; generation never mutates individual customers.
type Customer struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Username  string       `gorm:"type:text;not null;uniqueIndex" json:"username"`
	Email     string       `gorm:"type:text;not null" json:"email"`
	FirstName string       `gorm:"type:text" json:"first_name"`
	LastName  string       `gorm:"type:text" json:"last_name"`
	Role      string       `gorm:"type:text;not null;default:buyer" json:"role"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Customer) TableName() string { return "customers" }
