// Package domain contains the device-token registry models.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

const (
	PlatformWeb     = "web"
	PlatformIOS     = "ios"
	PlatformAndroid = "android"
)

// DeviceToken is a push-delivery endpoint registered by a customer.
// Delivery itself is handled by an external push collaborator.
type DeviceToken struct {
	ID         snowflake.ID      `gorm:"primaryKey" json:"id"`
	CustomerID snowflake.ID      `gorm:"not null;index" json:"customer_id"`
	Token      string            `gorm:"type:text;not null;uniqueIndex" json:"token"`
	Platform   string            `gorm:"type:text;not null;default:web" json:"platform"`
	DeviceName *string           `gorm:"type:text" json:"device_name,omitempty"`
	IsActive   bool              `gorm:"not null;default:true" json:"is_active"`
	Metadata   datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt  time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (DeviceToken) TableName() string { return "device_tokens" }
