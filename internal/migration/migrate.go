// Package migration keeps the schema in sync with the domain models.
package migration

import (
	auditdomain "github.com/electromax/storefront/internal/audit/domain"
	catalogdomain "github.com/electromax/storefront/internal/catalog/domain"
	customerdomain "github.com/electromax/storefront/internal/customer/domain"
	notificationdomain "github.com/electromax/storefront/internal/notification/domain"
	orderdomain "github.com/electromax/storefront/internal/order/domain"
	"gorm.io/gorm"
)

// Run applies the schema for every persisted model.
func Run(db *gorm.DB) error {
	return db.AutoMigrate(
		&catalogdomain.Category{},
		&catalogdomain.Brand{},
		&catalogdomain.Warranty{},
		&catalogdomain.Product{},
		&customerdomain.Customer{},
		&orderdomain.Order{},
		&orderdomain.OrderItem{},
		&notificationdomain.DeviceToken{},
		&auditdomain.Entry{},
	)
}
