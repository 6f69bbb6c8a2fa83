package postgres

import (
	"fmt"

	"dispatch/internal/adapters/out/postgres/notificationrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/userrepo"

	"gorm.io/gorm"
)

// Migrate creates or alters the orders, users and notifications tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&orderrepo.OrderDTO{}, &userrepo.UserDTO{}, &notificationrepo.NotificationDTO{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
