package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"vikendica/config"
	"vikendica/models"
)

// NewTestDB opens a migrated in-memory SQLite database that lives as long as the test.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := config.ConnectDB(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		DSN:    ":memory:",
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// SeedCottage inserts a cottage with the given id, owner and prices.
func SeedCottage(t *testing.T, db *gorm.DB, id, owner string, summer, winter float64) *models.Cottage {
	t.Helper()

	cottage := &models.Cottage{
		ID:            id,
		OwnerUsername: owner,
		Title:         "Cottage " + id,
		PriceSummer:   summer,
		PriceWinter:   winter,
		Photos:        []string{"front.jpg"},
		Amenities:     models.Amenities{WiFi: true},
		Ocena:         models.NoRating,
	}
	require.NoError(t, db.WithContext(context.Background()).Create(cottage).Error)
	return cottage
}

// SeedUser inserts an active user.
func SeedUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
		Active:   true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// SeedReservation inserts a reservation as is, bypassing the availability check.
func SeedReservation(t *testing.T, db *gorm.DB, reservation *models.Reservation) *models.Reservation {
	t.Helper()

	if reservation.Adults == 0 {
		reservation.Adults = 1
	}
	if reservation.CreatedAt.IsZero() {
		reservation.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	require.NoError(t, db.Omit("Cottage").Create(reservation).Error)
	return reservation
}

// Date returns midnight UTC of the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
