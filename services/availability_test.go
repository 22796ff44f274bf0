package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vikendica/models"
	"vikendica/repositories"
	"vikendica/testutil"
)

func TestAvailabilityChecker(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.SeedCottage(t, db, "c1", "owner", 100, 80)
	testutil.SeedCottage(t, db, "c2", "owner", 100, 80)

	testutil.SeedReservation(t, db, &models.Reservation{
		ID: "confirmed", CottageID: "c1", UserUsername: "ana",
		StartDate: day(2024, 7, 1), EndDate: day(2024, 7, 5), Status: models.StatusConfirmed,
	})
	testutil.SeedReservation(t, db, &models.Reservation{
		ID: "pending", CottageID: "c1", UserUsername: "ana",
		StartDate: day(2024, 6, 10), EndDate: day(2024, 6, 15), Status: models.StatusPending,
	})
	testutil.SeedReservation(t, db, &models.Reservation{
		ID: "cancelled", CottageID: "c1", UserUsername: "ana",
		StartDate: day(2024, 8, 1), EndDate: day(2024, 8, 5), Status: models.StatusCancelled,
	})
	testutil.SeedReservation(t, db, &models.Reservation{
		ID: "expired", CottageID: "c1", UserUsername: "ana",
		StartDate: day(2024, 9, 1), EndDate: day(2024, 9, 5), Status: models.StatusExpired,
	})

	checker := NewAvailabilityChecker(repositories.NewReservationRepository(db))
	ctx := context.Background()

	tests := []struct {
		name       string
		cottage    string
		start, end time.Time
		conflict   bool
	}{
		{"overlaps confirmed tail", "c1", day(2024, 7, 4), day(2024, 7, 8), true},
		{"inside confirmed", "c1", day(2024, 7, 2), day(2024, 7, 3), true},
		{"covers confirmed", "c1", day(2024, 6, 28), day(2024, 7, 10), true},
		{"check-in on pending checkout", "c1", day(2024, 6, 15), day(2024, 6, 20), true},
		{"checkout on confirmed check-in", "c1", day(2024, 6, 25), day(2024, 7, 1), true},
		{"free gap", "c1", day(2024, 6, 16), day(2024, 6, 30), false},
		{"cancelled does not hold dates", "c1", day(2024, 8, 1), day(2024, 8, 5), false},
		{"expired does not hold dates", "c1", day(2024, 9, 2), day(2024, 9, 3), false},
		{"other cottage", "c2", day(2024, 7, 1), day(2024, 7, 5), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conflict, err := checker.HasOverlap(ctx, tt.cottage, tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.conflict, conflict)

			available, err := checker.IsAvailable(ctx, tt.cottage, tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, !tt.conflict, available)
		})
	}
}
