package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyTransition(t *testing.T) {
	allowed := map[ReservationStatus][]ReservationStatus{
		StatusPending:   {StatusConfirmed, StatusCancelled, StatusExpired},
		StatusConfirmed: {StatusCompleted, StatusCancelled},
		StatusCancelled: nil,
		StatusCompleted: nil,
		StatusExpired:   nil,
	}

	for from, targets := range allowed {
		for _, to := range AllStatuses {
			reservation := &Reservation{Status: from}
			err := ApplyTransition(reservation, to)

			if contains(targets, to) {
				assert.NoError(t, err, "%s -> %s", from, to)
				assert.Equal(t, to, reservation.Status)
			} else {
				assert.Error(t, err, "%s -> %s", from, to)
				assert.Equal(t, from, reservation.Status)
			}
		}
	}
}

func TestSourcesFor(t *testing.T) {
	assert.Equal(t, []ReservationStatus{StatusPending}, SourcesFor(StatusConfirmed))
	assert.Equal(t, []ReservationStatus{StatusPending, StatusConfirmed}, SourcesFor(StatusCancelled))
	assert.Equal(t, []ReservationStatus{StatusConfirmed}, SourcesFor(StatusCompleted))
	assert.Equal(t, []ReservationStatus{StatusPending}, SourcesFor(StatusExpired))
	assert.Empty(t, SourcesFor(StatusPending))
}

func TestParseReservationStatus(t *testing.T) {
	for _, status := range AllStatuses {
		parsed, ok := ParseReservationStatus(string(status))
		assert.True(t, ok)
		assert.Equal(t, status, parsed)
	}

	_, ok := ParseReservationStatus("approved")
	assert.False(t, ok)
	_, ok = ParseReservationStatus("Pending")
	assert.False(t, ok)
}

func TestDaysUntilStart(t *testing.T) {
	start := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	reservation := &Reservation{StartDate: start}

	assert.Equal(t, 2, reservation.DaysUntilStart(start.Add(-48*time.Hour)))
	assert.Equal(t, 2, reservation.DaysUntilStart(start.Add(-47*time.Hour)))
	assert.Equal(t, 1, reservation.DaysUntilStart(start.Add(-24*time.Hour)))
	assert.Equal(t, 0, reservation.DaysUntilStart(start))
	assert.Equal(t, -1, reservation.DaysUntilStart(start.Add(36*time.Hour)))
}

func TestCottageBlockedAt(t *testing.T) {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	later := now.Add(24 * time.Hour)
	earlier := now.Add(-24 * time.Hour)

	assert.False(t, (&Cottage{}).BlockedAt(now))
	assert.True(t, (&Cottage{IsBlocked: true}).BlockedAt(now))
	assert.True(t, (&Cottage{IsBlocked: true, BlockedUntil: &later}).BlockedAt(now))
	assert.False(t, (&Cottage{IsBlocked: true, BlockedUntil: &earlier}).BlockedAt(now))
}

func contains(list []ReservationStatus, status ReservationStatus) bool {
	for _, s := range list {
		if s == status {
			return true
		}
	}
	return false
}
