package services

import (
	"context"
	"time"
)

// OverlapFinder answers whether an active reservation of a cottage touches a date range.
type OverlapFinder interface {
	HasOverlap(ctx context.Context, cottageID string, start, end time.Time, excludeID string) (bool, error)
}

// AvailabilityChecker is the read-only view of a cottage's calendar.
type AvailabilityChecker struct {
	finder OverlapFinder
}

func NewAvailabilityChecker(finder OverlapFinder) *AvailabilityChecker {
	return &AvailabilityChecker{finder: finder}
}

// HasOverlap is true when a pending or confirmed reservation has
// existingStart <= end and existingEnd >= start.
func (a *AvailabilityChecker) HasOverlap(ctx context.Context, cottageID string, start, end time.Time) (bool, error) {
	return a.finder.HasOverlap(ctx, cottageID, start, end, "")
}

func (a *AvailabilityChecker) IsAvailable(ctx context.Context, cottageID string, start, end time.Time) (bool, error) {
	conflict, err := a.HasOverlap(ctx, cottageID, start, end)
	if err != nil {
		return false, err
	}
	return !conflict, nil
}
