package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"vikendica/constants"
	"vikendica/errors"
	"vikendica/models"
	"vikendica/repositories"
	"vikendica/services/notification"
	"vikendica/testutil"
)

type ratingFixture struct {
	db      *gorm.DB
	clock   *FixedClock
	events  *notification.Recorder
	service *RatingService
	ana     models.Actor
	marko   models.Actor
}

func newRatingFixture(t *testing.T) *ratingFixture {
	t.Helper()

	db := testutil.NewTestDB(t)
	testutil.SeedCottage(t, db, "c1", "owner", 100, 80)
	testutil.SeedCottage(t, db, "c2", "owner", 100, 80)

	seed := func(id, cottage, user string, status models.ReservationStatus, start time.Time) {
		testutil.SeedReservation(t, db, &models.Reservation{
			ID: id, CottageID: cottage, UserUsername: user,
			StartDate: start, EndDate: start.AddDate(0, 0, 3), Status: status,
		})
	}
	seed("done-ana", "c1", "ana", models.StatusCompleted, day(2024, 3, 1))
	seed("done-marko", "c1", "marko", models.StatusCompleted, day(2024, 3, 10))
	seed("done-ana-c2", "c2", "ana", models.StatusCompleted, day(2024, 3, 20))
	seed("confirmed-ana", "c1", "ana", models.StatusConfirmed, day(2024, 6, 1))

	f := &ratingFixture{
		db:     db,
		clock:  NewFixedClock(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)),
		events: &notification.Recorder{},
		ana:    models.Actor{Username: "ana", Role: constants.RoleTourist},
		marko:  models.Actor{Username: "marko", Role: constants.RoleTourist},
	}
	repo := repositories.NewReservationRepository(db)
	f.service = NewRatingService(RatingServiceOptions{
		Reservations: repo,
		Cottages:     repositories.NewCottageRepository(db),
		Notifier:     f.events,
		Clock:        f.clock,
	})
	return f
}

func (f *ratingFixture) ocena(t *testing.T, cottageID string) float64 {
	t.Helper()
	cottage, err := repositories.NewCottageRepository(f.db).FindByID(context.Background(), cottageID)
	require.NoError(t, err)
	return cottage.Ocena
}

func TestRecordRating(t *testing.T) {
	f := newRatingFixture(t)
	ctx := context.Background()

	assert.Equal(t, -1.0, f.ocena(t, "c1"))

	reservation, err := f.service.Record(ctx, f.ana, RecordRatingInput{ReservationID: "done-ana", Score: 4, Comment: "Lovely"})
	require.NoError(t, err)
	require.True(t, reservation.Rating.Present())
	assert.Equal(t, 4, *reservation.Rating.Score)
	assert.Equal(t, "Lovely", *reservation.Rating.Comment)
	assert.True(t, reservation.Rating.RatedAt.Equal(f.clock.Now()))
	assert.Equal(t, 4.0, f.ocena(t, "c1"))

	_, err = f.service.Record(ctx, f.marko, RecordRatingInput{ReservationID: "done-marko", Score: 3})
	require.NoError(t, err)
	assert.Equal(t, 3.5, f.ocena(t, "c1"))

	// overwriting replaces the previous score
	_, err = f.service.Record(ctx, f.ana, RecordRatingInput{ReservationID: "done-ana", Score: 1})
	require.NoError(t, err)
	assert.Equal(t, 2.0, f.ocena(t, "c1"))

	// other cottages are untouched
	assert.Equal(t, -1.0, f.ocena(t, "c2"))

	assert.Equal(t, []string{
		notification.RatingRecorded,
		notification.RatingRecorded,
		notification.RatingRecorded,
	}, f.events.Types())
}

func TestRecordRatingErrors(t *testing.T) {
	f := newRatingFixture(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		actor models.Actor
		input RecordRatingInput
		code  errors.ErrorCode
	}{
		{"unknown reservation", f.ana, RecordRatingInput{ReservationID: "nope", Score: 5}, errors.ErrCodeNotFound},
		{"not the booking user", f.marko, RecordRatingInput{ReservationID: "done-ana", Score: 5}, errors.ErrCodeForbidden},
		{"not completed", f.ana, RecordRatingInput{ReservationID: "confirmed-ana", Score: 5}, errors.ErrCodeInvalidState},
		{"state checked before score", f.ana, RecordRatingInput{ReservationID: "confirmed-ana", Score: 9}, errors.ErrCodeInvalidState},
		{"score too low", f.ana, RecordRatingInput{ReservationID: "done-ana", Score: 0}, errors.ErrCodeInvalidInput},
		{"score too high", f.ana, RecordRatingInput{ReservationID: "done-ana", Score: 6}, errors.ErrCodeInvalidInput},
		{"comment too long", f.ana, RecordRatingInput{ReservationID: "done-ana", Score: 5, Comment: strings.Repeat("a", 501)}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Record(ctx, tt.actor, tt.input)
			assertCode(t, err, tt.code)
		})
	}
	assert.Equal(t, -1.0, f.ocena(t, "c1"))
	assert.Empty(t, f.events.Events)
}

func TestDeleteRating(t *testing.T) {
	f := newRatingFixture(t)
	ctx := context.Background()

	err := f.service.Delete(ctx, f.ana, "done-ana")
	assertCode(t, err, errors.ErrCodeNotFound)

	_, err = f.service.Record(ctx, f.ana, RecordRatingInput{ReservationID: "done-ana", Score: 5})
	require.NoError(t, err)
	_, err = f.service.Record(ctx, f.marko, RecordRatingInput{ReservationID: "done-marko", Score: 2})
	require.NoError(t, err)
	assert.Equal(t, 3.5, f.ocena(t, "c1"))

	err = f.service.Delete(ctx, f.marko, "done-ana")
	assertCode(t, err, errors.ErrCodeForbidden)

	require.NoError(t, f.service.Delete(ctx, f.ana, "done-ana"))
	assert.Equal(t, 2.0, f.ocena(t, "c1"))

	_, err = f.service.Get(ctx, "done-ana")
	assertCode(t, err, errors.ErrCodeNotFound)

	require.NoError(t, f.service.Delete(ctx, f.marko, "done-marko"))
	assert.Equal(t, -1.0, f.ocena(t, "c1"))
}

func TestRatingListings(t *testing.T) {
	f := newRatingFixture(t)
	ctx := context.Background()

	_, err := f.service.Record(ctx, f.ana, RecordRatingInput{ReservationID: "done-ana", Score: 5})
	require.NoError(t, err)
	f.clock.Advance(time.Hour)
	_, err = f.service.Record(ctx, f.ana, RecordRatingInput{ReservationID: "done-ana-c2", Score: 3})
	require.NoError(t, err)
	f.clock.Advance(time.Hour)
	_, err = f.service.Record(ctx, f.marko, RecordRatingInput{ReservationID: "done-marko", Score: 4})
	require.NoError(t, err)

	byCottage, err := f.service.ListByCottage(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, byCottage, 2)
	assert.Equal(t, "done-marko", byCottage[0].ID)
	assert.Equal(t, "done-ana", byCottage[1].ID)

	byUser, err := f.service.ListByUser(ctx, "ana")
	require.NoError(t, err)
	require.Len(t, byUser, 2)
	assert.Equal(t, "done-ana-c2", byUser[0].ID)

	got, err := f.service.Get(ctx, "done-marko")
	require.NoError(t, err)
	assert.Equal(t, 4, *got.Rating.Score)
}

func TestRecomputeIgnoresNonCompleted(t *testing.T) {
	f := newRatingFixture(t)
	ctx := context.Background()

	_, err := f.service.Record(ctx, f.ana, RecordRatingInput{ReservationID: "done-ana", Score: 5})
	require.NoError(t, err)

	// a rated reservation that leaves completed no longer counts
	require.NoError(t, f.db.Model(&models.Reservation{}).Where("id = ?", "done-ana").
		UpdateColumn("status", models.StatusCancelled).Error)

	ocena, err := f.service.RecomputeCottageRating(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, -1.0, ocena)
	assert.Equal(t, -1.0, f.ocena(t, "c1"))
}

func TestAverageRating(t *testing.T) {
	assert.Equal(t, -1.0, AverageRating(nil))
	assert.Equal(t, 5.0, AverageRating([]int{5}))
	assert.Equal(t, 4.0, AverageRating([]int{3, 5}))
	assert.InDelta(t, 3.6667, AverageRating([]int{3, 3, 5}), 0.0001)
}

func TestReservationChangesRefreshCottageRating(t *testing.T) {
	f := newRatingFixture(t)
	ctx := context.Background()
	admin := models.Actor{Username: "root", Role: constants.RoleAdmin}

	reservations := NewReservationService(ReservationServiceOptions{
		Reservations: repositories.NewReservationRepository(f.db),
		Cottages:     repositories.NewCottageRepository(f.db),
		Users:        repositories.NewUserRepository(f.db),
		Ratings:      f.service,
		Clock:        f.clock,
	})

	_, err := f.service.Record(ctx, f.ana, RecordRatingInput{ReservationID: "done-ana", Score: 5})
	require.NoError(t, err)
	_, err = f.service.Record(ctx, f.marko, RecordRatingInput{ReservationID: "done-marko", Score: 1})
	require.NoError(t, err)
	require.Equal(t, 3.0, f.ocena(t, "c1"))

	// leaving completed drops the score from the average
	_, err = reservations.UpdateStatus(ctx, admin, "done-marko", "cancelled")
	require.NoError(t, err)
	assert.Equal(t, 5.0, f.ocena(t, "c1"))

	_, err = reservations.UpdateStatus(ctx, admin, "done-marko", "completed")
	require.NoError(t, err)
	assert.Equal(t, 3.0, f.ocena(t, "c1"))

	// a rated stay completed by the sweep counts again
	_, err = reservations.UpdateStatus(ctx, admin, "done-marko", "confirmed")
	require.NoError(t, err)
	assert.Equal(t, 5.0, f.ocena(t, "c1"))

	result, err := reservations.AutoSweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Completed)
	assert.Equal(t, 3.0, f.ocena(t, "c1"))

	// moving a rated stay moves its score
	_, err = reservations.UpdateCottage(ctx, admin, "done-ana", "c2")
	require.NoError(t, err)
	assert.Equal(t, 1.0, f.ocena(t, "c1"))
	assert.Equal(t, 5.0, f.ocena(t, "c2"))

	for _, cottageID := range []string{"c1", "c2"} {
		scores, err := repositories.NewReservationRepository(f.db).RatedScores(ctx, cottageID)
		require.NoError(t, err)
		assert.Equal(t, AverageRating(scores), f.ocena(t, cottageID), cottageID)
	}
}
