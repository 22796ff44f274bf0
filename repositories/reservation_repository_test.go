package repositories

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"vikendica/errors"
	"vikendica/models"
	"vikendica/testutil"
)

func newReservation(id, cottageID string, start, end time.Time) *models.Reservation {
	return &models.Reservation{
		ID:           id,
		CottageID:    cottageID,
		UserUsername: "ana",
		StartDate:    start,
		EndDate:      end,
		Adults:       1,
		Nights:       int(end.Sub(start).Hours() / 24),
		Status:       models.StatusPending,
		CreatedAt:    testutil.Date(2024, 5, 1),
	}
}

func TestCreateIfAvailable(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.SeedCottage(t, db, "c1", "owner", 100, 80)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	first := newReservation("r1", "c1", testutil.Date(2024, 6, 10), testutil.Date(2024, 6, 15))
	require.NoError(t, repo.CreateIfAvailable(ctx, first))

	overlapping := newReservation("r2", "c1", testutil.Date(2024, 6, 15), testutil.Date(2024, 6, 20))
	err := repo.CreateIfAvailable(ctx, overlapping)
	assert.True(t, stderrors.Is(err, errors.ErrDateConflict))

	missing := newReservation("r3", "nope", testutil.Date(2024, 6, 10), testutil.Date(2024, 6, 15))
	err = repo.CreateIfAvailable(ctx, missing)
	assert.True(t, stderrors.Is(err, errors.ErrCottageNotFound))

	_, err = repo.FindByID(ctx, "r2")
	assert.True(t, stderrors.Is(err, errors.ErrReservationNotFound))
}

func TestCreateIfAvailableConcurrent(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.SeedCottage(t, db, "c1", "owner", 100, 80)
	repo := NewReservationRepository(db)

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r := newReservation(
				string(rune('a'+i)),
				"c1",
				testutil.Date(2024, 7, 1).AddDate(0, 0, i%2),
				testutil.Date(2024, 7, 5),
			)
			err := repo.CreateIfAvailable(context.Background(), r)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case stderrors.Is(err, errors.ErrDateConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, attempts-1, conflicts)
}

func TestUpdateStatusIsConditional(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.SeedCottage(t, db, "c1", "owner", 100, 80)
	repo := NewReservationRepository(db)
	ctx := context.Background()
	at := testutil.Date(2024, 5, 2)

	require.NoError(t, repo.CreateIfAvailable(ctx, newReservation("r1", "c1", testutil.Date(2024, 6, 1), testutil.Date(2024, 6, 3))))

	changed, err := repo.UpdateStatus(ctx, "r1", []models.ReservationStatus{models.StatusConfirmed}, models.StatusCompleted, at)
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = repo.UpdateStatus(ctx, "r1", models.ActiveStatuses, models.StatusCancelled, at)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.UpdateStatus(ctx, "r1", models.ActiveStatuses, models.StatusCancelled, at)
	require.NoError(t, err)
	assert.False(t, changed)

	stored, err := repo.FindByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, stored.Status)
	assert.True(t, stored.UpdatedAt.Equal(at))
	require.NotNil(t, stored.Cottage)
	assert.Equal(t, "c1", stored.Cottage.ID)
}

func TestRatingColumns(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.SeedCottage(t, db, "c1", "owner", 100, 80)
	repo := NewReservationRepository(db)
	ctx := context.Background()
	at := testutil.Date(2024, 5, 2)

	pending := newReservation("pending", "c1", testutil.Date(2024, 6, 1), testutil.Date(2024, 6, 3))
	testutil.SeedReservation(t, db, pending)
	done := newReservation("done", "c1", testutil.Date(2024, 4, 1), testutil.Date(2024, 4, 3))
	done.Status = models.StatusCompleted
	testutil.SeedReservation(t, db, done)

	saved, err := repo.SaveRating(ctx, "pending", models.NewRating(5, "", at), at)
	require.NoError(t, err)
	assert.False(t, saved)

	saved, err = repo.SaveRating(ctx, "done", models.NewRating(4, "nice", at), at)
	require.NoError(t, err)
	assert.True(t, saved)

	scores, err := repo.RatedScores(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, []int{4}, scores)

	stored, err := repo.FindByID(ctx, "done")
	require.NoError(t, err)
	require.True(t, stored.Rating.Present())
	assert.Equal(t, "nice", *stored.Rating.Comment)

	cleared, err := repo.ClearRating(ctx, "done", at)
	require.NoError(t, err)
	assert.True(t, cleared)

	cleared, err = repo.ClearRating(ctx, "done", at)
	require.NoError(t, err)
	assert.False(t, cleared)

	stored, err = repo.FindByID(ctx, "done")
	require.NoError(t, err)
	assert.False(t, stored.Rating.Present())
	assert.Nil(t, stored.Rating.Comment)
	assert.Nil(t, stored.Rating.RatedAt)
}

func TestCottageRepository(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewCottageRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Cottage{
		ID:            "c9",
		OwnerUsername: "owner",
		Title:         "Lakeside",
		PriceSummer:   120,
		PriceWinter:   90,
		Photos:        []string{"a.jpg", "b.jpg"},
		Location:      models.Location{Lat: 44.8, Lng: 20.4},
	}))

	cottage, err := repo.FindByID(ctx, "c9")
	require.NoError(t, err)
	assert.Equal(t, -1.0, cottage.Ocena)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, cottage.Photos)
	assert.Equal(t, 44.8, cottage.Location.Lat)

	require.NoError(t, repo.UpdateRating(ctx, "c9", 4.5))
	cottage, err = repo.FindByID(ctx, "c9")
	require.NoError(t, err)
	assert.Equal(t, 4.5, cottage.Ocena)

	assert.True(t, stderrors.Is(repo.UpdateRating(ctx, "nope", 3), errors.ErrCottageNotFound))
	_, err = repo.FindByID(ctx, "nope")
	assert.True(t, stderrors.Is(err, errors.ErrCottageNotFound))
}

func TestUserRepositoryExists(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.SeedUser(t, db, "ana", "tourist")
	testutil.SeedUser(t, db, "gone", "tourist")
	require.NoError(t, db.Model(&models.User{}).Where("username = ?", "gone").Update("active", false).Error)

	repo := NewUserRepository(db)
	ctx := context.Background()

	exists, err := repo.Exists(ctx, "ana")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, "gone")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.Exists(ctx, "nobody")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLockCottageQueryLocksRowOnPostgres(t *testing.T) {
	db, err := gorm.Open(postgres.Open("host=localhost user=vikendica dbname=vikendica sslmode=disable"), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	var cottage models.Cottage
	stmt := lockCottageQuery(db, "c1").First(&cottage).Statement
	sql := stmt.SQL.String()

	assert.True(t, strings.HasPrefix(sql, "SELECT"), sql)
	assert.Contains(t, sql, "FOR UPDATE")
	assert.NotContains(t, sql, "updated_at")
}

func TestRatedFinishedCottages(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewReservationRepository(db)
	ctx := context.Background()
	now := testutil.Date(2024, 5, 1)

	testutil.SeedCottage(t, db, "c1", "owner", 100, 80)
	testutil.SeedCottage(t, db, "c2", "owner", 100, 80)

	rated := func(r *models.Reservation) *models.Reservation {
		r.Rating = models.NewRating(4, "", now)
		return r
	}
	ended := newReservation("ended", "c1", testutil.Date(2024, 3, 1), testutil.Date(2024, 3, 4))
	ended.Status = models.StatusConfirmed
	testutil.SeedReservation(t, db, rated(ended))

	endedAgain := newReservation("ended-again", "c1", testutil.Date(2024, 3, 10), testutil.Date(2024, 3, 14))
	endedAgain.Status = models.StatusConfirmed
	testutil.SeedReservation(t, db, rated(endedAgain))

	unrated := newReservation("unrated", "c2", testutil.Date(2024, 3, 1), testutil.Date(2024, 3, 4))
	unrated.Status = models.StatusConfirmed
	testutil.SeedReservation(t, db, unrated)

	upcoming := newReservation("upcoming", "c2", testutil.Date(2024, 6, 1), testutil.Date(2024, 6, 4))
	upcoming.Status = models.StatusConfirmed
	testutil.SeedReservation(t, db, rated(upcoming))

	cottageIDs, err := repo.RatedFinishedCottages(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, cottageIDs)
}
