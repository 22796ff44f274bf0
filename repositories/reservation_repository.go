package repositories

import (
	"context"
	stderrors "errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vikendica/errors"
	"vikendica/models"
)

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

const sqliteDialect = "sqlite"

// Ordering for list queries
const (
	OrderStartAsc    = "start_date ASC"
	OrderStartDesc   = "start_date DESC"
	OrderCreatedDesc = "created_at DESC"
	OrderRatedDesc   = "rating_rated_at DESC"
)

func (r *ReservationRepository) FindByID(ctx context.Context, id string) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Cottage").
		Where("id = ?", id).
		First(&reservation).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.ErrReservationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// HasOverlap reports whether an active reservation of the cottage touches [start, end].
// Both ends are inclusive. excludeID skips one reservation, empty for none.
func (r *ReservationRepository) HasOverlap(ctx context.Context, cottageID string, start, end time.Time, excludeID string) (bool, error) {
	return hasOverlap(r.db.WithContext(ctx), cottageID, start, end, excludeID)
}

func hasOverlap(db *gorm.DB, cottageID string, start, end time.Time, excludeID string) (bool, error) {
	query := db.Model(&models.Reservation{}).
		Where("cottage_id = ?", cottageID).
		Where("status IN ?", models.ActiveStatuses).
		Where("start_date <= ? AND end_date >= ?", end, start)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// lockCottage takes the row lock that serializes writers of one cottage's calendar.
// SQLite has no SELECT ... FOR UPDATE; there a no-op touch of the row takes the write lock.
func lockCottage(tx *gorm.DB, cottageID string, at time.Time) error {
	if tx.Dialector.Name() == sqliteDialect {
		result := tx.Model(&models.Cottage{}).
			Where("id = ?", cottageID).
			UpdateColumn("updated_at", at)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errors.ErrCottageNotFound
		}
		return nil
	}

	var cottage models.Cottage
	err := lockCottageQuery(tx, cottageID).First(&cottage).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return errors.ErrCottageNotFound
	}
	return err
}

func lockCottageQuery(tx *gorm.DB, cottageID string) *gorm.DB {
	return tx.Model(&models.Cottage{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", cottageID)
}

// CreateIfAvailable inserts the reservation unless an active one overlaps its dates.
// The check and the insert run in one transaction holding the cottage row lock.
func (r *ReservationRepository) CreateIfAvailable(ctx context.Context, reservation *models.Reservation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockCottage(tx, reservation.CottageID, reservation.CreatedAt); err != nil {
			return err
		}

		conflict, err := hasOverlap(tx, reservation.CottageID, reservation.StartDate, reservation.EndDate, "")
		if err != nil {
			return err
		}
		if conflict {
			return errors.ErrDateConflict
		}

		return tx.Omit(clause.Associations).Create(reservation).Error
	})
}

// UpdateStatus moves the reservation to `to` only while it is in one of `from`.
// It reports whether a row changed.
func (r *ReservationRepository) UpdateStatus(ctx context.Context, id string, from []models.ReservationStatus, to models.ReservationStatus, at time.Time) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ?", id)
	if len(from) > 0 {
		query = query.Where("status IN ?", from)
	}

	result := query.UpdateColumns(map[string]interface{}{
		"status":     to,
		"updated_at": at,
	})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// RatedFinishedCottages lists the cottages of rated, confirmed reservations whose end date has
// passed, the ones CompleteFinished is about to move into the rating aggregate.
func (r *ReservationRepository) RatedFinishedCottages(ctx context.Context, now time.Time) ([]string, error) {
	var cottageIDs []string
	err := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("status = ? AND end_date < ? AND rating_score IS NOT NULL", models.StatusConfirmed, now).
		Distinct().
		Pluck("cottage_id", &cottageIDs).Error
	if err != nil {
		return nil, err
	}
	return cottageIDs, nil
}

// CompleteFinished marks confirmed reservations whose end date has passed as completed.
func (r *ReservationRepository) CompleteFinished(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("status = ? AND end_date < ?", models.StatusConfirmed, now).
		UpdateColumns(map[string]interface{}{
			"status":     models.StatusCompleted,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}

// ExpireUnconfirmed marks pending reservations whose start date has passed as expired.
func (r *ReservationRepository) ExpireUnconfirmed(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("status = ? AND start_date < ?", models.StatusPending, now).
		UpdateColumns(map[string]interface{}{
			"status":     models.StatusExpired,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}

// ListByUser returns the user's reservations, optionally limited to statuses.
func (r *ReservationRepository) ListByUser(ctx context.Context, username string, statuses []models.ReservationStatus, order string) ([]models.Reservation, error) {
	query := r.db.WithContext(ctx).
		Preload("Cottage").
		Where("user_username = ?", username)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}

	var reservations []models.Reservation
	if err := query.Order(order).Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *ReservationRepository) ListByCottage(ctx context.Context, cottageID string) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.WithContext(ctx).
		Where("cottage_id = ?", cottageID).
		Order(OrderStartAsc).
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

// SaveRating writes the rating of a completed reservation. It reports false when the
// reservation is gone or no longer completed.
func (r *ReservationRepository) SaveRating(ctx context.Context, id string, rating models.Rating, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ? AND status = ?", id, models.StatusCompleted).
		UpdateColumns(map[string]interface{}{
			"rating_score":    rating.Score,
			"rating_comment":  rating.Comment,
			"rating_rated_at": rating.RatedAt,
			"updated_at":      at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ClearRating removes the rating. It reports false when there was none.
func (r *ReservationRepository) ClearRating(ctx context.Context, id string, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ? AND rating_score IS NOT NULL", id).
		UpdateColumns(map[string]interface{}{
			"rating_score":    nil,
			"rating_comment":  nil,
			"rating_rated_at": nil,
			"updated_at":      at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// RatedScores returns the scores of the cottage's completed, rated reservations.
func (r *ReservationRepository) RatedScores(ctx context.Context, cottageID string) ([]int, error) {
	var scores []int
	err := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("cottage_id = ? AND status = ? AND rating_score IS NOT NULL", cottageID, models.StatusCompleted).
		Pluck("rating_score", &scores).Error
	if err != nil {
		return nil, err
	}
	return scores, nil
}

// RatedFilter selects completed, rated reservations by cottage or by user.
type RatedFilter struct {
	CottageID    string
	UserUsername string
}

func (r *ReservationRepository) ListRated(ctx context.Context, filter RatedFilter) ([]models.Reservation, error) {
	query := r.db.WithContext(ctx).
		Where("status = ? AND rating_score IS NOT NULL", models.StatusCompleted)
	if filter.CottageID != "" {
		query = query.Where("cottage_id = ?", filter.CottageID)
	}
	if filter.UserUsername != "" {
		query = query.Where("user_username = ?", filter.UserUsername)
	}

	var reservations []models.Reservation
	if err := query.Order(OrderRatedDesc).Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// MoveToCottage re-points a reservation to another cottage. An active reservation must not
// overlap another active one on the target cottage.
func (r *ReservationRepository) MoveToCottage(ctx context.Context, id, cottageID string, at time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockCottage(tx, cottageID, at); err != nil {
			return err
		}

		var reservation models.Reservation
		err := tx.Where("id = ?", id).First(&reservation).Error
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrReservationNotFound
		}
		if err != nil {
			return err
		}

		if reservation.Status.Active() {
			conflict, err := hasOverlap(tx, cottageID, reservation.StartDate, reservation.EndDate, reservation.ID)
			if err != nil {
				return err
			}
			if conflict {
				return errors.ErrDateConflict
			}
		}

		return tx.Model(&models.Reservation{}).
			Where("id = ?", id).
			UpdateColumns(map[string]interface{}{
				"cottage_id": cottageID,
				"updated_at": at,
			}).Error
	})
}

func (r *ReservationRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}
