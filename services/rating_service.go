package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"vikendica/constants"
	"vikendica/errors"
	"vikendica/models"
	"vikendica/repositories"
	"vikendica/services/logger"
	"vikendica/services/notification"
)

// RatingStore is the persistence of ratings embedded in reservations.
type RatingStore interface {
	FindByID(ctx context.Context, id string) (*models.Reservation, error)
	SaveRating(ctx context.Context, id string, rating models.Rating, at time.Time) (bool, error)
	ClearRating(ctx context.Context, id string, at time.Time) (bool, error)
	RatedScores(ctx context.Context, cottageID string) ([]int, error)
	ListRated(ctx context.Context, filter repositories.RatedFilter) ([]models.Reservation, error)
}

type RecordRatingInput struct {
	ReservationID string
	Score         int
	Comment       string
}

type RatingService struct {
	reservations RatingStore
	cottages     CottageStore
	cache        ReservationCache
	notifier     notification.Service
	logger       logger.Logger
	clock        Clock
}

type RatingServiceOptions struct {
	Reservations RatingStore
	Cottages     CottageStore
	Cache        ReservationCache
	Notifier     notification.Service
	Logger       logger.Logger
	Clock        Clock
}

func NewRatingService(opts RatingServiceOptions) *RatingService {
	s := &RatingService{
		reservations: opts.Reservations,
		cottages:     opts.Cottages,
		cache:        opts.Cache,
		notifier:     opts.Notifier,
		logger:       opts.Logger,
		clock:        opts.Clock,
	}
	if s.cache == nil {
		s.cache = noopCache{}
	}
	if s.notifier == nil {
		s.notifier = notification.Nop{}
	}
	if s.logger == nil {
		s.logger = logger.NewDiscardLogger()
	}
	if s.clock == nil {
		s.clock = SystemClock()
	}
	return s
}

// AverageRating is the arithmetic mean of the scores, or NoRating when there are none.
func AverageRating(scores []int) float64 {
	if len(scores) == 0 {
		return models.NoRating
	}
	total := 0
	for _, score := range scores {
		total += score
	}
	return float64(total) / float64(len(scores))
}

// Record stores or replaces the booking user's rating of a completed stay and refreshes
// the cottage aggregate.
func (s *RatingService) Record(ctx context.Context, actor models.Actor, input RecordRatingInput) (*models.Reservation, error) {
	reservation, err := s.findReservation(ctx, input.ReservationID)
	if err != nil {
		return nil, err
	}
	if !reservation.BelongsTo(actor.Username) {
		return nil, errors.Forbidden("You can only rate your own reservations")
	}
	if reservation.Status != models.StatusCompleted {
		return nil, errors.InvalidState("Only completed reservations can be rated")
	}
	if input.Score < 1 || input.Score > 5 {
		return nil, errors.InvalidInput("Rating must be between 1 and 5")
	}
	if len([]rune(input.Comment)) > constants.MaxTextLength {
		return nil, errors.InvalidInput(fmt.Sprintf("Comment cannot exceed %d characters", constants.MaxTextLength))
	}

	now := s.clock.Now()
	rating := models.NewRating(input.Score, input.Comment, now)
	saved, err := s.reservations.SaveRating(ctx, reservation.ID, rating, now)
	if err != nil {
		return nil, errors.Internal(err)
	}
	if !saved {
		return nil, errors.InvalidState("Only completed reservations can be rated")
	}
	reservation.Rating = rating
	reservation.UpdatedAt = now

	if _, err := s.RecomputeCottageRating(ctx, reservation.CottageID); err != nil {
		return nil, err
	}

	s.invalidateFor(ctx, reservation)
	s.publish(ctx, notification.NewEventBuilder(notification.RatingRecorded).
		ForReservation(reservation.ID, reservation.CottageID, reservation.UserUsername, string(reservation.Status)).
		With("score", input.Score).
		Build(now))

	return reservation, nil
}

// Delete removes the booking user's rating and refreshes the cottage aggregate.
func (s *RatingService) Delete(ctx context.Context, actor models.Actor, reservationID string) error {
	reservation, err := s.findReservation(ctx, reservationID)
	if err != nil {
		return err
	}
	if !reservation.BelongsTo(actor.Username) {
		return errors.Forbidden("You can only delete ratings of your own reservations")
	}
	if !reservation.Rating.Present() {
		return errors.NotFound("Rating not found")
	}

	now := s.clock.Now()
	cleared, err := s.reservations.ClearRating(ctx, reservation.ID, now)
	if err != nil {
		return errors.Internal(err)
	}
	if !cleared {
		return errors.NotFound("Rating not found")
	}

	if _, err := s.RecomputeCottageRating(ctx, reservation.CottageID); err != nil {
		return err
	}

	s.invalidateFor(ctx, reservation)
	s.publish(ctx, notification.NewEventBuilder(notification.RatingDeleted).
		ForReservation(reservation.ID, reservation.CottageID, reservation.UserUsername, string(reservation.Status)).
		Build(now))
	return nil
}

// Get returns the reservation carrying the rating.
func (s *RatingService) Get(ctx context.Context, reservationID string) (*models.Reservation, error) {
	reservation, err := s.findReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if !reservation.Rating.Present() {
		return nil, errors.NotFound("Rating not found")
	}
	return reservation, nil
}

func (s *RatingService) ListByCottage(ctx context.Context, cottageID string) ([]models.Reservation, error) {
	reservations, err := s.reservations.ListRated(ctx, repositories.RatedFilter{CottageID: cottageID})
	if err != nil {
		return nil, errors.Internal(err)
	}
	return reservations, nil
}

func (s *RatingService) ListByUser(ctx context.Context, username string) ([]models.Reservation, error) {
	reservations, err := s.reservations.ListRated(ctx, repositories.RatedFilter{UserUsername: username})
	if err != nil {
		return nil, errors.Internal(err)
	}
	return reservations, nil
}

// RecomputeCottageRating recalculates Ocena from every rated, completed reservation of the cottage.
func (s *RatingService) RecomputeCottageRating(ctx context.Context, cottageID string) (float64, error) {
	scores, err := s.reservations.RatedScores(ctx, cottageID)
	if err != nil {
		return 0, errors.Internal(err)
	}

	ocena := AverageRating(scores)
	if err := s.cottages.UpdateRating(ctx, cottageID, ocena); err != nil {
		if stderrors.Is(err, errors.ErrCottageNotFound) {
			s.logger.Warn("cottage %s is gone, rating aggregate not stored", cottageID)
			return ocena, nil
		}
		return 0, errors.Internal(err)
	}

	s.logger.Debug("cottage %s rating recomputed to %.2f from %d ratings", cottageID, ocena, len(scores))
	return ocena, nil
}

func (s *RatingService) findReservation(ctx context.Context, id string) (*models.Reservation, error) {
	reservation, err := s.reservations.FindByID(ctx, id)
	if stderrors.Is(err, errors.ErrReservationNotFound) {
		return nil, errors.NotFound("Reservation not found")
	}
	if err != nil {
		return nil, errors.Internal(err)
	}
	return reservation, nil
}

func (s *RatingService) invalidateFor(ctx context.Context, reservation *models.Reservation) {
	keys := append(userListKeys(reservation.UserUsername), CottageListKey(reservation.CottageID))
	s.cache.Invalidate(ctx, keys...)
}

func (s *RatingService) publish(ctx context.Context, event notification.Event) {
	if err := s.notifier.Publish(ctx, event); err != nil {
		s.logger.Warn("publish %s failed: %v", event.Type, err)
	}
}
