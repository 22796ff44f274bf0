package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"vikendica/builders"
	"vikendica/constants"
	"vikendica/errors"
	"vikendica/models"
	"vikendica/repositories"
	"vikendica/services/logger"
	"vikendica/services/notification"
)

// ReservationStore is the persistence the lifecycle manager needs.
type ReservationStore interface {
	OverlapFinder
	FindByID(ctx context.Context, id string) (*models.Reservation, error)
	CreateIfAvailable(ctx context.Context, reservation *models.Reservation) error
	UpdateStatus(ctx context.Context, id string, from []models.ReservationStatus, to models.ReservationStatus, at time.Time) (bool, error)
	RatedFinishedCottages(ctx context.Context, now time.Time) ([]string, error)
	CompleteFinished(ctx context.Context, now time.Time) (int64, error)
	ExpireUnconfirmed(ctx context.Context, now time.Time) (int64, error)
	ListByUser(ctx context.Context, username string, statuses []models.ReservationStatus, order string) ([]models.Reservation, error)
	ListByCottage(ctx context.Context, cottageID string) ([]models.Reservation, error)
	MoveToCottage(ctx context.Context, id, cottageID string, at time.Time) error
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}

type CottageStore interface {
	FindByID(ctx context.Context, id string) (*models.Cottage, error)
	UpdateRating(ctx context.Context, id string, ocena float64) error
}

type UserFinder interface {
	Exists(ctx context.Context, username string) (bool, error)
}

// RatingRecomputer refreshes the stored aggregate rating of a cottage.
type RatingRecomputer interface {
	RecomputeCottageRating(ctx context.Context, cottageID string) (float64, error)
}

type CreateReservationInput struct {
	CottageID       string
	UserUsername    string
	StartDate       time.Time
	EndDate         time.Time
	Adults          int
	Children        int
	SpecialRequests string
}

type SweepResult struct {
	Completed int64 `json:"completed"`
	Expired   int64 `json:"expired"`
}

func (r SweepResult) Changed() bool {
	return r.Completed+r.Expired > 0
}

type ReservationStatistics struct {
	LastDay   int64
	LastWeek  int64
	LastMonth int64
}

type ReservationService struct {
	reservations      ReservationStore
	cottages          CottageStore
	users             UserFinder
	ratings           RatingRecomputer
	availability      *AvailabilityChecker
	cache             ReservationCache
	notifier          notification.Service
	logger            logger.Logger
	clock             Clock
	cancelNoticeDays  int
	strictTransitions bool
}

type ReservationServiceOptions struct {
	Reservations ReservationStore
	Cottages     CottageStore
	Users        UserFinder
	Ratings      RatingRecomputer
	Cache        ReservationCache
	Notifier     notification.Service
	Logger       logger.Logger
	Clock        Clock

	// CancelNoticeDays is the minimum whole days before start a booking may still be cancelled.
	CancelNoticeDays int
	// StrictTransitions rejects status updates that skip the lifecycle graph.
	StrictTransitions bool
}

func NewReservationService(opts ReservationServiceOptions) *ReservationService {
	s := &ReservationService{
		reservations:      opts.Reservations,
		cottages:          opts.Cottages,
		users:             opts.Users,
		ratings:           opts.Ratings,
		availability:      NewAvailabilityChecker(opts.Reservations),
		cache:             opts.Cache,
		notifier:          opts.Notifier,
		logger:            opts.Logger,
		clock:             opts.Clock,
		cancelNoticeDays:  opts.CancelNoticeDays,
		strictTransitions: opts.StrictTransitions,
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
	if s.cancelNoticeDays <= 0 {
		s.cancelNoticeDays = constants.DefaultCancelNoticeDays
	}
	return s
}

func validateCreateInput(input CreateReservationInput) error {
	switch {
	case input.CottageID == "":
		return errors.InvalidInput("cottageId is required")
	case input.UserUsername == "":
		return errors.InvalidInput("userUsername is required")
	case input.StartDate.IsZero() || input.EndDate.IsZero():
		return errors.InvalidInput("startDate and endDate are required")
	case !input.EndDate.After(input.StartDate):
		return errors.InvalidInput("End date must be after start date")
	case input.Adults < 1:
		return errors.InvalidInput("At least one adult is required")
	case input.Children < 0:
		return errors.InvalidInput("children cannot be negative")
	case len([]rune(input.SpecialRequests)) > constants.MaxTextLength:
		return errors.InvalidInput(fmt.Sprintf("specialRequests cannot exceed %d characters", constants.MaxTextLength))
	}
	return nil
}

// Create books a cottage for the caller. The reservation starts pending.
func (s *ReservationService) Create(ctx context.Context, actor models.Actor, input CreateReservationInput) (*models.Reservation, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}
	if actor.Username != input.UserUsername {
		return nil, errors.Forbidden("You can only create reservations for yourself")
	}

	cottage, err := s.findCottage(ctx, input.CottageID)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	if cottage.BlockedAt(now) {
		return nil, errors.InvalidState("Cottage is currently blocked and cannot be reserved")
	}

	exists, err := s.users.Exists(ctx, input.UserUsername)
	if err != nil {
		return nil, errors.Internal(err)
	}
	if !exists {
		return nil, errors.NotFound("User not found")
	}

	if err := cottage.ValidatePrices(); err != nil {
		return nil, errors.Internal(err)
	}
	quote := CalculatePrice(input.StartDate, input.EndDate, cottage.PriceSummer, cottage.PriceWinter, input.Adults)

	reservation := builders.NewReservationBuilder().
		WithCottage(cottage.ID).
		WithUser(input.UserUsername).
		WithDates(input.StartDate, input.EndDate).
		WithGuests(input.Adults, input.Children).
		WithPrice(quote.Nights, quote.TotalPrice).
		WithSpecialRequests(input.SpecialRequests).
		WithCreatedAt(now).
		Build()

	if err := s.reservations.CreateIfAvailable(ctx, reservation); err != nil {
		switch {
		case stderrors.Is(err, errors.ErrDateConflict):
			return nil, errors.Conflict("Cottage is already reserved for the selected dates")
		case stderrors.Is(err, errors.ErrCottageNotFound):
			return nil, errors.NotFound("Cottage not found")
		default:
			return nil, errors.Internal(err)
		}
	}
	reservation.Cottage = cottage

	s.logger.Info("reservation %s created for cottage %s by %s", reservation.ID, cottage.ID, reservation.UserUsername)
	s.invalidateFor(ctx, reservation)
	s.publish(ctx, notification.NewEventBuilder(notification.ReservationCreated).
		ForReservation(reservation.ID, reservation.CottageID, reservation.UserUsername, string(reservation.Status)).
		With("totalPrice", reservation.TotalPrice).
		Build(now))

	return reservation, nil
}

// Cancel lets the booking user cancel while enough notice remains before the start date.
func (s *ReservationService) Cancel(ctx context.Context, actor models.Actor, id string) (*models.Reservation, error) {
	reservation, err := s.findReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if !reservation.BelongsTo(actor.Username) {
		return nil, errors.Forbidden("You can only cancel your own reservations")
	}

	probe := *reservation
	if err := models.GetReservationState(reservation.Status).Cancel(&probe); err != nil {
		return nil, errors.InvalidState(fmt.Sprintf("Reservation with status %s cannot be cancelled", reservation.Status))
	}

	now := s.clock.Now()
	if reservation.DaysUntilStart(now) < s.cancelNoticeDays {
		return nil, errors.InvalidState(fmt.Sprintf("Reservations can only be cancelled at least %d days before the start date", s.cancelNoticeDays))
	}

	changed, err := s.reservations.UpdateStatus(ctx, reservation.ID, models.ActiveStatuses, models.StatusCancelled, now)
	if err != nil {
		return nil, errors.Internal(err)
	}
	if !changed {
		return nil, errors.InvalidState("Reservation status changed, please reload")
	}
	previous := reservation.Status
	reservation.Status = models.StatusCancelled
	reservation.UpdatedAt = now

	s.logger.Info("reservation %s cancelled by %s", reservation.ID, actor.Username)
	s.invalidateFor(ctx, reservation)
	s.publish(ctx, notification.NewEventBuilder(notification.ReservationCancelled).
		ForReservation(reservation.ID, reservation.CottageID, reservation.UserUsername, string(reservation.Status)).
		With("previousStatus", string(previous)).
		Build(now))

	return reservation, nil
}

// UpdateStatus sets any of the five statuses. Admins may update every reservation, owners the
// reservations on their own cottages.
func (s *ReservationService) UpdateStatus(ctx context.Context, actor models.Actor, id, status string) (*models.Reservation, error) {
	target, ok := models.ParseReservationStatus(status)
	if !ok {
		return nil, errors.InvalidInput("Invalid status")
	}

	reservation, err := s.findReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, reservation) {
		return nil, errors.Forbidden("Only an administrator or the cottage owner can change the reservation status")
	}

	var from []models.ReservationStatus
	if s.strictTransitions {
		probe := *reservation
		if err := models.ApplyTransition(&probe, target); err != nil {
			return nil, errors.InvalidState(fmt.Sprintf("Cannot change status from %s to %s", reservation.Status, target))
		}
		from = models.SourcesFor(target)
	}

	now := s.clock.Now()
	changed, err := s.reservations.UpdateStatus(ctx, reservation.ID, from, target, now)
	if err != nil {
		return nil, errors.Internal(err)
	}
	if !changed {
		if s.strictTransitions {
			return nil, errors.InvalidState("Reservation status changed, please reload")
		}
		return nil, errors.NotFound("Reservation not found")
	}
	previous := reservation.Status
	reservation.Status = target
	reservation.UpdatedAt = now

	s.logger.Info("reservation %s status %s -> %s by %s", reservation.ID, previous, target, actor.Username)
	s.invalidateFor(ctx, reservation)

	// a rated stay entering or leaving completed changes the cottage average
	if reservation.Rating.Present() && (previous == models.StatusCompleted) != (target == models.StatusCompleted) {
		if err := s.refreshRatings(ctx, reservation.CottageID); err != nil {
			return nil, err
		}
	}

	s.publish(ctx, notification.NewEventBuilder(notification.ReservationStatusChanged).
		ForReservation(reservation.ID, reservation.CottageID, reservation.UserUsername, string(target)).
		With("previousStatus", string(previous)).
		With("changedBy", actor.Username).
		Build(now))

	return reservation, nil
}

// UpdateCottage re-points a reservation to another cottage. Administrators only.
func (s *ReservationService) UpdateCottage(ctx context.Context, actor models.Actor, id, cottageID string) (*models.Reservation, error) {
	if cottageID == "" {
		return nil, errors.InvalidInput("cottageId is required")
	}
	if !actor.IsAdmin() {
		return nil, errors.Forbidden("Only an administrator can move a reservation")
	}

	reservation, err := s.findReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	cottage, err := s.findCottage(ctx, cottageID)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	if reservation.Status.Active() && cottage.BlockedAt(now) {
		return nil, errors.InvalidState("Cottage is currently blocked and cannot be reserved")
	}

	if err := s.reservations.MoveToCottage(ctx, reservation.ID, cottage.ID, now); err != nil {
		switch {
		case stderrors.Is(err, errors.ErrDateConflict):
			return nil, errors.Conflict("Cottage is already reserved for the selected dates")
		case stderrors.Is(err, errors.ErrCottageNotFound):
			return nil, errors.NotFound("Cottage not found")
		case stderrors.Is(err, errors.ErrReservationNotFound):
			return nil, errors.NotFound("Reservation not found")
		default:
			return nil, errors.Internal(err)
		}
	}

	previousCottage := reservation.CottageID
	reservation.CottageID = cottage.ID
	reservation.Cottage = cottage
	reservation.UpdatedAt = now

	s.cache.Invalidate(ctx, CottageListKey(previousCottage))
	s.invalidateFor(ctx, reservation)

	if reservation.Rating.Present() && reservation.Status == models.StatusCompleted && previousCottage != cottage.ID {
		if err := s.refreshRatings(ctx, previousCottage, cottage.ID); err != nil {
			return nil, err
		}
	}

	s.publish(ctx, notification.NewEventBuilder(notification.ReservationMoved).
		ForReservation(reservation.ID, reservation.CottageID, reservation.UserUsername, string(reservation.Status)).
		With("previousCottageId", previousCottage).
		Build(now))

	return reservation, nil
}

// AutoSweep completes confirmed stays that have ended and expires pending ones that have
// started. Repeating it changes nothing.
func (s *ReservationService) AutoSweep(ctx context.Context) (SweepResult, error) {
	now := s.clock.Now()

	var rated []string
	if s.ratings != nil {
		var err error
		if rated, err = s.reservations.RatedFinishedCottages(ctx, now); err != nil {
			return SweepResult{}, fmt.Errorf("find rated finished reservations: %w", err)
		}
	}

	completed, err := s.reservations.CompleteFinished(ctx, now)
	if err != nil {
		return SweepResult{}, fmt.Errorf("complete finished reservations: %w", err)
	}
	expired, err := s.reservations.ExpireUnconfirmed(ctx, now)
	if err != nil {
		return SweepResult{Completed: completed}, fmt.Errorf("expire unconfirmed reservations: %w", err)
	}
	if completed > 0 {
		if err := s.refreshRatings(ctx, rated...); err != nil {
			return SweepResult{Completed: completed, Expired: expired}, fmt.Errorf("refresh cottage ratings: %w", err)
		}
	}

	result := SweepResult{Completed: completed, Expired: expired}
	if result.Changed() {
		s.logger.Info("sweep completed %d and expired %d reservations", completed, expired)
		s.cache.InvalidateAll(ctx)
		s.publish(ctx, notification.NewEventBuilder(notification.ReservationsSwept).
			With("completed", completed).
			With("expired", expired).
			Build(now))
	}
	return result, nil
}

// sweepBeforeRead runs the sweep for a read path. Failures are logged, never returned.
func (s *ReservationService) sweepBeforeRead(ctx context.Context) {
	if _, err := s.AutoSweep(ctx); err != nil {
		s.logger.Error("sweep before read failed: %v", err)
	}
}

// GetByID returns a reservation to its booking user, the cottage owner or an administrator.
func (s *ReservationService) GetByID(ctx context.Context, actor models.Actor, id string) (*models.Reservation, error) {
	s.sweepBeforeRead(ctx)

	reservation, err := s.findReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if !reservation.BelongsTo(actor.Username) && !canManage(actor, reservation) {
		return nil, errors.Forbidden("You do not have access to this reservation")
	}
	return reservation, nil
}

// ListByUser returns one group of the user's reservations: all (newest first), current
// (pending or confirmed, soonest first) or archived (completed, latest first).
func (s *ReservationService) ListByUser(ctx context.Context, username, group string) ([]models.Reservation, error) {
	var (
		statuses []models.ReservationStatus
		order    string
	)
	switch group {
	case constants.GroupAll, "":
		group = constants.GroupAll
		order = repositories.OrderCreatedDesc
	case constants.GroupCurrent:
		statuses = models.ActiveStatuses
		order = repositories.OrderStartAsc
	case constants.GroupArchived:
		statuses = []models.ReservationStatus{models.StatusCompleted}
		order = repositories.OrderStartDesc
	default:
		return nil, errors.InvalidInput("Unknown reservation group " + group)
	}

	s.sweepBeforeRead(ctx)

	key := UserListKey(username, group)
	if cached, ok := s.cache.GetList(ctx, key); ok {
		return cached, nil
	}

	reservations, err := s.reservations.ListByUser(ctx, username, statuses, order)
	if err != nil {
		return nil, errors.Internal(err)
	}
	s.cache.SetList(ctx, key, reservations)
	return reservations, nil
}

// ListByCottage returns every reservation of the cottage, earliest start first.
func (s *ReservationService) ListByCottage(ctx context.Context, cottageID string) ([]models.Reservation, error) {
	s.sweepBeforeRead(ctx)

	key := CottageListKey(cottageID)
	if cached, ok := s.cache.GetList(ctx, key); ok {
		return cached, nil
	}

	reservations, err := s.reservations.ListByCottage(ctx, cottageID)
	if err != nil {
		return nil, errors.Internal(err)
	}
	s.cache.SetList(ctx, key, reservations)
	return reservations, nil
}

// Quote prices a prospective stay without booking it.
func (s *ReservationService) Quote(ctx context.Context, cottageID string, start, end time.Time, adults int) (Quote, error) {
	if !end.After(start) {
		return Quote{}, errors.InvalidInput("End date must be after start date")
	}
	if adults < 1 {
		return Quote{}, errors.InvalidInput("At least one adult is required")
	}
	cottage, err := s.findCottage(ctx, cottageID)
	if err != nil {
		return Quote{}, err
	}
	if err := cottage.ValidatePrices(); err != nil {
		return Quote{}, errors.Internal(err)
	}
	return CalculatePrice(start, end, cottage.PriceSummer, cottage.PriceWinter, adults), nil
}

// IsAvailable reports whether the cottage is free for the whole inclusive range.
func (s *ReservationService) IsAvailable(ctx context.Context, cottageID string, start, end time.Time) (bool, error) {
	if !end.After(start) {
		return false, errors.InvalidInput("End date must be after start date")
	}
	cottage, err := s.findCottage(ctx, cottageID)
	if err != nil {
		return false, err
	}
	if cottage.BlockedAt(s.clock.Now()) {
		return false, nil
	}

	available, err := s.availability.IsAvailable(ctx, cottage.ID, start, end)
	if err != nil {
		return false, errors.Internal(err)
	}
	return available, nil
}

// Statistics counts reservations created in the last day, week and month.
func (s *ReservationService) Statistics(ctx context.Context) (ReservationStatistics, error) {
	now := s.clock.Now()

	var stats ReservationStatistics
	windows := []struct {
		since time.Time
		dest  *int64
	}{
		{now.Add(-24 * time.Hour), &stats.LastDay},
		{now.AddDate(0, 0, -7), &stats.LastWeek},
		{now.AddDate(0, -1, 0), &stats.LastMonth},
	}
	for _, w := range windows {
		count, err := s.reservations.CountCreatedSince(ctx, w.since)
		if err != nil {
			return ReservationStatistics{}, errors.Internal(err)
		}
		*w.dest = count
	}
	return stats, nil
}

func (s *ReservationService) findReservation(ctx context.Context, id string) (*models.Reservation, error) {
	reservation, err := s.reservations.FindByID(ctx, id)
	if stderrors.Is(err, errors.ErrReservationNotFound) {
		return nil, errors.NotFound("Reservation not found")
	}
	if err != nil {
		return nil, errors.Internal(err)
	}
	return reservation, nil
}

func (s *ReservationService) findCottage(ctx context.Context, id string) (*models.Cottage, error) {
	cottage, err := s.cottages.FindByID(ctx, id)
	if stderrors.Is(err, errors.ErrCottageNotFound) {
		return nil, errors.NotFound("Cottage not found")
	}
	if err != nil {
		return nil, errors.Internal(err)
	}
	return cottage, nil
}

// refreshRatings recomputes the stored aggregate of each cottage.
func (s *ReservationService) refreshRatings(ctx context.Context, cottageIDs ...string) error {
	if s.ratings == nil {
		return nil
	}
	for _, cottageID := range cottageIDs {
		if _, err := s.ratings.RecomputeCottageRating(ctx, cottageID); err != nil {
			return err
		}
	}
	return nil
}

func (s *ReservationService) invalidateFor(ctx context.Context, reservation *models.Reservation) {
	keys := append(userListKeys(reservation.UserUsername), CottageListKey(reservation.CottageID))
	s.cache.Invalidate(ctx, keys...)
}

func (s *ReservationService) publish(ctx context.Context, event notification.Event) {
	if err := s.notifier.Publish(ctx, event); err != nil {
		s.logger.Warn("publish %s failed: %v", event.Type, err)
	}
}

// canManage is true for administrators and for the owner of the reserved cottage.
func canManage(actor models.Actor, reservation *models.Reservation) bool {
	if actor.IsAdmin() {
		return true
	}
	return actor.IsOwner() && reservation.Cottage != nil && reservation.Cottage.OwnerUsername == actor.Username
}
