package builders

import (
	"time"

	"github.com/google/uuid"

	"vikendica/models"
)

// ReservationBuilder assembles a new reservation step by step
type ReservationBuilder struct {
	reservation *models.Reservation
}

// NewReservationBuilder starts a pending reservation with a fresh id
func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		reservation: &models.Reservation{
			ID:     uuid.NewString(),
			Status: models.StatusPending,
		},
	}
}

func (b *ReservationBuilder) WithCottage(cottageID string) *ReservationBuilder {
	b.reservation.CottageID = cottageID
	return b
}

func (b *ReservationBuilder) WithUser(username string) *ReservationBuilder {
	b.reservation.UserUsername = username
	return b
}

func (b *ReservationBuilder) WithDates(start, end time.Time) *ReservationBuilder {
	b.reservation.StartDate = start
	b.reservation.EndDate = end
	return b
}

func (b *ReservationBuilder) WithGuests(adults, children int) *ReservationBuilder {
	b.reservation.Adults = adults
	b.reservation.Children = children
	return b
}

// WithPrice sets the pricing result computed for the stay
func (b *ReservationBuilder) WithPrice(nights int, totalPrice float64) *ReservationBuilder {
	b.reservation.Nights = nights
	b.reservation.TotalPrice = totalPrice
	return b
}

func (b *ReservationBuilder) WithSpecialRequests(requests string) *ReservationBuilder {
	b.reservation.SpecialRequests = requests
	return b
}

func (b *ReservationBuilder) WithCreatedAt(at time.Time) *ReservationBuilder {
	b.reservation.CreatedAt = at
	b.reservation.UpdatedAt = at
	return b
}

// Build returns the assembled reservation
func (b *ReservationBuilder) Build() *models.Reservation {
	return b.reservation
}
