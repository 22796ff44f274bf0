package models

import (
	"time"
)

type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
	StatusExpired   ReservationStatus = "expired"
)

// ActiveStatuses hold the cottage for their date range.
var ActiveStatuses = []ReservationStatus{StatusPending, StatusConfirmed}

var AllStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusCancelled,
	StatusCompleted,
	StatusExpired,
}

func (s ReservationStatus) Valid() bool {
	for _, status := range AllStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func (s ReservationStatus) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

// ParseReservationStatus returns the status and whether it is one of the known values.
func ParseReservationStatus(value string) (ReservationStatus, bool) {
	status := ReservationStatus(value)
	return status, status.Valid()
}

// Rating is embedded in the reservation row; all columns are NULL while unrated.
type Rating struct {
	Score   *int       `json:"score,omitempty"`
	Comment *string    `json:"comment,omitempty"`
	RatedAt *time.Time `json:"ratedAt,omitempty"`
}

func (r Rating) Present() bool {
	return r.Score != nil
}

func NewRating(score int, comment string, ratedAt time.Time) Rating {
	return Rating{
		Score:   &score,
		Comment: &comment,
		RatedAt: &ratedAt,
	}
}

type Reservation struct {
	ID              string            `json:"_id" gorm:"primaryKey;size:36"`
	CottageID       string            `json:"cottageId" gorm:"size:36;not null;index:idx_reservations_cottage_dates,priority:1"`
	Cottage         *Cottage          `json:"cottage,omitempty" gorm:"foreignKey:CottageID;references:ID"`
	UserUsername    string            `json:"userUsername" gorm:"size:80;not null;index"`
	StartDate       time.Time         `json:"startDate" gorm:"not null;index:idx_reservations_cottage_dates,priority:2"`
	EndDate         time.Time         `json:"endDate" gorm:"not null"`
	Adults          int               `json:"adults" gorm:"not null"`
	Children        int               `json:"children" gorm:"not null;default:0"`
	Nights          int               `json:"nights" gorm:"not null"`
	TotalPrice      float64           `json:"totalPrice" gorm:"not null"`
	SpecialRequests string            `json:"specialRequests" gorm:"size:500"`
	Status          ReservationStatus `json:"status" gorm:"size:20;not null;index"`
	Rating          Rating            `json:"rating" gorm:"embedded;embeddedPrefix:rating_"`
	CreatedAt       time.Time         `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt       time.Time         `json:"updatedAt" gorm:"autoUpdateTime"`
}

// DaysUntilStart rounds the remaining time up to whole days; negative once started.
func (r *Reservation) DaysUntilStart(now time.Time) int {
	return ceilDays(r.StartDate.Sub(now))
}

func (r *Reservation) BelongsTo(username string) bool {
	return username != "" && r.UserUsername == username
}

func ceilDays(d time.Duration) int {
	days := d / (24 * time.Hour)
	if d%(24*time.Hour) > 0 {
		days++
	}
	return int(days)
}
