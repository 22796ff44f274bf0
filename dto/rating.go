package dto

import (
	"time"

	"vikendica/models"
)

type CreateRatingRequest struct {
	ReservationID string `json:"reservationId" validate:"required"`
	Rating        *int   `json:"rating" validate:"required"`
	Comment       string `json:"comment" validate:"max=500"`
}

// RatingBody is the rating embedded in a reservation response
type RatingBody struct {
	Score   int       `json:"score"`
	Comment string    `json:"comment"`
	RatedAt time.Time `json:"ratedAt"`
}

// RatingResponse is one entry of the rating listings
type RatingResponse struct {
	ReservationID string    `json:"reservationId"`
	CottageID     string    `json:"cottageId"`
	UserUsername  string    `json:"userUsername"`
	Score         int       `json:"score"`
	Comment       string    `json:"comment"`
	RatedAt       time.Time `json:"ratedAt"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
}

func NewRatingBody(rating models.Rating) *RatingBody {
	if !rating.Present() {
		return nil
	}
	body := &RatingBody{Score: *rating.Score}
	if rating.Comment != nil {
		body.Comment = *rating.Comment
	}
	if rating.RatedAt != nil {
		body.RatedAt = *rating.RatedAt
	}
	return body
}

func NewRatingResponse(reservation *models.Reservation) *RatingResponse {
	body := NewRatingBody(reservation.Rating)
	if body == nil {
		return nil
	}
	return &RatingResponse{
		ReservationID: reservation.ID,
		CottageID:     reservation.CottageID,
		UserUsername:  reservation.UserUsername,
		Score:         body.Score,
		Comment:       body.Comment,
		RatedAt:       body.RatedAt,
		StartDate:     reservation.StartDate,
		EndDate:       reservation.EndDate,
	}
}

func NewRatingResponses(reservations []models.Reservation) []RatingResponse {
	result := make([]RatingResponse, 0, len(reservations))
	for i := range reservations {
		if r := NewRatingResponse(&reservations[i]); r != nil {
			result = append(result, *r)
		}
	}
	return result
}
