package dto

import (
	"time"

	"vikendica/models"
)

type CreateReservationRequest struct {
	CottageID       string `json:"cottageId" validate:"required"`
	UserUsername    string `json:"userUsername" validate:"required"`
	StartDate       string `json:"startDate" validate:"required"`
	EndDate         string `json:"endDate" validate:"required"`
	Adults          int    `json:"adults" validate:"required,min=1"`
	Children        int    `json:"children" validate:"min=0"`
	SpecialRequests string `json:"specialRequests" validate:"max=500"`
}

type UpdateReservationStatusRequest struct {
	Status string `json:"status" validate:"required,reservation_status"`
}

type ChangeCottageRequest struct {
	CottageID string `json:"cottageId" validate:"required"`
}

type QuoteQuery struct {
	CottageID string `form:"cottageId" json:"cottageId" validate:"required"`
	StartDate string `form:"startDate" json:"startDate" validate:"required"`
	EndDate   string `form:"endDate" json:"endDate" validate:"required"`
	Adults    int    `form:"adults" json:"adults" validate:"required,min=1"`
}

type AvailabilityQuery struct {
	CottageID string `form:"cottageId" json:"cottageId" validate:"required"`
	StartDate string `form:"startDate" json:"startDate" validate:"required"`
	EndDate   string `form:"endDate" json:"endDate" validate:"required"`
}

type QuoteResponse struct {
	Nights     int     `json:"nights"`
	TotalPrice float64 `json:"totalPrice"`
}

type AvailabilityResponse struct {
	Available bool `json:"available"`
}

type StatisticsResponse struct {
	LastDay   int64 `json:"lastDay"`
	LastWeek  int64 `json:"lastWeek"`
	LastMonth int64 `json:"lastMonth"`
}

// CottageSummary is the part of a cottage shown next to a reservation
type CottageSummary struct {
	ID            string          `json:"_id"`
	Title         string          `json:"Title"`
	OwnerUsername string          `json:"OwnerUsername"`
	Location      models.Location `json:"Location"`
	PriceSummer   float64         `json:"PriceSummer"`
	PriceWinter   float64         `json:"PriceWinter"`
	Ocena         float64         `json:"Ocena"`
}

type ReservationResponse struct {
	ID              string          `json:"_id"`
	CottageID       string          `json:"cottageId"`
	Cottage         *CottageSummary `json:"cottage,omitempty"`
	UserUsername    string          `json:"userUsername"`
	StartDate       time.Time       `json:"startDate"`
	EndDate         time.Time       `json:"endDate"`
	Adults          int             `json:"adults"`
	Children        int             `json:"children"`
	Nights          int             `json:"nights"`
	TotalPrice      float64         `json:"totalPrice"`
	SpecialRequests string          `json:"specialRequests"`
	Status          string          `json:"status"`
	Rating          *RatingBody     `json:"rating,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func NewCottageSummary(cottage *models.Cottage) *CottageSummary {
	if cottage == nil {
		return nil
	}
	return &CottageSummary{
		ID:            cottage.ID,
		Title:         cottage.Title,
		OwnerUsername: cottage.OwnerUsername,
		Location:      cottage.Location,
		PriceSummer:   cottage.PriceSummer,
		PriceWinter:   cottage.PriceWinter,
		Ocena:         cottage.Ocena,
	}
}

func NewReservationResponse(reservation *models.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:              reservation.ID,
		CottageID:       reservation.CottageID,
		Cottage:         NewCottageSummary(reservation.Cottage),
		UserUsername:    reservation.UserUsername,
		StartDate:       reservation.StartDate,
		EndDate:         reservation.EndDate,
		Adults:          reservation.Adults,
		Children:        reservation.Children,
		Nights:          reservation.Nights,
		TotalPrice:      reservation.TotalPrice,
		SpecialRequests: reservation.SpecialRequests,
		Status:          string(reservation.Status),
		Rating:          NewRatingBody(reservation.Rating),
		CreatedAt:       reservation.CreatedAt,
		UpdatedAt:       reservation.UpdatedAt,
	}
}

func NewReservationResponses(reservations []models.Reservation) []ReservationResponse {
	result := make([]ReservationResponse, 0, len(reservations))
	for i := range reservations {
		result = append(result, NewReservationResponse(&reservations[i]))
	}
	return result
}
