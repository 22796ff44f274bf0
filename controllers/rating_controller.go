package controllers

import (
	"github.com/gin-gonic/gin"

	"vikendica/dto"
	"vikendica/response"
	"vikendica/services"
)

type RatingController struct {
	Service *services.RatingService
}

func NewRatingController(service *services.RatingService) RatingController {
	return RatingController{
		Service: service,
	}
}

// CreateRating godoc
// @Summary Rate a completed stay, replacing an earlier rating
// @Tags ratings
// @Accept json
// @Produce json
// @Param body body dto.CreateRatingRequest true "Rating"
// @Success 201 {object} map[string]interface{}
// @Failure 400,403,404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /ratings [post]
func (rc RatingController) CreateRating(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req dto.CreateRatingRequest
	if !bindJSON(c, &req) {
		return
	}

	reservation, err := rc.Service.Record(c.Request.Context(), actor, services.RecordRatingInput{
		ReservationID: req.ReservationID,
		Score:         *req.Rating,
		Comment:       req.Comment,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Rating saved successfully", "reservation", dto.NewReservationResponse(reservation))
}

// DeleteRating godoc
// @Summary Remove the rating of a reservation
// @Tags ratings
// @Produce json
// @Param reservationId path string true "Reservation id"
// @Success 200 {object} response.MessageResponse
// @Failure 403,404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /ratings/reservation/{reservationId} [delete]
func (rc RatingController) DeleteRating(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	if err := rc.Service.Delete(c.Request.Context(), actor, c.Param("reservationId")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Rating deleted successfully")
}

// GetReservationRating godoc
// @Summary Get the rating of a reservation
// @Tags ratings
// @Produce json
// @Param reservationId path string true "Reservation id"
// @Success 200 {object} dto.RatingResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /ratings/reservation/{reservationId} [get]
func (rc RatingController) GetReservationRating(c *gin.Context) {
	reservation, err := rc.Service.Get(c.Request.Context(), c.Param("reservationId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewRatingResponse(reservation))
}

// GetCottageRatings godoc
// @Summary Ratings of a cottage, newest first
// @Tags ratings
// @Produce json
// @Param cottageId path string true "Cottage id"
// @Success 200 {array} dto.RatingResponse
// @Router /ratings/cottage/{cottageId} [get]
func (rc RatingController) GetCottageRatings(c *gin.Context) {
	reservations, err := rc.Service.ListByCottage(c.Request.Context(), c.Param("cottageId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewRatingResponses(reservations))
}

// GetUserRatings godoc
// @Summary Ratings left by a user, newest first
// @Tags ratings
// @Produce json
// @Param username path string true "Username"
// @Success 200 {array} dto.RatingResponse
// @Router /ratings/user/{username} [get]
func (rc RatingController) GetUserRatings(c *gin.Context) {
	reservations, err := rc.Service.ListByUser(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewRatingResponses(reservations))
}
