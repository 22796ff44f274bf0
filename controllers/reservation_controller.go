package controllers

import (
	"github.com/gin-gonic/gin"

	"vikendica/dto"
	"vikendica/middleware"
	"vikendica/models"
	"vikendica/response"
	"vikendica/services"
	"vikendica/validator"
)

type ReservationController struct {
	Service *services.ReservationService
}

func NewReservationController(service *services.ReservationService) ReservationController {
	return ReservationController{
		Service: service,
	}
}

// bindJSON decodes and validates the body. It writes the error response itself.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return false
	}
	if err := validator.Struct(req); err != nil {
		response.Error(c, err)
		return false
	}
	return true
}

func actorFrom(c *gin.Context) (models.Actor, bool) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
	}
	return actor, ok
}

// CreateReservation godoc
// @Summary Book a cottage
// @Tags reservations
// @Accept json
// @Produce json
// @Param body body dto.CreateReservationRequest true "Reservation"
// @Success 201 {object} map[string]interface{}
// @Failure 400,403,404,409 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /reservations/create [post]
func (rc ReservationController) CreateReservation(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req dto.CreateReservationRequest
	if !bindJSON(c, &req) {
		return
	}

	start, end, err := validator.ParseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	reservation, err := rc.Service.Create(c.Request.Context(), actor, services.CreateReservationInput{
		CottageID:       req.CottageID,
		UserUsername:    req.UserUsername,
		StartDate:       start,
		EndDate:         end,
		Adults:          req.Adults,
		Children:        req.Children,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Reservation created successfully", "reservation", dto.NewReservationResponse(reservation))
}

// GetReservation godoc
// @Summary Get one reservation
// @Tags reservations
// @Produce json
// @Param reservationId path string true "Reservation id"
// @Success 200 {object} dto.ReservationResponse
// @Security BearerAuth
// @Router /reservations/{reservationId} [get]
func (rc ReservationController) GetReservation(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	reservation, err := rc.Service.GetByID(c.Request.Context(), actor, c.Param("reservationId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewReservationResponse(reservation))
}

func (rc ReservationController) listUser(c *gin.Context, group string) {
	reservations, err := rc.Service.ListByUser(c.Request.Context(), c.Param("userUsername"), group)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewReservationResponses(reservations))
}

// GetUserReservations godoc
// @Summary All reservations of a user, newest first
// @Tags reservations
// @Produce json
// @Param userUsername path string true "Username"
// @Success 200 {array} dto.ReservationResponse
// @Security BearerAuth
// @Router /reservations/user/{userUsername} [get]
func (rc ReservationController) GetUserReservations(c *gin.Context) {
	rc.listUser(c, "all")
}

// GetCurrentUserReservations godoc
// @Summary Pending and confirmed reservations of a user
// @Tags reservations
// @Produce json
// @Param userUsername path string true "Username"
// @Success 200 {array} dto.ReservationResponse
// @Security BearerAuth
// @Router /reservations/user/{userUsername}/current [get]
func (rc ReservationController) GetCurrentUserReservations(c *gin.Context) {
	rc.listUser(c, "current")
}

// GetArchivedUserReservations godoc
// @Summary Completed reservations of a user
// @Tags reservations
// @Produce json
// @Param userUsername path string true "Username"
// @Success 200 {array} dto.ReservationResponse
// @Security BearerAuth
// @Router /reservations/user/{userUsername}/archived [get]
func (rc ReservationController) GetArchivedUserReservations(c *gin.Context) {
	rc.listUser(c, "archived")
}

// GetCottageReservations godoc
// @Summary Reservations of a cottage by start date
// @Tags reservations
// @Produce json
// @Param cottageId path string true "Cottage id"
// @Success 200 {array} dto.ReservationResponse
// @Security BearerAuth
// @Router /reservations/cottage/{cottageId} [get]
func (rc ReservationController) GetCottageReservations(c *gin.Context) {
	reservations, err := rc.Service.ListByCottage(c.Request.Context(), c.Param("cottageId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewReservationResponses(reservations))
}

// UpdateReservationStatus godoc
// @Summary Set the status of a reservation
// @Tags reservations
// @Accept json
// @Produce json
// @Param reservationId path string true "Reservation id"
// @Param body body dto.UpdateReservationStatusRequest true "Status"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /reservations/{reservationId}/status [put]
func (rc ReservationController) UpdateReservationStatus(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req dto.UpdateReservationStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	reservation, err := rc.Service.UpdateStatus(c.Request.Context(), actor, c.Param("reservationId"), req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.WithMessage(c, "Reservation status updated successfully", "reservation", dto.NewReservationResponse(reservation))
}

// CancelReservation godoc
// @Summary Cancel an own reservation
// @Tags reservations
// @Produce json
// @Param reservationId path string true "Reservation id"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /reservations/{reservationId}/cancel [put]
func (rc ReservationController) CancelReservation(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	reservation, err := rc.Service.Cancel(c.Request.Context(), actor, c.Param("reservationId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.WithMessage(c, "Reservation cancelled successfully", "reservation", dto.NewReservationResponse(reservation))
}

// UpdateReservationCottage godoc
// @Summary Move a reservation to another cottage
// @Tags reservations
// @Accept json
// @Produce json
// @Param reservationId path string true "Reservation id"
// @Param body body dto.ChangeCottageRequest true "Target cottage"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /reservations/{reservationId}/cottage [put]
func (rc ReservationController) UpdateReservationCottage(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req dto.ChangeCottageRequest
	if !bindJSON(c, &req) {
		return
	}

	reservation, err := rc.Service.UpdateCottage(c.Request.Context(), actor, c.Param("reservationId"), req.CottageID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.WithMessage(c, "Reservation cottage updated successfully", "reservation", dto.NewReservationResponse(reservation))
}

// GetQuote godoc
// @Summary Price a stay
// @Tags reservations
// @Produce json
// @Param cottageId query string true "Cottage id"
// @Param startDate query string true "YYYY-MM-DD"
// @Param endDate query string true "YYYY-MM-DD"
// @Param adults query int true "Adults"
// @Success 200 {object} dto.QuoteResponse
// @Security BearerAuth
// @Router /reservations/quote [get]
func (rc ReservationController) GetQuote(c *gin.Context) {
	var query dto.QuoteQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	if err := validator.Struct(&query); err != nil {
		response.Error(c, err)
		return
	}

	start, end, err := validator.ParseDateRange(query.StartDate, query.EndDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	quote, err := rc.Service.Quote(c.Request.Context(), query.CottageID, start, end, query.Adults)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.QuoteResponse{Nights: quote.Nights, TotalPrice: quote.TotalPrice})
}

// GetAvailability godoc
// @Summary Check whether a cottage is free for a date range
// @Tags reservations
// @Produce json
// @Param cottageId query string true "Cottage id"
// @Param startDate query string true "YYYY-MM-DD"
// @Param endDate query string true "YYYY-MM-DD"
// @Success 200 {object} dto.AvailabilityResponse
// @Security BearerAuth
// @Router /reservations/availability [get]
func (rc ReservationController) GetAvailability(c *gin.Context) {
	var query dto.AvailabilityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	if err := validator.Struct(&query); err != nil {
		response.Error(c, err)
		return
	}

	start, end, err := validator.ParseDateRange(query.StartDate, query.EndDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	available, err := rc.Service.IsAvailable(c.Request.Context(), query.CottageID, start, end)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.AvailabilityResponse{Available: available})
}

// GetReservationStatistics godoc
// @Summary Reservations created in the last day, week and month
// @Tags statistics
// @Produce json
// @Success 200 {object} dto.StatisticsResponse
// @Security BearerAuth
// @Router /statistics/reservations [get]
func (rc ReservationController) GetReservationStatistics(c *gin.Context) {
	stats, err := rc.Service.Statistics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.StatisticsResponse{
		LastDay:   stats.LastDay,
		LastWeek:  stats.LastWeek,
		LastMonth: stats.LastMonth,
	})
}
