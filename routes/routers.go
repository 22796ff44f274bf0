package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"vikendica/constants"
	"vikendica/controllers"
	middlewares "vikendica/middleware"
)

// Handlers groups the controllers mounted by SetupRoutes
type Handlers struct {
	Reservations controllers.ReservationController
	Ratings      controllers.RatingController
	Health       controllers.HealthController
}

func SetupRoutes(router *gin.Engine, h Handlers, jwtSecret string) {
	auth := middlewares.AuthMiddleware(jwtSecret)

	router.GET("/ping", h.Health.Ping)
	router.GET("/manage/health", h.Health.Health)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	reservations := router.Group("/reservations", auth)
	reservations.POST("/create", h.Reservations.CreateReservation)
	reservations.GET("/quote", h.Reservations.GetQuote)
	reservations.GET("/availability", h.Reservations.GetAvailability)

	selfOrAdmin := middlewares.AuthorizeSelfOrRoles("userUsername", constants.RoleAdmin)
	reservations.GET("/user/:userUsername", selfOrAdmin, h.Reservations.GetUserReservations)
	reservations.GET("/user/:userUsername/current", selfOrAdmin, h.Reservations.GetCurrentUserReservations)
	reservations.GET("/user/:userUsername/archived", selfOrAdmin, h.Reservations.GetArchivedUserReservations)
	reservations.GET("/cottage/:cottageId", h.Reservations.GetCottageReservations)

	reservations.GET("/:reservationId", h.Reservations.GetReservation)
	reservations.PUT("/:reservationId/status",
		middlewares.RoleMiddleware(constants.RoleAdmin, constants.RoleOwner),
		h.Reservations.UpdateReservationStatus)
	reservations.PUT("/:reservationId/cancel", h.Reservations.CancelReservation)
	reservations.PUT("/:reservationId/cottage",
		middlewares.RoleMiddleware(constants.RoleAdmin),
		h.Reservations.UpdateReservationCottage)

	ratings := router.Group("/ratings")
	ratings.POST("", auth, h.Ratings.CreateRating)
	ratings.GET("/reservation/:reservationId", h.Ratings.GetReservationRating)
	ratings.GET("/cottage/:cottageId", h.Ratings.GetCottageRatings)
	ratings.GET("/user/:username", h.Ratings.GetUserRatings)
	ratings.DELETE("/reservation/:reservationId", auth, h.Ratings.DeleteRating)

	statistics := router.Group("/statistics", auth, middlewares.RoleMiddleware(constants.RoleAdmin))
	statistics.GET("/reservations", h.Reservations.GetReservationStatistics)
}
