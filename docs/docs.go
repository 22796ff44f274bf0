// Package docs holds the OpenAPI description served on /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/reservations/create": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["reservations"],
                "summary": "Book a cottage",
                "parameters": [
                    {"description": "Reservation", "name": "body", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/dto.CreateReservationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/reservations/quote": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["reservations"],
                "summary": "Price a stay",
                "parameters": [
                    {"type": "string", "name": "cottageId", "in": "query", "required": true},
                    {"type": "string", "name": "startDate", "in": "query", "required": true},
                    {"type": "string", "name": "endDate", "in": "query", "required": true},
                    {"type": "integer", "name": "adults", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.QuoteResponse"}}}
            }
        },
        "/reservations/availability": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["reservations"],
                "summary": "Check whether a cottage is free for a date range",
                "parameters": [
                    {"type": "string", "name": "cottageId", "in": "query", "required": true},
                    {"type": "string", "name": "startDate", "in": "query", "required": true},
                    {"type": "string", "name": "endDate", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AvailabilityResponse"}}}
            }
        },
        "/reservations/user/{userUsername}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["reservations"],
                "summary": "All reservations of a user, newest first",
                "parameters": [{"type": "string", "name": "userUsername", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.ReservationResponse"}}}}
            }
        },
        "/reservations/user/{userUsername}/current": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["reservations"],
                "summary": "Pending and confirmed reservations of a user",
                "parameters": [{"type": "string", "name": "userUsername", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.ReservationResponse"}}}}
            }
        },
        "/reservations/user/{userUsername}/archived": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["reservations"],
                "summary": "Completed reservations of a user",
                "parameters": [{"type": "string", "name": "userUsername", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.ReservationResponse"}}}}
            }
        },
        "/reservations/cottage/{cottageId}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["reservations"],
                "summary": "Reservations of a cottage by start date",
                "parameters": [{"type": "string", "name": "cottageId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.ReservationResponse"}}}}
            }
        },
        "/reservations/{reservationId}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["reservations"],
                "summary": "Get one reservation",
                "parameters": [{"type": "string", "name": "reservationId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ReservationResponse"}}}
            }
        },
        "/reservations/{reservationId}/status": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["reservations"],
                "summary": "Set the status of a reservation",
                "parameters": [
                    {"type": "string", "name": "reservationId", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateReservationStatusRequest"}}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/reservations/{reservationId}/cancel": {
            "put": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["reservations"],
                "summary": "Cancel an own reservation",
                "parameters": [{"type": "string", "name": "reservationId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/reservations/{reservationId}/cottage": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["reservations"],
                "summary": "Move a reservation to another cottage",
                "parameters": [
                    {"type": "string", "name": "reservationId", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ChangeCottageRequest"}}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/ratings": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ratings"],
                "summary": "Rate a completed reservation",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateRatingRequest"}}],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/ratings/reservation/{reservationId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ratings"],
                "summary": "Rating of a reservation",
                "parameters": [{"type": "string", "name": "reservationId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.RatingResponse"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["ratings"],
                "summary": "Delete the rating of an own reservation",
                "parameters": [{"type": "string", "name": "reservationId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/ratings/cottage/{cottageId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ratings"],
                "summary": "Ratings of a cottage, newest first",
                "parameters": [{"type": "string", "name": "cottageId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.RatingResponse"}}}}
            }
        },
        "/ratings/user/{username}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ratings"],
                "summary": "Ratings given by a user, newest first",
                "parameters": [{"type": "string", "name": "username", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.RatingResponse"}}}}
            }
        },
        "/statistics/reservations": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["statistics"],
                "summary": "Reservations created in the last day, week and month",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.StatisticsResponse"}}}
            }
        }
    },
    "definitions": {
        "dto.CreateReservationRequest": {
            "type": "object",
            "required": ["cottageId", "userUsername", "startDate", "endDate", "adults"],
            "properties": {
                "cottageId": {"type": "string"},
                "userUsername": {"type": "string"},
                "startDate": {"type": "string", "example": "2024-06-10"},
                "endDate": {"type": "string", "example": "2024-06-13"},
                "adults": {"type": "integer", "minimum": 1},
                "children": {"type": "integer", "minimum": 0},
                "specialRequests": {"type": "string", "maxLength": 500}
            }
        },
        "dto.UpdateReservationStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "enum": ["pending", "confirmed", "cancelled", "completed", "expired"]}
            }
        },
        "dto.ChangeCottageRequest": {
            "type": "object",
            "required": ["cottageId"],
            "properties": {"cottageId": {"type": "string"}}
        },
        "dto.CreateRatingRequest": {
            "type": "object",
            "required": ["reservationId", "rating"],
            "properties": {
                "reservationId": {"type": "string"},
                "rating": {"type": "integer", "minimum": 1, "maximum": 5},
                "comment": {"type": "string", "maxLength": 500}
            }
        },
        "dto.RatingBody": {
            "type": "object",
            "properties": {
                "score": {"type": "integer"},
                "comment": {"type": "string"},
                "ratedAt": {"type": "string"}
            }
        },
        "dto.RatingResponse": {
            "type": "object",
            "properties": {
                "reservationId": {"type": "string"},
                "cottageId": {"type": "string"},
                "userUsername": {"type": "string"},
                "score": {"type": "integer"},
                "comment": {"type": "string"},
                "ratedAt": {"type": "string"},
                "startDate": {"type": "string"},
                "endDate": {"type": "string"}
            }
        },
        "dto.ReservationResponse": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "cottageId": {"type": "string"},
                "userUsername": {"type": "string"},
                "startDate": {"type": "string"},
                "endDate": {"type": "string"},
                "adults": {"type": "integer"},
                "children": {"type": "integer"},
                "nights": {"type": "integer"},
                "totalPrice": {"type": "number"},
                "specialRequests": {"type": "string"},
                "status": {"type": "string"},
                "rating": {"$ref": "#/definitions/dto.RatingBody"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "dto.QuoteResponse": {
            "type": "object",
            "properties": {
                "nights": {"type": "integer"},
                "totalPrice": {"type": "number"}
            }
        },
        "dto.AvailabilityResponse": {
            "type": "object",
            "properties": {"available": {"type": "boolean"}}
        },
        "dto.StatisticsResponse": {
            "type": "object",
            "properties": {
                "lastDay": {"type": "integer"},
                "lastWeek": {"type": "integer"},
                "lastMonth": {"type": "integer"}
            }
        },
        "response.ErrorResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "code": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Vikendica reservations API",
	Description:      "Cottage reservation lifecycle, pricing, availability and ratings.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
