package handlers

import (
	"log"
	"net/http"

	"bigbrain-backend/internal/apperr"
	"bigbrain-backend/internal/models"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"operation successful"`
}

// Type aliases so swag can resolve models in annotations.
type Game = models.Game
type Question = models.Question

// respondError maps domain errors onto HTTP statuses: InputError 400,
// AccessError 403, everything else a generic 500 without leaking the
// underlying message.
func respondError(c *gin.Context, err error) {
	switch {
	case apperr.IsInput(err):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case apperr.IsAccess(err):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
