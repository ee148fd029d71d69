// Package handlers contains the gin HTTP handlers. Handlers translate
// service errors into HTTP status classes and never contain business
// logic of their own.
package handlers

import (
	"errors"
	"net/http"

	"github.com/clubpuntos/loyalty-backend/internal/middleware"
	"github.com/clubpuntos/loyalty-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// respondError maps a service error to its HTTP status. Insufficient-
// points and out-of-stock errors carry their numeric context through to
// the response body so the UI can render a precise explanation.
func respondError(c *gin.Context, err error) {
	var insufficientErr *services.InsufficientPointsError
	var outOfStockErr *services.OutOfStockError
	var processedErr *services.AlreadyProcessedError

	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrPrizeNotFound),
		errors.Is(err, services.ErrTransactionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &insufficientErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     insufficientErr.Error(),
			"required":  insufficientErr.Required,
			"available": insufficientErr.Available,
		})
	case errors.As(err, &outOfStockErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": outOfStockErr.Error()})
	case errors.As(err, &processedErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  processedErr.Error(),
			"status": processedErr.Status,
		})
	case errors.Is(err, services.ErrPrizeUnavailable),
		errors.Is(err, services.ErrInvalidTransaction),
		errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUserExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// contextEmail returns the authenticated user's email set by the JWT
// middleware.
func contextEmail(c *gin.Context) (string, bool) {
	v, ok := c.Get(middleware.ContextUserEmail)
	if !ok {
		return "", false
	}
	email, ok := v.(string)
	return email, ok && email != ""
}

// contextUserID returns the authenticated user's ID set by the JWT
// middleware.
func contextUserID(c *gin.Context) (primitive.ObjectID, bool) {
	v, ok := c.Get(middleware.ContextUserID)
	if !ok {
		return primitive.NilObjectID, false
	}
	hex, ok := v.(string)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}
