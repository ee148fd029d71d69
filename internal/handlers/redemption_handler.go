package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/clubpuntos/loyalty-backend/internal/models"
	"github.com/clubpuntos/loyalty-backend/internal/services"
	"github.com/clubpuntos/loyalty-backend/internal/validation"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RedemptionService defines the workflow operations the handler consumes.
type RedemptionService interface {
	Acquire(ctx context.Context, userID, prizeID primitive.ObjectID) (*services.AcquireResult, error)
	Complete(ctx context.Context, transactionID primitive.ObjectID) (*models.Transaction, error)
	Cancel(ctx context.Context, transactionID primitive.ObjectID) (*models.Transaction, error)
	AwardPoints(ctx context.Context, userID primitive.ObjectID, amountPesos int, concept string) (*services.AwardResult, error)
	ApplyCashback(ctx context.Context, userID primitive.ObjectID, points int, concept string) (*services.CashbackResult, error)
}

// RedemptionHandler handles the point-movement HTTP requests: prize
// redemption, fulfillment, cancellation, point awards and cashback.
type RedemptionHandler struct {
	redemptionService RedemptionService
}

// NewRedemptionHandler creates a new RedemptionHandler
func NewRedemptionHandler(redemptionService RedemptionService) *RedemptionHandler {
	return &RedemptionHandler{redemptionService: redemptionService}
}

// Redeem handles POST /transactions/redeem
func (h *RedemptionHandler) Redeem(c *gin.Context) {
	userID, ok := contextUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User identity not found in context"})
		return
	}

	var req struct {
		PrizeID string `json:"prizeID" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prizeID, err := primitive.ObjectIDFromHex(req.PrizeID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prize ID format"})
		return
	}

	result, err := h.redemptionService.Acquire(c.Request.Context(), userID, prizeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Prize acquired. Pick it up at the store.",
		"data":    result,
	})
}

// CompleteRedemption handles PUT /transactions/:id/complete
func (h *RedemptionHandler) CompleteRedemption(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	transaction, err := h.redemptionService.Complete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Prize delivered",
		"data": gin.H{
			"transactionId": transaction.ID,
			"status":        transaction.Status,
		},
	})
}

// CancelRedemption handles PUT /transactions/:id/cancel
func (h *RedemptionHandler) CancelRedemption(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	transaction, err := h.redemptionService.Cancel(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Prize cancelled, points and stock returned",
		"data": gin.H{
			"transactionId": transaction.ID,
			"status":        transaction.Status,
		},
	})
}

// AddPoints handles POST /transactions/add-points
func (h *RedemptionHandler) AddPoints(c *gin.Context) {
	var req struct {
		UserID  string `json:"userId" binding:"required"`
		Amount  int    `json:"amount" binding:"required"`
		Concept string `json:"concept"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	if strings.TrimSpace(req.Concept) == "" {
		req.Concept = validation.DefaultConcept
	}

	result, err := h.redemptionService.AwardPoints(c.Request.Context(), userID, req.Amount, req.Concept)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Points added successfully",
		"data":    result,
	})
}

// ApplyDiscount handles POST /transactions/apply-discount
func (h *RedemptionHandler) ApplyDiscount(c *gin.Context) {
	var req struct {
		UserID  string `json:"userId" binding:"required"`
		Points  int    `json:"points" binding:"required"`
		Concept string `json:"concept" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	result, err := h.redemptionService.ApplyCashback(c.Request.Context(), userID, req.Points, req.Concept)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Discount applied successfully",
		"data":    result,
	})
}
