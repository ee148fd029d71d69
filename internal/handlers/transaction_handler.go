package handlers

import (
	"context"
	"net/http"

	"github.com/clubpuntos/loyalty-backend/internal/models"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransactionService defines the ledger queries the handler consumes.
type TransactionService interface {
	GetAll(ctx context.Context) ([]*models.Transaction, error)
	GetByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Transaction, error)
	GetPrizeRedemptions(ctx context.Context) ([]*models.Transaction, error)
	GetPrizeRedemptionsByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Transaction, error)
	GetPending(ctx context.Context) ([]*models.Transaction, error)
	GetPendingByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Transaction, error)
	CountPendingByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
}

// TransactionHandler handles ledger query HTTP requests
type TransactionHandler struct {
	transactionService TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// GetAllTransactions handles GET /transactions
func (h *TransactionHandler) GetAllTransactions(c *gin.Context) {
	transactions, err := h.transactionService.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// GetMyTransactions handles GET /transactions/my
func (h *TransactionHandler) GetMyTransactions(c *gin.Context) {
	userID, ok := contextUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User identity not found in context"})
		return
	}

	transactions, err := h.transactionService.GetByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// GetMyPendingCount handles GET /transactions/my/pending-count
func (h *TransactionHandler) GetMyPendingCount(c *gin.Context) {
	userID, ok := contextUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User identity not found in context"})
		return
	}

	count, err := h.transactionService.CountPendingByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// GetMyPrizeRedemptions handles GET /transactions/my/redemptions
func (h *TransactionHandler) GetMyPrizeRedemptions(c *gin.Context) {
	userID, ok := contextUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User identity not found in context"})
		return
	}

	transactions, err := h.transactionService.GetPrizeRedemptionsByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// GetPendingTransactions handles GET /transactions/pending
func (h *TransactionHandler) GetPendingTransactions(c *gin.Context) {
	transactions, err := h.transactionService.GetPending(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// GetPrizeRedemptions handles GET /transactions/redemptions
func (h *TransactionHandler) GetPrizeRedemptions(c *gin.Context) {
	transactions, err := h.transactionService.GetPrizeRedemptions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// GetTransactionsByUser handles GET /transactions/user/:id
func (h *TransactionHandler) GetTransactionsByUser(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	transactions, err := h.transactionService.GetByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, transactions)
}
