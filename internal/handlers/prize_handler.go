package handlers

import (
	"context"
	"net/http"

	"github.com/clubpuntos/loyalty-backend/internal/models"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PrizeService defines the catalog operations the handler consumes.
type PrizeService interface {
	Create(ctx context.Context, prize *models.Prize) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Prize, error)
	GetAll(ctx context.Context) ([]*models.Prize, error)
	GetAvailable(ctx context.Context) ([]*models.Prize, error)
	Update(ctx context.Context, prize *models.Prize) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// PrizeHandler handles prize catalog HTTP requests
type PrizeHandler struct {
	prizeService PrizeService
}

// NewPrizeHandler creates a new PrizeHandler
func NewPrizeHandler(prizeService PrizeService) *PrizeHandler {
	return &PrizeHandler{prizeService: prizeService}
}

// prizeRequest is the admin create/update payload.
type prizeRequest struct {
	Name           string `json:"name" binding:"required"`
	Description    string `json:"description" binding:"required"`
	PointsRequired int    `json:"pointsRequired" binding:"required"`
	Image          string `json:"image"`
	Status         string `json:"status"`
	Stock          *int   `json:"stock" binding:"required"`
}

// GetAllPrizes handles GET /prizes
func (h *PrizeHandler) GetAllPrizes(c *gin.Context) {
	prizes, err := h.prizeService.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, prizes)
}

// GetAvailablePrizes handles GET /prizes/available
func (h *PrizeHandler) GetAvailablePrizes(c *gin.Context) {
	prizes, err := h.prizeService.GetAvailable(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, prizes)
}

// GetPrizeByID handles GET /prizes/:id
func (h *PrizeHandler) GetPrizeByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	prize, err := h.prizeService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, prize)
}

// CreatePrize handles POST /prizes
func (h *PrizeHandler) CreatePrize(c *gin.Context) {
	var req prizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prize := &models.Prize{
		Name:           req.Name,
		Description:    req.Description,
		PointsRequired: req.PointsRequired,
		Image:          req.Image,
		Status:         req.Status,
		Stock:          *req.Stock,
	}
	if err := h.prizeService.Create(c.Request.Context(), prize); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, prize)
}

// UpdatePrize handles PUT /prizes/:id
func (h *PrizeHandler) UpdatePrize(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var req prizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prize := &models.Prize{
		ID:             id,
		Name:           req.Name,
		Description:    req.Description,
		PointsRequired: req.PointsRequired,
		Image:          req.Image,
		Status:         req.Status,
		Stock:          *req.Stock,
	}
	if err := h.prizeService.Update(c.Request.Context(), prize); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, prize)
}

// DeletePrize handles DELETE /prizes/:id
func (h *PrizeHandler) DeletePrize(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	if err := h.prizeService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Prize deleted successfully"})
}
