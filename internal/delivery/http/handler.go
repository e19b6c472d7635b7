package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/riderbuilder/backend/internal/domain"
	"github.com/riderbuilder/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	service *usecase.RiderService
}

// NewHandler creates a new HTTP handler
func NewHandler(service *usecase.RiderService) *Handler {
	return &Handler{service: service}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "riderbuilder-backend",
		"version": "1.0.0",
	})
}

// ParseRiderRequest is the body of POST /rider/parse
type ParseRiderRequest struct {
	Text           string `json:"text" binding:"required"`
	WithConfidence bool   `json:"withConfidence"`
}

// ParseRider turns free-text rider input into a structured rider, with
// optional per-field confidence scores.
func (h *Handler) ParseRider(c *gin.Context) {
	var req ParseRiderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	if req.WithConfidence {
		rider, confidence, err := h.service.ParseRiderWithConfidence(c.Request.Context(), req.Text)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"rider": rider, "confidence": confidence})
		return
	}

	rider, err := h.service.ParseRider(c.Request.Context(), req.Text)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rider": rider})
}

// RecommendationsRequest accepts either raw rider text or an already parsed
// rider. Text wins when both are present.
type RecommendationsRequest struct {
	Text  string        `json:"text"`
	Rider *domain.Rider `json:"rider"`
	Limit int           `json:"limit"`
}

// Recommendations scores the catalog against a rider and returns the ranked
// recommendations.
func (h *Handler) Recommendations(c *gin.Context) {
	var req RecommendationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	switch {
	case req.Text != "":
		rider, recommendations, err := h.service.RecommendFromText(c.Request.Context(), req.Text, req.Limit)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"rider": rider, "recommendations": recommendations})
	case req.Rider != nil:
		recommendations, err := h.service.RecommendForRider(c.Request.Context(), req.Rider, req.Limit)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"recommendations": recommendations})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "either text or rider is required"})
	}
}

// ListCelebrities returns all reference rider profiles
func (h *Handler) ListCelebrities(c *gin.Context) {
	celebrities, err := h.service.Celebrities(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"celebrities": celebrities})
}

// GetCelebrity returns one reference profile by ID
func (h *Handler) GetCelebrity(c *gin.Context) {
	celebrity, err := h.service.Celebrity(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"celebrity": celebrity})
}

// MatchCelebrityRequest accepts either raw rider text or a parsed rider to
// compare against the celebrity profile.
type MatchCelebrityRequest struct {
	Text  string        `json:"text"`
	Rider *domain.Rider `json:"rider"`
}

// MatchCelebrity scores the user's rider against one celebrity profile.
func (h *Handler) MatchCelebrity(c *gin.Context) {
	var req MatchCelebrityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rider := req.Rider
	if req.Text != "" {
		parsed, err := h.service.ParseRider(c.Request.Context(), req.Text)
		if err != nil {
			h.respondError(c, err)
			return
		}
		rider = parsed
	}
	if rider == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "either text or rider is required"})
		return
	}

	score, celebrity, err := h.service.MatchCelebrity(c.Request.Context(), c.Param("id"), rider)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"match": score, "celebrity": celebrity})
}

// CartBalanceRequest is the body of POST /cart/balance
type CartBalanceRequest struct {
	Items []domain.CartItem `json:"items" binding:"required"`
}

// CartBalance computes the categorical composition of a selected cart
func (h *Handler) CartBalance(c *gin.Context) {
	var req CartBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "items is required"})
		return
	}

	balance, err := h.service.CartBalance(c.Request.Context(), req.Items)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

// respondError maps domain errors to HTTP status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrProductNotFound), errors.Is(err, domain.ErrCelebrityNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrEmptyCatalog):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
