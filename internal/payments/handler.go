package payments

import (
	"errors"
	"net/http"

	"chaptr/internal/ledger"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
	ld  ledger.Ledger
}

func NewHandler(svc *Service, ld ledger.Ledger) *Handler {
	return &Handler{svc: svc, ld: ld}
}

// POST /payments/initiate  body: {storyId, authorId, amount, token, message?}
func (h *Handler) Initiate(c *gin.Context) {
	var req InitiateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrMissingFields.Error()})
		return
	}

	rec, err := h.svc.Initiate(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields), errors.Is(err, ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": rec.ID, "status": "initiated"})
}

// POST /payments/confirm  body: {payload: <host-wallet completion object>}
func (h *Handler) Confirm(c *gin.Context) {
	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "bad request"})
		return
	}

	if _, err := h.svc.Confirm(c.Request.Context(), req.Payload); err != nil {
		switch {
		case errors.Is(err, ErrPaymentNotFound),
			errors.Is(err, ErrReferenceMismatch),
			errors.Is(err, ErrVerificationFailed):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment processed successfully"})
}

// GET /stories/:id/tips  public per-token totals for a story
func (h *Handler) StoryTips(c *gin.Context) {
	totals, err := h.ld.StoryTotal(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"storyId": c.Param("id"), "totals": totals})
}

// GET /tips/author/:id  JWT-guarded tip history for an author
func (h *Handler) AuthorTips(c *gin.Context) {
	tips, err := h.ld.ByAuthor(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if tips == nil {
		tips = []ledger.Tip{}
	}
	c.JSON(http.StatusOK, gin.H{"authorId": c.Param("id"), "tips": tips})
}
