package verify

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Request struct {
	Payload ProofPayload `json:"payload"`
	Action  string       `json:"action"`
	Signal  string       `json:"signal"`
}

type Handler struct {
	verifier ProofVerifier
	appID    string
}

func NewHandler(verifier ProofVerifier, appID string) *Handler {
	return &Handler{verifier: verifier, appID: appID}
}

// POST /verify  body: {payload, action, signal?}
// The embedded status field follows the host SDK's wire contract; the HTTP
// status stays 200 for verification outcomes either way.
func (h *Handler) Verify(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if req.Action == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing action"})
		return
	}

	if h.appID == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "APP_ID not configured"})
		return
	}

	res, err := h.verifier.Verify(c.Request.Context(), req.Payload, req.Action, req.Signal)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error", "message": err.Error()})
		return
	}

	if res.Success {
		c.JSON(http.StatusOK, gin.H{"verifyRes": res, "status": 200})
		return
	}
	c.JSON(http.StatusOK, gin.H{"verifyRes": res, "status": 400})
}
