package auth

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"
)

// nonceCookie holds the issued nonce between the nonce request and the
// login completion. httponly so the webview's JS never sees it.
const nonceCookie = "siwe"

func generateNonce() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func (h *Handler) GetNonce(c *gin.Context) {
	nonce, err := generateNonce()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate nonce"})
		return
	}

	c.SetCookie(nonceCookie, nonce, h.nonceTTL, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"nonce": nonce})
}
