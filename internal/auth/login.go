package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type CompleteSiweRequest struct {
	Payload SignedPayload `json:"payload"`
	Nonce   string        `json:"nonce"`
}

type Handler struct {
	verifier  SignatureVerifier
	jwtSecret []byte
	nonceTTL  int // seconds, also the cookie Max-Age
}

func NewHandler(verifier SignatureVerifier, jwtSecret []byte, nonceTTL int) *Handler {
	return &Handler{
		verifier:  verifier,
		jwtSecret: jwtSecret,
		nonceTTL:  nonceTTL,
	}
}

// CompleteSiwe finishes the wallet login: the supplied nonce must equal the
// cookie set by GetNonce, then signature verification is delegated to the
// injected verifier.
func (h *Handler) CompleteSiwe(c *gin.Context) {
	var req CompleteSiweRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"isValid": false,
			"message": "bad request",
		})
		return
	}

	stored, err := c.Cookie(nonceCookie)
	if err != nil || req.Nonce == "" || req.Nonce != stored {
		c.JSON(http.StatusOK, gin.H{
			"status":  "error",
			"isValid": false,
			"message": "invalid nonce",
		})
		return
	}

	// one verification attempt per nonce, pass or fail
	c.SetCookie(nonceCookie, "", -1, "/", "", false, true)

	res, err := h.verifier.Verify(req.Payload, req.Nonce)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status":  "error",
			"isValid": false,
			"message": err.Error(),
		})
		return
	}
	if !res.IsValid {
		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"isValid": false,
		})
		return
	}

	claims := jwt.MapClaims{
		"sub": res.Address,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour * 24).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	jwtStr, err := token.SignedString(h.jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"isValid": false,
			"message": "jwt generation failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"isValid": true,
		"address": res.Address,
		"token":   jwtStr,
	})
}
