package auth

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func testRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/auth/nonce", h.GetNonce)
	r.POST("/auth/complete-siwe", h.CompleteSiwe)
	return r
}

// signLogin produces a personal_sign payload for the given nonce with a
// fresh key, the way the host wallet would.
func signLogin(t *testing.T, nonce string) SignedPayload {
	t.Helper()

	key, err := crypto.GenerateKey()
	assert.NoError(t, err)
	addr := crypto.PubkeyToAddress(key.PublicKey).Hex()

	msg := "Sign in to Chaptr. Nonce: " + nonce
	prefix := fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(msg), msg)
	hash := crypto.Keccak256Hash([]byte(prefix))

	sig, err := crypto.Sign(hash.Bytes(), key)
	assert.NoError(t, err)
	sig[64] += 27

	return SignedPayload{
		Status:    "success",
		Message:   msg,
		Signature: "0x" + hex.EncodeToString(sig),
		Address:   addr,
		Version:   1,
	}
}

func postComplete(r *gin.Engine, payload SignedPayload, nonce, cookie string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(CompleteSiweRequest{Payload: payload, Nonce: nonce})
	req := httptest.NewRequest(http.MethodPost, "/auth/complete-siwe", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "siwe", Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func Test_GetNonce(t *testing.T) {
	h := NewHandler(NewPersonalSignVerifier(), []byte("secret"), 600)
	r := testRouter(h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/nonce", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp["nonce"], 64) // 32 bytes hex-encoded
	_, err := hex.DecodeString(resp["nonce"])
	assert.NoError(t, err)

	var found *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "siwe" {
			found = c
		}
	}
	assert.NotNil(t, found, "nonce cookie should be set")
	assert.Equal(t, resp["nonce"], found.Value)
	assert.True(t, found.HttpOnly)
	assert.Equal(t, 600, found.MaxAge)
}

func Test_GetNonce_Distinct(t *testing.T) {
	h := NewHandler(NewPersonalSignVerifier(), []byte("secret"), 600)
	r := testRouter(h)

	nonces := map[string]bool{}
	for i := 0; i < 10; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/nonce", nil))
		var resp map[string]string
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		nonces[resp["nonce"]] = true
	}
	assert.Len(t, nonces, 10)
}

func Test_CompleteSiwe_NonceMismatch(t *testing.T) {
	h := NewHandler(NewPersonalSignVerifier(), []byte("secret"), 600)
	r := testRouter(h)

	nonce := "aabbccdd"
	payload := signLogin(t, nonce)

	// supplied nonce differs from the cookie by one character
	w := postComplete(r, payload, nonce, "aabbccde")

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp["status"])
	assert.Equal(t, false, resp["isValid"])
	assert.Equal(t, "invalid nonce", resp["message"])
}

func Test_CompleteSiwe_NoCookie(t *testing.T) {
	h := NewHandler(NewPersonalSignVerifier(), []byte("secret"), 600)
	r := testRouter(h)

	w := postComplete(r, signLogin(t, "deadbeef"), "deadbeef", "")

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["isValid"])
}

func Test_CompleteSiwe_Success_ClearsCookie(t *testing.T) {
	h := NewHandler(NewPersonalSignVerifier(), []byte("secret"), 600)
	r := testRouter(h)

	nonce := "0123456789abcdef"
	payload := signLogin(t, nonce)

	w := postComplete(r, payload, nonce, nonce)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp["status"])
	assert.Equal(t, true, resp["isValid"])
	assert.Equal(t, payload.Address, resp["address"])
	assert.NotEmpty(t, resp["token"])

	// single-use: the response must delete the nonce cookie
	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "siwe" && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "nonce cookie should be cleared after success")

	// the minted token passes the middleware
	token, err := jwt.Parse(resp["token"].(string), func(t *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	assert.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, payload.Address, claims["sub"])
}

func Test_CompleteSiwe_FailedVerification_ClearsCookie(t *testing.T) {
	h := NewHandler(NewPersonalSignVerifier(), []byte("secret"), 600)
	r := testRouter(h)

	nonce := "feedface"
	payload := signLogin(t, nonce)
	payload.Address = "0x0000000000000000000000000000000000000001" // not the signer

	w := postComplete(r, payload, nonce, nonce)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["isValid"])

	// one attempt per nonce: the cookie goes away even on failure
	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "siwe" && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func Test_PersonalSignVerifier(t *testing.T) {
	v := NewPersonalSignVerifier()
	nonce := "cafebabe"
	payload := signLogin(t, nonce)

	res, err := v.Verify(payload, nonce)
	assert.NoError(t, err)
	assert.True(t, res.IsValid)
	assert.Equal(t, payload.Address, res.Address)

	// message without the nonce is rejected
	res, err = v.Verify(payload, "otherNonce")
	assert.NoError(t, err)
	assert.False(t, res.IsValid)

	// truncated signature errors rather than panics
	bad := payload
	bad.Signature = "0xdeadbeef"
	_, err = v.Verify(bad, nonce)
	assert.Error(t, err)
}

func Test_JwtAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	secret := []byte("secret")

	r := gin.New()
	r.GET("/guarded", JwtAuthMiddleware(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"address": c.GetString("address")})
	})

	// no token
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// garbage token
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// token minted through the login flow
	h := NewHandler(NewPersonalSignVerifier(), secret, 600)
	lr := testRouter(h)
	nonce := "0011223344556677"
	lw := postComplete(lr, signLogin(t, nonce), nonce, nonce)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(lw.Body.Bytes(), &resp))

	req = httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+resp["token"].(string))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var out map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, resp["address"], out["address"])
}
