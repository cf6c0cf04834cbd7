package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// stubVerifier implements TokenVerifier for testing
type stubVerifier struct {
	identity *Identity
	err      error
}

func (s *stubVerifier) VerifyToken(_ string) (*Identity, error) {
	return s.identity, s.err
}

func newAuthRouter(verifier TokenVerifier, adminOnly bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := []gin.HandlerFunc{Authenticate(verifier)}
	if adminOnly {
		handlers = append(handlers, RequireAdmin())
	}
	handlers = append(handlers, func(c *gin.Context) {
		identity, _ := IdentityFrom(c)
		c.JSON(http.StatusOK, gin.H{"user_id": identity.UserID})
	})
	r.GET("/protected", handlers...)
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate_MissingToken(t *testing.T) {
	r := newAuthRouter(&stubVerifier{}, false)

	for _, header := range []string{"", "Bearer ", "Basic abc"} {
		w := doRequest(r, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error": "Authentication required"}`, w.Body.String())
	}
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	r := newAuthRouter(&stubVerifier{err: errors.New("token is expired")}, false)

	w := doRequest(r, "Bearer bad-token")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error": "Invalid or expired token"}`, w.Body.String())
}

func TestAuthenticate_ValidToken(t *testing.T) {
	verifier := &stubVerifier{identity: &Identity{UserID: 7, Role: "user"}}
	r := newAuthRouter(verifier, false)

	w := doRequest(r, "Bearer good-token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id": 7}`, w.Body.String())
}

func TestRequireAdmin_DeniesUser(t *testing.T) {
	verifier := &stubVerifier{identity: &Identity{UserID: 7, Role: "user"}}
	r := newAuthRouter(verifier, true)

	w := doRequest(r, "Bearer good-token")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error": "Access denied"}`, w.Body.String())
}

func TestRequireAdmin_AllowsAdmin(t *testing.T) {
	verifier := &stubVerifier{identity: &Identity{UserID: 1, Role: "admin"}}
	r := newAuthRouter(verifier, true)

	w := doRequest(r, "Bearer good-token")
	assert.Equal(t, http.StatusOK, w.Code)
}
