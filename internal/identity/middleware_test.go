package identity

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestRouter() (*gin.Engine, *int64) {
	gin.SetMode(gin.TestMode)

	var gotID int64
	r := gin.New()
	r.GET("/protected", Required(), func(c *gin.Context) {
		gotID = GetUserID(c)
		c.Status(http.StatusOK)
	})
	return r, &gotID
}

func TestRequired_ValidHeader(t *testing.T) {
	r, gotID := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(Header, "42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(42), *gotID)
}

func TestRequired_MissingHeader(t *testing.T) {
	r, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), Header)
}

func TestRequired_InvalidHeader(t *testing.T) {
	for _, raw := range []string{"abc", "0", "-5", "1.5"} {
		r, _ := newTestRouter()

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(Header, raw)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "header %q", raw)
	}
}

func TestGetUserID_WithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Equal(t, int64(0), GetUserID(c))
}
