package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
)

func newAuthTestRouter(username, password string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(BasicAuth(username, password))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pong": true})
	})
	return r
}

func TestBasicAuth_DisabledWithoutCredentials(t *testing.T) {
	r := newAuthTestRouter("", "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/ping", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBasicAuth_RejectsMissingCredentials(t *testing.T) {
	r := newAuthTestRouter("admin", "secret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/ping", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEqual(t, "", w.Header().Get("WWW-Authenticate"))
}

func TestBasicAuth_RejectsWrongPassword(t *testing.T) {
	r := newAuthTestRouter("admin", "secret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/ping", nil)
	req.SetBasicAuth("admin", "wrong")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBasicAuth_AcceptsValidCredentials(t *testing.T) {
	r := newAuthTestRouter("admin", "secret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/ping", nil)
	req.SetBasicAuth("admin", "secret")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
