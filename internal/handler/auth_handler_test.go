package handler

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func newSessionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions("test_session", store))
	return r
}

func TestAuthRequiredBlocksAnonymous(t *testing.T) {
	r := newSessionRouter()
	r.GET("/private", AuthRequired(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestCurrentUserIDRoundTrip(t *testing.T) {
	r := newSessionRouter()
	r.GET("/login", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set(sessionUserKey, uint(42))
		if err := session.Save(); err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})
	r.GET("/whoami", AuthRequired(), func(c *gin.Context) {
		c.String(http.StatusOK, strconv.FormatUint(uint64(currentUserID(c)), 10))
	})

	loginReq := httptest.NewRequest(http.MethodGet, "/login", nil)
	loginRes := httptest.NewRecorder()
	r.ServeHTTP(loginRes, loginReq)
	if loginRes.Code != http.StatusOK {
		t.Fatalf("login route failed with %d", loginRes.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	for _, c := range loginRes.Result().Cookies() {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.String() != "42" {
		t.Fatalf("expected user id 42, got %q", w.Body.String())
	}
}

func TestCurrentUserIDAnonymous(t *testing.T) {
	r := newSessionRouter()
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, strconv.FormatUint(uint64(currentUserID(c)), 10))
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Body.String() != "0" {
		t.Fatalf("expected 0 for anonymous, got %q", w.Body.String())
	}
}
