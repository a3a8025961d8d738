package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var seenID string
	router := gin.New()
	router.Use(RequestLogger())
	router.GET("/ping", func(c *gin.Context) {
		seenID = GetRequestID(c)
		c.Status(http.StatusOK)
	})

	t.Run("generates an id when none is supplied", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
		router.ServeHTTP(w, req)

		echoed := w.Header().Get("X-Request-ID")
		if echoed == "" {
			t.Fatal("expected a generated X-Request-ID header")
		}
		if seenID != echoed {
			t.Errorf("GetRequestID = %q, header = %q", seenID, echoed)
		}
	})

	t.Run("honors an incoming id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-ID", "req-42")
		router.ServeHTTP(w, req)

		if got := w.Header().Get("X-Request-ID"); got != "req-42" {
			t.Errorf("echoed header = %q, want req-42", got)
		}
		if seenID != "req-42" {
			t.Errorf("GetRequestID = %q, want req-42", seenID)
		}
	})
}
