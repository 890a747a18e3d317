package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newRouter() *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextRequestID))
	})
	return r
}

// TestRequestID_Generated はヘッダーがない場合にUUIDが生成されることを検証します。
func TestRequestID_Generated(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	id := w.Header().Get(HeaderRequestID)
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected uuid request id, got %q", id)
	}
	if w.Body.String() != id {
		t.Errorf("expected context id %q, got %q", id, w.Body.String())
	}
}

// TestRequestID_Propagated はクライアントのリクエストIDがそのまま使われることを検証します。
func TestRequestID_Propagated(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc-123")

	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, req)

	if got := w.Header().Get(HeaderRequestID); got != "abc-123" {
		t.Errorf("expected propagated id, got %q", got)
	}
}

// TestRequestID_TooLong は長すぎるリクエストIDが置き換えられることを検証します。
func TestRequestID_TooLong(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, strings.Repeat("x", 200))

	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, req)

	if _, err := uuid.Parse(w.Header().Get(HeaderRequestID)); err != nil {
		t.Errorf("expected generated uuid, got %q", w.Header().Get(HeaderRequestID))
	}
}
