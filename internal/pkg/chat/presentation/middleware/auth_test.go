package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	authport "skillswap/internal/infrastructure/auth/port"
)

type fakeVerifier struct {
	valid map[string]string // token -> userID
}

func (f *fakeVerifier) Verify(_ context.Context, token string) (string, error) {
	if userID, ok := f.valid[token]; ok {
		return userID, nil
	}
	return "", authport.ErrInvalidToken
}

func newTestRouter(verifier authport.TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", RequireAuth(verifier), func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUserID(c))
	})
	return r
}

func TestRequireAuthAcceptsBearerToken(t *testing.T) {
	r := newTestRouter(&fakeVerifier{valid: map[string]string{"good": "u1"}})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", w.Code)
	}
	if w.Body.String() != "u1" {
		t.Fatalf("got user %q, want u1", w.Body.String())
	}
}

func TestRequireAuthAcceptsQueryToken(t *testing.T) {
	r := newTestRouter(&fakeVerifier{valid: map[string]string{"good": "u1"}})

	req := httptest.NewRequest(http.MethodGet, "/me?token=good", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", w.Code)
	}
}

func TestRequireAuthRejectsBadTokens(t *testing.T) {
	r := newTestRouter(&fakeVerifier{valid: map[string]string{"good": "u1"}})

	for name, build := range map[string]func() *http.Request{
		"missing token": func() *http.Request {
			return httptest.NewRequest(http.MethodGet, "/me", nil)
		},
		"wrong token": func() *http.Request {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			req.Header.Set("Authorization", "Bearer bad")
			return req
		},
		"malformed header": func() *http.Request {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			req.Header.Set("Authorization", "good")
			return req
		},
	} {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, build())
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("got status %d, want 401", w.Code)
			}
		})
	}
}
