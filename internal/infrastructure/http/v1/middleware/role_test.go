package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	appctx "stockbook/internal/core/context"
)

func newRoleRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.POST("/guarded",
		func(c *gin.Context) {
			// Stand-in for Auth: take the role from a test header
			if role := c.GetHeader("X-Test-Role"); role != "" {
				ctx := appctx.WithUser(c.Request.Context(), &appctx.UserContext{
					UserID: "user-1",
					Role:   role,
				})
				c.Request = c.Request.WithContext(ctx)
			}
			c.Next()
		},
		RequireRole(roles...),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		},
	)
	return r
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		required   []string
		role       string
		wantStatus int
	}{
		{name: "matching role passes", required: []string{"manager"}, role: "manager", wantStatus: http.StatusOK},
		{name: "any of several roles passes", required: []string{"manager", "admin"}, role: "manager", wantStatus: http.StatusOK},
		{name: "admin passes every check", required: []string{"manager"}, role: "admin", wantStatus: http.StatusOK},
		{name: "employee blocked from manager route", required: []string{"manager"}, role: "employee", wantStatus: http.StatusForbidden},
		{name: "unknown role blocked", required: []string{"manager"}, role: "intern", wantStatus: http.StatusForbidden},
		{name: "anonymous blocked", required: []string{"manager"}, role: "", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRoleRouter(tt.required...)

			req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
			if tt.role != "" {
				req.Header.Set("X-Test-Role", tt.role)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

type stubValidator struct {
	user *appctx.UserContext
	err  error
}

func (s *stubValidator) ValidateToken(string) (*appctx.UserContext, error) {
	return s.user, s.err
}

func TestAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(v JWTValidator) *gin.Engine {
		r := gin.New()
		r.Use(ErrorHandler(), Auth(v))
		r.GET("/me", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"userId": appctx.GetUserID(c.Request.Context())})
		})
		return r
	}

	t.Run("valid bearer token", func(t *testing.T) {
		router := newRouter(&stubValidator{user: &appctx.UserContext{UserID: "user-1", Role: "employee"}})

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "user-1")
	})

	t.Run("missing header", func(t *testing.T) {
		router := newRouter(&stubValidator{})

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		router := newRouter(&stubValidator{})

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejected token", func(t *testing.T) {
		router := newRouter(&stubValidator{err: assert.AnError})

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
