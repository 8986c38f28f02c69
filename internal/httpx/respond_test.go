package httpx

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/health-wallet/go-wallet-backend/internal/apperr"
)

func TestError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", fmt.Errorf("title required: %w", apperr.ErrValidation), http.StatusBadRequest},
		{"conflict", fmt.Errorf("already shared: %w", apperr.ErrConflict), http.StatusBadRequest},
		{"invalid operation", fmt.Errorf("self share: %w", apperr.ErrInvalidOperation), http.StatusBadRequest},
		{"not found", apperr.ErrNotFound, http.StatusNotFound},
		{"not found or forbidden", fmt.Errorf("denied: %w", apperr.ErrNotFoundOrForbidden), http.StatusNotFound},
		{"invalid credentials", apperr.ErrInvalidCredentials, http.StatusUnauthorized},
		{"internal", fmt.Errorf("db down"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			Error(c, tc.err)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

// The two 404 cases must be byte-identical in shape so a caller cannot tell
// "missing" apart from "exists but not yours".
func TestError_NotFoundConflation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, err := range []error{apperr.ErrNotFound, apperr.ErrNotFoundOrForbidden} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		Error(c, err)
		assert.Equal(t, http.StatusNotFound, w.Code)
	}
}
