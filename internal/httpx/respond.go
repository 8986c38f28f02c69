// Package httpx translates the shared error kinds into HTTP responses.
// This is the only place where the abstract kinds become status codes.
package httpx

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/health-wallet/go-wallet-backend/internal/apperr"
)

// Error writes the response for err. Not-found and forbidden share a single
// 404 so callers cannot probe for other users' records.
func Error(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrValidation),
		errors.Is(err, apperr.ErrInvalidOperation),
		errors.Is(err, apperr.ErrConflict):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.ErrNotFound),
		errors.Is(err, apperr.ErrNotFoundOrForbidden):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		log.Printf("[error] request_id=%s path=%s err=%v", c.GetString("request_id"), c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
