package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/airline-backoffice/internal/domain"
	"github.com/gin-gonic/gin"
)

// writeError maps domain sentinels to HTTP status codes. Unknown errors are
// treated as fatal for the call and surface as 500 without the internal
// message.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrInsufficientSeats),
		errors.Is(err, domain.ErrCapacityExceeded):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
