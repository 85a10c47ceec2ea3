package middleware

import (
	"net/http"

	"embarques/internal/apierror"
	"embarques/internal/i18n"

	"github.com/gin-gonic/gin"
)

// RequireConfigured answers 500 with the fixed configuration message when the
// data store is not available.
func RequireConfigured(configured bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !configured {
			c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New(GetSettings(c).T(i18n.ErrConfig)))
			return
		}
		c.Next()
	}
}
