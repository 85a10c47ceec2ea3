package middleware

import (
	"time"

	"embarques/internal/i18n"

	"github.com/gin-gonic/gin"
)

const SettingsKey = "settings"

// Locale resolves the request's presentation settings. A stored preference
// wins; otherwise Accept-Language is negotiated. The result is echoed in
// Content-Language.
func Locale(prefs *i18n.Preferences, zone *time.Location) gin.HandlerFunc {
	return func(c *gin.Context) {
		var userID string
		if claims := GetClaims(c); claims != nil {
			userID = claims.UserID
		}
		l, ok := prefs.Load(c.Request.Context(), userID)
		if !ok {
			l = i18n.Negotiate(c.GetHeader("Accept-Language"), prefs.Fallback())
		}
		s := i18n.NewSettings(l, zone)
		c.Set(SettingsKey, s)
		c.Header("Content-Language", s.Lang())
		c.Next()
	}
}

// GetSettings returns the request's settings, or Spanish in UTC when the
// Locale middleware did not run.
func GetSettings(c *gin.Context) i18n.Settings {
	if v, ok := c.Get(SettingsKey); ok {
		if s, ok := v.(i18n.Settings); ok {
			return s
		}
	}
	return i18n.NewSettings(i18n.ES, time.UTC)
}
