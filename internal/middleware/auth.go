package middleware

import (
	"net/http"
	"strings"

	"embarques/internal/apierror"
	"embarques/internal/i18n"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ClaimsKey = "claims"

	// SessionCookie carries the access token for browser clients.
	SessionCookie = "embarques_session"
)

// JWTClaims are the custom claims embedded in every access token.
type JWTClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Rol    string `json:"rol"`
	jwt.RegisteredClaims
}

// tokenDe reads the access token from the Authorization header or, failing
// that, from the session cookie.
func tokenDe(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if v, err := c.Cookie(SessionCookie); err == nil {
		return v
	}
	return ""
}

func parseClaims(tokenStr, secret string) (*JWTClaims, bool) {
	if tokenStr == "" || secret == "" {
		return nil, false
	}
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}
	return claims, true
}

// Session attaches the claims of a valid token, when one is present. It never
// rejects a request; JWTAuth does.
func Session(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := parseClaims(tokenDe(c), secret); ok {
			c.Set(ClaimsKey, claims)
		}
		c.Next()
	}
}

// JWTAuth rejects requests without a valid token.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetClaims(c) != nil {
			c.Next()
			return
		}
		claims, ok := parseClaims(tokenDe(c), secret)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New(GetSettings(c).T(i18n.ErrNoAutenticado)))
			return
		}
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireRole rejects requests whose JWT role is not in the allowed list.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil || !allowed[claims.Rol] {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New(GetSettings(c).T(i18n.ErrPermisos)))
			return
		}
		c.Next()
	}
}

// GetClaims returns the typed claims of the request, or nil when anonymous.
func GetClaims(c *gin.Context) *JWTClaims {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*JWTClaims)
	return claims
}
