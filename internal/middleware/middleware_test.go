package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"embarques/internal/i18n"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_jwt_secret_32_chars_minimum!"

func signToken(t *testing.T, userID, rol string, dur time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": userID, "email": "ana@asli.cl", "rol": rol,
		"exp": time.Now().Add(dur).Unix(), "iat": time.Now().Unix(),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func detail(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Detail
}

func protegido() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Session(testSecret))
	r.GET("/abierto", func(c *gin.Context) {
		if claims := GetClaims(c); claims != nil {
			c.String(http.StatusOK, claims.UserID)
			return
		}
		c.String(http.StatusOK, "anonimo")
	})
	r.GET("/protegido", JWTAuth(testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetClaims(c).UserID})
	})
	r.GET("/admin", JWTAuth(testSecret), RequireRole("admin"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func get(r http.Handler, path string, opts ...func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, o := range opts {
		o(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func bearer(tok string) func(*http.Request) {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+tok) }
}

func cookie(tok string) func(*http.Request) {
	return func(r *http.Request) { r.AddCookie(&http.Cookie{Name: SessionCookie, Value: tok}) }
}

func TestJWTAuth_BearerYCookie(t *testing.T) {
	r := protegido()
	tok := signToken(t, "u-1", "ejecutivo", time.Hour)

	assert.Equal(t, http.StatusOK, get(r, "/protegido", bearer(tok)).Code)
	assert.Equal(t, http.StatusOK, get(r, "/protegido", cookie(tok)).Code)
}

func TestJWTAuth_Rechazos(t *testing.T) {
	r := protegido()
	tests := []struct {
		nombre string
		opts   []func(*http.Request)
	}{
		{"sin token", nil},
		{"token basura", []func(*http.Request){bearer("no.es.jwt")}},
		{"token vencido", []func(*http.Request){bearer(signToken(t, "u-1", "ejecutivo", -time.Hour))}},
	}
	for _, tt := range tests {
		t.Run(tt.nombre, func(t *testing.T) {
			w := get(r, "/protegido", tt.opts...)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "Autenticación requerida", detail(t, w))
		})
	}
}

func TestJWTAuth_OtroSecreto(t *testing.T) {
	claims := jwt.MapClaims{"user_id": "u-1", "exp": time.Now().Add(time.Hour).Unix()}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("otro"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(protegido(), "/protegido", bearer(tok)).Code)
}

func TestSession_NoRechaza(t *testing.T) {
	r := protegido()
	assert.Equal(t, "anonimo", get(r, "/abierto", bearer("basura")).Body.String())
	assert.Equal(t, "u-9", get(r, "/abierto", cookie(signToken(t, "u-9", "usuario", time.Hour))).Body.String())
}

func TestRequireRole(t *testing.T) {
	r := protegido()
	assert.Equal(t, http.StatusForbidden, get(r, "/admin", bearer(signToken(t, "u-1", "usuario", time.Hour))).Code)
	assert.Equal(t, http.StatusOK, get(r, "/admin", bearer(signToken(t, "u-1", "admin", time.Hour))).Code)
}

func TestRequireRole_MensajeTraducido(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Session(testSecret), Locale(i18n.NewPreferences(i18n.NewMemoryStorage(), i18n.ES), time.UTC))
	r.GET("/admin", RequireRole("admin"), func(c *gin.Context) { c.Status(http.StatusOK) })

	token := bearer(signToken(t, "u-1", "usuario", time.Hour))
	w := get(r, "/admin", token)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Permisos insuficientes")

	w = get(r, "/admin", token, func(req *http.Request) { req.Header.Set("Accept-Language", "en") })
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Insufficient permissions")
}

func conLocale(prefs *i18n.Preferences) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Session(testSecret), Locale(prefs, time.UTC))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetSettings(c).T(i18n.ErrInterno)) })
	return r
}

func TestLocale_NegociaAcceptLanguage(t *testing.T) {
	r := conLocale(i18n.NewPreferences(i18n.NewMemoryStorage(), i18n.ES))

	w := get(r, "/", func(req *http.Request) { req.Header.Set("Accept-Language", "en-US,en;q=0.9") })
	assert.Equal(t, "en", w.Header().Get("Content-Language"))
	assert.Equal(t, "Internal server error", w.Body.String())

	w = get(r, "/")
	assert.Equal(t, "es", w.Header().Get("Content-Language"))
	assert.Equal(t, "Error interno del servidor", w.Body.String())
}

func TestLocale_PreferenciaGuardadaGana(t *testing.T) {
	prefs := i18n.NewPreferences(i18n.NewMemoryStorage(), i18n.ES)
	require.NoError(t, prefs.Save(context.Background(), "u-1", i18n.EN))
	r := conLocale(prefs)

	w := get(r, "/", cookie(signToken(t, "u-1", "ejecutivo", time.Hour)), func(req *http.Request) {
		req.Header.Set("Accept-Language", "es-CL")
	})
	assert.Equal(t, "en", w.Header().Get("Content-Language"))

	// Otro usuario no hereda la preferencia.
	w = get(r, "/", cookie(signToken(t, "u-2", "ejecutivo", time.Hour)))
	assert.Equal(t, "es", w.Header().Get("Content-Language"))
}

func TestRequireConfigured(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/sin", RequireConfigured(false), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/con", RequireConfigured(true), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := get(r, "/sin")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, detail(t, w), "no está configurada")
	assert.Equal(t, http.StatusOK, get(r, "/con").Code)
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	w := get(r, "/", func(req *http.Request) { req.Header.Set(RequestIDHeader, "abc-123") })
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", w.Body.String())

	w = get(r, "/")
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery())
	r.GET("/", func(*gin.Context) { panic("boom") })

	w := get(r, "/")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Error interno del servidor", detail(t, w))
}

func TestCORS_EcoDelOrigen(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := get(r, "/", func(req *http.Request) { req.Header.Set("Origin", "http://localhost:4321") })
	assert.Equal(t, "http://localhost:4321", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func postLogin(r http.Handler, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	req.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginRateLimiter_PorIPYCorreo(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", LoginRateLimiter(2, time.Minute), func(c *gin.Context) {
		var body struct {
			Email string `json:"email" form:"email"`
		}
		require.NoError(t, c.ShouldBind(&body))
		c.String(http.StatusOK, body.Email)
	})

	ana := `{"email":"ana@asli.cl","password":"x"}`
	for i := 0; i < 2; i++ {
		w := postLogin(r, "application/json", ana)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ana@asli.cl", w.Body.String(), "el handler recibe el cuerpo completo")
	}

	w := postLogin(r, "application/json", `{"email":" ANA@asli.cl ","password":"y"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	// Otro usuario detrás de la misma IP no queda bloqueado.
	w = postLogin(r, "application/x-www-form-urlencoded", "email=luis%40asli.cl&password=x")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "luis@asli.cl", w.Body.String())
}

func TestLimitador_VentanaSeReinicia(t *testing.T) {
	l := newLimitador(1, time.Minute, 10)
	ahora := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return ahora }

	ok, _ := l.permitir("10.0.0.1")
	assert.True(t, ok)
	ok, espera := l.permitir("10.0.0.1")
	assert.False(t, ok)
	assert.Equal(t, time.Minute, espera)

	ahora = ahora.Add(time.Minute + time.Second)
	ok, _ = l.permitir("10.0.0.1")
	assert.True(t, ok)

	ahora = ahora.Add(10 * time.Minute)
	l.permitir("10.0.0.2")
	assert.Len(t, l.entradas, 1, "las entradas vencidas se purgan")
}

func TestRateLimiter_LimiteConfigurado(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimiter(1, time.Minute))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, get(r, "/").Code)
	w := get(r, "/")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Demasiadas solicitudes")
}
