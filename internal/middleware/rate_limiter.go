package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"embarques/internal/apierror"
	"embarques/internal/i18n"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ── Fixed-window counter ──────────────────────────────────────────────────────

const purgeInterval = 5 * time.Minute

type ventanaConteo struct {
	count int
	fin   time.Time
}

// limitador counts requests per key in fixed windows. Expired keys are
// dropped on access once per purgeInterval, so no goroutine is needed.
type limitador struct {
	mu           sync.Mutex
	limite       int
	ventana      time.Duration
	entradas     map[string]*ventanaConteo
	proximaPurga time.Time
	now          func() time.Time
}

func newLimitador(limite int, ventana time.Duration, defLimite int) *limitador {
	if limite <= 0 {
		limite = defLimite
	}
	if ventana <= 0 {
		ventana = time.Minute
	}
	return &limitador{limite: limite, ventana: ventana, entradas: make(map[string]*ventanaConteo), now: time.Now}
}

// permitir counts one request for clave. It reports whether the request is
// within the limit and how long until the window resets.
func (l *limitador) permitir(clave string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.After(l.proximaPurga) {
		l.purgar(now)
		l.proximaPurga = now.Add(purgeInterval)
	}
	e := l.entradas[clave]
	if e == nil || now.After(e.fin) {
		e = &ventanaConteo{fin: now.Add(l.ventana)}
		l.entradas[clave] = e
	}
	e.count++
	return e.count <= l.limite, e.fin.Sub(now)
}

func (l *limitador) purgar(now time.Time) {
	purgadas := 0
	for k, e := range l.entradas {
		if now.After(e.fin) {
			delete(l.entradas, k)
			purgadas++
		}
	}
	if purgadas > 0 {
		log.Debug().Int("purgadas", purgadas).Int("restantes", len(l.entradas)).Msg("rate limiter: entradas vencidas")
	}
}

func rechazar(c *gin.Context, espera time.Duration) {
	c.Header("Retry-After", strconv.Itoa(int(math.Ceil(espera.Seconds()))))
	c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(GetSettings(c).T(i18n.ErrDemasiados)))
}

// ── Auth rate limiter ─────────────────────────────────────────────────────────

// maxAuthBody bounds how much of a login or signup body is inspected.
const maxAuthBody = 16 << 10

// LoginRateLimiter limits sign-in and sign-up attempts per client IP and
// submitted email, so one office behind a shared IP does not lock out every
// user after a few typos. Share one instance between the auth routes.
func LoginRateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	l := newLimitador(limit, window, 20)
	return func(c *gin.Context) {
		clave := c.ClientIP() + "|" + correoEnviado(c)
		ok, espera := l.permitir(clave)
		if !ok {
			log.Warn().Str("ip", c.ClientIP()).Str("path", c.FullPath()).Msg("demasiados intentos de autenticación")
			rechazar(c, espera)
			return
		}
		c.Next()
	}
}

// correoEnviado reads the email of a JSON or urlencoded auth body, restoring
// the body for the handler. It returns "" when there is none.
func correoEnviado(c *gin.Context) string {
	if c.Request.Body == nil {
		return ""
	}
	b, err := io.ReadAll(io.LimitReader(c.Request.Body, maxAuthBody))
	c.Request.Body = io.NopCloser(io.MultiReader(bytes.NewReader(b), c.Request.Body))
	if err != nil {
		return ""
	}

	var email string
	switch c.ContentType() {
	case gin.MIMEJSON:
		var body struct {
			Email string `json:"email"`
		}
		if json.Unmarshal(b, &body) == nil {
			email = body.Email
		}
	case gin.MIMEPOSTForm:
		if v, err := url.ParseQuery(string(b)); err == nil {
			email = v.Get("email")
		}
	}
	return strings.ToLower(strings.TrimSpace(email))
}

// ── General API rate limiter ──────────────────────────────────────────────────

// RateLimiter limits every request per client IP.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	l := newLimitador(limit, window, 1000)
	return func(c *gin.Context) {
		if ok, espera := l.permitir(c.ClientIP()); !ok {
			rechazar(c, espera)
			return
		}
		c.Next()
	}
}
