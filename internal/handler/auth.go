package handler

import (
	"net/http"

	"embarques/internal/apierror"
	"embarques/internal/dto"
	"embarques/internal/i18n"
	"embarques/internal/middleware"
	"embarques/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthHandler struct {
	svc          service.AuthService
	cookieSecure bool
}

func NewAuthHandler(svc service.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{svc: svc, cookieSecure: cookieSecure}
}

func (h *AuthHandler) fail(c *gin.Context, err error) {
	status, msg := errorStatus(c, err, 0)
	c.JSON(status, dto.AuthResponse{Success: false, Error: msg})
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, value, maxAge, "/", "", h.cookieSecure, true)
}

// Login godoc
// @Summary Inicio de sesión
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param body body dto.LoginRequest true "Credenciales"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.AuthResponse
// @Failure 401 {object} dto.AuthResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.AuthResponse{Error: "JSON invalido: " + err.Error()})
		return
	}
	res, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.setCookie(c, res.Token, res.ExpiresIn)
	c.JSON(http.StatusOK, dto.AuthResponse{Success: true, Redirect: service.RedirectInicio})
}

// Signup godoc
// @Summary Registro de usuario
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param body body dto.SignupRequest true "Datos de registro"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.AuthResponse
// @Failure 409 {object} dto.AuthResponse
// @Router /api/auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.AuthResponse{Error: "JSON invalido: " + err.Error()})
		return
	}
	if err := h.svc.Registrar(c.Request.Context(), req); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AuthResponse{Success: true, Redirect: service.RedirectRegistrado})
}

// Signout godoc
// @Summary Cierre de sesión
// @Tags auth
// @Produce json
// @Success 200 {object} dto.AuthResponse
// @Router /api/auth/signout [post]
func (h *AuthHandler) Signout(c *gin.Context) {
	h.setCookie(c, "", -1)
	c.JSON(http.StatusOK, dto.AuthResponse{Success: true, Redirect: service.RedirectLogin})
}

// Session godoc
// @Summary Usuario de la sesión actual
// @Tags auth
// @Produce json
// @Success 200 {object} dto.SesionResponse
// @Failure 401 {object} apierror.APIError
// @Router /api/auth/session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	st := middleware.GetSettings(c)
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, apierror.New(st.T(i18n.ErrNoAutenticado)))
		return
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New(st.T(i18n.ErrNoAutenticado)))
		return
	}
	resp, err := h.svc.Sesion(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Preferencias ─────────────────────────────────────────────────────────────

type PreferenciasHandler struct{ prefs *i18n.Preferences }

func NewPreferenciasHandler(prefs *i18n.Preferences) *PreferenciasHandler {
	return &PreferenciasHandler{prefs: prefs}
}

func usuarioActual(c *gin.Context) string {
	if claims := middleware.GetClaims(c); claims != nil {
		return claims.UserID
	}
	return ""
}

// Idioma GET /v1/preferencias/idioma
func (h *PreferenciasHandler) Idioma(c *gin.Context) {
	_, guardado := h.prefs.Load(c.Request.Context(), usuarioActual(c))
	c.JSON(http.StatusOK, dto.IdiomaResponse{Idioma: middleware.GetSettings(c).Lang(), Guardado: guardado})
}

// GuardarIdioma PUT /v1/preferencias/idioma
func (h *PreferenciasHandler) GuardarIdioma(c *gin.Context) {
	var req dto.IdiomaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	l, ok := i18n.Parse(req.Idioma)
	if !ok {
		c.JSON(http.StatusBadRequest, apierror.New(middleware.GetSettings(c).T(i18n.ErrValorInvalido)))
		return
	}
	if err := h.prefs.Save(c.Request.Context(), usuarioActual(c), l); err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Language", string(l))
	c.JSON(http.StatusOK, dto.IdiomaResponse{Idioma: string(l), Guardado: true})
}
