package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"embarques/internal/apierror"
	"embarques/internal/catalogo"
	"embarques/internal/grid"
	"embarques/internal/i18n"
	"embarques/internal/listado"
	"embarques/internal/middleware"
	"embarques/internal/service"
	"embarques/internal/wizard"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails;
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	return validated(c, req)
}

// bindQuery is bindAndValidate for query-string parameters.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(middleware.GetSettings(c).T(i18n.ErrValorInvalido)))
		return false
	}
	return validated(c, req)
}

func validated(c *gin.Context, req interface{}) bool {
	err := validate.Struct(req)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return false
	}
	fields := make(map[string]string)
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(middleware.GetSettings(c).T(i18n.ErrValorInvalido), fields))
	return false
}

// paramID parses the :name path parameter as a UUID.
func paramID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(middleware.GetSettings(c).T(i18n.ErrIDInvalido)))
		return uuid.Nil, false
	}
	return id, true
}

// queryID reads an optional UUID query parameter. It answers 400 when the
// parameter is present but malformed.
func queryID(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(middleware.GetSettings(c).T(i18n.ErrIDInvalido)))
		return nil, false
	}
	return &id, true
}

type errorMapping struct {
	target error
	status int
	key    i18n.Key
}

var errorMappings = []errorMapping{
	{service.ErrOperacionNoEncontrada, http.StatusNotFound, i18n.ErrNoEncontrada},
	{gorm.ErrRecordNotFound, http.StatusNotFound, i18n.ErrNoEncontrada},
	{service.ErrClienteNoEncontrado, http.StatusNotFound, i18n.ErrClienteNoExiste},
	{service.ErrDocumentoNoEncontrado, http.StatusNotFound, i18n.ErrDocumentoNoExiste},
	{service.ErrSinSeleccion, http.StatusBadRequest, i18n.ErrSinSeleccion},
	{grid.ErrColumnaNoEditable, http.StatusBadRequest, i18n.ErrColumnaNoEditable},
	{grid.ErrValorInvalido, http.StatusUnprocessableEntity, i18n.ErrValorInvalido},
	{wizard.ErrValorInvalido, http.StatusUnprocessableEntity, i18n.ErrValorInvalido},
	{service.ErrSoloPapelera, http.StatusConflict, i18n.ErrSoloPapelera},
	{service.ErrNoEnPapelera, http.StatusConflict, i18n.ErrNoEnPapelera},
	{service.ErrSeleccionActiva, http.StatusConflict, i18n.ErrSeleccionActiva},
	{service.ErrPreviewRequerido, http.StatusConflict, i18n.ErrPreviewRequerido},
	{service.ErrTipoArchivo, http.StatusUnsupportedMediaType, i18n.ErrTipoArchivo},
	{service.ErrTipoDocumento, http.StatusBadRequest, i18n.ErrTipoDocumento},
	{service.ErrNombreRequerido, http.StatusUnprocessableEntity, i18n.ErrNombreRequerido},
	{catalogo.ErrKindDesconocido, http.StatusBadRequest, i18n.ErrCatalogo},
	{listado.ErrCampoOrden, http.StatusBadRequest, i18n.ErrValorInvalido},
	{service.ErrCorreoRequerido, http.StatusBadRequest, i18n.ErrCorreoRequerido},
	{service.ErrClaveRequerida, http.StatusBadRequest, i18n.ErrClaveRequerida},
	{service.ErrClaveCorta, http.StatusBadRequest, i18n.ErrClaveCorta},
	{service.ErrCredenciales, http.StatusUnauthorized, i18n.ErrCredenciales},
	{service.ErrCorreoRegistrado, http.StatusConflict, i18n.ErrCorreoRegistrado},
	{service.ErrAuthNoConfigurada, http.StatusInternalServerError, i18n.ErrAuthConfig},
}

// errorStatus resolves err to an HTTP status and a localized message.
func errorStatus(c *gin.Context, err error, maxUploadMB int64) (int, string) {
	s := middleware.GetSettings(c)

	var conf *service.ConfirmacionRequerida
	if errors.As(err, &conf) {
		return http.StatusConflict, s.T(conf.Clave, conf.Args...)
	}
	if errors.Is(err, service.ErrArchivoGrande) {
		return http.StatusRequestEntityTooLarge, s.T(i18n.ErrArchivoGrande, maxUploadMB)
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, s.T(m.key)
		}
	}
	if apierror.Conflicto(err) {
		msg, _ := apierror.Backend(err)
		return http.StatusConflict, msg
	}
	if msg, ok := apierror.Backend(err); ok {
		return http.StatusBadRequest, msg
	}
	if apierror.Conexion(err) {
		return http.StatusServiceUnavailable, s.T(i18n.ErrConexion)
	}
	return http.StatusInternalServerError, s.T(i18n.ErrInterno)
}

// respondError writes the error envelope for a service error. Unmapped errors
// are logged and answered with the generic message.
func respondError(c *gin.Context, err error) {
	respondErrorMB(c, err, 0)
}

func respondErrorMB(c *gin.Context, err error, maxUploadMB int64) {
	status, msg := errorStatus(c, err, maxUploadMB)
	var conf *service.ConfirmacionRequerida
	if errors.As(err, &conf) {
		c.JSON(status, apierror.NewConfirmation(msg))
		return
	}
	if status >= http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("path", c.FullPath()).
			Msg("request failed")
	}
	c.JSON(status, apierror.New(msg))
}
