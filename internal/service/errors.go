package service

import (
	"errors"
	"fmt"

	"embarques/internal/grid"
	"embarques/internal/i18n"
)

var (
	ErrOperacionNoEncontrada = errors.New("operación no encontrada")
	ErrClienteNoEncontrado   = errors.New("cliente no encontrado")
	ErrDocumentoNoEncontrado = errors.New("documento no encontrado")
	ErrSoloPapelera          = errors.New("solo se pueden purgar operaciones en la papelera")
	ErrNoEnPapelera          = errors.New("alguna operación ya no está en la papelera")
	ErrSeleccionActiva       = errors.New("alguna operación ya no está activa")
	ErrPreviewRequerido      = errors.New("se requiere confirmar la vista previa")
	ErrTipoArchivo           = errors.New("tipo de archivo no permitido")
	ErrArchivoGrande         = errors.New("archivo demasiado grande")
	ErrTipoDocumento         = errors.New("tipo de documento inválido")
	ErrNombreRequerido       = errors.New("nombre requerido")
	ErrSinSeleccion          = grid.ErrSinSeleccion

	ErrCorreoRequerido   = errors.New("correo requerido")
	ErrClaveRequerida    = errors.New("contraseña requerida")
	ErrClaveCorta        = errors.New("contraseña demasiado corta")
	ErrCredenciales      = errors.New("credenciales inválidas")
	ErrCorreoRegistrado  = errors.New("correo ya registrado")
	ErrAuthNoConfigurada = errors.New("autenticación no configurada")
)

// ConfirmacionRequerida is returned by destructive operations called without
// confirmation. Clave and Args build the prompt shown to the user.
type ConfirmacionRequerida struct {
	Clave i18n.Key
	Args  []any
}

func (e *ConfirmacionRequerida) Error() string {
	return fmt.Sprintf("confirmación requerida (%s)", e.Clave)
}

func confirmar(clave i18n.Key, args ...any) error {
	return &ConfirmacionRequerida{Clave: clave, Args: args}
}
