package repository

import (
	"context"
	"errors"
	"strings"

	"embarques/internal/catalogo"
	"embarques/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CatalogoRepository interface {
	Opciones(ctx context.Context, kind catalogo.Kind) ([]catalogo.Opcion, error)
	NavesPorNaviera(ctx context.Context, navieraID uuid.UUID) ([]catalogo.Opcion, error)
	NavesPorNombreNaviera(ctx context.Context, naviera string) ([]catalogo.Opcion, error)
	PaisDestino(ctx context.Context, nombre string) (string, error)
	CrearEmpresa(ctx context.Context, nombre string) (catalogo.Opcion, error)
}

type catalogoRepo struct{ db *gorm.DB }

func NewCatalogoRepository(db *gorm.DB) CatalogoRepository { return &catalogoRepo{db: db} }

type filaOpcion struct {
	ID          string
	Nombre      string
	Descripcion *string
	Pais        *string
}

func (f filaOpcion) opcion() catalogo.Opcion {
	o := catalogo.Opcion{ID: f.ID, Nombre: f.Nombre}
	if f.Descripcion != nil {
		o.Descripcion = *f.Descripcion
	}
	if f.Pais != nil {
		o.Pais = *f.Pais
	}
	return o
}

func opciones(filas []filaOpcion) []catalogo.Opcion {
	out := make([]catalogo.Opcion, 0, len(filas))
	for _, f := range filas {
		out = append(out, f.opcion())
	}
	return out
}

// Opciones returns the options of any catalog ordered for display.
func (r *catalogoRepo) Opciones(ctx context.Context, kind catalogo.Kind) ([]catalogo.Opcion, error) {
	db := r.db.WithContext(ctx)
	var q *gorm.DB

	switch kind {
	case catalogo.Navieras:
		q = db.Model(&model.Naviera{}).Select("id::text AS id, nombre")
	case catalogo.Naves:
		q = db.Model(&model.Nave{}).Select("id::text AS id, nombre")
	case catalogo.PuertosOrigen:
		q = db.Model(&model.PuertoOrigen{}).Select("id::text AS id, nombre").Where("activo = true")
	case catalogo.Destinos:
		q = db.Model(&model.Destino{}).Select("id::text AS id, nombre, pais").Where("activo = true")
	case catalogo.Plantas:
		q = db.Model(&model.Planta{}).Select("id::text AS id, nombre").Where("activo = true")
	case catalogo.Depositos:
		q = db.Model(&model.Deposito{}).Select("id::text AS id, nombre").Where("activo = true")
	case catalogo.Especies:
		q = db.Model(&model.Especie{}).Select("id::text AS id, nombre")
	case catalogo.Consignatarios:
		q = db.Model(&model.Consignatario{}).Select("id::text AS id, nombre").Where("activo = true")
	case catalogo.Ejecutivos:
		q = db.Model(&model.Usuario{}).
			Select("id::text AS id, nombre, email AS descripcion").
			Where("activo = true AND rol IN ?", []string{model.RolEjecutivo, model.RolAdmin})
	case catalogo.Empresas:
		q = db.Model(&model.Empresa{}).Select("id::text AS id, nombre")
	case catalogo.TiposOperacion, catalogo.EstadosOperacion, catalogo.Incoterms, catalogo.FormasPago,
		catalogo.Ventilaciones, catalogo.TiposUnidad, catalogo.Prioridades, catalogo.Monedas:
		var filas []filaOpcion
		err := db.Model(&model.Catalogo{}).
			Select("valor AS id, valor AS nombre, descripcion").
			Where("categoria = ? AND activo = true", string(kind)).
			Order("orden ASC, valor ASC").
			Scan(&filas).Error
		return opciones(filas), err
	default:
		return nil, catalogo.ErrKindDesconocido
	}

	var filas []filaOpcion
	err := q.Order("nombre ASC").Scan(&filas).Error
	return opciones(filas), err
}

func (r *catalogoRepo) NavesPorNaviera(ctx context.Context, navieraID uuid.UUID) ([]catalogo.Opcion, error) {
	var filas []filaOpcion
	err := r.db.WithContext(ctx).
		Table("naves").
		Select("naves.id::text AS id, naves.nombre").
		Joins("JOIN navieras_naves nn ON nn.nave_id = naves.id").
		Where("nn.naviera_id = ?", navieraID).
		Order("naves.nombre ASC").
		Scan(&filas).Error
	return opciones(filas), err
}

func (r *catalogoRepo) NavesPorNombreNaviera(ctx context.Context, naviera string) ([]catalogo.Opcion, error) {
	var filas []filaOpcion
	err := r.db.WithContext(ctx).
		Table("naves").
		Select("naves.id::text AS id, naves.nombre").
		Joins("JOIN navieras_naves nn ON nn.nave_id = naves.id").
		Joins("JOIN navieras n ON n.id = nn.naviera_id").
		Where("LOWER(n.nombre) = LOWER(?)", strings.TrimSpace(naviera)).
		Order("naves.nombre ASC").
		Scan(&filas).Error
	return opciones(filas), err
}

// PaisDestino returns the country of the named destination, or "" when the
// destination is unknown or has no country.
func (r *catalogoRepo) PaisDestino(ctx context.Context, nombre string) (string, error) {
	var d model.Destino
	err := r.db.WithContext(ctx).
		Where("LOWER(nombre) = LOWER(?)", strings.TrimSpace(nombre)).
		First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil || d.Pais == nil {
		return "", err
	}
	return *d.Pais, nil
}

func (r *catalogoRepo) CrearEmpresa(ctx context.Context, nombre string) (catalogo.Opcion, error) {
	e := model.Empresa{Nombre: strings.TrimSpace(nombre)}
	if err := r.db.WithContext(ctx).Create(&e).Error; err != nil {
		return catalogo.Opcion{}, err
	}
	return catalogo.Opcion{ID: e.ID.String(), Nombre: e.Nombre}, nil
}
