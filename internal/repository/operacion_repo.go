package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"embarques/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrConteoInconsistente is returned by the bulk lifecycle updates when the
// number of affected rows differs from the number of ids. The transaction
// is rolled back in that case.
var ErrConteoInconsistente = errors.New("la cantidad de operaciones afectadas no coincide con la selección")

// FiltroOperaciones narrows an active-operation search.
type FiltroOperaciones struct {
	Q          string
	SinFactura bool
	Limite     int
}

// Conteo is one group of a GROUP BY count.
type Conteo struct {
	Valor string `json:"valor"`
	Total int64  `json:"total"`
}

type OperacionRepository interface {
	ListarActivas(ctx context.Context) ([]model.Operacion, error)
	ListarPapelera(ctx context.Context) ([]model.Operacion, error)
	Buscar(ctx context.Context, f FiltroOperaciones) ([]model.Operacion, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Operacion, error)
	Create(ctx context.Context, op *model.Operacion) error
	ActualizarCampos(ctx context.Context, id uuid.UUID, campos map[string]any) error
	EnviarAPapelera(ctx context.Context, ids []uuid.UUID, at time.Time) error
	Restaurar(ctx context.Context, ids []uuid.UUID) error
	Purgar(ctx context.Context, ids []uuid.UUID) error
	VaciarPapelera(ctx context.Context) (int64, error)
	ContarPapelera(ctx context.Context) (int64, error)
	ContarActivas(ctx context.Context) (int64, error)
	ContarPor(ctx context.Context, columna string) ([]Conteo, error)
	ProximosZarpes(ctx context.Context, desde, hasta time.Time, limite int) ([]model.Operacion, error)
	Recientes(ctx context.Context, limite int) ([]model.Operacion, error)
}

type operacionRepo struct{ db *gorm.DB }

func NewOperacionRepository(db *gorm.DB) OperacionRepository { return &operacionRepo{db: db} }

func (r *operacionRepo) activas(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.Operacion{}).Where("deleted_at IS NULL")
}

func (r *operacionRepo) ListarActivas(ctx context.Context) ([]model.Operacion, error) {
	var ops []model.Operacion
	err := r.activas(ctx).Order("correlativo DESC").Find(&ops).Error
	return ops, err
}

func (r *operacionRepo) ListarPapelera(ctx context.Context) ([]model.Operacion, error) {
	var ops []model.Operacion
	err := r.db.WithContext(ctx).
		Where("deleted_at IS NOT NULL").
		Order("deleted_at DESC").
		Find(&ops).Error
	return ops, err
}

func (r *operacionRepo) Buscar(ctx context.Context, f FiltroOperaciones) ([]model.Operacion, error) {
	q := r.activas(ctx)
	if s := strings.TrimSpace(f.Q); s != "" {
		like := "%" + s + "%"
		q = q.Where("COALESCE(NULLIF(ref_asli, ''), 'A' || LPAD(correlativo::text, 5, '0')) ILIKE ? "+
			"OR cliente ILIKE ? OR booking ILIKE ? OR naviera ILIKE ? OR nave ILIKE ? OR pod ILIKE ?",
			like, like, like, like, like, like)
	}
	if f.SinFactura {
		q = q.Where("numero_factura_asli IS NULL OR numero_factura_asli = ''")
	}
	if f.Limite > 0 {
		q = q.Limit(f.Limite)
	}
	var ops []model.Operacion
	err := q.Order("correlativo DESC").Find(&ops).Error
	return ops, err
}

func (r *operacionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Operacion, error) {
	var op model.Operacion
	err := r.db.WithContext(ctx).First(&op, "id = ?", id).Error
	return &op, err
}

func (r *operacionRepo) Create(ctx context.Context, op *model.Operacion) error {
	return r.db.WithContext(ctx).Create(op).Error
}

// ActualizarCampos patches the given columns of one active operation.
// A missing or trashed id yields gorm.ErrRecordNotFound.
func (r *operacionRepo) ActualizarCampos(ctx context.Context, id uuid.UUID, campos map[string]any) error {
	res := r.activas(ctx).Where("id = ?", id).Updates(campos)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// EnviarAPapelera stamps deleted_at on every id. Either all of them were
// active and are now trashed, or nothing changes.
func (r *operacionRepo) EnviarAPapelera(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Operacion{}).
			Where("id IN ? AND "+desde(model.EnPapelera), ids).
			Update("deleted_at", at)
		return exacto(res, len(ids))
	})
}

func (r *operacionRepo) Restaurar(ctx context.Context, ids []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Operacion{}).
			Where("id IN ? AND "+desde(model.Activa), ids).
			Update("deleted_at", nil)
		return exacto(res, len(ids))
	})
}

// Purgar hard-deletes trashed operations. An active id in the list makes the
// whole call fail.
func (r *operacionRepo) Purgar(ctx context.Context, ids []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("operacion_id IN ?", ids).Delete(&model.Documento{}).Error; err != nil {
			return err
		}
		res := tx.Where("id IN ? AND "+desde(model.Purgada), ids).Delete(&model.Operacion{})
		return exacto(res, len(ids))
	})
}

func (r *operacionRepo) VaciarPapelera(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		trashed := tx.Model(&model.Operacion{}).Select("id").Where(desde(model.Purgada))
		if err := tx.Where("operacion_id IN (?)", trashed).Delete(&model.Documento{}).Error; err != nil {
			return err
		}
		res := tx.Where(desde(model.Purgada)).Delete(&model.Operacion{})
		n = res.RowsAffected
		return res.Error
	})
	return n, err
}

func (r *operacionRepo) ContarPapelera(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Operacion{}).Where("deleted_at IS NOT NULL").Count(&n).Error
	return n, err
}

func (r *operacionRepo) ContarActivas(ctx context.Context) (int64, error) {
	var n int64
	err := r.activas(ctx).Count(&n).Error
	return n, err
}

var columnasConteo = map[string]bool{"estado_operacion": true, "naviera": true, "cliente": true}

// ContarPor groups active operations by one of estado_operacion, naviera or
// cliente. Nulls are reported as the empty string.
func (r *operacionRepo) ContarPor(ctx context.Context, columna string) ([]Conteo, error) {
	if !columnasConteo[columna] {
		return nil, errors.New("columna de conteo no soportada: " + columna)
	}
	var out []Conteo
	err := r.activas(ctx).
		Select("COALESCE(" + columna + ", '') AS valor, COUNT(*) AS total").
		Group("valor").
		Order("total DESC").
		Scan(&out).Error
	return out, err
}

func (r *operacionRepo) ProximosZarpes(ctx context.Context, desde, hasta time.Time, limite int) ([]model.Operacion, error) {
	var ops []model.Operacion
	err := r.activas(ctx).
		Where("etd >= ? AND etd <= ?", desde.Format("2006-01-02"), hasta.Format("2006-01-02")).
		Order("etd ASC").
		Limit(limite).
		Find(&ops).Error
	return ops, err
}

func (r *operacionRepo) Recientes(ctx context.Context, limite int) ([]model.Operacion, error) {
	var ops []model.Operacion
	err := r.activas(ctx).Order("created_at DESC").Limit(limite).Find(&ops).Error
	return ops, err
}

func exacto(res *gorm.DB, want int) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != int64(want) {
		return ErrConteoInconsistente
	}
	return nil
}

// desde is the SQL predicate selecting the rows whose lifecycle state may
// move to the target state.
func desde(to model.Lifecycle) string {
	activa := model.CanTransition(model.Activa, to)
	papelera := model.CanTransition(model.EnPapelera, to)
	switch {
	case activa && papelera:
		return "TRUE"
	case activa:
		return "deleted_at IS NULL"
	case papelera:
		return "deleted_at IS NOT NULL"
	default:
		return "FALSE"
	}
}
