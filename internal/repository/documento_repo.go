package repository

import (
	"context"

	"embarques/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentoRepository interface {
	ListByOperacion(ctx context.Context, operacionID uuid.UUID) ([]model.Documento, error)
	ListByOperaciones(ctx context.Context, ids []uuid.UUID) ([]model.Documento, error)
	ListEnPapelera(ctx context.Context) ([]model.Documento, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Documento, error)
	FindSlot(ctx context.Context, operacionID uuid.UUID, tipo model.TipoDocumento) (*model.Documento, error)
	Create(ctx context.Context, d *model.Documento) error
	Reemplazar(ctx context.Context, d *model.Documento) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type documentoRepo struct{ db *gorm.DB }

func NewDocumentoRepository(db *gorm.DB) DocumentoRepository { return &documentoRepo{db: db} }

func (r *documentoRepo) ListByOperacion(ctx context.Context, operacionID uuid.UUID) ([]model.Documento, error) {
	var docs []model.Documento
	err := r.db.WithContext(ctx).Where("operacion_id = ?", operacionID).Order("tipo ASC").Find(&docs).Error
	return docs, err
}

func (r *documentoRepo) ListByOperaciones(ctx context.Context, ids []uuid.UUID) ([]model.Documento, error) {
	var docs []model.Documento
	err := r.db.WithContext(ctx).Where("operacion_id IN ?", ids).Find(&docs).Error
	return docs, err
}

// ListEnPapelera returns the documents of every trashed operation.
func (r *documentoRepo) ListEnPapelera(ctx context.Context) ([]model.Documento, error) {
	var docs []model.Documento
	err := r.db.WithContext(ctx).
		Joins("JOIN operaciones o ON o.id = documentos.operacion_id").
		Where("o.deleted_at IS NOT NULL").
		Find(&docs).Error
	return docs, err
}

func (r *documentoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Documento, error) {
	var d model.Documento
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	return &d, err
}

func (r *documentoRepo) FindSlot(ctx context.Context, operacionID uuid.UUID, tipo model.TipoDocumento) (*model.Documento, error) {
	var d model.Documento
	err := r.db.WithContext(ctx).Where("operacion_id = ? AND tipo = ?", operacionID, tipo).First(&d).Error
	return &d, err
}

func (r *documentoRepo) Create(ctx context.Context, d *model.Documento) error {
	return r.db.WithContext(ctx).Create(d).Error
}

// Reemplazar drops whatever row holds the slot of d and inserts d, in one
// transaction.
func (r *documentoRepo) Reemplazar(ctx context.Context, d *model.Documento) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("operacion_id = ? AND tipo = ?", d.OperacionID, d.Tipo).
			Delete(&model.Documento{}).Error; err != nil {
			return err
		}
		return tx.Create(d).Error
	})
}

func (r *documentoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Documento{}, "id = ?", id).Error
}
