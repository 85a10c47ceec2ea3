package repository

import (
	"context"

	"embarques/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClienteRepository interface {
	List(ctx context.Context) ([]model.Cliente, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	Create(ctx context.Context, c *model.Cliente) error
	ActualizarCampo(ctx context.Context, id uuid.UUID, columna string, valor any) error
	Delete(ctx context.Context, ids []uuid.UUID) error
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) List(ctx context.Context) ([]model.Cliente, error) {
	var clientes []model.Cliente
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&clientes).Error
	return clientes, err
}

func (r *clienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *clienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clienteRepo) ActualizarCampo(ctx context.Context, id uuid.UUID, columna string, valor any) error {
	res := r.db.WithContext(ctx).Model(&model.Cliente{}).Where("id = ?", id).Update(columna, valor)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *clienteRepo) Delete(ctx context.Context, ids []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return exacto(tx.Where("id IN ?", ids).Delete(&model.Cliente{}), len(ids))
	})
}
