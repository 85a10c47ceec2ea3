package repository

import (
	"testing"

	"embarques/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestDesde_SigueElCicloDeVida(t *testing.T) {
	assert.Equal(t, "deleted_at IS NULL", desde(model.EnPapelera))
	assert.Equal(t, "deleted_at IS NOT NULL", desde(model.Activa))
	assert.Equal(t, "deleted_at IS NOT NULL", desde(model.Purgada), "solo se purga desde la papelera")
	assert.Equal(t, "FALSE", desde("DESCONOCIDO"))
}
