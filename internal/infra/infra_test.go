package infra

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"embarques/internal/projection"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorage_SubirYBorrar(t *testing.T) {
	root := t.TempDir()
	s, err := NewFileStorage(root, "http://localhost:8000/archivos/")
	require.NoError(t, err)
	ctx := context.Background()

	ruta := "documentos/abc/A00001_BOOKING_1700000000000.pdf"
	require.NoError(t, s.Upload(ctx, ruta, []byte("%PDF-1.4")))

	data, err := os.ReadFile(filepath.Join(root, "documentos", "abc", "A00001_BOOKING_1700000000000.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))
	assert.Equal(t, "http://localhost:8000/archivos/"+ruta, s.PublicURL(ruta))

	require.NoError(t, s.Remove(ctx, ruta))
	assert.NoError(t, s.Remove(ctx, ruta), "borrar un archivo inexistente no es error")
}

func TestFileStorage_RutaFueraDeRaiz(t *testing.T) {
	s, err := NewFileStorage(t.TempDir(), "http://x")
	require.NoError(t, err)
	err = s.Upload(context.Background(), "../../etc/passwd", []byte("x"))
	assert.ErrorIs(t, err, ErrRutaInvalida)
}

func TestGenerarXLSX(t *testing.T) {
	data, err := GenerarXLSX([]string{"ref_asli", "pallets"}, [][]any{
		{"A00001", 20},
		{"A00002", nil},
	})
	require.NoError(t, err)

	rows, err := LeerXLSX(data)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ref_asli", "pallets"}, rows[0])
	assert.Equal(t, []string{"A00001", "20"}, rows[1])
	assert.Equal(t, "A00002", rows[2][0])
}

func TestGenerarHojaReservaPDF(t *testing.T) {
	tt := 9
	data, err := GenerarHojaReservaPDF(projection.Fila{
		RefASLI:       "A00042",
		Cliente:       "Frutícola Andes",
		TT:            &tt,
		Observaciones: "Carga frágil",
	}, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestBreaker_AbreYRecupera(t *testing.T) {
	b := NewBreaker(BreakerConfig{FailureThreshold: 2, SuccessThreshold: 1, OpenTimeout: time.Minute})
	ahora := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return ahora }
	caida := errors.New("redis caído")

	assert.ErrorIs(t, b.Execute(func() error { return caida }), caida)
	assert.Equal(t, BreakerClosed, b.State())
	assert.ErrorIs(t, b.Execute(func() error { return caida }), caida)
	assert.Equal(t, BreakerOpen, b.State())

	llamado := false
	err := b.Execute(func() error { llamado = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, llamado)

	ahora = ahora.Add(time.Minute)
	assert.Equal(t, BreakerHalfOpen, b.State())
	require.NoError(t, b.Execute(func() error { return nil }))
	assert.Equal(t, BreakerClosed, b.State())
}

func TestBreaker_SondaFallidaVuelveAAbrir(t *testing.T) {
	b := NewBreaker(BreakerConfig{FailureThreshold: 1, OpenTimeout: time.Second})
	ahora := time.Now()
	b.now = func() time.Time { return ahora }

	_ = b.Execute(func() error { return errors.New("x") })
	ahora = ahora.Add(time.Second)
	require.Equal(t, BreakerHalfOpen, b.State())

	_ = b.Execute(func() error { return errors.New("x") })
	assert.Equal(t, BreakerOpen, b.State())
	assert.Equal(t, "open", b.State().String())
}
