//go:build integration

package router

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"embarques/internal/config"
	"embarques/internal/dto"
	"embarques/internal/infra"
	"embarques/internal/model"
	"embarques/internal/projection"
	"embarques/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

type cliente struct {
	t   *testing.T
	srv *httptest.Server
	hc  *http.Client
}

func (c *cliente) do(method, path string, body any) *http.Response {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, c.srv.URL+path, &buf)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.hc.Do(req)
	require.NoError(c.t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

func setupTestEnv(t *testing.T) (*httptest.Server, *cliente) {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.Run(ctx, "postgres:16-alpine",
		tcPostgres.WithDatabase("embarques_test"),
		tcPostgres.WithUsername("embarques"),
		tcPostgres.WithPassword("embarques"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })
	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })
	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		MaxUploadMB:        1,
		DefaultLocale:      "es",
		Timezone:           "UTC",
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL, true)
	require.NoError(t, err)
	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)
	blobs, err := infra.NewFileStorage(t.TempDir(), "http://archivos.test")
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte("secreta1"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, repository.NewUsuarioRepository(db).Create(ctx, &model.Usuario{
		Email: "ana@asli.cl", Nombre: "Ana", PasswordHash: string(hash), Rol: model.RolEjecutivo, Activo: true,
	}))

	srv := httptest.NewServer(New(cfg, db, rdb, blobs))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	c := &cliente{t: t, srv: srv, hc: &http.Client{Jar: jar}}

	resp := c.do(http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: "ana@asli.cl", Password: "secreta1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	return srv, c
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_Health(t *testing.T) {
	srv, _ := setupTestEnv(t)
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	var body map[string]any
	decodeJSON(t, resp, &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "connected", body["db"])
	assert.Equal(t, "connected", body["redis"])
	assert.Equal(t, "closed", body["cache"])
}

func TestE2E_SinSesion(t *testing.T) {
	srv, _ := setupTestEnv(t)
	resp, err := http.Get(srv.URL + "/v1/registros")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Add a row, edit a cell, trash it, restore it and purge it.
func TestE2E_CicloDeVida(t *testing.T) {
	_, c := setupTestEnv(t)

	resp := c.do(http.MethodPost, "/v1/registros", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var fila projection.Fila
	decodeJSON(t, resp, &fila)
	assert.NotEmpty(t, fila.RefASLI)

	resp = c.do(http.MethodPatch, "/v1/registros/"+fila.ID.String(), dto.EditarCeldaRequest{Campo: "booking", Valor: "BK-1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ed dto.EdicionResponse
	decodeJSON(t, resp, &ed)
	require.NotNil(t, ed.Fila)
	assert.Equal(t, "BK-1", ed.Fila.Booking)

	resp = c.do(http.MethodGet, "/v1/registros?refresh=true", nil)
	var activos dto.RegistrosResponse
	decodeJSON(t, resp, &activos)
	require.Len(t, activos.Filas, 1)
	assert.Equal(t, "BK-1", activos.Filas[0].Booking)

	sel := dto.SeleccionRequest{IDs: []uuid.UUID{fila.ID}}
	resp = c.do(http.MethodPost, "/v1/registros/papelera", sel)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = c.do(http.MethodGet, "/v1/registros", nil)
	decodeJSON(t, resp, &activos)
	assert.Empty(t, activos.Filas)

	resp = c.do(http.MethodPost, "/v1/papelera/restaurar", sel)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	resp = c.do(http.MethodGet, "/v1/registros", nil)
	decodeJSON(t, resp, &activos)
	require.Len(t, activos.Filas, 1)

	// Purging an active row is rejected and nothing changes.
	resp = c.do(http.MethodPost, "/v1/papelera/eliminar", dto.EliminarRequest{IDs: sel.IDs, Confirmado: true})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = c.do(http.MethodPost, "/v1/registros/papelera", sel)
	resp.Body.Close()
	resp = c.do(http.MethodPost, "/v1/papelera/vaciar", dto.ConfirmacionRequest{})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
	resp = c.do(http.MethodPost, "/v1/papelera/vaciar", dto.ConfirmacionRequest{Confirmado: true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var lote dto.LoteResponse
	decodeJSON(t, resp, &lote)
	assert.Equal(t, int64(1), lote.Afectadas)
}

func TestE2E_Documentos(t *testing.T) {
	_, c := setupTestEnv(t)

	resp := c.do(http.MethodPost, "/v1/registros", nil)
	var fila projection.Fila
	decodeJSON(t, resp, &fila)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("archivo", "booking.pdf")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("%PDF-1.4\n%%EOF\n"))
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, c.srv.URL+"/v1/operaciones/"+fila.ID.String()+"/documentos/booking", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err = c.hc.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = c.do(http.MethodGet, "/v1/operaciones/"+fila.ID.String()+"/documentos", nil)
	var slots dto.DocumentosOperacionResponse
	decodeJSON(t, resp, &slots)
	assert.Equal(t, 1, slots.Subidos)
}

func TestE2E_Idioma(t *testing.T) {
	_, c := setupTestEnv(t)

	resp := c.do(http.MethodPut, "/v1/preferencias/idioma", dto.IdiomaRequest{Idioma: "en"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = c.do(http.MethodGet, "/v1/dashboard", nil)
	resp.Body.Close()
	assert.Equal(t, "en", resp.Header.Get("Content-Language"))
}
