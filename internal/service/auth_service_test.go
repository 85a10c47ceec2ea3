package service

import (
	"context"
	"testing"
	"time"

	"embarques/internal/config"
	"embarques/internal/dto"
	"embarques/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret-key-for-unit-tests",
		JWTExpirationHours: 12,
		DatabaseURL:        "postgres://test",
	}
}

func usuarioConClave(t *testing.T, repo *stubUsuarios, email, clave string) *model.Usuario {
	hash, err := bcrypt.GenerateFromPassword([]byte(clave), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.Usuario{Email: email, Nombre: "Ana", PasswordHash: string(hash), Rol: model.RolEjecutivo, Activo: true}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestAuth_LoginExitoso(t *testing.T) {
	repo := newStubUsuarios()
	u := usuarioConClave(t, repo, "ana@asli.cl", "secreta1")
	cfg := testConfig()
	s := NewAuthService(repo, cfg)

	r, err := s.Login(context.Background(), dto.LoginRequest{Email: " ANA@asli.cl ", Password: "secreta1"})
	require.NoError(t, err)
	assert.Equal(t, 12*3600, r.ExpiresIn)
	assert.Equal(t, u.ID.String(), r.Usuario.ID)

	tok, err := jwt.Parse(r.Token, func(*jwt.Token) (any, error) { return []byte(cfg.JWTSecret), nil })
	require.NoError(t, err)
	claims := tok.Claims.(jwt.MapClaims)
	assert.Equal(t, u.ID.String(), claims["user_id"])
	assert.Equal(t, "ana@asli.cl", claims["email"])
	assert.Equal(t, model.RolEjecutivo, claims["rol"])
}

func TestAuth_LoginErrores(t *testing.T) {
	repo := newStubUsuarios()
	usuarioConClave(t, repo, "ana@asli.cl", "secreta1")
	s := NewAuthService(repo, testConfig())
	ctx := context.Background()

	tests := []struct {
		nombre string
		req    dto.LoginRequest
		err    error
	}{
		{"sin correo", dto.LoginRequest{Password: "x"}, ErrCorreoRequerido},
		{"sin correo ni clave", dto.LoginRequest{}, ErrCorreoRequerido},
		{"sin clave", dto.LoginRequest{Email: "ana@asli.cl"}, ErrClaveRequerida},
		{"clave incorrecta", dto.LoginRequest{Email: "ana@asli.cl", Password: "otra"}, ErrCredenciales},
		{"usuario inexistente", dto.LoginRequest{Email: "x@asli.cl", Password: "secreta1"}, ErrCredenciales},
	}
	for _, tt := range tests {
		t.Run(tt.nombre, func(t *testing.T) {
			_, err := s.Login(ctx, tt.req)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestAuth_SinConfiguracion(t *testing.T) {
	cfg := testConfig()
	cfg.JWTSecret = ""
	s := NewAuthService(newStubUsuarios(), cfg)

	_, err := s.Login(context.Background(), dto.LoginRequest{Email: "a@b.cl", Password: "x"})
	assert.ErrorIs(t, err, ErrAuthNoConfigurada)

	// Los campos faltantes se informan antes que la configuración.
	_, err = s.Login(context.Background(), dto.LoginRequest{})
	assert.ErrorIs(t, err, ErrCorreoRequerido)
}

func TestAuth_Registrar(t *testing.T) {
	repo := newStubUsuarios()
	s := NewAuthService(repo, testConfig())
	ctx := context.Background()

	assert.ErrorIs(t, s.Registrar(ctx, dto.SignupRequest{Password: "secreta1"}), ErrCorreoRequerido)
	assert.ErrorIs(t, s.Registrar(ctx, dto.SignupRequest{Email: "b@asli.cl"}), ErrClaveRequerida)
	assert.ErrorIs(t, s.Registrar(ctx, dto.SignupRequest{Email: "b@asli.cl", Password: "12345"}), ErrClaveCorta)

	require.NoError(t, s.Registrar(ctx, dto.SignupRequest{Email: "B@asli.cl", Password: "123456"}))
	u := repo.users["b@asli.cl"]
	require.NotNil(t, u)
	assert.Equal(t, "b", u.Nombre)
	assert.Equal(t, model.RolUsuario, u.Rol)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("123456")))

	assert.ErrorIs(t, s.Registrar(ctx, dto.SignupRequest{Email: "b@asli.cl", Password: "123456"}), ErrCorreoRegistrado)
}

func TestAuth_Sesion(t *testing.T) {
	repo := newStubUsuarios()
	u := usuarioConClave(t, repo, "ana@asli.cl", "secreta1")
	s := NewAuthService(repo, testConfig())
	ctx := context.Background()

	r, err := s.Sesion(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@asli.cl", r.Email)

	_, err = s.Sesion(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrCredenciales)

	u.Activo = false
	_, err = s.Sesion(ctx, u.ID)
	assert.ErrorIs(t, err, ErrCredenciales)
}

func TestDashboard_Resumen(t *testing.T) {
	hoy := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	prox := activaOp(1)
	prox.ETD = ptr("2024-05-20")
	prox.EstadoOperacion = ptr("CONFIRMADO")
	prox.Naviera = ptr("MSC")
	lejos := activaOp(2)
	lejos.ETD = ptr("2024-08-01")
	lejos.EstadoOperacion = ptr("CONFIRMADO")
	ops := newStubOps(prox, lejos, enPapelera(3))

	s := NewDashboardService(ops).(*dashboardService)
	s.now = func() time.Time { return hoy }

	r, err := s.Resumen(context.Background(), es)
	require.NoError(t, err)
	assert.Equal(t, int64(2), r.TotalActivas)
	assert.Equal(t, int64(1), r.EnPapelera)
	require.Len(t, r.PorEstado, 1)
	assert.Equal(t, int64(2), r.PorEstado[0].Total)
	require.Len(t, r.ProximosZarpes, 1)
	assert.Equal(t, "20/05/2024", r.ProximosZarpes[0].ETD)
	assert.Len(t, r.Recientes, 2)
}
