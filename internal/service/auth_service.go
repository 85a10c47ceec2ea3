package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"embarques/internal/config"
	"embarques/internal/dto"
	"embarques/internal/model"
	"embarques/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	RedirectInicio     = "/inicio"
	RedirectLogin      = "/auth/login"
	RedirectRegistrado = "/auth/login?registered=true"

	largoMinimoClave = 6
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResult, error)
	Registrar(ctx context.Context, req dto.SignupRequest) error
	Sesion(ctx context.Context, userID uuid.UUID) (*dto.SesionResponse, error)
}

type authService struct {
	repo repository.UsuarioRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.UsuarioRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

// configurada reports whether both the signing secret and the user store
// are available.
func (s *authService) configurada() bool {
	return s.repo != nil && s.cfg.AuthConfigured() && s.cfg.DataConfigured()
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, ErrCorreoRequerido
	}
	if req.Password == "" {
		return nil, ErrClaveRequerida
	}
	if !s.configurada() {
		return nil, ErrAuthNoConfigurada
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCredenciales
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrCredenciales
	}

	ttl := time.Duration(s.cfg.JWTExpirationHours) * time.Hour
	token, err := s.generateToken(user, ttl)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResult{
		Token:     token,
		ExpiresIn: int(ttl.Seconds()),
		Usuario:   mapSesion(user),
	}, nil
}

// Registrar creates a regular user. The checks run in the order the login
// form reports them: email, password, password length.
func (s *authService) Registrar(ctx context.Context, req dto.SignupRequest) error {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return ErrCorreoRequerido
	}
	if req.Password == "" {
		return ErrClaveRequerida
	}
	if len(req.Password) < largoMinimoClave {
		return ErrClaveCorta
	}
	if !s.configurada() {
		return ErrAuthNoConfigurada
	}

	existe, err := s.repo.ExisteEmail(ctx, email)
	if err != nil {
		return err
	}
	if existe {
		return ErrCorreoRegistrado
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return err
	}
	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		nombre, _, _ = strings.Cut(email, "@")
	}
	return s.repo.Create(ctx, &model.Usuario{
		Email:        email,
		Nombre:       nombre,
		PasswordHash: string(hash),
		Rol:          model.RolUsuario,
		Activo:       true,
	})
}

func (s *authService) Sesion(ctx context.Context, userID uuid.UUID) (*dto.SesionResponse, error) {
	if !s.configurada() {
		return nil, ErrAuthNoConfigurada
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCredenciales
		}
		return nil, err
	}
	if !user.Activo {
		return nil, ErrCredenciales
	}
	r := mapSesion(user)
	return &r, nil
}

func mapSesion(u *model.Usuario) dto.SesionResponse {
	return dto.SesionResponse{ID: u.ID.String(), Email: u.Email, Nombre: u.Nombre, Rol: u.Rol}
}

func (s *authService) generateToken(user *model.Usuario, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"rol":     user.Rol,
		"exp":     time.Now().Add(duration).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
