package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// Auth requests carry no validator tags: missing fields are reported one at a
// time with their own message, in the order email, password, length.
type LoginRequest struct {
	Email    string `json:"email"    form:"email"`
	Password string `json:"password" form:"password"`
}

type SignupRequest struct {
	Email    string `json:"email"    form:"email"`
	Password string `json:"password" form:"password"`
	Nombre   string `json:"name"     form:"name"`
}

type IdiomaRequest struct {
	Idioma string `json:"idioma" validate:"required,oneof=es en ES EN"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// AuthResponse is the envelope of every /api/auth endpoint.
type AuthResponse struct {
	Success  bool   `json:"success"`
	Redirect string `json:"redirect,omitempty"`
	Error    string `json:"error,omitempty"`
}

type SesionResponse struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Nombre string `json:"nombre"`
	Rol    string `json:"rol"`
}

// LoginResult is what the handler needs to open a session.
type LoginResult struct {
	Token     string
	ExpiresIn int // seconds
	Usuario   SesionResponse
}

type IdiomaResponse struct {
	Idioma   string `json:"idioma"`
	Guardado bool   `json:"guardado"`
}
