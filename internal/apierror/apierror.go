// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"context"
	"errors"
	"net"
	"syscall"

	"github.com/jackc/pgx/v5/pgconn"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(detail string, fields map[string]string) *ValidationError {
	return &ValidationError{Detail: detail, Fields: fields}
}

// Backend returns the database's own message when err is a rejection from
// PostgreSQL (constraint, type or permission error).
func Backend(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Detail != "" {
			return pgErr.Message + ": " + pgErr.Detail, true
		}
		return pgErr.Message, true
	}
	return "", false
}

// Conflicto reports a unique-constraint violation.
func Conflicto(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Conexion reports transport-level failures: timeouts, refused or reset
// connections and DNS errors.
func Conexion(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var connErr *pgconn.ConnectError
	return errors.As(err, &connErr)
}

// ConfirmationError asks the client to repeat the request with confirmation.
type ConfirmationError struct {
	Detail    string `json:"detail"`
	Confirmar bool   `json:"confirmar"`
}

func NewConfirmation(prompt string) *ConfirmationError {
	return &ConfirmationError{Detail: prompt, Confirmar: true}
}
