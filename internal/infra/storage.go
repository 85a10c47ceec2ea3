package infra

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var ErrRutaInvalida = errors.New("storage: ruta fuera del directorio base")

// FileStorage keeps document blobs on the local filesystem under root and
// exposes them below publicURL (the router serves root statically).
type FileStorage struct {
	root      string
	publicURL string
}

func NewFileStorage(root, publicURL string) (*FileStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create root: %w", err)
	}
	return &FileStorage{root: root, publicURL: strings.TrimRight(publicURL, "/")}, nil
}

// Root is the directory served under the public URL.
func (s *FileStorage) Root() string { return s.root }

func (s *FileStorage) Upload(_ context.Context, ruta string, data []byte) error {
	full, err := s.resolve(ruta)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("storage: create dir: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("storage: write: %w", err)
	}
	return nil
}

func (s *FileStorage) PublicURL(ruta string) string {
	return s.publicURL + "/" + filepath.ToSlash(ruta)
}

// Remove deletes the blobs. Missing files are not an error.
func (s *FileStorage) Remove(_ context.Context, rutas ...string) error {
	var errs []error
	for _, r := range rutas {
		full, err := s.resolve(r)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *FileStorage) resolve(ruta string) (string, error) {
	full := filepath.Join(s.root, filepath.FromSlash(ruta))
	rel, err := filepath.Rel(s.root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrRutaInvalida
	}
	return full, nil
}
