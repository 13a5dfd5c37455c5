// Package storage guarda las imágenes de productos en disco local; Fiber sirve el
// directorio como estático bajo el prefijo público.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain"
)

// LocalStore escribe archivos como <dir>/<uuid>.<ext> y devuelve <prefix>/<uuid>.<ext>.
type LocalStore struct {
	dir      string
	prefix   string
	maxBytes int64
}

// NewLocalStore construye el store. maxMB <= 0 desactiva el límite de tamaño.
func NewLocalStore(dir, publicPrefix string, maxMB int) *LocalStore {
	prefix := "/" + strings.Trim(publicPrefix, "/")
	if prefix == "/" {
		prefix = "/uploads"
	}
	return &LocalStore{dir: dir, prefix: prefix, maxBytes: int64(maxMB) << 20}
}

// Dir directorio en disco (para registrar el estático).
func (s *LocalStore) Dir() string { return s.dir }

// Prefix prefijo público de las URLs devueltas.
func (s *LocalStore) Prefix() string { return s.prefix }

// Store copia r a un archivo nuevo con nombre aleatorio y la extensión de filename.
// Si supera el tamaño máximo borra el archivo parcial y devuelve domain.ErrInvalidInput.
func (s *LocalStore) Store(ctx context.Context, filename string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("storage: crear directorio: %w", err)
	}
	name := uuid.NewString() + extension(filename)
	full := filepath.Join(s.dir, name)

	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("storage: crear archivo: %w", err)
	}
	src := r
	if s.maxBytes > 0 {
		src = io.LimitReader(r, s.maxBytes+1)
	}
	n, err := io.Copy(f, src)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(full)
		return "", fmt.Errorf("storage: escribir archivo: %w", err)
	}
	if s.maxBytes > 0 && n > s.maxBytes {
		_ = os.Remove(full)
		return "", fmt.Errorf("%w: la imagen supera %d MB", domain.ErrInvalidInput, s.maxBytes>>20)
	}
	return path.Join(s.prefix, name), nil
}

// Remove borra un archivo guardado a partir de su ruta pública. Rutas ajenas al prefijo se ignoran.
func (s *LocalStore) Remove(_ context.Context, publicPath string) error {
	name := strings.TrimPrefix(publicPath, s.prefix+"/")
	if name == publicPath || name == "" || strings.ContainsAny(name, `/\`) {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: borrar archivo: %w", err)
	}
	return nil
}

// extension devuelve ".ext" en minúsculas, o "" si el nombre no trae una extensión razonable.
func extension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if len(ext) < 2 || len(ext) > 10 {
		return ""
	}
	for _, c := range ext[1:] {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return ""
		}
	}
	return ext
}
