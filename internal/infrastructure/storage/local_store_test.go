package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-asociaciones/internal/domain"
)

func TestStore_EscribeYDevuelveRutaPublica(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "public", "uploads")
	s := NewLocalStore(dir, "/uploads", 5)

	p, err := s.Store(context.Background(), "Foto Arroz.JPG", strings.NewReader("contenido"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p, "/uploads/"))
	assert.True(t, strings.HasSuffix(p, ".jpg"))

	b, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(p, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, "contenido", string(b))

	p2, err := s.Store(context.Background(), "Foto Arroz.JPG", strings.NewReader("x"))
	require.NoError(t, err)
	assert.NotEqual(t, p, p2, "cada archivo recibe un nombre único")
}

func TestStore_ExcedeTamanoMaximo(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStore(dir, "uploads/", 1)

	_, err := s.Store(context.Background(), "grande.png", bytes.NewReader(make([]byte, (1<<20)+1)))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no deben quedar archivos parciales")
}

func TestRemove(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStore(dir, "/uploads", 0)
	p, err := s.Store(context.Background(), "a.png", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, s.Remove(context.Background(), p))
	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)

	assert.NoError(t, s.Remove(context.Background(), "/otro/../../etc/passwd"))
	assert.NoError(t, s.Remove(context.Background(), p), "borrar dos veces no es error")
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".png", extension("foto.PNG"))
	assert.Equal(t, "", extension("sin_extension"))
	assert.Equal(t, "", extension("raro.p?g"))
	assert.Equal(t, ".webp", extension("../../x.webp"))
}
