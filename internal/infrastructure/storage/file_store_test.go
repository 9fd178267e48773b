package storage_test

import (
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chirlanio/inmystock/internal/infrastructure/storage"
)

func TestSave_EscribeBajoLaEmpresa(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := storage.NewFileStore(fs, "/data/imports")

	path, err := store.Save(context.Background(), "co-1", "conteo.txt", []byte("7701234\n"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(path, "/data/imports/co-1/"), "cada empresa tiene su directorio")
	assert.True(t, strings.HasSuffix(path, "_conteo.txt"), "el nombre original se conserva al final")

	content, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, "7701234\n", string(content))
}

func TestSave_NombresRepetidosNoChocan(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := storage.NewFileStore(fs, "/data/imports")
	ctx := context.Background()

	p1, err := store.Save(ctx, "co-1", "conteo.txt", []byte("a"))
	require.NoError(t, err)
	p2, err := store.Save(ctx, "co-1", "conteo.txt", []byte("b"))
	require.NoError(t, err)

	assert.NotEqual(t, p1, p2, "el sufijo aleatorio evita sobrescribir importaciones previas")
}

func TestSave_SaneaRutasMaliciosas(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := storage.NewFileStore(fs, "/data/imports")

	path, err := store.Save(context.Background(), "co-1", "../../etc/passwd", []byte("x"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(path, "/data/imports/co-1/"),
		"una ruta con .. no escapa del directorio de la empresa")
	assert.True(t, strings.HasSuffix(path, "_passwd"))
}

func TestSave_ContextoCancelado(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := storage.NewFileStore(fs, "/data/imports")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Save(ctx, "co-1", "conteo.txt", []byte("x"))
	assert.ErrorIs(t, err, context.Canceled)
}
