// Package storage guarda los archivos crudos de las importaciones de conteo.
// Usa afero, así las pruebas corren sobre un filesystem en memoria.
package storage

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/Chirlanio/inmystock/internal/application/counting"
)

var _ counting.FileStore = (*FileStore)(nil)

// FileStore guarda archivos bajo <base>/<company_id>/<timestamp>_<uuid>_<nombre>.
// El nombre original se sanea a su base para que una ruta maliciosa no escape
// del directorio de la empresa.
type FileStore struct {
	fs   afero.Fs
	base string
}

// NewFileStore construye el almacén sobre el filesystem dado.
func NewFileStore(fs afero.Fs, base string) *FileStore {
	return &FileStore{fs: fs, base: base}
}

// Save escribe el contenido y devuelve la ruta opaca donde quedó.
func (s *FileStore) Save(ctx context.Context, companyID, fileName string, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dir := filepath.Join(s.base, companyID)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("crear directorio de importaciones: %w", err)
	}
	name := fmt.Sprintf("%s_%s_%s",
		time.Now().Format("20060102T150405"),
		uuid.New().String()[:8],
		path.Base(filepath.ToSlash(fileName)),
	)
	full := filepath.Join(dir, name)
	if err := afero.WriteFile(s.fs, full, content, 0o644); err != nil {
		return "", fmt.Errorf("escribir archivo de importación: %w", err)
	}
	return full, nil
}
