package ports

import (
	"context"
	"io"
	"time"
)

// ResumeURLTTL vigencia de las URLs firmadas de hojas de vida.
const ResumeURLTTL = 15 * time.Minute

// ResumeStorage abstrae el disco donde se guardan las hojas de vida (disco local o almacenamiento de objetos).
// Los casos de uso solo conocen este contrato; el backend concreto se elige por configuración al arrancar.
type ResumeStorage interface {
	// Store escribe el archivo bajo dir/filename y devuelve la ruta relativa al backend.
	// Los fallos de escritura envuelven domain.ErrStorage.
	Store(ctx context.Context, dir, filename string, r io.Reader, size int64, contentType string) (string, error)
	// Retrieve devuelve un stream (local) o una URL firmada con vigencia ResumeURLTTL (objetos).
	// domain.ErrNotFound si la ruta no existe.
	Retrieve(ctx context.Context, path string) (*StoredFile, error)
	Exists(ctx context.Context, path string) (bool, error)
	// Delete es idempotente.
	Delete(ctx context.Context, path string) error
	// Backend nombre del disco ("local", "s3") para logs.
	Backend() string
}

// StoredFile resultado de Retrieve: Body o URL, nunca ambos.
type StoredFile struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.ReadCloser

	URL       string
	ExpiresAt time.Time
}

// Signed informa si el backend respondió con URL firmada en lugar de stream.
func (f *StoredFile) Signed() bool {
	return f.URL != ""
}
