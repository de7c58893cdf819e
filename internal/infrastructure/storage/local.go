// Package storage implementa ports.ResumeStorage sobre disco local (afero) y objetos S3 (minio-go).
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/jhoicas/jobboard-api/internal/application/ports"
	"github.com/jhoicas/jobboard-api/internal/domain"
)

var _ ports.ResumeStorage = (*LocalStorage)(nil)

// LocalStorage guarda archivos bajo una raíz. Las rutas son relativas a esa raíz, con "/".
type LocalStorage struct {
	fs afero.Fs
}

// NewLocalStorage disco real confinado a root (BasePathFs impide salir de la raíz).
func NewLocalStorage(root string) (*LocalStorage, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("crear raíz de almacenamiento: %w", err)
	}
	return NewLocalStorageFs(afero.NewBasePathFs(afero.NewOsFs(), root)), nil
}

// NewLocalStorageFs sobre cualquier afero.Fs (en pruebas, afero.NewMemMapFs()).
func NewLocalStorageFs(fs afero.Fs) *LocalStorage {
	return &LocalStorage{fs: fs}
}

func (s *LocalStorage) Backend() string { return "local" }

func (s *LocalStorage) Store(ctx context.Context, dir, filename string, r io.Reader, _ int64, _ string) (string, error) {
	rel, err := cleanPath(path.Join(dir, filename))
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}
	if err := s.fs.MkdirAll(filepath.FromSlash(path.Dir(rel)), 0o750); err != nil {
		return "", fmt.Errorf("%w: crear directorio: %v", domain.ErrStorage, err)
	}
	f, err := s.fs.OpenFile(filepath.FromSlash(rel), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o640)
	if err != nil {
		return "", fmt.Errorf("%w: abrir archivo: %v", domain.ErrStorage, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(filepath.FromSlash(rel))
		return "", fmt.Errorf("%w: escribir archivo: %v", domain.ErrStorage, err)
	}
	if err := f.Close(); err != nil {
		_ = s.fs.Remove(filepath.FromSlash(rel))
		return "", fmt.Errorf("%w: cerrar archivo: %v", domain.ErrStorage, err)
	}
	return rel, nil
}

func (s *LocalStorage) Retrieve(_ context.Context, p string) (*ports.StoredFile, error) {
	rel, err := cleanPath(p)
	if err != nil {
		return nil, err
	}
	f, err := s.fs.Open(filepath.FromSlash(rel))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: abrir archivo: %v", domain.ErrStorage, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: stat: %v", domain.ErrStorage, err)
	}
	return &ports.StoredFile{
		Name:        path.Base(rel),
		ContentType: contentTypeByExt(rel),
		Size:        info.Size(),
		Body:        f,
	}, nil
}

func (s *LocalStorage) Exists(_ context.Context, p string) (bool, error) {
	rel, err := cleanPath(p)
	if err != nil {
		return false, err
	}
	ok, err := afero.Exists(s.fs, filepath.FromSlash(rel))
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}
	return ok, nil
}

func (s *LocalStorage) Delete(_ context.Context, p string) error {
	rel, err := cleanPath(p)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(filepath.FromSlash(rel)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: borrar archivo: %v", domain.ErrStorage, err)
	}
	return nil
}

// cleanPath rechaza rutas absolutas o que escapan de la raíz.
func cleanPath(p string) (string, error) {
	c := path.Clean(strings.ReplaceAll(p, `\`, "/"))
	if c == "." || strings.HasPrefix(c, "/") || c == ".." || strings.HasPrefix(c, "../") {
		return "", fmt.Errorf("%w: ruta inválida %q", domain.ErrStorage, p)
	}
	return c, nil
}

func contentTypeByExt(p string) string {
	switch strings.ToLower(path.Ext(p)) {
	case ".pdf":
		return "application/pdf"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	}
	return "application/octet-stream"
}
