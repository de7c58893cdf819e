package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/jobboard-api/internal/application/ports"
	"github.com/jhoicas/jobboard-api/pkg/config"
)

// New elige el backend según RESUME_DISK.
func New(ctx context.Context, cfg config.StorageConfig) (ports.ResumeStorage, error) {
	switch cfg.Disk {
	case "local":
		return NewLocalStorage(cfg.LocalRoot)
	case "s3":
		return NewS3Storage(ctx, cfg.S3)
	}
	return nil, fmt.Errorf("storage: disco desconocido %q", cfg.Disk)
}
