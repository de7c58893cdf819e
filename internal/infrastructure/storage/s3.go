package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/jhoicas/jobboard-api/internal/application/ports"
	"github.com/jhoicas/jobboard-api/internal/domain"
	"github.com/jhoicas/jobboard-api/pkg/config"
)

var _ ports.ResumeStorage = (*S3Storage)(nil)

// S3Storage almacenamiento de objetos compatible con S3. Retrieve devuelve URL firmada.
type S3Storage struct {
	client *minio.Client
	bucket string
	ttl    time.Duration
}

// NewS3Storage conecta con el endpoint y verifica que el bucket exista.
func NewS3Storage(ctx context.Context, cfg config.S3Config) (*S3Storage, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3: S3_BUCKET es obligatorio")
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("s3: crear cliente: %w", err)
	}
	ok, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("s3: verificar bucket: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("s3: el bucket %q no existe", cfg.Bucket)
	}
	return &S3Storage{client: client, bucket: cfg.Bucket, ttl: ports.ResumeURLTTL}, nil
}

func (s *S3Storage) Backend() string { return "s3" }

func (s *S3Storage) Store(ctx context.Context, dir, filename string, r io.Reader, size int64, contentType string) (string, error) {
	key, err := cleanPath(path.Join(dir, filename))
	if err != nil {
		return "", err
	}
	_, err = s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("%w: put object: %v", domain.ErrStorage, err)
	}
	return key, nil
}

func (s *S3Storage) Retrieve(ctx context.Context, p string) (*ports.StoredFile, error) {
	key, err := cleanPath(p)
	if err != nil {
		return nil, err
	}
	info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: stat object: %v", domain.ErrStorage, err)
	}
	params := url.Values{}
	params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", path.Base(key)))
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, s.ttl, params)
	if err != nil {
		return nil, fmt.Errorf("%w: presign: %v", domain.ErrStorage, err)
	}
	return &ports.StoredFile{
		Name:        path.Base(key),
		ContentType: info.ContentType,
		Size:        info.Size,
		URL:         u.String(),
		ExpiresAt:   time.Now().Add(s.ttl),
	}, nil
}

func (s *S3Storage) Exists(ctx context.Context, p string) (bool, error) {
	key, err := cleanPath(p)
	if err != nil {
		return false, err
	}
	_, err = s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return false, nil
		}
		return false, fmt.Errorf("%w: stat object: %v", domain.ErrStorage, err)
	}
	return true, nil
}

// Delete RemoveObject no falla si la clave no existe.
func (s *S3Storage) Delete(ctx context.Context, p string) error {
	key, err := cleanPath(p)
	if err != nil {
		return err
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("%w: remove object: %v", domain.ErrStorage, err)
	}
	return nil
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}
