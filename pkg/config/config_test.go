package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/jobboard-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Storage.Disk)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, 6, cfg.Auth.PasswordMin)
	assert.Equal(t, 10, cfg.Rate.AuthPerMinute)
	assert.Equal(t, 20, cfg.Rate.ApplyPerMinute)
	assert.Equal(t, 30, cfg.Rate.StatusPerMinute)
	assert.Empty(t, cfg.Scan.Command, "sin comando el escaneo queda deshabilitado")
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_EnvSobrescribe(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("RESUME_DISK", "s3")
	t.Setenv("S3_BUCKET", "resumes")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("VIRUS_SCAN_COMMAND", "clamscan --no-summary")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "s3", cfg.Storage.Disk)
	assert.Equal(t, "resumes", cfg.Storage.S3.Bucket)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "clamscan --no-summary", cfg.Scan.Command)
}

func TestLoad_SinSecretFalla(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_DiscoInvalido(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("RESUME_DISK", "ftp")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSN(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss", DBName: "jobboard", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss@db:5432/jobboard?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
