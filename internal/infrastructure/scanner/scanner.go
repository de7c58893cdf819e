// Package scanner implementa ports.VirusScanner con un antivirus de línea de comandos.
package scanner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/jhoicas/jobboard-api/internal/application/ports"
	"github.com/jhoicas/jobboard-api/pkg/logger"
)

var (
	_ ports.VirusScanner = (*CommandScanner)(nil)
	_ ports.VirusScanner = Disabled{}
)

// CommandScanner ejecuta el comando configurado con la ruta de un archivo temporal como último argumento.
// Convención clamscan: salida 0 limpio, 1 infectado, cualquier otra cosa es error del escáner.
type CommandScanner struct {
	name string
	args []string
	log  *logger.Logger
}

// New devuelve Disabled si command está vacío.
func New(command string, log *logger.Logger) ports.VirusScanner {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		log.Warn().Msg("escaneo antivirus deshabilitado: VIRUS_SCAN_COMMAND vacío")
		return Disabled{}
	}
	return &CommandScanner{name: fields[0], args: fields[1:], log: log}
}

func (s *CommandScanner) Enabled() bool { return true }

func (s *CommandScanner) Scan(ctx context.Context, content []byte) (ports.ScanResult, error) {
	tmp, err := os.CreateTemp("", "upload-*")
	if err != nil {
		return ports.ScanResult{}, fmt.Errorf("scanner: archivo temporal: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return ports.ScanResult{}, fmt.Errorf("scanner: escribir temporal: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return ports.ScanResult{}, fmt.Errorf("scanner: cerrar temporal: %w", err)
	}

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, s.name, append(append([]string{}, s.args...), tmp.Name())...)
	cmd.Stdout = &out
	cmd.Stderr = &out
	err = cmd.Run()
	detail := strings.TrimSpace(out.String())
	if err == nil {
		return ports.ScanResult{Detail: detail}, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		s.log.Warn().Str("detail", detail).Msg("archivo infectado")
		return ports.ScanResult{Infected: true, Detail: detail}, nil
	}
	return ports.ScanResult{}, fmt.Errorf("scanner: %s: %w", s.name, err)
}

// Disabled no escanea: todo archivo pasa.
type Disabled struct{}

func (Disabled) Enabled() bool { return false }

func (Disabled) Scan(context.Context, []byte) (ports.ScanResult, error) {
	return ports.ScanResult{}, nil
}
