package ports

import "context"

// ScanResult veredicto del antivirus.
type ScanResult struct {
	Infected bool
	Detail   string // salida del escáner, solo para logs
}

// VirusScanner capacidad inyectada de escaneo de archivos subidos.
// Un error indica fallo de infraestructura (escáner caído), no un archivo infectado.
type VirusScanner interface {
	Scan(ctx context.Context, content []byte) (ScanResult, error)
	// Enabled false cuando no hay escáner configurado (todo pasa).
	Enabled() bool
}
