package domain

import (
	"errors"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas). La capa HTTP los traduce a códigos de estado.
var (
	ErrValidation      = errors.New("entrada inválida")
	ErrUnauthenticated = errors.New("no autenticado")
	ErrForbidden       = errors.New("acceso denegado")
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrConflict        = errors.New("conflicto con el estado actual")
	ErrStorage         = errors.New("fallo de almacenamiento")

	// ErrEmailAlreadyExists lo devuelven los repositorios ante un email duplicado.
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	// ErrInvalidCredentials es deliberadamente opaco: no distingue email desconocido de password incorrecto.
	ErrInvalidCredentials = errors.New("credenciales inválidas")
)

// ValidationError lleva el detalle campo → mensaje. errors.Is(err, ErrValidation) es true.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

// NewValidationError construye un error de validación con su mapa de campos.
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Message: "los datos enviados no son válidos", Fields: fields}
}

// FieldError atajo para un solo campo.
func FieldError(field, msg string) *ValidationError {
	return NewValidationError(map[string]string{field: msg})
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

// Is permite errors.Is(err, domain.ErrValidation).
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
