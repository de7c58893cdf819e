package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TagList acepta en JSON tanto ["go","remote"] como "go, remote".
// En ambos casos recorta espacios y descarta entradas vacías.
type TagList []string

// UnmarshalJSON implementa json.Unmarshaler.
func (t *TagList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = NormalizeTags(list)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("tags: se espera una lista o un texto separado por comas")
	}
	*t = NormalizeTags(strings.Split(s, ","))
	return nil
}

// NormalizeTags recorta y descarta vacíos; nunca devuelve nil.
func NormalizeTags(in []string) []string {
	out := make([]string, 0, len(in))
	for _, tag := range in {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// Nullable distingue en una actualización parcial un campo ausente (Set false) de un null explícito
// (Set true, Value nil).
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// NullOf atajo para construir un valor presente (nil = null explícito).
func NullOf[T any](v *T) Nullable[T] {
	return Nullable[T]{Set: true, Value: v}
}

// UnmarshalJSON solo se invoca si la clave viene en el JSON, incluso con null.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// CreateJobRequest entrada para crear una oferta.
type CreateJobRequest struct {
	Title            string     `json:"title" validate:"required,max=255"`
	Company          string     `json:"company" validate:"required,max=255"`
	Description      string     `json:"description" validate:"required"`
	ShortDescription *string    `json:"short_description" validate:"omitempty,max=255"`
	Tags             TagList    `json:"tags"`
	IsRemote         *bool      `json:"is_remote"`
	JobType          string     `json:"job_type" validate:"omitempty,oneof=full-time part-time contract internship"`
	Location         *string    `json:"location"`
	Salary           *string    `json:"salary"`
	Requirements     []string   `json:"requirements"`
	Benefits         []string   `json:"benefits"`
	PostedAt         *time.Time `json:"posted_at"`
	Status           string     `json:"status" validate:"omitempty,oneof=open closed draft"`
}

// UpdateJobRequest actualización parcial: solo cambian los campos enviados.
type UpdateJobRequest struct {
	Title            *string             `json:"title" validate:"omitempty,max=255"`
	Company          *string             `json:"company" validate:"omitempty,max=255"`
	Description      *string             `json:"description"`
	ShortDescription Nullable[string]    `json:"short_description"`
	Tags             *TagList            `json:"tags"`
	IsRemote         *bool               `json:"is_remote"`
	JobType          *string             `json:"job_type" validate:"omitempty,oneof=full-time part-time contract internship"`
	Location         Nullable[string]    `json:"location"`
	Salary           Nullable[string]    `json:"salary"`
	Requirements     *[]string           `json:"requirements"`
	Benefits         *[]string           `json:"benefits"`
	PostedAt         Nullable[time.Time] `json:"posted_at"`
	Status           *string             `json:"status" validate:"omitempty,oneof=open closed draft"`
}

// JobQuery filtros del listado público (query string).
type JobQuery struct {
	Q        string `query:"q"`
	JobType  string `query:"job_type"`
	Location string `query:"location"`
	IsRemote *bool  `query:"-"`
	PageRequest
}

// JobResponse salida de una oferta.
type JobResponse struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Company          string     `json:"company"`
	ShortDescription *string    `json:"short_description"`
	Description      string     `json:"description"`
	EmployerID       string     `json:"employer_id"`
	Tags             []string   `json:"tags"`
	IsRemote         bool       `json:"is_remote"`
	JobType          string     `json:"job_type"`
	Location         *string    `json:"location"`
	Salary           *string    `json:"salary"`
	Requirements     []string   `json:"requirements"`
	Benefits         []string   `json:"benefits"`
	PostedAt         *time.Time `json:"posted_at"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// JobCounts conteos agregados del detalle.
type JobCounts struct {
	Applications int `json:"applications"`
}

// EmployerSummaryResponse resumen mínimo del empleador.
type EmployerSummaryResponse struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Avatar *string `json:"avatar"`
}

// JobDetailResponse oferta + conteo de postulaciones + empleador.
type JobDetailResponse struct {
	JobResponse
	Counts   JobCounts                `json:"counts"`
	Employer *EmployerSummaryResponse `json:"employer"`
}

// JobListResponse lista paginada de ofertas.
type JobListResponse struct {
	Data []JobResponse `json:"data"`
	Meta PageMeta      `json:"meta"`
}
