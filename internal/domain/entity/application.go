package entity

import "time"

// ApplicationStatus estado de una postulación.
type ApplicationStatus string

const (
	ApplicationStatusApplied     ApplicationStatus = "applied"
	ApplicationStatusShortlisted ApplicationStatus = "shortlisted"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
	ApplicationStatusHired       ApplicationStatus = "hired"
)

// Valid informa si s es un estado conocido.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusApplied, ApplicationStatusShortlisted, ApplicationStatusRejected, ApplicationStatusHired:
		return true
	}
	return false
}

// CanTransitionTo aplica el grafo applied → {shortlisted, rejected} → {hired, rejected}.
// Repetir el estado actual se acepta (PATCH idempotente).
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case ApplicationStatusApplied:
		return next == ApplicationStatusShortlisted || next == ApplicationStatusRejected
	case ApplicationStatusShortlisted:
		return next == ApplicationStatusHired || next == ApplicationStatusRejected
	}
	return false
}

// Application postulación de un usuario a una oferta. Única por (JobID, ApplicantID).
type Application struct {
	ID             string
	JobID          string
	ApplicantID    string
	ApplicantName  string
	ApplicantEmail string
	ResumePath     *string // relativa al disco de almacenamiento
	CoverLetter    string
	Status         ApplicationStatus
	AppliedAt      time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ApplicationScope alcance del listado de postulaciones según el rol.
type ApplicationScope struct {
	ApplicantID string // solo las del postulante
	EmployerID  string // solo las de ofertas del empleador
	// ambos vacíos = todas (admin)
}
