package entity

import "time"

// JobType modalidad de contratación.
type JobType string

const (
	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
)

// Valid informa si t es una modalidad conocida.
func (t JobType) Valid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship:
		return true
	}
	return false
}

// JobStatus estado de publicación de una oferta.
type JobStatus string

const (
	JobStatusOpen   JobStatus = "open"
	JobStatusClosed JobStatus = "closed"
	JobStatusDraft  JobStatus = "draft"
)

// Job oferta de empleo publicada por un empleador. Es dueña de sus Applications (borrado en cascada).
type Job struct {
	ID               string
	Title            string
	Company          string
	Description      string
	ShortDescription *string
	EmployerID       string
	Tags             []string
	IsRemote         bool
	JobType          JobType
	Location         *string
	Salary           *string
	Requirements     []string
	Benefits         []string
	PostedAt         *time.Time // nil o futuro = aún no visible al público
	Status           JobStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsPublicAt informa si la oferta es visible públicamente en el instante now.
func (j *Job) IsPublicAt(now time.Time) bool {
	if j.Status != JobStatusOpen {
		return false
	}
	return j.PostedAt == nil || !j.PostedAt.After(now)
}

// EmployerSummary resumen mínimo del empleador para el detalle de una oferta.
type EmployerSummary struct {
	ID        string
	Name      string
	AvatarURL *string
}

// JobDetail oferta más el conteo de postulaciones y el empleador.
type JobDetail struct {
	Job              *Job
	ApplicationCount int
	Employer         *EmployerSummary
}

// JobFilter filtros del listado público.
type JobFilter struct {
	Query    string // subcadena en título o empresa
	JobType  JobType
	Location string // subcadena
	IsRemote *bool
}
