package dto

import "time"

// SubmitApplicationRequest campos de texto del multipart de postulación.
type SubmitApplicationRequest struct {
	ApplicantID    string `form:"applicant_id" json:"applicant_id" validate:"required"`
	ApplicantName  string `form:"applicant_name" json:"applicant_name" validate:"required,max=255"`
	ApplicantEmail string `form:"applicant_email" json:"applicant_email" validate:"required,email,max=255"`
	CoverLetter    string `form:"cover_letter" json:"cover_letter" validate:"required,min=50"`
}

// UpdateApplicationStatusRequest transición de estado.
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=applied shortlisted rejected hired"`
}

// ApplicationResponse salida de una postulación.
type ApplicationResponse struct {
	ID             string    `json:"id"`
	JobID          string    `json:"job_id"`
	ApplicantID    string    `json:"applicant_id"`
	ApplicantName  string    `json:"applicant_name"`
	ApplicantEmail string    `json:"applicant_email"`
	ResumePath     *string   `json:"resume_path"`
	CoverLetter    string    `json:"cover_letter"`
	Status         string    `json:"status"`
	AppliedAt      time.Time `json:"applied_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ApplicationCreatedResponse respuesta 201 de la postulación.
type ApplicationCreatedResponse struct {
	Application ApplicationResponse `json:"application"`
}

// ApplicationListResponse lista paginada de postulaciones.
type ApplicationListResponse struct {
	Data []ApplicationResponse `json:"data"`
	Meta PageMeta              `json:"meta"`
}

// ResumeURLResponse URL firmada (almacenamiento de objetos).
type ResumeURLResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
