// Package policy decide si un principal puede ejecutar una acción sobre un recurso.
// Son predicados puros: reciben el principal ya resuelto y el recurso ya cargado.
package policy

import (
	"fmt"

	"github.com/jhoicas/jobboard-api/internal/domain"
	"github.com/jhoicas/jobboard-api/internal/domain/entity"
)

// IsAdmin habilita la gestión de usuarios y roles.
func IsAdmin(u *entity.User) bool {
	return u != nil && u.Role == entity.RoleAdmin
}

// CanCreateJob empleadores y administradores.
func CanCreateJob(u *entity.User) bool {
	if u == nil {
		return false
	}
	switch u.Role {
	case entity.RoleEmployer, entity.RoleAdmin:
		return true
	case entity.RoleApplicant:
		return false
	}
	return false
}

// CanMutateJob dueño de la oferta o administrador.
func CanMutateJob(u *entity.User, j *entity.Job) bool {
	if u == nil || j == nil {
		return false
	}
	switch u.Role {
	case entity.RoleAdmin:
		return true
	case entity.RoleEmployer, entity.RoleApplicant:
		return u.ID == j.EmployerID
	}
	return false
}

// CanApplyAs cada usuario postula por sí mismo; el administrador puede hacerlo por otro.
func CanApplyAs(u *entity.User, applicantID string) bool {
	if u == nil {
		return false
	}
	return u.ID == applicantID || IsAdmin(u)
}

// CanViewApplication el postulante, el empleador dueño de la oferta o un administrador.
func CanViewApplication(u *entity.User, a *entity.Application, j *entity.Job) bool {
	if u == nil || a == nil {
		return false
	}
	switch u.Role {
	case entity.RoleAdmin:
		return true
	case entity.RoleApplicant, entity.RoleEmployer:
		if u.ID == a.ApplicantID {
			return true
		}
		return j != nil && j.ID == a.JobID && u.ID == j.EmployerID
	}
	return false
}

// CanMutateApplicationStatus mismo predicado que la lectura.
func CanMutateApplicationStatus(u *entity.User, a *entity.Application, j *entity.Job) bool {
	return CanViewApplication(u, a, j)
}

// CanDeleteApplication el postulante o un administrador; el empleador no.
func CanDeleteApplication(u *entity.User, a *entity.Application) bool {
	if u == nil || a == nil {
		return false
	}
	switch u.Role {
	case entity.RoleAdmin:
		return true
	case entity.RoleApplicant, entity.RoleEmployer:
		return u.ID == a.ApplicantID
	}
	return false
}

// ApplicationScope alcance del listado: cada rol ve lo suyo, el admin todo.
func ApplicationScope(u *entity.User) (entity.ApplicationScope, error) {
	if u == nil {
		return entity.ApplicationScope{}, domain.ErrUnauthenticated
	}
	switch u.Role {
	case entity.RoleAdmin:
		return entity.ApplicationScope{}, nil
	case entity.RoleEmployer:
		return entity.ApplicationScope{EmployerID: u.ID}, nil
	case entity.RoleApplicant:
		return entity.ApplicationScope{ApplicantID: u.ID}, nil
	}
	return entity.ApplicationScope{}, Authorize(false, "listar postulaciones")
}

// Authorize convierte el resultado de un predicado en ErrForbidden.
func Authorize(allowed bool, action string) error {
	if allowed {
		return nil
	}
	return fmt.Errorf("%w: %s", domain.ErrForbidden, action)
}
