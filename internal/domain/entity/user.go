package entity

import "time"

// Role rol cerrado de un usuario. Cualquier otro valor es inválido.
type Role string

// Roles válidos para User.
const (
	RoleApplicant Role = "applicant"
	RoleEmployer  Role = "employer"
	RoleAdmin     Role = "admin"
)

// Roles lista completa, en el orden en que se documentan.
var Roles = []Role{RoleApplicant, RoleEmployer, RoleAdmin}

// Valid informa si r es uno de los roles conocidos.
func (r Role) Valid() bool {
	switch r {
	case RoleApplicant, RoleEmployer, RoleAdmin:
		return true
	}
	return false
}

// User representa un usuario del sistema (postulante, empleador o administrador).
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         Role
	AvatarURL    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
