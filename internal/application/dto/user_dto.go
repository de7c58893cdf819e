package dto

import "time"

// RegisterRequest entrada para registro. Role opcional (applicant por defecto).
type RegisterRequest struct {
	Name                 string  `json:"name" validate:"required,max=255"`
	Email                string  `json:"email" validate:"required,email,max=255"`
	Password             string  `json:"password" validate:"required"`
	PasswordConfirmation *string `json:"password_confirmation"`
	Role                 string  `json:"role" validate:"omitempty,oneof=applicant employer admin"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	AvatarURL *string   `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuthResponse token bearer + usuario (registro y login).
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// UserListResponse lista paginada de usuarios (admin).
type UserListResponse struct {
	Data []UserResponse `json:"data"`
	Meta PageMeta       `json:"meta"`
}

// UpdateRoleRequest cambio de rol (admin).
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=applicant employer admin"`
}
