package entity

import "time"

// AuthToken credencial bearer ligada a un único usuario. Revocable individualmente.
type AuthToken struct {
	ID        string // jti del JWT
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// Active informa si el token sigue vigente en now.
func (t *AuthToken) Active(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}
