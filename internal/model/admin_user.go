package model

import "time"

// AdminUser is a back-office account.  The public site never sees these;
// they exist only to gate the /v1/admin surface.  Passwords are stored as
// bcrypt hashes.
type AdminUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"` // currently always ADMIN
	CreatedAt    time.Time `json:"created_at"`
}
