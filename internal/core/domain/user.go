package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// DefaultFullName is used when an account is created without a display name.
const DefaultFullName = "Пользователь"

// User models an authenticated principal. Email doubles as the login
// identifier and is unique across accounts. PasswordHash is a bcrypt hash
// and never leaves the process.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
