package handler

import "time"

type updateProfileRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"    validate:"required,email"`
}

// changePasswordRequest carries no validate tags: the password constraints
// are checked in the service so every caller goes through the same rules.
type changePasswordRequest struct {
	OldPassword     string `json:"old_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// profileResponse is the transport view of the authenticated account. The
// password hash never appears here.
type profileResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
