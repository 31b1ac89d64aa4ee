package model

// User is a row in the admin user listing.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// AuthResponse is the server's answer to a successful login or
// registration.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// UploadResponse is the server's answer to an image upload.
type UploadResponse struct {
	ImageID string `json:"imageId"`
}
