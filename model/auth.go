package model

// --- ENUMS ---
// UserRole represents the account access level
// @Description ADMIN or USER access level
type UserRole string

const (
	RoleAdmin UserRole = "ADMIN"
	RoleUser  UserRole = "USER"
)

// UserDto is the identity carried in the session token
type UserDto struct {
	Username string   `json:"username"`
	Role     UserRole `json:"role"`
}

// --- Huma Request/Response Structs ---

type LoginDto struct {
	Username string `json:"username" example:"admin"`
	Password string `json:"password" example:"secret"`
}

type LoginRequest struct {
	Body LoginDto
}

type LoginResponse struct {
	SetCookie string `header:"Set-Cookie"`
	Body      Response
}

type LogoutResponse struct {
	SetCookie string `header:"Set-Cookie"`
	Body      Response
}
