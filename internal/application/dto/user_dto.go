package dto

import "time"

// RegisterRequest entrada para registro.
type RegisterRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Organization string `json:"organization"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Organization string     `json:"organization,omitempty"`
	IsAdmin      bool       `json:"isAdmin"`
	Status       string     `json:"status"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// AuthResponse salida de register/login. El token también viaja en la cookie HttpOnly.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"-"`
}

// CurrentUserResponse salida de /auth/me; User es null para visitantes anónimos.
type CurrentUserResponse struct {
	User *UserResponse `json:"user"`
}

// UpdateUserRequest cambios de acceso hechos por un admin.
type UpdateUserRequest struct {
	Status  *string `json:"status"`
	IsAdmin *bool   `json:"isAdmin"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
