// File: smarttravel/models/user.go
package models

// User mirrors the backend user document. JSON field names follow the
// backend's wire format.
type User struct {
	ID           string   `json:"_id"`
	Nombre       string   `json:"nombre"`
	Email        string   `json:"email"`
	Preferencias []string `json:"preferencias,omitempty"`
	Telefono     string   `json:"telefono,omitempty"`
	Pais         string   `json:"pais,omitempty"`
	Ciudad       string   `json:"ciudad,omitempty"`
	Foto         string   `json:"foto,omitempty"`
	Bio          string   `json:"bio,omitempty"`
	CreatedAt    string   `json:"createdAt,omitempty"`
	UpdatedAt    string   `json:"updatedAt,omitempty"`
}

// LoginCredentials is the login request body.
type LoginCredentials struct {
	Email    string `json:"email"`
	Password string `json:"contraseña"`
}

// RegisterData is the registration request body.
type RegisterData struct {
	Nombre          string `json:"nombre"`
	Email           string `json:"email"`
	Password        string `json:"contraseña"`
	PasswordConfirm string `json:"contraseñaConfirm"`
}

// AuthResponse is returned by login and registration.
type AuthResponse struct {
	Token   string `json:"token"`
	Usuario User   `json:"usuario"`
}

// UserUpdate carries a partial profile update. Nil fields are left
// untouched by the backend.
type UserUpdate struct {
	Nombre   *string `json:"nombre,omitempty"`
	Telefono *string `json:"telefono,omitempty"`
	Pais     *string `json:"pais,omitempty"`
	Ciudad   *string `json:"ciudad,omitempty"`
	Foto     *string `json:"foto,omitempty"`
	Bio      *string `json:"bio,omitempty"`
}
