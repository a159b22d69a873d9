package model

import (
	"golang.org/x/crypto/bcrypt"
)

// User is an account row in the Users sheet.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Hidden from JSON
	CreatedAt    string `json:"createdAt"`
	Role         string `json:"role"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashed)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// DisplayName is what admin screens show for a seller.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	if u.Username != "" {
		return u.Username
	}
	return u.ID
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID        string  `json:"id"`
	Username  *string `json:"username"`
	FullName  *string `json:"fullName"`
	Email     *string `json:"email"`
	CreatedAt string  `json:"createdAt"`
	Role      string  `json:"role"`
}

// ToResponse converts User to UserResponse. Empty optional fields become null.
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  nullable(u.Username),
		FullName:  nullable(u.FullName),
		Email:     nullable(u.Email),
		CreatedAt: u.CreatedAt,
		Role:      NormalizeRole(u.Role),
	}
}

// UserUpdate carries the mutable user fields; nil means unchanged.
type UserUpdate struct {
	FullName     *string
	Email        *string
	PasswordHash *string
	Role         *string
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
