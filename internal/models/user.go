package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type UserProfile struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PhotoURL     *string   `json:"photo_url,omitempty" db:"photo_url"`
	Role         string    `json:"role" db:"role"`
	CommentCount int       `json:"comment_count" db:"comment_count"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Validate checks basic profile fields
func (u *UserProfile) Validate() error {
	if u.Email == "" {
		return fmt.Errorf("email is required")
	}
	if !strings.Contains(u.Email, "@") {
		return fmt.Errorf("invalid email")
	}
	if u.Username == "" {
		return fmt.Errorf("username is required")
	}
	if len(u.Username) < 2 || len(u.Username) > 100 {
		return fmt.Errorf("username length invalid")
	}
	return nil
}

type CreateUserRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	Username string  `json:"username" binding:"required"`
	PhotoURL *string `json:"photo_url,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}
