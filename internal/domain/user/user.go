package user

import (
	"context"
	"time"

	"campushire/internal/common"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

type User struct {
	ID             common.UUID `json:"id"`
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	PasswordHash   string      `json:"-"`
	Role           Role        `json:"role"`
	Branch         string      `json:"branch,omitempty"`
	Batch          string      `json:"batch,omitempty"`
	CGR            float64     `json:"cgr"`
	ResumeLink     string      `json:"resumeLink,omitempty"`
	ProfilePicture string      `json:"profilePicture,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// ProfileUpdate carries the fields a user may change about themselves.
// Nil pointers mean "leave untouched".
type ProfileUpdate struct {
	Name           *string
	Branch         *string
	Batch          *string
	CGR            *float64
	ResumeLink     *string
	ProfilePicture *string
}

type Repository interface {
	Create(ctx context.Context, u User) (*User, error)
	GetByID(ctx context.Context, id common.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, u User) (*User, error)
}
