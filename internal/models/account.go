package models

import (
	"time"
)

type AccountRole string

const (
	RoleAdmin   AccountRole = "admin"
	RoleStudent AccountRole = "student"
)

type GradeTier string

const (
	TierSMP GradeTier = "SMP"
	TierSMA GradeTier = "SMA"
	TierSMK GradeTier = "SMK"
)

// Account is a student or staff record keyed by its registration number.
// The ID is globally unique and immutable once created; uniqueness is
// enforced by a pre-write existence check against the record store.
type Account struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	PasswordHash string      `json:"password_hash,omitempty"`
	Role         AccountRole `json:"role"`
	GradeTier    GradeTier   `json:"grade_tier"`
	ClassNumber  int         `json:"class_number"`

	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
	UpdatedBy string    `json:"updated_by,omitempty"`
}

// Public returns a copy with the credential hash stripped for responses.
func (a Account) Public() Account {
	a.PasswordHash = ""
	return a
}

func (r AccountRole) Valid() bool {
	return r == RoleAdmin || r == RoleStudent
}
