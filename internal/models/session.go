package models

import "time"

// Session is the cached copy of an account's public fields, persisted
// under an opaque token for the lifetime of the login. It never carries
// the credential hash.
type Session struct {
	AccountID   string      `json:"account_id"`
	Name        string      `json:"name"`
	Role        AccountRole `json:"role"`
	GradeTier   GradeTier   `json:"grade_tier"`
	ClassNumber int         `json:"class_number"`
	IssuedAt    time.Time   `json:"issued_at"`
}

// NewSession derives a session from an account.
func NewSession(a *Account) *Session {
	return &Session{
		AccountID:   a.ID,
		Name:        a.Name,
		Role:        a.Role,
		GradeTier:   a.GradeTier,
		ClassNumber: a.ClassNumber,
		IssuedAt:    time.Now(),
	}
}
