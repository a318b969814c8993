package services

import "errors"

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrContentNotFound    = errors.New("content not found")
	ErrDuplicateAccount   = errors.New("account identifier already registered")
	ErrInvalidCredentials = errors.New("invalid identifier or password")

	// ErrFileTooLarge rejects payloads over the 1 MiB pre-encoding
	// ceiling before any store write.
	ErrFileTooLarge = errors.New("file exceeds the 1 MiB limit")
	ErrFileRequired = errors.New("file payload is required")

	// ErrKindRequired applies to assessment uploads only.
	ErrKindRequired = errors.New("assessment kind is required")
)
