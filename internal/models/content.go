package models

import (
	"time"
)

// Collection names in the record store.
const (
	CollectionAccounts    = "accounts"
	CollectionMaterials   = "materials"
	CollectionAssessments = "assessments"
)

// MaxFileSize is the pre-encoding payload ceiling enforced before any
// store write. The store itself enforces no limit.
const MaxFileSize = 1 << 20 // 1 MiB

type AssessmentKind string

const (
	KindPracticum AssessmentKind = "practicum"
	KindExam      AssessmentKind = "exam"
)

// ContentRecord is an uploaded material or assessment. Records are
// immutable after upload; the only mutation is a hard delete.
type ContentRecord struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	GradeTier   GradeTier `json:"grade_tier"`
	ClassNumber int       `json:"class_number"`

	// Kind is set only on assessment records.
	Kind AssessmentKind `json:"kind,omitempty"`

	// FileData holds the payload as a base64 data URL.
	FileData string `json:"file_data"`
	FileName string `json:"file_name"`
	FileType string `json:"file_type"`
	FileSize int64  `json:"file_size"`

	UploadedAt time.Time `json:"uploaded_at"`
	UploadedBy string    `json:"uploaded_by"`
}

func (k AssessmentKind) Valid() bool {
	return k == KindPracticum || k == KindExam
}
