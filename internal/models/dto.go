package models

type RegisterRequest struct {
	ID          string `json:"id" validate:"required,max=32"`
	Name        string `json:"name" validate:"required,max=100"`
	Password    string `json:"password" validate:"required,min=6"`
	GradeTier   string `json:"grade_tier" validate:"required,grade_tier"`
	ClassNumber int    `json:"class_number" validate:"required,min=1,max=13"`
}

type LoginRequest struct {
	ID       string `json:"id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token   string   `json:"token"`
	Session *Session `json:"session"`
}

type AccountCreateRequest struct {
	ID          string `json:"id" validate:"required,max=32"`
	Name        string `json:"name" validate:"required,max=100"`
	Password    string `json:"password" validate:"required,min=6"`
	Role        string `json:"role" validate:"required,account_role"`
	GradeTier   string `json:"grade_tier" validate:"required,grade_tier"`
	ClassNumber int    `json:"class_number" validate:"required,min=1,max=13"`
}

// AccountUpdateRequest updates mutable account fields. An empty
// Password leaves the stored credential unchanged. The ID itself is
// immutable and comes from the URL path.
type AccountUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Password    *string `json:"password" validate:"omitempty,min=6"`
	Role        *string `json:"role" validate:"omitempty,account_role"`
	GradeTier   *string `json:"grade_tier" validate:"omitempty,grade_tier"`
	ClassNumber *int    `json:"class_number" validate:"omitempty,min=1,max=13"`
}

type ContentUploadRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	GradeTier   string `json:"grade_tier" validate:"required,grade_tier"`
	ClassNumber int    `json:"class_number" validate:"required,min=1,max=13"`

	// Kind is required for assessments, ignored for materials.
	Kind string `json:"kind" validate:"omitempty,assessment_kind"`

	FileName string `json:"file_name" validate:"required,max=255"`
	FileType string `json:"file_type" validate:"required,max=100"`
	FileBody []byte `json:"-"`
}

type ImportResult struct {
	SuccessCount int `json:"success_count"`
	FailureCount int `json:"failure_count"`
}
