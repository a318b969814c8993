package services

import (
	"context"
	"io"

	"github.com/NH-Portal/portal-service/internal/models"
)

// AuthService covers login, student self-registration and logout.
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.Account, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	Logout(ctx context.Context, token string) error
}

// AccountService is the administrator account CRUD surface.
type AccountService interface {
	Create(ctx context.Context, req *models.AccountCreateRequest, createdBy string) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	List(ctx context.Context) ([]*models.Account, error)
	Update(ctx context.Context, id string, req *models.AccountUpdateRequest, updatedBy string) (*models.Account, error)
	Delete(ctx context.Context, id string) error
}

// ContentService uploads, serves and deletes materials and assessments.
type ContentService interface {
	Upload(ctx context.Context, collection string, req *models.ContentUploadRequest, uploadedBy string) (*models.ContentRecord, error)
	Download(ctx context.Context, collection, id string) (*models.ContentRecord, error)
	Delete(ctx context.Context, collection, id, deletedBy string) error
}

// Facets narrows a content listing. A zero-value facet imposes no
// restriction. Kind is the implicit per-view filter (practicum view vs
// exam view) applied before the user-chosen facets.
type Facets struct {
	GradeTier   string
	ClassNumber *int
	Kind        models.AssessmentKind
}

// CatalogService keeps per-collection in-memory snapshots of content
// listings and filters them without re-fetching.
type CatalogService interface {
	// Sync fetches the collection, orders it newest-first and replaces
	// the cache slot. On failure the prior slot is preserved.
	Sync(ctx context.Context, collection string) ([]models.ContentRecord, error)

	// Cached returns the current slot contents without touching the store.
	Cached(collection string) []models.ContentRecord

	// Filter returns the stable subsequence of records matching facets.
	Filter(records []models.ContentRecord, facets Facets) []models.ContentRecord
}

// ImportService converts delimited account rows into validated writes.
type ImportService interface {
	// ImportAccounts processes rows strictly sequentially and never
	// aborts on a row failure; it only aggregates counts.
	ImportAccounts(ctx context.Context, rawText, importedBy string) *models.ImportResult

	// ImportAccountsXLSX runs the same row pipeline over the first
	// sheet of a spreadsheet.
	ImportAccountsXLSX(ctx context.Context, r io.Reader, importedBy string) (*models.ImportResult, error)
}

// ServiceManager wires the portal services over shared dependencies.
type ServiceManager interface {
	Auth() AuthService
	Account() AccountService
	Content() ContentService
	Catalog() CatalogService
	Import() ImportService

	Shutdown(ctx context.Context) error
}
