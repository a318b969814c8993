package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/NH-Portal/portal-service/internal/events"
	"github.com/NH-Portal/portal-service/internal/identity"
	"github.com/NH-Portal/portal-service/internal/repositories"
	"github.com/NH-Portal/portal-service/internal/session"
	"github.com/NH-Portal/portal-service/internal/validator"
)

// Dependencies are the shared collaborators behind every service.
type Dependencies struct {
	Repo      repositories.Repository
	Sessions  *session.Store
	Identity  identity.Client
	Publisher events.EventPublisher
	Logger    *slog.Logger
	Validator *validator.Validator
}

type serviceManager struct {
	deps Dependencies

	authService    AuthService
	accountService AccountService
	contentService ContentService
	catalogService CatalogService
	importService  ImportService

	shutdown bool
	mu       sync.Mutex
}

func NewServiceManager(deps Dependencies) ServiceManager {
	return &serviceManager{
		deps:           deps,
		authService:    NewAuthService(deps.Repo, deps.Sessions, deps.Identity, deps.Logger, deps.Validator),
		accountService: NewAccountService(deps.Repo, deps.Identity, deps.Publisher, deps.Logger, deps.Validator),
		contentService: NewContentService(deps.Repo, deps.Publisher, deps.Logger, deps.Validator),
		catalogService: NewCatalogService(deps.Repo, deps.Logger),
		importService:  NewImportService(deps.Repo, deps.Publisher, deps.Logger),
	}
}

func (sm *serviceManager) Auth() AuthService       { return sm.authService }
func (sm *serviceManager) Account() AccountService { return sm.accountService }
func (sm *serviceManager) Content() ContentService { return sm.contentService }
func (sm *serviceManager) Catalog() CatalogService { return sm.catalogService }
func (sm *serviceManager) Import() ImportService   { return sm.importService }

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}
	sm.shutdown = true

	if err := sm.deps.Publisher.Close(); err != nil {
		sm.deps.Logger.Error("failed to close event publisher", "error", err)
	}

	return sm.deps.Repo.Close()
}
