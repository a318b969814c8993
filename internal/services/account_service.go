package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/NH-Portal/portal-service/internal/events"
	"github.com/NH-Portal/portal-service/internal/identity"
	"github.com/NH-Portal/portal-service/internal/models"
	"github.com/NH-Portal/portal-service/internal/repositories"
	"github.com/NH-Portal/portal-service/internal/validator"
)

type accountService struct {
	repo      repositories.Repository
	identity  identity.Client
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAccountService(
	repo repositories.Repository,
	identityClient identity.Client,
	publisher events.EventPublisher,
	logger *slog.Logger,
	v *validator.Validator,
) AccountService {
	return &accountService{
		repo:      repo,
		identity:  identityClient,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

func (s *accountService) Create(ctx context.Context, req *models.AccountCreateRequest, createdBy string) (*models.Account, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	exists, err := s.repo.Account().ExistsByID(ctx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("check account %s: %w", req.ID, err)
	}
	if exists {
		return nil, ErrDuplicateAccount
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &models.Account{
		ID:           req.ID,
		Name:         req.Name,
		PasswordHash: string(hash),
		Role:         models.AccountRole(req.Role),
		GradeTier:    models.GradeTier(req.GradeTier),
		ClassNumber:  req.ClassNumber,
		CreatedAt:    time.Now().UTC(),
		CreatedBy:    createdBy,
	}

	if err := s.repo.Account().Create(ctx, account); err != nil {
		return nil, err
	}

	// The account record is the source of truth; identity mirroring is
	// best-effort and logged, not surfaced.
	if err := s.identity.Register(ctx, account, req.Password); err != nil {
		s.logger.Warn("identity mirror failed on create", "account_id", account.ID, "error", err)
	}

	if err := s.publisher.Publish(ctx, events.NewEvent(events.TypeAccountCreated, events.AccountCreatedEvent{
		AccountID: account.ID,
		Role:      string(account.Role),
		CreatedBy: createdBy,
	})); err != nil {
		s.logger.Error("failed to publish account event", "error", err)
	}

	s.logger.Info("account created", "account_id", account.ID, "created_by", createdBy)
	return account, nil
}

func (s *accountService) GetByID(ctx context.Context, id string) (*models.Account, error) {
	account, err := s.repo.Account().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) List(ctx context.Context) ([]*models.Account, error) {
	return s.repo.Account().List(ctx)
}

func (s *accountService) Update(ctx context.Context, id string, req *models.AccountUpdateRequest, updatedBy string) (*models.Account, error) {
	// A JSON body with "password": "" decodes to a pointer to the empty
	// string; treat it as absent so the min-length rule does not reject
	// an edit that leaves the credential unchanged.
	if req.Password != nil && *req.Password == "" {
		req.Password = nil
	}

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	fields := map[string]interface{}{
		"updated_at": time.Now().UTC(),
		"updated_by": updatedBy,
	}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Role != nil {
		fields["role"] = *req.Role
	}
	if req.GradeTier != nil {
		fields["grade_tier"] = *req.GradeTier
	}
	if req.ClassNumber != nil {
		fields["class_number"] = *req.ClassNumber
	}

	// An absent or empty password leaves the stored credential unchanged.
	newSecret := ""
	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		fields["password_hash"] = string(hash)
		newSecret = *req.Password
	}

	if err := s.repo.Account().UpdateFields(ctx, id, fields); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	account, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.identity.Update(ctx, account, newSecret); err != nil {
		s.logger.Warn("identity mirror failed on update", "account_id", id, "error", err)
	}

	s.logger.Info("account updated", "account_id", id, "updated_by", updatedBy)
	return account, nil
}

// Delete removes the account permanently. Content uploaded by the
// account is untouched (no cascade).
func (s *accountService) Delete(ctx context.Context, id string) error {
	exists, err := s.repo.Account().ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("check account %s: %w", id, err)
	}
	if !exists {
		return ErrAccountNotFound
	}

	if err := s.repo.Account().Delete(ctx, id); err != nil {
		return err
	}

	if err := s.identity.Remove(ctx, id); err != nil {
		s.logger.Warn("identity removal failed", "account_id", id, "error", err)
	}

	s.logger.Info("account deleted", "account_id", id)
	return nil
}
