package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/NH-Portal/portal-service/internal/identity"
	"github.com/NH-Portal/portal-service/internal/models"
	"github.com/NH-Portal/portal-service/internal/repositories"
	"github.com/NH-Portal/portal-service/internal/session"
	"github.com/NH-Portal/portal-service/internal/validator"
)

type authService struct {
	repo      repositories.Repository
	sessions  *session.Store
	identity  identity.Client
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAuthService(
	repo repositories.Repository,
	sessions *session.Store,
	identityClient identity.Client,
	logger *slog.Logger,
	v *validator.Validator,
) AuthService {
	return &authService{
		repo:      repo,
		sessions:  sessions,
		identity:  identityClient,
		logger:    logger,
		validator: v,
	}
}

// Register is student self-registration; administrator accounts are
// created through the account service.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.Account, error) {
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
		Role:         models.RoleStudent,
		GradeTier:    models.GradeTier(req.GradeTier),
		ClassNumber:  req.ClassNumber,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Account().Create(ctx, account); err != nil {
		return nil, err
	}

	if err := s.identity.Register(ctx, account, req.Password); err != nil {
		s.logger.Warn("identity mirror failed on register", "account_id", account.ID, "error", err)
	}

	s.logger.Info("account registered", "account_id", account.ID)
	return account, nil
}

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	account, err := s.repo.Account().GetByID(ctx, req.ID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token := uuid.NewString()
	sess := models.NewSession(account)

	if err := s.sessions.Save(ctx, token, sess); err != nil {
		return nil, err
	}

	s.logger.Info("login", "account_id", account.ID, "role", account.Role)
	return &models.LoginResponse{Token: token, Session: sess}, nil
}

// Logout clears the persisted session; the identity confirmation ends
// with it.
func (s *authService) Logout(ctx context.Context, token string) error {
	return s.sessions.Clear(ctx, token)
}
