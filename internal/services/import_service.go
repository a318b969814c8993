package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/NH-Portal/portal-service/internal/events"
	"github.com/NH-Portal/portal-service/internal/models"
	"github.com/NH-Portal/portal-service/internal/repositories"
)

// accountRowFields is the fixed positional schema of an import row:
// identifier, name, password, role, grade tier, class number.
const accountRowFields = 6

type importService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
}

func NewImportService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger) ImportService {
	return &importService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// ImportAccounts processes each row fully (existence check, then write)
// before starting the next. The serialization is a correctness
// requirement: a duplicate identifier later in the same batch must
// observe the earlier row's write and fail. Across separate sessions no
// such guard exists; the pre-write check is not a transactional
// constraint and last write wins.
func (s *importService) ImportAccounts(ctx context.Context, rawText, importedBy string) *models.ImportResult {
	result := &models.ImportResult{}

	for _, line := range strings.Split(rawText, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if s.importRow(ctx, line, importedBy) {
			result.SuccessCount++
		} else {
			result.FailureCount++
		}
	}

	s.logger.Info("account import finished",
		"imported_by", importedBy,
		"success", result.SuccessCount,
		"failure", result.FailureCount,
	)

	if err := s.publisher.Publish(ctx, events.NewEvent(events.TypeAccountsImported, events.AccountsImportedEvent{
		SuccessCount: result.SuccessCount,
		FailureCount: result.FailureCount,
		ImportedBy:   importedBy,
	})); err != nil {
		s.logger.Error("failed to publish import event", "error", err)
	}

	return result
}

func (s *importService) ImportAccountsXLSX(ctx context.Context, r io.Reader, importedBy string) (*models.ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}

	// Feed cells through the same row pipeline as raw text.
	lines := make([]string, 0, len(rows))
	for _, cells := range rows {
		lines = append(lines, strings.Join(cells, ","))
	}

	return s.ImportAccounts(ctx, strings.Join(lines, "\n"), importedBy), nil
}

// importRow returns true when the row was written. Any validation
// failure, duplicate identifier or store error counts as a failure for
// that row only; the batch continues.
func (s *importService) importRow(ctx context.Context, line, importedBy string) bool {
	fields := strings.Split(line, ",")
	if len(fields) != accountRowFields {
		return false
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	id, name, password := fields[0], fields[1], fields[2]
	role, tier, classStr := fields[3], fields[4], fields[5]

	for _, field := range fields {
		if field == "" {
			return false
		}
	}

	classNumber, err := strconv.Atoi(classStr)
	if err != nil {
		// A non-numeric class number is a rejected row, not a silent
		// NaN-like value.
		return false
	}

	exists, err := s.repo.Account().ExistsByID(ctx, id)
	if err != nil {
		s.logger.Error("import existence check failed", "account_id", id, "error", err)
		return false
	}
	if exists {
		return false
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("import password hash failed", "account_id", id, "error", err)
		return false
	}

	account := &models.Account{
		ID:           id,
		Name:         name,
		PasswordHash: string(hash),
		Role:         models.AccountRole(role),
		GradeTier:    models.GradeTier(tier),
		ClassNumber:  classNumber,
		CreatedAt:    time.Now().UTC(),
		CreatedBy:    importedBy,
	}

	if err := s.repo.Account().Create(ctx, account); err != nil {
		s.logger.Error("import write failed", "account_id", id, "error", err)
		return false
	}

	return true
}
