package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/NH-Portal/portal-service/internal/models"
	"github.com/NH-Portal/portal-service/internal/repositories"
)

type catalogService struct {
	repo   repositories.Repository
	logger *slog.Logger

	mu    sync.RWMutex
	slots map[string][]models.ContentRecord
}

func NewCatalogService(repo repositories.Repository, logger *slog.Logger) CatalogService {
	return &catalogService{
		repo:   repo,
		logger: logger,
		slots:  make(map[string][]models.ContentRecord),
	}
}

func (s *catalogService) Sync(ctx context.Context, collection string) ([]models.ContentRecord, error) {
	records, err := s.repo.Content().ListOrdered(ctx, collection)
	if err != nil {
		// Leave the slot at its prior value; the failure surfaces to
		// the caller and nothing is retried.
		s.logger.Error("catalog sync failed", "collection", collection, "error", err)
		return nil, fmt.Errorf("sync %s: %w", collection, err)
	}

	// The store orders by the raw field; re-sort on the decoded
	// timestamp so ordering holds across drivers. Stable, so ties keep
	// the store-provided order.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].UploadedAt.After(records[j].UploadedAt)
	})

	s.mu.Lock()
	s.slots[collection] = records
	s.mu.Unlock()

	s.logger.Debug("catalog synced", "collection", collection, "records", len(records))
	return s.Cached(collection), nil
}

func (s *catalogService) Cached(collection string) []models.ContentRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	slot := s.slots[collection]
	out := make([]models.ContentRecord, len(slot))
	copy(out, slot)
	return out
}

// Filter is pure and preserves the relative order of the input. An
// empty result is a valid result, not an error.
func (s *catalogService) Filter(records []models.ContentRecord, facets Facets) []models.ContentRecord {
	out := make([]models.ContentRecord, 0, len(records))
	for _, record := range records {
		if facets.Kind != "" && record.Kind != facets.Kind {
			continue
		}
		if facets.GradeTier != "" && string(record.GradeTier) != facets.GradeTier {
			continue
		}
		if facets.ClassNumber != nil && record.ClassNumber != *facets.ClassNumber {
			continue
		}
		out = append(out, record)
	}
	return out
}
