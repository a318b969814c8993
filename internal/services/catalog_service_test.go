package services

import (
	"context"
	"testing"
	"time"

	"github.com/NH-Portal/portal-service/internal/models"
)

func seedContent(t *testing.T, env *testEnv, collection string, records []models.ContentRecord) {
	t.Helper()
	ctx := context.Background()
	for i := range records {
		if _, err := env.deps.Repo.Content().Create(ctx, collection, &records[i]); err != nil {
			t.Fatalf("seed content: %v", err)
		}
	}
}

func TestCatalogService_SyncOrder(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCatalogService(env.deps.Repo, env.deps.Logger)

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	seedContent(t, env, models.CollectionMaterials, []models.ContentRecord{
		{Title: "aljabar", GradeTier: models.TierSMA, ClassNumber: 10, UploadedAt: base},
		{Title: "geometri", GradeTier: models.TierSMA, ClassNumber: 10, UploadedAt: base.Add(2 * time.Hour)},
		{Title: "trigonometri", GradeTier: models.TierSMA, ClassNumber: 10, UploadedAt: base.Add(time.Hour)},
	})

	records, err := svc.Sync(context.Background(), models.CollectionMaterials)
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}

	for i := 1; i < len(records); i++ {
		if records[i].UploadedAt.After(records[i-1].UploadedAt) {
			t.Errorf("records not non-increasing at index %d", i)
		}
	}
	if records[0].Title != "geometri" {
		t.Errorf("newest first: got %q", records[0].Title)
	}
	for _, record := range records {
		if record.ID == "" {
			t.Error("store id not attached")
		}
	}
}

func TestCatalogService_CachedServesWithoutStore(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCatalogService(env.deps.Repo, env.deps.Logger)
	ctx := context.Background()

	seedContent(t, env, models.CollectionMaterials, []models.ContentRecord{
		{Title: "fisika", UploadedAt: time.Now().UTC()},
	})

	if _, err := svc.Sync(ctx, models.CollectionMaterials); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	// The cache must answer even when the store is unreachable.
	env.redis.SetError("connection refused")
	defer env.redis.SetError("")

	cached := svc.Cached(models.CollectionMaterials)
	if len(cached) != 1 || cached[0].Title != "fisika" {
		t.Errorf("cached slot = %+v", cached)
	}
}

func TestCatalogService_SyncFailureKeepsPriorSlot(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCatalogService(env.deps.Repo, env.deps.Logger)
	ctx := context.Background()

	seedContent(t, env, models.CollectionMaterials, []models.ContentRecord{
		{Title: "kimia", UploadedAt: time.Now().UTC()},
	})
	if _, err := svc.Sync(ctx, models.CollectionMaterials); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	env.redis.SetError("connection refused")
	if _, err := svc.Sync(ctx, models.CollectionMaterials); err == nil {
		t.Fatal("expected sync failure")
	}
	env.redis.SetError("")

	cached := svc.Cached(models.CollectionMaterials)
	if len(cached) != 1 {
		t.Errorf("prior slot lost after failed sync: %d records", len(cached))
	}
}

func TestCatalogService_FilterStability(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCatalogService(env.deps.Repo, env.deps.Logger)

	ten, eleven := 10, 11
	records := []models.ContentRecord{
		{ID: "a", GradeTier: models.TierSMA, ClassNumber: 10, Kind: models.KindPracticum},
		{ID: "b", GradeTier: models.TierSMP, ClassNumber: 8, Kind: models.KindExam},
		{ID: "c", GradeTier: models.TierSMA, ClassNumber: 11, Kind: models.KindPracticum},
		{ID: "d", GradeTier: models.TierSMA, ClassNumber: 10, Kind: models.KindExam},
		{ID: "e", GradeTier: models.TierSMK, ClassNumber: 10, Kind: models.KindPracticum},
	}

	t.Run("all facets empty returns input unchanged", func(t *testing.T) {
		got := svc.Filter(records, Facets{})
		if len(got) != len(records) {
			t.Fatalf("got %d records, want %d", len(got), len(records))
		}
		for i := range got {
			if got[i].ID != records[i].ID {
				t.Errorf("order changed at %d: %s", i, got[i].ID)
			}
		}
	})

	t.Run("grade tier facet", func(t *testing.T) {
		got := svc.Filter(records, Facets{GradeTier: "SMA"})
		assertIDs(t, got, "a", "c", "d")
	})

	t.Run("class number facet", func(t *testing.T) {
		got := svc.Filter(records, Facets{ClassNumber: &ten})
		assertIDs(t, got, "a", "d", "e")
	})

	t.Run("implicit kind filter applies before user facets", func(t *testing.T) {
		got := svc.Filter(records, Facets{Kind: models.KindPracticum, GradeTier: "SMA"})
		assertIDs(t, got, "a", "c")
	})

	t.Run("combined facets", func(t *testing.T) {
		got := svc.Filter(records, Facets{Kind: models.KindPracticum, GradeTier: "SMA", ClassNumber: &eleven})
		assertIDs(t, got, "c")
	})

	t.Run("empty result is valid", func(t *testing.T) {
		ninety := 90
		got := svc.Filter(records, Facets{ClassNumber: &ninety})
		if len(got) != 0 {
			t.Errorf("got %d records, want 0", len(got))
		}
	})

	t.Run("input is not mutated", func(t *testing.T) {
		_ = svc.Filter(records, Facets{GradeTier: "SMP"})
		if records[0].ID != "a" || records[4].ID != "e" {
			t.Error("filter mutated its input")
		}
	})
}

func assertIDs(t *testing.T, got []models.ContentRecord, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d records, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("record %d = %s, want %s", i, got[i].ID, id)
		}
	}
}
