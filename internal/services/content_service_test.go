package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/NH-Portal/portal-service/internal/events"
	"github.com/NH-Portal/portal-service/internal/models"
)

func uploadRequest() *models.ContentUploadRequest {
	return &models.ContentUploadRequest{
		Title:       "Modul Jaringan Dasar",
		Description: "Pengantar topologi jaringan",
		GradeTier:   "SMK",
		ClassNumber: 10,
		FileName:    "modul.pdf",
		FileType:    "application/pdf",
		FileBody:    []byte("%PDF-1.4 dummy"),
	}
}

func TestContentService_Upload(t *testing.T) {
	env := newTestEnv(t)
	svc := NewContentService(env.deps.Repo, env.deps.Publisher, env.deps.Logger, env.deps.Validator)
	ctx := context.Background()

	req := uploadRequest()
	record, err := svc.Upload(ctx, models.CollectionMaterials, req, "admin")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if record.ID == "" {
		t.Error("no store id assigned")
	}
	if record.FileSize != int64(len(req.FileBody)) {
		t.Errorf("file size = %d, want %d", record.FileSize, len(req.FileBody))
	}

	wantData := "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(req.FileBody)
	if record.FileData != wantData {
		t.Errorf("file data not a base64 data url: %q", record.FileData)
	}

	stored, err := env.deps.Repo.Content().GetByID(ctx, models.CollectionMaterials, record.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Title != req.Title || stored.UploadedBy != "admin" {
		t.Errorf("stored record mismatch: %+v", stored)
	}

	published := env.publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.TypeContentUploaded {
		t.Errorf("expected one %s event, got %+v", events.TypeContentUploaded, published)
	}
}

func TestContentService_UploadFileCeiling(t *testing.T) {
	env := newTestEnv(t)
	svc := NewContentService(env.deps.Repo, env.deps.Publisher, env.deps.Logger, env.deps.Validator)
	ctx := context.Background()

	t.Run("exactly at the limit is accepted", func(t *testing.T) {
		req := uploadRequest()
		req.FileBody = bytes.Repeat([]byte("a"), models.MaxFileSize)
		if _, err := svc.Upload(ctx, models.CollectionMaterials, req, "admin"); err != nil {
			t.Fatalf("Upload at limit: %v", err)
		}
	})

	t.Run("one byte over is rejected before any write", func(t *testing.T) {
		before, err := env.deps.Repo.Content().ListOrdered(ctx, models.CollectionMaterials)
		if err != nil {
			t.Fatalf("ListOrdered: %v", err)
		}

		req := uploadRequest()
		req.FileBody = bytes.Repeat([]byte("a"), models.MaxFileSize+1)
		if _, err := svc.Upload(ctx, models.CollectionMaterials, req, "admin"); !errors.Is(err, ErrFileTooLarge) {
			t.Fatalf("got %v, want ErrFileTooLarge", err)
		}

		after, err := env.deps.Repo.Content().ListOrdered(ctx, models.CollectionMaterials)
		if err != nil {
			t.Fatalf("ListOrdered: %v", err)
		}
		if len(after) != len(before) {
			t.Error("oversized upload produced a write")
		}
	})

	t.Run("empty body is rejected", func(t *testing.T) {
		req := uploadRequest()
		req.FileBody = nil
		if _, err := svc.Upload(ctx, models.CollectionMaterials, req, "admin"); !errors.Is(err, ErrFileRequired) {
			t.Errorf("got %v, want ErrFileRequired", err)
		}
	})
}

func TestContentService_AssessmentKind(t *testing.T) {
	env := newTestEnv(t)
	svc := NewContentService(env.deps.Repo, env.deps.Publisher, env.deps.Logger, env.deps.Validator)
	ctx := context.Background()

	t.Run("assessment without kind is rejected", func(t *testing.T) {
		req := uploadRequest()
		if _, err := svc.Upload(ctx, models.CollectionAssessments, req, "admin"); !errors.Is(err, ErrKindRequired) {
			t.Errorf("got %v, want ErrKindRequired", err)
		}
	})

	t.Run("assessment kind is persisted", func(t *testing.T) {
		req := uploadRequest()
		req.Kind = string(models.KindExam)
		record, err := svc.Upload(ctx, models.CollectionAssessments, req, "admin")
		if err != nil {
			t.Fatalf("Upload: %v", err)
		}
		if record.Kind != models.KindExam {
			t.Errorf("kind = %s, want %s", record.Kind, models.KindExam)
		}
	})

	t.Run("material ignores kind", func(t *testing.T) {
		req := uploadRequest()
		req.Kind = string(models.KindPracticum)
		record, err := svc.Upload(ctx, models.CollectionMaterials, req, "admin")
		if err != nil {
			t.Fatalf("Upload: %v", err)
		}
		if record.Kind != "" {
			t.Errorf("material carries kind %s", record.Kind)
		}
	})
}

func TestContentService_UploadValidation(t *testing.T) {
	env := newTestEnv(t)
	svc := NewContentService(env.deps.Repo, env.deps.Publisher, env.deps.Logger, env.deps.Validator)

	req := uploadRequest()
	req.Title = ""
	req.GradeTier = "SD"
	if _, err := svc.Upload(context.Background(), models.CollectionMaterials, req, "admin"); err == nil {
		t.Fatal("expected validation error")
	} else if !strings.Contains(err.Error(), "Title") {
		t.Errorf("validation error does not name the field: %v", err)
	}
}

func TestContentService_Download(t *testing.T) {
	env := newTestEnv(t)
	svc := NewContentService(env.deps.Repo, env.deps.Publisher, env.deps.Logger, env.deps.Validator)
	ctx := context.Background()

	record, err := svc.Upload(ctx, models.CollectionMaterials, uploadRequest(), "admin")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	got, err := svc.Download(ctx, models.CollectionMaterials, record.ID)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if got.FileData != record.FileData {
		t.Error("downloaded payload differs from upload")
	}

	if _, err := svc.Download(ctx, models.CollectionMaterials, "missing"); !errors.Is(err, ErrContentNotFound) {
		t.Errorf("got %v, want ErrContentNotFound", err)
	}
}

func TestContentService_Delete(t *testing.T) {
	env := newTestEnv(t)
	svc := NewContentService(env.deps.Repo, env.deps.Publisher, env.deps.Logger, env.deps.Validator)
	ctx := context.Background()

	record, err := svc.Upload(ctx, models.CollectionMaterials, uploadRequest(), "admin")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	env.publisher.ClearEvents()

	if err := svc.Delete(ctx, models.CollectionMaterials, record.ID, "admin"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Download(ctx, models.CollectionMaterials, record.ID); !errors.Is(err, ErrContentNotFound) {
		t.Errorf("record survived delete: %v", err)
	}

	published := env.publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.TypeContentDeleted {
		t.Errorf("expected one %s event, got %+v", events.TypeContentDeleted, published)
	}

	if err := svc.Delete(ctx, models.CollectionMaterials, "missing", "admin"); !errors.Is(err, ErrContentNotFound) {
		t.Errorf("got %v, want ErrContentNotFound", err)
	}
}
