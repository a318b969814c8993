package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"github.com/NH-Portal/portal-service/internal/events"
	"github.com/NH-Portal/portal-service/internal/models"
	"github.com/NH-Portal/portal-service/internal/repositories"
	"github.com/NH-Portal/portal-service/internal/validator"
)

type contentService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewContentService(
	repo repositories.Repository,
	publisher events.EventPublisher,
	logger *slog.Logger,
	v *validator.Validator,
) ContentService {
	return &contentService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

func (s *contentService) Upload(ctx context.Context, collection string, req *models.ContentUploadRequest, uploadedBy string) (*models.ContentRecord, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	if len(req.FileBody) == 0 {
		return nil, ErrFileRequired
	}
	// The ceiling applies to the raw size before encoding, checked
	// before any store write. The store enforces no limit of its own.
	if len(req.FileBody) > models.MaxFileSize {
		return nil, ErrFileTooLarge
	}

	if collection == models.CollectionAssessments && req.Kind == "" {
		return nil, ErrKindRequired
	}

	record := &models.ContentRecord{
		Title:       req.Title,
		Description: req.Description,
		GradeTier:   models.GradeTier(req.GradeTier),
		ClassNumber: req.ClassNumber,
		FileData:    encodeDataURL(req.FileType, req.FileBody),
		FileName:    req.FileName,
		FileType:    req.FileType,
		FileSize:    int64(len(req.FileBody)),
		UploadedAt:  time.Now().UTC(),
		UploadedBy:  uploadedBy,
	}
	if collection == models.CollectionAssessments {
		record.Kind = models.AssessmentKind(req.Kind)
	}

	id, err := s.repo.Content().Create(ctx, collection, record)
	if err != nil {
		return nil, err
	}
	record.ID = id

	if err := s.publisher.Publish(ctx, events.NewEvent(events.TypeContentUploaded, events.ContentEvent{
		Collection: collection,
		ContentID:  id,
		Title:      record.Title,
		Actor:      uploadedBy,
	})); err != nil {
		s.logger.Error("failed to publish upload event", "error", err)
	}

	s.logger.Info("content uploaded",
		"collection", collection,
		"content_id", id,
		"file_size", record.FileSize,
		"uploaded_by", uploadedBy,
	)
	return record, nil
}

func (s *contentService) Download(ctx context.Context, collection, id string) (*models.ContentRecord, error) {
	record, err := s.repo.Content().GetByID(ctx, collection, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}
	return record, nil
}

func (s *contentService) Delete(ctx context.Context, collection, id, deletedBy string) error {
	if _, err := s.Download(ctx, collection, id); err != nil {
		return err
	}

	if err := s.repo.Content().Delete(ctx, collection, id); err != nil {
		return err
	}

	if err := s.publisher.Publish(ctx, events.NewEvent(events.TypeContentDeleted, events.ContentEvent{
		Collection: collection,
		ContentID:  id,
		Actor:      deletedBy,
	})); err != nil {
		s.logger.Error("failed to publish delete event", "error", err)
	}

	s.logger.Info("content deleted", "collection", collection, "content_id", id, "deleted_by", deletedBy)
	return nil
}

func encodeDataURL(mimeType string, body []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(body))
}
