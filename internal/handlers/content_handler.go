package handlers

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/NH-Portal/portal-service/internal/models"
	"github.com/NH-Portal/portal-service/internal/services"
	"github.com/NH-Portal/portal-service/internal/utils"
)

// ContentHandler serves one content collection (materials or
// assessments); the router instantiates it per collection.
type ContentHandler struct {
	BaseHandler
	contentService services.ContentService
	catalogService services.CatalogService
	collection     string
}

func NewContentHandler(
	contentService services.ContentService,
	catalogService services.CatalogService,
	collection string,
	logger utils.Logger,
) *ContentHandler {
	return &ContentHandler{
		BaseHandler:    NewBaseHandler(logger),
		contentService: contentService,
		catalogService: catalogService,
		collection:     collection,
	}
}

// Upload stores a new content record from a multipart form.
// @Summary Upload content
// @Tags content
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Content file"
// @Success 201 {object} models.ContentRecord
// @Failure 400 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Router /{collection} [post]
func (h *ContentHandler) Upload(c *gin.Context) {
	uploadedBy, err := AccountIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "not authenticated"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "file field is required",
			Details: err.Error(),
		})
		return
	}

	// Reading one byte past the ceiling detects oversized files without
	// buffering arbitrarily large bodies.
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "failed to open uploaded file",
			Details: err.Error(),
		})
		return
	}
	defer file.Close()

	body, err := io.ReadAll(io.LimitReader(file, models.MaxFileSize+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "failed to read uploaded file",
			Details: err.Error(),
		})
		return
	}

	classNumber := 0
	if raw := c.PostForm("class_number"); raw != "" {
		classNumber, err = strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Message: "class_number must be a number"})
			return
		}
	}

	fileType := fileHeader.Header.Get("Content-Type")
	if fileType == "" {
		fileType = "application/octet-stream"
	}

	req := &models.ContentUploadRequest{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		GradeTier:   c.PostForm("grade_tier"),
		ClassNumber: classNumber,
		Kind:        c.PostForm("kind"),
		FileName:    fileHeader.Filename,
		FileType:    fileType,
		FileBody:    body,
	}

	h.LogRequest(c, "Uploading content",
		"collection", h.collection,
		"file_name", req.FileName,
		"file_size", len(body),
	)

	record, err := h.contentService.Upload(c.Request.Context(), h.collection, req, uploadedBy)
	if err != nil {
		h.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

// List returns the collection newest-first, narrowed by the query
// facets. A failed store fetch falls back to the last good snapshot.
// @Summary List content
// @Tags content
// @Produce json
// @Param grade_tier query string false "Grade tier (SMP, SMA, SMK)"
// @Param class_number query int false "Class number"
// @Param kind query string false "Assessment kind (practicum, exam)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Router /{collection} [get]
func (h *ContentHandler) List(c *gin.Context) {
	facets, err := h.parseFacets(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	records, syncErr := h.catalogService.Sync(c.Request.Context(), h.collection)
	stale := false
	if syncErr != nil {
		h.LogError(c, syncErr, "catalog sync failed, serving cached snapshot", "collection", h.collection)
		records = h.catalogService.Cached(h.collection)
		stale = true
	}

	filtered := h.catalogService.Filter(records, facets)

	// File payloads stay out of listings; clients fetch them per item.
	summaries := make([]models.ContentRecord, len(filtered))
	for i, record := range filtered {
		record.FileData = ""
		summaries[i] = record
	}

	c.JSON(http.StatusOK, gin.H{
		"items": summaries,
		"total": len(summaries),
		"stale": stale,
	})
}

// Get returns one content record including its file payload.
// @Summary Get content
// @Tags content
// @Produce json
// @Param id path string true "Content ID"
// @Success 200 {object} models.ContentRecord
// @Failure 404 {object} ErrorResponse
// @Router /{collection}/{id} [get]
func (h *ContentHandler) Get(c *gin.Context) {
	record, err := h.contentService.Download(c.Request.Context(), h.collection, c.Param("id"))
	if err != nil {
		h.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// DownloadFile streams the decoded file bytes as an attachment.
// @Summary Download content file
// @Tags content
// @Produce octet-stream
// @Param id path string true "Content ID"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse
// @Router /{collection}/{id}/download [get]
func (h *ContentHandler) DownloadFile(c *gin.Context) {
	record, err := h.contentService.Download(c.Request.Context(), h.collection, c.Param("id"))
	if err != nil {
		h.RespondServiceError(c, err)
		return
	}

	body, err := decodeDataURL(record.FileData)
	if err != nil {
		h.LogError(c, err, "stored file payload is corrupt", "content_id", record.ID)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "stored file payload is corrupt"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", record.FileName))
	c.Data(http.StatusOK, record.FileType, body)
}

// Delete removes a content record.
// @Summary Delete content
// @Tags content
// @Produce json
// @Param id path string true "Content ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /{collection}/{id} [delete]
func (h *ContentHandler) Delete(c *gin.Context) {
	deletedBy, err := AccountIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "not authenticated"})
		return
	}

	id := c.Param("id")
	h.LogRequest(c, "Deleting content", "collection", h.collection, "content_id", id)

	if err := h.contentService.Delete(c.Request.Context(), h.collection, id, deletedBy); err != nil {
		h.RespondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ContentHandler) parseFacets(c *gin.Context) (services.Facets, error) {
	facets := services.Facets{
		GradeTier: c.Query("grade_tier"),
	}

	if raw := c.Query("class_number"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return services.Facets{}, fmt.Errorf("class_number must be a number")
		}
		facets.ClassNumber = &n
	}

	if h.collection == models.CollectionAssessments {
		if kind := c.Query("kind"); kind != "" {
			k := models.AssessmentKind(kind)
			if !k.Valid() {
				return services.Facets{}, fmt.Errorf("kind must be practicum or exam")
			}
			facets.Kind = k
		}
	}

	return facets, nil
}

func decodeDataURL(dataURL string) ([]byte, error) {
	_, encoded, found := strings.Cut(dataURL, ";base64,")
	if !found {
		return nil, fmt.Errorf("not a base64 data url")
	}
	return base64.StdEncoding.DecodeString(encoded)
}
