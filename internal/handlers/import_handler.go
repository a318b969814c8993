package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/NH-Portal/portal-service/internal/services"
	"github.com/NH-Portal/portal-service/internal/utils"
)

type ImportHandler struct {
	BaseHandler
	importService services.ImportService
}

func NewImportHandler(importService services.ImportService, logger utils.Logger) *ImportHandler {
	return &ImportHandler{
		BaseHandler:   NewBaseHandler(logger),
		importService: importService,
	}
}

type importRequest struct {
	Rows string `json:"rows"`
}

// ImportAccounts runs a bulk account import from delimited text rows.
// The response always carries aggregate counts; individual row failures
// never abort the batch.
// @Summary Bulk import accounts
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body importRequest true "Delimited account rows"
// @Success 200 {object} models.ImportResult
// @Failure 400 {object} ErrorResponse
// @Router /accounts/import [post]
func (h *ImportHandler) ImportAccounts(c *gin.Context) {
	importedBy, err := AccountIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "not authenticated"})
		return
	}

	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}
	if strings.TrimSpace(req.Rows) == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "rows field is required"})
		return
	}

	h.LogRequest(c, "Importing accounts", "imported_by", importedBy)

	result := h.importService.ImportAccounts(c.Request.Context(), req.Rows, importedBy)
	c.JSON(http.StatusOK, result)
}

// ImportAccountsXLSX runs the bulk import over an uploaded spreadsheet.
// @Summary Bulk import accounts from a spreadsheet
// @Tags accounts
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Spreadsheet with account rows"
// @Success 200 {object} models.ImportResult
// @Failure 400 {object} ErrorResponse
// @Router /accounts/import/xlsx [post]
func (h *ImportHandler) ImportAccountsXLSX(c *gin.Context) {
	importedBy, err := AccountIDFromContext(c)
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

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "failed to open uploaded file",
			Details: err.Error(),
		})
		return
	}
	defer file.Close()

	h.LogRequest(c, "Importing accounts from spreadsheet",
		"imported_by", importedBy,
		"file_name", fileHeader.Filename,
	)

	result, err := h.importService.ImportAccountsXLSX(c.Request.Context(), file, importedBy)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "failed to parse spreadsheet",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}
