package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/egrafes/egrafes-backend/internal/middleware"
	"github.com/egrafes/egrafes-backend/internal/model"
	"github.com/egrafes/egrafes-backend/internal/response"
	"github.com/egrafes/egrafes-backend/internal/service"
	"github.com/egrafes/egrafes-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// warnStaleEditTarget is shown when the record targeted for editing vanished
// between load and save and a new record was created instead.
const warnStaleEditTarget = "Η εγγραφή προς επεξεργασία δεν βρέθηκε. Δημιουργήθηκε νέα εγγραφή."

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// RecordHandler handles the registration form endpoints: list, save, delete,
// edit lifecycle and spreadsheet export.
type RecordHandler struct {
	recordService *service.RecordService
	exportService *service.ExportService
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(recordService *service.RecordService, exportService *service.ExportService) *RecordHandler {
	return &RecordHandler{
		recordService: recordService,
		exportService: exportService,
	}
}

// ListRecords godoc
// GET /api/v1/records
// Returns the authenticated user's full record set in file order.
func (h *RecordHandler) ListRecords(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	records, err := h.recordService.List(c.Request.Context(), claims)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrStorage)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"records": records})
}

// SaveRecord godoc
// POST /api/v1/records
// Persists one form submission. Whether it creates a new record or updates
// an existing one is decided by the session's edit target. A stale edit
// target degrades to create-new and surfaces a non-fatal warning.
func (h *RecordHandler) SaveRecord(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.SaveRecordRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	rec, stale, err := h.recordService.Save(c.Request.Context(), claims, req.Fields())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrStorage)
		return
	}

	if stale {
		response.SuccessWithWarning(c, http.StatusOK, gin.H{"record": rec}, warnStaleEditTarget)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"record": rec})
}

// DeleteRecord godoc
// DELETE /api/v1/records/:id
// Removes one record by identifier.
func (h *RecordHandler) DeleteRecord(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	id := c.Param("id")
	if err := h.recordService.Delete(c.Request.Context(), claims, id); err != nil {
		if errors.Is(err, service.ErrRecordNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrStorage)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

// BeginEdit godoc
// POST /api/v1/records/:id/edit
// Marks a record as the session's edit target and returns it as the form
// prefill.
func (h *RecordHandler) BeginEdit(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	rec, err := h.recordService.BeginEdit(c.Request.Context(), claims, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrRecordNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"prefill": rec})
}

// CancelEdit godoc
// POST /api/v1/records/edit/cancel
// Clears the session's edit target; the next save creates a new record.
func (h *RecordHandler) CancelEdit(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.recordService.CancelEdit(c.Request.Context(), claims); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// ExportRecords godoc
// GET /api/v1/records/export
// Streams the record set as an xlsx workbook.
func (h *RecordHandler) ExportRecords(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	records, err := h.recordService.List(c.Request.Context(), claims)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrStorage)
		return
	}

	data, err := h.exportService.Export(records)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrExportFailed)
		return
	}

	filename := fmt.Sprintf("%s_%s_students.xlsx", claims.SchoolCode, claims.Username)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
