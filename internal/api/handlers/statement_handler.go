package handlers

import (
	"io"

	"carelens/internal/detector"
	"carelens/internal/dto"
	"carelens/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type StatementHandler struct {
	stService     *service.StatementService
	reportService *service.ReportService
	logger        *zap.Logger
}

func NewStatementHandler(stService *service.StatementService, reportService *service.ReportService, logger *zap.Logger) *StatementHandler {
	return &StatementHandler{
		stService:     stService,
		reportService: reportService,
		logger:        logger,
	}
}

// Upload godoc
// @Summary Upload statement files
// @Description Upload one or more statement files (CSV or PDF) into an analysis session. Works anonymously; attach a bearer token to tie the session to your account. Pass session_id to append to an existing session.
// @Tags statements
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Statement files"
// @Param session_id formData string false "Existing session to append to"
// @Success 201 {object} dto.UploadResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/sessions/upload [post]
func (h *StatementHandler) Upload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid multipart form",
		})
	}

	sessionID := uuid.Nil
	if raw := c.FormValue("session_id"); raw != "" {
		sessionID, err = uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid session_id",
			})
		}
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "At least one file is required",
		})
	}

	var files []service.UploadFile
	for _, fh := range fileHeaders {
		src, err := fh.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Failed to open file",
			})
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Failed to read file",
			})
		}
		files = append(files, service.UploadFile{Name: fh.Filename, Data: data})
	}

	userID := optionalUserID(c)
	resp, err := h.stService.Upload(c.Context(), userID, sessionID, files)
	if err != nil {
		h.logger.Error("Upload failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to process uploaded files",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetReport godoc
// @Summary Get the session report
// @Description Transactions, recomputed alerts and summary for a session
// @Tags statements
// @Produce json
// @Param id path string true "Session ID"
// @Param management query string false "Management mode: self or provider" default(self)
// @Success 200 {object} dto.ReportResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/sessions/{id} [get]
func (h *StatementHandler) GetReport(c *fiber.Ctx) error {
	resp, err := h.sessionReport(c)
	if resp == nil {
		return err
	}
	return c.JSON(resp)
}

// GetTransactions godoc
// @Summary List a session's transactions
// @Tags statements
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {array} dto.TransactionResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/sessions/{id}/transactions [get]
func (h *StatementHandler) GetTransactions(c *fiber.Ctx) error {
	resp, err := h.sessionReport(c)
	if resp == nil {
		return err
	}
	return c.JSON(resp.Transactions)
}

// GetAlerts godoc
// @Summary Get a session's alerts
// @Description Runs the overcharge audit over the session's transactions
// @Tags statements
// @Produce json
// @Param id path string true "Session ID"
// @Param management query string false "Management mode: self or provider" default(self)
// @Success 200 {array} dto.AlertResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/sessions/{id}/alerts [get]
func (h *StatementHandler) GetAlerts(c *fiber.Ctx) error {
	resp, err := h.sessionReport(c)
	if resp == nil {
		return err
	}
	return c.JSON(resp.Alerts)
}

// GetSummary godoc
// @Summary Get a session's summary
// @Description Category, month and alert aggregates for a session
// @Tags statements
// @Produce json
// @Param id path string true "Session ID"
// @Param management query string false "Management mode: self or provider" default(self)
// @Success 200 {object} summary.Summary
// @Failure 404 {object} map[string]string
// @Router /api/v1/sessions/{id}/summary [get]
func (h *StatementHandler) GetSummary(c *fiber.Ctx) error {
	resp, err := h.sessionReport(c)
	if resp == nil {
		return err
	}
	return c.JSON(resp.Summary)
}

// sessionReport resolves the session and builds the full report. On
// failure the error response has already been written and the returned
// report is nil.
func (h *StatementHandler) sessionReport(c *fiber.Ctx) (*dto.ReportResponse, error) {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session ID",
		})
	}

	resp, err := h.reportService.GetReport(c.Context(), sessionID, optionalUserID(c), managementMode(c))
	if err != nil {
		if err == service.ErrSessionNotFound {
			return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Session not found",
			})
		}
		h.logger.Error("Report build failed", zap.Error(err))
		return nil, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build report",
		})
	}

	return resp, nil
}

// Export godoc
// @Summary Export the session report
// @Description Download the report as csv, xlsx or pdf
// @Tags statements
// @Produce octet-stream
// @Param id path string true "Session ID"
// @Param format path string true "Export format: csv, xlsx or pdf"
// @Param management query string false "Management mode: self or provider" default(self)
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string
// @Router /api/v1/sessions/{id}/export/{format} [get]
func (h *StatementHandler) Export(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session ID",
		})
	}

	format := service.ExportFormat(c.Params("format"))
	result, err := h.reportService.Export(c.Context(), sessionID, format, managementMode(c))
	if err != nil {
		switch err {
		case service.ErrSessionNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Session not found",
			})
		case service.ErrUnsupportedFormat:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unsupported export format",
			})
		}
		h.logger.Error("Export failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to export report",
		})
	}

	c.Set(fiber.HeaderContentType, result.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+result.FileName+`"`)
	return c.Send(result.Data)
}

// DeleteSession godoc
// @Summary Delete a session
// @Description Remove a session's transactions and provenance records
// @Tags statements
// @Produce json
// @Param id path string true "Session ID"
// @Security Bearer
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/sessions/{id} [delete]
func (h *StatementHandler) DeleteSession(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session ID",
		})
	}

	if err := h.stService.DeleteSession(c.Context(), sessionID); err != nil {
		h.logger.Error("Session delete failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete session",
		})
	}

	return c.JSON(fiber.Map{"status": "deleted"})
}

// managementMode reads the management query parameter, defaulting to
// self-managed.
func managementMode(c *fiber.Ctx) detector.ManagementMode {
	if c.Query("management") == string(detector.ModeProvider) {
		return detector.ModeProvider
	}
	return detector.ModeSelf
}

// optionalUserID resolves the authenticated user if a valid token was
// presented, uuid.Nil otherwise. Upload and report routes work both ways.
func optionalUserID(c *fiber.Ctx) uuid.UUID {
	userIDStr, ok := c.Locals("userID").(string)
	if !ok {
		return uuid.Nil
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil
	}
	return userID
}
