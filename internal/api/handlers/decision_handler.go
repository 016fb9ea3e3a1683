package handlers

import (
	"carelens/internal/dto"
	"carelens/internal/repository"
	"carelens/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DecisionHandler struct {
	decisionService *service.DecisionService
	stService       *service.StatementService
	logger          *zap.Logger
}

func NewDecisionHandler(decisionService *service.DecisionService, stService *service.StatementService, logger *zap.Logger) *DecisionHandler {
	return &DecisionHandler{
		decisionService: decisionService,
		stService:       stService,
		logger:          logger,
	}
}

// Decide godoc
// @Summary Record a decision on a transaction
// @Description Approve, dispute or mark a transaction as not-sure; feeds the per-category memory
// @Tags decisions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body dto.DecideRequest true "Decision"
// @Security Bearer
// @Success 200 {object} dto.DecideResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/transactions/{id}/decision [post]
func (h *DecisionHandler) Decide(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	transactionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid transaction ID",
		})
	}

	var req dto.DecideRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.decisionService.Decide(c.Context(), userID, transactionID, &req)
	if err != nil {
		switch err {
		case service.ErrInvalidDecision:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid decision",
			})
		case repository.ErrTransactionNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Transaction not found",
			})
		}
		h.logger.Error("Decision failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to record decision",
		})
	}

	return c.JSON(resp)
}

// GetSuggestion godoc
// @Summary Get the suggested decision for a transaction
// @Description Learned default for the transaction's category, null when history is too thin
// @Tags decisions
// @Produce json
// @Param id path string true "Transaction ID"
// @Security Bearer
// @Success 200 {object} models.MemorySuggestion
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/transactions/{id}/suggestion [get]
func (h *DecisionHandler) GetSuggestion(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	transactionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid transaction ID",
		})
	}

	suggestion, err := h.decisionService.SuggestionFor(c.Context(), userID, transactionID)
	if err != nil {
		if err == repository.ErrTransactionNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Transaction not found",
			})
		}
		h.logger.Error("Suggestion lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load suggestion",
		})
	}

	return c.JSON(suggestion)
}

// GetMemory godoc
// @Summary Get decision memory
// @Description Learned per-category decision counters for the authenticated user
// @Tags decisions
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.MemoryResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/users/me/memory [get]
func (h *DecisionHandler) GetMemory(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	resp, err := h.decisionService.GetMemory(c.Context(), userID)
	if err != nil {
		h.logger.Error("Memory fetch failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load decision memory",
		})
	}

	return c.JSON(resp)
}

// ClearMemory godoc
// @Summary Reset decision memory
// @Description Reset the learned per-category counters; individual decisions are kept
// @Tags decisions
// @Produce json
// @Security Bearer
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/users/me/memory [delete]
func (h *DecisionHandler) ClearMemory(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	if err := h.decisionService.ClearMemory(c.Context(), userID); err != nil {
		h.logger.Error("Memory reset failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to reset decision memory",
		})
	}

	return c.JSON(fiber.Map{"status": "cleared"})
}

// DeleteUserData godoc
// @Summary Delete all own data
// @Description Remove every transaction, statement record, decision and memory entry stored for the authenticated user
// @Tags account
// @Produce json
// @Security Bearer
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/users/me/data [delete]
func (h *DecisionHandler) DeleteUserData(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	if err := h.stService.DeleteUserData(c.Context(), userID); err != nil {
		h.logger.Error("User data delete failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete user data",
		})
	}
	if err := h.decisionService.DeleteUserData(c.Context(), userID); err != nil {
		h.logger.Error("User decision delete failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete user data",
		})
	}

	return c.JSON(fiber.Map{"status": "deleted"})
}
