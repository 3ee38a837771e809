package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/SscSPs/project_books/internal/core/ports/services"
	"github.com/SscSPs/project_books/internal/dto"
	"github.com/SscSPs/project_books/internal/middleware"
	"github.com/gin-gonic/gin"
)

// debtHandler handles debts and their settlements.
type debtHandler struct {
	debtService portssvc.DebtSvcFacade
}

func registerDebtRoutes(rg *gin.RouterGroup, debtService portssvc.DebtSvcFacade) {
	h := &debtHandler{debtService: debtService}

	debts := rg.Group("/debts")
	{
		debts.POST("", h.createDebt)
		debts.GET("", h.listDebts)
		debts.GET("/upcoming", h.listUpcoming)
		debts.GET("/overdue", h.listOverdue)
		debts.GET("/:debtID", h.getDebt)
		debts.PUT("/:debtID", h.updateDebt)
		debts.DELETE("/:debtID", h.deleteDebt)
		debts.POST("/:debtID/payments", h.recordPayment)
	}
}

func (h *debtHandler) createDebt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDebtRequest
	if !bindJSON(c, &req) {
		return
	}
	debt, err := h.debtService.CreateDebt(c.Request.Context(), projectID(c), req)
	if err != nil {
		respondError(c, "record debt", err)
		return
	}
	logger.Info("Debt recorded", slog.String("debt_id", debt.DebtID), slog.String("debt_type", string(debt.DebtType)))
	c.JSON(http.StatusCreated, debt)
}

func (h *debtHandler) getDebt(c *gin.Context) {
	detail, err := h.debtService.GetDebt(c.Request.Context(), projectID(c), c.Param("debtID"))
	if err != nil {
		respondError(c, "retrieve debt", err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *debtHandler) updateDebt(c *gin.Context) {
	var req dto.UpdateDebtRequest
	if !bindJSON(c, &req) {
		return
	}
	debt, err := h.debtService.UpdateDebt(c.Request.Context(), projectID(c), c.Param("debtID"), req)
	if err != nil {
		respondError(c, "update debt", err)
		return
	}
	c.JSON(http.StatusOK, debt)
}

func (h *debtHandler) deleteDebt(c *gin.Context) {
	if err := h.debtService.DeleteDebt(c.Request.Context(), projectID(c), c.Param("debtID")); err != nil {
		respondError(c, "delete debt", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *debtHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.DebtPaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	debt, err := h.debtService.RecordPayment(c.Request.Context(), projectID(c), c.Param("debtID"), req)
	if err != nil {
		respondError(c, "record debt payment", err)
		return
	}
	logger.Info("Debt payment recorded", slog.String("debt_id", debt.DebtID), slog.String("status", string(debt.PaymentStatus)))
	c.JSON(http.StatusOK, debt)
}

func (h *debtHandler) listDebts(c *gin.Context) {
	var params dto.ListDebtsParams
	if !bindQuery(c, &params) {
		return
	}
	resp, err := h.debtService.ListDebts(c.Request.Context(), projectID(c), params)
	if err != nil {
		respondError(c, "list debts", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// listUpcoming accepts an optional ?days=N; otherwise the configured window applies.
func (h *debtHandler) listUpcoming(c *gin.Context) {
	days := 0
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a non-negative integer"})
			return
		}
		days = n
	}
	debts, err := h.debtService.ListUpcoming(c.Request.Context(), projectID(c), days)
	if err != nil {
		respondError(c, "list upcoming debts", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"debts": debts})
}

func (h *debtHandler) listOverdue(c *gin.Context) {
	debts, err := h.debtService.ListOverdue(c.Request.Context(), projectID(c))
	if err != nil {
		respondError(c, "list overdue debts", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"debts": debts})
}
