package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/project_books/internal/core/ports/services"
	"github.com/SscSPs/project_books/internal/dto"
	"github.com/SscSPs/project_books/internal/middleware"
	"github.com/gin-gonic/gin"
)

// incomeHandler handles HTTP requests related to income transactions.
type incomeHandler struct {
	incomeService portssvc.IncomeSvc
}

func registerIncomeRoutes(rg *gin.RouterGroup, incomeService portssvc.IncomeSvc) {
	h := &incomeHandler{incomeService: incomeService}

	income := rg.Group("/income")
	{
		income.POST("", h.createIncome)
		income.GET("", h.listIncome)
		income.GET("/:transactionID", h.getIncome)
		income.PUT("/:transactionID", h.updateIncome)
		income.DELETE("/:transactionID", h.deleteIncome)
	}
}

func (h *incomeHandler) createIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateIncomeRequest
	if !bindJSON(c, &req) {
		return
	}

	txn, err := h.incomeService.CreateIncome(c.Request.Context(), projectID(c), req)
	if err != nil {
		respondError(c, "record income", err)
		return
	}

	logger.Info("Income recorded", slog.String("transaction_id", txn.TransactionID), slog.String("amount", txn.Amount.String()))
	c.JSON(http.StatusCreated, txn)
}

func (h *incomeHandler) getIncome(c *gin.Context) {
	txn, err := h.incomeService.GetIncome(c.Request.Context(), projectID(c), c.Param("transactionID"))
	if err != nil {
		respondError(c, "retrieve income", err)
		return
	}
	c.JSON(http.StatusOK, txn)
}

func (h *incomeHandler) updateIncome(c *gin.Context) {
	var req dto.UpdateIncomeRequest
	if !bindJSON(c, &req) {
		return
	}
	txn, err := h.incomeService.UpdateIncome(c.Request.Context(), projectID(c), c.Param("transactionID"), req)
	if err != nil {
		respondError(c, "update income", err)
		return
	}
	c.JSON(http.StatusOK, txn)
}

func (h *incomeHandler) deleteIncome(c *gin.Context) {
	if err := h.incomeService.DeleteIncome(c.Request.Context(), projectID(c), c.Param("transactionID")); err != nil {
		respondError(c, "delete income", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// listIncome returns one page, newest first. Pass nextToken from the previous
// page to continue.
func (h *incomeHandler) listIncome(c *gin.Context) {
	var params dto.ListTransactionsParams
	if !bindQuery(c, &params) {
		return
	}
	resp, err := h.incomeService.ListIncome(c.Request.Context(), projectID(c), params)
	if err != nil {
		respondError(c, "list income", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// expenseHandler handles HTTP requests related to expense transactions.
type expenseHandler struct {
	expenseService portssvc.ExpenseSvc
}

func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvc) {
	h := &expenseHandler{expenseService: expenseService}

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.createExpense)
		expenses.GET("", h.listExpenses)
		expenses.GET("/:transactionID", h.getExpense)
		expenses.PUT("/:transactionID", h.updateExpense)
		expenses.DELETE("/:transactionID", h.deleteExpense)
	}
}

func (h *expenseHandler) createExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExpenseRequest
	if !bindJSON(c, &req) {
		return
	}

	txn, err := h.expenseService.CreateExpense(c.Request.Context(), projectID(c), req)
	if err != nil {
		respondError(c, "record expense", err)
		return
	}

	logger.Info("Expense recorded", slog.String("transaction_id", txn.TransactionID), slog.String("amount", txn.Amount.String()))
	c.JSON(http.StatusCreated, txn)
}

func (h *expenseHandler) getExpense(c *gin.Context) {
	txn, err := h.expenseService.GetExpense(c.Request.Context(), projectID(c), c.Param("transactionID"))
	if err != nil {
		respondError(c, "retrieve expense", err)
		return
	}
	c.JSON(http.StatusOK, txn)
}

func (h *expenseHandler) updateExpense(c *gin.Context) {
	var req dto.UpdateExpenseRequest
	if !bindJSON(c, &req) {
		return
	}
	txn, err := h.expenseService.UpdateExpense(c.Request.Context(), projectID(c), c.Param("transactionID"), req)
	if err != nil {
		respondError(c, "update expense", err)
		return
	}
	c.JSON(http.StatusOK, txn)
}

func (h *expenseHandler) deleteExpense(c *gin.Context) {
	if err := h.expenseService.DeleteExpense(c.Request.Context(), projectID(c), c.Param("transactionID")); err != nil {
		respondError(c, "delete expense", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *expenseHandler) listExpenses(c *gin.Context) {
	var params dto.ListTransactionsParams
	if !bindQuery(c, &params) {
		return
	}
	resp, err := h.expenseService.ListExpenses(c.Request.Context(), projectID(c), params)
	if err != nil {
		respondError(c, "list expenses", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// registerCategoryRoutes exposes the shared category lookups.
func registerCategoryRoutes(rg *gin.RouterGroup, categoryService portssvc.CategorySvc) {
	categories := rg.Group("/categories")
	categories.GET("/income", func(c *gin.Context) {
		cats, err := categoryService.ListIncomeCategories(c.Request.Context())
		if err != nil {
			respondError(c, "list income categories", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": cats})
	})
	categories.GET("/expense", func(c *gin.Context) {
		cats, err := categoryService.ListExpenseCategories(c.Request.Context())
		if err != nil {
			respondError(c, "list expense categories", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": cats})
	})
}
