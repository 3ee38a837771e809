package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/project_books/internal/core/ports/services"
	"github.com/SscSPs/project_books/internal/dto"
	"github.com/SscSPs/project_books/internal/middleware"
	"github.com/SscSPs/project_books/internal/utils"
	"github.com/gin-gonic/gin"
)

// loanHandler handles loans and their repayments.
type loanHandler struct {
	loanService portssvc.LoanSvcFacade
}

func registerLoanRoutes(rg *gin.RouterGroup, loanService portssvc.LoanSvcFacade) {
	h := &loanHandler{loanService: loanService}

	loans := rg.Group("/loans")
	{
		loans.POST("", h.createLoan)
		loans.GET("", h.listLoans)
		loans.GET("/:loanID", h.getLoan)
		loans.DELETE("/:loanID", h.deleteLoan)
		loans.POST("/:loanID/payments", h.recordPayment)
	}
}

func (h *loanHandler) createLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateLoanRequest
	if !bindJSON(c, &req) {
		return
	}
	loan, err := h.loanService.CreateLoan(c.Request.Context(), projectID(c), req)
	if err != nil {
		respondError(c, "record loan", err)
		return
	}
	logger.Info("Loan recorded", slog.String("loan_id", loan.LoanID), slog.String("amount", utils.FormatAmount(loan.Amount)))
	c.JSON(http.StatusCreated, loan)
}

func (h *loanHandler) getLoan(c *gin.Context) {
	detail, err := h.loanService.GetLoan(c.Request.Context(), projectID(c), c.Param("loanID"))
	if err != nil {
		respondError(c, "retrieve loan", err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *loanHandler) deleteLoan(c *gin.Context) {
	if err := h.loanService.DeleteLoan(c.Request.Context(), projectID(c), c.Param("loanID")); err != nil {
		respondError(c, "delete loan", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *loanHandler) recordPayment(c *gin.Context) {
	var req dto.LoanPaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	loan, err := h.loanService.RecordPayment(c.Request.Context(), projectID(c), c.Param("loanID"), req)
	if err != nil {
		respondError(c, "record loan payment", err)
		return
	}
	c.JSON(http.StatusOK, loan)
}

func (h *loanHandler) listLoans(c *gin.Context) {
	var params dto.ListLoansParams
	if !bindQuery(c, &params) {
		return
	}
	resp, err := h.loanService.ListLoans(c.Request.Context(), projectID(c), params)
	if err != nil {
		respondError(c, "list loans", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
