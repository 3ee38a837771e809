package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/project_books/internal/core/ports/services"
	"github.com/SscSPs/project_books/internal/dto"
	"github.com/SscSPs/project_books/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
	}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	rg.GET("/account-types", h.listAccountTypes)
	rg.POST("/rebuild-balances", h.rebuildBalances)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountID", h.getAccount)
		accounts.PUT("/:accountID", h.updateAccount)
		accounts.DELETE("/:accountID", h.deactivateAccount)
		accounts.GET("/:accountID/balance", h.getAccountBalance)
	}
}

// createAccount handles POST /projects/:projectID/accounts.
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if !bindJSON(c, &req) {
		return
	}

	logger.Info("Received request to create account", slog.String("account_name", req.Name))

	newAccount, err := h.accountService.CreateAccount(c.Request.Context(), projectID(c), req)
	if err != nil {
		respondError(c, "create account", err)
		return
	}

	logger.Info("Account created successfully", slog.String("account_id", newAccount.AccountID))
	c.JSON(http.StatusCreated, newAccount)
}

// getAccount handles GET /projects/:projectID/accounts/:accountID.
func (h *accountHandler) getAccount(c *gin.Context) {
	account, err := h.accountService.GetAccountByID(c.Request.Context(), projectID(c), c.Param("accountID"))
	if err != nil {
		respondError(c, "retrieve account", err)
		return
	}
	c.JSON(http.StatusOK, account)
}

// listAccounts returns the active accounts of the project.
func (h *accountHandler) listAccounts(c *gin.Context) {
	accounts, err := h.accountService.ListAccounts(c.Request.Context(), projectID(c))
	if err != nil {
		respondError(c, "list accounts", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": accounts})
}

func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")
	var req dto.UpdateAccountRequest
	if !bindJSON(c, &req) {
		return
	}

	logger = logger.With(slog.String("target_account_id", accountID))
	logger.Info("Received request to update account")

	updatedAccount, err := h.accountService.UpdateAccount(c.Request.Context(), projectID(c), accountID, req)
	if err != nil {
		respondError(c, "update account", err)
		return
	}

	logger.Info("Account updated successfully")
	c.JSON(http.StatusOK, updatedAccount)
}

// deactivateAccount soft-deletes an account; its history stays in the ledger.
func (h *accountHandler) deactivateAccount(c *gin.Context) {
	if err := h.accountService.DeactivateAccount(c.Request.Context(), projectID(c), c.Param("accountID")); err != nil {
		respondError(c, "deactivate account", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *accountHandler) getAccountBalance(c *gin.Context) {
	balance, err := h.accountService.GetAccountBalance(c.Request.Context(), projectID(c), c.Param("accountID"))
	if err != nil {
		respondError(c, "calculate account balance", err)
		return
	}
	c.JSON(http.StatusOK, balance)
}

func (h *accountHandler) listAccountTypes(c *gin.Context) {
	types, err := h.accountService.ListAccountTypes(c.Request.Context())
	if err != nil {
		respondError(c, "list account types", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accountTypes": types})
}

// rebuildBalances recomputes every cached balance of the project from history.
func (h *accountHandler) rebuildBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if err := h.accountService.RebuildBalances(c.Request.Context(), projectID(c)); err != nil {
		respondError(c, "rebuild balances", err)
		return
	}
	logger.Info("Account balances rebuilt")
	c.Status(http.StatusNoContent)
}
