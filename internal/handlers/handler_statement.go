package handlers

import (
	"net/http"

	"github.com/SscSPs/project_books/internal/core/domain"
	portssvc "github.com/SscSPs/project_books/internal/core/ports/services"
	"github.com/SscSPs/project_books/internal/dto"
	"github.com/gin-gonic/gin"
)

// statementHandler serves statements and the dashboard.
type statementHandler struct {
	statementService portssvc.StatementSvc
}

func registerStatementRoutes(rg *gin.RouterGroup, statementService portssvc.StatementSvc) {
	h := &statementHandler{statementService: statementService}

	rg.GET("/dashboard", h.getDashboard)
	rg.GET("/statements/:name", h.getStatement)
}

// getStatement handles GET /statements/:name?period=month&start_date=...&end_date=...&account_id=...
// Period parameters are ignored by the point-in-time statements.
func (h *statementHandler) getStatement(c *gin.Context) {
	var q dto.PeriodQuery
	if !bindQuery(c, &q) {
		return
	}
	name := domain.StatementName(c.Param("name"))
	result, err := h.statementService.GetStatement(c.Request.Context(), projectID(c), name, q)
	if err != nil {
		respondError(c, "compose statement "+string(name), err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *statementHandler) getDashboard(c *gin.Context) {
	var q dto.PeriodQuery
	if !bindQuery(c, &q) {
		return
	}
	dashboard, err := h.statementService.Dashboard(c.Request.Context(), projectID(c), q)
	if err != nil {
		respondError(c, "build dashboard", err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
