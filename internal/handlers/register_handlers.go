package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/project_books/internal/core/ports/services"
	"github.com/SscSPs/project_books/internal/middleware"
	"github.com/SscSPs/project_books/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	unlockLimiter *limiter.Limiter,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	v1 := r.Group("/api/v1")

	// Project administration: creation, listing and deactivation.
	admin := v1.Group("/admin", middleware.AdminTokenMiddleware(cfg.AdminToken))
	registerAdminProjectRoutes(admin, services.Project)

	// Unlock is public but rate limited per client and project.
	projects := v1.Group("/projects")
	registerUnlockRoute(projects, cfg, services.Project, unlockLimiter)

	// Everything else requires a session token for the path project.
	project := projects.Group("/:projectID", middleware.ProjectAuthMiddleware(cfg.JWTSecret))
	setupProjectRoutes(project, services)
}

// setupProjectRoutes delegates to the per-aggregate route registrations.
func setupProjectRoutes(project *gin.RouterGroup, services *portssvc.ServiceContainer) {
	registerProjectRoutes(project, services.Project)
	registerAccountRoutes(project, services.Account)
	registerIncomeRoutes(project, services.Income)
	registerExpenseRoutes(project, services.Expense)
	registerCategoryRoutes(project, services.Category)
	registerEmployeeRoutes(project, services.Employee)
	registerDebtRoutes(project, services.Debt)
	registerLoanRoutes(project, services.Loan)
	registerStatementRoutes(project, services.Statements)
}
