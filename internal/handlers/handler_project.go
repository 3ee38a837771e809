package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/project_books/internal/core/ports/services"
	"github.com/SscSPs/project_books/internal/dto"
	"github.com/SscSPs/project_books/internal/middleware"
	"github.com/SscSPs/project_books/internal/platform/config"
	"github.com/SscSPs/project_books/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// projectHandler handles HTTP requests related to projects.
type projectHandler struct {
	projectService portssvc.ProjectSvcFacade
	cfg            *config.Config
}

func newProjectHandler(ps portssvc.ProjectSvcFacade, cfg *config.Config) *projectHandler {
	return &projectHandler{projectService: ps, cfg: cfg}
}

// registerAdminProjectRoutes registers the admin-token guarded routes.
func registerAdminProjectRoutes(rg *gin.RouterGroup, ps portssvc.ProjectSvcFacade) {
	h := newProjectHandler(ps, nil)

	projects := rg.Group("/projects")
	{
		projects.POST("", h.createProject)
		projects.GET("", h.listProjects)
		projects.DELETE("/:projectID", h.deactivateProject)
	}
}

// registerUnlockRoute registers POST /projects/:projectID/unlock.
func registerUnlockRoute(rg *gin.RouterGroup, cfg *config.Config, ps portssvc.ProjectSvcFacade, unlockLimiter *limiter.Limiter) {
	h := newProjectHandler(ps, cfg)
	rg.POST("/:projectID/unlock", middleware.RateLimit(unlockLimiter), h.unlock)
}

// registerProjectRoutes registers the session routes on the project group.
func registerProjectRoutes(project *gin.RouterGroup, ps portssvc.ProjectSvcFacade) {
	h := newProjectHandler(ps, nil)

	project.GET("", h.getProject)
	project.PUT("", h.updateProject)
	project.PUT("/pin", h.setPIN)
	project.GET("/summary", h.getSummary)
}

// createProject handles POST /admin/projects.
func (h *projectHandler) createProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	logger.Info("Received request to create project", slog.String("project_name", req.Name))
	project, err := h.projectService.CreateProject(c.Request.Context(), req)
	if err != nil {
		respondError(c, "create project", err)
		return
	}

	logger.Info("Project created successfully", slog.String("project_id", project.ProjectID))
	c.JSON(http.StatusCreated, project)
}

func (h *projectHandler) listProjects(c *gin.Context) {
	projects, err := h.projectService.ListProjects(c.Request.Context())
	if err != nil {
		respondError(c, "list projects", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

func (h *projectHandler) deactivateProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id := c.Param("projectID")

	if err := h.projectService.DeactivateProject(c.Request.Context(), id); err != nil {
		respondError(c, "deactivate project", err)
		return
	}
	logger.Info("Project deactivated", slog.String("project_id", id))
	c.Status(http.StatusNoContent)
}

// unlock verifies the PIN and issues a session token scoped to the project.
func (h *projectHandler) unlock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id := c.Param("projectID")

	var req dto.UnlockRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.projectService.VerifyPIN(c.Request.Context(), id, req.PIN); err != nil {
		respondError(c, "unlock project", err)
		return
	}

	token, expiresAt, err := utils.GenerateProjectToken(id, h.cfg.JWTSecret, h.cfg.JWTExpiryDuration, h.cfg.JWTIssuer)
	if err != nil {
		logger.Error("Failed to sign session token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unlock project"})
		return
	}

	logger.Info("Project unlocked", slog.String("project_id", id))
	c.JSON(http.StatusOK, dto.UnlockResponse{Token: token, ExpiresAt: expiresAt})
}

func (h *projectHandler) getProject(c *gin.Context) {
	project, err := h.projectService.GetProject(c.Request.Context(), projectID(c))
	if err != nil {
		respondError(c, "retrieve project", err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *projectHandler) updateProject(c *gin.Context) {
	var req dto.UpdateProjectRequest
	if !bindJSON(c, &req) {
		return
	}
	project, err := h.projectService.UpdateProject(c.Request.Context(), projectID(c), req)
	if err != nil {
		respondError(c, "update project", err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *projectHandler) setPIN(c *gin.Context) {
	var req dto.SetPINRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.projectService.SetPIN(c.Request.Context(), projectID(c), req.PIN); err != nil {
		respondError(c, "set project PIN", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *projectHandler) getSummary(c *gin.Context) {
	summary, err := h.projectService.GetProjectSummary(c.Request.Context(), projectID(c))
	if err != nil {
		respondError(c, "summarize project", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
