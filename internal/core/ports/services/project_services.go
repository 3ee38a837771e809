package services

import (
	"context"

	"github.com/SscSPs/project_books/internal/core/domain"
	"github.com/SscSPs/project_books/internal/dto"
)

// ProjectReaderSvc defines read operations for projects
type ProjectReaderSvc interface {
	GetProject(ctx context.Context, projectID string) (*domain.Project, error)
	ListProjects(ctx context.Context) ([]domain.Project, error)
	GetProjectSummary(ctx context.Context, projectID string) (*domain.ProjectSummary, error)
}

// ProjectWriterSvc defines write operations for projects
type ProjectWriterSvc interface {
	CreateProject(ctx context.Context, req dto.CreateProjectRequest) (*domain.Project, error)
	UpdateProject(ctx context.Context, projectID string, req dto.UpdateProjectRequest) (*domain.Project, error)
	// DeactivateProject is refused while the project owns accounts or employees.
	DeactivateProject(ctx context.Context, projectID string) error
}

// ProjectAccessSvc guards project access with an optional PIN.
type ProjectAccessSvc interface {
	SetPIN(ctx context.Context, projectID string, pin string) error
	// VerifyPIN returns ErrUnauthorized on mismatch. Projects without a PIN
	// accept any input.
	VerifyPIN(ctx context.Context, projectID string, pin string) error
}

// ProjectSvcFacade combines all project-related service interfaces
type ProjectSvcFacade interface {
	ProjectReaderSvc
	ProjectWriterSvc
	ProjectAccessSvc
}
