package repositories

import (
	"context"

	"github.com/SscSPs/project_books/internal/core/domain"
)

// ProjectReader defines read operations for project data
type ProjectReader interface {
	// FindProjectByID retrieves a project regardless of its active flag.
	FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error)

	// ListProjects retrieves projects ordered by name.
	ListProjects(ctx context.Context, activeOnly bool) ([]domain.Project, error)

	// CountProjectDependents returns how many accounts and employees reference
	// the project, active or not.
	CountProjectDependents(ctx context.Context, projectID string) (accounts int, employees int, err error)
}

// ProjectWriter defines write operations for project data
type ProjectWriter interface {
	SaveProject(ctx context.Context, project domain.Project) error
	UpdateProject(ctx context.Context, project domain.Project) error
}

// ProjectRepositoryFacade combines all project-related repository interfaces
type ProjectRepositoryFacade interface {
	ProjectReader
	ProjectWriter
}
