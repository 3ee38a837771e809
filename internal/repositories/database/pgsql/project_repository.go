package pgsql

import (
	"context"

	"github.com/SscSPs/project_books/internal/core/domain"
	portsrepo "github.com/SscSPs/project_books/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

type PgxProjectRepository struct {
	BaseRepository
}

var _ portsrepo.ProjectRepositoryFacade = (*PgxProjectRepository)(nil)

const projectColumns = `project_id, name, name_alt, phase, owner_capital, pin_hash, is_active, created_at, last_updated_at`

func scanProject(row rowScanner) (domain.Project, error) {
	var p domain.Project
	err := row.Scan(&p.ProjectID, &p.Name, &p.NameAlt, &p.Phase, &p.OwnerCapital, &p.PINHash, &p.IsActive, &p.CreatedAt, &p.LastUpdatedAt)
	return p, err
}

func (r *PgxProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db(ctx).Exec(ctx, query,
		project.ProjectID, project.Name, project.NameAlt, project.Phase, project.OwnerCapital,
		project.PINHash, project.IsActive, project.CreatedAt, project.LastUpdatedAt)
	if err != nil {
		return writeError("failed to save project "+project.ProjectID, err)
	}
	return nil
}

func (r *PgxProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE project_id = $1`
	p, err := scanProject(r.db(ctx).QueryRow(ctx, query, projectID))
	if err != nil {
		return nil, readError("project "+projectID, err)
	}
	return &p, nil
}

func (r *PgxProjectRepository) ListProjects(ctx context.Context, activeOnly bool) ([]domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE ($1 = FALSE OR is_active) ORDER BY name, project_id`
	rows, err := r.db(ctx).Query(ctx, query, activeOnly)
	if err != nil {
		return nil, readError("failed to list projects", err)
	}
	projects, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Project, error) {
		return scanProject(row)
	})
	if err != nil {
		return nil, readError("failed to scan projects", err)
	}
	return projects, nil
}

func (r *PgxProjectRepository) CountProjectDependents(ctx context.Context, projectID string) (int, int, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM accounts WHERE project_id = $1),
			(SELECT COUNT(*) FROM employees WHERE project_id = $1)`
	var accounts, employees int
	if err := r.db(ctx).QueryRow(ctx, query, projectID).Scan(&accounts, &employees); err != nil {
		return 0, 0, readError("failed to count project dependents", err)
	}
	return accounts, employees, nil
}

func (r *PgxProjectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	query := `
		UPDATE projects
		SET name = $2, name_alt = $3, phase = $4, owner_capital = $5, pin_hash = $6, is_active = $7, last_updated_at = $8
		WHERE project_id = $1`
	tag, err := r.db(ctx).Exec(ctx, query,
		project.ProjectID, project.Name, project.NameAlt, project.Phase, project.OwnerCapital,
		project.PINHash, project.IsActive, project.LastUpdatedAt)
	if err != nil {
		return writeError("failed to update project "+project.ProjectID, err)
	}
	return requireRow(tag, "project", project.ProjectID)
}
