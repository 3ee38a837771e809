package memory

import (
	"context"
	"sort"

	"github.com/SscSPs/project_books/internal/apperrors"
	"github.com/SscSPs/project_books/internal/core/domain"
)

func (s *Store) SaveProject(ctx context.Context, project domain.Project) error {
	defer s.lock(ctx)()
	if _, ok := s.data.projects[project.ProjectID]; ok {
		return apperrors.ErrDuplicate
	}
	s.data.projects[project.ProjectID] = project
	return nil
}

func (s *Store) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	defer s.lock(ctx)()
	p, ok := s.data.projects[projectID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &p, nil
}

func (s *Store) UpdateProject(ctx context.Context, project domain.Project) error {
	defer s.lock(ctx)()
	if _, ok := s.data.projects[project.ProjectID]; !ok {
		return apperrors.ErrNotFound
	}
	s.data.projects[project.ProjectID] = project
	return nil
}

func (s *Store) ListProjects(ctx context.Context, activeOnly bool) ([]domain.Project, error) {
	defer s.lock(ctx)()
	out := make([]domain.Project, 0, len(s.data.projects))
	for _, p := range s.data.projects {
		if activeOnly && !p.IsActive {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ProjectID < out[j].ProjectID
	})
	return out, nil
}

func (s *Store) CountProjectDependents(ctx context.Context, projectID string) (int, int, error) {
	defer s.lock(ctx)()
	accounts, employees := 0, 0
	for _, a := range s.data.accounts {
		if a.ProjectID == projectID {
			accounts++
		}
	}
	for _, e := range s.data.employees {
		if e.ProjectID == projectID {
			employees++
		}
	}
	return accounts, employees, nil
}
