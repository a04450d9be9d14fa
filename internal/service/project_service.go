package service

import (
	"context"
	"errors"
	"strings"

	"github.com/lumenhq/lumen-backend/internal/common"
	"github.com/lumenhq/lumen-backend/internal/domain"
	"github.com/lumenhq/lumen-backend/internal/repository"
	"github.com/lumenhq/lumen-backend/pkg/cache"
	"gorm.io/gorm"
)

// ProjectListResult is a page of projects with pagination metadata
type ProjectListResult struct {
	Projects   []*domain.Project `json:"projects"`
	Pagination common.Pagination `json:"pagination"`
}

// ProjectService handles project submission and listing
type ProjectService struct {
	repo  repository.ProjectRepository
	cache cache.Service
}

// NewProjectService creates the project service
func NewProjectService(repo repository.ProjectRepository, cacheService cache.Service) *ProjectService {
	return &ProjectService{repo: repo, cache: cacheService}
}

// Create stores a new project in pending status
func (s *ProjectService) Create(ctx context.Context, ownerID uint, ownerName, title, description, repoURL string) (*domain.Project, error) {
	title = strings.TrimSpace(title)
	if title == "" || strings.TrimSpace(description) == "" {
		return nil, common.ErrInvalidInput
	}

	project := &domain.Project{
		OwnerID:     ownerID,
		OwnerName:   ownerName,
		Title:       title,
		Description: description,
		RepoURL:     strings.TrimSpace(repoURL),
		Status:      domain.StatusPending,
	}
	if err := s.repo.Create(project); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return project, nil
}

// Get loads one project
func (s *ProjectService) Get(id uint) (*domain.Project, error) {
	project, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return project, nil
}

// ListPublic returns approved projects, featured first
func (s *ProjectService) ListPublic(ctx context.Context, q repository.ListQuery) (*ProjectListResult, error) {
	q.Normalize()
	fingerprint := "public:" + q.Fingerprint()

	if s.cache != nil && s.cache.IsAvailable() {
		var cached ProjectListResult
		if err := s.cache.GetList(ctx, cache.PrefixProjects, fingerprint, &cached); err == nil {
			return &cached, nil
		}
	}

	projects, total, err := s.repo.ListPublic(q)
	if err != nil {
		return nil, err
	}

	result := &ProjectListResult{
		Projects:   projects,
		Pagination: common.NewPagination(q.Page, q.Limit, total),
	}

	if s.cache != nil && s.cache.IsAvailable() {
		_ = s.cache.SetList(ctx, cache.PrefixProjects, fingerprint, result)
	}

	return result, nil
}

// List returns all projects for the admin console
func (s *ProjectService) List(ctx context.Context, q repository.ListQuery) (*ProjectListResult, error) {
	q.Normalize()

	projects, total, err := s.repo.List(q)
	if err != nil {
		return nil, err
	}

	return &ProjectListResult{
		Projects:   projects,
		Pagination: common.NewPagination(q.Page, q.Limit, total),
	}, nil
}

func (s *ProjectService) invalidate(ctx context.Context) {
	if s.cache != nil && s.cache.IsAvailable() {
		_ = s.cache.InvalidateResource(ctx, cache.PrefixProjects)
	}
}
