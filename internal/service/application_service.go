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

// ApplicationListResult is a cached page of applications
type ApplicationListResult struct {
	Applications []*domain.Application `json:"applications"`
	Pagination   common.Pagination     `json:"pagination"`
}

// ApplicationService handles join application submission and listing
type ApplicationService struct {
	repo  repository.ApplicationRepository
	cache cache.Service
}

// NewApplicationService creates the application service
func NewApplicationService(repo repository.ApplicationRepository, cacheService cache.Service) *ApplicationService {
	return &ApplicationService{repo: repo, cache: cacheService}
}

// Submit validates and stores a join application in pending status
func (s *ApplicationService) Submit(ctx context.Context, name, email, motivation string) (*domain.Application, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))

	if name == "" || email == "" || !strings.Contains(email, "@") {
		return nil, common.ErrInvalidInput
	}

	app := &domain.Application{
		Name:       name,
		Email:      email,
		Motivation: strings.TrimSpace(motivation),
		Status:     domain.StatusPending,
	}
	if err := s.repo.Create(app); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return app, nil
}

// Get loads one application
func (s *ApplicationService) Get(id uint) (*domain.Application, error) {
	app, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return app, nil
}

// List returns a filtered page, served from cache when possible
func (s *ApplicationService) List(ctx context.Context, q repository.ListQuery) (*ApplicationListResult, error) {
	q.Normalize()

	if s.cache != nil && s.cache.IsAvailable() {
		var cached ApplicationListResult
		if err := s.cache.GetList(ctx, cache.PrefixApplications, q.Fingerprint(), &cached); err == nil {
			return &cached, nil
		}
	}

	apps, total, err := s.repo.List(q)
	if err != nil {
		return nil, err
	}

	result := &ApplicationListResult{
		Applications: apps,
		Pagination:   common.NewPagination(q.Page, q.Limit, total),
	}

	if s.cache != nil && s.cache.IsAvailable() {
		_ = s.cache.SetList(ctx, cache.PrefixApplications, q.Fingerprint(), result)
	}

	return result, nil
}

func (s *ApplicationService) invalidate(ctx context.Context) {
	if s.cache != nil && s.cache.IsAvailable() {
		_ = s.cache.InvalidateResource(ctx, cache.PrefixApplications)
	}
}
