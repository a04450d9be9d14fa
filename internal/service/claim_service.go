package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lumenhq/lumen-backend/internal/common"
	"github.com/lumenhq/lumen-backend/internal/domain"
	"github.com/lumenhq/lumen-backend/internal/repository"
	"github.com/lumenhq/lumen-backend/pkg/cache"
	"gorm.io/gorm"
)

// ClaimListResult is a page of claims with pagination metadata
type ClaimListResult struct {
	Claims     []*domain.Claim   `json:"claims"`
	Pagination common.Pagination `json:"pagination"`
}

// ClaimService handles claim submission and listing
type ClaimService struct {
	repo  repository.ClaimRepository
	cache cache.Service
}

// NewClaimService creates the claim service
func NewClaimService(repo repository.ClaimRepository, cacheService cache.Service) *ClaimService {
	return &ClaimService{repo: repo, cache: cacheService}
}

// Submit validates and stores a claim in pending status
func (s *ClaimService) Submit(ctx context.Context, name, email, description string, amount int64) (*domain.Claim, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))

	if name == "" || email == "" || !strings.Contains(email, "@") || amount < 0 {
		return nil, common.ErrInvalidInput
	}

	claim := &domain.Claim{
		Reference:     uuid.New().String(),
		ClaimantName:  name,
		ClaimantEmail: email,
		Amount:        amount,
		Description:   strings.TrimSpace(description),
		Status:        domain.StatusPending,
	}
	if err := s.repo.Create(claim); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return claim, nil
}

// Get loads one claim
func (s *ClaimService) Get(id uint) (*domain.Claim, error) {
	claim, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return claim, nil
}

// List returns a filtered page, served from cache when possible
func (s *ClaimService) List(ctx context.Context, q repository.ListQuery) (*ClaimListResult, error) {
	q.Normalize()

	if s.cache != nil && s.cache.IsAvailable() {
		var cached ClaimListResult
		if err := s.cache.GetList(ctx, cache.PrefixClaims, q.Fingerprint(), &cached); err == nil {
			return &cached, nil
		}
	}

	claims, total, err := s.repo.List(q)
	if err != nil {
		return nil, err
	}

	result := &ClaimListResult{
		Claims:     claims,
		Pagination: common.NewPagination(q.Page, q.Limit, total),
	}

	if s.cache != nil && s.cache.IsAvailable() {
		_ = s.cache.SetList(ctx, cache.PrefixClaims, q.Fingerprint(), result)
	}

	return result, nil
}

// Pending returns every pending claim oldest first
func (s *ClaimService) Pending() ([]*domain.Claim, error) {
	return s.repo.ListPending()
}

func (s *ClaimService) invalidate(ctx context.Context) {
	if s.cache != nil && s.cache.IsAvailable() {
		_ = s.cache.InvalidateResource(ctx, cache.PrefixClaims)
	}
}
