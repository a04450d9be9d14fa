package service

import (
	"context"

	"github.com/lumenhq/lumen-backend/internal/common"
	"github.com/lumenhq/lumen-backend/internal/domain"
	"github.com/lumenhq/lumen-backend/internal/repository"
	"github.com/lumenhq/lumen-backend/pkg/cache"
)

// UserListResult is a page of users with pagination metadata
type UserListResult struct {
	Users      []*domain.User    `json:"users"`
	Pagination common.Pagination `json:"pagination"`
}

// UserService handles admin-facing account listing
type UserService struct {
	repo  repository.UserRepository
	cache cache.Service
}

// NewUserService creates the user service
func NewUserService(repo repository.UserRepository, cacheService cache.Service) *UserService {
	return &UserService{repo: repo, cache: cacheService}
}

// List returns a filtered page of accounts
func (s *UserService) List(ctx context.Context, q repository.ListQuery) (*UserListResult, error) {
	q.Normalize()

	if s.cache != nil && s.cache.IsAvailable() {
		var cached UserListResult
		if err := s.cache.GetList(ctx, cache.PrefixUsers, q.Fingerprint(), &cached); err == nil {
			return &cached, nil
		}
	}

	users, total, err := s.repo.List(q)
	if err != nil {
		return nil, err
	}

	result := &UserListResult{
		Users:      users,
		Pagination: common.NewPagination(q.Page, q.Limit, total),
	}

	if s.cache != nil && s.cache.IsAvailable() {
		_ = s.cache.SetList(ctx, cache.PrefixUsers, q.Fingerprint(), result)
	}

	return result, nil
}
