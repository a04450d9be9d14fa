package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lumenhq/lumen-backend/internal/common"
	"github.com/lumenhq/lumen-backend/internal/domain"
	"github.com/lumenhq/lumen-backend/internal/repository"
	"github.com/lumenhq/lumen-backend/pkg/cache"
	"github.com/lumenhq/lumen-backend/pkg/logger"
	"gorm.io/gorm"
)

// PostListResult is a page of posts with pagination metadata
type PostListResult struct {
	Posts      []*domain.Post    `json:"posts"`
	Pagination common.Pagination `json:"pagination"`
}

// PostService handles post creation and listing
type PostService struct {
	repo   repository.PostRepository
	cache  cache.Service
	search *SearchService
}

// NewPostService creates the post service. search may be nil when
// Elasticsearch is disabled.
func NewPostService(repo repository.PostRepository, cacheService cache.Service, search *SearchService) *PostService {
	return &PostService{repo: repo, cache: cacheService, search: search}
}

// Create stores a new post in pending status
func (s *PostService) Create(ctx context.Context, authorID uint, authorName, title, content string) (*domain.Post, error) {
	title = strings.TrimSpace(title)
	if title == "" || strings.TrimSpace(content) == "" {
		return nil, common.ErrInvalidInput
	}

	post := &domain.Post{
		AuthorID:   authorID,
		AuthorName: authorName,
		Title:      title,
		Content:    content,
		Status:     domain.StatusPending,
	}
	if err := s.repo.Create(post); err != nil {
		return nil, err
	}

	s.indexAsync(post)
	s.invalidate(ctx)
	return post, nil
}

// Get loads one post
func (s *PostService) Get(id uint) (*domain.Post, error) {
	post, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return post, nil
}

// ListPublic returns approved, non-archived posts (pinned first)
func (s *PostService) ListPublic(ctx context.Context, q repository.ListQuery) (*PostListResult, error) {
	q.Normalize()
	fingerprint := "public:" + q.Fingerprint()

	if s.cache != nil && s.cache.IsAvailable() {
		var cached PostListResult
		if err := s.cache.GetList(ctx, cache.PrefixPosts, fingerprint, &cached); err == nil {
			return &cached, nil
		}
	}

	posts, total, err := s.repo.ListPublic(q)
	if err != nil {
		return nil, err
	}

	result := &PostListResult{
		Posts:      posts,
		Pagination: common.NewPagination(q.Page, q.Limit, total),
	}

	if s.cache != nil && s.cache.IsAvailable() {
		_ = s.cache.SetList(ctx, cache.PrefixPosts, fingerprint, result)
	}

	return result, nil
}

// List returns all posts for the admin console, any status
func (s *PostService) List(ctx context.Context, q repository.ListQuery) (*PostListResult, error) {
	q.Normalize()

	posts, total, err := s.repo.List(q)
	if err != nil {
		return nil, err
	}

	return &PostListResult{
		Posts:      posts,
		Pagination: common.NewPagination(q.Page, q.Limit, total),
	}, nil
}

// indexAsync pushes the post into Elasticsearch without blocking the write
func (s *PostService) indexAsync(post *domain.Post) {
	if s.search == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.search.IndexPost(ctx, post); err != nil {
			logger.GetLogger().Warn().Err(err).Uint("post_id", post.ID).Msg("post indexing failed")
		}
	}()
}

func (s *PostService) invalidate(ctx context.Context) {
	if s.cache != nil && s.cache.IsAvailable() {
		_ = s.cache.InvalidateResource(ctx, cache.PrefixPosts)
	}
}
