package service

import (
	"context"
	"strconv"
	"time"

	"github.com/lumenhq/lumen-backend/internal/domain"
	es "github.com/lumenhq/lumen-backend/pkg/elasticsearch"
	"github.com/lumenhq/lumen-backend/pkg/logger"
)

const PostsIndex = "lumen_posts"

// PostDocument represents a post indexed in Elasticsearch
type PostDocument struct {
	PostID    uint   `json:"post_id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// SearchService provides Elasticsearch-based full-text search over posts.
// When ES is disabled the service is nil and callers fall back to SQL LIKE.
type SearchService struct {
	esClient *es.Client
}

// NewSearchService creates the search service and ensures the index exists
func NewSearchService(esClient *es.Client) *SearchService {
	svc := &SearchService{esClient: esClient}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := svc.ensureIndex(ctx); err != nil {
		logger.GetLogger().Error().Err(err).Msg("failed to create posts index")
	}
	return svc
}

func (s *SearchService) ensureIndex(ctx context.Context) error {
	mapping := map[string]interface{}{
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"post_id":    map[string]interface{}{"type": "integer"},
				"title":      map[string]interface{}{"type": "text"},
				"content":    map[string]interface{}{"type": "text"},
				"author":     map[string]interface{}{"type": "keyword"},
				"status":     map[string]interface{}{"type": "keyword"},
				"created_at": map[string]interface{}{"type": "date"},
			},
		},
	}
	return s.esClient.CreateIndex(ctx, PostsIndex, mapping)
}

// IndexPost indexes or reindexes a post document
func (s *SearchService) IndexPost(ctx context.Context, post *domain.Post) error {
	doc := PostDocument{
		PostID:    post.ID,
		Title:     post.Title,
		Content:   post.Content,
		Author:    post.AuthorName,
		Status:    post.Status,
		CreatedAt: post.CreatedAt.Format(time.RFC3339),
	}
	return s.esClient.IndexDocument(ctx, PostsIndex, strconv.FormatUint(uint64(post.ID), 10), doc)
}

// RemovePost deletes a post document from the index
func (s *SearchService) RemovePost(ctx context.Context, postID uint) error {
	return s.esClient.DeleteDocument(ctx, PostsIndex, strconv.FormatUint(uint64(postID), 10))
}

// SearchPosts runs a multi-match query over approved posts
func (s *SearchService) SearchPosts(ctx context.Context, keyword string, page, limit int) (*es.SearchResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": map[string]interface{}{
					"multi_match": map[string]interface{}{
						"query":  keyword,
						"fields": []string{"title^2", "content", "author"},
					},
				},
				"filter": map[string]interface{}{
					"term": map[string]interface{}{"status": domain.StatusApproved},
				},
			},
		},
	}

	return s.esClient.Search(ctx, PostsIndex, query, (page-1)*limit, limit)
}
