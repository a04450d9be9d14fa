package repository

import (
	"github.com/lumenhq/lumen-backend/internal/domain"
	"gorm.io/gorm"
)

// PostRepository persists community posts
type PostRepository interface {
	Create(post *domain.Post) error
	FindByID(id uint) (*domain.Post, error)
	List(q ListQuery) ([]*domain.Post, int64, error)
	ListPublic(q ListQuery) ([]*domain.Post, int64, error)
	Moderate(id uint, updates map[string]interface{}) (*domain.Post, error)
	Delete(id uint) error
}

// postRepository GORM implementation
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates the repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *domain.Post) error {
	return r.db.Create(post).Error
}

func (r *postRepository) FindByID(id uint) (*domain.Post, error) {
	var post domain.Post
	if err := r.db.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

var postSortable = map[string]bool{"created_at": true, "title": true, "status": true}

func (r *postRepository) List(q ListQuery) ([]*domain.Post, int64, error) {
	return r.list(r.db.Model(&domain.Post{}), q)
}

// ListPublic returns only approved, non-archived posts, pinned first
func (r *postRepository) ListPublic(q ListQuery) ([]*domain.Post, int64, error) {
	q.Status = domain.StatusApproved
	base := r.db.Model(&domain.Post{}).
		Where("is_archived = ?", false).
		Order("is_pinned DESC")
	return r.list(base, q)
}

func (r *postRepository) list(base *gorm.DB, q ListQuery) ([]*domain.Post, int64, error) {
	q.Normalize()

	base = applyFilters(base, q, []string{"title", "content", "author_name"})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	posts := []*domain.Post{}
	err := applyOrder(base, q, postSortable).
		Offset(q.Offset()).
		Limit(q.Limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func (r *postRepository) Moderate(id uint, updates map[string]interface{}) (*domain.Post, error) {
	res := r.db.Model(&domain.Post{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		r.db.Model(&domain.Post{}).Where("id = ?", id).Count(&count)
		if count == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.FindByID(id)
}

// Delete hard-deletes a post; there is no tombstone
func (r *postRepository) Delete(id uint) error {
	res := r.db.Delete(&domain.Post{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
