package repository

import (
	"github.com/lumenhq/lumen-backend/internal/domain"
	"gorm.io/gorm"
)

// ProjectRepository persists community projects
type ProjectRepository interface {
	Create(project *domain.Project) error
	FindByID(id uint) (*domain.Project, error)
	List(q ListQuery) ([]*domain.Project, int64, error)
	ListPublic(q ListQuery) ([]*domain.Project, int64, error)
	Moderate(id uint, updates map[string]interface{}) (*domain.Project, error)
}

// projectRepository GORM implementation
type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates the repository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(project *domain.Project) error {
	return r.db.Create(project).Error
}

func (r *projectRepository) FindByID(id uint) (*domain.Project, error) {
	var project domain.Project
	if err := r.db.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

var projectSortable = map[string]bool{"created_at": true, "title": true, "status": true}

func (r *projectRepository) List(q ListQuery) ([]*domain.Project, int64, error) {
	return r.list(r.db.Model(&domain.Project{}), q)
}

// ListPublic returns only approved projects, featured first
func (r *projectRepository) ListPublic(q ListQuery) ([]*domain.Project, int64, error) {
	q.Status = domain.StatusApproved
	base := r.db.Model(&domain.Project{}).Order("is_featured DESC")
	return r.list(base, q)
}

func (r *projectRepository) list(base *gorm.DB, q ListQuery) ([]*domain.Project, int64, error) {
	q.Normalize()

	base = applyFilters(base, q, []string{"title", "description", "owner_name"})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	projects := []*domain.Project{}
	err := applyOrder(base, q, projectSortable).
		Offset(q.Offset()).
		Limit(q.Limit).
		Find(&projects).Error
	if err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

func (r *projectRepository) Moderate(id uint, updates map[string]interface{}) (*domain.Project, error) {
	res := r.db.Model(&domain.Project{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		r.db.Model(&domain.Project{}).Where("id = ?", id).Count(&count)
		if count == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.FindByID(id)
}
