package repository

import (
	"github.com/lumenhq/lumen-backend/internal/domain"
	"gorm.io/gorm"
)

// ApplicationRepository persists join applications
type ApplicationRepository interface {
	Create(app *domain.Application) error
	FindByID(id uint) (*domain.Application, error)
	List(q ListQuery) ([]*domain.Application, int64, error)
	Moderate(id uint, updates map[string]interface{}) (*domain.Application, error)
}

// applicationRepository GORM implementation
type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates the repository
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(app *domain.Application) error {
	return r.db.Create(app).Error
}

func (r *applicationRepository) FindByID(id uint) (*domain.Application, error) {
	var app domain.Application
	if err := r.db.First(&app, id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) List(q ListQuery) ([]*domain.Application, int64, error) {
	q.Normalize()

	base := applyFilters(r.db.Model(&domain.Application{}), q, []string{"name", "email"})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	apps := []*domain.Application{}
	err := applyOrder(base, q, map[string]bool{"created_at": true, "name": true, "status": true}).
		Offset(q.Offset()).
		Limit(q.Limit).
		Find(&apps).Error
	if err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

// Moderate applies a moderation update in a single write and returns the
// updated row. A row whose values already match still counts as present.
func (r *applicationRepository) Moderate(id uint, updates map[string]interface{}) (*domain.Application, error) {
	res := r.db.Model(&domain.Application{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		r.db.Model(&domain.Application{}).Where("id = ?", id).Count(&count)
		if count == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.FindByID(id)
}
