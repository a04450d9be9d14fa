package repository

import (
	"github.com/lumenhq/lumen-backend/internal/domain"
	"gorm.io/gorm"
)

// UserRepository persists registered accounts
type UserRepository interface {
	Create(user *domain.User) error
	FindByID(id uint) (*domain.User, error)
	FindByUsername(username string) (*domain.User, error)
	FindByEmail(email string) (*domain.User, error)
	List(q ListQuery) ([]*domain.User, int64, error)
	Moderate(id uint, updates map[string]interface{}) (*domain.User, error)
	Count() (int64, error)
}

// userRepository GORM implementation
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates the repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *domain.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(id uint) (*domain.User, error) {
	var user domain.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(username string) (*domain.User, error) {
	var user domain.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*domain.User, error) {
	var user domain.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(q ListQuery) ([]*domain.User, int64, error) {
	q.Normalize()

	base := applyFilters(r.db.Model(&domain.User{}), q, []string{"username", "email"})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	users := []*domain.User{}
	err := applyOrder(base, q, map[string]bool{"created_at": true, "username": true, "status": true}).
		Offset(q.Offset()).
		Limit(q.Limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *userRepository) Moderate(id uint, updates map[string]interface{}) (*domain.User, error) {
	res := r.db.Model(&domain.User{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		r.db.Model(&domain.User{}).Where("id = ?", id).Count(&count)
		if count == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.FindByID(id)
}

func (r *userRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.User{}).Count(&count).Error
	return count, err
}
