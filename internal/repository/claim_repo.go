package repository

import (
	"time"

	"github.com/lumenhq/lumen-backend/internal/domain"
	"gorm.io/gorm"
)

// ClaimRepository persists claims reviewed via the admin API and the CLI
type ClaimRepository interface {
	Create(claim *domain.Claim) error
	FindByID(id uint) (*domain.Claim, error)
	List(q ListQuery) ([]*domain.Claim, int64, error)
	ListPending() ([]*domain.Claim, error)
	Moderate(id uint, updates map[string]interface{}) (*domain.Claim, error)
	BulkUpdateStatus(ids []uint, status, notes, reviewer string) (int64, error)
}

// claimRepository GORM implementation
type claimRepository struct {
	db *gorm.DB
}

// NewClaimRepository creates the repository
func NewClaimRepository(db *gorm.DB) ClaimRepository {
	return &claimRepository{db: db}
}

func (r *claimRepository) Create(claim *domain.Claim) error {
	return r.db.Create(claim).Error
}

func (r *claimRepository) FindByID(id uint) (*domain.Claim, error) {
	var claim domain.Claim
	if err := r.db.First(&claim, id).Error; err != nil {
		return nil, err
	}
	return &claim, nil
}

func (r *claimRepository) List(q ListQuery) ([]*domain.Claim, int64, error) {
	q.Normalize()

	base := applyFilters(r.db.Model(&domain.Claim{}), q,
		[]string{"claimant_name", "claimant_email", "reference", "description"})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	claims := []*domain.Claim{}
	err := applyOrder(base, q, map[string]bool{"created_at": true, "amount": true, "status": true}).
		Offset(q.Offset()).
		Limit(q.Limit).
		Find(&claims).Error
	if err != nil {
		return nil, 0, err
	}

	return claims, total, nil
}

// ListPending returns every pending claim oldest first, for the review loop
func (r *claimRepository) ListPending() ([]*domain.Claim, error) {
	claims := []*domain.Claim{}
	err := r.db.Where("status = ?", domain.StatusPending).
		Order("created_at ASC").
		Find(&claims).Error
	return claims, err
}

func (r *claimRepository) Moderate(id uint, updates map[string]interface{}) (*domain.Claim, error) {
	res := r.db.Model(&domain.Claim{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		r.db.Model(&domain.Claim{}).Where("id = ?", id).Count(&count)
		if count == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.FindByID(id)
}

// BulkUpdateStatus updates every listed claim in one statement. Missing
// ids are silently skipped; the affected-row count is returned so callers
// can report how many rows actually changed.
func (r *claimRepository) BulkUpdateStatus(ids []uint, status, notes, reviewer string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	now := time.Now()
	res := r.db.Model(&domain.Claim{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"status":         status,
			"reviewer_notes": notes,
			"reviewed_by":    reviewer,
			"reviewed_at":    &now,
		})
	return res.RowsAffected, res.Error
}
