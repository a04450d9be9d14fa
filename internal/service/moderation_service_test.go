package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/lumenhq/lumen-backend/internal/common"
	"github.com/lumenhq/lumen-backend/internal/domain"
	"github.com/lumenhq/lumen-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockApplicationRepository is a mock implementation of ApplicationRepository
type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) Create(app *domain.Application) error {
	args := m.Called(app)
	return args.Error(0)
}

func (m *MockApplicationRepository) FindByID(id uint) (*domain.Application, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockApplicationRepository) List(q repository.ListQuery) ([]*domain.Application, int64, error) {
	args := m.Called(q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Application), args.Get(1).(int64), args.Error(2)
}

func (m *MockApplicationRepository) Moderate(id uint, updates map[string]interface{}) (*domain.Application, error) {
	args := m.Called(id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

// MockClaimRepository is a mock implementation of ClaimRepository
type MockClaimRepository struct {
	mock.Mock
}

func (m *MockClaimRepository) Create(claim *domain.Claim) error {
	args := m.Called(claim)
	return args.Error(0)
}

func (m *MockClaimRepository) FindByID(id uint) (*domain.Claim, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Claim), args.Error(1)
}

func (m *MockClaimRepository) List(q repository.ListQuery) ([]*domain.Claim, int64, error) {
	args := m.Called(q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Claim), args.Get(1).(int64), args.Error(2)
}

func (m *MockClaimRepository) ListPending() ([]*domain.Claim, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Claim), args.Error(1)
}

func (m *MockClaimRepository) Moderate(id uint, updates map[string]interface{}) (*domain.Claim, error) {
	args := m.Called(id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Claim), args.Error(1)
}

func (m *MockClaimRepository) BulkUpdateStatus(ids []uint, status, notes, reviewer string) (int64, error) {
	args := m.Called(ids, status, notes, reviewer)
	return args.Get(0).(int64), args.Error(1)
}

// MockPostRepository is a mock implementation of PostRepository
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(post *domain.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) FindByID(id uint) (*domain.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *MockPostRepository) List(q repository.ListQuery) ([]*domain.Post, int64, error) {
	args := m.Called(q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) ListPublic(q repository.ListQuery) ([]*domain.Post, int64, error) {
	args := m.Called(q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) Moderate(id uint, updates map[string]interface{}) (*domain.Post, error) {
	args := m.Called(id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *MockPostRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// recordingMailer captures welcome email dispatches for assertions
type recordingMailer struct {
	mu    sync.Mutex
	sent  []string
	fired chan struct{}
}

func newRecordingMailer() *recordingMailer {
	return &recordingMailer{fired: make(chan struct{}, 16)}
}

func (m *recordingMailer) SendWelcome(ctx context.Context, to, name string) error {
	m.mu.Lock()
	m.sent = append(m.sent, to)
	m.mu.Unlock()
	m.fired <- struct{}{}
	return nil
}

func (m *recordingMailer) recipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.sent...)
}

func newTestModerationService(apps *MockApplicationRepository, posts *MockPostRepository, claims *MockClaimRepository, mailer Mailer) *ModerationService {
	if apps == nil {
		apps = new(MockApplicationRepository)
	}
	if posts == nil {
		posts = new(MockPostRepository)
	}
	if claims == nil {
		claims = new(MockClaimRepository)
	}
	return NewModerationService(apps, posts, nil, nil, claims, mailer, nil)
}

func TestTransitionApproveApplication(t *testing.T) {
	apps := new(MockApplicationRepository)
	mailer := newRecordingMailer()
	svc := newTestModerationService(apps, nil, nil, mailer)

	approved := &domain.Application{ID: 1, Name: "Alice", Email: "alice@example.com", Status: domain.StatusApproved}
	apps.On("Moderate", uint(1), mock.MatchedBy(func(u map[string]interface{}) bool {
		return u["status"] == domain.StatusApproved &&
			u["reviewed_by"] == "admin" &&
			u["reviewed_at"] != nil
	})).Return(approved, nil)

	row, err := svc.Transition(context.Background(), domain.EntityApplication, 1, domain.ActionApprove, "", "admin")

	assert.NoError(t, err)
	assert.Equal(t, approved, row)
	apps.AssertExpectations(t)

	// welcome email fires asynchronously
	select {
	case <-mailer.fired:
	case <-time.After(2 * time.Second):
		t.Fatal("welcome email was not dispatched")
	}
	assert.Equal(t, []string{"alice@example.com"}, mailer.recipients())
}

func TestTransitionRejectRequiresReason(t *testing.T) {
	apps := new(MockApplicationRepository)
	svc := newTestModerationService(apps, nil, nil, nil)

	_, err := svc.Transition(context.Background(), domain.EntityApplication, 1, domain.ActionReject, "", "admin")

	assert.ErrorIs(t, err, common.ErrReasonRequired)
	apps.AssertNotCalled(t, "Moderate", mock.Anything, mock.Anything)
}

func TestTransitionRejectWritesReason(t *testing.T) {
	apps := new(MockApplicationRepository)
	mailer := newRecordingMailer()
	svc := newTestModerationService(apps, nil, nil, mailer)

	rejected := &domain.Application{ID: 1, Status: domain.StatusRejected}
	apps.On("Moderate", uint(1), mock.MatchedBy(func(u map[string]interface{}) bool {
		return u["status"] == domain.StatusRejected && u["reviewer_notes"] == "spam"
	})).Return(rejected, nil)

	_, err := svc.Transition(context.Background(), domain.EntityApplication, 1, domain.ActionReject, "spam", "admin")

	assert.NoError(t, err)
	apps.AssertExpectations(t)
	assert.Empty(t, mailer.recipients(), "reject must not send the welcome email")
}

func TestTransitionInvalidActionForEntity(t *testing.T) {
	svc := newTestModerationService(nil, nil, nil, nil)

	_, err := svc.Transition(context.Background(), domain.EntityApplication, 1, domain.ActionPin, "", "admin")
	assert.ErrorIs(t, err, common.ErrInvalidAction)

	_, err = svc.Transition(context.Background(), "comment", 1, domain.ActionApprove, "", "admin")
	assert.ErrorIs(t, err, common.ErrInvalidAction)
}

func TestTransitionNotFound(t *testing.T) {
	claims := new(MockClaimRepository)
	svc := newTestModerationService(nil, nil, claims, nil)

	claims.On("Moderate", uint(404), mock.Anything).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Transition(context.Background(), domain.EntityClaim, 404, domain.ActionApprove, "", "admin")

	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestTransitionPinDoesNotTouchStatus(t *testing.T) {
	posts := new(MockPostRepository)
	svc := newTestModerationService(nil, posts, nil, nil)

	pinned := &domain.Post{ID: 7, Status: domain.StatusApproved, IsPinned: true}
	posts.On("Moderate", uint(7), mock.MatchedBy(func(u map[string]interface{}) bool {
		_, hasStatus := u["status"]
		return u["is_pinned"] == true && !hasStatus
	})).Return(pinned, nil)

	_, err := svc.Transition(context.Background(), domain.EntityPost, 7, domain.ActionPin, "", "admin")

	assert.NoError(t, err)
	posts.AssertExpectations(t)
}

func TestDeletePostRequiresReason(t *testing.T) {
	posts := new(MockPostRepository)
	svc := newTestModerationService(nil, posts, nil, nil)

	err := svc.DeletePost(context.Background(), 1, "", "admin")

	assert.ErrorIs(t, err, common.ErrReasonRequired)
	posts.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestDeletePost(t *testing.T) {
	posts := new(MockPostRepository)
	svc := newTestModerationService(nil, posts, nil, nil)

	posts.On("Delete", uint(3)).Return(nil)

	err := svc.DeletePost(context.Background(), 3, "rule violation", "admin")

	assert.NoError(t, err)
	posts.AssertExpectations(t)
}

func TestDeletePostNotFound(t *testing.T) {
	posts := new(MockPostRepository)
	svc := newTestModerationService(nil, posts, nil, nil)

	posts.On("Delete", uint(404)).Return(gorm.ErrRecordNotFound)

	err := svc.DeletePost(context.Background(), 404, "gone", "admin")

	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestBulkClaims(t *testing.T) {
	claims := new(MockClaimRepository)
	svc := newTestModerationService(nil, nil, claims, nil)

	ids := []uint{1, 2, 9999}
	claims.On("BulkUpdateStatus", ids, domain.StatusApproved, "", "admin").Return(int64(2), nil)

	affected, err := svc.BulkClaims(context.Background(), ids, domain.ActionApprove, "", "admin")

	assert.NoError(t, err)
	assert.Equal(t, int64(2), affected)
	claims.AssertExpectations(t)
}

func TestBulkClaimsRejectRequiresReason(t *testing.T) {
	claims := new(MockClaimRepository)
	svc := newTestModerationService(nil, nil, claims, nil)

	_, err := svc.BulkClaims(context.Background(), []uint{1}, domain.ActionReject, "", "admin")

	assert.ErrorIs(t, err, common.ErrReasonRequired)
	claims.AssertNotCalled(t, "BulkUpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBulkClaimsOnlyApproveOrReject(t *testing.T) {
	svc := newTestModerationService(nil, nil, nil, nil)

	_, err := svc.BulkClaims(context.Background(), []uint{1}, domain.ActionPin, "", "admin")

	assert.ErrorIs(t, err, common.ErrInvalidAction)
}
