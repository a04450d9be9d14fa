package service

import (
	"testing"
	"time"

	"github.com/lumenhq/lumen-backend/internal/common"
	"github.com/lumenhq/lumen-backend/internal/domain"
	"github.com/lumenhq/lumen-backend/internal/repository"
	"github.com/lumenhq/lumen-backend/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *domain.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(id uint) (*domain.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(username string) (*domain.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(email string) (*domain.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) List(q repository.ListQuery) ([]*domain.User, int64, error) {
	args := m.Called(q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) Moderate(id uint, updates map[string]interface{}) (*domain.User, error) {
	args := m.Called(id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func testJWTManager() *jwt.Manager {
	return jwt.NewManager("test-secret", 15*time.Minute, 24*time.Hour)
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt failed: %v", err)
	}
	return string(hash)
}

func TestRegister(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewAuthService(users, testJWTManager())

	users.On("FindByUsername", "alice").Return(nil, gorm.ErrRecordNotFound)
	users.On("FindByEmail", "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
	users.On("Create", mock.MatchedBy(func(u *domain.User) bool {
		return u.Username == "alice" &&
			u.Role == domain.RoleUser &&
			u.Status == domain.StatusActive &&
			u.PasswordHash != "password123"
	})).Return(nil)

	user, err := svc.Register("alice", "Alice@Example.com", "password123")

	assert.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email, "email must be lowercased")
	users.AssertExpectations(t)
}

func TestRegisterShortPassword(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewAuthService(users, testJWTManager())

	_, err := svc.Register("alice", "alice@example.com", "short")

	assert.ErrorIs(t, err, common.ErrInvalidInput)
	users.AssertNotCalled(t, "Create", mock.Anything)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewAuthService(users, testJWTManager())

	users.On("FindByUsername", "alice").Return(&domain.User{ID: 1, Username: "alice"}, nil)

	_, err := svc.Register("alice", "other@example.com", "password123")

	assert.ErrorIs(t, err, common.ErrUserAlreadyExists)
}

func TestLogin(t *testing.T) {
	users := new(MockUserRepository)
	manager := testJWTManager()
	svc := NewAuthService(users, manager)

	users.On("FindByUsername", "alice").Return(&domain.User{
		ID:           1,
		Username:     "alice",
		PasswordHash: hashPassword(t, "password123"),
		Role:         domain.RoleUser,
		Status:       domain.StatusActive,
	}, nil)

	user, pair, err := svc.Login("alice", "password123")

	assert.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := manager.VerifyToken(pair.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewAuthService(users, testJWTManager())

	users.On("FindByUsername", "alice").Return(&domain.User{
		ID:           1,
		Username:     "alice",
		PasswordHash: hashPassword(t, "password123"),
		Status:       domain.StatusActive,
	}, nil)

	_, _, err := svc.Login("alice", "wrong")

	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewAuthService(users, testJWTManager())

	users.On("FindByUsername", "ghost").Return(nil, gorm.ErrRecordNotFound)

	_, _, err := svc.Login("ghost", "password123")

	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestLoginSuspendedUser(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewAuthService(users, testJWTManager())

	users.On("FindByUsername", "alice").Return(&domain.User{
		ID:           1,
		Username:     "alice",
		PasswordHash: hashPassword(t, "password123"),
		Status:       domain.StatusSuspended,
	}, nil)

	_, _, err := svc.Login("alice", "password123")

	assert.ErrorIs(t, err, common.ErrForbidden)
}
