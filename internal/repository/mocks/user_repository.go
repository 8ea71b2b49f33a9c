package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"studio-server/internal/models"
	"studio-server/internal/repository"
)

// MockUserRepository is a mock type for the repository.UserRepository type
type MockUserRepository struct {
	mock.Mock
}

func (_m *MockUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	ret := _m.Called(ctx, user)
	return ret.Error(0)
}

func (_m *MockUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	ret := _m.Called(ctx, username)

	var r0 *models.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.User)
	}

	return r0, ret.Error(1)
}

func (_m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	ret := _m.Called(ctx, email)

	var r0 *models.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.User)
	}

	return r0, ret.Error(1)
}

func (_m *MockUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.User)
	}

	return r0, ret.Error(1)
}

// NewMockUserRepository creates a new instance of MockUserRepository.
// The first argument is typically a *testing.T value.
func NewMockUserRepository(t interface {
	mock.TestingT
	Helper()
}) *MockUserRepository {
	m := &MockUserRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ repository.UserRepository = (*MockUserRepository)(nil)
