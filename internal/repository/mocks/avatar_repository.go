package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"studio-server/internal/models"
	"studio-server/internal/repository"
)

// MockAvatarRepository is a mock type for the repository.AvatarRepository type
type MockAvatarRepository struct {
	mock.Mock
}

func (_m *MockAvatarRepository) List(ctx context.Context) ([]models.Avatar, error) {
	ret := _m.Called(ctx)

	var r0 []models.Avatar
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Avatar)
	}

	return r0, ret.Error(1)
}

func (_m *MockAvatarRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Avatar, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Avatar
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Avatar)
	}

	return r0, ret.Error(1)
}

// NewMockAvatarRepository creates a new instance of MockAvatarRepository.
// The first argument is typically a *testing.T value.
func NewMockAvatarRepository(t interface {
	mock.TestingT
	Helper()
}) *MockAvatarRepository {
	m := &MockAvatarRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ repository.AvatarRepository = (*MockAvatarRepository)(nil)
