package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"studio-server/internal/models"
	"studio-server/internal/repository"
)

// MockProjectRepository is a mock type for the repository.ProjectRepository type
type MockProjectRepository struct {
	mock.Mock
}

func (_m *MockProjectRepository) Save(ctx context.Context, userID uuid.UUID, project *models.Project) error {
	ret := _m.Called(ctx, userID, project)
	return ret.Error(0)
}

func (_m *MockProjectRepository) GetByID(ctx context.Context, userID, projectID uuid.UUID) (*models.Project, error) {
	ret := _m.Called(ctx, userID, projectID)

	var r0 *models.Project
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Project)
	}

	return r0, ret.Error(1)
}

func (_m *MockProjectRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Project, error) {
	ret := _m.Called(ctx, userID)

	var r0 []*models.Project
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.Project)
	}

	return r0, ret.Error(1)
}

func (_m *MockProjectRepository) Delete(ctx context.Context, userID, projectID uuid.UUID) error {
	ret := _m.Called(ctx, userID, projectID)
	return ret.Error(0)
}

func (_m *MockProjectRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	ret := _m.Called(ctx, userID)

	var r0 int
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(int)
	}

	return r0, ret.Error(1)
}

// NewMockProjectRepository creates a new instance of MockProjectRepository.
// The first argument is typically a *testing.T value.
func NewMockProjectRepository(t interface {
	mock.TestingT
	Helper()
}) *MockProjectRepository {
	m := &MockProjectRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ repository.ProjectRepository = (*MockProjectRepository)(nil)
