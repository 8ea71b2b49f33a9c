package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"studio-server/internal/models"
	"studio-server/internal/repository"
)

// MockVoiceOverRepository is a mock type for the repository.VoiceOverRepository type
type MockVoiceOverRepository struct {
	mock.Mock
}

func (_m *MockVoiceOverRepository) Create(ctx context.Context, voiceOver *models.VoiceOver) error {
	ret := _m.Called(ctx, voiceOver)
	return ret.Error(0)
}

func (_m *MockVoiceOverRepository) GetByID(ctx context.Context, userID, voiceOverID uuid.UUID) (*models.VoiceOver, error) {
	ret := _m.Called(ctx, userID, voiceOverID)

	var r0 *models.VoiceOver
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.VoiceOver)
	}

	return r0, ret.Error(1)
}

func (_m *MockVoiceOverRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.VoiceOver, error) {
	ret := _m.Called(ctx, userID)

	var r0 []*models.VoiceOver
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.VoiceOver)
	}

	return r0, ret.Error(1)
}

// NewMockVoiceOverRepository creates a new instance of MockVoiceOverRepository.
// The first argument is typically a *testing.T value.
func NewMockVoiceOverRepository(t interface {
	mock.TestingT
	Helper()
}) *MockVoiceOverRepository {
	m := &MockVoiceOverRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ repository.VoiceOverRepository = (*MockVoiceOverRepository)(nil)
