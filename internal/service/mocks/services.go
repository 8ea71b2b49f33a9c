package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"studio-server/internal/models"
	"studio-server/internal/service"
)

// MockAuthService is a mock type for the service.AuthService type
type MockAuthService struct {
	mock.Mock
}

func (_m *MockAuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	ret := _m.Called(ctx, username, email, password)

	var r0 *models.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.User)
	}

	return r0, ret.Error(1)
}

func (_m *MockAuthService) Login(ctx context.Context, login, password string) (*models.User, *models.TokenDetails, error) {
	ret := _m.Called(ctx, login, password)

	var r0 *models.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.User)
	}

	var r1 *models.TokenDetails
	if ret.Get(1) != nil {
		r1 = ret.Get(1).(*models.TokenDetails)
	}

	return r0, r1, ret.Error(2)
}

func (_m *MockAuthService) Logout(ctx context.Context, userID uuid.UUID, accessUUID, refreshUUID string) error {
	ret := _m.Called(ctx, userID, accessUUID, refreshUUID)
	return ret.Error(0)
}

func (_m *MockAuthService) Refresh(ctx context.Context, refreshTokenString string) (*models.TokenDetails, error) {
	ret := _m.Called(ctx, refreshTokenString)

	var r0 *models.TokenDetails
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.TokenDetails)
	}

	return r0, ret.Error(1)
}

func (_m *MockAuthService) VerifyAccessToken(ctx context.Context, tokenString string) (*models.Claims, error) {
	ret := _m.Called(ctx, tokenString)

	var r0 *models.Claims
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Claims)
	}

	return r0, ret.Error(1)
}

func (_m *MockAuthService) GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	ret := _m.Called(ctx, userID)

	var r0 *models.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.User)
	}

	return r0, ret.Error(1)
}

// NewMockAuthService creates a new instance of MockAuthService.
// The first argument is typically a *testing.T value.
func NewMockAuthService(t interface {
	mock.TestingT
	Helper()
}) *MockAuthService {
	m := &MockAuthService{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ service.AuthService = (*MockAuthService)(nil)

// MockGenerationService is a mock type for the service.GenerationService type
type MockGenerationService struct {
	mock.Mock
}

func (_m *MockGenerationService) GenerateScript(ctx context.Context, userID uuid.UUID, prompt string, length service.ScriptLength) (string, error) {
	ret := _m.Called(ctx, userID, prompt, length)

	var r0 string
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(string)
	}

	return r0, ret.Error(1)
}

func (_m *MockGenerationService) GenerateStoryboard(ctx context.Context, userID uuid.UUID, script string) ([]models.StoryboardFrame, error) {
	ret := _m.Called(ctx, userID, script)

	var r0 []models.StoryboardFrame
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.StoryboardFrame)
	}

	return r0, ret.Error(1)
}

// NewMockGenerationService creates a new instance of MockGenerationService.
// The first argument is typically a *testing.T value.
func NewMockGenerationService(t interface {
	mock.TestingT
	Helper()
}) *MockGenerationService {
	m := &MockGenerationService{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ service.GenerationService = (*MockGenerationService)(nil)

// MockVoiceService is a mock type for the service.VoiceService type
type MockVoiceService struct {
	mock.Mock
}

func (_m *MockVoiceService) CloneVoice(ctx context.Context, userID uuid.UUID, name, sampleText string, settings models.VoiceSettings, avatarID *uuid.UUID) (*models.VoiceOver, error) {
	ret := _m.Called(ctx, userID, name, sampleText, settings, avatarID)

	var r0 *models.VoiceOver
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.VoiceOver)
	}

	return r0, ret.Error(1)
}

func (_m *MockVoiceService) AnalyzeVoice(ctx context.Context, userID uuid.UUID, audioURL string, voiceID *uuid.UUID) (*models.VoiceAnalysis, error) {
	ret := _m.Called(ctx, userID, audioURL, voiceID)

	var r0 *models.VoiceAnalysis
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.VoiceAnalysis)
	}

	return r0, ret.Error(1)
}

func (_m *MockVoiceService) ListVoices(ctx context.Context, userID uuid.UUID) ([]*models.VoiceOver, error) {
	ret := _m.Called(ctx, userID)

	var r0 []*models.VoiceOver
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.VoiceOver)
	}

	return r0, ret.Error(1)
}

// NewMockVoiceService creates a new instance of MockVoiceService.
// The first argument is typically a *testing.T value.
func NewMockVoiceService(t interface {
	mock.TestingT
	Helper()
}) *MockVoiceService {
	m := &MockVoiceService{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ service.VoiceService = (*MockVoiceService)(nil)

// MockAnalyticsService is a mock type for the service.AnalyticsService type
type MockAnalyticsService struct {
	mock.Mock
}

func (_m *MockAnalyticsService) GetAnalytics(ctx context.Context, userID uuid.UUID) (*models.AnalyticsData, error) {
	ret := _m.Called(ctx, userID)

	var r0 *models.AnalyticsData
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.AnalyticsData)
	}

	return r0, ret.Error(1)
}

// NewMockAnalyticsService creates a new instance of MockAnalyticsService.
// The first argument is typically a *testing.T value.
func NewMockAnalyticsService(t interface {
	mock.TestingT
	Helper()
}) *MockAnalyticsService {
	m := &MockAnalyticsService{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ service.AnalyticsService = (*MockAnalyticsService)(nil)
