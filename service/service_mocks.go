package service

import (
	"context"

	"github.com/louisuxu-sys/BC-LINE/models"

	"github.com/stretchr/testify/mock"
)

// MockPredictionService is a mock implementation of PredictionService
type MockPredictionService struct {
	mock.Mock
}

func (m *MockPredictionService) Record(ctx context.Context, userID, room string, outcomes []models.Outcome) (*models.RoomAnalysis, error) {
	args := m.Called(ctx, userID, room, outcomes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RoomAnalysis), args.Error(1)
}

func (m *MockPredictionService) Analyze(ctx context.Context, userID, room string) (*models.RoomAnalysis, error) {
	args := m.Called(ctx, userID, room)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RoomAnalysis), args.Error(1)
}

func (m *MockPredictionService) ClearRoom(ctx context.Context, userID, room string) error {
	args := m.Called(ctx, userID, room)
	return args.Error(0)
}

func (m *MockPredictionService) ClearUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockAccessService is a mock implementation of AccessService
type MockAccessService struct {
	mock.Mock
}

func (m *MockAccessService) GetStatus(ctx context.Context, userID string) (*models.AccessStatus, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AccessStatus), args.Error(1)
}

func (m *MockAccessService) Redeem(ctx context.Context, userID, code string) (*models.AccessStatus, error) {
	args := m.Called(ctx, userID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AccessStatus), args.Error(1)
}

func (m *MockAccessService) GenerateCodes(ctx context.Context, adminID string, duration models.CodeDuration, count int) ([]*models.RedemptionCode, error) {
	args := m.Called(ctx, adminID, duration, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RedemptionCode), args.Error(1)
}

func (m *MockAccessService) IsAdmin(userID string) bool {
	args := m.Called(userID)
	return args.Bool(0)
}
