package service

import (
	"context"
	"sync"
	"time"

	"github.com/louisuxu-sys/BC-LINE/events"
	"github.com/louisuxu-sys/BC-LINE/models"

	"github.com/stretchr/testify/mock"
)

// MockRoomHistoryRepository is a mock implementation of RoomHistoryRepository
type MockRoomHistoryRepository struct {
	mock.Mock
}

func (m *MockRoomHistoryRepository) Append(ctx context.Context, userID, room string, outcomes []models.Outcome, limit int) (*models.RoomSnapshot, error) {
	args := m.Called(ctx, userID, room, outcomes, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RoomSnapshot), args.Error(1)
}

func (m *MockRoomHistoryRepository) Get(ctx context.Context, userID, room string) (*models.RoomSnapshot, error) {
	args := m.Called(ctx, userID, room)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RoomSnapshot), args.Error(1)
}

func (m *MockRoomHistoryRepository) ClearRoom(ctx context.Context, userID, room string) error {
	args := m.Called(ctx, userID, room)
	return args.Error(0)
}

func (m *MockRoomHistoryRepository) ClearUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockEntitlementRepository is a mock implementation of EntitlementRepository
type MockEntitlementRepository struct {
	mock.Mock
}

func (m *MockEntitlementRepository) GetByUserID(ctx context.Context, userID string) (*models.Entitlement, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Entitlement), args.Error(1)
}

func (m *MockEntitlementRepository) Upsert(ctx context.Context, userID string, expiresAt time.Time) (*models.Entitlement, error) {
	args := m.Called(ctx, userID, expiresAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Entitlement), args.Error(1)
}

// MockRedemptionCodeRepository is a mock implementation of RedemptionCodeRepository
type MockRedemptionCodeRepository struct {
	mock.Mock
}

func (m *MockRedemptionCodeRepository) GetForUpdate(ctx context.Context, code string) (*models.RedemptionCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RedemptionCode), args.Error(1)
}

func (m *MockRedemptionCodeRepository) MarkUsed(ctx context.Context, code, userID string, usedAt time.Time) error {
	args := m.Called(ctx, code, userID, usedAt)
	return args.Error(0)
}

func (m *MockRedemptionCodeRepository) CreateBatch(ctx context.Context, codes []*models.RedemptionCode) error {
	args := m.Called(ctx, codes)
	return args.Error(0)
}

func (m *MockRedemptionCodeRepository) Exists(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockRedemptionCodeRepository) CountActive(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	mu        sync.Mutex
	published []events.Event
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, event)
}

// Events returns a copy of everything published so far
func (m *MockEventPublisher) Events() []events.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]events.Event, len(m.published))
	copy(out, m.published)
	return out
}

// OfType returns the published events with the given type
func (m *MockEventPublisher) OfType(eventType events.EventType) []events.Event {
	var out []events.Event
	for _, e := range m.Events() {
		if e.Type() == eventType {
			out = append(out, e)
		}
	}
	return out
}

// MockUnitOfWork is a mock implementation of UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
	entitlementRepo EntitlementRepository
	codeRepo        RedemptionCodeRepository
	eventBus        EventPublisher
}

// SetRepositories wires the repositories the unit of work hands out
func (m *MockUnitOfWork) SetRepositories(entitlementRepo EntitlementRepository, codeRepo RedemptionCodeRepository, eventBus EventPublisher) {
	m.entitlementRepo = entitlementRepo
	m.codeRepo = codeRepo
	m.eventBus = eventBus
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) EntitlementRepository() EntitlementRepository {
	return m.entitlementRepo
}

func (m *MockUnitOfWork) RedemptionCodeRepository() RedemptionCodeRepository {
	return m.codeRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	if m.eventBus == nil {
		m.eventBus = &MockEventPublisher{}
	}
	return m.eventBus
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
