package service

import (
	"context"
	"time"

	"github.com/louisuxu-sys/BC-LINE/events"
	"github.com/louisuxu-sys/BC-LINE/models"
)

// RoomHistoryRepository defines the interface for per-user room history storage
type RoomHistoryRepository interface {
	// Append adds outcomes to a room, bumps its totals and trims the history to limit entries
	Append(ctx context.Context, userID, room string, outcomes []models.Outcome, limit int) (*models.RoomSnapshot, error)

	// Get returns a copy of the room state; an unknown room yields an empty snapshot
	Get(ctx context.Context, userID, room string) (*models.RoomSnapshot, error)

	// ClearRoom empties the history and totals of one room
	ClearRoom(ctx context.Context, userID, room string) error

	// ClearUser drops every room of a user
	ClearUser(ctx context.Context, userID string) error
}

// EntitlementRepository defines the interface for access entitlement data access
type EntitlementRepository interface {
	// GetByUserID returns the entitlement of a user, or nil when the user never redeemed a code
	GetByUserID(ctx context.Context, userID string) (*models.Entitlement, error)

	// Upsert sets the expiry of a user's entitlement
	Upsert(ctx context.Context, userID string, expiresAt time.Time) (*models.Entitlement, error)
}

// RedemptionCodeRepository defines the interface for redemption code data access
type RedemptionCodeRepository interface {
	// GetForUpdate returns a code and locks its row for the rest of the transaction
	GetForUpdate(ctx context.Context, code string) (*models.RedemptionCode, error)

	// MarkUsed moves a code to the used state
	MarkUsed(ctx context.Context, code, userID string, usedAt time.Time) error

	// CreateBatch stores newly generated codes
	CreateBatch(ctx context.Context, codes []*models.RedemptionCode) error

	// Exists reports whether a code was ever issued
	Exists(ctx context.Context, code string) (bool, error)

	// CountActive returns the number of unused codes
	CountActive(ctx context.Context) (int, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	EntitlementRepository() EntitlementRepository
	RedemptionCodeRepository() RedemptionCodeRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// PredictionService defines the interface for recording outcomes and analysing rooms
type PredictionService interface {
	// Record appends outcomes to a room and returns the fresh analysis
	Record(ctx context.Context, userID, room string, outcomes []models.Outcome) (*models.RoomAnalysis, error)

	// Analyze returns the analysis of a room without changing it
	Analyze(ctx context.Context, userID, room string) (*models.RoomAnalysis, error)

	// ClearRoom resets one room of a user
	ClearRoom(ctx context.Context, userID, room string) error

	// ClearUser resets every room of a user
	ClearUser(ctx context.Context, userID string) error
}

// AccessService defines the interface for entitlement checks and redemption codes
type AccessService interface {
	// GetStatus resolves whether a user currently has access
	GetStatus(ctx context.Context, userID string) (*models.AccessStatus, error)

	// Redeem applies a redemption code to a user's entitlement
	Redeem(ctx context.Context, userID, code string) (*models.AccessStatus, error)

	// GenerateCodes issues a batch of codes; only admins may call it
	GenerateCodes(ctx context.Context, adminID string, duration models.CodeDuration, count int) ([]*models.RedemptionCode, error)

	// IsAdmin reports whether the user is a configured admin
	IsAdmin(userID string) bool
}

// SlotService defines the interface for the slot machine advisor
type SlotService interface {
	// Advise compares a machine's score rate against the fixed RTP
	Advise(totalBet, scoreRate float64) (*models.SlotAdvice, error)
}

// BankrollService defines the interface for the simulated bankroll that follows the engine
type BankrollService interface {
	// Settle resolves the pending bet of a room against the next outcome
	Settle(userID, room string, outcome models.Outcome) models.BankrollSnapshot

	// Place stakes the prediction's suggestion as the room's pending bet
	Place(userID, room string, prediction models.PredictionResult) models.BankrollSnapshot

	// Snapshot returns the current state of a room's bankroll
	Snapshot(userID, room string) models.BankrollSnapshot

	// Reset drops the bankroll of one room
	Reset(userID, room string)

	// ResetUser drops every bankroll of a user
	ResetUser(userID string)
}
