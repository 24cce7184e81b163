package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/louisuxu-sys/BC-LINE/events"
	"github.com/louisuxu-sys/BC-LINE/models"
	log "github.com/sirupsen/logrus"
)

const (
	// CodeAlphabet omits I, O, 0 and 1 so codes survive being read aloud
	CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	CodeLength   = 10

	MaxCodesPerBatch = 100

	maxCodeAttempts = 10
)

// accessService implements the AccessService interface
type accessService struct {
	uowFactory UnitOfWorkFactory
	admins     map[string]struct{}
	now        func() time.Time
	newCode    func() (string, error)
}

// NewAccessService creates a new access service
func NewAccessService(uowFactory UnitOfWorkFactory, adminUserIDs []string) AccessService {
	admins := make(map[string]struct{}, len(adminUserIDs))
	for _, id := range adminUserIDs {
		if id = strings.TrimSpace(id); id != "" {
			admins[id] = struct{}{}
		}
	}
	return &accessService{
		uowFactory: uowFactory,
		admins:     admins,
		now:        func() time.Time { return time.Now().UTC() },
		newCode:    GenerateCode,
	}
}

// GenerateCode returns a random redemption code drawn from CodeAlphabet
func GenerateCode() (string, error) {
	alphabetSize := big.NewInt(int64(len(CodeAlphabet)))
	var sb strings.Builder
	sb.Grow(CodeLength)
	for range CodeLength {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("failed to read random source: %w", err)
		}
		sb.WriteByte(CodeAlphabet[n.Int64()])
	}
	return sb.String(), nil
}

// NormalizeCode upper-cases a code and strips surrounding whitespace
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s *accessService) IsAdmin(userID string) bool {
	_, ok := s.admins[userID]
	return ok
}

// GetStatus resolves whether a user currently has access
func (s *accessService) GetStatus(ctx context.Context, userID string) (*models.AccessStatus, error) {
	if s.IsAdmin(userID) {
		return &models.AccessStatus{State: models.AccessActive, Remaining: PermanentLabel, Permanent: true}, nil
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	entitlement, err := uow.EntitlementRepository().GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get entitlement: %w", err)
	}
	return s.statusOf(entitlement), nil
}

func (s *accessService) statusOf(entitlement *models.Entitlement) *models.AccessStatus {
	if entitlement == nil {
		return &models.AccessStatus{State: models.AccessNone}
	}

	expiresAt := entitlement.ExpiresAt
	now := s.now()
	if !now.Before(expiresAt) {
		return &models.AccessStatus{State: models.AccessExpired, ExpiresAt: &expiresAt}
	}
	return &models.AccessStatus{
		State:     models.AccessActive,
		Remaining: FormatRemaining(expiresAt.Sub(now)),
		ExpiresAt: &expiresAt,
	}
}

// Redeem applies a redemption code to a user's entitlement
func (s *accessService) Redeem(ctx context.Context, userID, code string) (*models.AccessStatus, error) {
	code = NormalizeCode(code)
	if code == "" {
		return nil, ErrCodeInvalid
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	redemption, err := uow.RedemptionCodeRepository().GetForUpdate(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get redemption code: %w", err)
	}
	if redemption == nil || redemption.IsUsed() {
		return nil, ErrCodeInvalid
	}

	entitlement, err := uow.EntitlementRepository().GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get entitlement: %w", err)
	}

	now := s.now()
	var current *time.Time
	if entitlement != nil {
		current = &entitlement.ExpiresAt
	}
	expiresAt := ExtendFrom(now, current, redemption.Duration.Duration())

	updated, err := uow.EntitlementRepository().Upsert(ctx, userID, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update entitlement: %w", err)
	}
	if err := uow.RedemptionCodeRepository().MarkUsed(ctx, code, userID, now); err != nil {
		return nil, fmt.Errorf("failed to mark code used: %w", err)
	}

	uow.EventBus().Publish(events.CodeRedeemedEvent{
		UserID:    userID,
		Code:      code,
		Duration:  redemption.Duration,
		ExpiresAt: expiresAt,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"user_id":    userID,
		"duration":   redemption.Duration,
		"expires_at": expiresAt,
	}).Info("Redemption code applied")

	return s.statusOf(updated), nil
}

// GenerateCodes issues a batch of codes; only admins may call it
func (s *accessService) GenerateCodes(ctx context.Context, adminID string, duration models.CodeDuration, count int) ([]*models.RedemptionCode, error) {
	if !s.IsAdmin(adminID) {
		return nil, ErrNotAdmin
	}
	if duration.Duration() <= 0 {
		return nil, ErrInvalidDuration
	}
	if count < 1 || count > MaxCodesPerBatch {
		return nil, ErrInvalidCount
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	batchID := uuid.NewString()
	createdAt := s.now()
	seen := make(map[string]struct{}, count)
	codes := make([]*models.RedemptionCode, 0, count)

	for len(codes) < count {
		code, err := s.uniqueCode(ctx, uow.RedemptionCodeRepository(), seen)
		if err != nil {
			return nil, err
		}
		seen[code] = struct{}{}
		codes = append(codes, &models.RedemptionCode{
			Code:      code,
			Duration:  duration,
			BatchID:   batchID,
			CreatedAt: createdAt,
		})
	}

	if err := uow.RedemptionCodeRepository().CreateBatch(ctx, codes); err != nil {
		return nil, fmt.Errorf("failed to store codes: %w", err)
	}

	uow.EventBus().Publish(events.CodesGeneratedEvent{
		AdminID:  adminID,
		BatchID:  batchID,
		Duration: duration,
		Count:    len(codes),
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"admin_id": adminID,
		"batch_id": batchID,
		"duration": duration,
		"count":    len(codes),
	}).Info("Generated redemption codes")

	return codes, nil
}

func (s *accessService) uniqueCode(ctx context.Context, repo RedemptionCodeRepository, seen map[string]struct{}) (string, error) {
	for range maxCodeAttempts {
		code, err := s.newCode()
		if err != nil {
			return "", err
		}
		if _, dup := seen[code]; dup {
			continue
		}
		exists, err := repo.Exists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to check code uniqueness: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("failed to generate a unique code after %d attempts", maxCodeAttempts)
}
