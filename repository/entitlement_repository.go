package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/louisuxu-sys/BC-LINE/database"
	"github.com/louisuxu-sys/BC-LINE/models"
)

// EntitlementRepository implements the EntitlementRepository interface
type EntitlementRepository struct {
	q Queryable
}

// NewEntitlementRepository creates a new entitlement repository
func NewEntitlementRepository(db *database.DB) *EntitlementRepository {
	return &EntitlementRepository{q: db.Pool}
}

// newEntitlementRepositoryWithTx creates a new entitlement repository with a transaction
func newEntitlementRepositoryWithTx(tx Queryable) *EntitlementRepository {
	return &EntitlementRepository{q: tx}
}

// GetByUserID returns the entitlement of a user, or nil when the user never redeemed a code
func (r *EntitlementRepository) GetByUserID(ctx context.Context, userID string) (*models.Entitlement, error) {
	query := `
		SELECT user_id, expires_at, updated_at
		FROM entitlements
		WHERE user_id = $1
	`

	var e models.Entitlement
	err := r.q.QueryRow(ctx, query, userID).Scan(&e.UserID, &e.ExpiresAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entitlement for user %s: %w", userID, err)
	}

	e.ExpiresAt = e.ExpiresAt.UTC()
	e.UpdatedAt = e.UpdatedAt.UTC()
	return &e, nil
}

// Upsert sets the expiry of a user's entitlement
func (r *EntitlementRepository) Upsert(ctx context.Context, userID string, expiresAt time.Time) (*models.Entitlement, error) {
	query := `
		INSERT INTO entitlements (user_id, expires_at)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE
		SET expires_at = EXCLUDED.expires_at,
		    updated_at = NOW()
		RETURNING user_id, expires_at, updated_at
	`

	var e models.Entitlement
	err := r.q.QueryRow(ctx, query, userID, expiresAt).Scan(&e.UserID, &e.ExpiresAt, &e.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert entitlement for user %s: %w", userID, err)
	}

	e.ExpiresAt = e.ExpiresAt.UTC()
	e.UpdatedAt = e.UpdatedAt.UTC()
	return &e, nil
}
