package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/louisuxu-sys/BC-LINE/database"
	"github.com/louisuxu-sys/BC-LINE/models"
)

// redemptionCodeDB is the row shape of redemption_codes
type redemptionCodeDB struct {
	Code      string     `db:"code"`
	Duration  string     `db:"duration"`
	BatchID   string     `db:"batch_id"`
	CreatedAt time.Time  `db:"created_at"`
	UsedBy    *string    `db:"used_by"`
	UsedAt    *time.Time `db:"used_at"`
}

func (c *redemptionCodeDB) toDomain() *models.RedemptionCode {
	code := &models.RedemptionCode{
		Code:      c.Code,
		Duration:  models.CodeDuration(c.Duration),
		BatchID:   c.BatchID,
		CreatedAt: c.CreatedAt.UTC(),
		UsedBy:    c.UsedBy,
	}
	if c.UsedAt != nil {
		usedAt := c.UsedAt.UTC()
		code.UsedAt = &usedAt
	}
	return code
}

// RedemptionCodeRepository implements the RedemptionCodeRepository interface
type RedemptionCodeRepository struct {
	q Queryable
}

// NewRedemptionCodeRepository creates a new redemption code repository
func NewRedemptionCodeRepository(db *database.DB) *RedemptionCodeRepository {
	return &RedemptionCodeRepository{q: db.Pool}
}

// newRedemptionCodeRepositoryWithTx creates a new redemption code repository with a transaction
func newRedemptionCodeRepositoryWithTx(tx Queryable) *RedemptionCodeRepository {
	return &RedemptionCodeRepository{q: tx}
}

// GetForUpdate returns a code and locks its row for the rest of the transaction
func (r *RedemptionCodeRepository) GetForUpdate(ctx context.Context, code string) (*models.RedemptionCode, error) {
	query := `
		SELECT code, duration, batch_id, created_at, used_by, used_at
		FROM redemption_codes
		WHERE code = $1
		FOR UPDATE
	`

	rows, err := r.q.Query(ctx, query, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get redemption code: %w", err)
	}

	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[redemptionCodeDB])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan redemption code: %w", err)
	}
	return row.toDomain(), nil
}

// MarkUsed moves a code to the used state
func (r *RedemptionCodeRepository) MarkUsed(ctx context.Context, code, userID string, usedAt time.Time) error {
	query := `
		UPDATE redemption_codes
		SET used_by = $2, used_at = $3
		WHERE code = $1 AND used_by IS NULL
	`

	tag, err := r.q.Exec(ctx, query, code, userID, usedAt)
	if err != nil {
		return fmt.Errorf("failed to mark code used: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("code %s is unknown or already used", code)
	}
	return nil
}

// CreateBatch stores newly generated codes in a single insert
func (r *RedemptionCodeRepository) CreateBatch(ctx context.Context, codes []*models.RedemptionCode) error {
	if len(codes) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO redemption_codes (code, duration, batch_id, created_at) VALUES `)

	values := make([]any, 0, len(codes)*4)
	for i, c := range codes {
		if i > 0 {
			sb.WriteString(", ")
		}
		offset := i * 4
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d)", offset+1, offset+2, offset+3, offset+4)
		values = append(values, c.Code, string(c.Duration), c.BatchID, c.CreatedAt)
	}

	if _, err := r.q.Exec(ctx, sb.String(), values...); err != nil {
		return fmt.Errorf("failed to batch create redemption codes: %w", err)
	}
	return nil
}

// Exists reports whether a code was ever issued
func (r *RedemptionCodeRepository) Exists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM redemption_codes WHERE code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check redemption code: %w", err)
	}
	return exists, nil
}

// CountActive returns the number of unused codes
func (r *RedemptionCodeRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM redemption_codes WHERE used_by IS NULL`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active codes: %w", err)
	}
	return count, nil
}
