package testutil

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/louisuxu-sys/BC-LINE/models"
)

// CreateTestCode creates an unused redemption code with default values
func CreateTestCode(code string, duration models.CodeDuration) *models.RedemptionCode {
	return &models.RedemptionCode{
		Code:      code,
		Duration:  duration,
		BatchID:   uuid.NewString(),
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

// CreateTestCodeBatch creates count codes sharing one batch id.
// Codes are zero padded to ten characters, e.g. "TEST000001".
func CreateTestCodeBatch(prefix string, count int, duration models.CodeDuration) []*models.RedemptionCode {
	batchID := uuid.NewString()
	createdAt := time.Now().UTC().Truncate(time.Microsecond)

	codes := make([]*models.RedemptionCode, 0, count)
	for i := 1; i <= count; i++ {
		codes = append(codes, &models.RedemptionCode{
			Code:      fmt.Sprintf("%s%0*d", prefix, 10-len(prefix), i),
			Duration:  duration,
			BatchID:   batchID,
			CreatedAt: createdAt,
		})
	}
	return codes
}
