package access

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/louisuxu-sys/BC-LINE/bot/common"
	"github.com/louisuxu-sys/BC-LINE/config"
	"github.com/louisuxu-sys/BC-LINE/models"
	"github.com/louisuxu-sys/BC-LINE/service"
	log "github.com/sirupsen/logrus"
)

// ShowUID tells users the id admins need to look them up
func (f *Feature) ShowUID(userID string) []common.Reply {
	return []common.Reply{common.Text(fmt.Sprintf("📋 Your UID:\n%s", userID))}
}

// IsAdmin reports whether the user may generate codes
func (f *Feature) IsAdmin(userID string) bool {
	return f.accessService.IsAdmin(userID)
}

// Generate issues a batch of redemption codes from "<duration> <count>"
func (f *Feature) Generate(ctx context.Context, adminID, args string) ([]common.Reply, error) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return nil, common.NewUserError(f.generateUsage(), "malformed generate command")
	}

	duration, ok := models.ParseCodeDuration(fields[0])
	if !ok {
		msg := fmt.Sprintf("⚠️ Invalid duration [%s]\n\nAvailable durations:\n%s\n\nFormat: %s [duration] [count]",
			fields[0], f.durationList(), f.catalog.Text(config.CommandGenerate))
		return nil, common.NewUserError(msg, "unknown code duration")
	}

	count, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, common.NewUserError(f.generateUsage(), "non-numeric code count")
	}

	codes, err := f.accessService.GenerateCodes(ctx, adminID, duration, count)
	switch {
	case errors.Is(err, service.ErrInvalidCount):
		return nil, common.NewUserError(fmt.Sprintf("⚠️ Count must be between 1 and %d", service.MaxCodesPerBatch), "code count out of range")
	case errors.Is(err, service.ErrNotAdmin):
		return nil, common.NewUserError("❌ Admin permission required.", "non-admin tried to generate codes")
	case errors.Is(err, service.ErrInvalidDuration):
		return nil, common.NewUserError(f.generateUsage(), "invalid code duration")
	case err != nil:
		return nil, common.NewSystemError(err, "failed to generate codes")
	}

	lines := make([]string, 0, len(codes))
	for _, c := range codes {
		lines = append(lines, c.Code)
	}

	log.WithFields(log.Fields{
		"user_id":  adminID,
		"duration": duration,
		"count":    len(codes),
	}).Info("Admin generated codes")

	return []common.Reply{
		common.Text(fmt.Sprintf("✅ Generated %d codes [%s]:", len(codes), duration.Label())),
		common.Plain(strings.Join(lines, "\n")),
	}, nil
}

// StartRedeem asks for a code; the next message is redeemed
func (f *Feature) StartRedeem(sess *common.Session) []common.Reply {
	sess.State = common.StateInputCode
	return []common.Reply{common.Text(fmt.Sprintf("Enter your %d-character redemption code:", service.CodeLength))}
}

// Redeem applies the code typed by the user and leaves the redeem flow either way
func (f *Feature) Redeem(ctx context.Context, sess *common.Session, code string) ([]common.Reply, error) {
	sess.Reset()

	status, err := f.accessService.Redeem(ctx, sess.UserID, code)
	if errors.Is(err, service.ErrCodeInvalid) {
		return nil, common.NewUserError("❌ Invalid code", "redemption code rejected")
	}
	if err != nil {
		return nil, common.NewSystemError(err, "failed to redeem code")
	}

	msg := "✅ Redeemed!"
	if status.ExpiresAt != nil {
		msg = fmt.Sprintf("✅ Redeemed! Valid until:\n%s", common.FormatExpiry(*status.ExpiresAt))
	}
	return []common.Reply{common.Text(msg)}, nil
}

func (f *Feature) generateUsage() string {
	keys := make([]string, 0, len(f.catalog.Durations))
	for _, d := range f.catalog.CodeDurations() {
		keys = append(keys, string(d))
	}
	return fmt.Sprintf("⚠️ Format: %s [duration] [count]\n\nAvailable: %s",
		f.catalog.Text(config.CommandGenerate), strings.Join(keys, " / "))
}

func (f *Feature) durationList() string {
	lines := make([]string, 0, len(f.catalog.Durations))
	for _, d := range f.catalog.CodeDurations() {
		lines = append(lines, fmt.Sprintf("  %s = %s", d, d.Label()))
	}
	return strings.Join(lines, "\n")
}
