package baccarat

import (
	"context"
	"errors"
	"fmt"

	"github.com/louisuxu-sys/BC-LINE/bot/common"
	"github.com/louisuxu-sys/BC-LINE/config"
	"github.com/louisuxu-sys/BC-LINE/models"
	"github.com/louisuxu-sys/BC-LINE/service"
	log "github.com/sirupsen/logrus"
)

// Start opens the flow for users with active access
func (f *Feature) Start(ctx context.Context, sess *common.Session) ([]common.Reply, error) {
	status, err := f.accessService.GetStatus(ctx, sess.UserID)
	if err != nil {
		return nil, common.NewSystemError(err, "failed to check access status")
	}
	if !status.IsActive() {
		return nil, common.NewUserError("❌ Access expired or not activated.", "baccarat denied without access")
	}

	sess.Reset()
	sess.State = common.StateChooseProvider

	buttons := make([]common.QuickReply, 0, len(f.catalog.Providers)+1)
	for _, p := range f.catalog.Providers {
		buttons = append(buttons, common.QuickReply{Label: p.Name, Text: f.catalog.PrefixText(config.PrefixProvider, p.Key)})
	}
	buttons = append(buttons, common.QuickReply{Label: "↩ Back to menu", Text: f.catalog.Text(config.CommandMenu)})

	return []common.Reply{
		common.WithButtons(fmt.Sprintf("🔑 Access remaining: %s\nChoose a platform:", status.Remaining), buttons...),
	}, nil
}

// ChooseProvider handles a provider button. It reports false when text is not a provider choice.
func (f *Feature) ChooseProvider(sess *common.Session, text string) ([]common.Reply, bool) {
	key, ok := f.catalog.CutPrefix(config.PrefixProvider, text)
	if !ok {
		return nil, false
	}
	provider, ok := f.catalog.Provider(key)
	if !ok {
		return []common.Reply{common.WithBack(fmt.Sprintf("⚠️ Unknown platform [%s]", key), f.menuText())}, true
	}

	sess.State = common.StateChooseRoom
	sess.Provider = provider.Key

	prompt := "Enter a room:"
	if !provider.Strict {
		prompt = "Enter the room directly:"
	}
	return []common.Reply{
		common.WithBack(fmt.Sprintf("✅ Selected %s\n\n%s\n(e.g. %s)", provider.Name, prompt, provider.Example), f.menuText()),
	}, true
}

// ChooseRoom validates the room for the selected provider and starts predicting
func (f *Feature) ChooseRoom(sess *common.Session, text string) []common.Reply {
	provider, ok := f.catalog.Provider(sess.Provider)
	if !ok {
		sess.Reset()
		return []common.Reply{common.MainMenu(f.catalog)}
	}

	input := text
	if rest, ok := f.catalog.CutPrefix(config.PrefixRoom, text); ok {
		input = rest
	}

	room, ok := provider.NormalizeRoom(input)
	if !ok {
		return []common.Reply{
			common.WithBack(fmt.Sprintf("⚠️ Invalid %s room\n\n(e.g. %s)", provider.Name, provider.Example), f.menuText()),
		}
	}

	sess.State = common.StatePredicting
	sess.Room = room

	log.WithFields(log.Fields{
		"user_id":  sess.UserID,
		"provider": provider.Key,
		"room":     room,
	}).Info("User connected to room")

	return []common.Reply{
		common.Text(fmt.Sprintf("🔗 Connecting... %s", room)),
		common.WithBack(fmt.Sprintf("✅ Connected to %s\n\nEnter results:\n1 (Player) 2 (Banker) 3 (Tie)", room), f.menuText()),
	}
}

// Predict records every outcome digit in text and returns the room analysis
func (f *Feature) Predict(ctx context.Context, sess *common.Session, text string) ([]common.Reply, error) {
	outcomes := models.ParseOutcomes(text)
	if len(outcomes) == 0 {
		return nil, common.NewUserError("⚠️ Please enter 1, 2 or 3", "prediction input without outcome codes")
	}

	analysis, err := f.predictionService.Record(ctx, sess.UserID, sess.Room, outcomes)
	if errors.Is(err, service.ErrNoOutcomes) {
		return nil, common.NewUserError("⚠️ Please enter 1, 2 or 3", "prediction input without outcome codes")
	}
	if err != nil {
		return nil, common.NewSystemError(err, "failed to record outcomes")
	}

	return []common.Reply{common.AnalysisReply{Room: sess.Room, Analysis: analysis}}, nil
}

// Clear wipes one room. Clearing a room that never existed still confirms.
func (f *Feature) Clear(ctx context.Context, userID, room string) ([]common.Reply, error) {
	if err := f.predictionService.ClearRoom(ctx, userID, room); err != nil {
		return nil, common.NewSystemError(err, "failed to clear room")
	}
	return []common.Reply{common.Text(fmt.Sprintf("✅ %s history cleared", room))}, nil
}

func (f *Feature) menuText() string {
	return f.catalog.Text(config.CommandMenu)
}
