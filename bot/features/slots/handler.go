package slots

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/louisuxu-sys/BC-LINE/bot/common"
	"github.com/louisuxu-sys/BC-LINE/config"
	"github.com/louisuxu-sys/BC-LINE/service"
)

// Start opens the flow for users with active access
func (f *Feature) Start(ctx context.Context, sess *common.Session) ([]common.Reply, error) {
	status, err := f.accessService.GetStatus(ctx, sess.UserID)
	if err != nil {
		return nil, common.NewSystemError(err, "failed to check access status")
	}
	if !status.IsActive() {
		return nil, common.NewUserError("❌ Insufficient access, please redeem a code first.", "slots denied without access")
	}

	sess.Reset()
	sess.State = common.StateSlotChooseGame
	return []common.Reply{common.WithButtons("🎰 Choose a slot game:", f.gameButtons()...)}, nil
}

// ChooseGame handles a game button. It reports false when text is not a game choice.
func (f *Feature) ChooseGame(sess *common.Session, text string) ([]common.Reply, bool) {
	game, ok := f.catalog.CutPrefix(config.PrefixGame, text)
	if !ok {
		return nil, false
	}
	idx := slices.IndexFunc(f.catalog.Slots.Games, func(g string) bool { return strings.EqualFold(g, game) })
	if idx < 0 {
		return []common.Reply{common.WithButtons(fmt.Sprintf("⚠️ Unknown game [%s]", game), f.gameButtons()...)}, true
	}

	sess.State = common.StateSlotChooseRoom
	sess.Game = f.catalog.Slots.Games[idx]
	return []common.Reply{
		common.WithBack(fmt.Sprintf("✅ Selected %s\nEnter a room (%d~%d):\ne.g. %s",
			sess.Game, f.catalog.Slots.RoomMin, f.catalog.Slots.RoomMax, f.catalog.Slots.RoomExample), f.menuText()),
	}, true
}

// ChooseRoom locks the machine; any text is a valid room
func (f *Feature) ChooseRoom(sess *common.Session, text string) []common.Reply {
	sess.State = common.StateSlotInputBet
	sess.Room = strings.TrimSpace(text)
	return []common.Reply{
		common.WithBack(fmt.Sprintf("✅ Locked: %s room %s\n\nStep 1: enter today's total bet", sess.Game, sess.Room), f.menuText()),
	}
}

// InputBet stores today's total bet
func (f *Feature) InputBet(sess *common.Session, text string) ([]common.Reply, error) {
	bet, err := parseAmount(text)
	if err != nil || bet < 0 {
		return nil, common.NewUserError("⚠️ Invalid format, enter the total bet as a number.", "non-numeric slot bet")
	}

	sess.State = common.StateSlotInputRate
	sess.TotalBet = bet
	return []common.Reply{
		common.WithBack(fmt.Sprintf("💰 Total bet set: %s\n\nStep 2: enter today's score rate\n(e.g. 48)", common.FormatAmount(bet)), f.menuText()),
	}, nil
}

// InputRate runs the advisor and loops back to the bet step for the same machine
func (f *Feature) InputRate(sess *common.Session, text string) ([]common.Reply, error) {
	rate, err := parseAmount(strings.TrimSuffix(strings.TrimSpace(text), "%"))
	if err != nil {
		return nil, common.NewUserError("⚠️ Invalid format, enter the score rate as a number.", "non-numeric slot rate")
	}

	advice, err := f.slotService.Advise(sess.TotalBet, rate)
	if errors.Is(err, service.ErrInvalidAmount) {
		return nil, common.NewUserError("⚠️ The score rate must not be negative.", "negative slot rate")
	}
	if err != nil {
		return nil, common.NewSystemError(err, "failed to compute slot advice")
	}

	sess.State = common.StateSlotInputBet
	sess.TotalBet = 0
	return []common.Reply{common.SlotReply{
		Room:   fmt.Sprintf("%s room:%s", sess.Game, sess.Room),
		Game:   sess.Game,
		Advice: advice,
	}}, nil
}

func (f *Feature) gameButtons() []common.QuickReply {
	buttons := make([]common.QuickReply, 0, len(f.catalog.Slots.Games))
	for _, g := range f.catalog.Slots.Games {
		buttons = append(buttons, common.QuickReply{Label: g, Text: f.catalog.PrefixText(config.PrefixGame, g)})
	}
	return buttons
}

func (f *Feature) menuText() string {
	return f.catalog.Text(config.CommandMenu)
}

func parseAmount(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(text), ",", ""), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("amount %q is not finite", text)
	}
	return v, nil
}
