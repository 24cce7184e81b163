package bot

import (
	"context"
	"strings"

	"github.com/louisuxu-sys/BC-LINE/bot/common"
	"github.com/louisuxu-sys/BC-LINE/bot/features/access"
	"github.com/louisuxu-sys/BC-LINE/bot/features/baccarat"
	"github.com/louisuxu-sys/BC-LINE/bot/features/slots"
	"github.com/louisuxu-sys/BC-LINE/config"
	"github.com/louisuxu-sys/BC-LINE/service"
	log "github.com/sirupsen/logrus"
)

// Message is one inbound chat message, independent of the transport it came from
type Message struct {
	UserID   string
	Text     string
	Platform string
}

// Bot is the conversational state machine shared by every transport
type Bot struct {
	catalog           *config.Catalog
	sessions          *SessionStore
	predictionService service.PredictionService

	access   *access.Feature
	baccarat *baccarat.Feature
	slots    *slots.Feature
}

// New wires the features around the shared services
func New(catalog *config.Catalog, sessions *SessionStore, predictionService service.PredictionService, accessService service.AccessService, slotService service.SlotService) *Bot {
	return &Bot{
		catalog:           catalog,
		sessions:          sessions,
		predictionService: predictionService,
		access:            access.New(catalog, accessService),
		baccarat:          baccarat.New(catalog, predictionService, accessService),
		slots:             slots.New(catalog, slotService, accessService),
	}
}

// Catalog returns the catalog the bot was built with
func (b *Bot) Catalog() *config.Catalog {
	return b.catalog
}

// HandleMessage runs one turn of the conversation and returns the replies to send.
// Errors never escape: they are logged and turned into a text reply.
func (b *Bot) HandleMessage(ctx context.Context, msg Message) []common.Reply {
	text := strings.TrimSpace(msg.Text)
	sess := b.sessions.Get(msg.UserID)

	log.WithFields(log.Fields{
		"user_id":  msg.UserID,
		"platform": msg.Platform,
		"state":    sess.State,
	}).Debug("Handling message")

	replies, err := b.dispatch(ctx, &sess, text)
	b.sessions.Save(sess)
	if err != nil {
		return common.HandleError(msg.UserID, string(sess.State), err)
	}
	return replies
}

func (b *Bot) dispatch(ctx context.Context, sess *common.Session, text string) ([]common.Reply, error) {
	c := b.catalog

	if c.Is(config.CommandUID, text) {
		return b.access.ShowUID(sess.UserID), nil
	}

	if args, ok := c.HasCommandPrefix(config.CommandGenerate, text); ok && b.access.IsAdmin(sess.UserID) {
		return b.access.Generate(ctx, sess.UserID, args)
	}

	if c.Is(config.CommandMenu, text) {
		sess.Reset()
		if err := b.predictionService.ClearUser(ctx, sess.UserID); err != nil {
			return nil, common.NewSystemError(err, "failed to clear user rooms")
		}
		return []common.Reply{common.MainMenu(c)}, nil
	}

	if room, ok := c.CutPrefix(config.PrefixClear, text); ok && room != "" {
		return b.baccarat.Clear(ctx, sess.UserID, room)
	}

	if c.Is(config.CommandSlots, text) {
		return b.slots.Start(ctx, sess)
	}
	switch sess.State {
	case common.StateSlotChooseGame:
		if replies, ok := b.slots.ChooseGame(sess, text); ok {
			return replies, nil
		}
	case common.StateSlotChooseRoom:
		return b.slots.ChooseRoom(sess, text), nil
	case common.StateSlotInputBet:
		return b.slots.InputBet(sess, text)
	case common.StateSlotInputRate:
		return b.slots.InputRate(sess, text)
	}

	if c.Is(config.CommandBaccarat, text) {
		return b.baccarat.Start(ctx, sess)
	}
	switch sess.State {
	case common.StateChooseProvider:
		if replies, ok := b.baccarat.ChooseProvider(sess, text); ok {
			return replies, nil
		}
	case common.StateChooseRoom:
		return b.baccarat.ChooseRoom(sess, text), nil
	case common.StatePredicting:
		return b.baccarat.Predict(ctx, sess, text)
	}

	if c.Is(config.CommandRedeem, text) {
		return b.access.StartRedeem(sess), nil
	}
	if sess.State == common.StateInputCode {
		return b.access.Redeem(ctx, sess, text)
	}

	return []common.Reply{common.MainMenu(c)}, nil
}
