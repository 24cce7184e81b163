package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/louisuxu-sys/BC-LINE/bot"
	"github.com/louisuxu-sys/BC-LINE/bot/common"
	log "github.com/sirupsen/logrus"
)

// Platform tags messages that arrived through Discord
const Platform = "discord"

// UserIDPrefix keeps Discord user ids apart from LINE ids in shared stores
const UserIDPrefix = "discord:"

// MessageHandler runs one conversation turn
type MessageHandler interface {
	HandleMessage(ctx context.Context, msg bot.Message) []common.Reply
}

// sessionAPI is the subset of *discordgo.Session the frontend calls
type sessionAPI interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
}

// Frontend connects the bot to Discord messages and button clicks
type Frontend struct {
	session  *discordgo.Session
	api      sessionAPI
	handler  MessageHandler
	renderer *Renderer
	ctx      context.Context
}

// New creates a frontend. Open must be called to connect.
func New(token string, handler MessageHandler, renderer *Renderer) (*Frontend, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages | discordgo.IntentsMessageContent

	f := &Frontend{
		session:  dg,
		api:      dg,
		handler:  handler,
		renderer: renderer,
		ctx:      context.Background(),
	}
	dg.AddHandler(f.handleMessageCreate)
	dg.AddHandler(f.handleInteraction)
	return f, nil
}

// Open connects the websocket. ctx is used for every conversation turn.
func (f *Frontend) Open(ctx context.Context) error {
	f.ctx = ctx
	if err := f.session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}
	log.Info("Discord frontend connected")
	return nil
}

func (f *Frontend) Close() error {
	return f.session.Close()
}

// Run opens the connection and blocks until ctx is cancelled
func (f *Frontend) Run(ctx context.Context) error {
	if err := f.Open(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	log.Info("Discord frontend shutting down")
	return f.Close()
}

func (f *Frontend) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if s.State != nil && s.State.User != nil && m.Author.ID == s.State.User.ID {
		return
	}
	f.converse(m.ChannelID, m.Author.ID, m.Content)
}

func (f *Frontend) handleInteraction(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}
	text, ok := ButtonText(i.MessageComponentData().CustomID)
	if !ok {
		return
	}

	user := i.User
	if i.Member != nil && i.Member.User != nil {
		user = i.Member.User
	}
	if user == nil {
		return
	}

	if err := f.api.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	}); err != nil {
		log.WithError(err).WithField("user_id", user.ID).Warn("Failed to acknowledge button")
	}
	f.converse(i.ChannelID, user.ID, text)
}

func (f *Frontend) converse(channelID, discordUserID, text string) {
	replies := f.handler.HandleMessage(f.ctx, bot.Message{
		UserID:   UserIDPrefix + discordUserID,
		Text:     text,
		Platform: Platform,
	})

	for _, msg := range f.renderer.Render(replies) {
		if _, err := f.api.ChannelMessageSendComplex(channelID, msg); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"channel_id": channelID,
				"user_id":    discordUserID,
			}).Error("Failed to send Discord message")
			return
		}
	}
}
