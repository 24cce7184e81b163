package discord

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/louisuxu-sys/BC-LINE/bot"
	"github.com/louisuxu-sys/BC-LINE/bot/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	sent      []*discordgo.MessageSend
	channels  []string
	responses []*discordgo.InteractionResponse
	sendErr   error
}

func (f *fakeAPI) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.channels = append(f.channels, channelID)
	f.sent = append(f.sent, data)
	return &discordgo.Message{ID: "m1"}, f.sendErr
}

func (f *fakeAPI) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	f.responses = append(f.responses, resp)
	return nil
}

type recordingHandler struct {
	messages []bot.Message
	replies  []common.Reply
}

func (h *recordingHandler) HandleMessage(_ context.Context, msg bot.Message) []common.Reply {
	h.messages = append(h.messages, msg)
	return h.replies
}

func newTestFrontend(t *testing.T, handler MessageHandler) (*Frontend, *fakeAPI) {
	t.Helper()
	api := &fakeAPI{}
	return &Frontend{
		api:      api,
		handler:  handler,
		renderer: newTestRenderer(t, nil),
		ctx:      context.Background(),
	}, api
}

func TestHandleMessageCreate(t *testing.T) {
	handler := &recordingHandler{replies: []common.Reply{common.Text("a"), common.Text("b")}}
	f, api := newTestFrontend(t, handler)
	s := &discordgo.Session{State: discordgo.NewState()}

	f.handleMessageCreate(s, &discordgo.MessageCreate{Message: &discordgo.Message{
		ChannelID: "c1",
		Content:   "uid",
		Author:    &discordgo.User{ID: "42"},
	}})

	require.Len(t, handler.messages, 1)
	assert.Equal(t, bot.Message{UserID: "discord:42", Text: "uid", Platform: Platform}, handler.messages[0])
	assert.Len(t, api.sent, 2)
	assert.Equal(t, []string{"c1", "c1"}, api.channels)
}

func TestHandleMessageCreateSkipsBots(t *testing.T) {
	handler := &recordingHandler{}
	f, _ := newTestFrontend(t, handler)
	s := &discordgo.Session{State: discordgo.NewState()}

	f.handleMessageCreate(s, &discordgo.MessageCreate{Message: &discordgo.Message{
		ChannelID: "c1",
		Content:   "uid",
		Author:    &discordgo.User{ID: "7", Bot: true},
	}})
	assert.Empty(t, handler.messages)
}

func TestHandleButtonInteraction(t *testing.T) {
	handler := &recordingHandler{replies: []common.Reply{common.Text("menu")}}
	f, api := newTestFrontend(t, handler)

	f.handleInteraction(nil, &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type:      discordgo.InteractionMessageComponent,
		ChannelID: "c2",
		Data:      discordgo.MessageComponentInteractionData{CustomID: "bc:clear:Baccarat 7"},
		Member:    &discordgo.Member{User: &discordgo.User{ID: "99"}},
	}})

	require.Len(t, api.responses, 1)
	assert.Equal(t, discordgo.InteractionResponseDeferredMessageUpdate, api.responses[0].Type)
	require.Len(t, handler.messages, 1)
	assert.Equal(t, "discord:99", handler.messages[0].UserID)
	assert.Equal(t, "clear:Baccarat 7", handler.messages[0].Text)
	assert.Equal(t, []string{"c2"}, api.channels)
}

func TestHandleForeignInteraction(t *testing.T) {
	handler := &recordingHandler{}
	f, api := newTestFrontend(t, handler)

	f.handleInteraction(nil, &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type: discordgo.InteractionMessageComponent,
		Data: discordgo.MessageComponentInteractionData{CustomID: "other_1"},
		User: &discordgo.User{ID: "1"},
	}})
	assert.Empty(t, api.responses)
	assert.Empty(t, handler.messages)
}

func TestConverseStopsOnSendError(t *testing.T) {
	handler := &recordingHandler{replies: []common.Reply{common.Text("a"), common.Text("b")}}
	f, api := newTestFrontend(t, handler)
	api.sendErr = errors.New("rate limited")

	f.converse("c1", "42", "menu")
	assert.Len(t, api.sent, 1)
}
