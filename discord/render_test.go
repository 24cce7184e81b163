package discord

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/louisuxu-sys/BC-LINE/analysis"
	"github.com/louisuxu-sys/BC-LINE/bot/common"
	"github.com/louisuxu-sys/BC-LINE/config"
	"github.com/louisuxu-sys/BC-LINE/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(t *testing.T, images *RoadImageGenerator) *Renderer {
	t.Helper()
	catalog, err := config.DefaultCatalog()
	require.NoError(t, err)
	return NewRenderer(catalog, images)
}

func roomAnalysis(keys string) *models.RoomAnalysis {
	history := models.ParseOutcomes(keys)
	totals := models.CountOutcomes(history)
	return &models.RoomAnalysis{
		Room:       "Baccarat 7",
		History:    history,
		Totals:     totals,
		Roads:      analysis.BuildRoads(history),
		Prediction: analysis.Predict(history, &totals),
	}
}

func TestButtons(t *testing.T) {
	var replies []common.QuickReply
	for range 27 {
		replies = append(replies, common.QuickReply{Label: "x", Text: "menu"})
	}
	rows := Buttons(replies)
	require.Len(t, rows, maxButtonRows)
	for _, row := range rows {
		assert.Len(t, row.(discordgo.ActionsRow).Components, maxButtonsPerRow)
	}

	rows = Buttons([]common.QuickReply{{Label: "A", Text: "baccarat"}, {Label: "B", Text: string(make([]byte, 120))}})
	require.Len(t, rows, 1)
	buttons := rows[0].(discordgo.ActionsRow).Components
	require.Len(t, buttons, 1)
	assert.Equal(t, "bc:baccarat", buttons[0].(discordgo.Button).CustomID)

	assert.Empty(t, Buttons(nil))
}

func TestButtonText(t *testing.T) {
	text, ok := ButtonText("bc:clear:Baccarat 7")
	require.True(t, ok)
	assert.Equal(t, "clear:Baccarat 7", text)

	_, ok = ButtonText("poll_1")
	assert.False(t, ok)
}

func TestRenderText(t *testing.T) {
	r := newTestRenderer(t, nil)
	msgs := r.Render([]common.Reply{common.Text("hello"), common.Plain("CODE1\nCODE2")})
	require.Len(t, msgs, 2)

	assert.Equal(t, "hello", msgs[0].Embeds[0].Description)
	assert.Empty(t, msgs[0].Components)
	assert.Equal(t, "```\nCODE1\nCODE2\n```", msgs[1].Content)
	assert.NotEmpty(t, msgs[1].Components, "main menu attached to the last message")
}

func TestRenderKeepsOwnButtons(t *testing.T) {
	r := newTestRenderer(t, nil)
	msgs := r.Render([]common.Reply{common.WithBack("Choose", "menu")})
	require.Len(t, msgs, 1)
	buttons := msgs[0].Components[0].(discordgo.ActionsRow).Components
	require.Len(t, buttons, 1)
	assert.Equal(t, "bc:menu", buttons[0].(discordgo.Button).CustomID)
}

func TestRenderAnalysis(t *testing.T) {
	r := newTestRenderer(t, NewRoadImageGenerator())
	a := roomAnalysis("22211121212221112")
	a.Bankroll = &models.BankrollSnapshot{}

	msgs := r.Render([]common.Reply{common.AnalysisReply{Room: a.Room, Analysis: a}})
	require.Len(t, msgs, 1)
	embed := msgs[0].Embeds[0]
	assert.Equal(t, "Room: Baccarat 7 | Mode: "+a.Prediction.Mode.Label(), embed.Description)
	assert.Equal(t, a.Prediction.Suggestion.Label(), embed.Fields[0].Value)
	assert.Equal(t, "attachment://roads.png", embed.Image.URL)

	require.Len(t, msgs[0].Files, 1)
	_, err := png.Decode(msgs[0].Files[0].Reader)
	require.NoError(t, err)

	buttons := msgs[0].Components[0].(discordgo.ActionsRow).Components
	assert.Equal(t, "bc:clear:Baccarat 7", buttons[0].(discordgo.Button).CustomID)
}

func TestRenderSlot(t *testing.T) {
	r := newTestRenderer(t, nil)
	advice := &models.SlotAdvice{Title: "Recommend", Color: "#27AE60", Description: "Go"}
	msgs := r.Render([]common.Reply{common.SlotReply{Room: "Seth 1 room:888", Game: "Seth 1", Advice: advice}})
	require.Len(t, msgs, 1)
	assert.Equal(t, 0x27AE60, msgs[0].Embeds[0].Color)
	assert.Equal(t, "Machine: Seth 1 room:888 | RTP: 96.89%", msgs[0].Embeds[0].Footer.Text)

	assert.Equal(t, common.EmbedColorNeutral, hexColor("not-a-color", common.EmbedColorNeutral))
}

func TestRoadImage(t *testing.T) {
	g := NewRoadImageGenerator()
	a := roomAnalysis("2221112121222111221112121222111233")

	data, err := g.Generate(a.History, a.Roads)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	w, h := g.Size()
	assert.Equal(t, w, img.Bounds().Dx())
	assert.Equal(t, h, img.Bounds().Dy())

	empty, err := g.Generate(nil, models.Roads{})
	require.NoError(t, err)
	assert.NotEmpty(t, empty)
}
