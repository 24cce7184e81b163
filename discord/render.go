package discord

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/louisuxu-sys/BC-LINE/analysis"
	"github.com/louisuxu-sys/BC-LINE/bot/common"
	"github.com/louisuxu-sys/BC-LINE/config"
	"github.com/louisuxu-sys/BC-LINE/models"
	log "github.com/sirupsen/logrus"
)

// ButtonPrefix marks custom ids whose remainder is sent back to the bot as message text
const ButtonPrefix = "bc:"

const (
	maxButtonsPerRow = 5
	maxButtonRows    = 5
	maxCustomIDLen   = 100
	roadImageName    = "roads.png"
)

// Renderer turns bot replies into Discord messages
type Renderer struct {
	catalog *config.Catalog
	images  *RoadImageGenerator
}

func NewRenderer(catalog *config.Catalog, images *RoadImageGenerator) *Renderer {
	return &Renderer{catalog: catalog, images: images}
}

// Render converts replies in order and attaches the main menu when no reply carries buttons
func (r *Renderer) Render(replies []common.Reply) []*discordgo.MessageSend {
	hasButtons := false
	messages := make([]*discordgo.MessageSend, 0, len(replies))

	for _, reply := range replies {
		if common.HasQuickReplies(reply) {
			hasButtons = true
		}
		switch rep := reply.(type) {
		case common.TextReply:
			messages = append(messages, r.renderText(rep))
		case common.AnalysisReply:
			messages = append(messages, r.renderAnalysis(rep))
		case common.SlotReply:
			messages = append(messages, r.renderSlot(rep))
		default:
			log.WithField("reply_type", fmt.Sprintf("%T", reply)).Warn("Dropping unsupported reply")
		}
	}

	if !hasButtons && len(messages) > 0 {
		last := messages[len(messages)-1]
		if len(last.Components) == 0 {
			last.Components = Buttons(common.MainMenuButtons(r.catalog))
		}
	}
	return messages
}

func (r *Renderer) renderText(rep common.TextReply) *discordgo.MessageSend {
	msg := &discordgo.MessageSend{Components: Buttons(rep.QuickReplies)}
	if rep.Plain {
		msg.Content = "```\n" + rep.Text + "\n```"
		return msg
	}
	msg.Embeds = []*discordgo.MessageEmbed{{
		Description: rep.Text,
		Color:       common.EmbedColorPrimary,
	}}
	return msg
}

func (r *Renderer) renderAnalysis(rep common.AnalysisReply) *discordgo.MessageSend {
	a := rep.Analysis
	p := a.Prediction

	fields := []*discordgo.MessageEmbedField{
		{Name: "Prediction", Value: p.Suggestion.Label(), Inline: true},
		{Name: "Confidence", Value: fmt.Sprintf("%d%%", p.Confidence), Inline: true},
		{Name: "Bet", Value: p.BetSize, Inline: true},
		{Name: "Totals", Value: common.FormatTotals(a.Totals)},
	}
	if a.Bankroll != nil {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Bankroll", Value: common.FormatBankroll(a.Bankroll)})
	}
	if len(p.Reasons) > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Reasons", Value: strings.Join(p.Reasons, "\n")})
	}

	var derived []string
	for _, kind := range models.DerivedRoadKinds {
		if line, ok := analysis.DerivedSummary(kind, a.Roads.Derived.Road(kind)); ok {
			derived = append(derived, line)
		}
	}
	if len(derived) > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Derived roads", Value: strings.Join(derived, "\n")})
	}

	embed := &discordgo.MessageEmbed{
		Title:       "New Era Baccarat AI Analysis",
		Description: fmt.Sprintf("Room: %s | Mode: %s", rep.Room, p.Mode.Label()),
		Color:       suggestionColor(p.Suggestion),
		Fields:      fields,
	}

	msg := &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
		Components: Buttons([]common.QuickReply{
			{Label: "Clear", Text: r.catalog.PrefixText(config.PrefixClear, rep.Room)},
			{Label: "Back", Text: r.catalog.Text(config.CommandMenu)},
		}),
	}

	if r.images != nil {
		png, err := r.images.Generate(a.History, a.Roads)
		if err != nil {
			log.WithError(err).WithField("room", rep.Room).Warn("Failed to draw road image")
			return msg
		}
		embed.Image = &discordgo.MessageEmbedImage{URL: "attachment://" + roadImageName}
		msg.Files = []*discordgo.File{{Name: roadImageName, ContentType: "image/png", Reader: bytes.NewReader(png)}}
	}
	return msg
}

func (r *Renderer) renderSlot(rep common.SlotReply) *discordgo.MessageSend {
	return &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       rep.Advice.Title,
			Description: rep.Advice.Description,
			Color:       hexColor(rep.Advice.Color, common.EmbedColorNeutral),
			Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Machine: %s | RTP: %g%%", rep.Room, models.SlotRTP)},
		}},
		Components: Buttons([]common.QuickReply{{Label: "Back to menu", Text: r.catalog.Text(config.CommandMenu)}}),
	}
}

// Buttons lays quick replies out as rows of buttons. Replies beyond Discord's 25 button limit,
// or whose text does not fit a custom id, are dropped.
func Buttons(replies []common.QuickReply) []discordgo.MessageComponent {
	var rows []discordgo.MessageComponent
	var row []discordgo.MessageComponent

	for _, qr := range replies {
		customID := ButtonPrefix + qr.Text
		if len(customID) > maxCustomIDLen {
			log.WithField("text", qr.Text).Warn("Skipping button with oversized text")
			continue
		}
		row = append(row, discordgo.Button{
			Label:    qr.Label,
			Style:    discordgo.SecondaryButton,
			CustomID: customID,
		})
		if len(row) == maxButtonsPerRow {
			rows = append(rows, discordgo.ActionsRow{Components: row})
			row = nil
			if len(rows) == maxButtonRows {
				return rows
			}
		}
	}
	if len(row) > 0 {
		rows = append(rows, discordgo.ActionsRow{Components: row})
	}
	return rows
}

// ButtonText extracts the message text of a button click
func ButtonText(customID string) (string, bool) {
	return strings.CutPrefix(customID, ButtonPrefix)
}

func suggestionColor(s models.Suggestion) int {
	o, ok := s.Outcome()
	if !ok {
		return common.EmbedColorNeutral
	}
	if o == models.OutcomeBanker {
		return common.EmbedColorBanker
	}
	return common.EmbedColorPlayer
}

func hexColor(hex string, fallback int) int {
	v, err := strconv.ParseInt(strings.TrimPrefix(hex, "#"), 16, 32)
	if err != nil {
		return fallback
	}
	return int(v)
}
