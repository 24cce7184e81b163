package line

import (
	"fmt"

	"github.com/louisuxu-sys/BC-LINE/bot/common"
	"github.com/louisuxu-sys/BC-LINE/config"

	log "github.com/sirupsen/logrus"
)

// MaxReplyMessages is how many messages one LINE reply may carry
const MaxReplyMessages = 5

// Renderer turns bot replies into LINE messages
type Renderer struct {
	catalog *config.Catalog
}

func NewRenderer(catalog *config.Catalog) *Renderer {
	return &Renderer{catalog: catalog}
}

// Render converts replies in order. The main menu is attached to the last message when no
// reply carries its own buttons, so users always have a way forward.
func (r *Renderer) Render(replies []common.Reply) []Message {
	menuText := r.catalog.Text(config.CommandMenu)
	hasButtons := false
	messages := make([]Message, 0, len(replies))

	for _, reply := range replies {
		if common.HasQuickReplies(reply) {
			hasButtons = true
		}
		switch rep := reply.(type) {
		case common.TextReply:
			if rep.Plain {
				messages = append(messages, TextMessage(rep.Text))
			} else {
				messages = append(messages, SystemMessage(rep.Text, rep.QuickReplies))
			}
		case common.AnalysisReply:
			card, size := AnalysisMessage(rep.Room, rep.Analysis, r.catalog.PrefixText(config.PrefixClear, rep.Room), menuText)
			log.WithFields(log.Fields{
				"room":       rep.Room,
				"hands":      len(rep.Analysis.History),
				"card_bytes": size,
			}).Debug("Rendered analysis card")
			messages = append(messages, card, DerivedRoadsMessage(rep.Room, rep.Analysis.Roads.Derived))
		case common.SlotReply:
			messages = append(messages, SlotMessage(rep.Room, rep.Advice, menuText))
		default:
			log.WithField("reply_type", fmt.Sprintf("%T", reply)).Warn("Dropping unsupported reply")
		}
	}

	if len(messages) > MaxReplyMessages {
		log.WithFields(log.Fields{
			"messages": len(messages),
			"limit":    MaxReplyMessages,
		}).Warn("Truncating reply")
		messages = messages[:MaxReplyMessages]
	}

	if !hasButtons && len(messages) > 0 {
		last := &messages[len(messages)-1]
		if last.QuickReply == nil {
			last.QuickReply = quickReply(common.MainMenuButtons(r.catalog))
		}
	}
	return messages
}
