package common

import "github.com/louisuxu-sys/BC-LINE/models"

// Reply is one outgoing message. Transports render each concrete type their own way.
type Reply interface {
	isReply()
}

// QuickReply is a button that sends Text back as a message
type QuickReply struct {
	Label string
	Text  string
}

// TextReply is a system message. Plain replies render as raw text instead of a card.
type TextReply struct {
	Text         string
	QuickReplies []QuickReply
	Plain        bool
}

// AnalysisReply carries a room analysis to be drawn as a road card
type AnalysisReply struct {
	Room     string
	Analysis *models.RoomAnalysis
}

// SlotReply carries the advisor's verdict for a slot machine
type SlotReply struct {
	Room   string
	Game   string
	Advice *models.SlotAdvice
}

func (TextReply) isReply()     {}
func (AnalysisReply) isReply() {}
func (SlotReply) isReply()     {}

// Text builds a system message without buttons
func Text(text string) TextReply {
	return TextReply{Text: text}
}

// WithButtons builds a system message with quick replies
func WithButtons(text string, buttons ...QuickReply) TextReply {
	return TextReply{Text: text, QuickReplies: buttons}
}

// WithBack builds a system message offering only the way back to the menu
func WithBack(text, menuText string) TextReply {
	return WithButtons(text, QuickReply{Label: "↩ Back to menu", Text: menuText})
}

// Plain builds a raw text message, used for content users copy
func Plain(text string) TextReply {
	return TextReply{Text: text, Plain: true}
}

// HasQuickReplies reports whether a reply already carries buttons
func HasQuickReplies(r Reply) bool {
	t, ok := r.(TextReply)
	return ok && len(t.QuickReplies) > 0
}
