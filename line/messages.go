package line

// WebhookRequest is the body LINE posts to the webhook
type WebhookRequest struct {
	Destination string         `json:"destination"`
	Events      []WebhookEvent `json:"events"`
}

// WebhookEvent is one event of a webhook delivery
type WebhookEvent struct {
	Type       string           `json:"type"`
	ReplyToken string           `json:"replyToken"`
	Source     EventSource      `json:"source"`
	Message    *IncomingMessage `json:"message,omitempty"`
}

// EventSource identifies who triggered an event
type EventSource struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
}

// IncomingMessage is the message part of a message event
type IncomingMessage struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Text string `json:"text"`
}

// Message is an outgoing text or flex message
type Message struct {
	Type       string      `json:"type"`
	Text       string      `json:"text,omitempty"`
	AltText    string      `json:"altText,omitempty"`
	Contents   *Bubble     `json:"contents,omitempty"`
	QuickReply *QuickReply `json:"quickReply,omitempty"`
}

// QuickReply is the button row shown under the last message
type QuickReply struct {
	Items []QuickReplyItem `json:"items"`
}

// QuickReplyItem is one quick reply button
type QuickReplyItem struct {
	Type   string `json:"type"`
	Action Action `json:"action"`
}

// Action sends Text as the user's message when tapped
type Action struct {
	Type  string `json:"type"`
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Bubble is a single flex card
type Bubble struct {
	Type   string     `json:"type"`
	Size   string     `json:"size,omitempty"`
	Header *Component `json:"header,omitempty"`
	Body   *Component `json:"body,omitempty"`
	Footer *Component `json:"footer,omitempty"`
}

// Component is a flex box, text, button or filler. Only the fields a type uses are set.
type Component struct {
	Type            string      `json:"type"`
	Layout          string      `json:"layout,omitempty"`
	Contents        []Component `json:"contents,omitempty"`
	Text            string      `json:"text,omitempty"`
	Action          *Action     `json:"action,omitempty"`
	Style           string      `json:"style,omitempty"`
	Size            string      `json:"size,omitempty"`
	Weight          string      `json:"weight,omitempty"`
	Color           string      `json:"color,omitempty"`
	Align           string      `json:"align,omitempty"`
	Gravity         string      `json:"gravity,omitempty"`
	Wrap            bool        `json:"wrap,omitempty"`
	Margin          string      `json:"margin,omitempty"`
	Spacing         string      `json:"spacing,omitempty"`
	PaddingAll      string      `json:"paddingAll,omitempty"`
	BackgroundColor string      `json:"backgroundColor,omitempty"`
	BorderColor     string      `json:"borderColor,omitempty"`
	BorderWidth     string      `json:"borderWidth,omitempty"`
	CornerRadius    string      `json:"cornerRadius,omitempty"`
	Width           string      `json:"width,omitempty"`
	Height          string      `json:"height,omitempty"`
	Flex            *int        `json:"flex,omitempty"`
	JustifyContent  string      `json:"justifyContent,omitempty"`
	AlignItems      string      `json:"alignItems,omitempty"`
}

type replyRequest struct {
	ReplyToken string    `json:"replyToken"`
	Messages   []Message `json:"messages"`
}
