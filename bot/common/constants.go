package common

// Card colors
const (
	ColorHeader     = "#1A5276"
	ColorSlotHeader = "#2C3E50"
	ColorPredBox    = "#FDF2E9"
	ColorSystemBg   = "#F7F9FA"
	ColorBorder     = "#D5D8DC"
	ColorText       = "#2C3E50"
	ColorMuted      = "#888888"

	ColorBanker = "#E74C3C"
	ColorPlayer = "#2E86C1"
	ColorTie    = "#27AE60"
)

// Discord embed colors
const (
	EmbedColorPrimary = 0x1A5276
	EmbedColorBanker  = 0xE74C3C
	EmbedColorPlayer  = 0x2E86C1
	EmbedColorNeutral = 0x7F8C8D
)

// Text limits
const (
	MaxQuickReplies   = 13
	MaxQuickReplyText = 20
	AltTextLimit      = 40
)

// MenuTitle is shown on the main menu
const MenuTitle = "--- New Era AI System ---"
