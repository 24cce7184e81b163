package line

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/louisuxu-sys/BC-LINE/analysis"
	"github.com/louisuxu-sys/BC-LINE/bot/common"
	"github.com/louisuxu-sys/BC-LINE/models"
)

// MaxCardBytes is the serialized size an analysis card is shrunk below
const MaxCardBytes = 29000

const (
	beadRows       = 6
	beadCellSize   = "18px"
	derivedSize    = "5px"
	derivedMaxCols = 40
	derivedMaxRows = 12
)

// cardColumnLimits are tried in order until the card fits: bead road columns, big road columns
var cardColumnLimits = []struct{ bead, bigRoad int }{
	{15, 80},
	{15, 50},
	{15, 30},
	{10, 30},
	{8, 25},
	{6, 20},
	{6, 15},
	{4, 15},
	{4, 10},
}

// derivedStyle is how a derived road marker is drawn
type derivedStyle int

const (
	styleHollow derivedStyle = iota
	styleDot
	styleSlash
)

func outcomeColor(o models.Outcome) string {
	switch o {
	case models.OutcomeBanker:
		return common.ColorBanker
	case models.OutcomePlayer:
		return common.ColorPlayer
	default:
		return common.ColorTie
	}
}

func markerColor(m models.Marker) string {
	if m == models.MarkerRed {
		return common.ColorBanker
	}
	return common.ColorPlayer
}

func intPtr(v int) *int {
	return &v
}

func filler() Component {
	return Component{Type: "filler"}
}

func circle(bg, label, size string) Component {
	return Component{
		Type: "box", Layout: "vertical", CornerRadius: "50px",
		Width: size, Height: size, BackgroundColor: bg,
		Contents:       []Component{{Type: "text", Text: label, Size: "xxs", Color: "#ffffff", Align: "center", Gravity: "center"}},
		JustifyContent: "center", AlignItems: "center",
	}
}

func dot(bg, size string) Component {
	return Component{
		Type: "box", Layout: "vertical", CornerRadius: "50px",
		Width: size, Height: size, BackgroundColor: bg,
		Contents: []Component{filler()},
	}
}

func hollow(border, size string) Component {
	return Component{
		Type: "box", Layout: "vertical", CornerRadius: "50px",
		Width: size, Height: size, BackgroundColor: "#ffffff",
		BorderColor: border, BorderWidth: "1px",
		Contents: []Component{filler()},
	}
}

func slash(color, size string) Component {
	return Component{
		Type: "box", Layout: "vertical", Width: size, Height: size,
		Contents:       []Component{{Type: "text", Text: "/", Size: "xxs", Color: color, Align: "center", Gravity: "center"}},
		JustifyContent: "center", AlignItems: "center",
	}
}

func empty(size string) Component {
	return Component{Type: "box", Layout: "vertical", Width: size, Height: size, Contents: []Component{filler()}}
}

func placeholder() Component {
	return Component{Type: "box", Layout: "horizontal", Height: "20px", Contents: []Component{filler()}}
}

func notEnoughData() Component {
	return Component{Type: "box", Layout: "horizontal", Contents: []Component{
		{Type: "text", Text: "Not enough data", Size: "xxs", Color: "#cccccc"},
	}}
}

func roadPanel(columns []Component, spacing string) Component {
	columns = append(columns, filler())
	return Component{
		Type: "box", Layout: "horizontal", Contents: columns, Spacing: spacing,
		PaddingAll: "xs", BackgroundColor: "#F8F9FA", CornerRadius: "md",
	}
}

// grid lays columns out top to bottom, padding short columns to rows cells
func grid[T any](cols [][]T, rows int, cell func(T) Component, size string) Component {
	if len(cols) == 0 {
		return placeholder()
	}
	ui := make([]Component, 0, len(cols)+1)
	for _, col := range cols {
		cells := make([]Component, 0, rows)
		for r := range rows {
			if r < len(col) {
				cells = append(cells, cell(col[r]))
			} else {
				cells = append(cells, empty(size))
			}
		}
		ui = append(ui, Component{Type: "box", Layout: "vertical", Contents: cells, Spacing: "xs", Flex: intPtr(0), Width: size, AlignItems: "center"})
	}
	return roadPanel(ui, "xs")
}

func section(title string, widget Component) Component {
	return Component{Type: "box", Layout: "vertical", Margin: "xs", Contents: []Component{
		{Type: "text", Text: title, Size: "xxs", Color: common.ColorMuted, Weight: "bold"},
		widget,
	}}
}

// BuildBeadRoad draws the full history six per column, keeping the newest maxCols columns
func BuildBeadRoad(history []models.Outcome, maxCols int) Component {
	var cols [][]models.Outcome
	for i := 0; i < len(history); i += beadRows {
		cols = append(cols, history[i:min(i+beadRows, len(history))])
	}
	if len(cols) > maxCols {
		cols = cols[len(cols)-maxCols:]
	}
	return section("Bead Road", grid(cols, beadRows, func(o models.Outcome) Component {
		return circle(outcomeColor(o), o.Short(), beadCellSize)
	}, beadCellSize))
}

// bigRoadDotSize shrinks dots as more columns are shown
func bigRoadDotSize(columns int) string {
	switch {
	case columns <= 15:
		return "12px"
	case columns <= 25:
		return "8px"
	case columns <= 40:
		return "6px"
	default:
		return "4px"
	}
}

// BuildBigRoad draws the newest maxCols columns of the big road grid
func BuildBigRoad(g models.BigRoadGrid, maxCols int) Component {
	if g.Len() == 0 {
		return section("Big Road", placeholder())
	}

	display := min(g.Columns, maxCols)
	start := g.Columns - display
	size := bigRoadDotSize(display)

	ui := make([]Component, 0, display+1)
	for c := start; c < g.Columns; c++ {
		cells := make([]Component, 0, analysis.BigRoadRows)
		occupied := false
		for r := range analysis.BigRoadRows {
			if o, ok := g.At(r, c); ok {
				cells = append(cells, dot(outcomeColor(o), size))
				occupied = true
			} else {
				cells = append(cells, empty(size))
			}
		}
		if !occupied {
			continue
		}
		ui = append(ui, Component{Type: "box", Layout: "vertical", Contents: cells, Spacing: "none", Flex: intPtr(0), Width: size, AlignItems: "center"})
	}
	return section("Big Road", roadPanel(ui, "none"))
}

// BuildDerivedRoad draws a derived road as streak columns, newest 40, at most 12 rows tall
func BuildDerivedRoad(kind models.DerivedRoadKind, markers []models.Marker) Component {
	title := kind.Name()
	cols := analysis.GroupRuns(markers)
	if len(cols) == 0 {
		return section(title, notEnoughData())
	}
	if len(cols) > derivedMaxCols {
		cols = cols[len(cols)-derivedMaxCols:]
	}

	rows := 0
	for _, col := range cols {
		rows = max(rows, len(col))
	}
	rows = min(rows, derivedMaxRows)
	for i := range cols {
		if len(cols[i]) > rows {
			cols[i] = cols[i][:rows]
		}
	}

	var cell func(models.Marker) Component
	switch styleFor(kind) {
	case styleHollow:
		cell = func(m models.Marker) Component { return hollow(markerColor(m), derivedSize) }
	case styleDot:
		cell = func(m models.Marker) Component { return dot(markerColor(m), derivedSize) }
	default:
		cell = func(m models.Marker) Component { return slash(markerColor(m), derivedSize) }
	}
	return section(title, grid(cols, rows, cell, derivedSize))
}

func styleFor(kind models.DerivedRoadKind) derivedStyle {
	switch kind {
	case models.BigEyeRoad:
		return styleHollow
	case models.SmallRoad:
		return styleDot
	default:
		return styleSlash
	}
}

func predictionBox(a *models.RoomAnalysis) Component {
	p := a.Prediction
	contents := []Component{
		{Type: "text", Text: "🎯 Prediction: " + p.Suggestion.Label(), Weight: "bold", Size: "xl", Color: "#D35400", Align: "center"},
		{Type: "text", Text: fmt.Sprintf("Confidence: %d%%  |  Bet: %s", p.Confidence, p.BetSize), Size: "sm", Align: "center", Color: "#1E8449"},
		{Type: "text", Text: common.FormatTotals(a.Totals), Size: "xxs", Color: "#666666", Align: "center", Margin: "xs"},
	}
	if a.Bankroll != nil {
		contents = append(contents, Component{Type: "text", Text: common.FormatBankroll(a.Bankroll), Size: "xxs", Color: "#666666", Align: "center"})
	}
	if len(p.Reasons) > 0 {
		contents = append(contents, Component{
			Type: "text", Text: strings.Join(p.Reasons, "\n"), Size: "xxs", Color: common.ColorMuted,
			Align: "center", Wrap: true, Margin: "xs",
		})
	}
	return Component{Type: "box", Layout: "vertical", Margin: "xs", BackgroundColor: common.ColorPredBox, PaddingAll: "sm", CornerRadius: "md", Contents: contents}
}

func analysisBubble(room string, a *models.RoomAnalysis, beadCols, bigRoadCols int, clearText, menuText string) *Bubble {
	header := &Component{
		Type: "box", Layout: "vertical", BackgroundColor: common.ColorHeader, PaddingAll: "sm",
		Contents: []Component{{Type: "text", Text: "New Era Baccarat AI Analysis", Color: "#ffffff", Weight: "bold", Size: "md", Align: "center"}},
	}
	info := Component{Type: "text", Text: fmt.Sprintf("Room: %s | Mode: %s", room, a.Prediction.Mode.Label()), Size: "xxs", Color: common.ColorMuted}
	footer := &Component{
		Type: "box", Layout: "horizontal", Spacing: "sm",
		Contents: []Component{
			{Type: "button", Action: &Action{Type: "message", Label: "Clear", Text: clearText}, Style: "secondary", Height: "sm"},
			{Type: "button", Action: &Action{Type: "message", Label: "Back", Text: menuText}, Style: "primary", Color: common.ColorHeader, Height: "sm"},
		},
	}
	return &Bubble{
		Type:   "bubble",
		Size:   "giga",
		Header: header,
		Body: &Component{
			Type: "box", Layout: "vertical", Spacing: "none", PaddingAll: "xs",
			Contents: []Component{info, BuildBeadRoad(a.History, beadCols), BuildBigRoad(a.Roads.Grid, bigRoadCols), predictionBox(a)},
		},
		Footer: footer,
	}
}

// AnalysisMessage builds the analysis card, dropping road columns until it fits MaxCardBytes
func AnalysisMessage(room string, a *models.RoomAnalysis, clearText, menuText string) (Message, int) {
	var bubble *Bubble
	size := 0
	for _, limit := range cardColumnLimits {
		bubble = analysisBubble(room, a, limit.bead, limit.bigRoad, clearText, menuText)
		size = jsonSize(bubble)
		if size < MaxCardBytes {
			break
		}
	}
	return Message{Type: "flex", AltText: "AI analysis report", Contents: bubble}, size
}

// DerivedRoadsMessage builds the card with the three derived roads
func DerivedRoadsMessage(room string, roads models.DerivedRoads) Message {
	contents := []Component{
		{Type: "text", Text: "Derived roads | " + room, Size: "xxs", Color: common.ColorMuted},
	}
	for _, kind := range models.DerivedRoadKinds {
		contents = append(contents, BuildDerivedRoad(kind, roads.Road(kind)))
	}
	return Message{
		Type:    "flex",
		AltText: "Derived roads",
		Contents: &Bubble{
			Type: "bubble",
			Size: "giga",
			Body: &Component{Type: "box", Layout: "vertical", Spacing: "none", PaddingAll: "xs", Contents: contents},
		},
	}
}

// SlotMessage builds the slot advisor card
func SlotMessage(room string, advice *models.SlotAdvice, menuText string) Message {
	return Message{
		Type:    "flex",
		AltText: "Slot analysis report",
		Contents: &Bubble{
			Type: "bubble",
			Header: &Component{
				Type: "box", Layout: "vertical", BackgroundColor: common.ColorSlotHeader,
				Contents: []Component{{Type: "text", Text: "Slot Data Analysis", Color: "#ffffff", Weight: "bold", Size: "md", Align: "center"}},
			},
			Body: &Component{Type: "box", Layout: "vertical", Contents: []Component{
				{Type: "text", Text: fmt.Sprintf("Machine: %s | RTP: %g%%", room, models.SlotRTP), Size: "xxs", Color: common.ColorMuted, Margin: "sm"},
				{Type: "box", Layout: "vertical", Margin: "lg", BackgroundColor: "#F4F6F7", PaddingAll: "md", CornerRadius: "md", Contents: []Component{
					{Type: "text", Text: advice.Title, Weight: "bold", Size: "lg", Color: advice.Color, Align: "center"},
					{Type: "text", Text: advice.Description, Size: "xs", Wrap: true, Align: "center", Margin: "xs", Color: "#333333"},
				}},
			}},
			Footer: &Component{Type: "box", Layout: "vertical", Contents: []Component{
				{Type: "button", Action: &Action{Type: "message", Label: "Back to menu", Text: menuText}, Style: "primary", Color: common.ColorSlotHeader},
			}},
		},
	}
}

// SystemMessage builds the small card used for prompts and confirmations
func SystemMessage(text string, buttons []common.QuickReply) Message {
	msg := Message{
		Type:    "flex",
		AltText: truncateRunes(text, common.AltTextLimit),
		Contents: &Bubble{
			Type: "bubble",
			Size: "kilo",
			Body: &Component{
				Type: "box", Layout: "vertical",
				BackgroundColor: common.ColorSystemBg, BorderColor: common.ColorBorder, BorderWidth: "1px",
				CornerRadius: "lg", PaddingAll: "lg",
				Contents: []Component{{Type: "text", Text: text, Wrap: true, Size: "sm", Color: common.ColorText, Align: "center"}},
			},
		},
	}
	if len(buttons) > 0 {
		msg.QuickReply = quickReply(buttons)
	}
	return msg
}

// TextMessage builds a plain text message
func TextMessage(text string) Message {
	return Message{Type: "text", Text: text}
}

func quickReply(buttons []common.QuickReply) *QuickReply {
	if len(buttons) > common.MaxQuickReplies {
		buttons = buttons[:common.MaxQuickReplies]
	}
	items := make([]QuickReplyItem, 0, len(buttons))
	for _, b := range buttons {
		items = append(items, QuickReplyItem{
			Type:   "action",
			Action: Action{Type: "message", Label: truncateRunes(b.Label, common.MaxQuickReplyText), Text: b.Text},
		})
	}
	return &QuickReply{Items: items}
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}

// jsonSize returns the serialized size of v without HTML escaping
func jsonSize(v any) int {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return 0
	}
	return buf.Len() - 1
}
