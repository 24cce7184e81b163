package discord

import (
	"bytes"
	"fmt"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/louisuxu-sys/BC-LINE/analysis"
	"github.com/louisuxu-sys/BC-LINE/models"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// RoadStyle controls the layout of the road image
type RoadStyle struct {
	Padding     float64
	BeadCell    float64
	BigRoadCell float64
	DerivedCell float64
	BeadCols    int
	BigRoadCols int
	DerivedCols int
	DerivedRows int
	TitleHeight float64
}

// RoadImageGenerator draws the roads of a room as a PNG
type RoadImageGenerator struct {
	style RoadStyle
}

// NewRoadImageGenerator creates a generator with the default style
func NewRoadImageGenerator() *RoadImageGenerator {
	return &RoadImageGenerator{
		style: RoadStyle{
			Padding:     12,
			BeadCell:    22,
			BigRoadCell: 14,
			DerivedCell: 8,
			BeadCols:    15,
			BigRoadCols: 40,
			DerivedCols: 40,
			DerivedRows: 6,
			TitleHeight: 18,
		},
	}
}

type rgb [3]float64

var (
	bankerRGB = rgb{0.906, 0.298, 0.235}
	playerRGB = rgb{0.180, 0.525, 0.757}
	tieRGB    = rgb{0.153, 0.682, 0.376}
	gridRGB   = rgb{0.85, 0.86, 0.87}
	titleRGB  = rgb{0.35, 0.35, 0.40}
)

func outcomeRGB(o models.Outcome) rgb {
	switch o {
	case models.OutcomeBanker:
		return bankerRGB
	case models.OutcomePlayer:
		return playerRGB
	default:
		return tieRGB
	}
}

func markerRGB(m models.Marker) rgb {
	if m == models.MarkerRed {
		return bankerRGB
	}
	return playerRGB
}

// Size returns the pixel dimensions of the image Generate produces
func (g *RoadImageGenerator) Size() (int, int) {
	s := g.style
	width := s.Padding*2 + max(float64(s.BeadCols)*s.BeadCell, float64(s.BigRoadCols)*s.BigRoadCell, float64(s.DerivedCols)*s.DerivedCell)
	height := s.Padding +
		s.TitleHeight + float64(analysis.BigRoadRows)*s.BeadCell + s.Padding +
		s.TitleHeight + float64(analysis.BigRoadRows)*s.BigRoadCell + s.Padding +
		float64(len(models.DerivedRoadKinds))*(s.TitleHeight+float64(s.DerivedRows)*s.DerivedCell+s.Padding)
	return int(width), int(height)
}

// Generate renders bead road, big road and the derived roads stacked vertically
func (g *RoadImageGenerator) Generate(history []models.Outcome, roads models.Roads) ([]byte, error) {
	start := time.Now()
	defer func() {
		log.WithField("duration_ms", time.Since(start).Milliseconds()).
			WithField("hands", len(history)).
			Debug("Road image generation completed")
	}()

	width, height := g.Size()
	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	titleFace, err := loadFont(gobold.TTF, 11)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	labelFace, err := loadFont(goregular.TTF, 11)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}

	s := g.style
	y := s.Padding

	y = g.drawTitle(dc, titleFace, "Bead Road", y)
	g.drawBeadRoad(dc, labelFace, history, y)
	y += float64(analysis.BigRoadRows)*s.BeadCell + s.Padding

	y = g.drawTitle(dc, titleFace, "Big Road", y)
	g.drawBigRoad(dc, roads.Grid, y)
	y += float64(analysis.BigRoadRows)*s.BigRoadCell + s.Padding

	for _, kind := range models.DerivedRoadKinds {
		y = g.drawTitle(dc, titleFace, kind.Name(), y)
		g.drawDerivedRoad(dc, kind, roads.Derived.Road(kind), y)
		y += float64(s.DerivedRows)*s.DerivedCell + s.Padding
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *RoadImageGenerator) drawTitle(dc *gg.Context, face font.Face, title string, y float64) float64 {
	dc.SetFontFace(face)
	dc.SetRGB(titleRGB[0], titleRGB[1], titleRGB[2])
	dc.DrawStringAnchored(title, g.style.Padding, y+g.style.TitleHeight/2, 0, 0.5)
	return y + g.style.TitleHeight
}

func (g *RoadImageGenerator) drawGrid(dc *gg.Context, cols, rows int, cell, y float64) {
	x0 := g.style.Padding
	dc.SetRGB(gridRGB[0], gridRGB[1], gridRGB[2])
	dc.SetLineWidth(0.5)
	for c := 0; c <= cols; c++ {
		x := x0 + float64(c)*cell
		dc.DrawLine(x, y, x, y+float64(rows)*cell)
	}
	for r := 0; r <= rows; r++ {
		yy := y + float64(r)*cell
		dc.DrawLine(x0, yy, x0+float64(cols)*cell, yy)
	}
	dc.Stroke()
}

func (g *RoadImageGenerator) drawBeadRoad(dc *gg.Context, face font.Face, history []models.Outcome, y float64) {
	s := g.style
	rows := analysis.BigRoadRows
	g.drawGrid(dc, s.BeadCols, rows, s.BeadCell, y)

	cols := (len(history) + rows - 1) / rows
	first := max(cols-s.BeadCols, 0)
	dc.SetFontFace(face)
	for i := first * rows; i < len(history); i++ {
		col := i/rows - first
		row := i % rows
		cx := s.Padding + (float64(col)+0.5)*s.BeadCell
		cy := y + (float64(row)+0.5)*s.BeadCell
		c := outcomeRGB(history[i])
		dc.SetRGB(c[0], c[1], c[2])
		dc.DrawCircle(cx, cy, s.BeadCell/2-2)
		dc.Fill()
		dc.SetRGB(1, 1, 1)
		dc.DrawStringAnchored(history[i].Short(), cx, cy, 0.5, 0.35)
	}
}

func (g *RoadImageGenerator) drawBigRoad(dc *gg.Context, grid models.BigRoadGrid, y float64) {
	s := g.style
	g.drawGrid(dc, s.BigRoadCols, analysis.BigRoadRows, s.BigRoadCell, y)

	start := max(grid.Columns-s.BigRoadCols, 0)
	dc.SetLineWidth(2)
	for cell, o := range grid.Cells {
		if cell.Col < start {
			continue
		}
		cx := s.Padding + (float64(cell.Col-start)+0.5)*s.BigRoadCell
		cy := y + (float64(cell.Row)+0.5)*s.BigRoadCell
		c := outcomeRGB(o)
		dc.SetRGB(c[0], c[1], c[2])
		dc.DrawCircle(cx, cy, s.BigRoadCell/2-2)
		dc.Stroke()
	}
}

func (g *RoadImageGenerator) drawDerivedRoad(dc *gg.Context, kind models.DerivedRoadKind, markers []models.Marker, y float64) {
	s := g.style
	g.drawGrid(dc, s.DerivedCols, s.DerivedRows, s.DerivedCell, y)

	cols := analysis.GroupRuns(markers)
	if len(cols) > s.DerivedCols {
		cols = cols[len(cols)-s.DerivedCols:]
	}
	r := s.DerivedCell/2 - 1
	for ci, col := range cols {
		for ri, m := range col {
			if ri >= s.DerivedRows {
				break
			}
			cx := s.Padding + (float64(ci)+0.5)*s.DerivedCell
			cy := y + (float64(ri)+0.5)*s.DerivedCell
			c := markerRGB(m)
			dc.SetRGB(c[0], c[1], c[2])
			switch kind {
			case models.BigEyeRoad:
				dc.SetLineWidth(1.2)
				dc.DrawCircle(cx, cy, r)
				dc.Stroke()
			case models.SmallRoad:
				dc.DrawCircle(cx, cy, r)
				dc.Fill()
			default:
				dc.SetLineWidth(1.5)
				dc.DrawLine(cx-r, cy+r, cx+r, cy-r)
				dc.Stroke()
			}
		}
	}
}

func loadFont(fontData []byte, size float64) (font.Face, error) {
	f, err := truetype.Parse(fontData)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}
