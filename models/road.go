package models

// Run is a maximal streak of one binary outcome. An ordered list of runs is the column list.
type Run struct {
	Value  Outcome
	Length int
}

// Cell addresses a slot on the big road grid
type Cell struct {
	Row int
	Col int
}

// BigRoadGrid is a sparse scoreboard layout. Rows are bounded, columns grow without limit.
type BigRoadGrid struct {
	Cells   map[Cell]Outcome
	Columns int
}

// At returns the outcome placed at row, col
func (g BigRoadGrid) At(row, col int) (Outcome, bool) {
	o, ok := g.Cells[Cell{Row: row, Col: col}]
	return o, ok
}

// Len returns the number of placed cells
func (g BigRoadGrid) Len() int {
	return len(g.Cells)
}

// Marker is one entry of a derived road
type Marker string

const (
	MarkerRed  Marker = "R"
	MarkerBlue Marker = "B"
)

// DerivedRoadKind identifies one of the three derived roads. Its value is the road's gap.
type DerivedRoadKind int

const (
	BigEyeRoad    DerivedRoadKind = 1
	SmallRoad     DerivedRoadKind = 2
	CockroachRoad DerivedRoadKind = 3
)

// DerivedRoadKinds lists the derived roads in display order
var DerivedRoadKinds = []DerivedRoadKind{BigEyeRoad, SmallRoad, CockroachRoad}

// Gap returns the backward column offset used by the road
func (k DerivedRoadKind) Gap() int {
	return int(k)
}

// Name returns the display name of the road
func (k DerivedRoadKind) Name() string {
	switch k {
	case BigEyeRoad:
		return "Big Eye Boy"
	case SmallRoad:
		return "Small Road"
	case CockroachRoad:
		return "Cockroach Road"
	default:
		return "Unknown Road"
	}
}

// DerivedRoads holds the marker sequences of all three derived roads
type DerivedRoads struct {
	BigEye    []Marker
	Small     []Marker
	Cockroach []Marker
}

// Road returns the markers of the given road
func (d DerivedRoads) Road(kind DerivedRoadKind) []Marker {
	switch kind {
	case BigEyeRoad:
		return d.BigEye
	case SmallRoad:
		return d.Small
	case CockroachRoad:
		return d.Cockroach
	default:
		return nil
	}
}

// Roads is the full set of road views computed from a history
type Roads struct {
	Grid    BigRoadGrid
	Columns []Run
	Derived DerivedRoads
}
