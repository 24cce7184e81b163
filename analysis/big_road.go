package analysis

import "github.com/louisuxu-sys/BC-LINE/models"

// BigRoadRows is the height of the physical scoreboard
const BigRoadRows = 6

// BuildBigRoad lays a pure sequence out on the scoreboard grid.
//
// Same-side results drop down the current column until the bottom row or an
// occupied slot is reached, after which that streak continues rightwards as a
// tail. A side change opens a new column to the right of the last column that
// was started at row 0.
//
// The grid is a rendering aid only; pattern and derived road logic use the column list.
func BuildBigRoad(pure []models.Outcome) models.BigRoadGrid {
	grid := models.BigRoadGrid{Cells: make(map[models.Cell]models.Outcome, len(pure))}
	if len(pure) == 0 {
		return grid
	}

	occupied := func(row, col int) bool {
		_, ok := grid.Cells[models.Cell{Row: row, Col: col}]
		return ok
	}

	row, col := 0, 0
	headCol := 0
	maxCol := 0
	tailing := false
	grid.Cells[models.Cell{}] = pure[0]

	for _, o := range pure[1:] {
		prev := grid.Cells[models.Cell{Row: row, Col: col}]
		if o == prev {
			if !tailing && row+1 < BigRoadRows && !occupied(row+1, col) {
				row++
			} else {
				tailing = true
				col++
				for occupied(row, col) {
					col++
				}
			}
		} else {
			tailing = false
			row = 0
			col = headCol + 1
			for occupied(row, col) {
				col++
			}
			headCol = col
		}
		grid.Cells[models.Cell{Row: row, Col: col}] = o
		maxCol = max(maxCol, col)
	}

	grid.Columns = maxCol + 1
	return grid
}
