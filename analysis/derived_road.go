package analysis

import "github.com/louisuxu-sys/BC-LINE/models"

// DerivedRoad computes the red/blue marker sequence for a column list at the given gap.
//
// The walk starts at (gap, 1) when that column holds at least two results and
// falls back to (gap+1, 0) otherwise. A first-row position compares the lengths
// of the previous column and the column gap+1 further back. A deeper position
// checks whether the column gap to the left is as deep at this row as at the
// row above.
func DerivedRoad(cols []models.Run, gap int) []models.Marker {
	n := len(cols)
	var startCol, startRow int
	switch {
	case gap < n && cols[gap].Length >= 2:
		startCol, startRow = gap, 1
	case gap+1 < n:
		startCol, startRow = gap+1, 0
	default:
		return nil
	}

	var markers []models.Marker
	for ci := startCol; ci < n; ci++ {
		ri := 0
		if ci == startCol {
			ri = startRow
		}
		for ; ri < cols[ci].Length; ri++ {
			if ri == 0 {
				prev, compare := ci-1, ci-1-gap
				if prev < 0 || compare < 0 {
					continue
				}
				markers = append(markers, markerFor(cols[prev].Length == cols[compare].Length))
				continue
			}

			ref := ci - gap
			if ref < 0 {
				continue
			}
			here := ri < cols[ref].Length
			above := ri-1 < cols[ref].Length
			markers = append(markers, markerFor(here == above))
		}
	}
	return markers
}

// BuildDerivedRoads computes all three derived roads from one column list
func BuildDerivedRoads(cols []models.Run) models.DerivedRoads {
	return models.DerivedRoads{
		BigEye:    DerivedRoad(cols, models.BigEyeRoad.Gap()),
		Small:     DerivedRoad(cols, models.SmallRoad.Gap()),
		Cockroach: DerivedRoad(cols, models.CockroachRoad.Gap()),
	}
}

// BuildRoads computes every road view of a raw history
func BuildRoads(history []models.Outcome) models.Roads {
	pure := Pure(history)
	cols := Runs(pure)
	return models.Roads{
		Grid:    BuildBigRoad(pure),
		Columns: cols,
		Derived: BuildDerivedRoads(cols),
	}
}

func markerFor(consistent bool) models.Marker {
	if consistent {
		return models.MarkerRed
	}
	return models.MarkerBlue
}

func countRed(markers []models.Marker) int {
	red := 0
	for _, m := range markers {
		if m == models.MarkerRed {
			red++
		}
	}
	return red
}

func lastN[T any](s []T, n int) []T {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
