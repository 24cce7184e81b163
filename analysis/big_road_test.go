package analysis

import (
	"testing"

	"github.com/louisuxu-sys/BC-LINE/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func gridOf(cells map[[2]int]models.Outcome) map[models.Cell]models.Outcome {
	out := make(map[models.Cell]models.Outcome, len(cells))
	for rc, o := range cells {
		out[models.Cell{Row: rc[0], Col: rc[1]}] = o
	}
	return out
}

func TestBuildBigRoad(t *testing.T) {
	b, p := models.OutcomeBanker, models.OutcomePlayer

	t.Run("empty", func(t *testing.T) {
		grid := BuildBigRoad(nil)
		assert.Equal(t, 0, grid.Columns)
		assert.Equal(t, 0, grid.Len())
	})

	t.Run("columns per side change", func(t *testing.T) {
		grid := BuildBigRoad(seq("BBPB"))
		assert.Equal(t, 3, grid.Columns)
		assert.Equal(t, gridOf(map[[2]int]models.Outcome{
			{0, 0}: b, {1, 0}: b,
			{0, 1}: p,
			{0, 2}: b,
		}), grid.Cells)
	})

	t.Run("long streak tails along the bottom row", func(t *testing.T) {
		grid := BuildBigRoad(seq("BBBBBBBBPB"))
		assert.Equal(t, 3, grid.Columns)
		assert.Equal(t, gridOf(map[[2]int]models.Outcome{
			{0, 0}: b, {1, 0}: b, {2, 0}: b, {3, 0}: b, {4, 0}: b, {5, 0}: b,
			{5, 1}: b, {5, 2}: b,
			{0, 1}: p,
			{0, 2}: b,
		}), grid.Cells)
	})

	t.Run("streak blocked by an older tail turns early", func(t *testing.T) {
		grid := BuildBigRoad(seq("BBBBBBBPPPPPPPB"))
		require.Equal(t, 4, grid.Columns)

		for row := 0; row < 5; row++ {
			got, ok := grid.At(row, 1)
			require.True(t, ok, "row %d of column 1", row)
			assert.Equal(t, p, got)
		}
		tail, _ := grid.At(5, 1)
		assert.Equal(t, b, tail)

		turned, ok := grid.At(4, 2)
		require.True(t, ok)
		assert.Equal(t, p, turned)
		turned, ok = grid.At(4, 3)
		require.True(t, ok)
		assert.Equal(t, p, turned)

		next, ok := grid.At(0, 2)
		require.True(t, ok)
		assert.Equal(t, b, next)
	})

	t.Run("reference sequence fits in one column per run", func(t *testing.T) {
		pure := Pure(keypad("1132122221221122232311122132212213"))
		grid := BuildBigRoad(pure)
		assert.Equal(t, 15, grid.Columns)
		assert.Equal(t, len(pure), grid.Len())
	})
}

func TestBigRoadProperties(t *testing.T) {
	t.Run("every pure entry is placed once", rapid.MakeCheck(func(t *rapid.T) {
		pure := pureGen().Draw(t, "pure")
		grid := BuildBigRoad(pure)
		if grid.Len() != len(pure) {
			t.Fatalf("placed %d cells for %d entries", grid.Len(), len(pure))
		}
	}))

	t.Run("grid stays inside six rows and its width", rapid.MakeCheck(func(t *rapid.T) {
		grid := BuildBigRoad(pureGen().Draw(t, "pure"))
		for cell := range grid.Cells {
			if cell.Row < 0 || cell.Row >= BigRoadRows || cell.Col < 0 || cell.Col >= grid.Columns {
				t.Fatalf("cell %+v outside %d columns", cell, grid.Columns)
			}
		}
	}))

	t.Run("column list length equals run count", rapid.MakeCheck(func(t *rapid.T) {
		history := historyGen().Draw(t, "history")
		roads := BuildRoads(history)
		if len(roads.Columns) != len(Runs(Pure(history))) {
			t.Fatalf("column list has %d entries", len(roads.Columns))
		}
		if roads.Grid.Len() != len(Pure(history)) {
			t.Fatalf("grid has %d cells", roads.Grid.Len())
		}
	}))
}
