package builder

import (
	"math/rand"
	"testing"

	"github.com/samdwyer/forestgen/internal/grid"
)

// scriptedRand replays fixed values and then falls back to a seeded source.
type scriptedRand struct {
	values   []int
	fallback *rand.Rand
	calls    int
}

func newScriptedRand(values ...int) *scriptedRand {
	return &scriptedRand{
		values:   values,
		fallback: rand.New(rand.NewSource(1)),
	}
}

func (r *scriptedRand) Intn(n int) int {
	r.calls++
	if len(r.values) > 0 {
		v := r.values[0]
		r.values = r.values[1:]
		return v % n
	}
	return r.fallback.Intn(n)
}

// assertWallSymmetry fails if any pair of adjacent claimed cells disagrees about
// the wall between them.
func assertWallSymmetry(t *testing.T, g *grid.Grid) {
	t.Helper()
	g.ForEachCell(func(cell *grid.Cell) {
		for _, d := range []grid.Direction{grid.Right, grid.Bottom} {
			neighbor := g.Neighbor(cell, d)
			if neighbor == nil {
				continue
			}
			if cell.Wall(d) != neighbor.Wall(d.Opposite()) {
				t.Errorf("wall mismatch between (%d,%d) %s=%v and (%d,%d) %s=%v",
					cell.X, cell.Y, d, cell.Wall(d),
					neighbor.X, neighbor.Y, d.Opposite(), neighbor.Wall(d.Opposite()))
			}
		}
	})
}

// countOpenPairs counts open wall pairs between adjacent claimed cells accepted by keep.
func countOpenPairs(g *grid.Grid, keep func(a, b *grid.Cell) bool) int {
	n := 0
	g.ForEachCell(func(cell *grid.Cell) {
		for _, d := range []grid.Direction{grid.Right, grid.Bottom} {
			neighbor := g.Neighbor(cell, d)
			if neighbor == nil || cell.Wall(d) || neighbor.Wall(d.Opposite()) {
				continue
			}
			if keep == nil || keep(cell, neighbor) {
				n++
			}
		}
	})
	return n
}

func bothMaze(a, b *grid.Cell) bool {
	return a.Kind == grid.KindMaze && b.Kind == grid.KindMaze
}
