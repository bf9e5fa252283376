package glitch

import "math"

// BruteForceLinkLimit is the entity count up to which Links compares every
// pair directly. Larger stores are bucketed into a uniform grid first so the
// per-frame cost stays bounded.
const BruteForceLinkLimit = 200

// Link is a pair of entities closer than the connection distance.
// It is derived fresh every frame and never stored.
type Link struct {
	I, J     int // I < J
	Distance float64
}

// Links appends to dst every unordered pair of entities whose distance is
// strictly below maxDistance, each pair exactly once with I < J, and returns
// the extended slice. Pass dst[:0] to reuse a buffer across frames.
func Links(entities []Entity, maxDistance float64, dst []Link) []Link {
	if maxDistance <= 0 || len(entities) < 2 {
		return dst
	}
	if len(entities) <= BruteForceLinkLimit {
		return bruteForceLinks(entities, maxDistance, dst)
	}
	var g linkGrid
	return g.links(entities, maxDistance, dst)
}

func bruteForceLinks(entities []Entity, maxDistance float64, dst []Link) []Link {
	max2 := maxDistance * maxDistance
	for i := 0; i < len(entities); i++ {
		a := &entities[i]
		for j := i + 1; j < len(entities); j++ {
			b := &entities[j]
			dx := a.X - b.X
			dy := a.Y - b.Y
			d2 := dx*dx + dy*dy
			if d2 < max2 {
				dst = append(dst, Link{I: i, J: j, Distance: math.Sqrt(d2)})
			}
		}
	}
	return dst
}

// linkGrid buckets entity indices into square cells of side maxDistance, so
// only the 3×3 neighbourhood of a cell can hold a linkable partner.
type linkGrid struct {
	cols, rows int
	minX, minY float64
	cell       float64
	heads      []int // first entity index per cell, -1 when empty
	next       []int // next entity index in the same cell, -1 at the end
}

func (g *linkGrid) build(entities []Entity, cell float64) {
	g.minX, g.minY = math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i := range entities {
		g.minX = math.Min(g.minX, entities[i].X)
		g.minY = math.Min(g.minY, entities[i].Y)
		maxX = math.Max(maxX, entities[i].X)
		maxY = math.Max(maxY, entities[i].Y)
	}
	g.cell = cell
	g.cols = int((maxX-g.minX)/cell) + 1
	g.rows = int((maxY-g.minY)/cell) + 1
	// Degenerate spreads (far-apart outliers with a tiny distance) would
	// explode the cell count; fall back to one dimension of coarse cells.
	for g.cols*g.rows > 4*len(entities)+64 {
		g.cell *= 2
		g.cols = int((maxX-g.minX)/g.cell) + 1
		g.rows = int((maxY-g.minY)/g.cell) + 1
	}

	g.heads = make([]int, g.cols*g.rows)
	for i := range g.heads {
		g.heads[i] = -1
	}
	g.next = make([]int, len(entities))
	for i := range entities {
		c := g.cellOf(entities[i].X, entities[i].Y)
		g.next[i] = g.heads[c]
		g.heads[c] = i
	}
}

func (g *linkGrid) cellCoords(x, y float64) (int, int) {
	cx := int((x - g.minX) / g.cell)
	cy := int((y - g.minY) / g.cell)
	return min(max(cx, 0), g.cols-1), min(max(cy, 0), g.rows-1)
}

func (g *linkGrid) cellOf(x, y float64) int {
	cx, cy := g.cellCoords(x, y)
	return cy*g.cols + cx
}

func (g *linkGrid) links(entities []Entity, maxDistance float64, dst []Link) []Link {
	g.build(entities, maxDistance)
	max2 := maxDistance * maxDistance
	for i := range entities {
		a := &entities[i]
		cx, cy := g.cellCoords(a.X, a.Y)
		for ny := max(cy-1, 0); ny <= min(cy+1, g.rows-1); ny++ {
			for nx := max(cx-1, 0); nx <= min(cx+1, g.cols-1); nx++ {
				for j := g.heads[ny*g.cols+nx]; j != -1; j = g.next[j] {
					if j <= i {
						continue
					}
					b := &entities[j]
					dx := a.X - b.X
					dy := a.Y - b.Y
					d2 := dx*dx + dy*dy
					if d2 < max2 {
						dst = append(dst, Link{I: i, J: j, Distance: math.Sqrt(d2)})
					}
				}
			}
		}
	}
	return dst
}
