package area

import (
	"fmt"
	"math"
)

// Grid resolutions. World coordinates are in pixels; the simulation grid
// ("tile cells") is one cell per 16x12 pixel region, and fog is tracked at
// half the tile resolution (one fog cell per 2x2 tile cells).
const (
	TileWidth    = 16
	TileHeight   = 12
	fogCellRatio = 2
)

// maxCircleSize is the largest supported footprint circle class.
const maxCircleSize = 8

// Point is a world-space (pixel) position.
type Point struct {
	X, Y int
}

// TilePoint is a position on the simulation (search-map) grid.
type TilePoint struct {
	X, Y int
}

// FogPoint is a position on the fog grid.
type FogPoint struct {
	X, Y int
}

// TilePointOf converts a world position to its containing tile cell.
func TilePointOf(p Point) TilePoint {
	return TilePoint{X: p.X / TileWidth, Y: p.Y / TileHeight}
}

// FogPointOf converts a tile cell to its containing fog cell.
func FogPointOf(p TilePoint) FogPoint {
	return FogPoint{X: p.X / fogCellRatio, Y: p.Y / fogCellRatio}
}

// Add returns p offset by d.
func (p TilePoint) Add(d TilePoint) TilePoint {
	return TilePoint{X: p.X + d.X, Y: p.Y + d.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Size is a width/height pair.
type Size struct {
	W, H int
}

// IsInvalid reports whether the size cannot describe a real raster.
func (s Size) IsInvalid() bool {
	return s.W <= 0 || s.H <= 0
}

// Region is an axis-aligned world-space rectangle.
type Region struct {
	X, Y, W, H int
}

// MakeRegion builds a region from an origin and size.
func MakeRegion(origin Point, size Size) Region {
	return Region{X: origin.X, Y: origin.Y, W: size.W, H: size.H}
}

// Origin returns the top-left corner.
func (r Region) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Size returns the region's dimensions.
func (r Region) Size() Size {
	return Size{W: r.W, H: r.H}
}

// Intersects reports whether r and o overlap.
func (r Region) Intersects(o Region) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X && r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// ContainsPoint reports whether p lies inside r.
func (r Region) ContainsPoint(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// ContainsRegion reports whether o lies entirely inside r.
func (r Region) ContainsRegion(o Region) bool {
	return o.X >= r.X && o.Y >= r.Y && o.X+o.W <= r.X+r.W && o.Y+o.H <= r.Y+r.H
}

// rowSpan is one horizontal run of a rasterized disc: every cell from
// Left.X to Right.X inclusive on row Left.Y.
type rowSpan struct {
	Left, Right TilePoint
}

// plotCircle rasterizes the circle of radius r around c with the midpoint
// circle algorithm, returning one span per visited row. Span endpoints come
// out in the fixed octant order the visibility masks also use, so two
// callers walking the same radius visit cells in the same sequence.
// Radius 0 degenerates to the single center cell.
func plotCircle(c TilePoint, r int) []rowSpan {
	if r <= 0 {
		return []rowSpan{{Left: c, Right: c}}
	}

	spans := make([]rowSpan, 0, 4*r)
	x := r
	y := 0
	xc := 1 - 2*r
	yc := 1
	re := 0
	for x >= y {
		spans = append(spans,
			rowSpan{Left: TilePoint{c.X - x, c.Y + y}, Right: TilePoint{c.X + x, c.Y + y}},
			rowSpan{Left: TilePoint{c.X - x, c.Y - y}, Right: TilePoint{c.X + x, c.Y - y}},
			rowSpan{Left: TilePoint{c.X - y, c.Y + x}, Right: TilePoint{c.X + y, c.Y + x}},
			rowSpan{Left: TilePoint{c.X - y, c.Y - x}, Right: TilePoint{c.X + y, c.Y - x}},
		)
		y++
		re += yc
		yc += 2
		if 2*re+xc > 0 {
			x--
			re += xc
			xc += 2
		}
	}

	for _, s := range spans {
		// A span with crossed endpoints means the plotter itself is broken.
		if s.Left.Y != s.Right.Y || s.Left.X > s.Right.X {
			panic(fmt.Sprintf("plotCircle: malformed span %v-%v", s.Left, s.Right))
		}
	}
	return spans
}

// lineWalker steps from a start to an end point in fixed-size increments,
// yielding each newly entered tile cell. The step length is proportional
// to the mover's speed factor (1.0 = one tile cell per step); slower
// movers sample the line more densely, matching how far they actually
// travel per update.
type lineWalker struct {
	pos    [2]float64
	end    [2]float64
	step   float64
	tile   TilePoint
	doneAt bool
}

func newLineWalker(a, b TilePoint, stepFactor float64) *lineWalker {
	if stepFactor < 1 {
		stepFactor = 1
	}
	return &lineWalker{
		pos:  [2]float64{float64(a.X), float64(a.Y)},
		end:  [2]float64{float64(b.X), float64(b.Y)},
		step: stepFactor,
		tile: a,
	}
}

// next advances the walker and returns the next distinct tile on the line.
// ok is false once the end tile has been yielded.
func (w *lineWalker) next() (TilePoint, bool) {
	for {
		if w.doneAt {
			return TilePoint{}, false
		}
		dx := w.end[0] - w.pos[0]
		dy := w.end[1] - w.pos[1]
		dist := math.Hypot(dx, dy)
		if dist <= w.step {
			w.pos = w.end
			w.doneAt = true
		} else {
			scale := w.step / dist
			w.pos[0] += dx * scale
			w.pos[1] += dy * scale
		}
		t := TilePoint{X: int(math.Round(w.pos[0])), Y: int(math.Round(w.pos[1]))}
		if t == w.tile && !w.doneAt {
			continue
		}
		w.tile = t
		return t, true
	}
}
