package area

// WallFlags classify a static wall polygon.
type WallFlags uint8

const (
	// WallDisabled excludes the wall from occlusion (open doors).
	WallDisabled WallFlags = 1 << iota
	// WallDither renders occluded sprites half-transparent rather than
	// fully hidden behind this wall.
	WallDither
	// WallCoverAnims makes the wall also occlude background animations.
	WallCoverAnims
	// WallBaseline marks that base0/base1 hold a valid draw-order
	// baseline.
	WallBaseline
)

// WallPolygon is one static occluder: a closed outline with a bounding
// box and an optional baseline used to decide whether a point is drawn
// behind the wall. Geometry never changes after load; only the disabled
// flag may be toggled (doors).
type WallPolygon struct {
	Points []Point
	BBox   Region
	Base0  Point
	Base1  Point
	Flags  WallFlags
}

// NewWallPolygon builds a polygon, deriving the bounding box from the
// outline. base0/base1 may be zero if the wall has no baseline.
func NewWallPolygon(points []Point, base0, base1 Point, flags WallFlags) *WallPolygon {
	wp := &WallPolygon{Points: points, Base0: base0, Base1: base1, Flags: flags}
	if len(points) > 0 {
		minX, minY := points[0].X, points[0].Y
		maxX, maxY := minX, minY
		for _, p := range points[1:] {
			if p.X < minX {
				minX = p.X
			}
			if p.X > maxX {
				maxX = p.X
			}
			if p.Y < minY {
				minY = p.Y
			}
			if p.Y > maxY {
				maxY = p.Y
			}
		}
		wp.BBox = Region{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
	}
	return wp
}

// SetDisabled toggles the wall's participation in occlusion.
func (wp *WallPolygon) SetDisabled(disabled bool) {
	if disabled {
		wp.Flags |= WallDisabled
	} else {
		wp.Flags &^= WallDisabled
	}
}

// PointBehind reports whether p lies behind the wall (i.e. the wall
// should be drawn in front of an object anchored at p). Walls without a
// baseline occlude unconditionally.
func (wp *WallPolygon) PointBehind(p Point) bool {
	if wp.Flags&WallBaseline == 0 {
		return true
	}
	a, b := wp.Base0, wp.Base1
	if a.X > b.X {
		a, b = b, a
	}
	// left-of test against the left-to-right oriented baseline
	return (b.X-a.X)*(p.Y-a.Y)-(b.Y-a.Y)*(p.X-a.X) > 0
}

// Wall group buckets cover fixed screen-sized slices of the map.
const (
	wallGroupWidth  = 640
	wallGroupHeight = 480
)

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// buildWallGroups sorts every wall polygon into the spatial buckets its
// bounding box touches. Built once at load; lookups only after.
func (m *Map) buildWallGroups(walls []*WallPolygon) {
	ts := m.tileProps.GetSize()
	mapW := ts.W * TileWidth
	mapH := ts.H * TileHeight
	m.wallGroupPitch = ceilDiv(mapW, wallGroupWidth)
	rows := ceilDiv(mapH, wallGroupHeight)
	if m.wallGroupPitch < 1 {
		m.wallGroupPitch = 1
	}
	if rows < 1 {
		rows = 1
	}
	m.wallGroups = make([][]*WallPolygon, m.wallGroupPitch*rows)
	m.walls = walls

	for _, wp := range walls {
		x0 := wp.BBox.X / wallGroupWidth
		y0 := wp.BBox.Y / wallGroupHeight
		x1 := ceilDiv(wp.BBox.X+wp.BBox.W, wallGroupWidth)
		y1 := ceilDiv(wp.BBox.Y+wp.BBox.H, wallGroupHeight)
		if x0 < 0 {
			x0 = 0
		}
		if y0 < 0 {
			y0 = 0
		}
		if x1 > m.wallGroupPitch {
			x1 = m.wallGroupPitch
		}
		if y1 > rows {
			y1 = rows
		}
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				idx := y*m.wallGroupPitch + x
				m.wallGroups[idx] = append(m.wallGroups[idx], wp)
			}
		}
	}
}

// WallPolygonSet is the partition result of an occlusion query: walls
// drawn in front of the reference point and walls behind it.
type WallPolygonSet struct {
	Front  []*WallPolygon
	Behind []*WallPolygon
}

// WallsIntersectingRegion collects every wall whose bounding box overlaps
// r, visiting only the buckets r touches. Disabled walls are skipped
// unless includeDisabled. With a reference point the matches are
// partitioned into front/behind by the baseline half-plane test; without
// one, everything lands in Front.
func (m *Map) WallsIntersectingRegion(r Region, includeDisabled bool, loc *Point) WallPolygonSet {
	if r.X < 0 {
		r.W += r.X
		r.X = 0
	}
	if r.Y < 0 {
		r.H += r.Y
		r.Y = 0
	}

	rows := len(m.wallGroups) / m.wallGroupPitch
	ymin := r.Y / wallGroupHeight
	ymax := min(rows, ceilDiv(r.Y+r.H, wallGroupHeight))
	xmin := r.X / wallGroupWidth
	xmax := min(m.wallGroupPitch, ceilDiv(r.X+r.W, wallGroupWidth))

	var set WallPolygonSet
	seen := make(map[*WallPolygon]bool)
	for y := ymin; y < ymax; y++ {
		for x := xmin; x < xmax; x++ {
			for _, wp := range m.wallGroups[y*m.wallGroupPitch+x] {
				if wp.Flags&WallDisabled != 0 && !includeDisabled {
					continue
				}
				if !r.Intersects(wp.BBox) {
					continue
				}
				if seen[wp] {
					continue
				}
				seen[wp] = true

				if loc == nil || wp.PointBehind(*loc) {
					set.Front = append(set.Front, wp)
				} else {
					set.Behind = append(set.Behind, wp)
				}
			}
		}
	}
	return set
}

// BehindWall reports whether an object with draw bounds r anchored at pos
// has any enabled wall drawn in front of it.
func (m *Map) BehindWall(pos Point, r Region) bool {
	set := m.WallsIntersectingRegion(r, false, &pos)
	return len(set.Front) > 0
}
