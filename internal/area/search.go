package area

// GetBlocked is the combined passability query: size -1 means a point
// query at p, anything else a radius query of that footprint class.
func (m *Map) GetBlocked(p Point, size int) PathFlags {
	if size == -1 {
		return m.GetBlockedTile(TilePointOf(p))
	}
	return m.GetBlockedInRadius(p, size, false)
}

// GetBlockedTile classifies a single search-map cell. Actors block by
// default; callers that want to walk through them should test for
// PathPassable|PathActor themselves.
func (m *Map) GetBlockedTile(p TilePoint) PathFlags {
	return m.tileProps.QuerySearchMap(p).normalizePoint()
}

// GetBlockedInRadius OR-combines cell flags over a disc of radius
// size-2 around p. With stopOnImpassable, the scan bails out with a bare
// impassable result as soon as any fully impassable cell is visited.
//
// The radius here is one cell smaller than the painted footprint disc;
// see StampFootprint. Do not "fix" the asymmetry.
func (m *Map) GetBlockedInRadius(p Point, size int, stopOnImpassable bool) PathFlags {
	return m.GetBlockedInRadiusTile(TilePointOf(p), size, stopOnImpassable)
}

// GetBlockedInRadiusTile is GetBlockedInRadius in tile coordinates.
func (m *Map) GetBlockedInRadiusTile(tp TilePoint, size int, stopOnImpassable bool) PathFlags {
	if size < 2 {
		size = 2
	} else if size > maxCircleSize {
		size = maxCircleSize
	}
	r := size - 2

	ret := PathImpassable
	for _, span := range plotCircle(tp, r) {
		for x := span.Left.X; x <= span.Right.X; x++ {
			flags := m.GetBlockedTile(TilePoint{X: x, Y: span.Left.Y})
			if stopOnImpassable && flags == PathImpassable {
				return PathImpassable
			}
			ret |= flags
		}
	}
	return ret.normalizeAccumulated()
}

// GetBlockedInLine steps from s to d, OR-combining the flags of every
// cell the line passes through. Step size scales with the mover's speed;
// without a mover the line is sampled every cell. With stopOnImpassable
// and a mover, each step tests the mover's whole footprint, and a fully
// blocked step returns a bare impassable immediately.
func (m *Map) GetBlockedInLine(s, d Point, stopOnImpassable bool, mover *Actor) PathFlags {
	return m.GetBlockedInLineTile(TilePointOf(s), TilePointOf(d), stopOnImpassable, mover)
}

// GetBlockedInLineTile is GetBlockedInLine in tile coordinates.
func (m *Map) GetBlockedInLineTile(s, d TilePoint, stopOnImpassable bool, mover *Actor) PathFlags {
	ret := PathImpassable
	if s == d {
		return ret.normalizeAccumulated()
	}

	factor := 1.0
	if mover != nil && mover.Speed > 0 {
		factor = float64(stepTime) / float64(mover.Speed) / 16
	}

	w := newLineWalker(s, d, factor)
	for {
		tile, ok := w.next()
		if !ok {
			break
		}
		// wider check for bigger movers; must not be used for plain LOS
		var flags PathFlags
		if stopOnImpassable && mover != nil {
			flags = m.GetBlockedInRadiusTile(tile, mover.CircleSize, false)
		} else {
			flags = m.GetBlockedTile(tile)
		}
		if stopOnImpassable && flags == PathImpassable {
			return PathImpassable
		}
		ret |= flags
	}
	return ret.normalizeAccumulated()
}

// stepTime is the nominal duration of one movement step, used to scale
// line sampling against a mover's speed.
const stepTime = 566

// IsVisibleLOS reports line of sight between two points: sidewalls
// obstruct sight, plain impassable ground does not.
func (m *Map) IsVisibleLOS(s, d Point, caller *Actor) bool {
	return m.GetBlockedInLine(s, d, false, caller)&PathSidewall == 0
}

// IsVisibleLOSTile is IsVisibleLOS in tile coordinates.
func (m *Map) IsVisibleLOSTile(s, d TilePoint, caller *Actor) bool {
	return m.GetBlockedInLineTile(s, d, false, caller)&PathSidewall == 0
}

// IsWalkableTo reports whether a straight walk from s to d stays on
// passable ground. actorsAreBlocking controls whether occupied cells
// count as obstacles.
func (m *Map) IsWalkableTo(s, d Point, actorsAreBlocking bool, caller *Actor) bool {
	ret := m.GetBlockedInLine(s, d, true, caller)
	mask := PathPassable
	if !actorsAreBlocking {
		mask |= PathActor
	}
	return ret&mask != 0
}
