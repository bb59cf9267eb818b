package area

// BlockSearchMapFor paints the actor's footprint disc onto the search
// map, marking the covered cells with the actor's occupant class.
func (m *Map) BlockSearchMapFor(a *Actor) {
	flag := PathNPC
	if a.PC {
		flag = PathPC
	}
	m.tileProps.StampFootprint(a.TilePos, a.CircleSize, flag)
}

// ClearSearchMapFor unmarks the actor's footprint disc, then re-stamps
// every blocking neighbour nearby. The restore pass is required because
// footprints overlap: a plain unmark would also erase the shared cells
// of any actor standing partially on the same ground.
func (m *Map) ClearSearchMapFor(a *Actor) {
	neighbours := m.actorsInRadius(a.TilePos, maxCircleSize*3, a)
	m.tileProps.StampFootprint(a.TilePos, a.CircleSize, PathUnmarked)

	for _, n := range neighbours {
		if n.BlocksSearchMap() {
			m.BlockSearchMapFor(n)
		}
	}
}

// actorsInRadius returns every actor other than skip within r tile cells
// of center (conservative square test; the restore pass only needs to be
// a superset of the overlap candidates).
func (m *Map) actorsInRadius(center TilePoint, r int, skip *Actor) []*Actor {
	var out []*Actor
	for _, a := range m.actors {
		if a == skip {
			continue
		}
		dx := a.TilePos.X - center.X
		dy := a.TilePos.Y - center.Y
		if dx >= -r && dx <= r && dy >= -r && dy <= r {
			out = append(out, a)
		}
	}
	return out
}

// MoveActor relocates an actor, repainting its footprint at the new
// position. Use this instead of mutating Pos directly so the search map
// never carries a stale occupancy disc.
func (m *Map) MoveActor(a *Actor, to Point) {
	if a.BlocksSearchMap() {
		m.ClearSearchMapFor(a)
	}
	a.SetPos(to)
	if a.BlocksSearchMap() {
		m.BlockSearchMapFor(a)
	}
}
