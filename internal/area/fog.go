package area

// bitset is a fixed-size bit vector used for the fog bitmaps.
type bitset struct {
	bits []uint64
	n    int
}

func newBitset(n int) *bitset {
	return &bitset{bits: make([]uint64, (n+63)/64), n: n}
}

func (b *bitset) set(i int)      { b.bits[i/64] |= 1 << (i % 64) }
func (b *bitset) get(i int) bool { return b.bits[i/64]&(1<<(i%64)) != 0 }

func (b *bitset) fill(v bool) {
	var word uint64
	if v {
		word = ^uint64(0)
	}
	for i := range b.bits {
		b.bits[i] = word
	}
}

func (b *bitset) count() int {
	c := 0
	for i := 0; i < b.n; i++ {
		if b.get(i) {
			c++
		}
	}
	return c
}

// FogMapSize returns the fog bitmap dimensions: half the tile grid, plus
// one cell of padding when the large-fog tables are in use.
func (m *Map) FogMapSize() Size {
	pad := 0
	if m.explore.LargeFog() {
		pad = 1
	}
	ts := m.tileProps.GetSize()
	return Size{
		W: (ts.W+fogCellRatio-1)/fogCellRatio + pad,
		H: (ts.H+fogCellRatio-1)/fogCellRatio + pad,
	}
}

func (m *Map) fogIndex(p FogPoint) (int, bool) {
	if p.X < 0 || p.Y < 0 || p.X >= m.fogSize.W || p.Y >= m.fogSize.H {
		return 0, false
	}
	return p.Y*m.fogSize.W + p.X, true
}

// fogUncovered tests one fog bit. A nil bitmap reports every point as
// uncovered (the debug reveal-all mode); out of bounds is always foggy.
func (m *Map) fogUncovered(p FogPoint, mask *bitset) bool {
	if mask == nil {
		return true
	}
	i, ok := m.fogIndex(p)
	if !ok {
		return false
	}
	return mask.get(i)
}

// IsVisible reports whether the world point is in the currently visible
// fog set.
func (m *Map) IsVisible(p Point) bool {
	return m.fogUncovered(FogPointOf(TilePointOf(p)), m.visibleBitmap)
}

// IsExplored reports whether the world point has ever been revealed.
func (m *Map) IsExplored(p Point) bool {
	return m.fogUncovered(FogPointOf(TilePointOf(p)), m.exploredBitmap)
}

// FillExplored reveals or re-shrouds the whole map in one call.
func (m *Map) FillExplored(explored bool) {
	m.exploredBitmap.fill(explored)
}

// RevealAll switches the fog queries into debug reveal-all mode; the
// bitmaps are dropped and every point reports uncovered.
func (m *Map) RevealAll() {
	m.exploredBitmap = nil
	m.visibleBitmap = nil
}

// ExploreTile marks one fog cell explored, and visible too unless
// fogOnly. Explored bits are never cleared here; only FillExplored
// resets them.
func (m *Map) ExploreTile(fogP FogPoint, fogOnly bool) {
	i, ok := m.fogIndex(fogP)
	if !ok {
		return
	}
	if m.exploredBitmap != nil {
		m.exploredBitmap.set(i)
	}
	if !fogOnly && m.visibleBitmap != nil {
		m.visibleBitmap.set(i)
	}
}

// ExploreMapChunk sweeps every precomputed ray outward from pos up to
// range cells, marking fog cells along each ray. With los set, a ray
// stops revealing after an opaque cell — with one cell of tolerance past
// a sidewall so the near face of a wall is revealed before it occludes.
// Closed impassable doors in outdoor, non-city areas reveal the fog only
// (the door itself stays shrouded until opened).
func (m *Map) ExploreMapChunk(pos TilePoint, rng int, los bool) {
	if rng > maxVisibility {
		rng = maxVisibility
	}

	for p := m.explore.Perimeter() - 1; p >= 0; p-- {
		pass := 2
		block := false
		sidewall := false
		fogOnly := false
		for i := 0; i < rng; i++ {
			tile := pos.Add(m.explore.Mask(i)[p])
			fogTile := FogPointOf(tile)

			if !los {
				m.ExploreTile(fogTile, fogOnly)
				continue
			}

			if !block {
				typ := m.GetBlockedTile(tile)
				switch {
				case typ&PathNoSee != 0:
					block = true
				case typ&PathSidewall != 0:
					sidewall = true
				case sidewall:
					block = true
				case typ&PathDoorImpassable != 0 &&
					m.areaType&AreaOutdoor != 0 && m.areaType&AreaCity == 0:
					// outdoor doors read as transparent; cities are
					// excluded to avoid needless shrouding
					fogOnly = true
				}
			}
			if block {
				pass--
				if pass == 0 {
					break
				}
			}
			m.ExploreTile(fogTile, fogOnly)
		}
	}
}

// UpdateFog recomputes the visible bitmap from scratch and sweeps sight
// for every explore-capable actor. During cutscenes the visible set is
// left alone so scripted reveals persist.
func (m *Map) UpdateFog() {
	if !m.inCutscene && m.visibleBitmap != nil {
		m.visibleBitmap.fill(false)
	}

	for _, actor := range m.actors {
		if !actor.Explorer || actor.CantSee {
			continue
		}
		vis := actor.VisualRange
		if actor.Blind || vis < 2 {
			vis = 2 // can see only themselves
		}
		m.ExploreMapChunk(actor.TilePos, vis+actor.CircleSize, true)
	}

	m.stats.VisibleFogCells = 0
	m.stats.ExploredFogCells = 0
	if m.visibleBitmap != nil {
		m.stats.VisibleFogCells = m.visibleBitmap.count()
	}
	if m.exploredBitmap != nil {
		m.stats.ExploredFogCells = m.exploredBitmap.count()
	}
}
