package area

import "sync"

// maxVisibility is the largest supported sight radius in tile cells.
// Rays are precomputed out to this radius once per process.
const maxVisibility = 30

// ExploreTables holds the precomputed radial visibility masks shared by
// every map: for each radius 0..maxVisibility-1, the perimeter-offset of
// every ray at that distance from the center. The tables are immutable
// after construction and safe for concurrent reads.
type ExploreTables struct {
	largeFog  bool
	perimeter int
	// masks[i][slot] is the offset of ray 'slot' at distance i.
	masks [maxVisibility][]TilePoint
}

// NewExploreTables computes the mask set. largeFog shifts every mask by
// one cell and pads the fog bitmap, matching the engines that use the
// coarser fog tile art.
func NewExploreTables(largeFog bool) *ExploreTables {
	et := &ExploreTables{largeFog: largeFog}

	// First pass: count the perimeter of the maximum-radius circle so
	// every distance ring can hold one entry per ray.
	x := maxVisibility
	y := 0
	xc := 1 - 2*maxVisibility
	yc := 1
	re := 0
	for x >= y {
		et.perimeter += 8
		y++
		re += yc
		yc += 2
		if 2*re+xc > 0 {
			x--
			re += xc
			xc += 2
		}
	}
	for i := range et.masks {
		et.masks[i] = make([]TilePoint, et.perimeter)
	}

	// Second pass: walk the perimeter again, laying down one ray per
	// octant-reflected point. The octant order here fixes the angular
	// ordering of rays for every sweep.
	x = maxVisibility
	y = 0
	xc = 1 - 2*maxVisibility
	yc = 1
	re = 0
	slot := 0
	for x >= y {
		et.addRay(x, y, slot)
		et.addRay(-x, y, slot+1)
		et.addRay(-x, -y, slot+2)
		et.addRay(x, -y, slot+3)
		et.addRay(y, x, slot+4)
		et.addRay(-y, x, slot+5)
		et.addRay(-y, -x, slot+6)
		et.addRay(y, -x, slot+7)
		slot += 8
		y++
		re += yc
		yc += 2
		if 2*re+xc > 0 {
			x--
			re += xc
			xc += 2
		}
	}
	return et
}

// addRay interpolates the ray toward (destX,destY), storing the cell
// offset at each distance ring.
func (et *ExploreTables) addRay(destX, destY, slot int) {
	for i := 0; i < maxVisibility; i++ {
		x := (destX*i + maxVisibility/2) / maxVisibility
		y := (destY*i + maxVisibility/2) / maxVisibility
		if et.largeFog {
			x++
			y++
		}
		et.masks[i][slot] = TilePoint{X: x, Y: y}
	}
}

// Perimeter returns the number of rays in a full sweep.
func (et *ExploreTables) Perimeter() int {
	return et.perimeter
}

// LargeFog reports whether the masks carry the large-fog offset.
func (et *ExploreTables) LargeFog() bool {
	return et.largeFog
}

// Mask returns the ray offsets at distance ring i.
func (et *ExploreTables) Mask(i int) []TilePoint {
	return et.masks[i]
}

var (
	defaultExploreOnce sync.Once
	defaultExplore     *ExploreTables
)

// DefaultExploreTables returns the process-wide shared mask set, building
// it on first use. The one-time build is ordered by sync.Once, so later
// concurrent readers never observe a partial table.
func DefaultExploreTables() *ExploreTables {
	defaultExploreOnce.Do(func() {
		defaultExplore = NewExploreTables(true)
	})
	return defaultExplore
}
