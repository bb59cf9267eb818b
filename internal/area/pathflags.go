package area

// PathFlags is the per-cell passability classification stored in the
// search-map channel of the tile property raster. The zero value doubles
// as both "unmarked" and "fully impassable": a cell with no flags at all
// cannot be entered and does not block sight.
type PathFlags uint8

const (
	// PathUnmarked / PathImpassable: no flags set.
	PathUnmarked   PathFlags = 0
	PathImpassable PathFlags = 0

	// PathPassable marks ground an actor can walk on.
	PathPassable PathFlags = 1 << 0
	// PathTravel marks a travel region (area exit). Travel regions are
	// implicitly walkable even when the raster omits PathPassable.
	PathTravel PathFlags = 1 << 1
	// PathNoSee blocks sight outright (used by fog sweeps).
	PathNoSee PathFlags = 1 << 2
	// PathSidewall blocks sight but not necessarily movement.
	PathSidewall PathFlags = 1 << 3
	// PathDoorOpaque is a closed door that fully occludes.
	PathDoorOpaque PathFlags = 1 << 4
	// PathDoorImpassable is a closed door that blocks movement.
	PathDoorImpassable PathFlags = 1 << 5
	// PathPC / PathNPC mark cells occupied by an actor's footprint.
	PathPC  PathFlags = 1 << 6
	PathNPC PathFlags = 1 << 7

	// PathActor is any occupant bit.
	PathActor = PathPC | PathNPC
	// PathNotActor masks away the occupant bits.
	PathNotActor = ^PathActor
	// PathDoor is any door bit.
	PathDoor = PathDoorOpaque | PathDoorImpassable
)

// normalizePoint applies the flag-combination rules for a single-cell
// query: travel regions are walkable, doors and occupants strip
// walkability, and an opaque door collapses the whole result to a bare
// sidewall (it occludes no matter what else accumulated).
func (f PathFlags) normalizePoint() PathFlags {
	if f&PathTravel != 0 {
		f |= PathPassable
	}
	if f&(PathDoorImpassable|PathActor) != 0 {
		f &^= PathPassable
	}
	if f&PathDoorOpaque != 0 {
		f = PathSidewall
	}
	return f
}

// normalizeAccumulated applies the combination rules for OR-accumulated
// results (radius and line queries). Unlike the point rule, an
// accumulated sidewall also strips walkability.
func (f PathFlags) normalizeAccumulated() PathFlags {
	if f&(PathDoorImpassable|PathActor|PathSidewall) != 0 {
		f &^= PathPassable
	}
	if f&PathDoorOpaque != 0 {
		f = PathSidewall
	}
	return f
}
