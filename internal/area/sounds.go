package area

// terrainMaterialCount is the number of surface material slots in a
// terrain sound group.
const terrainMaterialCount = 16

// TerrainSounds maps a walk-sound group to the per-material sound
// resource names. It is an immutable lookup service built once from game
// data and injected into maps at construction; a nil service disables
// terrain sound resolution.
type TerrainSounds struct {
	refs map[string][terrainMaterialCount]string
}

// NewTerrainSounds builds the service from decoded table data.
func NewTerrainSounds(groups map[string][terrainMaterialCount]string) *TerrainSounds {
	refs := make(map[string][terrainMaterialCount]string, len(groups))
	for k, v := range groups {
		refs[k] = v
	}
	return &TerrainSounds{refs: refs}
}

// ResolveTerrainSound picks the sound resource for a walk-sound group at
// a world position, keyed by the surface material under p. Unknown
// groups resolve to the empty name.
func (m *Map) ResolveTerrainSound(group string, p Point) string {
	if m.sounds == nil {
		return ""
	}
	refs, ok := m.sounds.refs[group]
	if !ok {
		return ""
	}
	material := m.tileProps.QueryMaterial(TilePointOf(p))
	return refs[material%terrainMaterialCount]
}
