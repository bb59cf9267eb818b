package area

import (
	"errors"
	"image"

	"github.com/sirupsen/logrus"
)

// AreaType flags classify the map's environment; the fog sweep consults
// them for the outdoor-door reveal heuristic.
type AreaType uint8

const (
	AreaOutdoor AreaType = 1 << iota
	AreaCity
	AreaDungeon
)

// Config carries everything a Map needs at construction. TileProps is
// required; the rest has usable zero values.
type Config struct {
	TileProps *TileProps
	// Explore supplies the shared visibility masks. Nil selects the
	// process-wide default tables.
	Explore *ExploreTables
	// Walls is the static occluder geometry.
	Walls []*WallPolygon
	// Sounds is the optional terrain sound service.
	Sounds *TerrainSounds
	// Notifier receives scheduler side effects. May be nil.
	Notifier Notifier
	// AreaType classifies the environment.
	AreaType AreaType

	// DitherSprites enables the dithered occlusion style; AlwaysDither
	// forces half-transparency for every occluded sprite regardless of
	// selection state.
	DitherSprites bool
	AlwaysDither  bool

	// Log receives construction and lifecycle diagnostics. Nil selects
	// the standard logger.
	Log *logrus.Logger
}

// Map is one loaded game area: the packed tile raster, fog bitmaps,
// wall occluders with their stencil cache, the actor list and the
// per-tick priority queues. A Map is owned by a single simulation
// thread; nothing here is safe for concurrent mutation.
type Map struct {
	cfg       Config
	tileProps *TileProps
	explore   *ExploreTables
	sounds    *TerrainSounds
	notifier  Notifier
	areaType  AreaType
	log       *logrus.Entry

	fogSize        Size
	exploredBitmap *bitset
	visibleBitmap  *bitset
	inCutscene     bool

	walls          []*WallPolygon
	wallGroups     [][]*WallPolygon
	wallGroupPitch int

	wallStencil     *image.RGBA
	stencilViewport Region
	objectStencils  map[uint32]stencilEntry

	actors          []*Actor
	queue           [2][]*Actor // RunScripts, Display
	hostilesVisible bool

	stats TickStats
}

// NewMap builds a map from its static assets. Asset problems surface
// here, never later as corrupted queries.
func NewMap(cfg Config) (*Map, error) {
	if cfg.TileProps == nil {
		return nil, errors.New("area: config needs a tile property raster")
	}
	if cfg.Explore == nil {
		cfg.Explore = DefaultExploreTables()
	}
	logger := cfg.Log
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	m := &Map{
		cfg:            cfg,
		tileProps:      cfg.TileProps,
		explore:        cfg.Explore,
		sounds:         cfg.Sounds,
		notifier:       cfg.Notifier,
		areaType:       cfg.AreaType,
		log:            logger.WithField("component", "area"),
		objectStencils: make(map[uint32]stencilEntry),
	}

	m.fogSize = m.FogMapSize()
	m.exploredBitmap = newBitset(m.fogSize.W * m.fogSize.H)
	m.visibleBitmap = newBitset(m.fogSize.W * m.fogSize.H)

	m.buildWallGroups(cfg.Walls)

	ts := m.tileProps.GetSize()
	m.log.WithFields(logrus.Fields{
		"tiles": ts,
		"fog":   m.fogSize,
		"walls": len(cfg.Walls),
	}).Debug("map constructed")
	return m, nil
}

// TileProps exposes the raster for direct field queries.
func (m *Map) TileProps() *TileProps {
	return m.tileProps
}

// Size returns the map dimensions in world pixels.
func (m *Map) Size() Size {
	ts := m.tileProps.GetSize()
	return Size{W: ts.W * TileWidth, H: ts.H * TileHeight}
}

// SetCutscene toggles scripted non-interactive mode; while set, the
// visible fog set is not reset between ticks.
func (m *Map) SetCutscene(on bool) {
	m.inCutscene = on
}

// Actors returns the live actor list.
func (m *Map) Actors() []*Actor {
	return m.actors
}

// Walls returns the static occluder geometry.
func (m *Map) Walls() []*WallPolygon {
	return m.walls
}

// AddActor registers an actor and paints its footprint.
func (m *Map) AddActor(a *Actor) {
	a.SetPos(a.Pos)
	m.actors = append(m.actors, a)
	if a.BlocksSearchMap() {
		m.BlockSearchMapFor(a)
	}
}

// RemoveActor unregisters an actor, frees the ground under its feet and
// evicts its stencil cache entry. The actor value itself is externally
// owned; the map only tracks it.
func (m *Map) RemoveActor(a *Actor) {
	for i, other := range m.actors {
		if other == a {
			m.actors = append(m.actors[:i], m.actors[i+1:]...)
			break
		}
	}
	if a.BlocksSearchMap() {
		m.ClearSearchMapFor(a)
	}
	m.RemoveStencil(a.ID)
}

// StepFunc is the external per-entity simulation step (movement, script
// advance). The map calls it for every RunScripts actor each tick.
type StepFunc func(m *Map, a *Actor, t GameTime)

// Update runs one simulation tick: classify and sort all actors, run the
// per-entity step over the RunScripts queue, then sweep fog. The queue
// is walked in reverse sorted order so simulation order is decoupled
// from draw order but stays deterministic within a tick.
func (m *Map) Update(t GameTime, step StepFunc) {
	m.stats = TickStats{Tick: t}

	m.GenerateQueues(t)
	m.SortQueues()

	if step != nil {
		run := m.queue[PriorityRunScripts]
		for i := len(run) - 1; i >= 0; i-- {
			step(m, run[i], t)
		}
	}

	m.UpdateFog()
}
