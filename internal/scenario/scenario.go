// Package scenario builds self-contained demo areas for the viewer and
// the headless report tool: a procedural tile raster, wall occluders and
// a handful of patrolling actors wired into one stepped simulation.
package scenario

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/cairnwood/areacore/internal/area"
)

// Event is one recorded scheduler side effect.
type Event struct {
	Tick    area.GameTime
	Kind    string // "spotted" or "autopause"
	ActorID uint32
}

// EventLog records scheduler notifications with the tick they happened on.
// It implements area.Notifier.
type EventLog struct {
	now    *area.GameTime
	Events []Event
}

func (l *EventLog) ActorSpotted(a *area.Actor) {
	l.Events = append(l.Events, Event{Tick: *l.now, Kind: "spotted", ActorID: a.ID})
}

func (l *EventLog) AutopauseRequested(a *area.Actor) {
	l.Events = append(l.Events, Event{Tick: *l.now, Kind: "autopause", ActorID: a.ID})
}

// FirstTick returns the tick of the first event of the given kind, or -1.
func (l *EventLog) FirstTick(kind string) int {
	for _, e := range l.Events {
		if e.Kind == kind {
			return int(e.Tick)
		}
	}
	return -1
}

// Count returns the number of recorded events of the given kind.
func (l *EventLog) Count(kind string) int {
	n := 0
	for _, e := range l.Events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Scenario is a runnable demo area: the map plus patrol routes and the
// per-tick bookkeeping both front ends consume.
type Scenario struct {
	Map     *area.Map
	Events  *EventLog
	History []area.TickStats

	now      area.GameTime
	tiles    area.Size
	areaType area.AreaType
	rng      *rand.Rand
	log      *logrus.Logger

	tp      *area.TileProps
	walls   []*area.WallPolygon
	patrols map[uint32][2]area.Point // actor id -> endpoints, ping-pong
	leg     map[uint32]int           // current endpoint index
	actors  []*area.Actor
}

// optionKind controls the pass in which an option is applied.
type optionKind int

const (
	optInfra   optionKind = iota // size, seed, area type, logger
	optTerrain                   // raster painting, wall polygons
	optActor                     // actor placement
)

// Option is a builder function applied to a Scenario during construction.
type Option struct {
	kind optionKind
	fn   func(*Scenario)
}

// WithTiles sets the map dimensions in tile cells.
func WithTiles(w, h int) Option {
	return Option{optInfra, func(s *Scenario) {
		s.tiles = area.Size{W: w, H: h}
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) Option {
	return Option{optInfra, func(s *Scenario) {
		s.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- demo content
	}}
}

// WithAreaType classifies the environment.
func WithAreaType(at area.AreaType) Option {
	return Option{optInfra, func(s *Scenario) {
		s.areaType = at
	}}
}

// WithLogger routes construction diagnostics to the given logger.
func WithLogger(log *logrus.Logger) Option {
	return Option{optInfra, func(s *Scenario) {
		s.log = log
	}}
}

// WithWallBox paints an impassable, sight-blocking building footprint and
// registers a matching occluder polygon with a baseline on its south face.
func WithWallBox(tx, ty, tw, th int) Option {
	return Option{optTerrain, func(s *Scenario) {
		for y := ty; y < ty+th; y++ {
			for x := tx; x < tx+tw; x++ {
				s.tp.PaintSearchMap(area.TilePoint{X: x, Y: y}, area.PathSidewall)
			}
		}
		x0 := tx * area.TileWidth
		y0 := ty * area.TileHeight
		x1 := (tx + tw) * area.TileWidth
		y1 := (ty + th) * area.TileHeight
		pts := []area.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
		s.walls = append(s.walls, area.NewWallPolygon(pts,
			area.Point{X: x0, Y: y1}, area.Point{X: x1, Y: y1},
			area.WallBaseline|area.WallDither))
	}}
}

// WithDoor paints a closed door patch: impassable and opaque until a
// game layer reopens it.
func WithDoor(tx, ty, tw, th int) Option {
	return Option{optTerrain, func(s *Scenario) {
		for y := ty; y < ty+th; y++ {
			for x := tx; x < tx+tw; x++ {
				s.tp.PaintSearchMap(area.TilePoint{X: x, Y: y},
					area.PathPassable|area.PathDoorImpassable|area.PathDoorOpaque)
			}
		}
	}}
}

// WithPartyMember adds an exploring party actor patrolling between two
// tile positions.
func WithPartyMember(id uint32, from, to area.TilePoint) Option {
	return Option{optActor, func(s *Scenario) {
		a := &area.Actor{
			ID:          id,
			CircleSize:  2,
			VisualRange: 14,
			Speed:       8,
			Explorer:    true,
			PC:          true,
			Flags:       area.FlagActive,
		}
		s.place(a, from, to)
	}}
}

// WithHostile adds a hostile patroller.
func WithHostile(id uint32, from, to area.TilePoint) Option {
	return Option{optActor, func(s *Scenario) {
		a := &area.Actor{
			ID:          id,
			CircleSize:  2,
			VisualRange: 10,
			Speed:       6,
			Hostile:     true,
		}
		s.place(a, from, to)
	}}
}

// WithNocturnal adds a neutral actor whose schedule is only active for
// the second half of each period ticks.
func WithNocturnal(id uint32, at area.TilePoint, period area.GameTime) Option {
	return Option{optActor, func(s *Scenario) {
		a := &area.Actor{
			ID:          id,
			CircleSize:  1,
			VisualRange: 6,
			Speed:       4,
			Schedule: func(t area.GameTime) bool {
				return t%period >= period/2
			},
		}
		s.place(a, at, at)
	}}
}

// New constructs a scenario in three ordered passes: infrastructure,
// terrain, then actors.
func New(opts ...Option) (*Scenario, error) {
	s := &Scenario{
		tiles:   area.Size{W: 96, H: 72},
		rng:     rand.New(rand.NewSource(1)), // #nosec G404 -- demo content default
		log:     logrus.StandardLogger(),
		patrols: make(map[uint32][2]area.Point),
		leg:     make(map[uint32]int),
	}
	for _, o := range opts {
		if o.kind == optInfra {
			o.fn(s)
		}
	}

	tp, err := area.NewTileProps(s.tiles, grayPalette())
	if err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	s.tp = tp
	for y := 0; y < s.tiles.H; y++ {
		for x := 0; x < s.tiles.W; x++ {
			tp.PaintSearchMap(area.TilePoint{X: x, Y: y}, area.PathPassable)
		}
	}
	for _, o := range opts {
		if o.kind == optTerrain {
			o.fn(s)
		}
	}

	s.Events = &EventLog{now: &s.now}
	m, err := area.NewMap(area.Config{
		TileProps:     tp,
		Walls:         s.walls,
		Notifier:      s.Events,
		AreaType:      s.areaType,
		DitherSprites: true,
		Log:           s.log,
	})
	if err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	s.Map = m

	for _, o := range opts {
		if o.kind == optActor {
			o.fn(s)
		}
	}
	return s, nil
}

func (s *Scenario) place(a *area.Actor, from, to area.TilePoint) {
	start := tileCenter(from)
	a.SetPos(start)
	a.DrawBounds = actorBounds(start)
	s.Map.AddActor(a)
	s.actors = append(s.actors, a)
	s.patrols[a.ID] = [2]area.Point{start, tileCenter(to)}
	s.leg[a.ID] = 1
}

// Default returns the stock demo scenario both front ends use: a walled
// courtyard with an open west gate and a closed east door, a patrolling
// party pair and two hostiles that start outside the party's sight.
func Default(seed int64) (*Scenario, error) {
	return New(
		WithSeed(seed),
		WithTiles(96, 72),
		WithAreaType(area.AreaOutdoor),
		WithWallBox(30, 20, 17, 3), // north face
		WithWallBox(30, 34, 17, 3), // south face
		WithWallBox(30, 23, 3, 4),  // west face above the gate
		WithWallBox(30, 30, 3, 4),  // west face below the gate
		WithWallBox(44, 23, 3, 4),  // east face above the door
		WithWallBox(44, 30, 3, 4),  // east face below the door
		WithDoor(44, 27, 3, 3),
		WithPartyMember(1, area.TilePoint{X: 10, Y: 28}, area.TilePoint{X: 80, Y: 28}),
		WithPartyMember(2, area.TilePoint{X: 10, Y: 40}, area.TilePoint{X: 80, Y: 40}),
		WithHostile(20, area.TilePoint{X: 70, Y: 12}, area.TilePoint{X: 70, Y: 60}),
		WithHostile(21, area.TilePoint{X: 85, Y: 50}, area.TilePoint{X: 60, Y: 50}),
		WithNocturnal(30, area.TilePoint{X: 50, Y: 64}, 600),
	)
}

// RunTicks advances the simulation n ticks, recording per-tick stats.
func (s *Scenario) RunTicks(n int) {
	for i := 0; i < n; i++ {
		s.Tick()
	}
}

// Tick advances the simulation one tick.
func (s *Scenario) Tick() {
	s.now++
	s.Map.Update(s.now, s.step)
	s.History = append(s.History, s.Map.Stats())
}

// Now returns the current simulation tick.
func (s *Scenario) Now() area.GameTime {
	return s.now
}

// step moves one actor along its patrol leg. Movement is a straight
// line toward the current endpoint, turned around on arrival and gated
// by the walkability query so actors never enter walls or each other.
func (s *Scenario) step(m *area.Map, a *area.Actor, _ area.GameTime) {
	route, ok := s.patrols[a.ID]
	if !ok || a.Speed <= 0 {
		return
	}
	dest := route[s.leg[a.ID]]

	dx := float64(dest.X - a.Pos.X)
	dy := float64(dest.Y - a.Pos.Y)
	dist := math.Hypot(dx, dy)
	if dist < float64(a.Speed) {
		s.leg[a.ID] = 1 - s.leg[a.ID]
		return
	}

	next := area.Point{
		X: a.Pos.X + int(math.Round(dx/dist*float64(a.Speed))),
		Y: a.Pos.Y + int(math.Round(dy/dist*float64(a.Speed))),
	}

	// Lift the actor's own footprint while testing the step, the same way
	// a path search would, so it never blocks itself.
	if a.BlocksSearchMap() {
		m.ClearSearchMapFor(a)
	}
	if !m.IsWalkableTo(a.Pos, next, true, a) {
		// Blocked this tick; jitter sideways so two patrollers meeting
		// head-on eventually slide past each other.
		next = area.Point{
			X: a.Pos.X + s.rng.Intn(2*a.Speed+1) - a.Speed,
			Y: a.Pos.Y + s.rng.Intn(2*a.Speed+1) - a.Speed,
		}
		if !m.IsWalkableTo(a.Pos, next, true, a) {
			if a.BlocksSearchMap() {
				m.BlockSearchMapFor(a)
			}
			return
		}
	}
	// The footprint is already lifted, so finish the move with a plain
	// position set and repaint instead of MoveActor's clear-then-block.
	a.SetPos(next)
	if a.BlocksSearchMap() {
		m.BlockSearchMapFor(a)
	}
	a.DrawBounds = actorBounds(next)
}

func tileCenter(t area.TilePoint) area.Point {
	return area.Point{
		X: t.X*area.TileWidth + area.TileWidth/2,
		Y: t.Y*area.TileHeight + area.TileHeight/2,
	}
}

// actorBounds approximates a sprite box anchored at the feet position.
func actorBounds(p area.Point) area.Region {
	const w, h = 32, 48
	return area.Region{X: p.X - w/2, Y: p.Y - h, W: w, H: h}
}

func grayPalette() color.Palette {
	pal := make(color.Palette, 256)
	for i := range pal {
		pal[i] = color.Gray{Y: uint8(i)}
	}
	return pal
}
