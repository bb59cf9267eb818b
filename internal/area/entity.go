package area

// GameTime is the simulation tick counter. It is threaded explicitly into
// every tick-scoped operation; the core keeps no ambient clock.
type GameTime uint32

// Stance is an actor's current animation stance. Only the stances the
// scheduler cares about are modelled; everything else is StanceNormal.
type Stance uint8

const (
	StanceNormal Stance = iota
	// StanceTwitch is the idle death-twitch animation.
	StanceTwitch
	// StanceDie is the dying animation.
	StanceDie
)

// InternalFlags are scheduler-owned actor state bits.
type InternalFlags uint16

const (
	// FlagActive marks an actor the scheduler has woken up.
	FlagActive InternalFlags = 1 << iota
	// FlagIdle marks an active actor with nothing to do.
	FlagIdle
	// FlagTriggerAP latches the autopause request for this encounter.
	FlagTriggerAP
	// FlagReallyDied marks an actor whose death has been processed.
	FlagReallyDied
)

// Actor is a schedulable simulated object: anything that occupies ground,
// may see, and may need a script step each tick. Fields the map core does
// not own (AI, inventory, dialogue) live with external collaborators.
type Actor struct {
	ID uint32

	// Pos is the world-space anchor (feet position). TilePos caches the
	// containing search-map cell and must be updated through SetPos.
	Pos     Point
	TilePos TilePoint

	// CircleSize is the footprint circle class (1..maxCircleSize).
	CircleSize int

	Stance Stance
	Flags  InternalFlags

	// VisualRange is the sight radius in tile cells.
	VisualRange int
	// Speed is the movement rate used to scale line-query steps.
	// Zero means immobile.
	Speed int

	// Explorer actors contribute to the fog sweep (typically the party).
	Explorer bool
	// Blind actors still reveal their own cell but nothing else.
	Blind bool
	// CantSee actors are skipped by the sweep entirely.
	CantSee bool

	// Hostile marks enemies for the spotted/autopause path.
	Hostile bool
	// AvatarRemoval hides the actor from spotting and autopause.
	AvatarRemoval bool
	// Selected/Hovered feed the stencil dithering choice.
	Selected bool
	Hovered  bool

	// PC controls which occupant class the footprint paints.
	PC bool
	// NoBlock exempts the actor from search-map footprint painting
	// (e.g. flying or incorporeal creatures).
	NoBlock bool

	// Schedule gates script execution by time of day. Nil means always
	// scheduled.
	Schedule func(GameTime) bool

	// DrawBounds is the current sprite bounding region, used for
	// occlusion stencil selection.
	DrawBounds Region
}

// SetPos moves the actor's anchor and recomputes the cached tile cell.
// It does not touch the search map; use Map.MoveActor for that.
func (a *Actor) SetPos(p Point) {
	a.Pos = p
	a.TilePos = TilePointOf(p)
}

// BlocksSearchMap reports whether the actor's footprint occupies ground.
func (a *Actor) BlocksSearchMap() bool {
	return !a.NoBlock && a.CircleSize > 0
}

// scheduled reports whether the actor's schedule is active at t.
func (a *Actor) scheduled(t GameTime) bool {
	return a.Schedule == nil || a.Schedule(t)
}

// forceScriptCheck lets offscreen actors still get a script step every
// third tick, staggered by identity so the load spreads across ticks.
func (a *Actor) forceScriptCheck(t GameTime) bool {
	return (uint32(t)+a.ID)%3 == 0
}

// Activate wakes the actor up for script execution.
func (a *Actor) Activate() {
	a.Flags |= FlagActive
}
