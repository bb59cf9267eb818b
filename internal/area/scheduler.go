package area

import "sort"

// Priority is an actor's per-tick simulation/draw class. Membership is
// recomputed every tick and never persisted.
type Priority int

const (
	// PriorityRunScripts: full script step and drawn.
	PriorityRunScripts Priority = iota
	// PriorityDisplay: drawn only (death twitch, idle animations).
	PriorityDisplay
	// PriorityIgnore: skipped entirely this tick.
	PriorityIgnore
)

// Notifier receives scheduler side effects. The engine shell wires these
// to the message log and the pause system; tests use a recorder.
type Notifier interface {
	// ActorSpotted fires when an inactive actor becomes visible and
	// activates.
	ActorSpotted(a *Actor)
	// AutopauseRequested fires at most once per encounter when a
	// hostile actor is first sighted.
	AutopauseRequested(a *Actor)
}

// setPriority classifies one actor for this tick. hostilesNew accumulates
// whether any visible hostile remains, which re-arms the autopause latch
// once the encounter ends.
func (m *Map) setPriority(a *Actor, hostilesNew *bool, t GameTime) Priority {
	scheduled := a.scheduled(t)

	var priority Priority
	if a.Flags&FlagActive != 0 {
		if a.Stance == StanceTwitch && a.Flags&FlagIdle != 0 {
			priority = PriorityDisplay
		} else if scheduled {
			priority = PriorityRunScripts
		} else {
			priority = PriorityIgnore // out of schedule, scripts stay off
		}

		if m.IsVisible(a.Pos) && !a.AvatarRemoval {
			// Run the handler for every visible hostile, not just the
			// first: each one must latch its own trigger flag.
			hostile := m.handleAutopauseForVisible(a, !m.hostilesVisible)
			*hostilesNew = *hostilesNew || hostile
		}
	} else if a.Stance == StanceTwitch || a.Stance == StanceDie {
		// dead actors stay visible on the map but run no scripts
		priority = PriorityDisplay
	} else {
		visible := m.IsVisible(a.Pos)
		// offscreen creatures still get a script step every few ticks
		if scheduled && (visible || a.forceScriptCheck(t)) {
			priority = PriorityRunScripts
			a.Activate()
			if visible && !a.AvatarRemoval {
				if m.notifier != nil {
					m.notifier.ActorSpotted(a)
				}
				hostile := m.handleAutopauseForVisible(a, !m.hostilesVisible)
				*hostilesNew = *hostilesNew || hostile
			}
		} else {
			priority = PriorityIgnore
		}
	}
	return priority
}

// handleAutopauseForVisible requests an autopause for a newly visible
// hostile. doPause is false when hostiles were already on screen this
// encounter. Returns true when the actor is a pause-worthy hostile.
func (m *Map) handleAutopauseForVisible(a *Actor, doPause bool) bool {
	if !a.Hostile {
		return false
	}
	if doPause && a.Flags&FlagTriggerAP == 0 && m.notifier != nil {
		m.notifier.AutopauseRequested(a)
	}
	a.Flags |= FlagTriggerAP
	return true
}

// GenerateQueues classifies every actor into the priority queues for this
// tick. Ignored actors appear in no queue.
func (m *Map) GenerateQueues(t GameTime) {
	for i := range m.queue {
		m.queue[i] = m.queue[i][:0]
	}

	hostilesNew := false
	for i := len(m.actors) - 1; i >= 0; i-- {
		a := m.actors[i]
		priority := m.setPriority(a, &hostilesNew, t)
		if priority >= PriorityIgnore {
			continue
		}
		m.queue[priority] = append(m.queue[priority], a)
	}
	m.hostilesVisible = hostilesNew

	m.stats.RunScripts = len(m.queue[PriorityRunScripts])
	m.stats.Display = len(m.queue[PriorityDisplay])
	m.stats.Ignored = len(m.actors) - m.stats.RunScripts - m.stats.Display
}

// SortQueues orders every priority queue by descending y so the renderer
// can draw back-to-front (painter's algorithm: lower on screen draws on
// top).
func (m *Map) SortQueues() {
	for i := range m.queue {
		q := m.queue[i]
		sort.SliceStable(q, func(a, b int) bool {
			return q[b].Pos.Y < q[a].Pos.Y
		})
	}
}

// Queue returns this tick's queue for one priority class, in draw order.
func (m *Map) Queue(p Priority) []*Actor {
	if p < PriorityRunScripts || p >= PriorityIgnore {
		return nil
	}
	return m.queue[p]
}

// HostilesVisible reports whether any visible hostile was classified
// this tick (the autopause encounter latch).
func (m *Map) HostilesVisible() bool {
	return m.hostilesVisible
}
