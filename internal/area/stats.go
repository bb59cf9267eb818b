package area

import "fmt"

// TickStats are per-tick simulation counters, refreshed by Update. They
// feed the headless report and the debug HUD; nothing in the core reads
// them back.
type TickStats struct {
	Tick             GameTime
	RunScripts       int
	Display          int
	Ignored          int
	VisibleFogCells  int
	ExploredFogCells int
	StencilsCached   int
}

// Stats returns the counters from the most recent Update.
func (m *Map) Stats() TickStats {
	s := m.stats
	s.StencilsCached = len(m.objectStencils)
	return s
}

// String formats the counters as one report line.
func (s TickStats) String() string {
	return fmt.Sprintf("[T=%05d] run=%-3d disp=%-3d ign=%-3d vis=%-5d expl=%-5d stencils=%d",
		s.Tick, s.RunScripts, s.Display, s.Ignored,
		s.VisibleFogCells, s.ExploredFogCells, s.StencilsCached)
}
