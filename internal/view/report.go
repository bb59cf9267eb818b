package view

import (
	"fmt"
	"strings"

	"github.com/cairnwood/areacore/internal/area"
	"github.com/cairnwood/areacore/internal/scenario"
)

// buildReport formats the recent simulation history as a pasteable text
// report: a summary, the scheduler event timeline and the stats history
// compressed into stages of equal queue composition.
func buildReport(scn *scenario.Scenario, selected *area.Actor, lastTicks int) string {
	if lastTicks <= 0 {
		lastTicks = 240
	}
	hist := scn.History
	if len(hist) > lastTicks {
		hist = hist[len(hist)-lastTicks:]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- areacore debug report ---\n")
	fmt.Fprintf(&b, "now=%d history=%d actors=%d hostiles_visible=%t\n",
		scn.Now(), len(hist), len(scn.Map.Actors()), scn.Map.HostilesVisible())
	if selected != nil {
		fmt.Fprintf(&b, "selected=%d pos=%s tile=(%d,%d) visible=%t explored=%t\n",
			selected.ID, selected.Pos, selected.TilePos.X, selected.TilePos.Y,
			scn.Map.IsVisible(selected.Pos), scn.Map.IsExplored(selected.Pos))
	}
	b.WriteByte('\n')

	if len(scn.Events.Events) > 0 {
		b.WriteString("events:\n")
		events := scn.Events.Events
		if len(events) > 24 {
			fmt.Fprintf(&b, "  ... (%d earlier events)\n", len(events)-24)
			events = events[len(events)-24:]
		}
		for _, e := range events {
			fmt.Fprintf(&b, "  T=%d %s actor=%d\n", e.Tick, e.Kind, e.ActorID)
		}
		b.WriteByte('\n')
	}

	b.WriteString("stages:\n")
	for i, st := range buildStages(hist) {
		fmt.Fprintf(&b, "  %02d) T=%d..%d (%dt) run=%d disp=%d ign=%d vis:%d->%d expl:%d->%d\n",
			i+1, st.first.Tick, st.last.Tick, st.count,
			st.first.RunScripts, st.first.Display, st.first.Ignored,
			st.first.VisibleFogCells, st.last.VisibleFogCells,
			st.first.ExploredFogCells, st.last.ExploredFogCells)
	}
	return b.String()
}

type reportStage struct {
	first area.TickStats
	last  area.TickStats
	count int
}

// buildStages merges consecutive ticks with the same queue composition,
// so a steady state collapses to one line.
func buildStages(hist []area.TickStats) []reportStage {
	if len(hist) == 0 {
		return nil
	}
	keyOf := func(s area.TickStats) string {
		return fmt.Sprintf("r=%d|d=%d|i=%d", s.RunScripts, s.Display, s.Ignored)
	}

	stages := make([]reportStage, 0, 16)
	start := 0
	curKey := keyOf(hist[0])
	for i := 1; i < len(hist); i++ {
		if keyOf(hist[i]) == curKey {
			continue
		}
		stages = append(stages, reportStage{first: hist[start], last: hist[i-1], count: i - start})
		start = i
		curKey = keyOf(hist[i])
	}
	stages = append(stages, reportStage{first: hist[start], last: hist[len(hist)-1], count: len(hist) - start})
	return stages
}
