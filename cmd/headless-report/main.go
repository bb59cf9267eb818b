// Command headless-report runs the demo scenario without a display for a
// fixed number of ticks and prints visibility, exploration and scheduler
// statistics per run plus an aggregate across runs.
package main

import (
	"flag"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cairnwood/areacore/internal/scenario"
)

type runStats struct {
	runIndex int
	seed     int64

	firstSpottedTick   int
	firstAutopauseTick int
	firstHostilesTick  int

	spottedEvents   int
	autopauseEvents int

	exploredCells int
	visibleCells  int
	runScriptsAvg float64
	displayAvg    float64
	stencilsPeak  int
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 1200, "ticks per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}

	fmt.Printf("=== Headless Area Report ===\n")
	fmt.Printf("runs=%d ticks=%d seed_base=%d seed_step=%d\n\n", runs, ticks, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runOnce(i+1, seed, ticks)
		all = append(all, stats)
		printRun(stats)
	}
	printAggregate(all)
}

func runOnce(runIndex int, seed int64, ticks int) runStats {
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)

	scn, err := scenario.Default(seed)
	if err != nil {
		log.WithError(err).Fatal("scenario construction failed")
	}
	scn.RunTicks(ticks)

	rs := runStats{
		runIndex:           runIndex,
		seed:               seed,
		firstSpottedTick:   scn.Events.FirstTick("spotted"),
		firstAutopauseTick: scn.Events.FirstTick("autopause"),
		firstHostilesTick:  -1,
		spottedEvents:      scn.Events.Count("spotted"),
		autopauseEvents:    scn.Events.Count("autopause"),
	}

	runSum := 0
	dispSum := 0
	for i, s := range scn.History {
		runSum += s.RunScripts
		dispSum += s.Display
		if s.StencilsCached > rs.stencilsPeak {
			rs.stencilsPeak = s.StencilsCached
		}
		if rs.firstHostilesTick < 0 && s.Tick > 0 && hostilesAt(scn, i) {
			rs.firstHostilesTick = int(s.Tick)
		}
	}
	if len(scn.History) > 0 {
		last := scn.History[len(scn.History)-1]
		rs.exploredCells = last.ExploredFogCells
		rs.visibleCells = last.VisibleFogCells
		rs.runScriptsAvg = float64(runSum) / float64(len(scn.History))
		rs.displayAvg = float64(dispSum) / float64(len(scn.History))
	}
	return rs
}

// hostilesAt reports whether any autopause or spotting of a hostile had
// happened by history index i; used for the first-contact phase marker.
func hostilesAt(scn *scenario.Scenario, i int) bool {
	tick := scn.History[i].Tick
	for _, e := range scn.Events.Events {
		if e.Tick <= tick && e.Kind == "autopause" {
			return true
		}
	}
	return false
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("phase_markers: first_spotted=%d first_autopause=%d first_contact=%d\n",
		rs.firstSpottedTick, rs.firstAutopauseTick, rs.firstHostilesTick)
	fmt.Printf("event_totals: spotted=%d autopause=%d\n", rs.spottedEvents, rs.autopauseEvents)
	fmt.Printf("fog: explored_cells=%d visible_cells=%d\n", rs.exploredCells, rs.visibleCells)
	fmt.Printf("queues_avg: run_scripts=%.1f display=%.1f  stencils_peak=%d\n\n",
		rs.runScriptsAvg, rs.displayAvg, rs.stencilsPeak)
}

func printAggregate(all []runStats) {
	totalSpotted := 0
	totalAutopause := 0
	exploredSum := 0
	spottedTicks := make([]int, 0, len(all))
	contactTicks := make([]int, 0, len(all))

	for _, rs := range all {
		totalSpotted += rs.spottedEvents
		totalAutopause += rs.autopauseEvents
		exploredSum += rs.exploredCells
		if rs.firstSpottedTick >= 0 {
			spottedTicks = append(spottedTicks, rs.firstSpottedTick)
		}
		if rs.firstHostilesTick >= 0 {
			contactTicks = append(contactTicks, rs.firstHostilesTick)
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d\n", len(all))
	fmt.Printf("avg_events_per_run: spotted=%.1f autopause=%.1f\n",
		avg(totalSpotted, len(all)), avg(totalAutopause, len(all)))
	fmt.Printf("avg_explored_cells=%.0f\n", avg(exploredSum, len(all)))
	fmt.Printf("phase_marker_avg_ticks: first_spotted=%s first_contact=%s\n",
		avgTickString(spottedTicks), avgTickString(contactTicks))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}
