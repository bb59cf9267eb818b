package view

import (
	"strings"
	"testing"

	"github.com/cairnwood/areacore/internal/area"
	"github.com/cairnwood/areacore/internal/scenario"
)

func TestBuildStages_CollapsesSteadyState(t *testing.T) {
	hist := []area.TickStats{
		{Tick: 1, RunScripts: 2},
		{Tick: 2, RunScripts: 2},
		{Tick: 3, RunScripts: 2},
		{Tick: 4, RunScripts: 3},
		{Tick: 5, RunScripts: 3},
	}
	stages := buildStages(hist)
	if len(stages) != 2 {
		t.Fatalf("got %d stages, want 2", len(stages))
	}
	if stages[0].count != 3 || stages[0].first.Tick != 1 || stages[0].last.Tick != 3 {
		t.Fatalf("first stage = %+v", stages[0])
	}
	if stages[1].count != 2 || stages[1].last.Tick != 5 {
		t.Fatalf("second stage = %+v", stages[1])
	}
}

func TestBuildReport_IncludesEventsAndSelection(t *testing.T) {
	s, err := scenario.New(
		scenario.WithTiles(32, 32),
		scenario.WithPartyMember(1, area.TilePoint{X: 10, Y: 16}, area.TilePoint{X: 10, Y: 16}),
		scenario.WithHostile(3, area.TilePoint{X: 14, Y: 16}, area.TilePoint{X: 14, Y: 16}),
	)
	if err != nil {
		t.Fatalf("scenario: %v", err)
	}
	s.RunTicks(5)

	report := buildReport(s, s.Map.Actors()[0], 100)
	for _, want := range []string{"areacore debug report", "selected=1", "stages:", "autopause"} {
		if !strings.Contains(report, want) {
			t.Fatalf("report missing %q:\n%s", want, report)
		}
	}
}
