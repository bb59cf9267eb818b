package scenario

import (
	"testing"

	"github.com/cairnwood/areacore/internal/area"
)

func TestDefault_Runs(t *testing.T) {
	s, err := Default(42)
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	s.RunTicks(50)

	if len(s.History) != 50 {
		t.Fatalf("history holds %d entries, want 50", len(s.History))
	}
	last := s.History[len(s.History)-1]
	if last.VisibleFogCells == 0 {
		t.Fatal("party explorers should reveal fog cells every tick")
	}
	if last.ExploredFogCells < last.VisibleFogCells {
		t.Fatal("explored count can never trail the visible count")
	}
}

func TestDefault_ExplorationGrows(t *testing.T) {
	s, err := Default(42)
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	s.RunTicks(10)
	early := s.History[len(s.History)-1].ExploredFogCells
	s.RunTicks(200)
	late := s.History[len(s.History)-1].ExploredFogCells
	if late <= early {
		t.Fatalf("patrolling should keep revealing ground: %d then %d", early, late)
	}
}

func TestDeterminism_SameSeedSameRun(t *testing.T) {
	a, err := Default(7)
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	b, err := Default(7)
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	a.RunTicks(120)
	b.RunTicks(120)

	for i := range a.History {
		if a.History[i] != b.History[i] {
			t.Fatalf("tick %d diverged: %+v vs %+v", i+1, a.History[i], b.History[i])
		}
	}
	if len(a.Events.Events) != len(b.Events.Events) {
		t.Fatalf("event logs diverged: %d vs %d events",
			len(a.Events.Events), len(b.Events.Events))
	}
}

func TestEventLog_HostileInSightTriggersAutopause(t *testing.T) {
	s, err := New(
		WithTiles(32, 32),
		WithPartyMember(1, area.TilePoint{X: 10, Y: 16}, area.TilePoint{X: 10, Y: 16}),
		WithHostile(3, area.TilePoint{X: 14, Y: 16}, area.TilePoint{X: 14, Y: 16}),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// Tick 1 sweeps the fog; tick 2 classifies the now-visible hostile.
	s.RunTicks(3)

	if s.Events.Count("spotted") == 0 {
		t.Fatal("adjacent hostile was never spotted")
	}
	if s.Events.Count("autopause") != 1 {
		t.Fatalf("expected exactly one autopause, got %d", s.Events.Count("autopause"))
	}
	if first := s.Events.FirstTick("spotted"); first < 1 || first > 3 {
		t.Fatalf("spotting tick = %d, want within the first three ticks", first)
	}
}

func TestScenario_FootprintFollowsPatrol(t *testing.T) {
	s, err := New(
		WithTiles(64, 32),
		WithPartyMember(1, area.TilePoint{X: 5, Y: 16}, area.TilePoint{X: 58, Y: 16}),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tp := s.Map.TileProps()
	a := s.Map.Actors()[0]

	for tick := 0; tick < 40; tick++ {
		s.Tick()
		if tp.QuerySearchMap(a.TilePos)&area.PathPC == 0 {
			t.Fatalf("tick %d: no footprint under the actor at %v", s.Now(), a.TilePos)
		}
		// Every occupant bit on the map must belong to the actor's current
		// disc; anything farther out is a stale footprint.
		for y := 0; y < 32; y++ {
			for x := 0; x < 64; x++ {
				p := area.TilePoint{X: x, Y: y}
				if tp.QuerySearchMap(p)&area.PathPC == 0 {
					continue
				}
				dx := x - a.TilePos.X
				dy := y - a.TilePos.Y
				if dx < -2 || dx > 2 || dy < -2 || dy > 2 {
					t.Fatalf("tick %d: stale footprint at %v, actor at %v", s.Now(), p, a.TilePos)
				}
			}
		}
	}
}

func TestScenario_ActorsStayOutOfWalls(t *testing.T) {
	s, err := Default(99)
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	s.RunTicks(300)

	for _, a := range s.Map.Actors() {
		flags := s.Map.TileProps().QuerySearchMap(a.TilePos)
		if flags&area.PathSidewall != 0 {
			t.Fatalf("actor %d ended up inside a wall at %v", a.ID, a.TilePos)
		}
	}
}
