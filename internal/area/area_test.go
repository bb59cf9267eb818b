package area

import (
	"image/color"
	"strings"
	"testing"
)

func TestNewMap_RequiresTileProps(t *testing.T) {
	if _, err := NewMap(Config{}); err == nil {
		t.Fatal("NewMap without a raster should fail")
	}
}

func TestResolveTerrainSound(t *testing.T) {
	tp, err := NewTileProps(Size{W: 8, H: 8}, color.Palette{color.Black})
	if err != nil {
		t.Fatalf("NewTileProps: %v", err)
	}
	tp.Set(TilePoint{2, 2}, PropMaterial, 3)

	var grass [terrainMaterialCount]string
	grass[3] = "WAL_03"
	grass[0] = "WAL_00"
	m, err := NewMap(Config{
		TileProps: tp,
		Sounds:    NewTerrainSounds(map[string][terrainMaterialCount]string{"grass": grass}),
	})
	if err != nil {
		t.Fatalf("NewMap: %v", err)
	}

	if got := m.ResolveTerrainSound("grass", worldPoint(TilePoint{2, 2})); got != "WAL_03" {
		t.Fatalf("sound at painted cell = %q, want WAL_03", got)
	}
	if got := m.ResolveTerrainSound("grass", worldPoint(TilePoint{0, 0})); got != "WAL_00" {
		t.Fatalf("sound at default cell = %q, want WAL_00", got)
	}
	if got := m.ResolveTerrainSound("lava", worldPoint(TilePoint{2, 2})); got != "" {
		t.Fatalf("unknown group resolved to %q, want empty", got)
	}
}

func TestResolveTerrainSound_NilService(t *testing.T) {
	m := newTestMap(t, 8, 8)
	if got := m.ResolveTerrainSound("grass", Point{}); got != "" {
		t.Fatalf("nil sound service resolved to %q", got)
	}
}

func TestStats_ReportLine(t *testing.T) {
	s := TickStats{Tick: 42, RunScripts: 3, Display: 1, VisibleFogCells: 120}
	line := s.String()
	for _, want := range []string{"T=00042", "run=3", "disp=1", "vis=120"} {
		if !strings.Contains(line, want) {
			t.Fatalf("report line %q missing %q", line, want)
		}
	}
}
