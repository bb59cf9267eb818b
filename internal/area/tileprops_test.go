package area

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/bmp"
)

func testProps(t *testing.T, w, h int) *TileProps {
	t.Helper()
	tp, err := NewTileProps(Size{W: w, H: h}, color.Palette{color.Black, color.White})
	if err != nil {
		t.Fatalf("NewTileProps: %v", err)
	}
	return tp
}

func TestTileProps_RejectsBadConstruction(t *testing.T) {
	if _, err := NewTileProps(Size{W: 0, H: 10}, color.Palette{color.Black}); err == nil {
		t.Fatal("zero width must fail at construction")
	}
	if _, err := NewTileProps(Size{W: 10, H: 10}, nil); err == nil {
		t.Fatal("empty palette must fail at construction")
	}
}

func TestTileProps_OutOfBoundsDefaults(t *testing.T) {
	tp := testProps(t, 8, 8)
	for _, p := range []TilePoint{{-1, 0}, {0, -1}, {8, 0}, {0, 8}, {100, 100}} {
		if got := tp.QuerySearchMap(p); got != PathImpassable {
			t.Fatalf("OOB search map at %v = %v, want impassable", p, got)
		}
		if got := tp.QueryMaterial(p); got != 0 {
			t.Fatalf("OOB material at %v = %d, want 0", p, got)
		}
		if got := tp.QueryElevation(p); got != 0 {
			t.Fatalf("OOB elevation at %v = %d, want 0", p, got)
		}
	}
}

func TestTileProps_OutOfBoundsPaintIsNoop(t *testing.T) {
	tp := testProps(t, 4, 4)
	before := make([]uint32, len(tp.props))
	copy(before, tp.props)

	tp.PaintSearchMap(TilePoint{-1, 2}, PathPassable)
	tp.Set(TilePoint{4, 0}, PropMaterial, 7)
	tp.Set(TilePoint{0, 99}, PropElevation, 255)

	for i := range tp.props {
		if tp.props[i] != before[i] {
			t.Fatalf("OOB paint disturbed cell %d", i)
		}
	}
}

func TestTileProps_FieldIsolation(t *testing.T) {
	tp := testProps(t, 4, 4)
	p := TilePoint{2, 1}
	tp.Set(p, PropSearchMap, uint8(PathPassable|PathSidewall))
	tp.Set(p, PropMaterial, 5)
	tp.Set(p, PropElevation, 200)
	tp.Set(p, PropLighting, 1)

	// Rewriting one field must not disturb the other three.
	tp.Set(p, PropMaterial, 9)
	if tp.QuerySearchMap(p) != PathPassable|PathSidewall {
		t.Fatal("material write disturbed search map field")
	}
	if tp.Query(p, PropElevation) != 200 {
		t.Fatal("material write disturbed elevation field")
	}
	if tp.Query(p, PropLighting) != 1 {
		t.Fatal("material write disturbed lighting field")
	}
	if tp.QueryMaterial(p) != 9 {
		t.Fatal("material write did not take")
	}
}

func TestTileProps_ElevationDecode(t *testing.T) {
	tp := testProps(t, 2, 2)
	cases := []struct {
		raw  uint8
		want int
	}{
		{0, -7},
		{255, 7},
		{128, 0},
	}
	for _, c := range cases {
		tp.Set(TilePoint{0, 0}, PropElevation, c.raw)
		if got := tp.QueryElevation(TilePoint{0, 0}); got != c.want {
			t.Fatalf("elevation decode of %d = %d, want %d", c.raw, got, c.want)
		}
	}
}

func TestTileProps_LightingDecode(t *testing.T) {
	pal := color.Palette{
		color.RGBA{R: 1, G: 2, B: 3, A: 255},
		color.RGBA{R: 200, G: 100, B: 50, A: 255},
	}
	tp, err := NewTileProps(Size{W: 2, H: 2}, pal)
	if err != nil {
		t.Fatalf("NewTileProps: %v", err)
	}
	tp.Set(TilePoint{1, 1}, PropLighting, 1)
	if got := tp.QueryLighting(TilePoint{1, 1}); got != pal[1] {
		t.Fatalf("lighting decode = %v, want %v", got, pal[1])
	}
	// An index past the palette falls back to entry 0 instead of panicking.
	tp.Set(TilePoint{0, 0}, PropLighting, 250)
	if got := tp.QueryLighting(TilePoint{0, 0}); got != pal[0] {
		t.Fatalf("out-of-palette lighting = %v, want %v", got, pal[0])
	}
}

func TestMergeTileProps_SizeMismatch(t *testing.T) {
	a := image.NewGray(image.Rect(0, 0, 4, 4))
	b := image.NewGray(image.Rect(0, 0, 5, 4))
	if _, err := MergeTileProps(a, b, a); err == nil {
		t.Fatal("mismatched raster sizes must fail at construction")
	}
}

func TestLoadTileProps_DecodesBMP(t *testing.T) {
	img := image.NewPaletted(image.Rect(0, 0, 3, 3), color.Palette{
		color.RGBA{A: 255},
		color.RGBA{R: 255, A: 255},
	})
	img.SetColorIndex(1, 1, 1)

	encode := func() *bytes.Buffer {
		var buf bytes.Buffer
		if err := bmp.Encode(&buf, img); err != nil {
			t.Fatalf("bmp encode: %v", err)
		}
		return &buf
	}

	tp, err := LoadTileProps(encode(), encode(), encode())
	if err != nil {
		t.Fatalf("LoadTileProps: %v", err)
	}
	if tp.GetSize() != (Size{W: 3, H: 3}) {
		t.Fatalf("decoded size = %v", tp.GetSize())
	}
	if tp.Query(TilePoint{1, 1}, PropSearchMap) == 0 {
		t.Fatal("search map index not carried through decode")
	}
}

func TestLoadTileProps_BadData(t *testing.T) {
	bad := bytes.NewBufferString("not a bmp")
	if _, err := LoadTileProps(bad, bytes.NewBuffer(nil), bytes.NewBuffer(nil)); err == nil {
		t.Fatal("garbage raster must fail at construction")
	}
}

func TestStampFootprint_SkipsImpassable(t *testing.T) {
	tp := testProps(t, 16, 16)
	// Passable field with one hard-impassable hole.
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			tp.PaintSearchMap(TilePoint{x, y}, PathPassable)
		}
	}
	hole := TilePoint{8, 8}
	tp.PaintSearchMap(hole, PathImpassable)

	tp.StampFootprint(TilePoint{8, 8}, 3, PathNPC)
	if tp.QuerySearchMap(hole) != PathImpassable {
		t.Fatal("footprint stamp must not touch fully impassable cells")
	}
	if tp.QuerySearchMap(TilePoint{9, 8})&PathNPC == 0 {
		t.Fatal("footprint stamp missed a passable neighbour cell")
	}
	if tp.QuerySearchMap(TilePoint{9, 8})&PathPassable == 0 {
		t.Fatal("footprint stamp erased the cell's non-actor flags")
	}
}

func TestStampFootprint_RadiusOffset(t *testing.T) {
	tp := testProps(t, 32, 32)
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			tp.PaintSearchMap(TilePoint{x, y}, PathPassable)
		}
	}
	// Size 1 paints radius 0: just the center.
	tp.StampFootprint(TilePoint{16, 16}, 1, PathPC)
	if tp.QuerySearchMap(TilePoint{16, 16})&PathPC == 0 {
		t.Fatal("size-1 stamp missed the center")
	}
	if tp.QuerySearchMap(TilePoint{17, 16})&PathPC != 0 {
		t.Fatal("size-1 stamp leaked beyond the center")
	}
}
