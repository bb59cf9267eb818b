package area

import "testing"

// boxWall builds a rectangular wall polygon with a baseline along its
// bottom edge.
func boxWall(x, y, w, h int, flags WallFlags) *WallPolygon {
	pts := []Point{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
	return NewWallPolygon(pts, Point{x, y + h}, Point{x + w, y + h}, flags|WallBaseline)
}

func newWallMap(t *testing.T, walls ...*WallPolygon) *Map {
	t.Helper()
	m := newTestMap(t, 128, 128) // 2048x1536 px: several wall group buckets
	m.buildWallGroups(walls)
	return m
}

func TestWallPolygon_BBoxFromOutline(t *testing.T) {
	wp := NewWallPolygon([]Point{{10, 20}, {50, 5}, {30, 40}}, Point{}, Point{}, 0)
	want := Region{X: 10, Y: 5, W: 40, H: 35}
	if wp.BBox != want {
		t.Fatalf("bbox = %+v, want %+v", wp.BBox, want)
	}
}

func TestWallPolygon_PointBehind(t *testing.T) {
	wp := boxWall(100, 100, 200, 50, 0)
	// Baseline runs along y=150. A point below it (greater y) is in
	// front of the wall; a point above it is behind.
	if !wp.PointBehind(Point{150, 200}) {
		t.Fatal("point below the baseline should be behind-the-wall (wall drawn in front)")
	}
	if wp.PointBehind(Point{150, 100}) {
		t.Fatal("point above the baseline should be in front of the wall")
	}
}

func TestWallPolygon_NoBaselineAlwaysOccludes(t *testing.T) {
	wp := NewWallPolygon([]Point{{0, 0}, {10, 0}, {10, 10}}, Point{}, Point{}, 0)
	if !wp.PointBehind(Point{500, 500}) {
		t.Fatal("baseline-less wall should occlude unconditionally")
	}
}

func TestWallsIntersectingRegion_PartitionExhaustiveDisjoint(t *testing.T) {
	front := boxWall(100, 100, 100, 40, 0)  // baseline y=140
	behind := boxWall(300, 100, 100, 40, 0) // same row
	outside := boxWall(1500, 1200, 50, 50, 0)
	m := newWallMap(t, front, behind, outside)

	r := Region{X: 0, Y: 0, W: 600, H: 600}
	ref := Point{150, 400} // below first baseline; left of second box
	set := m.WallsIntersectingRegion(r, false, &ref)

	total := len(set.Front) + len(set.Behind)
	if total != 2 {
		t.Fatalf("expected 2 partitioned walls, got %d front=%d behind=%d",
			total, len(set.Front), len(set.Behind))
	}
	for _, wp := range set.Front {
		for _, other := range set.Behind {
			if wp == other {
				t.Fatal("a wall appeared in both partitions")
			}
		}
	}
}

func TestWallsIntersectingRegion_DisabledFiltering(t *testing.T) {
	wall := boxWall(100, 100, 100, 40, WallDisabled)
	m := newWallMap(t, wall)

	r := Region{X: 0, Y: 0, W: 600, H: 600}
	set := m.WallsIntersectingRegion(r, false, nil)
	if len(set.Front)+len(set.Behind) != 0 {
		t.Fatal("disabled walls must be excluded by default")
	}
	set = m.WallsIntersectingRegion(r, true, nil)
	if len(set.Front) != 1 {
		t.Fatal("includeDisabled should return the disabled wall")
	}
}

func TestWallsIntersectingRegion_NegativeOriginClamped(t *testing.T) {
	wall := boxWall(10, 10, 50, 50, 0)
	m := newWallMap(t, wall)
	set := m.WallsIntersectingRegion(Region{X: -100, Y: -100, W: 300, H: 300}, false, nil)
	if len(set.Front) != 1 {
		t.Fatal("query region hanging off the map edge should still find the wall")
	}
}

func TestWallsIntersectingRegion_SpanningMultipleBuckets(t *testing.T) {
	// Wide wall crossing the 640px bucket boundary: it must be found
	// exactly once from either side.
	wall := boxWall(600, 100, 100, 40, 0)
	m := newWallMap(t, wall)

	left := m.WallsIntersectingRegion(Region{X: 0, Y: 0, W: 620, H: 300}, false, nil)
	right := m.WallsIntersectingRegion(Region{X: 660, Y: 0, W: 300, H: 300}, false, nil)
	both := m.WallsIntersectingRegion(Region{X: 0, Y: 0, W: 1280, H: 480}, false, nil)
	if len(left.Front) != 1 || len(right.Front) != 1 {
		t.Fatalf("bucket-spanning wall found %d/%d times, want 1/1",
			len(left.Front), len(right.Front))
	}
	if len(both.Front) != 1 {
		t.Fatalf("wall duplicated across buckets: found %d times", len(both.Front))
	}
}

func TestSetDisabled_Toggle(t *testing.T) {
	wall := boxWall(0, 0, 10, 10, 0)
	wall.SetDisabled(true)
	if wall.Flags&WallDisabled == 0 {
		t.Fatal("disable did not set the flag")
	}
	wall.SetDisabled(false)
	if wall.Flags&WallDisabled != 0 {
		t.Fatal("enable did not clear the flag")
	}
}

func TestBehindWall(t *testing.T) {
	wall := boxWall(100, 100, 100, 40, 0)
	m := newWallMap(t, wall)

	bounds := Region{X: 120, Y: 90, W: 40, H: 80}
	if !m.BehindWall(Point{140, 300}, bounds) {
		t.Fatal("object below the baseline should be behind the wall")
	}
	if m.BehindWall(Point{140, 50}, bounds) {
		t.Fatal("object above the baseline should not be behind the wall")
	}
}
