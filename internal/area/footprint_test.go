package area

import "testing"

func TestFootprint_BlockThenClearRestores(t *testing.T) {
	m := newTestMap(t, 32, 32)
	before := make([]uint32, len(m.tileProps.props))
	copy(before, m.tileProps.props)

	a := &Actor{ID: 1, CircleSize: 3}
	a.SetPos(worldPoint(TilePoint{16, 16}))
	m.AddActor(a)

	if m.tileProps.QuerySearchMap(a.TilePos)&PathNPC == 0 {
		t.Fatal("AddActor should paint the footprint")
	}

	m.RemoveActor(a)
	for i := range m.tileProps.props {
		if m.tileProps.props[i] != before[i] {
			t.Fatalf("cell %d not restored after clear", i)
		}
	}
}

func TestFootprint_PCvsNPCClass(t *testing.T) {
	m := newTestMap(t, 32, 32)
	pc := &Actor{ID: 1, CircleSize: 1, PC: true}
	pc.SetPos(worldPoint(TilePoint{5, 5}))
	m.AddActor(pc)

	if m.tileProps.QuerySearchMap(TilePoint{5, 5})&PathPC == 0 {
		t.Fatal("party member footprint should use the PC occupant class")
	}
	if m.tileProps.QuerySearchMap(TilePoint{5, 5})&PathNPC != 0 {
		t.Fatal("party member footprint must not set the NPC class")
	}
}

func TestFootprint_OverlappingClearKeepsNeighbour(t *testing.T) {
	m := newTestMap(t, 32, 32)

	a := &Actor{ID: 1, CircleSize: 3}
	a.SetPos(worldPoint(TilePoint{16, 16}))
	b := &Actor{ID: 2, CircleSize: 3}
	b.SetPos(worldPoint(TilePoint{18, 16})) // discs overlap
	m.AddActor(a)
	m.AddActor(b)

	m.RemoveActor(a)

	// Every cell of b's disc (radius CircleSize-1 = 2) must still be
	// occupied; the overlap region in particular must not have been
	// cleared for good.
	for _, span := range plotCircle(b.TilePos, b.CircleSize-1) {
		for x := span.Left.X; x <= span.Right.X; x++ {
			p := TilePoint{X: x, Y: span.Left.Y}
			if m.tileProps.QuerySearchMap(p)&PathNPC == 0 {
				t.Fatalf("cell %v of the remaining actor's footprint was cleared", p)
			}
		}
	}
}

func TestFootprint_NoBlockActorPaintsNothing(t *testing.T) {
	m := newTestMap(t, 16, 16)
	a := &Actor{ID: 1, CircleSize: 2, NoBlock: true}
	a.SetPos(worldPoint(TilePoint{8, 8}))
	m.AddActor(a)
	if m.tileProps.QuerySearchMap(TilePoint{8, 8})&PathActor != 0 {
		t.Fatal("non-blocking actor must not paint a footprint")
	}
}

func TestMoveActor_RepaintsFootprint(t *testing.T) {
	m := newTestMap(t, 32, 32)
	a := &Actor{ID: 1, CircleSize: 1}
	a.SetPos(worldPoint(TilePoint{4, 4}))
	m.AddActor(a)

	m.MoveActor(a, worldPoint(TilePoint{10, 10}))

	if m.tileProps.QuerySearchMap(TilePoint{4, 4})&PathActor != 0 {
		t.Fatal("old footprint cell still occupied after move")
	}
	if m.tileProps.QuerySearchMap(TilePoint{10, 10})&PathNPC == 0 {
		t.Fatal("new footprint cell not occupied after move")
	}
	if a.TilePos != (TilePoint{10, 10}) {
		t.Fatalf("cached tile position = %v after move", a.TilePos)
	}
}
