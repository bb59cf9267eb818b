package area

import (
	"image"
	"image/color"

	xvector "golang.org/x/image/vector"
)

// BlitFlags are the renderer hints returned by stencil selection. The
// stencil channel flags tell the renderer which stencil channel gates
// the draw; the consuming renderer may only support a single-channel
// stencil test, which is why a constant alpha channel is always encoded.
type BlitFlags uint32

const (
	BlitNone BlitFlags = 0
	// BlitStencilRed gates on the per-wall base transparency channel.
	BlitStencilRed BlitFlags = 1 << iota
	// BlitStencilGreen gates on the cover-animation channel.
	BlitStencilGreen
	// BlitStencilBlue gates on the always-opaque channel.
	BlitStencilBlue
	// BlitStencilAlpha gates on the always-half-transparent channel.
	BlitStencilAlpha
	// BlitStencilDither requests the dithered stencil strategy.
	BlitStencilDither

	blitStencilMask = BlitStencilRed | BlitStencilGreen | BlitStencilBlue | BlitStencilAlpha
)

// StencilKind reports which stencil the renderer should bind for an
// object this frame.
type StencilKind uint8

const (
	// StencilNone: object is not occluded, no stencil needed.
	StencilNone StencilKind = iota
	// StencilShared: the viewport-wide wall stencil suffices.
	StencilShared
	// StencilCustom: a per-object cached stencil is required.
	StencilCustom
)

// StencilSelection is the result of per-object stencil resolution.
type StencilSelection struct {
	Kind  StencilKind
	Image *image.RGBA
	Flags BlitFlags
}

type stencilEntry struct {
	img    *image.RGBA
	region Region
}

// drawStencil rasterizes the given walls into dst, relative to the
// region's origin. Channel encoding:
//
//	r: per-wall base value (0x80 dithered, 0xff opaque)
//	g: same value, but only for cover-animation walls (0 otherwise)
//	b: constant 0xff (always opaque)
//	a: constant 0x80 (always half transparent)
func drawStencil(dst *image.RGBA, rgn Region, walls []*WallPolygon) {
	for _, wp := range walls {
		var base uint8 = 0xff
		if wp.Flags&WallDither != 0 {
			base = 0x80
		}
		var cover uint8
		if wp.Flags&WallCoverAnims != 0 {
			cover = base
		}
		rasterizePolygon(dst, rgn, wp.Points, color.RGBA{R: base, G: cover, B: 0xff, A: 0x80})
	}
}

// rasterizePolygon fills the polygon (world coordinates) into dst, which
// covers rgn. The outline is rendered to an alpha mask first; covered
// pixels then receive the stencil color verbatim.
func rasterizePolygon(dst *image.RGBA, rgn Region, pts []Point, c color.RGBA) {
	if len(pts) < 3 {
		return
	}
	w := dst.Rect.Dx()
	h := dst.Rect.Dy()
	rz := xvector.NewRasterizer(w, h)
	rz.MoveTo(float32(pts[0].X-rgn.X), float32(pts[0].Y-rgn.Y))
	for _, p := range pts[1:] {
		rz.LineTo(float32(p.X-rgn.X), float32(p.Y-rgn.Y))
	}
	rz.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	rz.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mask.AlphaAt(x, y).A < 0x80 {
				continue
			}
			dst.SetRGBA(dst.Rect.Min.X+x, dst.Rect.Min.Y+y, c)
		}
	}
}

// RedrawScreenStencil rebuilds the shared viewport-sized stencil if the
// viewport moved or resized since the last frame.
func (m *Map) RedrawScreenStencil(vp Region, walls []*WallPolygon) {
	if m.stencilViewport == vp && m.wallStencil != nil {
		return
	}
	m.stencilViewport = vp

	if m.wallStencil == nil || m.wallStencil.Rect.Dx() != vp.W || m.wallStencil.Rect.Dy() != vp.H {
		m.wallStencil = image.NewRGBA(image.Rect(0, 0, vp.W, vp.H))
	} else {
		clear(m.wallStencil.Pix)
	}
	drawStencil(m.wallStencil, vp, walls)
}

// stencilForObject resolves which stencil an object with the given draw
// region needs. Objects sandwiched between walls (some in front, some
// behind) need a custom stencil rasterizing only the in-front walls;
// that stencil is cached by object id and reused while its region still
// covers the object's current bounds. Everything else shares the
// viewport stencil.
func (m *Map) stencilForObject(id uint32, objectRgn Region, walls WallPolygonSet) (StencilKind, *image.RGBA) {
	behindWall := len(walls.Front) > 0
	inFrontOfWall := len(walls.Behind) > 0

	if behindWall && inFrontOfWall {
		if entry, ok := m.objectStencils[id]; ok && entry.region.ContainsRegion(objectRgn) {
			return StencilCustom, entry.img
		}
		if objectRgn.Size().IsInvalid() {
			return StencilShared, m.wallStencil
		}
		stencil := image.NewRGBA(image.Rect(0, 0, objectRgn.W, objectRgn.H))
		drawStencil(stencil, objectRgn, walls.Front)
		m.objectStencils[id] = stencilEntry{img: stencil, region: objectRgn}
		return StencilCustom, stencil
	}
	return StencilShared, m.wallStencil
}

// RemoveStencil drops the cached stencil for a destroyed object.
func (m *Map) RemoveStencil(id uint32) {
	delete(m.objectStencils, id)
}

// StencilCacheLen reports the number of cached per-object stencils.
func (m *Map) StencilCacheLen() int {
	return len(m.objectStencils)
}

// SetDrawingStencilForActor resolves the stencil and blend flags for an
// actor this frame. Actors outside the viewport or in front of every
// nearby wall need no stencil. The dithering strategy depends on
// selection state and the global always-dither override.
func (m *Map) SetDrawingStencilForActor(a *Actor, vp Region) StencilSelection {
	bbox := a.DrawBounds
	if !bbox.Intersects(vp) {
		return StencilSelection{Kind: StencilNone}
	}

	walls := m.WallsIntersectingRegion(bbox, false, &a.Pos)
	kind, img := m.stencilForObject(a.ID, bbox, walls)

	if len(walls.Front) == 0 {
		// not behind a wall, no stencil required
		return StencilSelection{Kind: StencilNone}
	}

	flags := BlitStencilDither
	switch {
	case m.cfg.AlwaysDither:
		flags |= BlitStencilAlpha
	case !m.cfg.DitherSprites:
		flags |= BlitStencilBlue
	case a.Selected || a.Hovered:
		flags |= BlitStencilAlpha
	default:
		flags |= BlitStencilRed
	}
	return StencilSelection{Kind: kind, Image: img, Flags: flags}
}

// SetDrawingStencilForAnimation resolves the stencil for a background
// animation anchored at pos. Animations are only occluded by
// cover-animation walls, via the green channel.
func (m *Map) SetDrawingStencilForAnimation(id uint32, bbox Region, pos Point, vp Region) StencilSelection {
	if !bbox.Intersects(vp) {
		return StencilSelection{Kind: StencilNone}
	}
	walls := m.WallsIntersectingRegion(bbox, false, &pos)
	kind, img := m.stencilForObject(id, bbox, walls)
	if len(walls.Front) == 0 {
		return StencilSelection{Kind: StencilNone}
	}
	return StencilSelection{Kind: kind, Image: img, Flags: BlitStencilGreen}
}
