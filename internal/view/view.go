// Package view is the interactive ebiten front end: it renders the demo
// scenario with fog of war, wall occluders and per-actor stencil debug
// overlays, and drives the simulation clock from the frame loop.
package view

import (
	"fmt"
	"image/color"
	"math"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sirupsen/logrus"

	"github.com/cairnwood/areacore/internal/area"
	"github.com/cairnwood/areacore/internal/scenario"
)

// borderWidth is the pixel gap between the window edge and the world view.
const borderWidth = 16

var (
	colBackdrop  = color.RGBA{R: 12, G: 12, B: 14, A: 255}
	colGround    = color.RGBA{R: 52, G: 72, B: 46, A: 255}
	colTravel    = color.RGBA{R: 80, G: 96, B: 60, A: 255}
	colWallTile  = color.RGBA{R: 96, G: 92, B: 84, A: 255}
	colDoorTile  = color.RGBA{R: 120, G: 84, B: 40, A: 255}
	colBlockFree = color.RGBA{R: 30, G: 30, B: 36, A: 255}

	colShroud = color.RGBA{A: 255}
	colFogged = color.RGBA{A: 140}

	colParty    = color.RGBA{R: 80, G: 160, B: 255, A: 255}
	colHostile  = color.RGBA{R: 220, G: 70, B: 60, A: 255}
	colNeutral  = color.RGBA{R: 200, G: 200, B: 120, A: 255}
	colSelected = color.RGBA{R: 255, G: 255, B: 255, A: 255}

	colWallEdge = color.RGBA{R: 200, G: 190, B: 160, A: 200}
	colBaseline = color.RGBA{R: 255, G: 120, B: 40, A: 220}
)

// View implements ebiten.Game over a scenario.
type View struct {
	scn    *scenario.Scenario
	log    *logrus.Logger
	width  int
	height int
	worldW int
	worldH int

	// Offscreen buffer for the world — camera transform applied on blit.
	worldBuf   *ebiten.Image
	terrainImg *ebiten.Image

	camX    float64
	camY    float64
	camZoom float64

	simSpeed  float64
	tickAccum float64

	showFog      bool
	showGrid     bool
	showWalls    bool
	showStencils bool
	showHUD      bool

	selected      *area.Actor
	prevKeys      map[ebiten.Key]bool
	prevMouseLeft bool
	copyStatus    string
}

// New builds the viewer around a scenario.
func New(scn *scenario.Scenario, log *logrus.Logger) *View {
	if log == nil {
		log = logrus.StandardLogger()
	}
	ws := scn.Map.Size()
	v := &View{
		scn:       scn,
		log:       log,
		worldW:    ws.W,
		worldH:    ws.H,
		width:     borderWidth + 1280 + borderWidth,
		height:    borderWidth + 800 + borderWidth,
		camX:      float64(ws.W) / 2,
		camY:      float64(ws.H) / 2,
		camZoom:   1.0,
		simSpeed:  1.0,
		showFog:   true,
		showWalls: true,
		showHUD:   true,
		prevKeys:  make(map[ebiten.Key]bool),
	}
	v.worldBuf = ebiten.NewImage(ws.W, ws.H)
	v.terrainImg = ebiten.NewImage(ws.W, ws.H)
	v.renderTerrain()
	return v
}

// WindowSize returns the intended window dimensions.
func (v *View) WindowSize() (int, int) {
	return v.width, v.height
}

// renderTerrain rasterizes the static search map once; the raster never
// changes shape at runtime, only occupancy flags, which are not drawn.
func (v *View) renderTerrain() {
	tp := v.scn.Map.TileProps()
	ts := tp.GetSize()
	for y := 0; y < ts.H; y++ {
		for x := 0; x < ts.W; x++ {
			flags := tp.QuerySearchMap(area.TilePoint{X: x, Y: y})
			c := colGround
			switch {
			case flags&area.PathDoor != 0:
				c = colDoorTile
			case flags&area.PathSidewall != 0:
				c = colWallTile
			case flags&area.PathTravel != 0:
				c = colTravel
			case flags&area.PathPassable == 0:
				c = colBlockFree
			}
			vector.FillRect(v.terrainImg,
				float32(x*area.TileWidth), float32(y*area.TileHeight),
				float32(area.TileWidth), float32(area.TileHeight), c, false)
		}
	}
}

func (v *View) Update() error {
	v.handleInput()

	if v.simSpeed > 0 {
		v.tickAccum += v.simSpeed
		for v.tickAccum >= 1.0 {
			v.tickAccum -= 1.0
			v.scn.Tick()
		}
	}

	// Keep the shared stencil in sync with the camera so the overlay and
	// the cache behave exactly as a full renderer would see them.
	v.scn.Map.RedrawScreenStencil(v.viewport(), v.scn.Map.Walls())
	return nil
}

// viewport returns the camera's world-space rectangle.
func (v *View) viewport() area.Region {
	vw := float64(v.width-2*borderWidth) / v.camZoom
	vh := float64(v.height-2*borderWidth) / v.camZoom
	return area.Region{
		X: int(v.camX - vw/2),
		Y: int(v.camY - vh/2),
		W: int(vw),
		H: int(vh),
	}
}

func (v *View) handleInput() {
	currentKeys := map[ebiten.Key]bool{}
	pressed := func(k ebiten.Key) bool {
		currentKeys[k] = ebiten.IsKeyPressed(k)
		return currentKeys[k] && !v.prevKeys[k]
	}

	// Overlay toggles.
	if pressed(ebiten.KeyF) {
		v.showFog = !v.showFog
	}
	if pressed(ebiten.KeyG) {
		v.showGrid = !v.showGrid
	}
	if pressed(ebiten.KeyO) {
		v.showWalls = !v.showWalls
	}
	if pressed(ebiten.KeyT) {
		v.showStencils = !v.showStencils
	}
	if pressed(ebiten.KeyH) {
		v.showHUD = !v.showHUD
	}

	// Camera pan: WASD or arrow keys.
	panSpeed := 6.0 / v.camZoom
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		v.camY -= panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		v.camY += panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		v.camX -= panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		v.camX += panSpeed
	}

	// Camera zoom: mouse wheel or =/- keys.
	const zoomMin, zoomMax = 0.5, 4.0
	_, wy := ebiten.Wheel()
	if wy != 0 {
		v.camZoom *= math.Pow(1.12, wy)
	}
	if pressed(ebiten.KeyEqual) {
		v.camZoom *= 1.25
	}
	if pressed(ebiten.KeyMinus) {
		v.camZoom /= 1.25
	}
	if v.camZoom < zoomMin {
		v.camZoom = zoomMin
	}
	if v.camZoom > zoomMax {
		v.camZoom = zoomMax
	}

	// Sim speed: P pause/resume, , slower, . faster.
	speeds := []float64{0, 0.5, 1, 2, 4}
	if pressed(ebiten.KeyP) {
		if v.simSpeed > 0 {
			v.simSpeed = 0
		} else {
			v.simSpeed = 1
		}
	}
	if pressed(ebiten.KeyComma) {
		for i, s := range speeds {
			if s >= v.simSpeed && i > 0 {
				v.simSpeed = speeds[i-1]
				break
			}
		}
	}
	if pressed(ebiten.KeyPeriod) {
		for i, s := range speeds {
			if s <= v.simSpeed && i < len(speeds)-1 && speeds[i+1] > v.simSpeed {
				v.simSpeed = speeds[i+1]
				break
			}
		}
	}

	// R: copy the debug report to the clipboard.
	if pressed(ebiten.KeyR) {
		report := buildReport(v.scn, v.selected, 240)
		if err := clipboard.WriteAll(report); err != nil {
			v.log.WithError(err).Warn("clipboard copy failed")
			v.copyStatus = "copy failed"
		} else {
			v.copyStatus = fmt.Sprintf("report copied @T=%d", v.scn.Now())
		}
	}

	// Left click: select the nearest actor under the cursor.
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) && !v.prevMouseLeft {
		mx, my := ebiten.CursorPosition()
		v.handleClick(mx, my)
	}
	v.prevMouseLeft = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	v.prevKeys = currentKeys
}

// handleClick inverts the camera transform and picks the closest actor
// within 16 screen pixels.
func (v *View) handleClick(mx, my int) {
	vw := float64(v.width - 2*borderWidth)
	vh := float64(v.height - 2*borderWidth)
	wx := (float64(mx)-borderWidth-vw/2)/v.camZoom + v.camX
	wy := (float64(my)-borderWidth-vh/2)/v.camZoom + v.camY

	clickRadius2 := (16.0 / v.camZoom) * (16.0 / v.camZoom)
	best2 := math.MaxFloat64
	var hit *area.Actor
	for _, a := range v.scn.Map.Actors() {
		dx := float64(a.Pos.X) - wx
		dy := float64(a.Pos.Y) - wy
		d2 := dx*dx + dy*dy
		if d2 < clickRadius2 && d2 < best2 {
			best2 = d2
			hit = a
		}
	}
	v.selected = hit
	for _, a := range v.scn.Map.Actors() {
		a.Selected = a == hit
	}
}

func (v *View) Draw(screen *ebiten.Image) {
	screen.Fill(colBackdrop)

	v.worldBuf.Clear()
	v.drawWorld(v.worldBuf)

	vw := float64(v.width - 2*borderWidth)
	vh := float64(v.height - 2*borderWidth)
	var cam ebiten.GeoM
	cam.Translate(-v.camX, -v.camY)
	cam.Scale(v.camZoom, v.camZoom)
	cam.Translate(vw/2, vh/2)
	cam.Translate(borderWidth, borderWidth)
	screen.DrawImage(v.worldBuf, &ebiten.DrawImageOptions{GeoM: cam})

	vector.StrokeRect(screen, borderWidth-1, borderWidth-1,
		float32(vw)+2, float32(vh)+2, 2.0, color.RGBA{R: 70, G: 70, B: 80, A: 255}, false)

	if v.showHUD {
		v.drawHUD(screen)
	}
}

func (v *View) drawWorld(dst *ebiten.Image) {
	dst.DrawImage(v.terrainImg, nil)

	if v.showGrid {
		v.drawOccupancy(dst)
	}
	if v.showWalls {
		v.drawWalls(dst)
	}
	v.drawActors(dst)
	if v.showStencils && v.selected != nil {
		v.drawStencilOverlay(dst)
	}
	if v.showFog {
		v.drawFog(dst)
	}
}

// drawOccupancy marks cells currently carrying an actor footprint.
func (v *View) drawOccupancy(dst *ebiten.Image) {
	tp := v.scn.Map.TileProps()
	ts := tp.GetSize()
	for y := 0; y < ts.H; y++ {
		for x := 0; x < ts.W; x++ {
			flags := tp.QuerySearchMap(area.TilePoint{X: x, Y: y})
			if flags&area.PathActor == 0 {
				continue
			}
			c := color.RGBA{R: 255, G: 80, B: 80, A: 90}
			if flags&area.PathPC != 0 {
				c = color.RGBA{R: 80, G: 160, B: 255, A: 90}
			}
			vector.FillRect(dst,
				float32(x*area.TileWidth), float32(y*area.TileHeight),
				float32(area.TileWidth), float32(area.TileHeight), c, false)
		}
	}
}

func (v *View) drawWalls(dst *ebiten.Image) {
	for _, wp := range v.scn.Map.Walls() {
		pts := wp.Points
		for i := range pts {
			a := pts[i]
			b := pts[(i+1)%len(pts)]
			vector.StrokeLine(dst, float32(a.X), float32(a.Y),
				float32(b.X), float32(b.Y), 1.5, colWallEdge, false)
		}
		if wp.Flags&area.WallBaseline != 0 {
			vector.StrokeLine(dst, float32(wp.Base0.X), float32(wp.Base0.Y),
				float32(wp.Base1.X), float32(wp.Base1.Y), 2.0, colBaseline, false)
		}
	}
}

// drawActors renders the priority queues back-to-front: the queues are
// kept in descending y, so walking them in reverse paints the lowest
// actors last.
func (v *View) drawActors(dst *ebiten.Image) {
	for _, p := range []area.Priority{area.PriorityDisplay, area.PriorityRunScripts} {
		q := v.scn.Map.Queue(p)
		for i := len(q) - 1; i >= 0; i-- {
			v.drawActor(dst, q[i], p)
		}
	}
}

func (v *View) drawActor(dst *ebiten.Image, a *area.Actor, p area.Priority) {
	c := colNeutral
	switch {
	case a.PC:
		c = colParty
	case a.Hostile:
		c = colHostile
	}
	if p == area.PriorityDisplay {
		c.A = 160
	}

	b := a.DrawBounds
	vector.FillRect(dst, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), c, false)
	if a.Selected {
		vector.StrokeRect(dst, float32(b.X)-2, float32(b.Y)-2,
			float32(b.W)+4, float32(b.H)+4, 1.5, colSelected, false)
	}
}

// drawStencilOverlay blits the selected actor's resolved stencil over its
// draw bounds, tinted so the gating channel is visible.
func (v *View) drawStencilOverlay(dst *ebiten.Image) {
	sel := v.scn.Map.SetDrawingStencilForActor(v.selected, v.viewport())
	if sel.Kind == area.StencilNone || sel.Image == nil {
		return
	}

	img := ebiten.NewImageFromImage(sel.Image)
	opt := &ebiten.DrawImageOptions{}
	if sel.Kind == area.StencilCustom {
		opt.GeoM.Translate(float64(v.selected.DrawBounds.X), float64(v.selected.DrawBounds.Y))
	} else {
		vp := v.viewport()
		opt.GeoM.Translate(float64(vp.X), float64(vp.Y))
	}
	opt.ColorScale.ScaleAlpha(0.6)
	dst.DrawImage(img, opt)
}

func (v *View) drawFog(dst *ebiten.Image) {
	m := v.scn.Map
	ts := m.TileProps().GetSize()
	cw := float32(area.TileWidth * 2)
	ch := float32(area.TileHeight * 2)
	for ty := 0; ty < ts.H; ty += 2 {
		for tx := 0; tx < ts.W; tx += 2 {
			p := area.Point{X: tx * area.TileWidth, Y: ty * area.TileHeight}
			switch {
			case !m.IsExplored(p):
				vector.FillRect(dst, float32(p.X), float32(p.Y), cw, ch, colShroud, false)
			case !m.IsVisible(p):
				vector.FillRect(dst, float32(p.X), float32(p.Y), cw, ch, colFogged, false)
			}
		}
	}
}

func (v *View) drawHUD(screen *ebiten.Image) {
	stats := v.scn.Map.Stats()
	lines := []string{
		stats.String(),
		fmt.Sprintf("speed=%.1fx  zoom=%.2f  hostiles_visible=%t",
			v.simSpeed, v.camZoom, v.scn.Map.HostilesVisible()),
		"[WASD] pan  [wheel] zoom  [P , .] speed  [F]og [G]rid [O]ccluders s[T]encils  [R] copy report  [H]ud",
	}
	if v.selected != nil {
		a := v.selected
		lines = append(lines, fmt.Sprintf(
			"actor %d pos=%s tile=(%d,%d) vis=%d circle=%d hostile=%t visible=%t",
			a.ID, a.Pos, a.TilePos.X, a.TilePos.Y,
			a.VisualRange, a.CircleSize, a.Hostile, v.scn.Map.IsVisible(a.Pos)))
	}
	if v.copyStatus != "" {
		lines = append(lines, v.copyStatus)
	}
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, borderWidth, v.height-borderWidth-14*(len(lines)-i))
	}
}

func (v *View) Layout(_, _ int) (int, int) {
	return v.width, v.height
}
