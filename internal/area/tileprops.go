package area

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"golang.org/x/image/bmp"
)

// Property selects one of the four sub-fields packed into a tile cell.
type Property uint8

const (
	PropSearchMap Property = iota
	PropMaterial
	PropElevation
	PropLighting
)

// Channel layout of the packed cell word. Only this file knows the
// shifts; everything else goes through the typed accessors.
const (
	searchMapShift = 0
	materialShift  = 8
	elevationShift = 16
	lightingShift  = 24

	searchMapMask uint32 = 0xff << searchMapShift
	materialMask  uint32 = 0xff << materialShift
	elevationMask uint32 = 0xff << elevationShift
	lightingMask  uint32 = 0xff << lightingShift
)

// Out-of-bounds query defaults. Queries never fail; they degrade to these.
const (
	defaultSearchMap uint8 = uint8(PathImpassable)
	defaultMaterial  uint8 = 0
	defaultElevation uint8 = 128 // mid-range, decodes to elevation 0
	defaultLighting  uint8 = 0
)

// TileProps is the packed per-cell attribute raster: passability flags,
// surface material, elevation and light index share one uint32 per cell.
// Dimensions are fixed at construction and never change.
type TileProps struct {
	size  Size
	props []uint32
	pal   color.Palette
}

// NewTileProps creates an empty raster of the given size. Every cell
// starts unmarked (impassable). The palette backs lighting decode and
// must not be empty.
func NewTileProps(size Size, pal color.Palette) (*TileProps, error) {
	if size.IsInvalid() {
		return nil, fmt.Errorf("tileprops: invalid size %dx%d", size.W, size.H)
	}
	if len(pal) == 0 {
		return nil, errors.New("tileprops: empty lighting palette")
	}
	return &TileProps{
		size:  size,
		props: make([]uint32, size.W*size.H),
		pal:   pal,
	}, nil
}

// LoadTileProps merges the three classic raster assets (search map,
// height map, light map) into one packed raster. The rasters are BMP
// encoded and must decode to identical dimensions; any failure here is a
// construction-time error, never a degraded query later.
func LoadTileProps(search, height, light io.Reader) (*TileProps, error) {
	sImg, err := bmp.Decode(search)
	if err != nil {
		return nil, fmt.Errorf("tileprops: search map: %w", err)
	}
	hImg, err := bmp.Decode(height)
	if err != nil {
		return nil, fmt.Errorf("tileprops: height map: %w", err)
	}
	lImg, err := bmp.Decode(light)
	if err != nil {
		return nil, fmt.Errorf("tileprops: light map: %w", err)
	}
	return MergeTileProps(sImg, hImg, lImg)
}

// MergeTileProps builds the packed raster from already-decoded images.
// The search map's pixel index supplies both the passability flags and
// the material; the height map supplies elevation; the light map index
// feeds the palette lookup.
func MergeTileProps(search, height, light image.Image) (*TileProps, error) {
	sb := search.Bounds()
	if !height.Bounds().Eq(sb) || !light.Bounds().Eq(sb) {
		return nil, fmt.Errorf("tileprops: raster size mismatch: search %v height %v light %v",
			sb.Size(), height.Bounds().Size(), light.Bounds().Size())
	}

	pal := color.Palette{color.Black}
	if p, ok := light.(*image.Paletted); ok && len(p.Palette) > 0 {
		pal = p.Palette
	}

	tp, err := NewTileProps(Size{W: sb.Dx(), H: sb.Dy()}, pal)
	if err != nil {
		return nil, err
	}

	for y := 0; y < tp.size.H; y++ {
		for x := 0; x < tp.size.W; x++ {
			p := TilePoint{X: x, Y: y}
			tp.Set(p, PropSearchMap, paletteIndexAt(search, sb.Min.X+x, sb.Min.Y+y))
			tp.Set(p, PropElevation, grayAt(height, sb.Min.X+x, sb.Min.Y+y))
			tp.Set(p, PropLighting, paletteIndexAt(light, sb.Min.X+x, sb.Min.Y+y))
		}
	}
	return tp, nil
}

// paletteIndexAt extracts the raw palette index if the image is paletted,
// otherwise the red channel.
func paletteIndexAt(img image.Image, x, y int) uint8 {
	if p, ok := img.(*image.Paletted); ok {
		return p.ColorIndexAt(x, y)
	}
	r, _, _, _ := img.At(x, y).RGBA()
	return uint8(r >> 8)
}

// grayAt reads a greyscale sample; any channel works for grey images.
func grayAt(img image.Image, x, y int) uint8 {
	r, _, _, _ := img.At(x, y).RGBA()
	return uint8(r >> 8)
}

// GetSize returns the raster dimensions in tile cells.
func (tp *TileProps) GetSize() Size {
	return tp.size
}

func (tp *TileProps) inside(p TilePoint) bool {
	return p.X >= 0 && p.X < tp.size.W && p.Y >= 0 && p.Y < tp.size.H
}

// Query reads one sub-field. Out-of-bounds points return the documented
// default for the field instead of erroring.
func (tp *TileProps) Query(p TilePoint, prop Property) uint8 {
	if tp.inside(p) {
		c := tp.props[p.Y*tp.size.W+p.X]
		switch prop {
		case PropSearchMap:
			return uint8((c & searchMapMask) >> searchMapShift)
		case PropMaterial:
			return uint8((c & materialMask) >> materialShift)
		case PropElevation:
			return uint8((c & elevationMask) >> elevationShift)
		case PropLighting:
			return uint8((c & lightingMask) >> lightingShift)
		}
	}
	switch prop {
	case PropMaterial:
		return defaultMaterial
	case PropElevation:
		return defaultElevation
	case PropLighting:
		return defaultLighting
	default:
		return defaultSearchMap
	}
}

// Set writes one sub-field without disturbing the others. Out-of-bounds
// writes are silently dropped.
func (tp *TileProps) Set(p TilePoint, prop Property, val uint8) {
	if !tp.inside(p) {
		return
	}
	c := &tp.props[p.Y*tp.size.W+p.X]
	switch prop {
	case PropSearchMap:
		*c = (*c &^ searchMapMask) | uint32(val)<<searchMapShift
	case PropMaterial:
		*c = (*c &^ materialMask) | uint32(val)<<materialShift
	case PropElevation:
		*c = (*c &^ elevationMask) | uint32(val)<<elevationShift
	case PropLighting:
		*c = (*c &^ lightingMask) | uint32(val)<<lightingShift
	}
}

// QuerySearchMap returns the cell's raw passability flags.
func (tp *TileProps) QuerySearchMap(p TilePoint) PathFlags {
	return PathFlags(tp.Query(p, PropSearchMap))
}

// QueryMaterial returns the cell's surface material index.
func (tp *TileProps) QueryMaterial(p TilePoint) uint8 {
	return tp.Query(p, PropMaterial)
}

// QueryElevation maps the stored byte onto the world height range -7..+7.
// Height rasters are greyscale with white at the top of the world.
func (tp *TileProps) QueryElevation(p TilePoint) int {
	val := int(tp.Query(p, PropElevation))
	const inputRange = 255
	const outputRange = 14
	return val*outputRange/inputRange - 7
}

// QueryLighting resolves the cell's light index through the palette.
func (tp *TileProps) QueryLighting(p TilePoint) color.Color {
	idx := int(tp.Query(p, PropLighting))
	if idx >= len(tp.pal) {
		return tp.pal[0]
	}
	return tp.pal[idx]
}

// PaintSearchMap overwrites the passability flags of one cell, leaving
// the other sub-fields untouched.
func (tp *TileProps) PaintSearchMap(p TilePoint, value PathFlags) {
	tp.Set(p, PropSearchMap, uint8(value))
}

// StampFootprint paints an actor-occupancy disc of radius blockSize-1
// around p. Cells that are fully impassable stay untouched; everything
// else keeps its non-occupant flags and gains value's occupant class.
//
// Note this disc is one cell larger than the one GetBlockedInRadius
// tests, so an actor can stand closer to a wall than to another actor.
func (tp *TileProps) StampFootprint(p TilePoint, blockSize int, value PathFlags) {
	if blockSize < 1 {
		blockSize = 1
	} else if blockSize > maxCircleSize {
		blockSize = maxCircleSize
	}
	r := blockSize - 1

	for _, span := range plotCircle(p, r) {
		for x := span.Left.X; x <= span.Right.X; x++ {
			pos := TilePoint{X: x, Y: span.Left.Y}
			mapval := tp.QuerySearchMap(pos)
			if mapval == PathImpassable {
				continue
			}
			tp.PaintSearchMap(pos, (mapval&PathNotActor)|value)
		}
	}
}
