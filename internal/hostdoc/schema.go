package hostdoc

import (
	"fmt"
	"math"
)

// Schema names.
const (
	UnifiedBitmapSchema = "UnifiedBitmapSchema"
	GenericSchema       = "GenericSchema"
)

// Well-known property names of the generic schema.
const (
	GenericDiffuse      = "generic_diffuse"
	GenericTransparency = "generic_transparency"
	GenericGlossiness   = "generic_glossiness"
)

// Well-known property names of the unified bitmap schema.
const (
	TextureRealWorldScaleX  = "texture_RealWorldScaleX"
	TextureRealWorldScaleY  = "texture_RealWorldScaleY"
	TextureRealWorldOffsetX = "texture_RealWorldOffsetX"
	TextureRealWorldOffsetY = "texture_RealWorldOffsetY"
	UnifiedbitmapBitmap     = "unifiedbitmap_Bitmap"
	TextureURepeat          = "texture_URepeat"
	TextureVRepeat          = "texture_VRepeat"
	TextureOffsetLock       = "texture_OffsetLock"
	TextureScaleLock        = "texture_ScaleLock"
	TextureWAngle           = "texture_WAngle"
	UnifiedbitmapInvert     = "unifiedbitmap_Invert"
	UnifiedbitmapRGBAmount  = "unifiedbitmap_RGBAmount"
)

// NewSchemaAsset returns a default-populated asset for a connectable schema.
func NewSchemaAsset(schema string) (*Asset, error) {
	switch schema {
	case UnifiedBitmapSchema:
		return newUnifiedBitmap(), nil
	default:
		return nil, fmt.Errorf("hostdoc: unknown schema %q", schema)
	}
}

func newUnifiedBitmap() *Asset {
	scaleMin, scaleMax := rangeOf(Tolerance, math.MaxFloat64)
	offMin, offMax := rangeOf(-math.MaxFloat64, math.MaxFloat64)
	angMin, angMax := rangeOf(0, 360)
	amtMin, amtMax := rangeOf(0, 1)
	return &Asset{
		Name: UnifiedBitmapSchema,
		Properties: []*Property{
			{Name: UnifiedbitmapBitmap, Kind: PropertyString, Required: true},
			{Name: TextureRealWorldScaleX, Kind: PropertyDistance, Double: 1, Min: scaleMin, Max: scaleMax},
			{Name: TextureRealWorldScaleY, Kind: PropertyDistance, Double: 1, Min: scaleMin, Max: scaleMax},
			{Name: TextureRealWorldOffsetX, Kind: PropertyDistance, Min: offMin, Max: offMax},
			{Name: TextureRealWorldOffsetY, Kind: PropertyDistance, Min: offMin, Max: offMax},
			{Name: TextureURepeat, Kind: PropertyBoolean, Bool: true},
			{Name: TextureVRepeat, Kind: PropertyBoolean, Bool: true},
			{Name: TextureOffsetLock, Kind: PropertyBoolean},
			{Name: TextureScaleLock, Kind: PropertyBoolean, Bool: true},
			{Name: TextureWAngle, Kind: PropertyDouble, Min: angMin, Max: angMax},
			{Name: UnifiedbitmapInvert, Kind: PropertyBoolean},
			{Name: UnifiedbitmapRGBAmount, Kind: PropertyDouble, Double: 1, Min: amtMin, Max: amtMax},
		},
	}
}

// NewGenericAsset returns an asset of the generic schema. The diffuse slot has
// no bitmap connected.
func NewGenericAsset(name string) *Asset {
	unitMin, unitMax := rangeOf(0, 1)
	return &Asset{
		Name: name,
		Properties: []*Property{
			{Name: "common_Tint_toggle", Kind: PropertyBoolean},
			{Name: GenericDiffuse, Kind: PropertyDouble, Double: 0.8, Min: unitMin, Max: unitMax},
			{Name: GenericTransparency, Kind: PropertyDouble, Min: unitMin, Max: unitMax},
			{Name: GenericGlossiness, Kind: PropertyDouble, Double: 0.5, Min: unitMin, Max: unitMax},
			{Name: "generic_is_metal", Kind: PropertyBoolean},
		},
	}
}

// newBitmapSlotAsset returns a non-generic asset whose bitmap hangs off a slot
// that is not called generic_diffuse.
func newBitmapSlotAsset(name, slot, bitmap string) *Asset {
	unitMin, unitMax := rangeOf(0, 1)
	ub := newUnifiedBitmap()
	ub.FindByName(UnifiedbitmapBitmap).Str = bitmap
	return &Asset{
		Name: name,
		Properties: []*Property{
			{Name: "common_Tint_toggle", Kind: PropertyBoolean},
			{Name: slot, Kind: PropertyDouble, Double: 0.5, Min: unitMin, Max: unitMax, Connected: []*Asset{ub}},
		},
	}
}

// Tolerance matches the smallest real-world scale the host accepts.
const Tolerance = 1.0 / 256
