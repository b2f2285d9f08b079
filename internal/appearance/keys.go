package appearance

import "material-texture-bench/internal/hostdoc"

// TransparencyKey is the bundle key for the generic transparency, in percent.
const TransparencyKey = "generic_transparency"

// Bundle keys for the unified bitmap descriptor.
const (
	KeyRealWorldScaleX  = "UnifiedBitmap.TextureRealWorldScaleX"
	KeyRealWorldScaleY  = "UnifiedBitmap.TextureRealWorldScaleY"
	KeyRealWorldOffsetX = "UnifiedBitmap.TextureRealWorldOffsetX"
	KeyRealWorldOffsetY = "UnifiedBitmap.TextureRealWorldOffsetY"
	KeyBitmap           = "UnifiedBitmap.UnifiedbitmapBitmap"
	KeyURepeat          = "UnifiedBitmap.TextureURepeat"
	KeyVRepeat          = "UnifiedBitmap.TextureVRepeat"
	KeyOffsetLock       = "UnifiedBitmap.TextureOffsetLock"
	KeyScaleLock        = "UnifiedBitmap.TextureScaleLock"
	KeyWAngle           = "UnifiedBitmap.TextureWAngle"
)

var unifiedBitmapKeys = map[string]string{
	KeyRealWorldScaleX:  hostdoc.TextureRealWorldScaleX,
	KeyRealWorldScaleY:  hostdoc.TextureRealWorldScaleY,
	KeyRealWorldOffsetX: hostdoc.TextureRealWorldOffsetX,
	KeyRealWorldOffsetY: hostdoc.TextureRealWorldOffsetY,
	KeyBitmap:           hostdoc.UnifiedbitmapBitmap,
	KeyURepeat:          hostdoc.TextureURepeat,
	KeyVRepeat:          hostdoc.TextureVRepeat,
	KeyOffsetLock:       hostdoc.TextureOffsetLock,
	KeyScaleLock:        hostdoc.TextureScaleLock,
	KeyWAngle:           hostdoc.TextureWAngle,
}

// ResolveKey maps a bundle key to the unified bitmap property it addresses.
// Keys outside the descriptor, including TransparencyKey, resolve to false.
func ResolveKey(key string) (string, bool) {
	name, ok := unifiedBitmapKeys[key]
	return name, ok
}
