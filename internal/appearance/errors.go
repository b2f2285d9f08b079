package appearance

import "errors"

var (
	// ErrNoGenericTemplate indicates the document has no generic appearance asset to duplicate.
	ErrNoGenericTemplate = errors.New("appearance: no generic template asset")
	// ErrNoAppearanceAsset indicates neither duplication nor lookup produced an asset to bind.
	ErrNoAppearanceAsset = errors.New("appearance: no appearance asset available to bind")
	// ErrNoBitmapSlot indicates the asset exposes no property a bitmap can hang off.
	ErrNoBitmapSlot = errors.New("appearance: no bitmap connection point")
	// ErrPropertyNotApplicable indicates a property node that does not take the value.
	ErrPropertyNotApplicable = errors.New("appearance: property not applicable")
)
