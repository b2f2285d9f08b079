package appearance

import (
	"errors"
	"fmt"

	"material-texture-bench/internal/hostdoc"
	"material-texture-bench/internal/logging"
	"material-texture-bench/internal/material"
)

// Document is the part of the host document the editor needs.
type Document interface {
	TemplateDocument
	UpdateMaterial(id hostdoc.ElementID, fn func(m *hostdoc.Material)) error
	OpenEditScope() (*hostdoc.EditScope, error)
}

// Outcome reports what Apply did to one material.
type Outcome struct {
	AssetID  hostdoc.ElementID
	Bound    bool     // asset was bound by this call
	Applied  []string // property names written
	Skipped  []string // property names that rejected their value
	Ignored  []string // bundle keys with no known property
	SlotName string   // property the bitmap hangs off
}

// Editor applies texture property bundles to material appearance assets.
type Editor struct {
	doc   Document
	cache *TemplateCache
	log   *logging.Logger
}

// NewEditor returns an editor; log may be nil.
func NewEditor(doc Document, cache *TemplateCache, log *logging.Logger) *Editor {
	return &Editor{doc: doc, cache: cache, log: logging.OrNop(log)}
}

// Apply binds an appearance asset to mat if it has none, then writes props to
// the asset's bitmap texture inside an edit scope. Fields a node rejects are
// skipped; any other failure is returned after the scope has been released.
func (e *Editor) Apply(mat *material.Record, props *Properties) (Outcome, error) {
	var out Outcome
	if !mat.HasAppearanceAsset() {
		id, err := e.cache.DuplicateForMaterial(mat.Name)
		if err != nil {
			return out, err
		}
		err = e.doc.UpdateMaterial(mat.ID, func(m *hostdoc.Material) { m.AppearanceAssetID = id })
		if err != nil {
			return out, fmt.Errorf("appearance: bind %s: %w", mat.Name, err)
		}
		mat.AppearanceAssetID = id
		out.Bound = true
	}
	out.AssetID = mat.AppearanceAssetID

	scope, err := e.doc.OpenEditScope()
	if err != nil {
		return out, fmt.Errorf("appearance: edit %s: %w", mat.Name, err)
	}
	defer scope.Close()

	asset, err := scope.Start(mat.AppearanceAssetID)
	if err != nil {
		return out, fmt.Errorf("appearance: edit %s: %w", mat.Name, err)
	}
	log := e.log.With("material", mat.Name)

	if v, ok := props.Get(TransparencyKey); ok {
		if err := setTransparency(asset, v); err != nil {
			if !errors.Is(err, ErrPropertyNotApplicable) {
				return out, err
			}
			log.Warn("appearance: transparency skipped", "error", err)
			out.Skipped = append(out.Skipped, hostdoc.GenericTransparency)
		} else {
			out.Applied = append(out.Applied, hostdoc.GenericTransparency)
		}
	}

	slot := bitmapSlot(asset)
	if slot == nil {
		return out, fmt.Errorf("%w: %s", ErrNoBitmapSlot, asset.Name)
	}
	out.SlotName = slot.Name
	if slot.NumberOfConnectedProperties() == 0 {
		if _, err := slot.AddConnectedAsset(hostdoc.UnifiedBitmapSchema); err != nil {
			return out, fmt.Errorf("appearance: connect bitmap to %s: %w", slot.Name, err)
		}
	}

	bitmap := slot.ConnectedAsset(0)
	if bitmap.Name != hostdoc.UnifiedBitmapSchema {
		log.Warn("appearance: slot holds another texture, bitmap fields left alone", "slot", slot.Name, "schema", bitmap.Name)
	} else {
		for _, entry := range props.Entries() {
			if entry.Key == TransparencyKey {
				continue
			}
			name, ok := ResolveKey(entry.Key)
			if !ok {
				out.Ignored = append(out.Ignored, entry.Key)
				continue
			}
			err := setField(bitmap.FindByName(name), entry.Value)
			switch {
			case err == nil:
				out.Applied = append(out.Applied, name)
			case errors.Is(err, ErrPropertyNotApplicable):
				log.Warn("appearance: field skipped", "field", name, "value", entry.Value, "error", err)
				out.Skipped = append(out.Skipped, name)
			default:
				return out, fmt.Errorf("appearance: set %s on %s: %w", name, mat.Name, err)
			}
		}
	}

	if err := scope.Commit(true); err != nil {
		return out, fmt.Errorf("appearance: commit %s: %w", mat.Name, err)
	}
	return out, nil
}

// bitmapSlot returns the diffuse slot, or else the first top-level property
// whose first connected asset is a unified bitmap.
func bitmapSlot(a *hostdoc.Asset) *hostdoc.Property {
	if p := a.FindByName(hostdoc.GenericDiffuse); p != nil {
		return p
	}
	for i := 0; i < a.Size(); i++ {
		p := a.Get(i)
		if c := p.ConnectedAsset(0); c != nil && c.Name == hostdoc.UnifiedBitmapSchema {
			return p
		}
	}
	return nil
}

// setTransparency clamps a percentage to [0,100] and stores it as a fraction.
func setTransparency(a *hostdoc.Asset, v Value) error {
	p := a.FindByName(hostdoc.GenericTransparency)
	if p == nil {
		return fmt.Errorf("%w: %s missing", ErrPropertyNotApplicable, hostdoc.GenericTransparency)
	}
	if v.Kind != ValueDouble {
		return fmt.Errorf("%w: transparency given as %s", ErrPropertyNotApplicable, v.Kind)
	}
	return writeDouble(p, ClampPercent(v.Double)/100)
}

// ClampPercent clamps v to [0,100].
func ClampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func setField(p *hostdoc.Property, v Value) error {
	if p == nil {
		return fmt.Errorf("%w: node missing", ErrPropertyNotApplicable)
	}
	switch p.Kind {
	case hostdoc.PropertyDouble, hostdoc.PropertyDistance:
		if v.Kind != ValueDouble {
			return fmt.Errorf("%w: %s wants a number, got %s", ErrPropertyNotApplicable, p.Name, v.Kind)
		}
		return writeDouble(p, v.Double)
	case hostdoc.PropertyBoolean:
		if v.Kind != ValueBool {
			return fmt.Errorf("%w: %s wants a bool, got %s", ErrPropertyNotApplicable, p.Name, v.Kind)
		}
		return p.SetBool(v.Bool)
	case hostdoc.PropertyString:
		if v.Kind != ValueString {
			return fmt.Errorf("%w: %s wants a string, got %s", ErrPropertyNotApplicable, p.Name, v.Kind)
		}
		if !p.IsValidString(v.Str) {
			return fmt.Errorf("%w: %s rejects %q", ErrPropertyNotApplicable, p.Name, v.Str)
		}
		return p.SetString(v.Str)
	default:
		return fmt.Errorf("%w: %s is a %s", ErrPropertyNotApplicable, p.Name, p.Kind)
	}
}

func writeDouble(p *hostdoc.Property, v float64) error {
	if !p.IsValidValue(v) {
		return fmt.Errorf("%w: %s rejects %g", ErrPropertyNotApplicable, p.Name, v)
	}
	return p.SetDouble(v)
}
