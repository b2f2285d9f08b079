// Package hostdoc is an in-process model of the CAD host document: elements,
// transactions, regeneration and appearance-asset edit scopes.
//
// The document is not safe for concurrent use.
package hostdoc

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tiendc/go-deepcopy"

	"material-texture-bench/internal/geometry"
)

// docState holds everything a transaction snapshot must capture.
type docState struct {
	Shapes    []*DirectShape            `yaml:"shapes"`
	Materials []*Material               `yaml:"materials"`
	Assets    []*AppearanceAssetElement `yaml:"appearance_assets"`
	View      View                      `yaml:"active_view"`
}

// Document is a host document.
type Document struct {
	st          docState
	tx          *Transaction
	scope       *EditScope
	regenerated int
	dirty       bool
}

// New returns an empty document with a default 3D view.
func New() *Document {
	return &Document{st: docState{View: View{Name: "{3D}"}}}
}

// NewWithLibrary returns a document seeded with the default appearance library.
func NewWithLibrary() *Document {
	d := New()
	d.st.Assets = append(d.st.Assets,
		&AppearanceAssetElement{ID: uuid.New(), Name: "Wood - Oak", Asset: newBitmapSlotAsset("Wood - Oak", "wood_color", "Woods & Plastics.Finish Carpentry.Wood.Oak.jpg")},
		&AppearanceAssetElement{ID: uuid.New(), Name: "Ceramic - Tile", Asset: newBitmapSlotAsset("Ceramic - Tile", "ceramic_color", "Finishes.Flooring.Tile.Square.jpg")},
		&AppearanceAssetElement{ID: uuid.New(), Name: "Generic", Asset: NewGenericAsset("Generic")},
	)
	return d
}

// Regenerations returns how many times Regenerate ran.
func (d *Document) Regenerations() int { return d.regenerated }

// NeedsRegeneration reports whether elements were deleted since the last regeneration.
func (d *Document) NeedsRegeneration() bool { return d.dirty }

// ActiveView returns the active view.
func (d *Document) ActiveView() View { return d.st.View }

// Collect returns the ids of elements of kind whose name satisfies pred, in
// creation order. A nil pred matches everything.
func (d *Document) Collect(kind Kind, pred func(name string) bool) []ElementID {
	var out []ElementID
	add := func(id ElementID, name string) {
		if pred == nil || pred(name) {
			out = append(out, id)
		}
	}
	switch kind {
	case KindDirectShape:
		for _, s := range d.st.Shapes {
			add(s.ID, s.Name)
		}
	case KindMaterial:
		for _, m := range d.st.Materials {
			add(m.ID, m.Name)
		}
	case KindAppearanceAsset:
		for _, a := range d.st.Assets {
			add(a.ID, a.Name)
		}
	}
	return out
}

// Count returns the number of elements of kind.
func (d *Document) Count(kind Kind) int {
	return len(d.Collect(kind, nil))
}

// Material returns a copy of the material with id.
func (d *Document) Material(id ElementID) (Material, bool) {
	if m := d.material(id); m != nil {
		return *m, true
	}
	return Material{}, false
}

// MaterialByName returns a copy of the material called name.
func (d *Document) MaterialByName(name string) (Material, bool) {
	for _, m := range d.st.Materials {
		if m.Name == name {
			return *m, true
		}
	}
	return Material{}, false
}

// DirectShape returns a copy of the shape element with id.
func (d *Document) DirectShape(id ElementID) (DirectShape, bool) {
	for _, s := range d.st.Shapes {
		if s.ID == id {
			var out DirectShape
			if err := deepcopy.Copy(&out, s); err != nil {
				return DirectShape{}, false
			}
			return out, true
		}
	}
	return DirectShape{}, false
}

// AppearanceAsset returns a read-only copy of the asset element with id.
func (d *Document) AppearanceAsset(id ElementID) (AppearanceAssetElement, bool) {
	a := d.asset(id)
	if a == nil {
		return AppearanceAssetElement{}, false
	}
	out, err := cloneAssetElement(a)
	if err != nil {
		return AppearanceAssetElement{}, false
	}
	return *out, true
}

// AppearanceAssetByName returns the id of the asset element called exactly name.
func (d *Document) AppearanceAssetByName(name string) (ElementID, bool) {
	for _, a := range d.st.Assets {
		if a.Name == name {
			return a.ID, true
		}
	}
	return InvalidElementID, false
}

// CreateMaterial creates a material with host defaults.
func (d *Document) CreateMaterial(name string) (ElementID, error) {
	if err := d.requireTx(); err != nil {
		return InvalidElementID, err
	}
	if _, ok := d.MaterialByName(name); ok {
		return InvalidElementID, fmt.Errorf("%w: material %q", ErrNameInUse, name)
	}
	m := &Material{ID: uuid.New(), Name: name, Color: Color{R: 255, G: 255, B: 255}}
	d.st.Materials = append(d.st.Materials, m)
	return m.ID, nil
}

// UpdateMaterial applies fn to the material and validates the result. The id
// and name cannot be changed through fn.
func (d *Document) UpdateMaterial(id ElementID, fn func(m *Material)) error {
	if err := d.requireTx(); err != nil {
		return err
	}
	m := d.material(id)
	if m == nil {
		return fmt.Errorf("%w: material %s", ErrNotFound, id)
	}
	next := *m
	fn(&next)
	next.ID, next.Name = m.ID, m.Name
	if next.Shininess < 0 || next.Shininess > 128 {
		return fmt.Errorf("%w: shininess %d", ErrInvalidValue, next.Shininess)
	}
	if next.Transparency < 0 || next.Transparency > 100 {
		return fmt.Errorf("%w: transparency %d", ErrInvalidValue, next.Transparency)
	}
	if next.AppearanceAssetID != InvalidElementID && d.asset(next.AppearanceAssetID) == nil {
		return fmt.Errorf("%w: appearance asset %s", ErrNotFound, next.AppearanceAssetID)
	}
	*m = next
	return nil
}

// DuplicateAppearanceAsset copies the asset element src under name.
func (d *Document) DuplicateAppearanceAsset(src ElementID, name string) (ElementID, error) {
	if err := d.requireTx(); err != nil {
		return InvalidElementID, err
	}
	a := d.asset(src)
	if a == nil {
		return InvalidElementID, fmt.Errorf("%w: appearance asset %s", ErrNotFound, src)
	}
	if _, ok := d.AppearanceAssetByName(name); ok {
		return InvalidElementID, fmt.Errorf("%w: appearance asset %q", ErrNameInUse, name)
	}
	dup, err := cloneAssetElement(a)
	if err != nil {
		return InvalidElementID, err
	}
	dup.ID, dup.Name, dup.Asset.Name = uuid.New(), name, name
	d.st.Assets = append(d.st.Assets, dup)
	return dup.ID, nil
}

// CreateAppearanceAsset adds an asset element holding a copy of asset.
func (d *Document) CreateAppearanceAsset(name string, asset *Asset) (ElementID, error) {
	if err := d.requireTx(); err != nil {
		return InvalidElementID, err
	}
	if _, ok := d.AppearanceAssetByName(name); ok {
		return InvalidElementID, fmt.Errorf("%w: appearance asset %q", ErrNameInUse, name)
	}
	el, err := cloneAssetElement(&AppearanceAssetElement{Name: name, Asset: asset})
	if err != nil {
		return InvalidElementID, err
	}
	el.ID = uuid.New()
	d.st.Assets = append(d.st.Assets, el)
	return el.ID, nil
}

// CreateDirectShape creates a shape element. Every face material must exist.
func (d *Document) CreateDirectShape(category, name string, shape geometry.Shape) (ElementID, error) {
	if err := d.requireTx(); err != nil {
		return InvalidElementID, err
	}
	for _, id := range shape.MaterialIDs() {
		if id != InvalidElementID && d.material(id) == nil {
			return InvalidElementID, fmt.Errorf("%w: face material %s", ErrNotFound, id)
		}
	}
	s := &DirectShape{ID: uuid.New(), Name: name, Category: category}
	if err := deepcopy.Copy(&s.Shape, &shape); err != nil {
		return InvalidElementID, err
	}
	d.st.Shapes = append(d.st.Shapes, s)
	return s.ID, nil
}

// Delete removes the given elements. Unknown ids are reported but do not stop
// the others from being deleted.
func (d *Document) Delete(ids []ElementID) error {
	if err := d.requireTx(); err != nil {
		return err
	}
	drop := make(map[ElementID]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	found := make(map[ElementID]struct{}, len(ids))
	keep := func(id ElementID) bool {
		if _, ok := drop[id]; ok {
			found[id] = struct{}{}
			return false
		}
		return true
	}
	d.st.Shapes = filter(d.st.Shapes, func(s *DirectShape) bool { return keep(s.ID) })
	d.st.Materials = filter(d.st.Materials, func(m *Material) bool { return keep(m.ID) })
	d.st.Assets = filter(d.st.Assets, func(a *AppearanceAssetElement) bool { return keep(a.ID) })
	if len(found) > 0 {
		d.dirty = true
	}

	var errs []error
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrNotFound, id))
		}
	}
	return errors.Join(errs...)
}

// Regenerate resolves dangling references left by deletions and refreshes
// stale asset renderings.
func (d *Document) Regenerate() {
	for _, m := range d.st.Materials {
		if m.AppearanceAssetID != InvalidElementID && d.asset(m.AppearanceAssetID) == nil {
			m.AppearanceAssetID = InvalidElementID
		}
	}
	for _, s := range d.st.Shapes {
		for i := range s.Shape.Faces {
			if id := s.Shape.Faces[i].MaterialID; id != InvalidElementID && d.material(id) == nil {
				s.Shape.Faces[i].MaterialID = InvalidElementID
			}
		}
	}
	for _, a := range d.st.Assets {
		a.RenderStale = false
	}
	d.dirty = false
	d.regenerated++
}

// RefreshActiveView redraws the active view. It is not allowed while a
// transaction is open.
func (d *Document) RefreshActiveView() error {
	if d.tx != nil {
		return fmt.Errorf("%w: refresh view inside %q", ErrTransactionActive, d.tx.name)
	}
	d.st.View.Refreshes++
	return nil
}

func (d *Document) requireTx() error {
	if d.tx == nil {
		return ErrNoTransaction
	}
	return nil
}

func (d *Document) material(id ElementID) *Material {
	for _, m := range d.st.Materials {
		if m.ID == id {
			return m
		}
	}
	return nil
}

func (d *Document) asset(id ElementID) *AppearanceAssetElement {
	for _, a := range d.st.Assets {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func cloneAssetElement(a *AppearanceAssetElement) (*AppearanceAssetElement, error) {
	var out AppearanceAssetElement
	if err := deepcopy.Copy(&out, a); err != nil {
		return nil, fmt.Errorf("hostdoc: copy asset %q: %w", a.Name, err)
	}
	if out.Asset != nil {
		bindScope(out.Asset, nil)
	}
	return &out, nil
}

func filter[T any](in []T, keep func(T) bool) []T {
	out := in[:0]
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	clear(in[len(out):])
	return out
}
