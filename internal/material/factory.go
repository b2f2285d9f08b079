// Package material creates the per-face materials of a run.
package material

import (
	"fmt"

	"material-texture-bench/internal/hostdoc"
	"material-texture-bench/internal/logging"
	"material-texture-bench/internal/naming"
)

// Defaults applied to newly created materials.
var (
	DefaultColor        = hostdoc.Color{R: 125, G: 125, B: 125}
	DefaultShininess    = 0
	DefaultTransparency = 0
)

// Record is a generated material.
type Record struct {
	Index               int
	ID                  hostdoc.ElementID
	Name                string
	Color               hostdoc.Color
	Shininess           int
	Transparency        int
	UseRenderAppearance bool
	AppearanceAssetID   hostdoc.ElementID
}

// HasAppearanceAsset reports whether an appearance asset is bound.
func (r Record) HasAppearanceAsset() bool {
	return r.AppearanceAssetID != hostdoc.InvalidElementID
}

// FromHost converts a host material into a record for index.
func FromHost(index int, m hostdoc.Material) Record {
	return Record{
		Index:               index,
		ID:                  m.ID,
		Name:                m.Name,
		Color:               m.Color,
		Shininess:           m.Shininess,
		Transparency:        m.Transparency,
		UseRenderAppearance: m.UseRenderAppearanceForShading,
		AppearanceAssetID:   m.AppearanceAssetID,
	}
}

// Document is the part of the host document the factory needs.
type Document interface {
	MaterialByName(name string) (hostdoc.Material, bool)
	CreateMaterial(name string) (hostdoc.ElementID, error)
	UpdateMaterial(id hostdoc.ElementID, fn func(m *hostdoc.Material)) error
	Material(id hostdoc.ElementID) (hostdoc.Material, bool)
}

// Factory ensures one material per index.
type Factory struct {
	doc Document
	log *logging.Logger
}

// NewFactory returns a factory over doc; log may be nil.
func NewFactory(doc Document, log *logging.Logger) *Factory {
	return &Factory{doc: doc, log: logging.OrNop(log)}
}

// GetOrCreate returns the material for index, creating it with the defaults
// when absent. An existing material is returned untouched. It must run inside
// the transaction that also creates the geometry referencing it.
func (f *Factory) GetOrCreate(index int) (Record, error) {
	name := naming.NameFor(index)
	if m, ok := f.doc.MaterialByName(name); ok {
		f.log.Debug("material: reused", "name", name)
		return FromHost(index, m), nil
	}

	id, err := f.doc.CreateMaterial(name)
	if err != nil {
		return Record{}, fmt.Errorf("material: create %s: %w", name, err)
	}
	err = f.doc.UpdateMaterial(id, func(m *hostdoc.Material) {
		m.Color = DefaultColor
		m.Shininess = DefaultShininess
		m.Transparency = DefaultTransparency
		m.UseRenderAppearanceForShading = true
	})
	if err != nil {
		return Record{}, fmt.Errorf("material: set defaults %s: %w", name, err)
	}
	m, ok := f.doc.Material(id)
	if !ok {
		return Record{}, fmt.Errorf("material: %s vanished after create: %w", name, hostdoc.ErrNotFound)
	}
	return FromHost(index, m), nil
}
