package hostdoc

import (
	"github.com/google/uuid"

	"material-texture-bench/internal/geometry"
)

// ElementID identifies an element for the lifetime of the document.
type ElementID = uuid.UUID

// InvalidElementID is the zero id, used for unset references.
var InvalidElementID = uuid.Nil

// Kind is an element kind the document can be queried by.
type Kind string

const (
	KindDirectShape     Kind = "direct_shape"
	KindMaterial        Kind = "material"
	KindAppearanceAsset Kind = "appearance_asset"
)

// CategoryGenericModel is the category generated faces are placed in.
const CategoryGenericModel = "GenericModel"

// Color is an 8-bit RGB color.
type Color struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
}

// DirectShape is a free-form geometry element.
type DirectShape struct {
	ID       ElementID      `yaml:"id"`
	Name     string         `yaml:"name"`
	Category string         `yaml:"category"`
	Shape    geometry.Shape `yaml:"shape"`
}

// Material is a document material.
type Material struct {
	ID                            ElementID `yaml:"id"`
	Name                          string    `yaml:"name"`
	Color                         Color     `yaml:"color"`
	Shininess                     int       `yaml:"shininess"`
	Transparency                  int       `yaml:"transparency"`
	UseRenderAppearanceForShading bool      `yaml:"use_render_appearance_for_shading"`
	AppearanceAssetID             ElementID `yaml:"appearance_asset_id"`
}

// HasAppearanceAsset reports whether an appearance asset is bound.
func (m Material) HasAppearanceAsset() bool {
	return m.AppearanceAssetID != InvalidElementID
}

// AppearanceAssetElement owns an appearance asset tree.
type AppearanceAssetElement struct {
	ID          ElementID `yaml:"id"`
	Name        string    `yaml:"name"`
	Asset       *Asset    `yaml:"asset"`
	RenderStale bool      `yaml:"render_stale,omitempty"`
}

// View is the active view.
type View struct {
	Name      string `yaml:"name"`
	Refreshes int    `yaml:"refreshes"`
}
