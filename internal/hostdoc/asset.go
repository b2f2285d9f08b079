package hostdoc

import (
	"fmt"
	"strconv"
)

// PropertyKind tags the payload a Property carries.
type PropertyKind int

const (
	PropertyDouble   PropertyKind = iota // unitless real
	PropertyDistance                     // length in feet
	PropertyBoolean
	PropertyString
	PropertyReference // no scalar value, only connected assets
)

func (k PropertyKind) String() string {
	switch k {
	case PropertyDouble:
		return "double"
	case PropertyDistance:
		return "distance"
	case PropertyBoolean:
		return "boolean"
	case PropertyString:
		return "string"
	case PropertyReference:
		return "reference"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Asset is a named property tree. A connected sub-asset is named after its schema.
type Asset struct {
	Name       string      `yaml:"name"`
	Properties []*Property `yaml:"properties,omitempty"`
}

// Property is one node of an asset tree. Scalar kinds may still have connected
// assets (a color slot with a bitmap plugged into it); references only have those.
type Property struct {
	Name      string       `yaml:"name"`
	Kind      PropertyKind `yaml:"kind"`
	Double    float64      `yaml:"double,omitempty"`
	Bool      bool         `yaml:"bool,omitempty"`
	Str       string       `yaml:"str,omitempty"`
	Min       *float64     `yaml:"min,omitempty"`
	Max       *float64     `yaml:"max,omitempty"`
	Required  bool         `yaml:"required,omitempty"`
	Connected []*Asset     `yaml:"connected,omitempty"`

	scope *EditScope
}

// Size returns the number of top-level properties.
func (a *Asset) Size() int { return len(a.Properties) }

// Get returns the top-level property at i.
func (a *Asset) Get(i int) *Property {
	if i < 0 || i >= len(a.Properties) {
		return nil
	}
	return a.Properties[i]
}

// FindByName returns the top-level property called name, or nil.
func (a *Asset) FindByName(name string) *Property {
	for _, p := range a.Properties {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Walk visits every property depth-first, descending into connected assets.
// Returning false from fn stops the walk.
func (a *Asset) Walk(fn func(owner *Asset, p *Property) bool) bool {
	for _, p := range a.Properties {
		if !fn(a, p) {
			return false
		}
		for _, c := range p.Connected {
			if !c.Walk(fn) {
				return false
			}
		}
	}
	return true
}

// NumberOfConnectedProperties returns the count of connected sub-assets.
func (p *Property) NumberOfConnectedProperties() int { return len(p.Connected) }

// ConnectedAsset returns the connected sub-asset at i, or nil.
func (p *Property) ConnectedAsset(i int) *Asset {
	if i < 0 || i >= len(p.Connected) {
		return nil
	}
	return p.Connected[i]
}

// IsValidValue reports whether v is accepted by a double or distance property.
func (p *Property) IsValidValue(v float64) bool {
	if p.Kind != PropertyDouble && p.Kind != PropertyDistance {
		return false
	}
	if p.Min != nil && v < *p.Min {
		return false
	}
	if p.Max != nil && v > *p.Max {
		return false
	}
	return true
}

// IsValidString reports whether s is accepted by a string property.
func (p *Property) IsValidString(s string) bool {
	if p.Kind != PropertyString {
		return false
	}
	return !p.Required || s != ""
}

// Writable reports whether the property belongs to an active edit scope.
func (p *Property) Writable() bool {
	return p.scope != nil && p.scope.active
}

// SetDouble writes a double or distance value.
func (p *Property) SetDouble(v float64) error {
	if err := p.checkWrite(PropertyDouble, PropertyDistance); err != nil {
		return err
	}
	if !p.IsValidValue(v) {
		return fmt.Errorf("%w: %s=%g", ErrInvalidValue, p.Name, v)
	}
	p.Double = v
	return nil
}

// SetBool writes a boolean value.
func (p *Property) SetBool(v bool) error {
	if err := p.checkWrite(PropertyBoolean); err != nil {
		return err
	}
	p.Bool = v
	return nil
}

// SetString writes a string value.
func (p *Property) SetString(v string) error {
	if err := p.checkWrite(PropertyString); err != nil {
		return err
	}
	if !p.IsValidString(v) {
		return fmt.Errorf("%w: %s=%q", ErrInvalidValue, p.Name, v)
	}
	p.Str = v
	return nil
}

// AddConnectedAsset plugs a default-populated asset of the given schema into p.
func (p *Property) AddConnectedAsset(schema string) (*Asset, error) {
	if !p.Writable() {
		return nil, fmt.Errorf("%w: %s", ErrReadOnly, p.Name)
	}
	a, err := NewSchemaAsset(schema)
	if err != nil {
		return nil, err
	}
	bindScope(a, p.scope)
	p.Connected = append(p.Connected, a)
	return a, nil
}

func (p *Property) checkWrite(kinds ...PropertyKind) error {
	if !p.Writable() {
		return fmt.Errorf("%w: %s", ErrReadOnly, p.Name)
	}
	for _, k := range kinds {
		if p.Kind == k {
			return nil
		}
	}
	return fmt.Errorf("%w: %s is %s", ErrWrongKind, p.Name, p.Kind)
}

func bindScope(a *Asset, s *EditScope) {
	a.Walk(func(_ *Asset, p *Property) bool {
		p.scope = s
		return true
	})
}

func rangeOf(lo, hi float64) (*float64, *float64) {
	return &lo, &hi
}
