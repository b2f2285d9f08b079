package appearance

import (
	"fmt"
	"strconv"
)

// ValueKind tags a bundle value.
type ValueKind int

const (
	ValueDouble ValueKind = iota
	ValueBool
	ValueString
)

func (k ValueKind) String() string {
	switch k {
	case ValueDouble:
		return "double"
	case ValueBool:
		return "bool"
	case ValueString:
		return "string"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a typed bundle value.
type Value struct {
	Kind   ValueKind
	Double float64
	Bool   bool
	Str    string
}

// Double returns a numeric value.
func Double(v float64) Value { return Value{Kind: ValueDouble, Double: v} }

// Bool returns a boolean value.
func Bool(v bool) Value { return Value{Kind: ValueBool, Bool: v} }

// String returns a string value.
func String(v string) Value { return Value{Kind: ValueString, Str: v} }

func (v Value) String() string {
	switch v.Kind {
	case ValueDouble:
		return strconv.FormatFloat(v.Double, 'g', -1, 64)
	case ValueBool:
		return strconv.FormatBool(v.Bool)
	default:
		return strconv.Quote(v.Str)
	}
}

// ValueOf converts a loosely typed value, as read from JSON, into a Value.
func ValueOf(x any) (Value, error) {
	switch v := x.(type) {
	case float64:
		return Double(v), nil
	case float32:
		return Double(float64(v)), nil
	case int:
		return Double(float64(v)), nil
	case int64:
		return Double(float64(v)), nil
	case bool:
		return Bool(v), nil
	case string:
		return String(v), nil
	default:
		return Value{}, fmt.Errorf("appearance: unsupported value type %T", x)
	}
}

// Entry is one key/value pair of a bundle.
type Entry struct {
	Key   string
	Value Value
}

// Properties is an ordered texture property bundle. Setting an existing key
// replaces its value in place.
type Properties struct {
	entries []Entry
	index   map[string]int
}

// Set adds or replaces key.
func (p *Properties) Set(key string, v Value) *Properties {
	if p.index == nil {
		p.index = make(map[string]int)
	}
	if i, ok := p.index[key]; ok {
		p.entries[i].Value = v
		return p
	}
	p.index[key] = len(p.entries)
	p.entries = append(p.entries, Entry{Key: key, Value: v})
	return p
}

// Get returns the value of key.
func (p *Properties) Get(key string) (Value, bool) {
	if p == nil {
		return Value{}, false
	}
	i, ok := p.index[key]
	if !ok {
		return Value{}, false
	}
	return p.entries[i].Value, true
}

// Len returns the number of entries.
func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.entries)
}

// Entries returns the entries in insertion order.
func (p *Properties) Entries() []Entry {
	if p == nil {
		return nil
	}
	return append([]Entry(nil), p.entries...)
}

// DefaultProperties returns the bundle applied to every generated material:
// 5% transparency, a 10x10 ft bitmap at bitmapPath without tiling.
func DefaultProperties(bitmapPath string) *Properties {
	p := &Properties{}
	p.Set(TransparencyKey, Double(5)).
		Set(KeyRealWorldScaleX, Double(10)).
		Set(KeyRealWorldScaleY, Double(10)).
		Set(KeyBitmap, String(bitmapPath)).
		Set(KeyURepeat, Bool(false)).
		Set(KeyVRepeat, Bool(false)).
		Set(KeyWAngle, Double(0)).
		Set(KeyRealWorldOffsetX, Double(0)).
		Set(KeyRealWorldOffsetY, Double(0))
	return p
}
