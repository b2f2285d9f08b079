// Package geometry builds tessellated shapes for direct-shape elements.
package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
)

var (
	// ErrBuilderState indicates a builder call out of order.
	ErrBuilderState = errors.New("geometry: builder state")
	// ErrDegenerateFace indicates a face with too few vertices or zero area.
	ErrDegenerateFace = errors.New("geometry: degenerate face")
	// ErrNonPlanarFace indicates a face whose vertices do not share a plane.
	ErrNonPlanarFace = errors.New("geometry: non-planar face")
)

// Outcome tells what the builder managed to produce.
type Outcome string

const (
	OutcomeSolid Outcome = "solid"
	OutcomeMesh  Outcome = "mesh"
)

// Face is one planar polygon bound to a material.
type Face struct {
	Vertices   []XYZ     `yaml:"vertices"`
	MaterialID uuid.UUID `yaml:"material_id"`
}

// Shape is the built geometry.
type Shape struct {
	Outcome Outcome `yaml:"outcome"`
	Faces   []Face  `yaml:"faces"`
}

// MaterialIDs returns the distinct material ids used by the shape's faces.
func (s Shape) MaterialIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(s.Faces))
	var out []uuid.UUID
	for _, f := range s.Faces {
		if _, ok := seen[f.MaterialID]; ok {
			continue
		}
		seen[f.MaterialID] = struct{}{}
		out = append(out, f.MaterialID)
	}
	return out
}

// Builder accumulates faces in connected face sets.
//
// A set opened as closed becomes a solid only when every edge is shared by
// exactly two faces; otherwise the builder falls back to a mesh.
type Builder struct {
	sets    [][]Face
	closed  []bool
	open    bool
	built   bool
	outcome Outcome
}

// OpenConnectedFaceSet starts a new face set.
func (b *Builder) OpenConnectedFaceSet(closed bool) error {
	if b.open || b.built {
		return fmt.Errorf("%w: open while a set is open or after build", ErrBuilderState)
	}
	b.sets = append(b.sets, nil)
	b.closed = append(b.closed, closed)
	b.open = true
	return nil
}

// AddFace validates and appends f to the open set.
func (b *Builder) AddFace(f Face) error {
	if !b.open {
		return fmt.Errorf("%w: no open face set", ErrBuilderState)
	}
	if err := validateFace(f); err != nil {
		return err
	}
	face := Face{Vertices: append([]XYZ(nil), f.Vertices...), MaterialID: f.MaterialID}
	b.sets[len(b.sets)-1] = append(b.sets[len(b.sets)-1], face)
	return nil
}

// CloseConnectedFaceSet ends the open set.
func (b *Builder) CloseConnectedFaceSet() error {
	if !b.open {
		return fmt.Errorf("%w: no open face set", ErrBuilderState)
	}
	b.open = false
	return nil
}

// Build finalizes the builder.
func (b *Builder) Build() error {
	if b.open || b.built {
		return fmt.Errorf("%w: build with an open set or twice", ErrBuilderState)
	}
	if len(b.sets) == 0 {
		return fmt.Errorf("%w: nothing to build", ErrBuilderState)
	}
	b.outcome = OutcomeSolid
	for i, set := range b.sets {
		if !b.closed[i] || !isClosedShell(set) {
			b.outcome = OutcomeMesh
		}
	}
	b.built = true
	return nil
}

// Result returns the built shape.
func (b *Builder) Result() (Shape, error) {
	if !b.built {
		return Shape{}, fmt.Errorf("%w: result before build", ErrBuilderState)
	}
	var faces []Face
	for _, set := range b.sets {
		faces = append(faces, set...)
	}
	return Shape{Outcome: b.outcome, Faces: faces}, nil
}

// Quad returns the four corners of an axis-aligned square in the XY plane at height z.
func Quad(minX, minY, size, z float64) []XYZ {
	return []XYZ{
		{minX, minY, z},
		{minX, minY + size, z},
		{minX + size, minY + size, z},
		{minX + size, minY, z},
	}
}

// BuildFace builds a single-face shape, as used for each generated test face.
func BuildFace(vertices []XYZ, materialID uuid.UUID) (Shape, error) {
	var b Builder
	if err := b.OpenConnectedFaceSet(true); err != nil {
		return Shape{}, err
	}
	if err := b.AddFace(Face{Vertices: vertices, MaterialID: materialID}); err != nil {
		return Shape{}, err
	}
	if err := b.CloseConnectedFaceSet(); err != nil {
		return Shape{}, err
	}
	if err := b.Build(); err != nil {
		return Shape{}, err
	}
	return b.Result()
}

func validateFace(f Face) error {
	if len(f.Vertices) < 3 {
		return fmt.Errorf("%w: %d vertices", ErrDegenerateFace, len(f.Vertices))
	}
	for i := range f.Vertices {
		if f.Vertices[i].IsAlmostEqualTo(f.Vertices[(i+1)%len(f.Vertices)]) {
			return fmt.Errorf("%w: coincident vertices at %d", ErrDegenerateFace, i)
		}
	}
	n := polygonNormal(f.Vertices)
	area := n.Len() / 2
	if area < Tolerance*Tolerance {
		return fmt.Errorf("%w: zero area", ErrDegenerateFace)
	}
	unit := XYZ{n[0] / (2 * area), n[1] / (2 * area), n[2] / (2 * area)}
	origin := f.Vertices[0]
	for _, v := range f.Vertices[1:] {
		if math.Abs(v.Sub(origin).Dot(unit)) > Tolerance {
			return ErrNonPlanarFace
		}
	}
	return nil
}

type edgeKey [2]XYZ

func isClosedShell(faces []Face) bool {
	if len(faces) < 4 {
		return false
	}
	counts := make(map[edgeKey]int)
	for _, f := range faces {
		for i := range f.Vertices {
			a, b := f.Vertices[i], f.Vertices[(i+1)%len(f.Vertices)]
			if lessXYZ(b, a) {
				a, b = b, a
			}
			counts[edgeKey{a, b}]++
		}
	}
	for _, c := range counts {
		if c != 2 {
			return false
		}
	}
	return true
}

func lessXYZ(a, b XYZ) bool {
	for i := 0; i < 3; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
