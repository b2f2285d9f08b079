// Package cleanup removes the entities left behind by a previous run.
package cleanup

import (
	"errors"
	"fmt"

	"material-texture-bench/internal/hostdoc"
	"material-texture-bench/internal/logging"
	"material-texture-bench/internal/naming"
)

// Document is the part of the host document the planner needs.
type Document interface {
	Collect(kind hostdoc.Kind, pred func(name string) bool) []hostdoc.ElementID
	Delete(ids []hostdoc.ElementID) error
}

// Plan lists generated entities per kind.
type Plan struct {
	Shapes    []hostdoc.ElementID
	Materials []hostdoc.ElementID
	Assets    []hostdoc.ElementID
}

// IDs returns the union of all kinds.
func (p Plan) IDs() []hostdoc.ElementID {
	out := make([]hostdoc.ElementID, 0, p.Len())
	out = append(out, p.Shapes...)
	out = append(out, p.Materials...)
	return append(out, p.Assets...)
}

// Len returns the number of planned deletions.
func (p Plan) Len() int {
	return len(p.Shapes) + len(p.Materials) + len(p.Assets)
}

// Result reports what Execute removed.
type Result struct {
	Planned int
	Deleted int
}

// Planner selects and deletes generated entities.
type Planner struct {
	log *logging.Logger
}

// New returns a planner; log may be nil.
func New(log *logging.Logger) *Planner {
	return &Planner{log: logging.OrNop(log)}
}

// Plan scans the document for entities named by the naming convention.
func (p *Planner) Plan(doc Document) Plan {
	return Plan{
		Shapes:    doc.Collect(hostdoc.KindDirectShape, naming.IsTestEntity),
		Materials: doc.Collect(hostdoc.KindMaterial, naming.IsTestEntity),
		Assets:    doc.Collect(hostdoc.KindAppearanceAsset, naming.IsTestEntity),
	}
}

// Execute deletes the planned entities one kind at a time, so a failure in one
// kind does not keep the others. The caller owns the transaction.
func (p *Planner) Execute(doc Document, plan Plan) (Result, error) {
	res := Result{Planned: plan.Len()}
	var errs []error
	for _, group := range []struct {
		kind hostdoc.Kind
		ids  []hostdoc.ElementID
	}{
		{hostdoc.KindDirectShape, plan.Shapes},
		{hostdoc.KindMaterial, plan.Materials},
		{hostdoc.KindAppearanceAsset, plan.Assets},
	} {
		if len(group.ids) == 0 {
			continue
		}
		before := len(doc.Collect(group.kind, nil))
		err := doc.Delete(group.ids)
		removed := before - len(doc.Collect(group.kind, nil))
		res.Deleted += removed
		if err != nil {
			p.log.Warn("cleanup: delete failed", "kind", group.kind, "planned", len(group.ids), "removed", removed, "error", err)
			errs = append(errs, fmt.Errorf("cleanup: delete %s: %w", group.kind, err))
			continue
		}
		p.log.Debug("cleanup: deleted", "kind", group.kind, "count", removed)
	}
	return res, errors.Join(errs...)
}
