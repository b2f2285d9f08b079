package hostdoc

import "fmt"

// EditScope makes one appearance asset writable. The asset handed out by Start
// is a working copy; Commit writes it back, Close discards it if uncommitted.
type EditScope struct {
	doc     *Document
	assetID ElementID
	working *Asset
	active  bool
	done    bool
}

// OpenEditScope creates an edit scope. Only one may exist per document until closed.
func (d *Document) OpenEditScope() (*EditScope, error) {
	if d.scope != nil {
		return nil, ErrEditScopeActive
	}
	s := &EditScope{doc: d}
	d.scope = s
	return s, nil
}

// Start returns the writable asset of the asset element id.
func (s *EditScope) Start(id ElementID) (*Asset, error) {
	if s.done || s.active {
		return nil, fmt.Errorf("%w: start", ErrEditScopeClosed)
	}
	el := s.doc.asset(id)
	if el == nil {
		return nil, fmt.Errorf("%w: appearance asset %s", ErrNotFound, id)
	}
	cp, err := cloneAssetElement(el)
	if err != nil {
		return nil, err
	}
	bindScope(cp.Asset, s)
	s.assetID, s.working, s.active = id, cp.Asset, true
	return s.working, nil
}

// isActive reports whether the scope holds a started asset.
func (s *EditScope) isActive() bool { return s.active }

// Commit writes the working asset back into the document and ends the scope.
// With applyNow the rendering is updated at once; otherwise it stays stale
// until the next regeneration.
func (s *EditScope) Commit(applyNow bool) error {
	if !s.active {
		return fmt.Errorf("%w: commit", ErrEditScopeClosed)
	}
	if err := s.doc.requireTx(); err != nil {
		return err
	}
	el := s.doc.asset(s.assetID)
	if el == nil {
		s.discard()
		return fmt.Errorf("%w: appearance asset %s", ErrNotFound, s.assetID)
	}
	bindScope(s.working, nil)
	cp, err := cloneAssetElement(&AppearanceAssetElement{Asset: s.working})
	if err != nil {
		return err
	}
	el.Asset = cp.Asset
	el.RenderStale = !applyNow
	s.discard()
	return nil
}

// Close ends the scope, discarding uncommitted changes. It is safe to call
// more than once.
func (s *EditScope) Close() error {
	s.discard()
	return nil
}

func (s *EditScope) discard() {
	if s.working != nil {
		bindScope(s.working, nil)
	}
	s.working, s.active, s.done = nil, false, true
	if s.doc.scope == s {
		s.doc.scope = nil
	}
}
