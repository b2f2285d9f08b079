package appearance

import (
	"errors"
	"fmt"
	"strings"

	"material-texture-bench/internal/hostdoc"
	"material-texture-bench/internal/logging"
)

// GenericMarker is the substring that identifies the template asset.
const GenericMarker = "Generic"

// TemplateDocument is the part of the host document the template cache needs.
type TemplateDocument interface {
	Collect(kind hostdoc.Kind, pred func(name string) bool) []hostdoc.ElementID
	DuplicateAppearanceAsset(src hostdoc.ElementID, name string) (hostdoc.ElementID, error)
	AppearanceAssetByName(name string) (hostdoc.ElementID, bool)
}

// TemplateCache resolves the generic template once and duplicates it per
// material. A cache lives for one command invocation.
type TemplateCache struct {
	doc      TemplateDocument
	log      *logging.Logger
	template hostdoc.ElementID
	resolved bool
	lookups  int
}

// NewTemplateCache returns an empty cache over doc; log may be nil.
func NewTemplateCache(doc TemplateDocument, log *logging.Logger) *TemplateCache {
	return &TemplateCache{doc: doc, log: logging.OrNop(log)}
}

// Template returns the generic template, scanning the document on first use.
func (c *TemplateCache) Template() (hostdoc.ElementID, error) {
	if c.resolved {
		return c.template, nil
	}
	c.lookups++
	ids := c.doc.Collect(hostdoc.KindAppearanceAsset, func(name string) bool {
		return strings.Contains(name, GenericMarker)
	})
	if len(ids) == 0 {
		return hostdoc.InvalidElementID, ErrNoGenericTemplate
	}
	c.template, c.resolved = ids[0], true
	c.log.Debug("appearance: generic template resolved", "id", c.template)
	return c.template, nil
}

// Lookups returns how many document scans Template performed.
func (c *TemplateCache) Lookups() int { return c.lookups }

// DuplicateForMaterial copies the template under name. When the name is
// already taken, the existing asset of that exact name is reused instead.
func (c *TemplateCache) DuplicateForMaterial(name string) (hostdoc.ElementID, error) {
	tmpl, err := c.Template()
	if err != nil {
		return hostdoc.InvalidElementID, err
	}

	id, err := c.doc.DuplicateAppearanceAsset(tmpl, name)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, hostdoc.ErrNameInUse) {
		return hostdoc.InvalidElementID, fmt.Errorf("appearance: duplicate template as %s: %w", name, err)
	}

	existing, ok := c.doc.AppearanceAssetByName(name)
	if !ok {
		return hostdoc.InvalidElementID, fmt.Errorf("%w: %s", ErrNoAppearanceAsset, name)
	}
	c.log.Warn("appearance: name collision, reusing existing asset", "name", name, "id", existing)
	return existing, nil
}
