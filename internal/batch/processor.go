// Package batch runs the face/material generation pipeline against a document.
package batch

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"material-texture-bench/internal/appearance"
	"material-texture-bench/internal/cleanup"
	"material-texture-bench/internal/geometry"
	"material-texture-bench/internal/hostdoc"
	"material-texture-bench/internal/logging"
	"material-texture-bench/internal/material"
	"material-texture-bench/internal/naming"
	"material-texture-bench/internal/texture"
)

// Transaction names, as they appear in the document's undo history.
const (
	TxCleanup  = "delete old faces"
	TxCreate   = "create faces and materials"
	TxMaterial = "save material"
)

// Face layout: a square of FaceSize feet at (FaceOrigin, FaceOrigin), stacked
// FaceSpacing feet apart.
const (
	FaceOrigin  = 100.0
	FaceSize    = 10.0
	FaceSpacing = 3.0
)

// Config holds the inputs of one run.
type Config struct {
	AddinDir    string
	Template    *texture.Template
	Count       int
	Previews    bool
	PreviewSize int
	Overrides   map[string]appearance.Value
	Log         *logging.Logger
}

// Face is one generated face and its material.
type Face struct {
	Index     int
	ShapeID   hostdoc.ElementID
	Material  material.Record
	ImagePath string
	Preview   string
}

// Report holds the outcome of a run.
type Report struct {
	Cleanup       cleanup.Result
	CleanupErr    error
	RemovedCopies int
	Faces         []Face
	Outcomes      []appearance.Outcome
	Regenerated   bool          // cleanup deleted something and the document was regenerated
	Lookups       int           // template scans in the texture phase
	Elapsed       time.Duration // texture phase only
}

// Message is the line shown to the user at the end of a run.
func (r Report) Message() string {
	secs := float64(r.Elapsed.Milliseconds()) / 1000.0
	return "Texture Material properties applied in " + strconv.FormatFloat(secs, 'f', -1, 64) + " seconds"
}

// Run removes the previous run's entities, creates cfg.Count faces with their
// materials, then applies the texture bundle to every material. Each step is
// its own transaction; a failure in the last one rolls back only that one.
func Run(doc *hostdoc.Document, cfg Config) (Report, error) {
	log := logging.OrNop(cfg.Log)
	var rep Report

	if err := removeOld(doc, cfg, log, &rep); err != nil {
		return rep, err
	}

	faces, err := createFaces(doc, cfg, log)
	if err != nil {
		return rep, err
	}
	rep.Faces = faces

	outcomes, lookups, elapsed, err := applyTextures(doc, cfg, log, faces)
	rep.Outcomes, rep.Lookups, rep.Elapsed = outcomes, lookups, elapsed
	if err != nil {
		return rep, err
	}
	return rep, nil
}

func removeOld(doc *hostdoc.Document, cfg Config, log *logging.Logger, rep *Report) error {
	tx, err := doc.Begin(TxCleanup)
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}
	defer tx.Rollback()

	planner := cleanup.New(log)
	plan := planner.Plan(doc)
	rep.Cleanup, rep.CleanupErr = planner.Execute(doc, plan)
	if rep.CleanupErr != nil {
		log.Warn("cleanup incomplete", "error", rep.CleanupErr)
	}

	if doc.NeedsRegeneration() {
		doc.Regenerate()
		rep.Regenerated = true
		log.Debug("document regenerated", "regenerations", doc.Regenerations())
	}
	if _, err := tx.Commit(); err != nil {
		return fmt.Errorf("batch: commit %q: %w", TxCleanup, err)
	}
	if err := doc.RefreshActiveView(); err != nil {
		return fmt.Errorf("batch: %w", err)
	}
	log.Info("previous faces removed", "planned", rep.Cleanup.Planned, "deleted", rep.Cleanup.Deleted)

	if cfg.AddinDir != "" {
		copies, err := texture.ScanCopies(cfg.AddinDir)
		if err != nil {
			log.Warn("image copies not scanned", "error", err)
			return nil
		}
		n, err := copies.RemoveBeyond(cfg.Count)
		rep.RemovedCopies = n
		if err != nil {
			log.Warn("image copies not removed", "error", err)
		}
	}
	return nil
}

func createFaces(doc *hostdoc.Document, cfg Config, log *logging.Logger) ([]Face, error) {
	tx, err := doc.Begin(TxCreate)
	if err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}
	defer tx.Rollback()

	factory := material.NewFactory(doc, log)
	faces := make([]Face, 0, max(cfg.Count, 0))
	for i := 0; i < cfg.Count; i++ {
		name := naming.NameFor(i)
		face := Face{Index: i}

		if cfg.Template != nil {
			if face.ImagePath, err = cfg.Template.CopyTo(cfg.AddinDir, name); err != nil {
				return nil, fmt.Errorf("batch: face %d: %w", i, err)
			}
			if cfg.Previews {
				if face.Preview, err = cfg.Template.WritePreview(cfg.AddinDir, name, cfg.PreviewSize); err != nil {
					return nil, fmt.Errorf("batch: face %d: %w", i, err)
				}
			}
		} else {
			face.ImagePath = texture.CopyPath(cfg.AddinDir, name)
		}

		if face.Material, err = factory.GetOrCreate(i); err != nil {
			return nil, fmt.Errorf("batch: face %d: %w", i, err)
		}

		z := float64(i) * FaceSpacing
		var shape geometry.Shape
		if shape, err = geometry.BuildFace(geometry.Quad(FaceOrigin, FaceOrigin, FaceSize, z), face.Material.ID); err != nil {
			return nil, fmt.Errorf("batch: face %d: %w", i, err)
		}
		if face.ShapeID, err = doc.CreateDirectShape(hostdoc.CategoryGenericModel, name, shape); err != nil {
			return nil, fmt.Errorf("batch: face %d: %w", i, err)
		}
		faces = append(faces, face)
	}

	// Faces must be committed before their materials can be edited.
	if _, err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("batch: commit %q: %w", TxCreate, err)
	}
	log.Info("faces created", "count", len(faces))
	return faces, nil
}

func applyTextures(doc *hostdoc.Document, cfg Config, log *logging.Logger, faces []Face) ([]appearance.Outcome, int, time.Duration, error) {
	tx, err := doc.Begin(TxMaterial)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("batch: %w", err)
	}
	defer tx.Rollback()

	start := time.Now()
	cache := appearance.NewTemplateCache(doc, log)
	if len(faces) > 0 {
		if _, err := cache.Template(); err != nil {
			return nil, cache.Lookups(), 0, err
		}
	}
	editor := appearance.NewEditor(doc, cache, log)

	prog := newProgress(log, len(faces), start)
	outcomes := make([]appearance.Outcome, 0, len(faces))
	for i := range faces {
		f := &faces[i]
		props := Properties(f.ImagePath, cfg.Overrides)
		out, err := editor.Apply(&f.Material, props)
		if err != nil {
			return outcomes, cache.Lookups(), time.Since(start), fmt.Errorf("batch: %s: %w", f.Material.Name, err)
		}
		outcomes = append(outcomes, out)
		prog.tick(i + 1)
	}

	if _, err := tx.Commit(); err != nil {
		return outcomes, cache.Lookups(), time.Since(start), fmt.Errorf("batch: commit %q: %w", TxMaterial, err)
	}
	log.Debug("textures applied", "materials", len(outcomes), "template_lookups", cache.Lookups())
	return outcomes, cache.Lookups(), time.Since(start), nil
}

// Properties returns the default bundle for imagePath with overrides applied
// in key order.
func Properties(imagePath string, overrides map[string]appearance.Value) *appearance.Properties {
	props := appearance.DefaultProperties(imagePath)
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		props.Set(k, overrides[k])
	}
	return props
}

// progress logs throughput at most every two seconds.
type progress struct {
	log   *logging.Logger
	total int
	start time.Time
	last  time.Time
}

func newProgress(log *logging.Logger, total int, start time.Time) *progress {
	return &progress{log: log, total: total, start: start, last: start}
}

func (p *progress) tick(done int) {
	now := time.Now()
	if now.Sub(p.last) < 2*time.Second {
		return
	}
	p.last = now
	rate := float64(done) / now.Sub(p.start).Seconds()
	p.log.Info("applying textures", "done", done, "total", p.total, "per_sec", fmt.Sprintf("%.1f", rate))
}
