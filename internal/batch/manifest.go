package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ManifestEntry represents one face in the output manifest.
type ManifestEntry struct {
	Index           int    `json:"index"`
	Name            string `json:"name"`
	ShapeID         string `json:"shape_id"`
	MaterialID      string `json:"material_id"`
	AppearanceAsset string `json:"appearance_asset_id"`
	Image           string `json:"image"`
	Preview         string `json:"preview,omitempty"`
}

// WriteManifest writes the generated faces to path as JSON.
func WriteManifest(path string, faces []Face) error {
	entries := make([]ManifestEntry, len(faces))
	for i, f := range faces {
		entries[i] = ManifestEntry{
			Index:           f.Index,
			Name:            f.Material.Name,
			ShapeID:         f.ShapeID.String(),
			MaterialID:      f.Material.ID.String(),
			AppearanceAsset: f.Material.AppearanceAssetID.String(),
			Image:           filepath.Base(f.ImagePath),
		}
		if f.Preview != "" {
			entries[i].Preview = filepath.Base(f.Preview)
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
