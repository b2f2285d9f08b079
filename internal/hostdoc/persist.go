package hostdoc

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Save writes the document to path as YAML.
func (d *Document) Save(path string) error {
	if d.tx != nil {
		return fmt.Errorf("%w: save during %q", ErrTransactionActive, d.tx.name)
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&d.st); err != nil {
		return fmt.Errorf("hostdoc: encode %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("hostdoc: encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("hostdoc: write %s: %w", path, err)
	}
	return nil
}

// Load reads a document saved by Save.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("hostdoc: read %s: %w", path, err)
	}
	d := New()
	if err := yaml.Unmarshal(data, &d.st); err != nil {
		return nil, fmt.Errorf("hostdoc: parse %s: %w", path, err)
	}
	if d.st.View.Name == "" {
		d.st.View.Name = "{3D}"
	}
	return d, nil
}

// Open loads path, or returns a new document with the default library when
// path does not exist.
func Open(path string) (*Document, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return NewWithLibrary(), nil
	}
	return Load(path)
}
