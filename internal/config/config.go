package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultCount is the face count offered by the prompt.
const DefaultCount = 100

// Config holds the paths and run settings.
type Config struct {
	// Paths
	AddinDir      string `json:"addin_dir"`
	Document      string `json:"document"`
	TemplateImage string `json:"template_image"`
	Manifest      string `json:"manifest"`

	// Run settings
	Count       *int   `json:"count"`
	Previews    bool   `json:"previews"`
	PreviewSize int    `json:"preview_size"`
	LogMode     string `json:"log_mode"`

	// Texture overrides, applied on top of the default bundle by key.
	Texture map[string]any `json:"texture"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	AddinDir    string
	Document    string
	Template    string
	Manifest    string
	Count       int // negative means unset
	Previews    bool
	PreviewSize int
	LogMode     string
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.AddinDir != "" {
		c.AddinDir = flags.AddinDir
	}
	if flags.Document != "" {
		c.Document = flags.Document
	}
	if flags.Template != "" {
		c.TemplateImage = flags.Template
	}
	if flags.Manifest != "" {
		c.Manifest = flags.Manifest
	}
	if flags.Count >= 0 {
		n := flags.Count
		c.Count = &n
	}
	if flags.Previews {
		c.Previews = true
	}
	if flags.PreviewSize > 0 {
		c.PreviewSize = flags.PreviewSize
	}
	if flags.LogMode != "" {
		c.LogMode = flags.LogMode
	}

	if c.AddinDir == "" {
		c.AddinDir = detectAddinDir()
	}

	// Resolve relative paths against the add-in dir
	if c.Document == "" {
		c.Document = filepath.Join(c.AddinDir, "document.yaml")
	} else if !filepath.IsAbs(c.Document) {
		c.Document = filepath.Join(c.AddinDir, c.Document)
	}
	if c.TemplateImage == "" {
		c.TemplateImage = filepath.Join(c.AddinDir, "TestMaterial.jpg")
	} else if !filepath.IsAbs(c.TemplateImage) {
		c.TemplateImage = filepath.Join(c.AddinDir, c.TemplateImage)
	}
	if c.Manifest != "" && !filepath.IsAbs(c.Manifest) {
		c.Manifest = filepath.Join(c.AddinDir, c.Manifest)
	}

	if c.PreviewSize <= 0 {
		c.PreviewSize = 128
	}
	if c.LogMode == "" {
		c.LogMode = "dev"
	}
}

// ParseCount interprets the face-count prompt answer: blank takes the
// default, anything that is not a whole number is 0, negatives are 0.
func ParseCount(input string) int {
	s := strings.TrimSpace(input)
	if s == "" {
		return DefaultCount
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func detectAddinDir() string {
	// Files live next to the executable, like an add-in assembly
	if exe, err := os.Executable(); err == nil {
		dir := filepath.Dir(exe)
		if _, err := os.Stat(filepath.Join(dir, "TestMaterial.jpg")); err == nil {
			return dir
		}
	}
	cwd, _ := os.Getwd()
	return cwd
}
