package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"material-texture-bench/internal/appearance"
	"material-texture-bench/internal/batch"
	"material-texture-bench/internal/config"
	"material-texture-bench/internal/hostdoc"
	"material-texture-bench/internal/logging"
	"material-texture-bench/internal/texture"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	addinDir := flag.String("dir", "", "Directory holding the template image and the copies (default: executable dir or cwd)")
	document := flag.String("doc", "", "Document file (default: <dir>/document.yaml)")
	template := flag.String("template", "", "Template image (default: <dir>/TestMaterial.jpg)")
	count := flag.Int("count", -1, "Number of faces to create (default: prompt)")
	previews := flag.Bool("previews", false, "Also write a WebP preview per material")
	previewSize := flag.Int("preview-size", 0, "Longest side of previews in pixels (default: 128)")
	manifest := flag.String("manifest", "", "Write a JSON manifest of the generated faces")
	logMode := flag.String("log", "", "Log mode: dev, prod or quiet (default: dev)")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		AddinDir:    *addinDir,
		Document:    *document,
		Template:    *template,
		Manifest:    *manifest,
		Count:       *count,
		Previews:    *previews,
		PreviewSize: *previewSize,
		LogMode:     *logMode,
	})

	log, err := logging.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log, os.Stdin, os.Stdout); err != nil {
		log.Error("run failed", "error", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, log *logging.Logger, in io.Reader, out io.Writer) error {
	n := 0
	if cfg.Count != nil {
		n = *cfg.Count
	} else {
		fmt.Fprintf(out, "Enter the number of materials/faces to create [%d]: ", config.DefaultCount)
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("read count: %w", err)
		}
		n = config.ParseCount(line)
	}

	overrides := make(map[string]appearance.Value, len(cfg.Texture))
	for k, v := range cfg.Texture {
		val, err := appearance.ValueOf(v)
		if err != nil {
			return fmt.Errorf("texture override %s: %w", k, err)
		}
		overrides[k] = val
	}

	tmpl, err := texture.Open(cfg.TemplateImage)
	if err != nil {
		return err
	}

	doc, err := hostdoc.Open(cfg.Document)
	if err != nil {
		return err
	}

	log.Info("starting", "faces", n, "document", cfg.Document, "template", cfg.TemplateImage)
	rep, runErr := batch.Run(doc, batch.Config{
		AddinDir:    cfg.AddinDir,
		Template:    tmpl,
		Count:       n,
		Previews:    cfg.Previews,
		PreviewSize: cfg.PreviewSize,
		Overrides:   overrides,
		Log:         log,
	})

	// Whatever was committed is kept, including after a failed texture phase.
	if err := doc.Save(cfg.Document); err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}

	if cfg.Manifest != "" {
		if err := batch.WriteManifest(cfg.Manifest, rep.Faces); err != nil {
			log.Warn("manifest write failed", "path", cfg.Manifest, "error", err)
		}
	}

	fmt.Fprintln(out, rep.Message())
	return nil
}
