package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/carousel/pkg/pipeline"
)

// artifactWriteParams describes where rendered artifacts go.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	base      string // Default base name when output is empty
	output    string // File path, directory-less base name, or "-" for stdout
}

// writeArtifacts writes each artifact to disk and returns the written paths.
// A single format is written to output as given; several formats share the
// output's base name with one extension each. "-" writes a single artifact
// to stdout.
func writeArtifacts(p artifactWriteParams) ([]string, error) {
	if p.output == "-" {
		if len(p.formats) != 1 {
			return nil, fmt.Errorf("stdout output requires exactly one format, got %d", len(p.formats))
		}
		_, err := os.Stdout.Write(p.artifacts[p.formats[0]])
		return nil, err
	}

	if len(p.formats) == 1 && p.output != "" {
		if err := writeFile(p.output, p.artifacts[p.formats[0]]); err != nil {
			return nil, err
		}
		return []string{p.output}, nil
	}

	base := p.output
	if base == "" {
		base = p.base
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))

	paths := make([]string, 0, len(p.formats))
	for _, format := range p.formats {
		path := base + "." + format
		if err := writeFile(path, p.artifacts[format]); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// printResult prints written files and pass statistics.
func printResult(res *pipeline.Result, paths []string) {
	printSuccess("Rendered frame at offset %.1f", res.Pass.Offset)
	for _, p := range paths {
		printFile(p)
	}
	printStats(res.Stats.Items, res.Stats.Visible, res.Frame.Focused, res.CacheInfo.FrameHit && res.CacheInfo.RenderHit)
}
