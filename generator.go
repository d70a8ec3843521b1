// Package enumgen drives the header-to-Java enum generation: preprocess each
// source header, scan it for directive-annotated enums, render each enum as a
// Java class of integer constants and write it to a package-derived path.
package enumgen

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/cppjava/enumgen/ir"
	"github.com/cppjava/enumgen/java"
	"github.com/cppjava/enumgen/parser"
	"github.com/cppjava/enumgen/provider"
	"github.com/cppjava/enumgen/sink"
)

// Config holds the configuration for one generation run.
type Config struct {
	// OutDir is the directory generated files are written under.
	OutDir string `validate:"required"`

	// Sources are the header files to scan.
	Sources []string `validate:"min=1"`

	// IncludePaths are preprocessor -I search paths.
	IncludePaths []string

	// AssertFiles, when non-empty, is the exact set of output paths the
	// caller expects; Generate fails if the computed set differs.
	AssertFiles []string

	// DryRun computes output paths without rendering or writing anything.
	DryRun bool

	// Jobs bounds how many files are processed concurrently.
	// Defaults to GOMAXPROCS.
	Jobs int

	// Provider overrides the line source. Defaults to the gcc
	// preprocessor with IncludePaths.
	Provider provider.LineProvider

	// Sink overrides the output destination. Defaults to a filesystem
	// sink rooted at OutDir.
	Sink sink.OutputSink

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

func (c *Config) applyDefaults() {
	if c.Jobs <= 0 {
		c.Jobs = runtime.GOMAXPROCS(0)
	}
	if c.Provider == nil {
		c.Provider = &provider.GCCPreprocessor{IncludePaths: c.IncludePaths}
	}
	if c.Sink == nil {
		c.Sink = sink.NewFilesystemSink(c.OutDir)
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Result reports what a generation run produced.
type Result struct {
	// OutputPaths lists every computed output path, in source-file order
	// and declaration order within a file.
	OutputPaths []string
}

// Generate runs the full pipeline for every configured source file. Files
// are processed in parallel; any file failing aborts the run. The returned
// path ordering is deterministic regardless of scheduling.
func Generate(ctx context.Context, cfg *Config) (*Result, error) {
	c := *cfg
	if err := validate.Struct(&c); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	c.applyDefaults()

	perFile := make([][]string, len(c.Sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.Jobs)
	for i, src := range c.Sources {
		i, src := i, src
		g.Go(func() error {
			paths, err := generateFile(gctx, &c, src)
			if err != nil {
				return err
			}
			perFile[i] = paths
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var outputPaths []string
	for _, paths := range perFile {
		outputPaths = append(outputPaths, paths...)
	}

	if len(c.AssertFiles) > 0 {
		if err := assertFiles(outputPaths, c.AssertFiles); err != nil {
			return nil, err
		}
	}

	c.Logger.Debug("generation complete",
		slog.Int("sources", len(c.Sources)),
		slog.Int("outputs", len(outputPaths)))
	return &Result{OutputPaths: outputPaths}, nil
}

// generateFile runs preprocess, scan, render and write for one header and
// returns the output paths for its definitions in declaration order.
func generateFile(ctx context.Context, cfg *Config, src string) ([]string, error) {
	lines, err := cfg.Provider.Lines(ctx, src)
	if err != nil {
		return nil, err
	}

	defs, err := parser.NewHeaderScanner(src).Parse(lines)
	if err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		return nil, &NoEnumsFoundError{Path: src}
	}

	paths := make([]string, 0, len(defs))
	for _, def := range defs {
		rel := outputPath(def)
		paths = append(paths, filepath.Join(cfg.OutDir, filepath.FromSlash(rel)))
		if cfg.DryRun {
			continue
		}
		content, err := java.Render(def, src)
		if err != nil {
			return nil, err
		}
		if err := cfg.Sink.WriteFile(ctx, rel, content); err != nil {
			return nil, err
		}
		cfg.Logger.Debug("wrote enum class",
			slog.String("class", def.ClassName()),
			slog.String("path", rel))
	}
	return paths, nil
}

// outputPath computes the sink-relative path for a definition:
// the package with dots as separators, then <ClassName>.java.
func outputPath(def *ir.EnumDefinition) string {
	return path.Join(strings.ReplaceAll(def.Package, ".", "/"), def.ClassName()+".java")
}

// assertFiles compares the computed output path set against the expectation
// and reports the additions and removals needed to reconcile them.
func assertFiles(outputs, expected []string) error {
	actual := make(map[string]bool, len(outputs))
	for _, p := range outputs {
		actual[p] = true
	}
	want := make(map[string]bool, len(expected))
	for _, p := range expected {
		want[p] = true
	}

	e := &AssertFilesError{}
	for _, p := range outputs {
		if !want[p] {
			e.Add = append(e.Add, p)
		}
	}
	for _, p := range expected {
		if !actual[p] {
			e.Remove = append(e.Remove, p)
		}
	}
	if len(e.Add) > 0 || len(e.Remove) > 0 {
		return e
	}
	return nil
}
