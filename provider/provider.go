// Package provider supplies header text to the scanner. The real provider
// shells out to the C preprocessor; a static provider feeds literal lines so
// the scanner can be tested without external processes.
package provider

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// LineProvider turns a file path into the ordered line sequence the scanner
// consumes.
type LineProvider interface {
	Lines(ctx context.Context, path string) ([]string, error)
}

// GCCPreprocessor expands macros and includes by invoking the host gcc,
// keeping comments (and with them the generator directives) intact.
type GCCPreprocessor struct {
	// IncludePaths are passed as -I search paths.
	IncludePaths []string

	// Defines are passed as -D macros. Defaults to just ANDROID.
	Defines []string
}

// Lines preprocesses path and returns its lines.
func (p *GCCPreprocessor) Lines(ctx context.Context, path string) ([]string, error) {
	cmd := exec.CommandContext(ctx, "gcc", p.args(path)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("preprocess %s: %w: %s", path, err, strings.TrimSpace(stderr.String()))
	}
	return SplitLines(stdout.String()), nil
}

func (p *GCCPreprocessor) args(path string) []string {
	var args []string
	for _, inc := range p.IncludePaths {
		args = append(args, "-I", inc)
	}
	defines := p.Defines
	if len(defines) == 0 {
		defines = []string{"ANDROID"}
	}
	for _, d := range defines {
		args = append(args, "-D", d)
	}
	return append(args,
		"-E", // stop after preprocessing
		"-C", // keep comments
		"-x", "c-header",
		"-P", // no line markers
		path,
	)
}

// Static maps file paths to prepared line sequences.
type Static map[string][]string

// Lines returns the prepared lines for path.
func (s Static) Lines(_ context.Context, path string) ([]string, error) {
	lines, ok := s[path]
	if !ok {
		return nil, fmt.Errorf("no lines prepared for %s", path)
	}
	return lines, nil
}

// SplitLines splits preprocessor output into lines, dropping a single
// trailing empty line left by the final newline.
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}
