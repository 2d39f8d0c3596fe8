package stylesheet

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Result is one compiled stylesheet.
type Result struct {
	CSS       []byte
	SourceMap []byte
}

// Compiler turns a stylesheet entry file into CSS plus a source map.
type Compiler interface {
	Compile(ctx context.Context, entry string) (Result, error)
}

// CompilerFunc adapts a function to Compiler.
type CompilerFunc func(ctx context.Context, entry string) (Result, error)

func (f CompilerFunc) Compile(ctx context.Context, entry string) (Result, error) {
	return f(ctx, entry)
}

// LessCompiler runs the lessc binary.
type LessCompiler struct {
	// Binary is the lessc executable, looked up in PATH when not absolute.
	Binary string
	// SourceMapURL is referenced from the generated CSS.
	SourceMapURL string
}

// NewLessCompiler returns a compiler for cfg whose CSS points at the map
// file Builder writes next to it.
func NewLessCompiler(cfg Config) *LessCompiler {
	return &LessCompiler{Binary: cfg.Binary, SourceMapURL: cfg.mapFile()}
}

func (c *LessCompiler) Compile(ctx context.Context, entry string) (Result, error) {
	dir, err := os.MkdirTemp("", "homedata-less-*")
	if err != nil {
		return Result{}, errors.Join(ErrCompileFailed, err)
	}
	defer os.RemoveAll(dir)

	cssPath := filepath.Join(dir, "out.css")
	mapPath := filepath.Join(dir, "out.map")

	bin := c.Binary
	if bin == "" {
		bin = "lessc"
	}
	args := []string{"--source-map=" + mapPath}
	if c.SourceMapURL != "" {
		args = append(args, "--source-map-url="+c.SourceMapURL)
	}
	args = append(args, entry, cssPath)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return Result{}, fmt.Errorf("%w: %w: %s", ErrCompileFailed, err, msg)
		}
		return Result{}, errors.Join(ErrCompileFailed, err)
	}

	css, err := os.ReadFile(cssPath)
	if err != nil {
		return Result{}, errors.Join(ErrCompileFailed, err)
	}
	sourceMap, err := os.ReadFile(mapPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Result{}, errors.Join(ErrCompileFailed, err)
	}
	return Result{CSS: css, SourceMap: sourceMap}, nil
}
