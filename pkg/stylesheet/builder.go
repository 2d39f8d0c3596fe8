package stylesheet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrymomot/homedata/pkg/logger"
)

// Builder compiles the entry stylesheet and writes the output files.
type Builder struct {
	cfg      Config
	compiler Compiler
	log      *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithCompiler replaces the lessc compiler.
func WithCompiler(c Compiler) Option {
	return func(b *Builder) {
		if c != nil {
			b.compiler = c
		}
	}
}

// WithLogger sets the logger for build reports.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.log = l
		}
	}
}

// NewBuilder creates a builder. Zero fields of cfg fall back to DefaultConfig.
func NewBuilder(cfg Config, opts ...Option) *Builder {
	def := DefaultConfig()
	if cfg.SourceDir == "" {
		cfg.SourceDir = def.SourceDir
	}
	if cfg.Entry == "" {
		cfg.Entry = def.Entry
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = def.OutputDir
	}
	if cfg.Name == "" {
		cfg.Name = def.Name
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = def.Debounce
	}

	b := &Builder{cfg: cfg, log: logger.Discard()}
	for _, opt := range opts {
		opt(b)
	}
	if b.compiler == nil {
		b.compiler = NewLessCompiler(cfg)
	}
	b.log = b.log.With(logger.Component("stylesheet"))
	return b
}

// Output returns the paths of the CSS and source map files.
func (b *Builder) Output() (css, sourceMap string) {
	return filepath.Join(b.cfg.OutputDir, b.cfg.cssFile()), filepath.Join(b.cfg.OutputDir, b.cfg.mapFile())
}

// Build compiles the entry once. Nothing is written when compilation fails.
func (b *Builder) Build(ctx context.Context) error {
	if _, err := os.Stat(b.cfg.Entry); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrNoEntry, b.cfg.Entry, err)
	}

	start := time.Now()
	res, err := b.compiler.Compile(ctx, b.cfg.Entry)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(b.cfg.OutputDir, 0o755); err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	cssPath, mapPath := b.Output()
	if err := writeFile(cssPath, res.CSS); err != nil {
		return err
	}
	if res.SourceMap != nil {
		if err := writeFile(mapPath, res.SourceMap); err != nil {
			return err
		}
	}

	b.log.InfoContext(ctx, "stylesheet built",
		slog.String("output", cssPath),
		slog.Int("bytes", len(res.CSS)),
		logger.Duration(time.Since(start)),
	)
	return nil
}

// writeFile replaces path through a rename so readers never see a partial file.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Join(ErrWriteFailed, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	return nil
}
