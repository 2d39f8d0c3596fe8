package config

import (
	"errors"
	"io/fs"
	"maps"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is read when no WithEnvFiles option is given.
const DefaultEnvFile = ".env"

// Option configures Load.
type Option func(*loader)

type loader struct {
	files      []string
	environ    map[string]string
	prefix     string
	requireAll bool
}

// WithEnvFiles replaces the dotenv files read before parsing. Missing files
// are skipped. Later files do not override earlier ones.
func WithEnvFiles(paths ...string) Option {
	return func(l *loader) { l.files = paths }
}

// WithEnviron replaces the process environment, mainly for tests.
func WithEnviron(vars map[string]string) Option {
	return func(l *loader) { l.environ = vars }
}

// WithPrefix prepends prefix to every variable name.
func WithPrefix(prefix string) Option {
	return func(l *loader) { l.prefix = prefix }
}

// WithRequiredIfNoDefault makes every field without envDefault required.
func WithRequiredIfNoDefault() Option {
	return func(l *loader) { l.requireAll = true }
}

// Load parses environment variables into a new T using its env struct tags.
// Variables already present in the environment win over dotenv files.
//
//	type Config struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":3000"`
//	}
//
//	cfg, err := config.Load[Config]()
func Load[T any](opts ...Option) (T, error) {
	var cfg T

	l := &loader{files: []string{DefaultEnvFile}}
	for _, opt := range opts {
		opt(l)
	}

	vars, err := l.read()
	if err != nil {
		return cfg, err
	}

	if err := env.ParseWithOptions(&cfg, env.Options{
		Environment:     vars,
		Prefix:          l.prefix,
		RequiredIfNoDef: l.requireAll,
	}); err != nil {
		return cfg, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// MustLoad works like Load but panics on failure.
func MustLoad[T any](opts ...Option) T {
	cfg, err := Load[T](opts...)
	if err != nil {
		panic(err)
	}
	return cfg
}

func (l *loader) read() (map[string]string, error) {
	vars := make(map[string]string)
	for _, path := range l.files {
		fileVars, err := godotenv.Read(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, errors.Join(ErrEnvFile, err)
		}
		for k, v := range fileVars {
			if _, ok := vars[k]; !ok {
				vars[k] = v
			}
		}
	}

	if l.environ != nil {
		maps.Copy(vars, l.environ)
		return vars, nil
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}
	return vars, nil
}
