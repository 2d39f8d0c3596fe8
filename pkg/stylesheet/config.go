package stylesheet

import "time"

// Config holds the stylesheet build settings.
type Config struct {
	SourceDir string        `env:"STYLES_SOURCE_DIR" envDefault:"less"`
	Entry     string        `env:"STYLES_ENTRY" envDefault:"less/style.less"`
	OutputDir string        `env:"STYLES_OUTPUT_DIR" envDefault:"public/css"`
	Name      string        `env:"STYLES_NAME" envDefault:"style"`
	Binary    string        `env:"STYLES_LESSC" envDefault:"lessc"`
	Debounce  time.Duration `env:"STYLES_DEBOUNCE" envDefault:"200ms"`
}

// DefaultConfig returns the settings matching the env defaults.
func DefaultConfig() Config {
	return Config{
		SourceDir: "less",
		Entry:     "less/style.less",
		OutputDir: "public/css",
		Name:      "style",
		Binary:    "lessc",
		Debounce:  200 * time.Millisecond,
	}
}

func (c Config) cssFile() string { return c.Name + ".css" }
func (c Config) mapFile() string { return c.Name + ".map" }
