// Package config loads typed configuration from environment variables.
//
// Load reads optional dotenv files with godotenv, overlays the process
// environment, and parses the result into a struct with caarlos0/env tags.
// It returns a value instead of caching it: the caller builds one
// configuration at startup and passes it down explicitly.
//
// # Usage
//
//	type Config struct {
//		Addr     string        `env:"HTTP_ADDR" envDefault:":3000"`
//		Timeout  time.Duration `env:"TIMEOUT" envDefault:"5s"`
//		Database string        `env:"MONGODB_URL,required"`
//	}
//
//	cfg, err := config.Load[Config]()
//
// Nested structs are parsed too, so an application config can embed the
// Config types of the packages it wires together. In tests pass
// WithEnviron and WithEnvFiles() to keep the process environment out.
//
// # Error Handling
//
// Parsing failures, including missing required variables, are joined with
// ErrParsingConfig. Unreadable dotenv files yield ErrEnvFile; missing ones
// are skipped.
package config
