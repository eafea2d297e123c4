package opts

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvConfig   = "PANELS_CONFIG"
	EnvStdioLog = "PANELS_STDIO_LOG"
	EnvListen   = "PANELS_LISTEN"
	EnvDebug    = "PANELS_DEBUG"
)

// Defaults are the flag defaults that can be overridden from the
// environment.
type Defaults struct {
	Config   string
	StdioLog string
	Listen   string
	Debug    bool
}

func DefaultsFromEnv() (Defaults, error) {
	d := Defaults{
		Config:   os.Getenv(EnvConfig),
		StdioLog: os.Getenv(EnvStdioLog),
		Listen:   os.Getenv(EnvListen),
	}
	if d.Listen == "" {
		d.Listen = ":8080"
	}
	if raw := os.Getenv(EnvDebug); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return Defaults{}, fmt.Errorf("%s must be a boolean (got %q): %w", EnvDebug, raw, err)
		}
		d.Debug = parsed
	}
	return d, nil
}
