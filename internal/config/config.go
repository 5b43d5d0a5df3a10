// Package config loads an ultradel.Config from, in increasing precedence:
// built-in defaults, an optional ".ultradel.json" sidecar inside the
// target root directory (the same sidecar-file convention
// entro314-labs-devkill/config.go uses for ".devkill.json"), environment
// variables, and CLI flags. This package, like the rest of the CLI, is an
// external collaborator — internal/machine never imports it.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/blaubart69/ultradel"
)

// File is the JSON shape of an ".ultradel.json" sidecar. Fields left
// absent (nil) do not override whatever precedes them.
type File struct {
	Threads        *int  `json:"threads"`
	ScannerBufSize *int  `json:"scannerBufSize"`
	DeleterNTAPI   *bool `json:"deleterNtapi"`
	DeleterBatch   *int  `json:"deleterBatch"`
	KeepRoot       *bool `json:"keepRoot"`
}

// SidecarPath returns the conventional sidecar location for a target root.
func SidecarPath(root string) string {
	return filepath.Join(root, ".ultradel.json")
}

// LoadFile reads and parses a sidecar file. A missing file is not an
// error: it returns a zero File.
func LoadFile(path string) (File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("read config %s: %w", path, err)
	}
	var f File
	if err := json.Unmarshal(content, &f); err != nil {
		return File{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return f, nil
}

func (f File) applyTo(c ultradel.Config) ultradel.Config {
	if f.Threads != nil {
		c.Threads = *f.Threads
	}
	if f.ScannerBufSize != nil {
		c.ScannerBufSize = *f.ScannerBufSize
	}
	if f.DeleterNTAPI != nil {
		c.DeleterNTAPI = *f.DeleterNTAPI
	}
	if f.DeleterBatch != nil {
		c.DeleterBatch = *f.DeleterBatch
	}
	if f.KeepRoot != nil {
		c.KeepRoot = *f.KeepRoot
	}
	return c
}

// envOverrides applies ULTRADEL_* environment variables on top of c.
func envOverrides(c ultradel.Config) ultradel.Config {
	if v := os.Getenv("ULTRADEL_THREADS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Threads = n
		}
	}
	if v := os.Getenv("ULTRADEL_SCANNER_BUF_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.ScannerBufSize = n
		}
	}
	if v := os.Getenv("ULTRADEL_DELETER_BATCH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.DeleterBatch = n
		}
	}
	if v := os.Getenv("ULTRADEL_DELETER_NTAPI"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.DeleterNTAPI = b
		}
	}
	if v := os.Getenv("ULTRADEL_KEEP_ROOT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.KeepRoot = b
		}
	}
	return c
}

// Load resolves defaults, an optional sidecar inside root, and the
// environment into a Config. CLI flags (parsed by the caller) are applied
// last and take the highest precedence, so Load does not know about them.
func Load(root string) (ultradel.Config, error) {
	c := ultradel.Config{}

	path := SidecarPath(root)
	f, err := LoadFile(path)
	if err != nil {
		return c, err
	}
	c = f.applyTo(c)
	c = envOverrides(c)
	return c, nil
}
