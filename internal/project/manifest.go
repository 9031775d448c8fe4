// Package project locates and loads the tuplex.toml manifest describing the
// call sites to analyze.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file the loader searches for.
const ManifestName = "tuplex.toml"

// Manifest is a loaded tuplex.toml together with its location and digest.
type Manifest struct {
	Path   string
	Root   string
	Digest Digest
	Config Config
}

// Config mirrors the TOML structure of tuplex.toml.
type Config struct {
	Package   PackageConfig    `toml:"package"`
	Callsites []CallsiteConfig `toml:"callsite"`
}

// PackageConfig names the analyzed package.
type PackageConfig struct {
	Name string `toml:"name"`
}

// CallsiteConfig is one named, ordered argument list.
type CallsiteConfig struct {
	Name string    `toml:"name"`
	Args []ArgSpec `toml:"arg"`
}

// TypeSpec is the structural description of a declared type. It nests for
// array elements, function signatures and ref targets; no type-expression
// syntax is parsed anywhere.
type TypeSpec struct {
	Kind   string     `toml:"kind"` // named|array|fn|ref
	Name   string     `toml:"name"`
	Quals  []string   `toml:"quals"`
	Elem   *TypeSpec  `toml:"elem"`
	Count  uint32     `toml:"count"`
	Params []TypeSpec `toml:"params"`
	Result *TypeSpec  `toml:"result"`
	Target *TypeSpec  `toml:"target"`
}

// ArgSpec is a TypeSpec plus the call-site binding mode.
type ArgSpec struct {
	TypeSpec
	Binding string `toml:"binding"`
}

// Find walks up from startDir looking for tuplex.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read manifest: %w", path, err)
	}
	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return nil, fmt.Errorf("%s: missing [package].name", path)
	}
	for i, cs := range cfg.Callsites {
		if strings.TrimSpace(cs.Name) == "" {
			return nil, fmt.Errorf("%s: callsite %d: missing name", path, i)
		}
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Digest: HashBytes(data),
		Config: cfg,
	}, nil
}
