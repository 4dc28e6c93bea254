package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/shapewrap/pkg/style"
)

// FileName is the optional project configuration file.
const FileName = "shapewrap.yaml"

// Config represents the optional shapewrap.yaml configuration.
type Config struct {
	Registry string       `yaml:"registry,omitempty"`
	Style    StyleConfig  `yaml:"style"`
	Log      LogConfig    `yaml:"log"`
	Render   RenderConfig `yaml:"render"`
}

// StyleConfig contains style projection settings.
type StyleConfig struct {
	ScaleVar string `yaml:"scale_var,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

// RenderConfig contains render defaults.
type RenderConfig struct {
	IDPrefix   string  `yaml:"id_prefix,omitempty"`
	PaneHeight float64 `yaml:"pane_height,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root       string
	ModulePath string
	// RegistryPath is empty when the builtin registry is used.
	RegistryPath string
	ScaleVar     string
	LogLevel     string
	IDPrefix     string
	PaneHeight   float64
}

// LoadOptional reads shapewrap.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Resolve loads shapewrap.yaml (if present) from dir and resolves defaults.
// A go.mod in dir is optional; when present its module path seeds the
// default id prefix.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	registryPath := strings.TrimSpace(cfg.Registry)
	if registryPath != "" && !filepath.IsAbs(registryPath) {
		registryPath = filepath.Join(dir, registryPath)
	}

	scaleVar := strings.TrimSpace(cfg.Style.ScaleVar)
	if scaleVar == "" {
		scaleVar = style.DefaultScaleVar
	}
	if err := style.ValidateScaleVar(scaleVar); err != nil {
		return nil, fmt.Errorf("style.scale_var: %w", err)
	}

	logLevel := strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if logLevel == "" {
		logLevel = "warn"
	}

	idPrefix := strings.TrimSpace(cfg.Render.IDPrefix)
	if idPrefix == "" {
		idPrefix = defaultIDPrefix(modulePath, dir)
	}

	paneHeight := cfg.Render.PaneHeight
	if paneHeight == 0 {
		paneHeight = 400
	}
	if paneHeight < 0 {
		return nil, fmt.Errorf("render.pane_height must be positive (got %v)", paneHeight)
	}

	return &Resolved{
		Root:         dir,
		ModulePath:   modulePath,
		RegistryPath: registryPath,
		ScaleVar:     scaleVar,
		LogLevel:     logLevel,
		IDPrefix:     idPrefix,
		PaneHeight:   paneHeight,
	}, nil
}

// FindProjectRoot walks up from the current directory to find a directory
// holding shapewrap.yaml or go.mod. It returns the current directory when
// neither exists.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		for _, marker := range []string{FileName, "go.mod"} {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultIDPrefix(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modulePath != "" {
		if prefix, _, ok := module.SplitPathVersion(modulePath); ok {
			parts := strings.Split(prefix, "/")
			base = parts[len(parts)-1]
		}
	}
	return sanitizeSegment(base)
}

// sanitizeSegment reduces s to an XML-id-friendly lower-case token.
func sanitizeSegment(segment string) string {
	segment = strings.TrimSpace(segment)

	var out []rune
	for _, r := range segment {
		switch {
		case r >= 'a' && r <= 'z':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r >= '0' && r <= '9', r == '-', r == '_':
			out = append(out, r)
		default:
			// Skip other invalid characters
		}
	}

	if len(out) == 0 {
		return "shape"
	}
	if !(out[0] >= 'a' && out[0] <= 'z') {
		out = append([]rune("s"), out...)
	}
	return string(out)
}
