package registry

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/shapewrap/pkg/errors"
	"github.com/go-drift/shapewrap/pkg/viewport"
)

//go:embed builtin.yaml
var builtinYAML []byte

// File is the on-disk registry layout.
type File struct {
	Responsive map[string]map[viewport.Class]*Geometry `yaml:"responsive"`
	Shared     map[string]*Geometry                    `yaml:"shared"`
	Modal      map[string]*Geometry                    `yaml:"modal"`
}

// Load parses a YAML registry and validates every record.
func Load(r io.Reader) (*Registry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &errors.ShapeError{Op: "registry.Load", Kind: errors.KindRegistry, Err: err}
	}
	return parse(data)
}

// LoadFile reads a YAML registry from path.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errors.ShapeError{Op: "registry.LoadFile", Kind: errors.KindRegistry, Err: err}
	}
	return parse(data)
}

var (
	builtinOnce sync.Once
	builtin     *Registry
)

// Builtin returns the embedded default registry. The returned registry is
// shared and must not be modified.
func Builtin() *Registry {
	builtinOnce.Do(func() {
		reg, err := parse(builtinYAML)
		if err != nil {
			panic(fmt.Sprintf("registry: embedded builtin.yaml is invalid: %v", err))
		}
		builtin = reg
	})
	return builtin
}

func parse(data []byte) (*Registry, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, &errors.ShapeError{Op: "registry.Load", Kind: errors.KindRegistry, Err: fmt.Errorf("failed to parse registry: %w", err)}
	}

	reg := New()
	for _, name := range sortedKeys(f.Responsive) {
		for class, g := range f.Responsive[name] {
			if !class.Valid() {
				return nil, invalid(name, &errors.ValidationError{Field: "viewport", Value: string(class), Reason: "unknown viewport class"})
			}
			if err := check(name, g); err != nil {
				return nil, err
			}
			reg.AddResponsive(name, class, g)
		}
	}
	for _, name := range sortedKeys(f.Shared) {
		if err := check(name, f.Shared[name]); err != nil {
			return nil, err
		}
		reg.AddShared(name, f.Shared[name])
	}
	for _, name := range sortedKeys(f.Modal) {
		if err := check(name, f.Modal[name]); err != nil {
			return nil, err
		}
		reg.AddModal(name, f.Modal[name])
	}
	return reg, nil
}

func check(name string, g *Geometry) error {
	if g == nil {
		return invalid(name, &errors.ValidationError{Field: "record", Value: nil, Reason: "must not be empty"})
	}
	if err := g.Validate(); err != nil {
		return &errors.ShapeError{Op: "registry.Load", Kind: errors.KindRegistry, Shape: name, Err: err}
	}
	return nil
}

func invalid(name string, v *errors.ValidationError) error {
	return &errors.ShapeError{Op: "registry.Load", Kind: errors.KindRegistry, Shape: name, Err: v}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
