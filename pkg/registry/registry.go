package registry

import (
	"sort"

	"github.com/go-drift/shapewrap/pkg/viewport"
)

// Context selects which part of the registry a lookup may use.
type Context int

const (
	// ContextDecorative draws a plain shape without masking. It accepts
	// responsive records and falls back to shared ones.
	ContextDecorative Context = iota
	// ContextLeftWrap draws a left-floated wrap shape. Only responsive
	// records qualify.
	ContextLeftWrap
	// ContextModalWrap draws a right-floated wrap shape inside a zoomed
	// overlay. Only modal records qualify.
	ContextModalWrap
)

func (c Context) String() string {
	switch c {
	case ContextDecorative:
		return "decorative"
	case ContextLeftWrap:
		return "left-wrap"
	case ContextModalWrap:
		return "modal-wrap"
	default:
		return "unknown"
	}
}

// Source is the read-only shape lookup the resolver consults.
type Source interface {
	// Responsive returns the per-viewport records for name.
	Responsive(name string) (map[viewport.Class]*Geometry, bool)
	// Shared returns the viewport-independent record for name.
	Shared(name string) (*Geometry, bool)
	// Modal returns the modal record for name.
	Modal(name string) (*Geometry, bool)
}

// Resolve returns the geometry that applies to name in the given viewport
// and context, trying each permitted lookup in order. A missing shape
// yields (nil, false).
func Resolve(src Source, name string, class viewport.Class, ctx Context) (*Geometry, bool) {
	if src == nil {
		return nil, false
	}
	var lookups []func() (*Geometry, bool)
	responsive := func() (*Geometry, bool) {
		byClass, ok := src.Responsive(name)
		if !ok {
			return nil, false
		}
		g, ok := byClass[class]
		return g, ok && g != nil
	}
	switch ctx {
	case ContextDecorative:
		lookups = append(lookups, responsive, func() (*Geometry, bool) { return src.Shared(name) })
	case ContextLeftWrap:
		lookups = append(lookups, responsive)
	case ContextModalWrap:
		lookups = append(lookups, func() (*Geometry, bool) { return src.Modal(name) })
	}
	for _, lookup := range lookups {
		if g, ok := lookup(); ok && g != nil {
			return g, true
		}
	}
	return nil, false
}

// Registry is an in-memory Source.
type Registry struct {
	responsive map[string]map[viewport.Class]*Geometry
	shared     map[string]*Geometry
	modal      map[string]*Geometry
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		responsive: make(map[string]map[viewport.Class]*Geometry),
		shared:     make(map[string]*Geometry),
		modal:      make(map[string]*Geometry),
	}
}

// AddResponsive registers the record used for name in one viewport class.
func (r *Registry) AddResponsive(name string, class viewport.Class, g *Geometry) {
	byClass := r.responsive[name]
	if byClass == nil {
		byClass = make(map[viewport.Class]*Geometry)
		r.responsive[name] = byClass
	}
	byClass[class] = g
}

// AddShared registers a viewport-independent record.
func (r *Registry) AddShared(name string, g *Geometry) {
	r.shared[name] = g
}

// AddModal registers a modal record.
func (r *Registry) AddModal(name string, g *Geometry) {
	r.modal[name] = g
}

// Responsive implements Source.
func (r *Registry) Responsive(name string) (map[viewport.Class]*Geometry, bool) {
	byClass, ok := r.responsive[name]
	return byClass, ok
}

// Shared implements Source.
func (r *Registry) Shared(name string) (*Geometry, bool) {
	g, ok := r.shared[name]
	return g, ok
}

// Modal implements Source.
func (r *Registry) Modal(name string) (*Geometry, bool) {
	g, ok := r.modal[name]
	return g, ok
}

// Names returns the sorted shape names usable in ctx.
func (r *Registry) Names(ctx Context) []string {
	seen := make(map[string]struct{})
	switch ctx {
	case ContextDecorative:
		for name := range r.responsive {
			seen[name] = struct{}{}
		}
		for name := range r.shared {
			seen[name] = struct{}{}
		}
	case ContextLeftWrap:
		for name := range r.responsive {
			seen[name] = struct{}{}
		}
	case ContextModalWrap:
		for name := range r.modal {
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
