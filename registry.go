package missive

import (
	"reflect"
	"sync"
	"time"

	"github.com/zoobzio/sentinel"
)

// Container identifiers written to TypeIDHeader for unnamed slices, arrays and maps.
const (
	SliceTypeID = "slice"
	MapTypeID   = "map"
)

var (
	anyType    = reflect.TypeFor[any]()
	stringType = reflect.TypeFor[string]()
)

// predeclared types resolve without registration and are always trusted.
var predeclared = map[string]reflect.Type{
	"any":           anyType,
	"bool":          reflect.TypeFor[bool](),
	"string":        stringType,
	"int":           reflect.TypeFor[int](),
	"int8":          reflect.TypeFor[int8](),
	"int16":         reflect.TypeFor[int16](),
	"int32":         reflect.TypeFor[int32](),
	"int64":         reflect.TypeFor[int64](),
	"uint":          reflect.TypeFor[uint](),
	"uint8":         reflect.TypeFor[uint8](),
	"uint16":        reflect.TypeFor[uint16](),
	"uint32":        reflect.TypeFor[uint32](),
	"uint64":        reflect.TypeFor[uint64](),
	"float32":       reflect.TypeFor[float32](),
	"float64":       reflect.TypeFor[float64](),
	"time.Time":     reflect.TypeFor[time.Time](),
	"time.Duration": reflect.TypeFor[time.Duration](),
}

// TypeID returns the wire identifier Go derives for t, ignoring registrations.
func TypeID(t reflect.Type) string {
	t = derefType(t)
	switch {
	case t == nil:
		return ""
	case t.Name() == "" && (t.Kind() == reflect.Slice || t.Kind() == reflect.Array):
		return SliceTypeID
	case t.Name() == "" && t.Kind() == reflect.Map:
		return MapTypeID
	case t == anyType:
		return "any"
	case t.PkgPath() == "":
		return t.String()
	default:
		return t.PkgPath() + "." + t.Name()
	}
}

// Registry maps wire type identifiers to Go types.
// Registries are safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	byID  map[string]reflect.Type
	ids   map[reflect.Type]string
	names map[reflect.Type]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:  make(map[string]reflect.Type),
		ids:   make(map[reflect.Type]string),
		names: make(map[reflect.Type]string),
	}
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry used by default mappers.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register records T in the default registry and returns the identifier
// written for it on encode. The first alias, when given, becomes that identifier.
// Struct types are scanned so events carry their type name.
func Register[T any](aliases ...string) string {
	t := reflect.TypeFor[T]()
	name := ""
	if t.Kind() == reflect.Struct {
		meta := sentinel.Scan[T]()
		name = meta.TypeName
	}
	return defaultRegistry.register(t, name, aliases)
}

// RegisterType records t in the default registry. See Register.
func RegisterType(t reflect.Type, aliases ...string) string {
	return defaultRegistry.Register(t, aliases...)
}

// Reset clears the default registry.
// This is primarily useful for test isolation.
func Reset() {
	defaultRegistry.Reset()
}

// Register records t and returns the identifier written for it on encode.
func (r *Registry) Register(t reflect.Type, aliases ...string) string {
	return r.register(t, "", aliases)
}

func (r *Registry) register(t reflect.Type, name string, aliases []string) string {
	t = derefType(t)
	canonical := TypeID(t)
	preferred := canonical
	if len(aliases) > 0 && aliases[0] != "" {
		preferred = aliases[0]
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[canonical] = t
	for _, alias := range aliases {
		if alias != "" {
			r.byID[alias] = t
		}
	}
	r.ids[t] = preferred
	if name != "" {
		r.names[t] = name
	}
	return preferred
}

// Lookup returns the type registered under id.
func (r *Registry) Lookup(id string) (reflect.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byID[id]
	return t, ok
}

// ID returns the identifier written for t: its registered identifier, or TypeID(t).
func (r *Registry) ID(t reflect.Type) string {
	t = derefType(t)
	r.mu.RLock()
	id, ok := r.ids[t]
	r.mu.RUnlock()
	if ok {
		return id
	}
	return TypeID(t)
}

// Name returns a display name for t, used to label events.
func (r *Registry) Name(t reflect.Type) string {
	t = derefType(t)
	if t == nil {
		return ""
	}
	r.mu.RLock()
	name, ok := r.names[t]
	r.mu.RUnlock()
	if ok {
		return name
	}
	return t.String()
}

// Reset removes every registration.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID = make(map[string]reflect.Type)
	r.ids = make(map[reflect.Type]string)
	r.names = make(map[reflect.Type]string)
}
