// Package registry implements the two dispatch tables the evaluator
// consults by name (§4.5): built-ins and platform calls. Both support
// insertion and lookup only — no removal during evaluation — mirroring
// the teacher's OperatorRegistry/ConversionRegistry shape
// (internal/interp/types/type_system.go), simplified to name-keyed,
// single-entry tables since East dispatch has no operand-type overloading.
package registry

import (
	"github.com/elaraai/east-go/internal/errs"
	"github.com/elaraai/east-go/internal/values"
)

// BuiltinFunc is a pure, non-suspending implementation of a built-in
// operation (§4.3.4).
type BuiltinFunc func(args []values.Value) errs.Result

// BuiltinRegistry maps built-in names to their implementations.
type BuiltinRegistry struct {
	entries map[string]BuiltinFunc
}

// NewBuiltinRegistry returns an empty BuiltinRegistry.
func NewBuiltinRegistry() *BuiltinRegistry {
	return &BuiltinRegistry{entries: make(map[string]BuiltinFunc)}
}

// Register inserts fn under name. Registering a name twice is a
// registryError (§4.5).
func (r *BuiltinRegistry) Register(name string, fn BuiltinFunc) error {
	if _, exists := r.entries[name]; exists {
		return errs.New(errs.RegistryError, "builtin %q already registered", name)
	}
	r.entries[name] = fn
	return nil
}

// Lookup returns the function registered under name, if any.
func (r *BuiltinRegistry) Lookup(name string) (BuiltinFunc, bool) {
	fn, ok := r.entries[name]
	return fn, ok
}

// Names returns the registered built-in names in sorted order — a
// supplement to §4.5 useful for CLI introspection (`east registry`) and
// test harness discovery.
func (r *BuiltinRegistry) Names() []string {
	return sortedKeys(r.entries)
}

// PlatformFunc is a host callback invoked for a CallPlatform node. It may
// itself invoke a function value passed as an argument (§4.3.5), e.g. a
// test harness driving `describe`/`test` callbacks.
type PlatformFunc func(args []values.Value) errs.Result

// PlatformEntry pairs a platform callback with its async flag (§4.3.5,
// §5). The evaluator does not read Async: every entry's callback runs
// synchronously and no call suspends.
type PlatformEntry struct {
	Callback PlatformFunc
	Async    bool
}

// PlatformRegistry maps platform call names to PlatformEntry.
type PlatformRegistry struct {
	entries map[string]PlatformEntry
}

// NewPlatformRegistry returns an empty PlatformRegistry.
func NewPlatformRegistry() *PlatformRegistry {
	return &PlatformRegistry{entries: make(map[string]PlatformEntry)}
}

// Register inserts entry under name. Registering a name twice is a
// registryError.
func (r *PlatformRegistry) Register(name string, entry PlatformEntry) error {
	if _, exists := r.entries[name]; exists {
		return errs.New(errs.RegistryError, "platform call %q already registered", name)
	}
	r.entries[name] = entry
	return nil
}

// Lookup returns the entry registered under name, if any.
func (r *PlatformRegistry) Lookup(name string) (PlatformEntry, bool) {
	entry, ok := r.entries[name]
	return entry, ok
}

// Names returns the registered platform call names in sorted order.
func (r *PlatformRegistry) Names() []string {
	return sortedKeys(r.entries)
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	// Insertion into a slice then a simple insertion sort keeps this
	// package free of an extra "sort" import for a handful of names;
	// cmd/east's registry listing uses maruel/natural for display order
	// instead of relying on this method's ordering being natural-aware.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
