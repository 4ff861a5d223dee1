package registry

import (
	"testing"

	"github.com/elaraai/east-go/internal/errs"
	"github.com/elaraai/east-go/internal/values"
)

func TestBuiltinRegisterAndLookup(t *testing.T) {
	r := NewBuiltinRegistry()
	if err := r.Register("add", func(args []values.Value) errs.Result {
		return errs.OK(args[0])
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	fn, ok := r.Lookup("add")
	if !ok {
		t.Fatal("expected add to be registered")
	}
	res := fn([]values.Value{values.Int(5)})
	if res.IsError() || res.Value() != values.Int(5) {
		t.Fatalf("unexpected result: %+v", res)
	}

	if _, ok := r.Lookup("missing"); ok {
		t.Fatal("unexpected lookup hit for unregistered name")
	}
}

func TestBuiltinRegisterDuplicateIsRegistryError(t *testing.T) {
	r := NewBuiltinRegistry()
	noop := func(args []values.Value) errs.Result { return errs.OK(values.Null) }
	if err := r.Register("len", noop); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	err := r.Register("len", noop)
	if err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
	ee, ok := err.(*errs.Error)
	if !ok || ee.Kind != errs.RegistryError {
		t.Fatalf("expected registryError, got %v", err)
	}
}

func TestBuiltinNamesSorted(t *testing.T) {
	r := NewBuiltinRegistry()
	noop := func(args []values.Value) errs.Result { return errs.OK(values.Null) }
	_ = r.Register("sub", noop)
	_ = r.Register("add", noop)
	_ = r.Register("mod", noop)

	names := r.Names()
	want := []string{"add", "mod", "sub"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Names() = %v, want %v", names, want)
		}
	}
}

func TestPlatformRegisterAndLookup(t *testing.T) {
	r := NewPlatformRegistry()
	err := r.Register("clock.now", PlatformEntry{
		Callback: func(args []values.Value) errs.Result { return errs.OK(values.Null) },
		Async:    false,
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	entry, ok := r.Lookup("clock.now")
	if !ok {
		t.Fatal("expected clock.now to be registered")
	}
	if entry.Async {
		t.Fatal("clock.now should not be async")
	}
}

func TestPlatformRegisterDuplicateIsRegistryError(t *testing.T) {
	r := NewPlatformRegistry()
	entry := PlatformEntry{Callback: func(args []values.Value) errs.Result { return errs.OK(values.Null) }}
	if err := r.Register("fs.read", entry); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	if err := r.Register("fs.read", entry); err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
}
