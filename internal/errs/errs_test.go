package errs

import (
	"strings"
	"testing"

	"github.com/elaraai/east-go/internal/values"
)

func TestWithLocationPrependsOutermostFirst(t *testing.T) {
	e := New(NameError, "unknown variable %q", "x")
	e = e.WithLocation(Location{File: "a.east", Line: 3, Column: 5})
	e = e.WithLocation(Location{File: "a.east", Line: 1, Column: 1})

	if len(e.Locations) != 2 {
		t.Fatalf("len(Locations) = %d, want 2", len(e.Locations))
	}
	if e.Locations[0].Line != 1 || e.Locations[1].Line != 3 {
		t.Fatalf("locations not in most-recently-attached-first order: %+v", e.Locations)
	}
}

func TestFormatIncludesKindAndMessage(t *testing.T) {
	e := New(TypeMismatch, "expected %s, got %s", "Integer", "String")
	got := e.Format(false)
	if !strings.Contains(got, "typeMismatch") || !strings.Contains(got, "expected Integer, got String") {
		t.Fatalf("Format() = %q, missing kind or message", got)
	}
}

func TestResultOKAndError(t *testing.T) {
	ok := OK(values.Int(1))
	if ok.IsError() {
		t.Fatal("OK result reported IsError")
	}
	if ok.Value() != values.Int(1) {
		t.Fatalf("Value() = %v, want 1", ok.Value())
	}

	bad := Err(New(DivisionByZero, "division by zero"))
	if !bad.IsError() {
		t.Fatal("Err result did not report IsError")
	}
	if bad.Error().Kind != DivisionByZero {
		t.Fatalf("Error().Kind = %v, want divisionByZero", bad.Error().Kind)
	}
}

func TestResultWithLocationIsNoOpOnOK(t *testing.T) {
	ok := OK(values.Null)
	updated := ok.WithLocation(Location{Line: 1, Column: 1})
	if updated.IsError() {
		t.Fatal("WithLocation on an OK result must remain OK")
	}
}

func TestFormatWithSourceRendersCaret(t *testing.T) {
	e := New(IndexOutOfRange, "index 5 out of range")
	e = e.WithLocation(Location{File: "prog.east", Line: 2, Column: 7})

	source := map[string][]string{
		"prog.east": {"let x = 1", "let y = arr.get(5)"},
	}
	got := e.FormatWithSource(source, false)
	if !strings.Contains(got, "arr.get(5)") || !strings.Contains(got, "^") {
		t.Fatalf("FormatWithSource() = %q, missing source line or caret", got)
	}
}
