// Package values implements East's runtime value representation: one
// concrete type per type-system kind (§3.2), reference-counted the same
// way internal/types counts type descriptors. Containers own their
// elements: releasing a container recursively releases everything it
// holds.
//
// Scalar values (Null, Boolean, Integer, Float, String, DateTime, Blob)
// are immutable and track no reference count of their own — Retain/Release
// on them are no-ops, the same simplification internal/types makes for
// primitive Type singletons.
package values

import (
	"fmt"
	"strconv"
	"time"

	"github.com/elaraai/east-go/internal/types"
)

// Value is a runtime value of some East type. Every concrete value type in
// this package implements it.
type Value interface {
	// Type returns the runtime type of this value.
	Type() *types.Type
	// String returns a debug/diagnostic representation; it is not one of
	// the wire encodings (see internal/codec/*).
	String() string
	// Retain increments the value's reference count, if any, and returns
	// the value for chaining.
	Retain() Value
	// Release decrements the value's reference count, recursively
	// releasing owned children once it reaches zero.
	Release()
}

// Null is the sole Null value.
var Null nullValue

type nullValue struct{}

func (nullValue) Type() *types.Type { return types.Null }
func (nullValue) String() string    { return "null" }
func (nullValue) Retain() Value     { return Null }
func (nullValue) Release()          {}

// Bool wraps a Boolean value.
type Bool bool

func (b Bool) Type() *types.Type { return types.Boolean }
func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}
func (b Bool) Retain() Value { return b }
func (b Bool) Release()      {}

// Int wraps a signed 64-bit Integer value.
type Int int64

func (i Int) Type() *types.Type { return types.Integer }
func (i Int) String() string    { return strconv.FormatInt(int64(i), 10) }
func (i Int) Retain() Value     { return i }
func (i Int) Release()          {}

// Float wraps an IEEE 754 binary64 Float value, including inf/-inf/nan.
type Float float64

func (f Float) Type() *types.Type { return types.Float }
func (f Float) String() string {
	switch {
	case f != f: // nan
		return "nan"
	case f > 0 && f-f != 0: // +inf
		return "inf"
	case f < 0 && f-f != 0: // -inf
		return "-inf"
	default:
		return strconv.FormatFloat(float64(f), 'g', -1, 64)
	}
}
func (f Float) Retain() Value { return f }
func (f Float) Release()      {}

// Str wraps a length-prefixed, UTF-8 String value. Go's native string type
// already carries its byte length, so no separate length field is kept.
type Str string

func (s Str) Type() *types.Type { return types.String }
func (s Str) String() string    { return string(s) }
func (s Str) Retain() Value     { return s }
func (s Str) Release()          {}

// DateTimeValue wraps a DateTime value, represented as an instant in time
// (UTC), independent of any display timezone.
type DateTimeValue struct {
	Instant time.Time
}

func NewDateTime(t time.Time) DateTimeValue { return DateTimeValue{Instant: t.UTC()} }

func (d DateTimeValue) Type() *types.Type { return types.DateTime }
func (d DateTimeValue) String() string    { return d.Instant.Format(time.RFC3339Nano) }
func (d DateTimeValue) Retain() Value     { return d }
func (d DateTimeValue) Release()          {}

// Blob wraps an opaque byte sequence.
type Blob []byte

func (b Blob) Type() *types.Type { return types.Blob }
func (b Blob) String() string    { return fmt.Sprintf("blob(%d bytes)", len(b)) }
func (b Blob) Retain() Value     { return b }
func (b Blob) Release()          {}
