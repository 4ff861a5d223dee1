// Package native is an example concrete platform for the East runtime:
// console, clock, and filesystem platform calls (§4.3.5) backed by real
// OS facilities. It is not part of the runtime's core — §1 scopes
// platform callbacks as an external collaborator the host supplies — but
// gives a host a ready-made registration for the common case of wanting a
// program to print, read the clock, or touch the filesystem.
//
// Grounded on pkg/platform/native's test-visible shape (NativeFileSystem,
// NativeConsole with output/input fields, NewNativePlatform exposing
// FS()/Console()/Now()) — adapted from a Go-interface-typed Platform
// (FileSystem/Console/Clock interfaces dispatched by method call) to
// East's named platform-call dispatch (§4.3.5): each former interface
// method becomes one named registry.PlatformFunc entry operating on
// values.Value arguments/results instead of Go-typed ones.
package native

import (
	"bufio"
	"io"
	"os"
	"time"

	"github.com/elaraai/east-go/internal/errs"
	"github.com/elaraai/east-go/internal/registry"
	"github.com/elaraai/east-go/internal/values"
)

// Platform bundles the console, clock, and filesystem callbacks this
// package registers, so a host can hold one value and register it, or
// register a subset via the individual RegisterX functions below.
type Platform struct {
	Console *Console
	Clock   Clock
}

// NewPlatform returns a Platform wired to the real process stdout/stdin
// and the system clock.
func NewPlatform() *Platform {
	return &Platform{
		Console: &Console{Output: os.Stdout, Input: os.Stdin},
		Clock:   systemClock{},
	}
}

// RegisterAll registers every platform call this package defines —
// console, clock, and filesystem — into reg.
func (p *Platform) RegisterAll(reg *registry.PlatformRegistry) error {
	if err := p.Console.Register(reg); err != nil {
		return err
	}
	if err := RegisterClock(reg, p.Clock); err != nil {
		return err
	}
	return RegisterFileSystem(reg)
}

// Console is the "print"/"println"/"readLine" platform call group,
// reading from Input and writing to Output — fields exposed directly (as
// the teacher's own NativeConsole does) so tests can substitute an
// in-memory buffer.
type Console struct {
	Output io.Writer
	Input  io.Reader
}

// Register inserts this Console's platform calls into reg:
//
//	print(s: String): Null      — write s with no trailing newline
//	println(s: String): Null    — write s followed by a newline
//	readLine(): String          — read one line from Input (no trailing newline)
func (c *Console) Register(reg *registry.PlatformRegistry) error {
	entries := map[string]registry.PlatformFunc{
		"print":    c.print,
		"println":  c.println,
		"readLine": c.readLine,
	}
	for name, fn := range entries {
		if err := reg.Register(name, registry.PlatformEntry{Callback: fn, Async: false}); err != nil {
			return err
		}
	}
	return nil
}

func (c *Console) print(args []values.Value) errs.Result {
	s, err := stringArg("print", args, 0)
	if err != nil {
		return errs.Err(err)
	}
	if _, werr := io.WriteString(c.Output, string(s)); werr != nil {
		return errs.Err(errs.New(errs.PlatformError, "print: %s", werr))
	}
	return errs.OK(values.Null)
}

func (c *Console) println(args []values.Value) errs.Result {
	s, err := stringArg("println", args, 0)
	if err != nil {
		return errs.Err(err)
	}
	if _, werr := io.WriteString(c.Output, string(s)+"\n"); werr != nil {
		return errs.Err(errs.New(errs.PlatformError, "println: %s", werr))
	}
	return errs.OK(values.Null)
}

func (c *Console) readLine(args []values.Value) errs.Result {
	if len(args) != 0 {
		return errs.Err(errs.New(errs.ArityError, "readLine: expected 0 argument(s), got %d", len(args)))
	}
	line, rerr := bufio.NewReader(c.Input).ReadString('\n')
	if rerr != nil && rerr != io.EOF {
		return errs.Err(errs.New(errs.PlatformError, "readLine: %s", rerr))
	}
	line = trimNewline(line)
	return errs.OK(values.Str(line))
}

func trimNewline(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\n' {
		s = s[:n-1]
		if n := len(s); n > 0 && s[n-1] == '\r' {
			s = s[:n-1]
		}
	}
	return s
}

// Clock supplies the current instant to the "now" platform call. Defined
// as an interface so tests can substitute a fixed clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// RegisterClock registers the "now" platform call:
//
//	now(): DateTime
func RegisterClock(reg *registry.PlatformRegistry, clock Clock) error {
	fn := func(args []values.Value) errs.Result {
		if len(args) != 0 {
			return errs.Err(errs.New(errs.ArityError, "now: expected 0 argument(s), got %d", len(args)))
		}
		return errs.OK(values.NewDateTime(clock.Now()))
	}
	return reg.Register("now", registry.PlatformEntry{Callback: fn, Async: false})
}

// RegisterFileSystem registers the filesystem platform call group,
// operating on the real OS filesystem:
//
//	fileExists(path: String): Boolean
//	fileReadString(path: String): String
//	fileWriteString(path: String, content: String): Null
//	fileDelete(path: String): Null
func RegisterFileSystem(reg *registry.PlatformRegistry) error {
	entries := map[string]registry.PlatformFunc{
		"fileExists":     fileExists,
		"fileReadString": fileReadString,
		"fileWriteString": fileWriteString,
		"fileDelete":      fileDelete,
	}
	for name, fn := range entries {
		if err := reg.Register(name, registry.PlatformEntry{Callback: fn, Async: false}); err != nil {
			return err
		}
	}
	return nil
}

func fileExists(args []values.Value) errs.Result {
	path, err := stringArg("fileExists", args, 0)
	if err != nil {
		return errs.Err(err)
	}
	_, statErr := os.Stat(string(path))
	return errs.OK(values.Bool(statErr == nil))
}

func fileReadString(args []values.Value) errs.Result {
	path, err := stringArg("fileReadString", args, 0)
	if err != nil {
		return errs.Err(err)
	}
	data, rerr := os.ReadFile(string(path))
	if rerr != nil {
		return errs.Err(errs.New(errs.PlatformError, "fileReadString: %s", rerr))
	}
	return errs.OK(values.Str(string(data)))
}

func fileWriteString(args []values.Value) errs.Result {
	if len(args) != 2 {
		return errs.Err(errs.New(errs.ArityError, "fileWriteString: expected 2 argument(s), got %d", len(args)))
	}
	path, err := stringArg("fileWriteString", args, 0)
	if err != nil {
		return errs.Err(err)
	}
	content, err := stringArg("fileWriteString", args, 1)
	if err != nil {
		return errs.Err(err)
	}
	if werr := os.WriteFile(string(path), []byte(content), 0o644); werr != nil {
		return errs.Err(errs.New(errs.PlatformError, "fileWriteString: %s", werr))
	}
	return errs.OK(values.Null)
}

func fileDelete(args []values.Value) errs.Result {
	path, err := stringArg("fileDelete", args, 0)
	if err != nil {
		return errs.Err(err)
	}
	if rerr := os.Remove(string(path)); rerr != nil {
		return errs.Err(errs.New(errs.PlatformError, "fileDelete: %s", rerr))
	}
	return errs.OK(values.Null)
}

func stringArg(name string, args []values.Value, i int) (values.Str, *errs.Error) {
	if i >= len(args) {
		return "", errs.New(errs.ArityError, "%s: expected at least %d argument(s), got %d", name, i+1, len(args))
	}
	s, ok := args[i].(values.Str)
	if !ok {
		return "", errs.New(errs.TypeMismatch, "%s: expected String argument, got %T", name, args[i])
	}
	return s, nil
}
