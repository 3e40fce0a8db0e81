// Package console implements the command language of the kowtow CLI: a
// session holds an original object graph and a shadow of it, and commands
// read, write and compare the two.
package console

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/kowtow/errors"
	"github.com/wippyai/kowtow/object"
	"github.com/wippyai/kowtow/registry"
	"github.com/wippyai/kowtow/shadow"
)

// Help lists the available commands.
const Help = `commands:
  get PATH          read PATH through the shadow
  orig PATH         read PATH from the original
  set PATH VALUE    write a YAML value through the shadow
  del PATH          delete PATH through the shadow
  has PATH          report whether PATH is visible on the shadow
  keys [PATH]       list own keys through the shadow
  desc PATH         describe the own property at PATH
  proto [PATH]      show the delegate of PATH
  call PATH [ARGS]  call the function at PATH with YAML arguments
  diff              show the original, the shadow and every overlay
  release PATH      forget the shadow of the original at PATH
  reset             drop every overlay and start over
  help              show this help
PATH is dot-separated; "." is the root.`

// Session is a console over one original graph and its shadow.
type Session struct {
	realm  *object.Realm
	root   object.Value
	space  *shadow.Space
	view   object.Value
	logger *zap.Logger
}

// NewSession shadows root in a new Space built from cfg.
func NewSession(realm *object.Realm, root object.Value, cfg *shadow.Config) *Session {
	sp := shadow.NewSpaceWithConfig(cfg)
	l := shadow.Logger()
	if cfg != nil && cfg.Logger != nil {
		l = cfg.Logger
	}
	return &Session{
		realm:  realm,
		root:   root,
		space:  sp,
		view:   sp.Shadow(root),
		logger: l,
	}
}

// Space returns the session's shadow space.
func (s *Session) Space() *shadow.Space {
	return s.space
}

// View returns the shadow of the root.
func (s *Session) View() object.Value {
	return s.view
}

// Root returns the original root.
func (s *Session) Root() object.Value {
	return s.root
}

// Mount installs v under key on the original root.
func (s *Session) Mount(key string, v object.Value) error {
	return object.Put(s.root, key, v)
}

// Exec runs one command line and returns its output.
func (s *Session) Exec(line string) (string, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", nil
	}
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	s.logger.Debug("console command", zap.String("cmd", cmd), zap.String("args", rest))

	switch cmd {
	case "get":
		return s.read(s.view, rest)
	case "orig":
		return s.read(s.root, rest)
	case "set":
		return s.set(rest)
	case "del":
		return s.del(rest)
	case "has":
		return s.has(rest)
	case "keys":
		return s.keys(rest)
	case "desc":
		return s.desc(rest)
	case "proto":
		return s.proto(rest)
	case "call":
		return s.call(rest)
	case "diff":
		return s.diff()
	case "release":
		return s.release(rest)
	case "reset":
		s.space.Clear()
		s.view = s.space.Shadow(s.root)
		return "ok", nil
	case "help":
		return Help, nil
	default:
		return "", errors.New(errors.PhaseParse, errors.KindNotFound).
			Detail("unknown command %q (try help)", cmd).
			Build()
	}
}

// Run executes commands read line by line from r and writes their output
// to w. Command errors are reported and do not stop the loop.
func (s *Session) Run(r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		out, err := s.Exec(sc.Text())
		if err != nil {
			fmt.Fprintf(w, "error: %v\n", err)
			continue
		}
		if out != "" {
			fmt.Fprintln(w, out)
		}
	}
	return sc.Err()
}

func splitPath(path string) []object.Key {
	path = strings.Trim(strings.TrimSpace(path), ".")
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

// parent resolves every segment but the last.
func parent(base object.Value, path string) (object.Value, object.Key, error) {
	keys := splitPath(path)
	if len(keys) == 0 {
		return nil, "", errors.InvalidInput(errors.PhaseParse, "path must name a property")
	}
	p, err := object.GetPath(base, keys[:len(keys)-1]...)
	if err != nil {
		return nil, "", err
	}
	return p, keys[len(keys)-1], nil
}

func (s *Session) read(base object.Value, path string) (string, error) {
	v, err := object.GetPath(base, splitPath(path)...)
	if err != nil {
		return "", err
	}
	return Format(v)
}

func (s *Session) set(args string) (string, error) {
	path, raw, ok := strings.Cut(args, " ")
	if !ok {
		return "", errors.InvalidInput(errors.PhaseParse, "usage: set PATH VALUE")
	}
	p, key, err := parent(s.view, path)
	if err != nil {
		return "", err
	}
	v, err := ParseValue(s.realm, strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	if err := object.Put(p, key, v); err != nil {
		return "", err
	}
	return "ok", nil
}

func (s *Session) del(path string) (string, error) {
	p, key, err := parent(s.view, path)
	if err != nil {
		return "", err
	}
	ok, err := object.DeleteProperty(p, key)
	if err != nil {
		return "", err
	}
	return fmt.Sprint(ok), nil
}

func (s *Session) has(path string) (string, error) {
	p, key, err := parent(s.view, path)
	if err != nil {
		return "", err
	}
	ok, err := object.Has(p, key)
	if err != nil {
		return "", err
	}
	return fmt.Sprint(ok), nil
}

func (s *Session) keys(path string) (string, error) {
	v, err := object.GetPath(s.view, splitPath(path)...)
	if err != nil {
		return "", err
	}
	keys, err := object.Keys(v)
	if err != nil {
		return "", err
	}
	return "[" + strings.Join(keys, ", ") + "]", nil
}

func (s *Session) desc(path string) (string, error) {
	p, key, err := parent(s.view, path)
	if err != nil {
		return "", err
	}
	prop, ok, err := object.Describe(p, key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "undefined", nil
	}
	return formatProperty(prop)
}

// release drops the shadow of the original at path, discarding its
// overlay. The next read through the view builds a fresh shadow.
func (s *Session) release(path string) (string, error) {
	keys := splitPath(path)
	if len(keys) == 0 {
		return "", errors.InvalidInput(errors.PhaseParse, "usage: release PATH")
	}
	v, err := object.GetPath(s.root, keys...)
	if err != nil {
		return "", err
	}
	return fmt.Sprint(s.space.Release(v)), nil
}

func (s *Session) proto(path string) (string, error) {
	v, err := object.GetPath(s.view, splitPath(path)...)
	if err != nil {
		return "", err
	}
	p, err := object.PrototypeOf(v)
	if err != nil {
		return "", err
	}
	if p == nil {
		return "null", nil
	}
	desc := object.ClassOf(p)
	if l, ok := p.(interface{ Label() string }); ok && s.space.IsShadow(p) {
		desc += " shadow " + l.Label()
	}
	return desc, nil
}

func (s *Session) call(args string) (string, error) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return "", errors.InvalidInput(errors.PhaseParse, "usage: call PATH [ARGS]")
	}
	p, key, err := parent(s.view, fields[0])
	if err != nil {
		return "", err
	}
	callArgs := make([]object.Value, 0, len(fields)-1)
	for _, f := range fields[1:] {
		v, err := ParseValue(s.realm, f)
		if err != nil {
			return "", err
		}
		callArgs = append(callArgs, v)
	}
	res, err := object.CallMethod(p, key, callArgs...)
	if err != nil {
		return "", err
	}
	return Format(res)
}

func (s *Session) diff() (string, error) {
	orig, err := Format(s.root)
	if err != nil {
		return "", err
	}
	view, err := Format(s.view)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "original: %s\n", orig)
	fmt.Fprintf(&b, "shadow:   %s", view)

	var lines []string
	s.space.Registry().Each(func(_ registry.Handle, e registry.Entry) bool {
		if e.Record == nil || e.Record.Len() == 0 {
			return true
		}
		lines = append(lines, fmt.Sprintf("  %s: writes=[%s] deletes=[%s]", e.Label,
			strings.Join(e.Record.WriteKeys(), ", "), strings.Join(e.Record.DeletedKeys(), ", ")))
		return true
	})
	sort.Strings(lines)
	if len(lines) > 0 {
		b.WriteString("\noverlays:\n")
		b.WriteString(strings.Join(lines, "\n"))
	}
	return b.String(), nil
}
