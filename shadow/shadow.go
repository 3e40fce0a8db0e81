package shadow

import (
	"go.uber.org/zap"

	"github.com/wippyai/kowtow/errors"
	"github.com/wippyai/kowtow/object"
	"github.com/wippyai/kowtow/overlay"
)

const protoLabel = "<prototype>"

// Shadow intercepts every reflective operation on one original. The
// concrete value handed out by a Space is a *Shadow, or a wrapper adding
// Call and Construct when the original supports them.
type Shadow struct {
	space  *Space
	target object.Object
	record *overlay.Record
	self   object.Object
	label  string
}

var _ object.Object = (*Shadow)(nil)

// Label returns the diagnostic name of the shadow.
func (s *Shadow) Label() string {
	return s.label
}

// Class reports the class tag of the original.
func (s *Shadow) Class() string {
	return object.ClassOf(s.target)
}

func (s *Shadow) child(key object.Key) string {
	return s.label + "." + key
}

// Get reads key. Tombstoned keys read as Undefined, overlaid data is
// returned as stored, and overlaid accessors run with receiver as this.
// Anything else is read from the original and shadowed.
func (s *Shadow) Get(key object.Key, receiver object.Value) (object.Value, error) {
	if s.record.Deleted(key) {
		return object.Undefined, nil
	}
	if p, ok := s.record.Lookup(key); ok {
		if !p.IsAccessor() {
			return p.Value, nil
		}
		if p.Getter == nil {
			return object.Undefined, nil
		}
		if receiver == nil {
			receiver = s.self
		}
		return p.Getter.Call(receiver, nil)
	}
	v, err := s.target.Get(key, s.target)
	if err != nil {
		return nil, err
	}
	return s.space.shadow(v, s.child(key)), nil
}

// GetOwnProperty reports the own record of key as seen through the
// overlay. Data values coming from the original are shadowed; accessors
// are reported as-is.
func (s *Shadow) GetOwnProperty(key object.Key) (object.Property, bool, error) {
	if s.record.Deleted(key) {
		return object.Property{}, false, nil
	}
	if p, ok := s.record.Lookup(key); ok {
		return p, true, nil
	}
	p, ok, err := s.target.GetOwnProperty(key)
	if err != nil || !ok {
		return object.Property{}, false, err
	}
	if !p.IsAccessor() {
		p.Value = s.space.shadow(p.Value, s.child(key))
	}
	return p, true, nil
}

// HasProperty answers from the overlay first, then the original's chain.
// Getters are never run.
func (s *Shadow) HasProperty(key object.Key) (bool, error) {
	if _, ok := s.record.Lookup(key); ok {
		return true, nil
	}
	if s.record.Deleted(key) {
		return false, nil
	}
	return s.target.HasProperty(key)
}

// Set stores value as given in the overlay of the receiving shadow, so a
// later Get returns the same value. Setters on the original are not
// consulted. When the receiver is not a shadow of this
// Space, the assignment is forwarded to the original with that receiver.
func (s *Shadow) Set(key object.Key, value object.Value, receiver object.Value) (bool, error) {
	if receiver == nil || object.SameValue(receiver, s.self) {
		s.record.Write(key, object.DataProperty(value))
		return true, nil
	}
	if recv, ok := receiver.(object.Object); ok && s.space.IsShadow(recv) {
		rec, _ := s.space.registry.RecordOf(recv)
		rec.Write(key, object.DataProperty(value))
		return true, nil
	}
	s.space.logger.Debug("passthrough write", zap.String("label", s.label), zap.String("key", key))
	return s.target.Set(key, value, receiver)
}

// DefineOwnProperty stores desc verbatim in the overlay unless the current
// record is non-configurable.
func (s *Shadow) DefineOwnProperty(key object.Key, desc object.Property) error {
	cur, ok, err := s.GetOwnProperty(key)
	if err != nil {
		return err
	}
	if ok && !cur.Configurable {
		return errors.Redefinition(key)
	}
	s.record.Write(key, desc)
	return nil
}

// Delete drops any pending write and tombstones key when the original has
// it as an own property. It always succeeds.
func (s *Shadow) Delete(key object.Key) (bool, error) {
	s.record.Forget(key)
	_, ok, err := s.target.GetOwnProperty(key)
	if err != nil {
		return false, err
	}
	if ok {
		s.record.Tombstone(key)
	}
	return true, nil
}

// OwnKeys merges the original's own keys with the overlay.
func (s *Shadow) OwnKeys() ([]object.Key, error) {
	keys, err := s.target.OwnKeys()
	if err != nil {
		return nil, err
	}
	return s.record.Merge(keys), nil
}

// GetPrototypeOf returns the shadow of the original's delegate.
func (s *Shadow) GetPrototypeOf() (object.Object, error) {
	p, err := s.target.GetPrototypeOf()
	if err != nil || p == nil {
		return nil, err
	}
	v, _ := s.space.shadow(p, s.child(protoLabel)).(object.Object)
	return v, nil
}

// SetPrototypeOf changes the original's delegate.
func (s *Shadow) SetPrototypeOf(proto object.Object) (bool, error) {
	return s.target.SetPrototypeOf(proto)
}

// IsExtensible reports on the original.
func (s *Shadow) IsExtensible() (bool, error) {
	return s.target.IsExtensible()
}

// PreventExtensions seals the original.
func (s *Shadow) PreventExtensions() (bool, error) {
	return s.target.PreventExtensions()
}

// callableShadow is the shadow of an invocable original.
type callableShadow struct {
	*Shadow
}

// Call invokes the original with this as given. The result is not shadowed.
func (s *callableShadow) Call(this object.Value, args []object.Value) (object.Value, error) {
	fn, ok := s.target.(object.Invocable)
	if !ok {
		return nil, errors.NotCallable(errors.PhaseInvoke, object.TypeName(s.target))
	}
	return fn.Call(this, args)
}

// constructorShadow is the shadow of a constructible original.
type constructorShadow struct {
	callableShadow
}

// Construct builds an instance through the original. A nil newTarget means
// the shadow itself, so instances delegate to the shadowed prototype.
func (s *constructorShadow) Construct(args []object.Value, newTarget object.Object) (object.Value, error) {
	ctor, ok := s.target.(object.Constructible)
	if !ok {
		return nil, errors.NotConstructible(object.TypeName(s.target))
	}
	if newTarget == nil {
		newTarget = s.self
	}
	return ctor.Construct(args, newTarget)
}
