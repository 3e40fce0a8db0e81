package object

// Property is the attribute-record of one own property: either a data slot
// (Value, Writable) or an accessor (Getter, Setter), plus the Enumerable and
// Configurable flags.
type Property struct {
	Value        Value
	Getter       Invocable
	Setter       Invocable
	Writable     bool
	Enumerable   bool
	Configurable bool
}

// IsAccessor reports whether the record carries a getter or setter.
func (p Property) IsAccessor() bool {
	return p.Getter != nil || p.Setter != nil
}

// DataProperty returns a writable, enumerable, configurable data slot.
func DataProperty(v Value) Property {
	return Property{Value: v, Writable: true, Enumerable: true, Configurable: true}
}

// HiddenProperty returns a writable, configurable slot that is skipped by
// enumeration-based walks such as Export.
func HiddenProperty(v Value) Property {
	return Property{Value: v, Writable: true, Configurable: true}
}

// FrozenProperty returns an enumerable slot that can be neither written nor
// redefined.
func FrozenProperty(v Value) Property {
	return Property{Value: v, Enumerable: true}
}

// Accessor returns an enumerable, configurable accessor record.
func Accessor(get, set Invocable) Property {
	return Property{Getter: get, Setter: set, Enumerable: true, Configurable: true}
}

func sameInvocable(a, b Invocable) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return SameValue(a, b)
}
