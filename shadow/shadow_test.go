package shadow

import (
	stderrors "errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/kowtow/errors"
	"github.com/wippyai/kowtow/object"
)

func mustObject(t *testing.T, v object.Value) object.Object {
	t.Helper()
	obj, ok := v.(object.Object)
	if !ok {
		t.Fatalf("Expected object, got %T", v)
	}
	return obj
}

func mustGet(t *testing.T, v object.Value, key object.Key) object.Value {
	t.Helper()
	got, err := object.Get(v, key)
	if err != nil {
		t.Fatalf("Get(%q) failed: %v", key, err)
	}
	return got
}

func mustPut(t *testing.T, v object.Value, key object.Key, value object.Value) {
	t.Helper()
	if err := object.Put(v, key, value); err != nil {
		t.Fatalf("Put(%q) failed: %v", key, err)
	}
}

func mustHas(t *testing.T, v object.Value, key object.Key) bool {
	t.Helper()
	ok, err := object.Has(v, key)
	if err != nil {
		t.Fatalf("Has(%q) failed: %v", key, err)
	}
	return ok
}

func mustExport(t *testing.T, v object.Value) any {
	t.Helper()
	out, err := object.Export(v)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	return out
}

func TestShadow_PlainValues(t *testing.T) {
	sp := NewSpace()
	for _, v := range []object.Value{nil, object.Undefined, 1, "s", true, 2.5} {
		if got := sp.Shadow(v); !object.SameValue(got, v) {
			t.Fatalf("Shadow(%v) = %v, want unchanged", v, got)
		}
	}
	if sp.Len() != 0 {
		t.Fatalf("primitives should not be registered, Len() = %d", sp.Len())
	}
}

func TestShadow_GetAndSet(t *testing.T) {
	r := object.NewRealm()
	orig := r.NewObject()
	view := NewSpace().Shadow(orig)

	mustPut(t, view, "xyz", 456)
	if v := mustGet(t, view, "xyz"); v != 456 {
		t.Fatalf("view.xyz = %v, want 456", v)
	}
	if v := mustGet(t, orig, "xyz"); !object.IsUndefined(v) {
		t.Fatalf("orig.xyz = %v, want undefined", v)
	}

	if v := mustGet(t, view, "abc"); !object.IsUndefined(v) {
		t.Fatalf("view.abc = %v, want undefined", v)
	}
	mustPut(t, orig, "abc", 123)
	if v := mustGet(t, view, "abc"); v != 123 {
		t.Fatalf("late write on orig should be visible, view.abc = %v", v)
	}
}

func TestShadow_DeepSet(t *testing.T) {
	r := object.NewRealm()
	orig := r.NewObject()
	mustPut(t, orig, "child", r.NewObject())
	view := NewSpace().Shadow(orig)

	mustPut(t, mustGet(t, view, "child"), "abc", 123)
	copyChild := mustGet(t, view, "child")
	mustPut(t, copyChild, "xyz", 456)

	if diff := cmp.Diff(map[string]any{"child": map[string]any{}}, mustExport(t, orig)); diff != "" {
		t.Fatalf("orig modified (-want +got):\n%s", diff)
	}
	want := map[string]any{"child": map[string]any{"abc": 123, "xyz": 456}}
	if diff := cmp.Diff(want, mustExport(t, view)); diff != "" {
		t.Fatalf("view mismatch (-want +got):\n%s", diff)
	}
}

func TestShadow_MethodThis(t *testing.T) {
	r := object.NewRealm()
	orig := r.NewObject()
	mustPut(t, orig, "xyz", r.NewFunction("xyz", func(this object.Value, _ []object.Value) (object.Value, error) {
		return object.Undefined, object.Put(this, "value", 123)
	}))
	view := NewSpace().Shadow(orig)

	if _, err := object.CallMethod(view, "xyz"); err != nil {
		t.Fatalf("CallMethod failed: %v", err)
	}
	if v := mustGet(t, orig, "value"); !object.IsUndefined(v) {
		t.Fatalf("orig.value = %v, want undefined", v)
	}
	if v := mustGet(t, view, "value"); v != 123 {
		t.Fatalf("view.value = %v, want 123", v)
	}
}

func TestShadow_DeleteAndHas(t *testing.T) {
	r := object.NewRealm()
	orig := r.NewObject()
	view := NewSpace().Shadow(orig)

	mustPut(t, view, "xyz", 456)
	if !mustHas(t, view, "xyz") || mustHas(t, orig, "xyz") {
		t.Fatal("xyz should exist on view only")
	}

	mustPut(t, orig, "abc", 123)
	if !mustHas(t, view, "abc") {
		t.Fatal("view should see late abc")
	}
	if _, err := object.DeleteProperty(orig, "abc"); err != nil {
		t.Fatalf("DeleteProperty failed: %v", err)
	}
	if mustHas(t, view, "abc") {
		t.Fatal("view should see abc removed from orig")
	}

	if ok, err := object.DeleteProperty(view, "xyz"); err != nil || !ok {
		t.Fatalf("DeleteProperty(view) = %v, %v", ok, err)
	}
	if mustHas(t, view, "xyz") {
		t.Fatal("view should no longer have xyz")
	}
	if _, ok, _ := object.Describe(view, "xyz"); ok {
		t.Fatal("deleted key should have no descriptor")
	}

	mustPut(t, view, "xyz", 789)
	if !mustHas(t, view, "xyz") || mustHas(t, orig, "xyz") {
		t.Fatal("xyz should be back on view only")
	}
	if _, ok, _ := object.Describe(view, "xyz"); !ok {
		t.Fatal("rewritten key should have a descriptor")
	}
}

func TestShadow_DeleteTombstonesOriginal(t *testing.T) {
	r := object.NewRealm()
	orig := r.NewObject()
	mustPut(t, orig, "a", 1)
	mustPut(t, orig, "b", 2)
	sp := NewSpace()
	view := sp.Shadow(orig)

	if _, err := object.DeleteProperty(view, "a"); err != nil {
		t.Fatalf("DeleteProperty failed: %v", err)
	}
	if mustHas(t, view, "a") {
		t.Fatal("a should be hidden on view")
	}
	if v := mustGet(t, view, "a"); !object.IsUndefined(v) {
		t.Fatalf("view.a = %v, want undefined", v)
	}
	if v := mustGet(t, orig, "a"); v != 1 {
		t.Fatalf("orig.a = %v, want 1", v)
	}
	keys, _ := object.Keys(view)
	if diff := cmp.Diff([]object.Key{"b"}, keys); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}

	// Inherited keys are not tombstoned.
	if _, err := object.DeleteProperty(view, "toString"); err != nil {
		t.Fatalf("DeleteProperty failed: %v", err)
	}
	rec, _ := sp.Overlay(view)
	if diff := cmp.Diff([]object.Key{"a"}, rec.DeletedKeys()); diff != "" {
		t.Fatalf("tombstones mismatch (-want +got):\n%s", diff)
	}
}

func TestShadow_DeleteDoesNotRunGetter(t *testing.T) {
	r := object.NewRealm()
	orig := r.NewObject()
	calls := 0
	getter := r.NewMethod("get", func(object.Value, []object.Value) (object.Value, error) {
		calls++
		return 1, nil
	})
	if err := object.DefineProperty(orig, "g", object.Accessor(getter, nil)); err != nil {
		t.Fatalf("DefineProperty failed: %v", err)
	}
	view := NewSpace().Shadow(orig)

	if _, err := object.DeleteProperty(view, "g"); err != nil {
		t.Fatalf("DeleteProperty failed: %v", err)
	}
	if calls != 0 {
		t.Fatalf("getter called %d times", calls)
	}
	if mustHas(t, view, "g") {
		t.Fatal("g should be hidden")
	}
}

func TestShadow_RefMatching(t *testing.T) {
	r := object.NewRealm()
	child := r.NewObject()
	orig := r.NewObject()
	mustPut(t, orig, "a", child)
	mustPut(t, orig, "b", child)
	view := NewSpace().Shadow(orig)

	a, b := mustGet(t, view, "a"), mustGet(t, view, "b")
	if a != b {
		t.Fatal("view refs should match")
	}
	if a == object.Value(child) {
		t.Fatal("view ref should not be the original child")
	}
}

func TestShadow_CircularRefs(t *testing.T) {
	r := object.NewRealm()
	orig := r.NewObject()
	mustPut(t, orig, "self", orig)
	view := NewSpace().Shadow(orig)

	if mustGet(t, view, "self") != view {
		t.Fatal("view.self should be view")
	}
	if mustGet(t, orig, "self") != object.Value(orig) {
		t.Fatal("orig.self should be orig")
	}
}

func TestShadow_DescriptorIdentity(t *testing.T) {
	r := object.NewRealm()
	orig := r.NewObject()
	child := r.NewObject()
	mustPut(t, orig, "child", child)
	view := NewSpace().Shadow(orig)

	p, ok, err := object.Describe(view, "child")
	if err != nil || !ok {
		t.Fatalf("Describe = %v, %v", ok, err)
	}
	if p.Value == object.Value(child) {
		t.Fatal("descriptor value should be shadowed")
	}
	if p.Value != mustGet(t, view, "child") {
		t.Fatal("descriptor value should match the read value")
	}
	if diff := cmp.Diff(mustExport(t, orig), mustExport(t, view)); diff != "" {
		t.Fatalf("structure mismatch (-orig +view):\n%s", diff)
	}
}

func TestShadow_DefineProperty(t *testing.T) {
	r := object.NewRealm()
	orig := r.NewObject()
	view := NewSpace().Shadow(orig)

	desc := object.Property{Value: 42, Writable: true, Enumerable: true, Configurable: true}
	if err := object.DefineProperty(view, "a", desc); err != nil {
		t.Fatalf("DefineProperty failed: %v", err)
	}
	if v := mustGet(t, view, "a"); v != 42 {
		t.Fatalf("view.a = %v, want 42", v)
	}
	if mustHas(t, orig, "a") {
		t.Fatal("orig should not be modified")
	}
	got, _, _ := object.Describe(view, "a")
	if got != desc {
		t.Fatalf("descriptor should be stored verbatim, got %+v", got)
	}
}

func TestShadow_GetterOnOriginal(t *testing.T) {
	r := object.NewRealm()
	orig := r.NewObject()
	view := NewSpace().Shadow(orig)

	correct := r.NewObject()
	calls := 0
	getter := r.NewMethod("get", func(object.Value, []object.Value) (object.Value, error) {
		calls++
		return correct, nil
	})
	if err := object.DefineProperty(orig, "xyz", object.Property{Getter: getter}); err != nil {
		t.Fatalf("DefineProperty failed: %v", err)
	}

	if !mustHas(t, orig, "xyz") || !mustHas(t, view, "xyz") {
		t.Fatal("xyz should be visible on both")
	}
	if calls != 0 {
		t.Fatalf("has should not run the getter, calls = %d", calls)
	}

	v := mustGet(t, view, "xyz")
	if calls != 1 {
		t.Fatalf("getter should run once, calls = %d", calls)
	}
	if v == object.Value(correct) {
		t.Fatal("getter result should be shadowed")
	}
}

func TestShadow_SelfRedefiningGetter(t *testing.T) {
	r := object.NewRealm()
	orig := r.NewObject()
	view := NewSpace().Shadow(orig)

	getter := r.NewMethod("get", func(object.Value, []object.Value) (object.Value, error) {
		if err := object.DefineProperty(orig, "xyz", object.Property{Value: 2}); err != nil {
			return nil, err
		}
		return 1, nil
	})
	if err := object.DefineProperty(orig, "xyz", object.Property{Getter: getter, Configurable: true}); err != nil {
		t.Fatalf("DefineProperty failed: %v", err)
	}

	if !mustHas(t, view, "xyz") {
		t.Fatal("view should have xyz")
	}
	for i, want := range []object.Value{1, 2, 2} {
		if v := mustGet(t, view, "xyz"); v != want {
			t.Fatalf("read %d: got %v, want %v", i, v, want)
		}
	}
}

func TestShadow_SetterOnOriginalIsMasked(t *testing.T) {
	r := object.NewRealm()
	orig := r.NewObject()
	view := NewSpace().Shadow(orig)

	setter := r.NewMethod("set", func(this object.Value, _ []object.Value) (object.Value, error) {
		return object.Undefined, object.Put(this, "abc", 123)
	})
	if err := object.DefineProperty(orig, "xyz", object.Property{Setter: setter}); err != nil {
		t.Fatalf("DefineProperty failed: %v", err)
	}

	mustPut(t, view, "xyz", 999)

	if v := mustGet(t, orig, "abc"); !object.IsUndefined(v) {
		t.Fatalf("orig.abc = %v, want undefined", v)
	}
	if v := mustGet(t, view, "abc"); !object.IsUndefined(v) {
		t.Fatalf("setter should not run, view.abc = %v", v)
	}
	if v := mustGet(t, view, "xyz"); v != 999 {
		t.Fatalf("view.xyz = %v, want 999", v)
	}
}

func TestShadow_NonConfigurable(t *testing.T) {
	r := object.NewRealm()
	orig := r.NewObject()
	if err := object.DefineProperty(orig, "abc", object.Property{Value: 123}); err != nil {
		t.Fatalf("DefineProperty failed: %v", err)
	}
	view := NewSpace().Shadow(orig)

	if v := mustGet(t, view, "abc"); v != 123 {
		t.Fatalf("view.abc = %v, want 123", v)
	}
	p, ok, err := object.Describe(view, "abc")
	if err != nil || !ok {
		t.Fatalf("Describe should succeed, got %v, %v", ok, err)
	}
	if p.Configurable || p.Value != 123 {
		t.Fatalf("unexpected descriptor %+v", p)
	}

	err = object.DefineProperty(view, "abc", object.DataProperty(1))
	if !errors.IsRedefinition(err) {
		t.Fatalf("Expected redefinition error, got %v", err)
	}
	if !stderrors.Is(err, errors.ErrRedefinition) {
		t.Fatal("error should match the sentinel")
	}
	if v := mustGet(t, view, "abc"); v != 123 {
		t.Fatalf("failed define must not change the view, got %v", v)
	}
}

func TestShadow_PrototypeSanity(t *testing.T) {
	r := object.NewRealm()
	orig := r.NewObject()
	view := NewSpace().Shadow(orig)

	if v := mustGet(t, view, "prototype"); !object.IsUndefined(v) {
		t.Fatalf("view.prototype = %v, want undefined", v)
	}
	proto, err := object.PrototypeOf(view)
	if err != nil || proto == nil {
		t.Fatalf("view should have a delegate, got %v, %v", proto, err)
	}
	if proto == object.Object(r.ObjectPrototype) {
		t.Fatal("delegate should be shadowed")
	}
	pp, err := object.PrototypeOf(proto)
	if err != nil || pp != nil {
		t.Fatalf("delegate's delegate should be nil, got %v, %v", pp, err)
	}
}

func TestShadow_OwnKeysOrder(t *testing.T) {
	r := object.NewRealm()
	orig := r.NewObject()
	mustPut(t, orig, "x", 1)
	mustPut(t, orig, "y", 2)
	mustPut(t, orig, "z", 3)
	view := NewSpace().Shadow(orig)

	mustPut(t, view, "new", 4)
	mustPut(t, view, "y", 20)
	if _, err := object.DeleteProperty(view, "z"); err != nil {
		t.Fatalf("DeleteProperty failed: %v", err)
	}
	mustPut(t, orig, "late", 5)

	keys, err := object.Keys(view)
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if diff := cmp.Diff([]object.Key{"x", "y", "late", "new"}, keys); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestShadow_OverlaidAccessor(t *testing.T) {
	r := object.NewRealm()
	orig := r.NewObject()
	view := mustObject(t, NewSpace().Shadow(orig))

	var seen object.Value
	getter := r.NewMethod("get", func(this object.Value, _ []object.Value) (object.Value, error) {
		seen = this
		return "computed", nil
	})
	if err := object.DefineProperty(view, "acc", object.Accessor(getter, nil)); err != nil {
		t.Fatalf("DefineProperty failed: %v", err)
	}
	if v := mustGet(t, view, "acc"); v != "computed" {
		t.Fatalf("view.acc = %v", v)
	}
	if seen != object.Value(view) {
		t.Fatal("overlaid getter should run with the shadow as this")
	}

	if err := object.DefineProperty(view, "wo", object.Accessor(nil, getter)); err != nil {
		t.Fatalf("DefineProperty failed: %v", err)
	}
	if v := mustGet(t, view, "wo"); !object.IsUndefined(v) {
		t.Fatalf("accessor without getter should read undefined, got %v", v)
	}
}

func TestShadow_WriteKeepsIdentity(t *testing.T) {
	r := object.NewRealm()
	orig := r.NewObject()
	v := r.NewObject()
	sp := NewSpace()
	view := sp.Shadow(orig)

	mustPut(t, view, "k", v)
	if got := mustGet(t, view, "k"); got != object.Value(v) {
		t.Fatalf("view.k = %v, want the written object", got)
	}
	p, ok, err := object.Describe(view, "k")
	if err != nil || !ok || p.Value != object.Value(v) {
		t.Fatalf("Describe(view.k) = %v, %v, %v", p.Value, ok, err)
	}
	if sp.IsShadow(v) {
		t.Fatal("a written object should not be shadowed")
	}
	if mustHas(t, orig, "k") {
		t.Fatal("orig.k should not exist")
	}

	// A shadow of another original is stored as-is too.
	child := sp.Shadow(r.NewObject())
	mustPut(t, view, "child", child)
	if mustGet(t, view, "child") != child {
		t.Fatal("view.child should be the written shadow")
	}
}

func TestShadow_InheritedWritePassthrough(t *testing.T) {
	r := object.NewRealm()
	base := r.NewObject()
	mustPut(t, base, "shared", 1)
	sp := NewSpace()
	baseShadow := mustObject(t, sp.Shadow(base))

	inst := object.ObjectCreate(baseShadow)
	mustPut(t, inst, "shared", 2)

	if ok, _ := object.HasOwn(inst, "shared"); !ok {
		t.Fatal("write should land on the plain receiver")
	}
	if v := mustGet(t, base, "shared"); v != 1 {
		t.Fatalf("base.shared = %v, want 1", v)
	}
	if v := mustGet(t, baseShadow, "shared"); v != 1 {
		t.Fatalf("baseShadow.shared = %v, want 1", v)
	}
}

func TestShadow_SetWithShadowReceiver(t *testing.T) {
	r := object.NewRealm()
	a, b := r.NewObject(), r.NewObject()
	sp := NewSpace()
	as, bs := mustObject(t, sp.Shadow(a)), mustObject(t, sp.Shadow(b))

	ok, err := as.Set("k", 1, bs)
	if err != nil || !ok {
		t.Fatalf("Set = %v, %v", ok, err)
	}
	if !mustHas(t, bs, "k") {
		t.Fatal("write should land in the receiving shadow's overlay")
	}
	if mustHas(t, as, "k") || mustHas(t, a, "k") || mustHas(t, b, "k") {
		t.Fatal("write should not leak elsewhere")
	}

	v := r.NewObject()
	if _, err := as.Set("obj", v, bs); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if mustGet(t, bs, "obj") != object.Value(v) {
		t.Fatal("receiver overlay should keep the written object")
	}
}

func TestShadow_Extensibility(t *testing.T) {
	r := object.NewRealm()
	orig := r.NewObject()
	view := mustObject(t, NewSpace().Shadow(orig))

	if ok, _ := view.IsExtensible(); !ok {
		t.Fatal("view should start extensible")
	}
	if ok, _ := view.PreventExtensions(); !ok {
		t.Fatal("PreventExtensions failed")
	}
	if ok, _ := orig.IsExtensible(); ok {
		t.Fatal("PreventExtensions is forwarded to the original")
	}

	p := r.NewObject()
	if ok, _ := view.SetPrototypeOf(p); ok {
		t.Fatal("sealed original should refuse a new delegate")
	}
}

func TestShadow_Class(t *testing.T) {
	r := object.NewRealm()
	sp := NewSpace()
	if c := object.ClassOf(sp.Shadow(r.NewArray(1))); c != "Array" {
		t.Fatalf("Expected Array, got %s", c)
	}
	if n := object.TypeName(sp.Shadow(r.NewFunction("f", nil))); n != "function" {
		t.Fatalf("Expected function, got %s", n)
	}
	if n := object.TypeName(sp.Shadow(r.NewObject())); n != "object" {
		t.Fatalf("Expected object, got %s", n)
	}
}

func TestShadow_ArrayView(t *testing.T) {
	r := object.NewRealm()
	orig := r.NewArray("a", "b")
	view := NewSpace().Shadow(orig)

	mustPut(t, view, "0", "z")
	want := []any{"z", "b"}
	if diff := cmp.Diff(want, mustExport(t, view)); diff != "" {
		t.Fatalf("view mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{"a", "b"}, mustExport(t, orig)); diff != "" {
		t.Fatalf("orig modified (-want +got):\n%s", diff)
	}
}
