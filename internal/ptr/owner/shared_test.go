package owner

import (
	"errors"
	"testing"
)

// ========================================
// Shared Construction Tests
// ========================================

// TestShared_New verifies a fresh owner has strong=1 and no observers.
func TestShared_New(t *testing.T) {
	v := 42
	s := NewShared(&v)

	if !s.Valid() || s.Get() != &v {
		t.Fatal("NewShared did not take ownership")
	}
	if got := s.UseCount(); got != 1 {
		t.Errorf("UseCount() = %d, want 1", got)
	}
	if got := s.cb.WeakCount(); got != 0 {
		t.Errorf("WeakCount() = %d, want 0", got)
	}

	t.Logf("NewShared: %s", s)
}

// TestShared_NewNil verifies a nil pointer yields the null owner.
func TestShared_NewNil(t *testing.T) {
	s := NewShared[int](nil)

	if s.Valid() || s.Get() != nil || s.UseCount() != 0 {
		t.Errorf("NewShared(nil) = %s, want null owner", s)
	}
	if err := s.Reset(); err != nil {
		t.Errorf("Reset() on null owner = %v", err)
	}
}

// TestShared_ZeroValue verifies the zero value behaves as the null owner.
func TestShared_ZeroValue(t *testing.T) {
	var s Shared[string]

	if s.Valid() || s.UseCount() != 0 {
		t.Fatal("zero Shared is not null")
	}
	c := s.Clone()
	if c.Valid() {
		t.Error("Clone of null owner is valid")
	}
	if !s.Weak().Expired() {
		t.Error("Weak of null owner is not expired")
	}
}

// ========================================
// Counting Tests
// ========================================

// TestShared_CloneAndReset verifies the strong count tracks live owners.
func TestShared_CloneAndReset(t *testing.T) {
	r := &resource{}
	a := NewShared(r)
	b := a.Clone()
	c := b.Clone()

	for _, s := range []*Shared[resource]{a, b, c} {
		if got := s.UseCount(); got != 3 {
			t.Fatalf("UseCount() = %d, want 3", got)
		}
	}
	if !a.SameOwner(c) {
		t.Error("clones do not share a control block")
	}

	_ = a.Reset()
	_ = b.Reset()
	if r.closed.Load() != 0 {
		t.Fatal("object destroyed while an owner remains")
	}
	if got := c.UseCount(); got != 1 {
		t.Errorf("UseCount() = %d, want 1", got)
	}

	_ = c.Reset()
	if r.closed.Load() != 1 {
		t.Errorf("object closed %d times, want 1", r.closed.Load())
	}
}

// TestShared_ResetReturnsDeleterError verifies only the last release reports the error.
func TestShared_ResetReturnsDeleterError(t *testing.T) {
	r := &resource{err: errClose}
	a := NewShared(r)
	b := a.Clone()

	if err := a.Reset(); err != nil {
		t.Fatalf("non-final Reset() = %v", err)
	}
	if err := b.Close(); !errors.Is(err, errClose) {
		t.Errorf("final Close() = %v, want %v", err, errClose)
	}
}

// TestShared_CustomDeleter verifies the deleter runs once after all owners are gone.
func TestShared_CustomDeleter(t *testing.T) {
	del, calls := countingDeleter[int]()
	v := 7
	a := NewShared(&v, WithDeleter(del))
	b := a.Clone()
	w := a.Weak()

	_ = a.Reset()
	if calls.Load() != 0 {
		t.Fatal("deleter ran while an owner remains")
	}
	_ = b.Reset()
	w.Reset()

	if got := calls.Load(); got != 1 {
		t.Errorf("deleter ran %d times, want 1", got)
	}
}

// ========================================
// Assign Tests
// ========================================

// TestShared_Assign verifies copy-assign releases the old object and retains the new one.
func TestShared_Assign(t *testing.T) {
	r1, r2 := &resource{id: 1}, &resource{id: 2}
	a := NewShared(r1)
	b := NewShared(r2)

	if err := a.Assign(b); err != nil {
		t.Fatalf("Assign() = %v", err)
	}

	if r1.closed.Load() != 1 {
		t.Error("old object not destroyed after its last owner was reassigned")
	}
	if a.Get() != r2 || b.UseCount() != 2 {
		t.Errorf("after Assign: a=%s b=%s", a, b)
	}
}

// TestShared_AssignSelf verifies self-assignment does not touch the count.
func TestShared_AssignSelf(t *testing.T) {
	r := &resource{}
	a := NewShared(r)

	_ = a.Assign(a)

	if a.UseCount() != 1 || r.closed.Load() != 0 {
		t.Errorf("self-assign changed state: %s closed=%d", a, r.closed.Load())
	}
}

// TestShared_AssignSameBlock verifies assignment between co-owners is count-neutral.
func TestShared_AssignSameBlock(t *testing.T) {
	a := NewShared(&resource{})
	b := a.Clone()

	_ = b.Assign(a)

	if got := a.UseCount(); got != 2 {
		t.Errorf("UseCount() = %d, want 2", got)
	}
}

// TestShared_AssignNull verifies assigning the null owner releases.
func TestShared_AssignNull(t *testing.T) {
	r := &resource{}
	a := NewShared(r)

	_ = a.Assign(&Shared[resource]{})

	if a.Valid() || r.closed.Load() != 1 {
		t.Error("assigning null did not release the object")
	}
}

// TestShared_AssignFromOwnedChild verifies the new object survives when the old
// object's deleter releases the handle being assigned from.
func TestShared_AssignFromOwnedChild(t *testing.T) {
	child := &resource{id: 2}
	childOwner := NewShared(child)

	parentDel := func(*resource) error {
		return childOwner.Reset()
	}
	parent := NewShared(&resource{id: 1}, WithDeleter(parentDel))

	_ = parent.Assign(childOwner)

	if child.closed.Load() != 0 {
		t.Fatal("assigned object destroyed by the old object's deleter")
	}
	if parent.Get() != child || parent.UseCount() != 1 {
		t.Errorf("parent = %s, want sole owner of child", parent)
	}
}

// ========================================
// Move Tests
// ========================================

// TestShared_Move verifies move transfers without touching the count.
func TestShared_Move(t *testing.T) {
	v := 5
	a := NewShared(&v)
	b := a.Clone()

	c := a.Move()

	if a.Valid() || a.Get() != nil {
		t.Fatal("moved-from owner is not null")
	}
	if got := c.UseCount(); got != 2 {
		t.Errorf("UseCount() after move = %d, want 2", got)
	}
	if !c.SameOwner(b) {
		t.Error("moved owner lost its control block")
	}
}

// TestShared_MoveFrom verifies move-assign releases the destination's old object.
func TestShared_MoveFrom(t *testing.T) {
	r1, r2 := &resource{id: 1}, &resource{id: 2}
	a := NewShared(r1)
	b := NewShared(r2)

	_ = a.MoveFrom(b)

	if r1.closed.Load() != 1 {
		t.Error("old object not destroyed")
	}
	if b.Valid() || a.Get() != r2 || a.UseCount() != 1 {
		t.Errorf("after MoveFrom: a=%s b=%s", a, b)
	}

	_ = a.MoveFrom(a)
	if a.UseCount() != 1 || r2.closed.Load() != 0 {
		t.Error("self-move changed state")
	}
}

// TestShared_MoveFromCoOwner verifies moving between owners of one block drops one reference.
func TestShared_MoveFromCoOwner(t *testing.T) {
	a := NewShared(&resource{})
	b := a.Clone()

	_ = a.MoveFrom(b)

	if got := a.UseCount(); got != 1 {
		t.Errorf("UseCount() = %d, want 1", got)
	}
}

// TestShared_MoveFromPanickingDeleter verifies a panicking deleter on the
// released object does not lose the moved-in reference.
func TestShared_MoveFromPanickingDeleter(t *testing.T) {
	old := 1
	dst := NewShared(&old, WithDeleter(func(*int) error {
		panic("deleter")
	}))
	del, calls := countingDeleter[int]()
	v := 2
	src := NewShared(&v, WithDeleter(del))
	cb := src.cb

	func() {
		defer func() {
			if r := recover(); r != "deleter" {
				t.Errorf("recover() = %v, want deleter", r)
			}
		}()
		_ = dst.MoveFrom(src)
	}()

	if !dst.Valid() || dst.Get() != &v || src.Valid() {
		t.Fatalf("after panic: dst=%s src=%s, want dst to own the moved object", dst, src)
	}
	if got := cb.StrongCount(); got != 1 {
		t.Errorf("StrongCount() = %d, want 1", got)
	}

	_ = dst.Reset()
	_ = src.Reset()
	if calls.Load() != 1 {
		t.Errorf("moved object's deleter ran %d times, want 1", calls.Load())
	}
	if !cb.Freed() {
		t.Error("moved object's control block not freed")
	}
}

// TestShared_ResetToPanickingDeleter verifies the new object survives a
// panicking deleter on the replaced one.
func TestShared_ResetToPanickingDeleter(t *testing.T) {
	s := NewShared(&resource{id: 1}, WithDeleter(func(*resource) error {
		panic("deleter")
	}))
	r := &resource{id: 2}

	func() {
		defer func() { _ = recover() }()
		_ = s.ResetTo(r)
	}()

	if s.Get() != r || s.UseCount() != 1 {
		t.Fatalf("after panic: %s, want owner of the new object", s)
	}
	_ = s.Reset()
	if r.closed.Load() != 1 {
		t.Errorf("new object closed %d times, want 1", r.closed.Load())
	}
}

// TestShared_NilReceiver verifies read and release methods accept a nil handle.
func TestShared_NilReceiver(t *testing.T) {
	var s *Shared[int]

	if m := s.Move(); m == nil || m.Valid() {
		t.Error("Move() on nil did not return the null owner")
	}
	if c := s.Clone(); c == nil || c.Valid() {
		t.Error("Clone() on nil did not return the null owner")
	}
	if s.Valid() || s.UseCount() != 0 || s.Reset() != nil || !s.Weak().Expired() {
		t.Error("nil owner is not null")
	}
}

// ========================================
// Misc Tests
// ========================================

// TestShared_FromUnique verifies ownership and deleter move out of a Unique.
func TestShared_FromUnique(t *testing.T) {
	del, calls := countingDeleter[int]()
	v := 3
	u := NewUnique(&v, WithDeleter(del))

	s := SharedFromUnique(u)

	if !u.Empty() {
		t.Fatal("Unique not emptied")
	}
	if s.Get() != &v || s.UseCount() != 1 {
		t.Fatalf("SharedFromUnique = %s", s)
	}
	_ = s.Reset()
	if calls.Load() != 1 {
		t.Error("custom deleter not carried over")
	}

	if SharedFromUnique(u).Valid() {
		t.Error("SharedFromUnique(empty) is valid")
	}
}

// TestShared_ResetTo verifies replacing the object.
func TestShared_ResetTo(t *testing.T) {
	r1, r2 := &resource{id: 1}, &resource{id: 2}
	s := NewShared(r1)

	_ = s.ResetTo(r2)

	if r1.closed.Load() != 1 || s.Get() != r2 || s.UseCount() != 1 {
		t.Errorf("ResetTo: %s closed1=%d", s, r1.closed.Load())
	}
}

// TestShared_Swap verifies swapping keeps both counts intact.
func TestShared_Swap(t *testing.T) {
	x, y := 1, 2
	a := NewShared(&x)
	b := NewShared(&y)
	b2 := b.Clone()

	a.Swap(b)

	if *a.Get() != 2 || *b.Get() != 1 {
		t.Fatal("Swap did not exchange objects")
	}
	if a.UseCount() != 2 || b.UseCount() != 1 || !a.SameOwner(b2) {
		t.Error("Swap changed counts")
	}
}

// TestShared_SameOwnerNull verifies null owners never compare as the same owner.
func TestShared_SameOwnerNull(t *testing.T) {
	var a, b Shared[int]
	if a.SameOwner(&b) {
		t.Error("two null owners reported SameOwner")
	}
}
