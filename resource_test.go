package dieselcmd

import "testing"

func TestRefDestroyOnce(t *testing.T) {
	destroyed := 0
	r := NewRef(func() { destroyed++ })
	r.Retain()
	r.Retain()
	if r.Count() != 3 {
		t.Fatalf("count = %d, want 3", r.Count())
	}
	r.Release()
	r.Release()
	if destroyed != 0 || !r.Live() {
		t.Fatal("destroyed while still referenced")
	}
	r.Release()
	if destroyed != 1 || r.Live() {
		t.Fatalf("destroyed %d times, want 1", destroyed)
	}
}

func TestRefMisuse(t *testing.T) {
	r := NewRef(nil)
	r.Release()
	mustPanic(t, r.Retain)

	r = NewRef(nil)
	r.Release()
	mustPanic(t, r.Release)
}

func TestKeepAliveOrderAndDuplicates(t *testing.T) {
	var order []int
	refs := make([]*Ref, 3)
	for i := range refs {
		i := i
		refs[i] = NewRef(func() { order = append(order, i) })
	}
	var k keepAlive
	k.push(refs[0], refs[1])
	k.push(refs[0], refs[2])
	if k.len() != 4 {
		t.Fatalf("len = %d, want 4", k.len())
	}
	if refs[0].Count() != 3 {
		t.Fatalf("duplicate push retained %d, want 3", refs[0].Count())
	}
	for _, r := range refs {
		r.Release()
	}
	if len(order) != 0 {
		t.Fatal("keep-alive did not hold its resources")
	}
	k.releaseAll()
	if k.len() != 0 {
		t.Fatal("list not emptied")
	}
	if len(order) != 3 || order[0] != 2 {
		t.Fatalf("destroy order %v, want last pushed first", order)
	}
}

func TestShareKeepsIdentity(t *testing.T) {
	f := newFixture(t, allQueues)
	a := f.transferBuffer(64)
	b := a.Share()
	if a.Object() != b.Object() {
		t.Fatal("shared buffer has another object id")
	}
	a.Release()
	if !b.Live() {
		t.Fatal("buffer destroyed while shared")
	}
	b.Release()
	if a.Live() {
		t.Fatal("buffer alive after last release")
	}
}

func TestKeepAlivePushAllOrNothing(t *testing.T) {
	live := NewRef(nil)
	dead := NewRef(nil)
	dead.Release()

	var k keepAlive
	mustPanic(t, func() { k.push(live, dead) })
	if k.len() != 0 {
		t.Fatalf("len = %d, want 0", k.len())
	}
	if live.Count() != 1 || dead.Count() != 0 {
		t.Fatalf("counts %d %d, want 1 0", live.Count(), dead.Count())
	}
}
