package dieselcmd

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Resource is anything a command buffer must keep alive while it may still
// execute. Retain adds a reference, Release drops one.
type Resource interface {
	Retain()
	Release()
}

// ObjectID identifies an underlying device object. Aliasing wrappers over the
// same object report the same ObjectID.
type ObjectID uuid.UUID

func newObjectID() ObjectID { return ObjectID(uuid.New()) }

func (id ObjectID) String() string { return uuid.UUID(id).String() }

// IsZero reports whether id names no object.
func (id ObjectID) IsZero() bool { return id == ObjectID{} }

// Ref is the shared owner of a native handle. The destroy function runs
// exactly once, when the last reference is released.
type Ref struct {
	refs    atomic.Int64
	destroy func()
}

// NewRef returns a Ref holding one reference.
func NewRef(destroy func()) *Ref {
	r := &Ref{destroy: destroy}
	r.refs.Store(1)
	return r
}

func (r *Ref) Retain() {
	for {
		n := r.refs.Load()
		if n <= 0 {
			contractViolation("retain of a released resource")
		}
		if r.refs.CompareAndSwap(n, n+1) {
			return
		}
	}
}

func (r *Ref) Release() {
	switch n := r.refs.Add(-1); {
	case n == 0:
		if r.destroy != nil {
			r.destroy()
		}
	case n < 0:
		contractViolation("resource released more times than retained")
	}
}

// Count returns the number of live references.
func (r *Ref) Count() int64 { return r.refs.Load() }

// Live reports whether the native handle has not been destroyed yet.
func (r *Ref) Live() bool { return r.refs.Load() > 0 }

// keepAlive is the insertion-ordered list of resources retained by a builder.
// It only grows until it is handed off or released.
type keepAlive struct {
	list []Resource
}

// push retains every resource before appending any of them. If a retain
// panics the ones already taken are dropped again and the list is unchanged.
func (k *keepAlive) push(res ...Resource) {
	taken := 0
	defer func() {
		if taken == len(res) {
			return
		}
		for i := taken - 1; i >= 0; i-- {
			res[i].Release()
		}
	}()
	for _, r := range res {
		r.Retain()
		taken++
	}
	k.list = append(k.list, res...)
}

func (k *keepAlive) len() int { return len(k.list) }

// releaseAll drops every reference exactly once and empties the list.
func (k *keepAlive) releaseAll() {
	for i := len(k.list) - 1; i >= 0; i-- {
		k.list[i].Release()
	}
	k.list = nil
}
