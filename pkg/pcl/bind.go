package pcl

import (
	"context"
	"fmt"
	"runtime"

	"github.com/pclgo/pcl-go/internal/bindgen"
	"github.com/pclgo/pcl-go/pkg/pcl/internal/backend"
	"github.com/pclgo/pcl-go/pkg/pcl/logging"
)

// ref is the single owner of one backend handle. Every wrapper view of an
// object (the handle type and its operation sets) points at the same ref.
type ref struct {
	obj    backend.Object
	native string
}

func newRef(obj backend.Object, native string) *ref {
	r := &ref{obj: obj, native: native}
	runtime.SetFinalizer(r, (*ref).finalize)
	return r
}

func (r *ref) get() (backend.Object, error) {
	if r == nil || r.obj == nil {
		return nil, ErrReleased
	}
	return r.obj, nil
}

func (r *ref) release() {
	if r == nil || r.obj == nil {
		return
	}
	backend.Free(r.obj)
	r.obj = nil
	runtime.SetFinalizer(r, nil)
}

func (r *ref) finalize() {
	if r.obj == nil {
		return
	}
	logger().Debug(context.Background(), "pcl: releasing unreachable handle", logging.Native(r.native))
	backend.Free(r.obj)
	r.obj = nil
}

// clone copies the native object into new storage, shared or exclusive.
func (r *ref) clone(shared bool) (*ref, error) {
	obj, err := r.get()
	if err != nil {
		return nil, err
	}
	c, err := backend.Copy(obj, shared)
	if err != nil {
		return nil, remapError(err)
	}
	return newRef(c, r.native), nil
}

// Shared is the shared-ownership handle embedded by every <Name>Ptr type.
// Each Shared owns one use of the native object; the object is destroyed
// when the last one is released.
type Shared struct {
	r *ref
}

// OwnCount returns the native shared_ptr use count.
func (s Shared) OwnCount() (int, error) {
	obj, err := s.r.get()
	if err != nil {
		return 0, err
	}
	n, err := backend.UseCount(obj)
	return n, remapError(err)
}

// Pointer returns the address of the native object.
func (s Shared) Pointer() (uintptr, error) { return pointer(s.r) }

// NativeName returns the native type, e.g. "pcl::PointCloud<pcl::PointXYZ>".
func (s Shared) NativeName() string { return nativeName(s.r) }

// Released reports whether the handle has been released.
func (s Shared) Released() bool { return s.r == nil || s.r.obj == nil }

// Release drops this owner. Releasing twice is a no-op.
func (s Shared) Release() { s.r.release() }

func (s Shared) share() (*ref, error) {
	obj, err := s.r.get()
	if err != nil {
		return nil, err
	}
	alias, err := backend.Share(obj)
	if err != nil {
		return nil, remapError(err)
	}
	return newRef(alias, s.r.native), nil
}

// Value is the exclusive handle embedded by every <Name>Val type.
type Value struct {
	r *ref
}

// Pointer returns the address of the native object.
func (v Value) Pointer() (uintptr, error) { return pointer(v.r) }

// NativeName returns the native type.
func (v Value) NativeName() string { return nativeName(v.r) }

// Released reports whether the storage has been freed or moved out.
func (v Value) Released() bool { return v.r == nil || v.r.obj == nil }

// Free destroys the native object. Freeing twice is a no-op.
func (v Value) Free() { v.r.release() }

// move hands the native object to a fresh ref and invalidates v.
func (v Value) move() (*ref, error) {
	obj, err := v.r.get()
	if err != nil {
		return nil, err
	}
	v.r.obj = nil
	runtime.SetFinalizer(v.r, nil)
	return newRef(obj, v.r.native), nil
}

func pointer(r *ref) (uintptr, error) {
	obj, err := r.get()
	if err != nil {
		return 0, err
	}
	addr := backend.Address(obj)
	if addr == 0 {
		return 0, ErrReleased
	}
	return addr, nil
}

func nativeName(r *ref) string {
	if r == nil {
		return ""
	}
	return r.native
}

// construct builds constructor ctor of cls for the template arguments targs.
// Generated constructors call it with arguments already packed in declared
// order.
func construct(cls *bindgen.Class, ctor int, targs []string, args []backend.Arg, shared bool) (*ref, error) {
	sym, err := cls.Symbol(ctor, targs...)
	if err != nil {
		return nil, err
	}
	native, err := cls.NativeName(targs...)
	if err != nil {
		return nil, err
	}
	kind, ok := backend.KindByName(cls.Kind)
	if !ok {
		return nil, fmt.Errorf("%w: %s: backend has no kind %q", bindgen.ErrMalformed, cls.Name, cls.Kind)
	}
	obj, err := backend.Construct(backend.CtorKey{
		Kind:         kind,
		TemplateArgs: targs,
		Symbol:       sym,
		Arity:        len(cls.Ctors[ctor].Params),
	}, args, shared)
	if err != nil {
		return nil, remapError(err)
	}
	return newRef(obj, native), nil
}
