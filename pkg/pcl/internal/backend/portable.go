//go:build !cgo || !pcl

package backend

import (
	"math"
	"reflect"
	"sync/atomic"
)

// native is implemented by every object the portable backend can hold.
type native interface {
	clone() native
}

// control is the shared_ptr control block: one per native object, shared by
// every alias.
type control struct {
	uses  atomic.Int64
	value native
}

type object struct {
	ctrl  *control
	value native
	kind  Kind
	point PointType
}

// Object is an opaque native handle.
type Object = *object

// Name identifies the backend compiled into the binary.
func Name() string { return "portable" }

// Version returns the native library version, empty for the portable build.
func Version() string { return "" }

// Construct builds a native object for key. With shared set the object is
// placed behind a fresh control block with a use count of one.
func Construct(key CtorKey, args []Arg, shared bool) (Object, error) {
	const op = "construct"
	if len(args) != key.Arity {
		return nil, nativeErr(op, CodeArity, "%s: got %d arguments", key.Symbol, len(args))
	}

	var (
		v  native
		pt PointType
	)
	switch key.Kind {
	case KindPointCloud:
		if len(key.TemplateArgs) != 1 {
			return nil, nativeErr(op, CodeType, "%s: point cloud needs one point type", key.Symbol)
		}
		var ok bool
		pt, ok = PointTypeByNative(key.TemplateArgs[0])
		if !ok {
			return nil, nativeErr(op, CodeType, "%s: unknown point type %s", key.Symbol, key.TemplateArgs[0])
		}
		switch len(args) {
		case 0:
			v = newCloud(LayoutOf(pt), 0, 0)
		case 2:
			w, h := args[0].I, args[1].I
			if w < 0 || h < 0 || w > math.MaxUint32 || h > math.MaxUint32 {
				return nil, nativeErr(op, CodeRange, "%s: dimensions %dx%d", key.Symbol, w, h)
			}
			c, err := newSizedCloud(op, LayoutOf(pt), uint32(w), uint32(h))
			if err != nil {
				return nil, err
			}
			v = c
		default:
			return nil, nativeErr(op, CodeUnknownCtor, "%s", key.Symbol)
		}
	case KindCorrespondence:
		switch len(args) {
		case 0:
			v = &correspondence{IndexQuery: 0, IndexMatch: -1, Distance: math.MaxFloat32}
		case 3:
			v = &correspondence{IndexQuery: int(args[0].I), IndexMatch: int(args[1].I), Distance: float32(args[2].F)}
		default:
			return nil, nativeErr(op, CodeUnknownCtor, "%s", key.Symbol)
		}
	case KindCorrespondences:
		v = &correspondences{}
	case KindPointIndices:
		v = &pointIndices{}
	case KindModelCoefficients:
		v = &modelCoefficients{}
	case KindRangeImage:
		v = newRangeImage()
		pt = PointWithRange
	default:
		return nil, nativeErr(op, CodeUnknownCtor, "%s: unsupported kind %s", key.Symbol, key.Kind)
	}
	if len(args) > 0 && key.Kind != KindPointCloud && key.Kind != KindCorrespondence {
		return nil, nativeErr(op, CodeUnknownCtor, "%s", key.Symbol)
	}
	return adopt(v, key.Kind, pt, shared), nil
}

func adopt(v native, kind Kind, pt PointType, shared bool) Object {
	o := &object{value: v, kind: kind, point: pt}
	if shared {
		o.ctrl = &control{value: v}
		o.ctrl.uses.Store(1)
	}
	return o
}

// Share returns a new shared owner of o's object.
func Share(o Object) (Object, error) {
	if o == nil || o.value == nil {
		return nil, nativeErr("share", CodeNull, "null object")
	}
	if o.ctrl == nil {
		return nil, nativeErr("share", CodeNotShared, "object is not shared")
	}
	o.ctrl.uses.Add(1)
	return &object{ctrl: o.ctrl, value: o.value, kind: o.kind, point: o.point}, nil
}

// Copy duplicates o's object into independent storage.
func Copy(o Object, shared bool) (Object, error) {
	if o == nil || o.value == nil {
		return nil, nativeErr("copy", CodeNull, "null object")
	}
	return adopt(o.value.clone(), o.kind, o.point, shared), nil
}

// Free drops o. Shared objects are destroyed when the last owner goes.
func Free(o Object) {
	if o == nil || o.value == nil {
		return
	}
	if o.ctrl != nil && o.ctrl.uses.Add(-1) == 0 {
		o.ctrl.value = nil
	}
	o.value = nil
}

// UseCount returns the number of shared owners of o's object.
func UseCount(o Object) (int, error) {
	if o == nil || o.value == nil {
		return 0, nativeErr("use_count", CodeNull, "null object")
	}
	if o.ctrl == nil {
		return 0, nativeErr("use_count", CodeNotShared, "object is not shared")
	}
	return int(o.ctrl.uses.Load()), nil
}

// Address returns the address of the pointee.
func Address(o Object) uintptr {
	if o == nil || o.value == nil {
		return 0
	}
	return reflect.ValueOf(o.value).Pointer()
}

// IsShared reports whether o is a shared owner.
func IsShared(o Object) bool { return o != nil && o.ctrl != nil }

// KindOf returns o's class family.
func KindOf(o Object) Kind {
	if o == nil {
		return KindUnknown
	}
	return o.kind
}

// PointTypeOf returns the point layout of a cloud or range image.
func PointTypeOf(o Object) PointType {
	if o == nil {
		return PointUnknown
	}
	return o.point
}
