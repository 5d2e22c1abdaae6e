//go:build cgo && pcl

package backend

/*
#cgo CXXFLAGS: -std=c++17 -Wno-deprecated-declarations -Wno-ignored-attributes
#cgo linux CXXFLAGS: -I/usr/include/pcl-1.14 -I/usr/include/eigen3
#cgo darwin CXXFLAGS: -I/opt/homebrew/include/pcl-1.14 -I/opt/homebrew/include/eigen3
#cgo darwin LDFLAGS: -L/opt/homebrew/lib
#cgo LDFLAGS: -lpcl_common -lpcl_io -lstdc++
#include <stdlib.h>
#include "capi.h"
*/
import "C"

import (
	"unsafe"
)

// Object is an opaque native handle.
type Object = *C.gopcl_object

var ctorIndex = func() map[string]int {
	m := make(map[string]int, len(ctorSymbols))
	for i, s := range ctorSymbols {
		m[s] = i
	}
	return m
}()

// Name identifies the backend compiled into the binary.
func Name() string { return "libpcl" }

// Version returns the linked PCL version.
func Version() string { return C.GoString(C.gopcl_version()) }

func check(op string, rc C.int, e *C.gopcl_err) error {
	if rc == C.GOPCL_OK {
		return nil
	}
	msg := ""
	if e != nil {
		msg = C.GoString(&e.msg[0])
	}
	return &NativeError{Op: op, Code: int(rc), Message: msg}
}

func cbool(b bool) C.int {
	if b {
		return 1
	}
	return 0
}

// Construct builds a native object for key. With shared set the object is
// owned by a fresh std::shared_ptr.
func Construct(key CtorKey, args []Arg, shared bool) (Object, error) {
	id, ok := ctorIndex[key.Symbol]
	if !ok {
		return nil, nativeErr("construct", CodeUnknownCtor, "%s", key.Symbol)
	}
	var pt PointType
	switch key.Kind {
	case KindPointCloud:
		if len(key.TemplateArgs) != 1 {
			return nil, nativeErr("construct", CodeType, "%s: point cloud needs one point type", key.Symbol)
		}
		if pt, ok = PointTypeByNative(key.TemplateArgs[0]); !ok {
			return nil, nativeErr("construct", CodeType, "%s: unknown point type %s", key.Symbol, key.TemplateArgs[0])
		}
	case KindRangeImage:
		pt = PointWithRange
	}

	cargs := make([]C.gopcl_arg, len(args)+1)
	for i, a := range args {
		cargs[i].i = C.int64_t(a.I)
		cargs[i].f = C.double(a.F)
	}
	var (
		out Object
		e   C.gopcl_err
	)
	rc := C.gopcl_construct(C.int(id), &cargs[0], C.int(len(args)), cbool(shared), C.int(key.Kind), C.int(pt), &out, &e)
	if err := check("construct "+key.Symbol, rc, &e); err != nil {
		return nil, err
	}
	return out, nil
}

// Share returns a new shared owner of o's object.
func Share(o Object) (Object, error) {
	var out Object
	if err := check("share", C.gopcl_share(o, &out), nil); err != nil {
		return nil, err
	}
	return out, nil
}

// Copy duplicates o's object into independent storage.
func Copy(o Object, shared bool) (Object, error) {
	var (
		out Object
		e   C.gopcl_err
	)
	if err := check("copy", C.gopcl_copy(o, cbool(shared), &out, &e), &e); err != nil {
		return nil, err
	}
	return out, nil
}

// Free drops o. Shared objects are destroyed when the last owner goes.
func Free(o Object) { C.gopcl_free(o) }

// UseCount returns the number of shared owners of o's object.
func UseCount(o Object) (int, error) {
	var n C.long
	if err := check("use_count", C.gopcl_use_count(o, &n), nil); err != nil {
		return 0, err
	}
	return int(n), nil
}

// Address returns the address of the pointee.
func Address(o Object) uintptr { return uintptr(C.gopcl_address(o)) }

// IsShared reports whether o is a shared owner.
func IsShared(o Object) bool { return C.gopcl_is_shared(o) != 0 }

// KindOf returns o's class family.
func KindOf(o Object) Kind { return Kind(C.gopcl_kind(o)) }

// PointTypeOf returns the point layout of a cloud or range image.
func PointTypeOf(o Object) PointType { return PointType(C.gopcl_point(o)) }

// CloudSize returns the number of stored points.
func CloudSize(o Object) (int, error) {
	var n C.size_t
	if err := check("size", C.gopcl_cloud_size(o, &n), nil); err != nil {
		return 0, err
	}
	return int(n), nil
}

// CloudDims returns width and height.
func CloudDims(o Object) (uint32, uint32, error) {
	var w, h C.uint32_t
	if err := check("dims", C.gopcl_cloud_dims(o, &w, &h), nil); err != nil {
		return 0, 0, err
	}
	return uint32(w), uint32(h), nil
}

// CloudIsDense returns the is_dense flag.
func CloudIsDense(o Object) (bool, error) {
	var d C.int
	if err := check("is_dense", C.gopcl_cloud_is_dense(o, &d), nil); err != nil {
		return false, err
	}
	return d != 0, nil
}

// CloudSetIsDense sets the is_dense flag.
func CloudSetIsDense(o Object, dense bool) error {
	return check("is_dense", C.gopcl_cloud_set_is_dense(o, cbool(dense)), nil)
}

// CloudPush appends one point read from src.
func CloudPush(o Object, src unsafe.Pointer) error {
	var e C.gopcl_err
	return check("push_back", C.gopcl_cloud_push(o, src, &e), &e)
}

// CloudAt copies point i into dst.
func CloudAt(o Object, i int, dst unsafe.Pointer) error {
	if i < 0 {
		return nativeErr("at", CodeRange, "index %d out of range", i)
	}
	return check("at", C.gopcl_cloud_at(o, C.size_t(i), dst), nil)
}

// CloudSet overwrites point i from src.
func CloudSet(o Object, i int, src unsafe.Pointer) error {
	if i < 0 {
		return nativeErr("set", CodeRange, "index %d out of range", i)
	}
	return check("set", C.gopcl_cloud_set(o, C.size_t(i), src), nil)
}

// CloudPoints copies all n points into dst. n must equal the cloud size.
func CloudPoints(o Object, dst unsafe.Pointer, n int) error {
	return check("points", C.gopcl_cloud_points(o, dst, C.size_t(n)), nil)
}

// CloudResize resizes to n points.
func CloudResize(o Object, n int) error {
	if n < 0 {
		return nativeErr("resize", CodeRange, "negative size %d", n)
	}
	var e C.gopcl_err
	return check("resize", C.gopcl_cloud_resize(o, C.size_t(n), &e), &e)
}

// CloudClear removes every point.
func CloudClear(o Object) error { return check("clear", C.gopcl_cloud_clear(o), nil) }

// CopyPointCloud converts src into dst with pcl::copyPointCloud.
func CopyPointCloud(src, dst Object) error {
	var e C.gopcl_err
	return check("copyPointCloud", C.gopcl_copy_point_cloud(src, dst, &e), &e)
}

// TransformPointCloud applies the row-major affine m with
// pcl::transformPointCloud, or the WithNormals variant.
func TransformPointCloud(in, out Object, m [16]float32, withNormals bool) error {
	var (
		cm [16]C.float
		e  C.gopcl_err
	)
	for i, v := range m {
		cm[i] = C.float(v)
	}
	return check("transformPointCloud", C.gopcl_transform_point_cloud(in, out, &cm[0], cbool(withNormals), &e), &e)
}

// Compute3DCentroid runs pcl::compute3DCentroid and returns the number of
// points used.
func Compute3DCentroid(o Object, out *[4]float32) (int, error) {
	var (
		c [4]C.float
		n C.int
		e C.gopcl_err
	)
	if err := check("compute3DCentroid", C.gopcl_compute_3d_centroid(o, &c[0], &n, &e), &e); err != nil {
		return 0, err
	}
	if n > 0 {
		for i := range c {
			out[i] = float32(c[i])
		}
	}
	return int(n), nil
}

// RemoveNaN returns the ascending indices of points with finite coordinates
// and, when out is non-nil, stores the compacted cloud there.
func RemoveNaN(in, out Object) ([]int, error) {
	var (
		idx *C.int
		n   C.size_t
		e   C.gopcl_err
	)
	if err := check("removeNaNFromPointCloud", C.gopcl_remove_nan(in, out, &idx, &n, &e), &e); err != nil {
		return nil, err
	}
	defer C.free(unsafe.Pointer(idx))
	res := make([]int, int(n))
	if n > 0 {
		for i, v := range unsafe.Slice(idx, int(n)) {
			res[i] = int(v)
		}
	}
	return res, nil
}

// RangeImageCreate runs RangeImage::createFromPointCloud.
func RangeImageCreate(o, src Object, p RangeImageParams) error {
	cp := C.gopcl_range_params{
		angular_resolution_x: C.float(p.AngularResolutionX),
		angular_resolution_y: C.float(p.AngularResolutionY),
		max_angle_width:      C.float(p.MaxAngleWidth),
		max_angle_height:     C.float(p.MaxAngleHeight),
		frame:                C.int(p.Frame),
		noise_level:          C.float(p.NoiseLevel),
		min_range:            C.float(p.MinRange),
		border_size:          C.int(p.BorderSize),
	}
	for i, v := range p.Pose {
		cp.pose[i] = C.float(v)
	}
	var e C.gopcl_err
	return check("createFromPointCloud", C.gopcl_range_image_create(o, src, &cp, &e), &e)
}

// RangeImageGetInfo returns the projection state of a range image.
func RangeImageGetInfo(o Object) (RangeImageInfo, error) {
	var ci C.gopcl_range_info
	if err := check("range_image", C.gopcl_range_image_info(o, &ci), nil); err != nil {
		return RangeImageInfo{}, err
	}
	info := RangeImageInfo{
		AngularResolutionX: float32(ci.angular_resolution_x),
		AngularResolutionY: float32(ci.angular_resolution_y),
		ImageOffsetX:       int(ci.image_offset_x),
		ImageOffsetY:       int(ci.image_offset_y),
	}
	for i, v := range ci.to_world {
		info.ToWorld[i] = float32(v)
	}
	return info, nil
}

// LoadPCD reads a PCD file into o. o is left untouched on failure.
func LoadPCD(path string, o Object) error {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	var e C.gopcl_err
	return check("loadPCDFile", C.gopcl_load_pcd(cpath, o, &e), &e)
}

// SavePCD writes o to path.
func SavePCD(path string, o Object, format PCDFormat) error {
	if format != PCDASCII && format != PCDBinary {
		return nativeErr("savePCDFile", CodeRange, "unknown format %d", format)
	}
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	var e C.gopcl_err
	return check("savePCDFile", C.gopcl_save_pcd(cpath, o, cbool(format == PCDBinary), &e), &e)
}

func fromC(c C.gopcl_correspondence) Correspondence {
	return Correspondence{IndexQuery: int(c.index_query), IndexMatch: int(c.index_match), Distance: float32(c.distance)}
}

func toC(v Correspondence) C.gopcl_correspondence {
	return C.gopcl_correspondence{index_query: C.int(v.IndexQuery), index_match: C.int(v.IndexMatch), distance: C.float(v.Distance)}
}

// CorrespondenceGet reads a pcl::Correspondence.
func CorrespondenceGet(o Object) (Correspondence, error) {
	var c C.gopcl_correspondence
	if err := check("correspondence", C.gopcl_correspondence_get(o, &c), nil); err != nil {
		return Correspondence{}, err
	}
	return fromC(c), nil
}

// CorrespondenceSet overwrites a pcl::Correspondence.
func CorrespondenceSet(o Object, v Correspondence) error {
	c := toC(v)
	return check("correspondence", C.gopcl_correspondence_set(o, &c), nil)
}

// CorrespondencesLen returns the vector length.
func CorrespondencesLen(o Object) (int, error) {
	var n C.size_t
	if err := check("correspondences", C.gopcl_correspondences_len(o, &n), nil); err != nil {
		return 0, err
	}
	return int(n), nil
}

// CorrespondencesAppend pushes v to the back of the vector.
func CorrespondencesAppend(o Object, v Correspondence) error {
	c := toC(v)
	var e C.gopcl_err
	return check("correspondences", C.gopcl_correspondences_append(o, &c, &e), &e)
}

// CorrespondencesAt returns element i.
func CorrespondencesAt(o Object, i int) (Correspondence, error) {
	if i < 0 {
		return Correspondence{}, nativeErr("correspondences", CodeRange, "index %d out of range", i)
	}
	var c C.gopcl_correspondence
	if err := check("correspondences", C.gopcl_correspondences_at(o, C.size_t(i), &c), nil); err != nil {
		return Correspondence{}, err
	}
	return fromC(c), nil
}

// PointIndicesGet copies the indices out.
func PointIndicesGet(o Object) ([]int32, error) {
	var (
		p *C.int32_t
		n C.size_t
	)
	if err := check("point_indices", C.gopcl_point_indices_get(o, &p, &n), nil); err != nil {
		return nil, err
	}
	defer C.free(unsafe.Pointer(p))
	out := make([]int32, int(n))
	if n > 0 {
		copy(out, unsafe.Slice((*int32)(unsafe.Pointer(p)), int(n)))
	}
	return out, nil
}

// PointIndicesAppend adds indices to the back.
func PointIndicesAppend(o Object, idx ...int32) error {
	var e C.gopcl_err
	var p *C.int32_t
	if len(idx) > 0 {
		p = (*C.int32_t)(unsafe.Pointer(&idx[0]))
	}
	return check("point_indices", C.gopcl_point_indices_append(o, p, C.size_t(len(idx)), &e), &e)
}

// ModelCoefficientsGet copies the coefficient values out.
func ModelCoefficientsGet(o Object) ([]float32, error) {
	var (
		p *C.float
		n C.size_t
	)
	if err := check("model_coefficients", C.gopcl_model_coefficients_get(o, &p, &n), nil); err != nil {
		return nil, err
	}
	defer C.free(unsafe.Pointer(p))
	out := make([]float32, int(n))
	if n > 0 {
		copy(out, unsafe.Slice((*float32)(unsafe.Pointer(p)), int(n)))
	}
	return out, nil
}

// ModelCoefficientsSet replaces the coefficient values.
func ModelCoefficientsSet(o Object, values []float32) error {
	var e C.gopcl_err
	var p *C.float
	if len(values) > 0 {
		p = (*C.float)(unsafe.Pointer(&values[0]))
	}
	return check("model_coefficients", C.gopcl_model_coefficients_set(o, p, C.size_t(len(values)), &e), &e)
}
