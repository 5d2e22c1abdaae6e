package pcl

import (
	"unsafe"

	"github.com/pclgo/pcl-go/pkg/pcl/internal/backend"
)

// The point structs below mirror the memory layout of the PCL types they are
// named after, padding included, so clouds can be copied to and from native
// storage without conversion. Blank fields are padding.

// PointXYZ is pcl::PointXYZ.
type PointXYZ struct {
	X, Y, Z float32
	_       float32
}

// PointXYZI is pcl::PointXYZI.
type PointXYZI struct {
	X, Y, Z   float32
	_         float32
	Intensity float32
	_         [3]float32
}

// PointXYZL is pcl::PointXYZL.
type PointXYZL struct {
	X, Y, Z float32
	_       float32
	Label   uint32
	_       [3]uint32
}

// PointXYZRGB is pcl::PointXYZRGB. Color channels are stored in BGRA byte
// order, which is the packed rgb float of PCL on little-endian hosts.
type PointXYZRGB struct {
	X, Y, Z    float32
	_          float32
	B, G, R, A uint8
	_          [3]float32
}

// PointXYZRGBA is pcl::PointXYZRGBA.
type PointXYZRGBA struct {
	X, Y, Z    float32
	_          float32
	B, G, R, A uint8
	_          [3]float32
}

// PointXY is pcl::PointXY.
type PointXY struct {
	X, Y float32
}

// Normal is pcl::Normal.
type Normal struct {
	NormalX, NormalY, NormalZ float32
	_                         float32
	Curvature                 float32
	_                         [3]float32
}

// PointNormal is pcl::PointNormal.
type PointNormal struct {
	X, Y, Z                   float32
	_                         float32
	NormalX, NormalY, NormalZ float32
	_                         float32
	Curvature                 float32
	_                         [3]float32
}

// PointXYZRGBNormal is pcl::PointXYZRGBNormal.
type PointXYZRGBNormal struct {
	X, Y, Z                   float32
	_                         float32
	NormalX, NormalY, NormalZ float32
	_                         float32
	B, G, R, A                uint8
	Curvature                 float32
	_                         [2]float32
}

// PointXYZINormal is pcl::PointXYZINormal.
type PointXYZINormal struct {
	X, Y, Z                   float32
	_                         float32
	NormalX, NormalY, NormalZ float32
	_                         float32
	Intensity                 float32
	Curvature                 float32
	_                         [2]float32
}

// PointWithRange is pcl::PointWithRange, the element type of range images.
type PointWithRange struct {
	X, Y, Z float32
	_       float32
	Range   float32
	_       [3]float32
}

// InterestPoint is pcl::InterestPoint.
type InterestPoint struct {
	X, Y, Z  float32
	_        float32
	Strength float32
	_        [3]float32
}

// Point is the closed set of point layouts a PointCloud can hold.
type Point interface {
	PointXYZ | PointXYZI | PointXYZL | PointXYZRGB | PointXYZRGBA | PointXY |
		Normal | PointNormal | PointXYZRGBNormal | PointXYZINormal | PointWithRange | InterestPoint
}

// RGB packs the color as PCL's rgba uint32: alpha in the high byte.
func (p PointXYZRGB) RGB() uint32 { return packRGBA(p.R, p.G, p.B, p.A) }

// RGBA packs the color as PCL's rgba uint32: alpha in the high byte.
func (p PointXYZRGBA) RGBA() uint32 { return packRGBA(p.R, p.G, p.B, p.A) }

func packRGBA(r, g, b, a uint8) uint32 {
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

func pointType[P Point]() backend.PointType {
	var zero P
	switch any(zero).(type) {
	case PointXYZ:
		return backend.PointXYZ
	case PointXYZI:
		return backend.PointXYZI
	case PointXYZL:
		return backend.PointXYZL
	case PointXYZRGB:
		return backend.PointXYZRGB
	case PointXYZRGBA:
		return backend.PointXYZRGBA
	case PointXY:
		return backend.PointXY
	case Normal:
		return backend.Normal
	case PointNormal:
		return backend.PointNormal
	case PointXYZRGBNormal:
		return backend.PointXYZRGBNormal
	case PointXYZINormal:
		return backend.PointXYZINormal
	case PointWithRange:
		return backend.PointWithRange
	case InterestPoint:
		return backend.InterestPoint
	}
	return backend.PointUnknown
}

// templateArg returns the native type name used to instantiate templates
// over P, e.g. "pcl::PointXYZ".
func templateArg[P Point]() string {
	return backend.LayoutOf(pointType[P]()).Native
}

// PointField describes one field of a native point layout, as
// pcl::PCLPointField does.
type PointField = backend.Field

// Datatype is the element type of a PointField.
type Datatype = backend.Datatype

// NativeLayout reports the native size and field table of P.
func NativeLayout[P Point]() (size int, fields []PointField) {
	l := backend.LayoutOf(pointType[P]())
	return l.Size, append([]PointField(nil), l.Fields...)
}

func pointPtr[P Point](p *P) unsafe.Pointer { return unsafe.Pointer(p) }
