package backend

import (
	"errors"
	"fmt"
)

// ErrNotBuilt reports that the current build lacks a native feature.
var ErrNotBuilt = errors.New("pcl/internal/backend: native bindings not built")

// Kind identifies the native class family an object belongs to.
type Kind int

const (
	KindUnknown Kind = iota
	KindPointCloud
	KindCorrespondence
	KindCorrespondences
	KindPointIndices
	KindModelCoefficients
	KindRangeImage
)

var kindNames = map[string]Kind{
	"point_cloud":        KindPointCloud,
	"correspondence":     KindCorrespondence,
	"correspondences":    KindCorrespondences,
	"point_indices":      KindPointIndices,
	"model_coefficients": KindModelCoefficients,
	"range_image":        KindRangeImage,
}

// KindByName resolves a catalog kind.
func KindByName(name string) (Kind, bool) {
	k, ok := kindNames[name]
	return k, ok
}

func (k Kind) String() string {
	for name, v := range kindNames {
		if v == k {
			return name
		}
	}
	return "unknown"
}

// Arg carries one constructor argument across the C ABI.
type Arg struct {
	I int64
	F float64
}

func IntArg(v int64) Arg     { return Arg{I: v} }
func FloatArg(v float64) Arg { return Arg{F: v} }

// CtorKey identifies one native constructor.
type CtorKey struct {
	Kind         Kind
	TemplateArgs []string
	Symbol       string
	Arity        int
}

// Error codes shared with capi.h.
const (
	CodeOK          = 0
	CodeNull        = -1
	CodeArity       = -2
	CodeUnknownCtor = -3
	CodeRange       = -4
	CodeType        = -5
	CodeIO          = -6
	CodeNotShared   = -7
	CodeEmpty       = -8
	CodeException   = -9
)

// NativeError is a failure reported by the native library.
type NativeError struct {
	Op      string
	Code    int
	Message string
}

func (e *NativeError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: native error %d", e.Op, e.Code)
	}
	return fmt.Sprintf("%s: %s (code %d)", e.Op, e.Message, e.Code)
}

func nativeErr(op string, code int, format string, args ...any) error {
	return &NativeError{Op: op, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Correspondence mirrors pcl::Correspondence.
type Correspondence struct {
	IndexQuery int
	IndexMatch int
	Distance   float32
}

// CoordinateFrame mirrors pcl::RangeImage::CoordinateFrame.
type CoordinateFrame int

const (
	CameraFrame CoordinateFrame = 0
	LaserFrame  CoordinateFrame = 1
)

// RangeImageParams are the arguments of RangeImage::createFromPointCloud.
// Angles are in radians. Pose is a row-major 4x4 affine transform.
type RangeImageParams struct {
	AngularResolutionX float32
	AngularResolutionY float32
	MaxAngleWidth      float32
	MaxAngleHeight     float32
	Pose               [16]float32
	Frame              CoordinateFrame
	NoiseLevel         float32
	MinRange           float32
	BorderSize         int
}

// RangeImageInfo is the projection state of a range image.
type RangeImageInfo struct {
	AngularResolutionX float32
	AngularResolutionY float32
	ImageOffsetX       int
	ImageOffsetY       int
	ToWorld            [16]float32
}

// PCDFormat selects the DATA section encoding when writing PCD files.
type PCDFormat int

const (
	PCDASCII PCDFormat = iota
	PCDBinary
)
