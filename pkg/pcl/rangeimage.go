package pcl

import (
	"context"
	"math"

	"github.com/pclgo/pcl-go/pkg/pcl/internal/backend"
	"github.com/pclgo/pcl-go/pkg/pcl/logging"
)

// CoordinateFrame is the sensor frame convention of a range image.
type CoordinateFrame = backend.CoordinateFrame

const (
	// CameraFrame has z forward, x right and y down.
	CameraFrame = backend.CameraFrame
	// LaserFrame has x forward, y left and z up.
	LaserFrame = backend.LaserFrame
)

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float32 { return float32(deg * math.Pi / 180) }

// RangeImageParams are the arguments of RangeImage.CreateFromPointCloud.
// Angles are in radians.
type RangeImageParams struct {
	AngularResolutionX float32
	AngularResolutionY float32
	MaxAngleWidth      float32
	MaxAngleHeight     float32
	// SensorPose places the sensor in the world. The zero value is Identity.
	SensorPose Affine
	Frame      CoordinateFrame
	NoiseLevel float32
	MinRange   float32
	BorderSize int
}

// rangeImageOps carries the pcl::RangeImage specific operations. The cloud
// operations of a range image come from its embedded pointCloudOps.
type rangeImageOps struct {
	r *ref
}

// CreateFromPointCloud projects the points of cloud into the image, replacing
// its contents. cloud may be the range image itself.
func (ri rangeImageOps) CreateFromPointCloud(cloud AnyCloud, p RangeImageParams) error {
	obj, err := ri.r.get()
	if err != nil {
		return err
	}
	src, err := cloud.cloudRef().get()
	if err != nil {
		return err
	}
	pose := p.SensorPose
	if pose.IsZero() {
		pose = Identity()
	}
	err = backend.RangeImageCreate(obj, src, backend.RangeImageParams{
		AngularResolutionX: p.AngularResolutionX,
		AngularResolutionY: p.AngularResolutionY,
		MaxAngleWidth:      p.MaxAngleWidth,
		MaxAngleHeight:     p.MaxAngleHeight,
		Pose:               [16]float32(pose),
		Frame:              p.Frame,
		NoiseLevel:         p.NoiseLevel,
		MinRange:           p.MinRange,
		BorderSize:         p.BorderSize,
	})
	if err != nil {
		return remapError(err)
	}
	if w, h, err := backend.CloudDims(obj); err == nil {
		logger().Debug(context.Background(), "pcl: range image created",
			logging.Native(ri.r.native), logging.Cloud("image", int(w)*int(h), w, h))
	}
	return nil
}

func (ri rangeImageOps) info() (backend.RangeImageInfo, error) {
	obj, err := ri.r.get()
	if err != nil {
		return backend.RangeImageInfo{}, err
	}
	info, err := backend.RangeImageGetInfo(obj)
	return info, remapError(err)
}

// AngularResolutionX returns the horizontal angular resolution in radians.
func (ri rangeImageOps) AngularResolutionX() (float32, error) {
	info, err := ri.info()
	return info.AngularResolutionX, err
}

// AngularResolutionY returns the vertical angular resolution in radians.
func (ri rangeImageOps) AngularResolutionY() (float32, error) {
	info, err := ri.info()
	return info.AngularResolutionY, err
}

// ImageOffset returns the position of the cropped image inside the full
// sphere image.
func (ri rangeImageOps) ImageOffset() (x, y int, err error) {
	info, err := ri.info()
	return info.ImageOffsetX, info.ImageOffsetY, err
}

// TransformationToWorld returns the image to world transform.
func (ri rangeImageOps) TransformationToWorld() (Affine, error) {
	info, err := ri.info()
	return Affine(info.ToWorld), err
}

// Pixel returns the point at image column x and row y.
func (ri rangeImageOps) Pixel(x, y int) (PointWithRange, error) {
	var p PointWithRange
	obj, err := ri.r.get()
	if err != nil {
		return p, err
	}
	w, h, err := backend.CloudDims(obj)
	if err != nil {
		return p, remapError(err)
	}
	if x < 0 || y < 0 || x >= int(w) || y >= int(h) {
		return p, ErrIndexOutOfRange
	}
	err = backend.CloudAt(obj, y*int(w)+x, pointPtr(&p))
	return p, remapError(err)
}

// IsValid reports whether (x, y) lies inside the image and holds a finite
// range. Unobserved pixels have range -Inf.
func (ri rangeImageOps) IsValid(x, y int) (bool, error) {
	p, err := ri.Pixel(x, y)
	switch {
	case err == ErrIndexOutOfRange:
		return false, nil
	case err != nil:
		return false, err
	}
	return isFinite(p.Range), nil
}

// MinMaxRanges returns the smallest and largest finite range in the image.
func (ri rangeImageOps) MinMaxRanges() (lo, hi float32, err error) {
	obj, err := ri.r.get()
	if err != nil {
		return 0, 0, err
	}
	n, err := backend.CloudSize(obj)
	if err != nil {
		return 0, 0, remapError(err)
	}
	lo, hi = float32(math.Inf(1)), float32(math.Inf(-1))
	found := false
	var p PointWithRange
	for i := range n {
		if err := backend.CloudAt(obj, i, pointPtr(&p)); err != nil {
			return 0, 0, remapError(err)
		}
		if !isFinite(p.Range) {
			continue
		}
		found = true
		lo = min(lo, p.Range)
		hi = max(hi, p.Range)
	}
	if !found {
		return 0, 0, ErrNoValidPoints
	}
	return lo, hi, nil
}

func isFinite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
