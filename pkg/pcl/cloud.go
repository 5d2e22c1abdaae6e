package pcl

import (
	"github.com/pclgo/pcl-go/pkg/pcl/internal/backend"
)

// Cloud is implemented by every wrapper holding a pcl::PointCloud<P>, shared
// or by value, including RangeImage for P = PointWithRange. It is sealed.
type Cloud[P Point] interface {
	AnyCloud
	cloudOps() pointCloudOps[P]
}

// AnyCloud is a point cloud of any point type.
type AnyCloud interface {
	cloudRef() *ref
}

// pointCloudOps carries the pcl::PointCloud<P> operations. Every query reads
// live native state, so changes made through other aliases are visible.
type pointCloudOps[P Point] struct {
	r *ref
}

func (c pointCloudOps[P]) cloudOps() pointCloudOps[P] { return c }

func (c pointCloudOps[P]) cloudRef() *ref { return c.r }

// Len returns the number of stored points.
func (c pointCloudOps[P]) Len() (int, error) {
	obj, err := c.r.get()
	if err != nil {
		return 0, err
	}
	n, err := backend.CloudSize(obj)
	return n, remapError(err)
}

// Width returns the cloud width.
func (c pointCloudOps[P]) Width() (uint32, error) {
	w, _, err := c.dims()
	return w, err
}

// Height returns the cloud height; 1 for unorganized clouds.
func (c pointCloudOps[P]) Height() (uint32, error) {
	_, h, err := c.dims()
	return h, err
}

func (c pointCloudOps[P]) dims() (uint32, uint32, error) {
	obj, err := c.r.get()
	if err != nil {
		return 0, 0, err
	}
	w, h, err := backend.CloudDims(obj)
	return w, h, remapError(err)
}

// IsOrganized reports whether the cloud is laid out as an image
// (height > 1), as pcl::PointCloud::isOrganized does.
func (c pointCloudOps[P]) IsOrganized() (bool, error) {
	_, h, err := c.dims()
	return h > 1, err
}

// IsDense reports the is_dense flag: true when no point may hold non-finite
// values.
func (c pointCloudOps[P]) IsDense() (bool, error) {
	obj, err := c.r.get()
	if err != nil {
		return false, err
	}
	d, err := backend.CloudIsDense(obj)
	return d, remapError(err)
}

// SetIsDense overwrites the is_dense flag.
func (c pointCloudOps[P]) SetIsDense(dense bool) error {
	obj, err := c.r.get()
	if err != nil {
		return err
	}
	return remapError(backend.CloudSetIsDense(obj, dense))
}

// Push appends p. The cloud becomes unorganized with width equal to its size.
func (c pointCloudOps[P]) Push(p P) error {
	obj, err := c.r.get()
	if err != nil {
		return err
	}
	return remapError(backend.CloudPush(obj, pointPtr(&p)))
}

// At returns point i.
func (c pointCloudOps[P]) At(i int) (P, error) {
	var p P
	obj, err := c.r.get()
	if err != nil {
		return p, err
	}
	if err := backend.CloudAt(obj, i, pointPtr(&p)); err != nil {
		return p, remapError(err)
	}
	return p, nil
}

// Set overwrites point i.
func (c pointCloudOps[P]) Set(i int, p P) error {
	obj, err := c.r.get()
	if err != nil {
		return err
	}
	return remapError(backend.CloudSet(obj, i, pointPtr(&p)))
}

// Points copies every point out of the cloud.
func (c pointCloudOps[P]) Points() ([]P, error) {
	obj, err := c.r.get()
	if err != nil {
		return nil, err
	}
	n, err := backend.CloudSize(obj)
	if err != nil {
		return nil, remapError(err)
	}
	pts := make([]P, n)
	if n == 0 {
		return pts, nil
	}
	if err := backend.CloudPoints(obj, pointPtr(&pts[0]), n); err != nil {
		return nil, remapError(err)
	}
	return pts, nil
}

// Resize changes the number of points. New points are zero valued; the
// cloud becomes unorganized unless width*height already equals n.
func (c pointCloudOps[P]) Resize(n int) error {
	obj, err := c.r.get()
	if err != nil {
		return err
	}
	return remapError(backend.CloudResize(obj, n))
}

// Clear removes every point.
func (c pointCloudOps[P]) Clear() error {
	obj, err := c.r.get()
	if err != nil {
		return err
	}
	return remapError(backend.CloudClear(obj))
}
