package pcl

import "github.com/pclgo/pcl-go/pkg/pcl/internal/backend"

// ConvertPointCloud copies src into a new cloud of point type T, matching
// fields by name as pcl::copyPointCloud does. Fields of T that S lacks are
// zero. Width, height and is_dense are carried over.
func ConvertPointCloud[T, S Point](src Cloud[S]) (*PointCloud[T], error) {
	in, err := src.cloudRef().get()
	if err != nil {
		return nil, err
	}
	out, err := NewPointCloud[T]()
	if err != nil {
		return nil, err
	}
	dst, _ := out.Shared.r.get()
	if err := backend.CopyPointCloud(in, dst); err != nil {
		out.Release()
		return nil, remapError(err)
	}
	return out, nil
}

// TransformPointCloud writes every point of in moved by tf into out. in and
// out may be the same cloud. Non-finite points of a cloud that is not dense are
// copied unchanged.
func TransformPointCloud[P Point](in, out Cloud[P], tf Affine) error {
	return transform(in, out, tf, false)
}

// TransformPointCloudWithNormals is TransformPointCloud that also rotates the
// normals of point types that carry them.
func TransformPointCloudWithNormals[P Point](in, out Cloud[P], tf Affine) error {
	return transform(in, out, tf, true)
}

func transform(in, out AnyCloud, tf Affine, withNormals bool) error {
	src, err := in.cloudRef().get()
	if err != nil {
		return err
	}
	dst, err := out.cloudRef().get()
	if err != nil {
		return err
	}
	return remapError(backend.TransformPointCloud(src, dst, [16]float32(tf), withNormals))
}

// ComputeCentroid stores the mean of the points of c in out as
// (x, y, z, 1) and returns how many points were averaged. Non-finite points
// are skipped unless the cloud claims to be dense. It fails with
// ErrNoValidPoints, leaving out untouched, when nothing was averaged.
func ComputeCentroid[P Point](c Cloud[P], out *[4]float32) (int, error) {
	obj, err := c.cloudRef().get()
	if err != nil {
		return 0, err
	}
	var tmp [4]float32
	n, err := backend.Compute3DCentroid(obj, &tmp)
	if err != nil {
		return 0, remapError(err)
	}
	if n == 0 {
		return 0, ErrNoValidPoints
	}
	*out = tmp
	return n, nil
}

// RemoveNaN copies the points of in with finite coordinates into out and
// returns their indices in ascending order. out becomes dense and unorganized.
// in and out may be the same cloud.
func RemoveNaN[P Point](in, out Cloud[P]) ([]int, error) {
	src, err := in.cloudRef().get()
	if err != nil {
		return nil, err
	}
	dst, err := out.cloudRef().get()
	if err != nil {
		return nil, err
	}
	idx, err := backend.RemoveNaN(src, dst)
	return idx, remapError(err)
}

// RemoveNaNIndices returns the ascending indices of the points of in with
// finite coordinates without modifying any cloud.
func RemoveNaNIndices[P Point](in Cloud[P]) ([]int, error) {
	src, err := in.cloudRef().get()
	if err != nil {
		return nil, err
	}
	idx, err := backend.RemoveNaN(src, nil)
	return idx, remapError(err)
}
