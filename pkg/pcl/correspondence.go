package pcl

import (
	"github.com/pclgo/pcl-go/pkg/pcl/internal/backend"
)

// correspondenceOps carries the pcl::Correspondence fields.
type correspondenceOps struct {
	r *ref
}

func (c correspondenceOps) load() (backend.Correspondence, error) {
	obj, err := c.r.get()
	if err != nil {
		return backend.Correspondence{}, err
	}
	v, err := backend.CorrespondenceGet(obj)
	return v, remapError(err)
}

func (c correspondenceOps) store(f func(*backend.Correspondence)) error {
	v, err := c.load()
	if err != nil {
		return err
	}
	f(&v)
	obj, _ := c.r.get()
	return remapError(backend.CorrespondenceSet(obj, v))
}

// IndexQuery returns the index of the query point.
func (c correspondenceOps) IndexQuery() (int, error) {
	v, err := c.load()
	return v.IndexQuery, err
}

// IndexMatch returns the index of the matching point, -1 when unmatched.
func (c correspondenceOps) IndexMatch() (int, error) {
	v, err := c.load()
	return v.IndexMatch, err
}

// Distance returns the distance between the two points.
func (c correspondenceOps) Distance() (float32, error) {
	v, err := c.load()
	return v.Distance, err
}

func (c correspondenceOps) SetIndexQuery(i int) error {
	return c.store(func(v *backend.Correspondence) { v.IndexQuery = i })
}

func (c correspondenceOps) SetIndexMatch(i int) error {
	return c.store(func(v *backend.Correspondence) { v.IndexMatch = i })
}

func (c correspondenceOps) SetDistance(d float32) error {
	return c.store(func(v *backend.Correspondence) { v.Distance = d })
}

// correspondencesOps carries the pcl::Correspondences vector operations.
type correspondencesOps struct {
	r *ref
}

// Len returns the number of correspondences.
func (c correspondencesOps) Len() (int, error) {
	obj, err := c.r.get()
	if err != nil {
		return 0, err
	}
	n, err := backend.CorrespondencesLen(obj)
	return n, remapError(err)
}

// Append copies m to the back of the vector.
func (c correspondencesOps) Append(m *Correspondence) error {
	obj, err := c.r.get()
	if err != nil {
		return err
	}
	v, err := m.load()
	if err != nil {
		return err
	}
	return remapError(backend.CorrespondencesAppend(obj, v))
}

// At returns a copy of element i.
func (c correspondencesOps) At(i int) (*Correspondence, error) {
	obj, err := c.r.get()
	if err != nil {
		return nil, err
	}
	v, err := backend.CorrespondencesAt(obj, i)
	if err != nil {
		return nil, remapError(err)
	}
	return NewCorrespondenceOf(v.IndexQuery, v.IndexMatch, v.Distance)
}

// pointIndicesOps carries the pcl::PointIndices operations.
type pointIndicesOps struct {
	r *ref
}

// Len returns the number of indices.
func (p pointIndicesOps) Len() (int, error) {
	idx, err := p.Indices()
	return len(idx), err
}

// Indices copies the indices out.
func (p pointIndicesOps) Indices() ([]int32, error) {
	obj, err := p.r.get()
	if err != nil {
		return nil, err
	}
	idx, err := backend.PointIndicesGet(obj)
	return idx, remapError(err)
}

// Append adds indices to the back.
func (p pointIndicesOps) Append(idx ...int32) error {
	obj, err := p.r.get()
	if err != nil {
		return err
	}
	return remapError(backend.PointIndicesAppend(obj, idx...))
}

// modelCoefficientsOps carries the pcl::ModelCoefficients operations.
type modelCoefficientsOps struct {
	r *ref
}

// Len returns the number of coefficients.
func (m modelCoefficientsOps) Len() (int, error) {
	v, err := m.Values()
	return len(v), err
}

// Values copies the coefficients out.
func (m modelCoefficientsOps) Values() ([]float32, error) {
	obj, err := m.r.get()
	if err != nil {
		return nil, err
	}
	v, err := backend.ModelCoefficientsGet(obj)
	return v, remapError(err)
}

// SetValues replaces the coefficients.
func (m modelCoefficientsOps) SetValues(v []float32) error {
	obj, err := m.r.get()
	if err != nil {
		return err
	}
	return remapError(backend.ModelCoefficientsSet(obj, v))
}
