//go:build !cgo || !pcl

package backend

import "slices"

type correspondence Correspondence

func (c *correspondence) clone() native {
	cp := *c
	return &cp
}

type correspondences struct{ items []Correspondence }

func (c *correspondences) clone() native {
	return &correspondences{items: slices.Clone(c.items)}
}

type pointIndices struct{ indices []int32 }

func (p *pointIndices) clone() native {
	return &pointIndices{indices: slices.Clone(p.indices)}
}

type modelCoefficients struct{ values []float32 }

func (m *modelCoefficients) clone() native {
	return &modelCoefficients{values: slices.Clone(m.values)}
}

func valueOf[T native](op string, o Object) (T, error) {
	var zero T
	if o == nil || o.value == nil {
		return zero, nativeErr(op, CodeNull, "null object")
	}
	v, ok := o.value.(T)
	if !ok {
		return zero, nativeErr(op, CodeType, "unexpected %s", o.kind)
	}
	return v, nil
}

// CorrespondenceGet reads a pcl::Correspondence.
func CorrespondenceGet(o Object) (Correspondence, error) {
	c, err := valueOf[*correspondence]("correspondence", o)
	if err != nil {
		return Correspondence{}, err
	}
	return Correspondence(*c), nil
}

// CorrespondenceSet overwrites a pcl::Correspondence.
func CorrespondenceSet(o Object, v Correspondence) error {
	c, err := valueOf[*correspondence]("correspondence", o)
	if err != nil {
		return err
	}
	*c = correspondence(v)
	return nil
}

// CorrespondencesLen returns the vector length.
func CorrespondencesLen(o Object) (int, error) {
	c, err := valueOf[*correspondences]("correspondences", o)
	if err != nil {
		return 0, err
	}
	return len(c.items), nil
}

// CorrespondencesAppend pushes v to the back of the vector.
func CorrespondencesAppend(o Object, v Correspondence) error {
	c, err := valueOf[*correspondences]("correspondences", o)
	if err != nil {
		return err
	}
	c.items = append(c.items, v)
	return nil
}

// CorrespondencesAt returns element i.
func CorrespondencesAt(o Object, i int) (Correspondence, error) {
	c, err := valueOf[*correspondences]("correspondences", o)
	if err != nil {
		return Correspondence{}, err
	}
	if i < 0 || i >= len(c.items) {
		return Correspondence{}, nativeErr("correspondences", CodeRange, "index %d out of range [0,%d)", i, len(c.items))
	}
	return c.items[i], nil
}

// PointIndicesGet copies the indices out.
func PointIndicesGet(o Object) ([]int32, error) {
	p, err := valueOf[*pointIndices]("point_indices", o)
	if err != nil {
		return nil, err
	}
	return slices.Clone(p.indices), nil
}

// PointIndicesAppend adds indices to the back.
func PointIndicesAppend(o Object, idx ...int32) error {
	p, err := valueOf[*pointIndices]("point_indices", o)
	if err != nil {
		return err
	}
	p.indices = append(p.indices, idx...)
	return nil
}

// ModelCoefficientsGet copies the coefficient values out.
func ModelCoefficientsGet(o Object) ([]float32, error) {
	m, err := valueOf[*modelCoefficients]("model_coefficients", o)
	if err != nil {
		return nil, err
	}
	return slices.Clone(m.values), nil
}

// ModelCoefficientsSet replaces the coefficient values.
func ModelCoefficientsSet(o Object, values []float32) error {
	m, err := valueOf[*modelCoefficients]("model_coefficients", o)
	if err != nil {
		return err
	}
	m.values = slices.Clone(values)
	return nil
}
