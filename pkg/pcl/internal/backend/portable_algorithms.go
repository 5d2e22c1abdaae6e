//go:build !cgo || !pcl

package backend

import (
	"bytes"

	"gonum.org/v1/gonum/spatial/r3"
)

// CopyPointCloud converts src into dst, which may have a different layout.
// Fields are matched by name and type as pcl::copyPointCloud does; dst fields
// absent from src are zeroed. rgb and rgba are one packed color and are copied
// bit for bit between each other.
func CopyPointCloud(src, dst Object) error {
	in, err := cloudOf("copyPointCloud", src)
	if err != nil {
		return err
	}
	out, err := cloudOf("copyPointCloud", dst)
	if err != nil {
		return err
	}

	type pair struct{ from, to, size int }
	var pairs []pair
	for _, f := range out.layout.Fields {
		sf, ok := in.layout.Field(f.Name)
		switch {
		case ok && sf.Datatype == f.Datatype && sf.Count == f.Count:
		case packedColor(f.Name):
			if sf, ok = colorField(in.layout); !ok || sf.Datatype.Size()*sf.Count != f.Datatype.Size()*f.Count {
				continue
			}
		default:
			continue
		}
		pairs = append(pairs, pair{from: sf.Offset, to: f.Offset, size: f.Datatype.Size() * f.Count})
	}

	n := in.size()
	inSize, outSize := in.layout.Size, out.layout.Size
	data := make([]byte, n*outSize)
	for i := range n {
		for _, p := range pairs {
			copy(data[i*outSize+p.to:i*outSize+p.to+p.size], in.data[i*inSize+p.from:])
		}
	}
	out.data = data
	out.width, out.height, out.dense = in.width, in.height, in.dense
	return nil
}

// colorField returns the packed color field of l, named rgb or rgba.
func colorField(l *Layout) (Field, bool) {
	if f, ok := l.Field("rgb"); ok {
		return f, true
	}
	return l.Field("rgba")
}

// TransformPointCloud applies the row-major affine m to every point of in and
// writes the result to out. in and out may be the same object. Non-finite
// points are left untouched when in is not dense. With normals set, normal
// vectors are rotated by the linear part of m.
func TransformPointCloud(in, out Object, m [16]float32, withNormals bool) error {
	const op = "transformPointCloud"
	cin, err := cloudOf(op, in)
	if err != nil {
		return err
	}
	cout, err := cloudOf(op, out)
	if err != nil {
		return err
	}
	if cin.layout != cout.layout {
		return nativeErr(op, CodeType, "%s -> %s", cin.layout.Native, cout.layout.Native)
	}
	fx, fy, fz, ok := cin.xyz()
	if !ok {
		return nativeErr(op, CodeType, "%s has no coordinates", cin.layout.Native)
	}
	var nx, ny, nz Field
	if withNormals {
		if !cin.layout.HasNormals() {
			return nativeErr(op, CodeType, "%s has no normals", cin.layout.Native)
		}
		nx, _ = cin.layout.Field("normal_x")
		ny, _ = cin.layout.Field("normal_y")
		nz, _ = cin.layout.Field("normal_z")
	}

	if cin != cout {
		cout.data = bytes.Clone(cin.data)
		cout.width, cout.height, cout.dense = cin.width, cin.height, cin.dense
	}
	for i := range cout.size() {
		if !cout.dense && !cout.finite(i, fx, fy, fz) {
			continue
		}
		x, y, z := cout.float(i, fx), cout.float(i, fy), cout.float(i, fz)
		cout.setFloat(i, fx, m[0]*x+m[1]*y+m[2]*z+m[3])
		cout.setFloat(i, fy, m[4]*x+m[5]*y+m[6]*z+m[7])
		cout.setFloat(i, fz, m[8]*x+m[9]*y+m[10]*z+m[11])
		if withNormals {
			a, b, c := cout.float(i, nx), cout.float(i, ny), cout.float(i, nz)
			cout.setFloat(i, nx, m[0]*a+m[1]*b+m[2]*c)
			cout.setFloat(i, ny, m[4]*a+m[5]*b+m[6]*c)
			cout.setFloat(i, nz, m[8]*a+m[9]*b+m[10]*c)
		}
	}
	return nil
}

// Compute3DCentroid averages the coordinates of o into out and returns the
// number of points used. Non-finite points are skipped unless o is dense.
// out is untouched when no point qualifies.
func Compute3DCentroid(o Object, out *[4]float32) (int, error) {
	const op = "compute3DCentroid"
	c, err := cloudOf(op, o)
	if err != nil {
		return 0, err
	}
	fx, fy, fz, ok := c.xyz()
	if !ok {
		return 0, nativeErr(op, CodeType, "%s has no coordinates", c.layout.Native)
	}

	var (
		sum r3.Vec
		n   int
	)
	for i := range c.size() {
		if !c.dense && !c.finite(i, fx, fy, fz) {
			continue
		}
		sum = r3.Add(sum, r3.Vec{X: float64(c.float(i, fx)), Y: float64(c.float(i, fy)), Z: float64(c.float(i, fz))})
		n++
	}
	if n == 0 {
		return 0, nil
	}
	mean := r3.Scale(1/float64(n), sum)
	*out = [4]float32{float32(mean.X), float32(mean.Y), float32(mean.Z), 1}
	return n, nil
}

// RemoveNaN returns the ascending indices of points in with finite
// coordinates. When out is non-nil it receives the compacted cloud, marked
// dense and unorganized. Every point is inspected regardless of in's is_dense flag.
func RemoveNaN(in, out Object) ([]int, error) {
	const op = "removeNaNFromPointCloud"
	cin, err := cloudOf(op, in)
	if err != nil {
		return nil, err
	}
	fx, fy, fz, ok := cin.xyz()
	if !ok {
		return nil, nativeErr(op, CodeType, "%s has no coordinates", cin.layout.Native)
	}

	n := cin.size()
	idx := make([]int, 0, n)
	for i := range n {
		if cin.finite(i, fx, fy, fz) {
			idx = append(idx, i)
		}
	}
	if out == nil {
		return idx, nil
	}

	cout, err := cloudOf(op, out)
	if err != nil {
		return nil, err
	}
	if cout.layout != cin.layout {
		return nil, nativeErr(op, CodeType, "%s -> %s", cin.layout.Native, cout.layout.Native)
	}
	size := cin.layout.Size
	data := make([]byte, len(idx)*size)
	for j, i := range idx {
		copy(data[j*size:(j+1)*size], cin.point(i))
	}
	cout.data = data
	cout.width, cout.height = uint32(len(idx)), 1
	cout.dense = true
	return idx, nil
}
