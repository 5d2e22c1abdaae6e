//go:build !cgo || !pcl

package backend

import (
	"bytes"
	"encoding/binary"
	"math"
	"unsafe"
)

// cloud is pcl::PointCloud<T> with the element type erased to its layout.
// Points are stored back to back, padding included.
type cloud struct {
	layout *Layout
	data   []byte
	width  uint32
	height uint32
	dense  bool
}

func newCloud(l *Layout, width, height uint32) *cloud {
	n := int(width) * int(height)
	return &cloud{layout: l, data: make([]byte, n*l.Size), width: width, height: height, dense: true}
}

// maxBufferBytes bounds a single point buffer. Larger requests fail the way
// std::bad_alloc does in the linked build.
const maxBufferBytes = 1 << 40

// mulSize returns a*b for non-negative a and b, or false on overflow.
func mulSize(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a != 0 && b > math.MaxInt/a {
		return 0, false
	}
	return a * b, true
}

// bufferLen returns the byte length of n points of size bytes each.
func bufferLen(op string, size int, dims ...int) (int, error) {
	total := size
	for _, d := range dims {
		var ok bool
		if total, ok = mulSize(total, d); !ok || total > maxBufferBytes {
			return 0, nativeErr(op, CodeRange, "std::bad_alloc: %v points of %d bytes", dims, size)
		}
	}
	return total, nil
}

// newSizedCloud is newCloud for caller supplied dimensions.
func newSizedCloud(op string, l *Layout, width, height uint32) (*cloud, error) {
	if _, err := bufferLen(op, l.Size, int(width), int(height)); err != nil {
		return nil, err
	}
	return newCloud(l, width, height), nil
}

func (c *cloud) clone() native {
	cp := *c
	cp.data = bytes.Clone(c.data)
	return &cp
}

func (c *cloud) size() int { return len(c.data) / c.layout.Size }

func (c *cloud) point(i int) []byte {
	s := c.layout.Size
	return c.data[i*s : (i+1)*s : (i+1)*s]
}

func (c *cloud) float(i int, f Field) float32 {
	return math.Float32frombits(binary.NativeEndian.Uint32(c.data[i*c.layout.Size+f.Offset:]))
}

func (c *cloud) setFloat(i int, f Field, v float32) {
	binary.NativeEndian.PutUint32(c.data[i*c.layout.Size+f.Offset:], math.Float32bits(v))
}

func (c *cloud) resize(n int) {
	s := c.layout.Size
	if n*s <= cap(c.data) {
		old := len(c.data)
		c.data = c.data[:n*s]
		if n*s > old {
			clear(c.data[old:])
		}
	} else {
		grown := make([]byte, n*s)
		copy(grown, c.data)
		c.data = grown
	}
	if int(c.width)*int(c.height) != n {
		c.width = uint32(n)
		c.height = 1
	}
}

// xyz returns the coordinate fields. ok is false for layouts without them.
func (c *cloud) xyz() (x, y, z Field, ok bool) {
	if !c.layout.HasXYZ() {
		return
	}
	x, _ = c.layout.Field("x")
	y, _ = c.layout.Field("y")
	z, _ = c.layout.Field("z")
	return x, y, z, true
}

func (c *cloud) finite(i int, x, y, z Field) bool {
	return isFinite32(c.float(i, x)) && isFinite32(c.float(i, y)) && isFinite32(c.float(i, z))
}

func isFinite32(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func cloudOf(op string, o Object) (*cloud, error) {
	if o == nil || o.value == nil {
		return nil, nativeErr(op, CodeNull, "null object")
	}
	switch v := o.value.(type) {
	case *cloud:
		return v, nil
	case *rangeImage:
		return &v.cloud, nil
	}
	return nil, nativeErr(op, CodeType, "%s is not a point cloud", o.kind)
}

func pointBytes(src unsafe.Pointer, size int) []byte {
	return unsafe.Slice((*byte)(src), size)
}

// CloudSize returns the number of stored points.
func CloudSize(o Object) (int, error) {
	c, err := cloudOf("size", o)
	if err != nil {
		return 0, err
	}
	return c.size(), nil
}

// CloudDims returns width and height.
func CloudDims(o Object) (uint32, uint32, error) {
	c, err := cloudOf("dims", o)
	if err != nil {
		return 0, 0, err
	}
	return c.width, c.height, nil
}

// CloudIsDense returns the is_dense flag.
func CloudIsDense(o Object) (bool, error) {
	c, err := cloudOf("is_dense", o)
	if err != nil {
		return false, err
	}
	return c.dense, nil
}

// CloudSetIsDense sets the is_dense flag.
func CloudSetIsDense(o Object, dense bool) error {
	c, err := cloudOf("is_dense", o)
	if err != nil {
		return err
	}
	c.dense = dense
	return nil
}

// CloudPush appends one point read from src. The cloud becomes unorganized
// with width equal to its size, as push_back does.
func CloudPush(o Object, src unsafe.Pointer) error {
	c, err := cloudOf("push_back", o)
	if err != nil {
		return err
	}
	c.data = append(c.data, pointBytes(src, c.layout.Size)...)
	c.width = uint32(c.size())
	c.height = 1
	return nil
}

// CloudAt copies point i into dst.
func CloudAt(o Object, i int, dst unsafe.Pointer) error {
	c, err := cloudOf("at", o)
	if err != nil {
		return err
	}
	if i < 0 || i >= c.size() {
		return nativeErr("at", CodeRange, "index %d out of range [0,%d)", i, c.size())
	}
	copy(pointBytes(dst, c.layout.Size), c.point(i))
	return nil
}

// CloudSet overwrites point i from src.
func CloudSet(o Object, i int, src unsafe.Pointer) error {
	c, err := cloudOf("set", o)
	if err != nil {
		return err
	}
	if i < 0 || i >= c.size() {
		return nativeErr("set", CodeRange, "index %d out of range [0,%d)", i, c.size())
	}
	copy(c.point(i), pointBytes(src, c.layout.Size))
	return nil
}

// CloudPoints copies all n points into dst. n must equal the cloud size.
func CloudPoints(o Object, dst unsafe.Pointer, n int) error {
	c, err := cloudOf("points", o)
	if err != nil {
		return err
	}
	if n != c.size() {
		return nativeErr("points", CodeRange, "buffer holds %d points, cloud has %d", n, c.size())
	}
	if n == 0 {
		return nil
	}
	copy(unsafe.Slice((*byte)(dst), n*c.layout.Size), c.data)
	return nil
}

// CloudResize resizes to n points. New points are zeroed.
func CloudResize(o Object, n int) error {
	c, err := cloudOf("resize", o)
	if err != nil {
		return err
	}
	if n < 0 {
		return nativeErr("resize", CodeRange, "negative size %d", n)
	}
	if _, err := bufferLen("resize", c.layout.Size, n); err != nil {
		return err
	}
	c.resize(n)
	return nil
}

// CloudClear removes every point.
func CloudClear(o Object) error {
	c, err := cloudOf("clear", o)
	if err != nil {
		return err
	}
	c.data = c.data[:0]
	c.width, c.height = 0, 0
	return nil
}
