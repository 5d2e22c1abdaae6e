//go:build !cgo || !pcl

package backend

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// rangeImage is pcl::RangeImage: a PointWithRange cloud plus its spherical
// projection.
type rangeImage struct {
	cloud
	resX, resY       float32
	offsetX, offsetY int
	toWorld          [16]float32
	toImage          [16]float32
}

var rangeLayout = LayoutOf(PointWithRange)

func newRangeImage() *rangeImage {
	ri := &rangeImage{cloud: *newCloud(rangeLayout, 0, 0)}
	ri.toWorld = identity16()
	ri.toImage = identity16()
	return ri
}

func (ri *rangeImage) clone() native {
	cp := *ri
	cp.cloud = *ri.cloud.clone().(*cloud)
	return &cp
}

func identity16() [16]float32 {
	return [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
}

// frameTransform mirrors RangeImage::getCoordinateFrameTransformation.
func frameTransform(f CoordinateFrame) [16]float32 {
	if f == LaserFrame {
		return [16]float32{
			0, 0, 1, 0,
			-1, 0, 0, 0,
			0, -1, 0, 0,
			0, 0, 0, 1,
		}
	}
	return identity16()
}

func toDense(m [16]float32) *mat.Dense {
	d := make([]float64, 16)
	for i, v := range m {
		d[i] = float64(v)
	}
	return mat.NewDense(4, 4, d)
}

func fromDense(d *mat.Dense) [16]float32 {
	var m [16]float32
	for r := range 4 {
		for c := range 4 {
			m[r*4+c] = float32(d.At(r, c))
		}
	}
	return m
}

func apply(m *[16]float32, x, y, z float32) (float32, float32, float32) {
	return m[0]*x + m[1]*y + m[2]*z + m[3],
		m[4]*x + m[5]*y + m[6]*z + m[7],
		m[8]*x + m[9]*y + m[10]*z + m[11]
}

const (
	pi32     = float32(math.Pi)
	halfPi32 = float32(math.Pi / 2)
)

func lrint(v float32) int { return int(math.RoundToEven(float64(v))) }

func (ri *rangeImage) inImage(x, y int) bool {
	return x >= 0 && x < int(ri.width) && y >= 0 && y < int(ri.height)
}

func (ri *rangeImage) imagePoint(x, y, z float32) (ix, iy, rng float32) {
	tx, ty, tz := apply(&ri.toImage, x, y, z)
	rng = float32(math.Sqrt(float64(tx*tx + ty*ty + tz*tz)))
	angleX := float32(math.Atan2(float64(tx), float64(tz)))
	angleY := float32(math.Asin(float64(ty / rng)))
	ix = (angleX*float32(math.Cos(float64(angleY)))+pi32)/ri.resX - float32(ri.offsetX)
	iy = (angleY+halfPi32)/ri.resY - float32(ri.offsetY)
	return ix, iy, rng
}

func (ri *rangeImage) point3D(ix, iy int, rng float32) (float32, float32, float32) {
	angleY := float32(iy+ri.offsetY)*ri.resY - halfPi32
	cosY := float32(math.Cos(float64(angleY)))
	var angleX float32
	if cosY != 0 {
		angleX = (float32(ix+ri.offsetX)*ri.resX - pi32) / cosY
	}
	sinX, cosX := math.Sincos(float64(angleX))
	sinY := float32(math.Sin(float64(angleY)))
	x := rng * float32(sinX) * cosY
	y := rng * sinY
	z := rng * float32(cosX) * cosY
	return apply(&ri.toWorld, x, y, z)
}

var (
	fieldX, _     = rangeLayout.Field("x")
	fieldY, _     = rangeLayout.Field("y")
	fieldZ, _     = rangeLayout.Field("z")
	fieldRange, _ = rangeLayout.Field("range")
)

func (ri *rangeImage) setUnobserved(i int) {
	nan := float32(math.NaN())
	ri.setFloat(i, fieldX, nan)
	ri.setFloat(i, fieldY, nan)
	ri.setFloat(i, fieldZ, nan)
	ri.setFloat(i, fieldRange, float32(math.Inf(-1)))
}

// RangeImageCreate runs RangeImage::createFromPointCloud on ri with the points
// of src.
func RangeImageCreate(o, src Object, p RangeImageParams) error {
	const op = "createFromPointCloud"
	if o == nil || o.value == nil {
		return nativeErr(op, CodeNull, "null range image")
	}
	ri, ok := o.value.(*rangeImage)
	if !ok {
		return nativeErr(op, CodeType, "%s is not a range image", o.kind)
	}
	in, err := cloudOf(op, src)
	if err != nil {
		return err
	}
	fx, fy, fz, ok := in.xyz()
	if !ok {
		return nativeErr(op, CodeType, "%s has no coordinates", in.layout.Native)
	}
	if err := p.validate(op); err != nil {
		return err
	}

	// Snapshot the input first so in may alias ri.
	pts := make([][3]float32, 0, in.size())
	for i := range in.size() {
		if in.finite(i, fx, fy, fz) {
			pts = append(pts, [3]float32{in.float(i, fx), in.float(i, fy), in.float(i, fz)})
		}
	}

	width, err := pixels(op, p.MaxAngleWidth, p.AngularResolutionX)
	if err != nil {
		return err
	}
	height, err := pixels(op, p.MaxAngleHeight, p.AngularResolutionY)
	if err != nil {
		return err
	}
	fullWidth, err := pixels(op, 2*pi32, p.AngularResolutionX)
	if err != nil {
		return err
	}
	fullHeight, err := pixels(op, pi32, p.AngularResolutionY)
	if err != nil {
		return err
	}
	if _, err := bufferLen(op, rangeLayout.Size, width, height); err != nil {
		return err
	}
	ri.resX, ri.resY = p.AngularResolutionX, p.AngularResolutionY
	ri.offsetX = (fullWidth - width) / 2
	ri.offsetY = (fullHeight - height) / 2

	frame := frameTransform(p.Frame)
	world := mat.NewDense(4, 4, nil)
	world.Mul(toDense(p.Pose), toDense(frame))
	var inv mat.Dense
	if err := inv.Inverse(world); err != nil {
		return nativeErr(op, CodeRange, "sensor pose is not invertible: %v", err)
	}
	ri.toWorld = fromDense(world)
	ri.toImage = fromDense(&inv)

	ri.width, ri.height = uint32(width), uint32(height)
	ri.data = make([]byte, width*height*rangeLayout.Size)
	for i := range width * height {
		ri.setUnobserved(i)
	}
	ri.dense = false

	top, right, bottom, left := height, -1, -1, width
	ri.zBuffer(pts, p.NoiseLevel, p.MinRange, &top, &right, &bottom, &left)
	if top > bottom {
		ri.width, ri.height = 0, 0
		ri.data = ri.data[:0]
		return nil
	}
	if err := ri.crop(op, p.BorderSize, top, right, bottom, left); err != nil {
		return err
	}
	ri.recalculate3D()
	return nil
}

// maxImageSide is the largest width or height a range image may have; PCL
// stores both as int.
const maxImageSide = math.MaxInt32

func (p RangeImageParams) validate(op string) error {
	if !(p.AngularResolutionX > 0) || !(p.AngularResolutionY > 0) ||
		math.IsInf(float64(p.AngularResolutionX), 0) || math.IsInf(float64(p.AngularResolutionY), 0) {
		return nativeErr(op, CodeRange, "angular resolution must be positive and finite, got %g, %g",
			p.AngularResolutionX, p.AngularResolutionY)
	}
	if !(p.MaxAngleWidth >= 0) || !(p.MaxAngleHeight >= 0) ||
		math.IsInf(float64(p.MaxAngleWidth), 0) || math.IsInf(float64(p.MaxAngleHeight), 0) {
		return nativeErr(op, CodeRange, "max angles must be finite and non-negative, got %g, %g",
			p.MaxAngleWidth, p.MaxAngleHeight)
	}
	if p.BorderSize < 0 || p.BorderSize > maxImageSide {
		return nativeErr(op, CodeRange, "border size %d", p.BorderSize)
	}
	return nil
}

// pixels returns floor(angle/res) as an image side length.
func pixels(op string, angle, res float32) (int, error) {
	n := math.Floor(float64(angle / res))
	if !(n >= 0) || n > maxImageSide {
		return 0, nativeErr(op, CodeRange, "std::bad_alloc: %g pixels for %g rad at %g rad", n, angle, res)
	}
	return int(n), nil
}

func (ri *rangeImage) zBuffer(pts [][3]float32, noise, minRange float32, top, right, bottom, left *int) {
	counters := make([]int, int(ri.width)*int(ri.height))
	grow := func(x, y int) {
		*top = min(*top, y)
		*right = max(*right, x)
		*bottom = max(*bottom, y)
		*left = min(*left, x)
	}

	for _, p := range pts {
		xr, yr, rng := ri.imagePoint(p[0], p[1], p[2])
		x, y := lrint(xr), lrint(yr)
		if rng < minRange || !ri.inImage(x, y) {
			continue
		}

		fx, fy := int(math.Floor(float64(xr))), int(math.Floor(float64(yr)))
		cx, cy := int(math.Ceil(float64(xr))), int(math.Ceil(float64(yr)))
		for _, n := range [4][2]int{{fx, fy}, {fx, cy}, {cx, fy}, {cx, cy}} {
			if (n[0] == x && n[1] == y) || !ri.inImage(n[0], n[1]) {
				continue
			}
			ni := n[1]*int(ri.width) + n[0]
			if counters[ni] != 0 {
				continue
			}
			cur := ri.float(ni, fieldRange)
			if math.IsInf(float64(cur), 0) {
				cur = rng
			} else {
				cur = min(cur, rng)
			}
			ri.setFloat(ni, fieldRange, cur)
			grow(n[0], n[1])
		}

		i := y*int(ri.width) + x
		cur := ri.float(i, fieldRange)
		switch {
		case counters[i] == 0 || rng < cur-noise:
			counters[i] = 1
			ri.setFloat(i, fieldRange, rng)
			grow(x, y)
		case float32(math.Abs(float64(rng-cur))) <= noise:
			counters[i]++
			ri.setFloat(i, fieldRange, cur+(rng-cur)/float32(counters[i]))
		}
	}
}

func (ri *rangeImage) crop(op string, border, top, right, bottom, left int) error {
	top -= border
	right += border
	bottom += border
	left -= border

	width, height := right-left+1, bottom-top+1
	if width > maxImageSide || height > maxImageSide {
		return nativeErr(op, CodeRange, "std::bad_alloc: cropped image %dx%d", width, height)
	}
	if _, err := bufferLen(op, rangeLayout.Size, width, height); err != nil {
		return err
	}
	old := *ri
	ri.width, ri.height = uint32(width), uint32(height)
	ri.offsetX = left + old.offsetX
	ri.offsetY = top + old.offsetY
	ri.data = make([]byte, width*height*rangeLayout.Size)
	for y := range height {
		for x := range width {
			i := y*width + x
			ox, oy := left+x, top+y
			if old.inImage(ox, oy) {
				copy(ri.point(i), old.point(oy*int(old.width)+ox))
			} else {
				ri.setUnobserved(i)
			}
		}
	}
	return nil
}

func (ri *rangeImage) recalculate3D() {
	for y := range int(ri.height) {
		for x := range int(ri.width) {
			i := y*int(ri.width) + x
			rng := ri.float(i, fieldRange)
			if math.IsInf(float64(rng), 0) {
				continue
			}
			px, py, pz := ri.point3D(x, y, rng)
			ri.setFloat(i, fieldX, px)
			ri.setFloat(i, fieldY, py)
			ri.setFloat(i, fieldZ, pz)
		}
	}
}

// RangeImageGetInfo returns the projection state of a range image.
func RangeImageGetInfo(o Object) (RangeImageInfo, error) {
	if o == nil || o.value == nil {
		return RangeImageInfo{}, nativeErr("range_image", CodeNull, "null range image")
	}
	ri, ok := o.value.(*rangeImage)
	if !ok {
		return RangeImageInfo{}, nativeErr("range_image", CodeType, "%s is not a range image", o.kind)
	}
	return RangeImageInfo{
		AngularResolutionX: ri.resX,
		AngularResolutionY: ri.resY,
		ImageOffsetX:       ri.offsetX,
		ImageOffsetY:       ri.offsetY,
		ToWorld:            ri.toWorld,
	}, nil
}
