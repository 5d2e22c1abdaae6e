//go:build !cgo || !pcl

package backend

import (
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"unsafe"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testXYZ struct {
	X, Y, Z, _ float32
}

type xyzrgb struct {
	X, Y, Z, _ float32
	B, G, R, A uint8
	_          [3]float32
}

func newTestCloud(t *testing.T, native string, shared bool, args ...Arg) Object {
	t.Helper()
	o, err := Construct(CtorKey{
		Kind:         KindPointCloud,
		TemplateArgs: []string{native},
		Symbol:       "pcl::PointCloud<" + native + ">",
		Arity:        len(args),
	}, args, shared)
	require.NoError(t, err)
	t.Cleanup(func() { Free(o) })
	return o
}

func pushXYZ(t *testing.T, o Object, pts ...testXYZ) {
	t.Helper()
	for i := range pts {
		require.NoError(t, CloudPush(o, unsafe.Pointer(&pts[i])))
	}
}

func code(err error) int {
	var ne *NativeError
	if errors.As(err, &ne) {
		return ne.Code
	}
	return CodeOK
}

func TestLayoutTable(t *testing.T) {
	for pt := PointXYZ; pt <= InterestPoint; pt++ {
		l := LayoutOf(pt)
		require.NotNil(t, l, "point type %d", pt)
		got, ok := PointTypeByNative(l.Native)
		require.True(t, ok, l.Native)
		assert.Equal(t, pt, got)
		assert.Zero(t, l.Size%8, "%s size %d", l.Native, l.Size)
		for _, f := range l.Fields {
			assert.LessOrEqual(t, f.Offset+f.Datatype.Size()*f.Count, l.Size, "%s.%s", l.Native, f.Name)
		}
	}
	_, ok := PointTypeByNative("pcl::PointSurfel")
	assert.False(t, ok)
}

func TestSharedOwnership(t *testing.T) {
	o := newTestCloud(t, "pcl::PointXYZ", true)
	n, err := UseCount(o)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	alias, err := Share(o)
	require.NoError(t, err)
	n, _ = UseCount(o)
	assert.Equal(t, 2, n)
	assert.Equal(t, Address(o), Address(alias))

	pushXYZ(t, alias, testXYZ{X: 1})
	size, _ := CloudSize(o)
	assert.Equal(t, 1, size)

	Free(alias)
	n, _ = UseCount(o)
	assert.Equal(t, 1, n)
	_, err = CloudSize(alias)
	assert.Equal(t, CodeNull, code(err))

	cp, err := Copy(o, true)
	require.NoError(t, err)
	defer Free(cp)
	assert.NotEqual(t, Address(o), Address(cp))
	pushXYZ(t, cp, testXYZ{Y: 2})
	size, _ = CloudSize(o)
	assert.Equal(t, 1, size)
}

func TestValueOwnership(t *testing.T) {
	o := newTestCloud(t, "pcl::PointXYZ", false)
	assert.False(t, IsShared(o))
	_, err := UseCount(o)
	assert.Equal(t, CodeNotShared, code(err))
	_, err = Share(o)
	assert.Equal(t, CodeNotShared, code(err))
}

func TestConstructErrors(t *testing.T) {
	_, err := Construct(CtorKey{Kind: KindPointCloud, TemplateArgs: []string{"pcl::PointXYZ"}, Arity: 2}, []Arg{IntArg(1)}, true)
	assert.Equal(t, CodeArity, code(err))

	_, err = Construct(CtorKey{Kind: KindPointCloud, TemplateArgs: []string{"pcl::Nope"}}, nil, true)
	assert.Equal(t, CodeType, code(err))

	_, err = Construct(CtorKey{Kind: KindUnknown}, nil, true)
	assert.Equal(t, CodeUnknownCtor, code(err))
}

func TestCloudShape(t *testing.T) {
	o := newTestCloud(t, "pcl::PointXYZ", true, IntArg(2), IntArg(3))
	n, _ := CloudSize(o)
	assert.Equal(t, 6, n)
	w, h, _ := CloudDims(o)
	assert.Equal(t, [2]uint32{2, 3}, [2]uint32{w, h})
	dense, _ := CloudIsDense(o)
	assert.True(t, dense)

	require.NoError(t, CloudResize(o, 6))
	w, h, _ = CloudDims(o)
	assert.Equal(t, [2]uint32{2, 3}, [2]uint32{w, h})

	require.NoError(t, CloudResize(o, 4))
	w, h, _ = CloudDims(o)
	assert.Equal(t, [2]uint32{4, 1}, [2]uint32{w, h})

	pushXYZ(t, o, testXYZ{X: 7, Y: 8, Z: 9})
	w, h, _ = CloudDims(o)
	assert.Equal(t, [2]uint32{5, 1}, [2]uint32{w, h})

	var p testXYZ
	require.NoError(t, CloudAt(o, 4, unsafe.Pointer(&p)))
	assert.Equal(t, testXYZ{X: 7, Y: 8, Z: 9}, p)
	assert.Equal(t, CodeRange, code(CloudAt(o, 5, unsafe.Pointer(&p))))
	assert.Equal(t, CodeRange, code(CloudResize(o, -1)))

	require.NoError(t, CloudClear(o))
	n, _ = CloudSize(o)
	assert.Zero(t, n)
}

func TestRemoveNaN(t *testing.T) {
	nan := float32(math.NaN())
	in := newTestCloud(t, "pcl::PointXYZ", true, IntArg(2), IntArg(2))
	pts := []testXYZ{{X: 1}, {X: nan}, {X: 3}, {Z: float32(math.Inf(1))}}
	for i := range pts {
		require.NoError(t, CloudSet(in, i, unsafe.Pointer(&pts[i])))
	}
	require.NoError(t, CloudSetIsDense(in, false))

	idx, err := RemoveNaN(in, nil)
	require.NoError(t, err)
	if diff := cmp.Diff([]int{0, 2}, idx); diff != "" {
		t.Fatalf("indices (-want +got):\n%s", diff)
	}
	n, _ := CloudSize(in)
	assert.Equal(t, 4, n, "indices-only call must not touch the input")

	out := newTestCloud(t, "pcl::PointXYZ", true)
	_, err = RemoveNaN(in, out)
	require.NoError(t, err)
	w, h, _ := CloudDims(out)
	assert.Equal(t, [2]uint32{2, 1}, [2]uint32{w, h})
	dense, _ := CloudIsDense(out)
	assert.True(t, dense)
	var p testXYZ
	require.NoError(t, CloudAt(out, 1, unsafe.Pointer(&p)))
	assert.Equal(t, float32(3), p.X)

	other := newTestCloud(t, "pcl::Normal", true)
	_, err = RemoveNaN(in, other)
	assert.Equal(t, CodeType, code(err))
}

func TestCentroidAndTransform(t *testing.T) {
	o := newTestCloud(t, "pcl::PointXYZ", true)
	pushXYZ(t, o, testXYZ{X: 1, Y: 2, Z: 3}, testXYZ{X: 3, Y: 2, Z: 1}, testXYZ{X: float32(math.NaN())})
	require.NoError(t, CloudSetIsDense(o, false))

	var c [4]float32
	n, err := Compute3DCentroid(o, &c)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, [4]float32{2, 2, 2, 1}, c)

	shift := [16]float32{1, 0, 0, 10, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	require.NoError(t, TransformPointCloud(o, o, shift, false))
	var p testXYZ
	require.NoError(t, CloudAt(o, 0, unsafe.Pointer(&p)))
	assert.Equal(t, float32(11), p.X)

	empty := newTestCloud(t, "pcl::PointXYZ", true)
	c = [4]float32{9, 9, 9, 9}
	n, err = Compute3DCentroid(empty, &c)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, [4]float32{9, 9, 9, 9}, c)
}

func TestCopyPointCloudByName(t *testing.T) {
	src := newTestCloud(t, "pcl::PointXYZRGB", true)
	p := xyzrgb{X: 1, Y: 2, Z: 3, R: 10, G: 20, B: 30}
	require.NoError(t, CloudPush(src, unsafe.Pointer(&p)))

	mid := newTestCloud(t, "pcl::PointXYZ", true)
	require.NoError(t, CopyPointCloud(src, mid))
	back := newTestCloud(t, "pcl::PointXYZRGB", true)
	require.NoError(t, CopyPointCloud(mid, back))

	var got xyzrgb
	require.NoError(t, CloudAt(back, 0, unsafe.Pointer(&got)))
	assert.Equal(t, xyzrgb{X: 1, Y: 2, Z: 3}, got)
}

type xyzrgba struct {
	X, Y, Z, _ float32
	B, G, R, A uint8
	_          [3]float32
}

func TestCopyPointCloudPackedColor(t *testing.T) {
	src := newTestCloud(t, "pcl::PointXYZRGB", true)
	p := xyzrgb{X: 1, Y: 2, Z: 3, R: 200, G: 100, B: 50, A: 255}
	require.NoError(t, CloudPush(src, unsafe.Pointer(&p)))

	rgba := newTestCloud(t, "pcl::PointXYZRGBA", true)
	require.NoError(t, CopyPointCloud(src, rgba))
	var got xyzrgba
	require.NoError(t, CloudAt(rgba, 0, unsafe.Pointer(&got)))
	assert.Equal(t, xyzrgba{X: 1, Y: 2, Z: 3, R: 200, G: 100, B: 50, A: 255}, got)

	back := newTestCloud(t, "pcl::PointXYZRGB", true)
	require.NoError(t, CopyPointCloud(rgba, back))
	var again xyzrgb
	require.NoError(t, CloudAt(back, 0, unsafe.Pointer(&again)))
	assert.Equal(t, p, again)
}

func TestCloudSizeLimits(t *testing.T) {
	_, err := Construct(CtorKey{Kind: KindPointCloud, TemplateArgs: []string{"pcl::PointXYZ"}, Arity: 2},
		[]Arg{IntArg(math.MaxUint32), IntArg(math.MaxUint32)}, true)
	assert.Equal(t, CodeRange, code(err))

	_, err = Construct(CtorKey{Kind: KindPointCloud, TemplateArgs: []string{"pcl::PointXYZ"}, Arity: 2},
		[]Arg{IntArg(-1), IntArg(2)}, true)
	assert.Equal(t, CodeRange, code(err))

	o := newTestCloud(t, "pcl::PointXYZ", true)
	pushXYZ(t, o, testXYZ{X: 1})
	assert.Equal(t, CodeRange, code(CloudResize(o, math.MaxInt/8)))
	assert.Equal(t, CodeRange, code(CloudResize(o, math.MaxInt)))
	n, _ := CloudSize(o)
	assert.Equal(t, 1, n, "failed resize must leave the cloud untouched")
}

func TestPCDRoundTrip(t *testing.T) {
	for _, format := range []PCDFormat{PCDASCII, PCDBinary} {
		t.Run([]string{"ascii", "binary"}[format], func(t *testing.T) {
			src := newTestCloud(t, "pcl::PointXYZRGB", true)
			pts := []xyzrgb{
				{X: 1.5, Y: -2, Z: 0.25, R: 255, G: 128, B: 1, A: 255},
				{X: float32(math.NaN()), Y: 4, Z: 5, R: 3, G: 2, B: 1, A: 255},
			}
			for i := range pts {
				require.NoError(t, CloudPush(src, unsafe.Pointer(&pts[i])))
			}

			path := filepath.Join(t.TempDir(), "cloud.pcd")
			require.NoError(t, SavePCD(path, src, format))

			dst := newTestCloud(t, "pcl::PointXYZRGB", true)
			require.NoError(t, LoadPCD(path, dst))
			n, _ := CloudSize(dst)
			require.Equal(t, 2, n)
			dense, _ := CloudIsDense(dst)
			assert.False(t, dense)

			var got xyzrgb
			require.NoError(t, CloudAt(dst, 0, unsafe.Pointer(&got)))
			assert.Equal(t, pts[0], got)
			require.NoError(t, CloudAt(dst, 1, unsafe.Pointer(&got)))
			assert.True(t, math.IsNaN(float64(got.X)))
			assert.Equal(t, [4]uint8{1, 2, 3, 255}, [4]uint8{got.B, got.G, got.R, got.A})
		})
	}
}

func TestPCDErrors(t *testing.T) {
	dir := t.TempDir()
	o := newTestCloud(t, "pcl::PointXYZ", true)

	assert.Equal(t, CodeEmpty, code(SavePCD(filepath.Join(dir, "empty.pcd"), o, PCDBinary)))
	assert.Equal(t, CodeEmpty, code(LoadPCD("", o)))
	assert.Equal(t, CodeIO, code(LoadPCD(filepath.Join(dir, "missing.pcd"), o)))

	pushXYZ(t, o, testXYZ{X: 1})
	compressed := filepath.Join(dir, "truncated.pcd")
	header := "VERSION 0.7\nFIELDS x y z\nSIZE 4 4 4\nTYPE F F F\nCOUNT 1 1 1\nWIDTH 1\nHEIGHT 1\nPOINTS 1\nDATA binary_compressed\n"
	require.NoError(t, os.WriteFile(compressed, []byte(header), 0o644))
	assert.Equal(t, CodeIO, code(LoadPCD(compressed, o)))
	n, _ := CloudSize(o)
	assert.Equal(t, 1, n, "failed load must leave the cloud untouched")
}

func TestPCDRejectsBadHeaders(t *testing.T) {
	const fields = "VERSION 0.7\nFIELDS x y z\nSIZE 4 4 4\nTYPE F F F\n"
	tests := []struct {
		name   string
		header string
		data   []byte
	}{
		{"negative count", fields + "COUNT 1 1 -3\nWIDTH 1\nHEIGHT 1\nPOINTS 1\nDATA binary\n", make([]byte, 12)},
		{"zero count", fields + "COUNT 1 0 1\nWIDTH 1\nHEIGHT 1\nPOINTS 1\nDATA binary\n", make([]byte, 12)},
		{"huge count", fields + "COUNT 1 1 4611686018427387904\nWIDTH 1\nHEIGHT 1\nPOINTS 1\nDATA binary\n", make([]byte, 12)},
		{"huge grid", fields + "COUNT 1 1 1\nWIDTH 4294967295\nHEIGHT 4294967295\nDATA binary\n", make([]byte, 12)},
		{"short binary", fields + "COUNT 1 1 1\nWIDTH 1000000\nHEIGHT 1\nPOINTS 1000000\nDATA binary\n", make([]byte, 12)},
		{"short ascii", fields + "COUNT 1 1 1\nWIDTH 1000000\nHEIGHT 1\nPOINTS 1000000\nDATA ascii\n", []byte("1 2 3\n")},
		{"points mismatch", fields + "COUNT 1 1 1\nWIDTH 2\nHEIGHT 1\nPOINTS 1\nDATA binary\n", make([]byte, 24)},
		{"compressed size mismatch", fields + "COUNT 1 1 1\nWIDTH 1\nHEIGHT 1\nPOINTS 1\nDATA binary_compressed\n",
			binary.LittleEndian.AppendUint32(binary.LittleEndian.AppendUint32(nil, 13), 4096)},
		{"compressed block past end", fields + "COUNT 1 1 1\nWIDTH 1\nHEIGHT 1\nPOINTS 1\nDATA binary_compressed\n",
			binary.LittleEndian.AppendUint32(binary.LittleEndian.AppendUint32(nil, 1<<20), 12)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.pcd")
			require.NoError(t, os.WriteFile(path, append([]byte(tt.header), tt.data...), 0o644))

			o := newTestCloud(t, "pcl::PointXYZ", true)
			pushXYZ(t, o, testXYZ{X: 1})
			assert.Equal(t, CodeIO, code(LoadPCD(path, o)))
			n, _ := CloudSize(o)
			assert.Equal(t, 1, n)
		})
	}
}

func TestPCDLoadsBinaryCompressed(t *testing.T) {
	// One point: the column-major block equals the record. An LZF control
	// byte below 32 introduces a literal run of control+1 bytes.
	block := []byte{11}
	for _, v := range []float32{1.5, -2, 3} {
		block = binary.LittleEndian.AppendUint32(block, math.Float32bits(v))
	}
	data := binary.LittleEndian.AppendUint32(nil, uint32(len(block)))
	data = binary.LittleEndian.AppendUint32(data, 12)
	data = append(data, block...)
	header := "VERSION 0.7\nFIELDS x y z\nSIZE 4 4 4\nTYPE F F F\nCOUNT 1 1 1\nWIDTH 1\nHEIGHT 1\n" +
		"VIEWPOINT 0 0 0 1 0 0 0\nPOINTS 1\nDATA binary_compressed\n"
	path := filepath.Join(t.TempDir(), "compressed.pcd")
	require.NoError(t, os.WriteFile(path, append([]byte(header), data...), 0o644))

	o := newTestCloud(t, "pcl::PointXYZ", true)
	require.NoError(t, LoadPCD(path, o))
	var p testXYZ
	require.NoError(t, CloudAt(o, 0, unsafe.Pointer(&p)))
	assert.Equal(t, testXYZ{X: 1.5, Y: -2, Z: 3}, p)
}

func TestPCDLoadsMissingFieldsAsZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xy.pcd")
	data := "# .PCD v0.7\nVERSION 0.7\nFIELDS x y\nSIZE 4 4\nTYPE F F\nCOUNT 1 1\nWIDTH 2\nHEIGHT 1\nVIEWPOINT 0 0 0 1 0 0 0\nPOINTS 2\nDATA ascii\n1 2\n3 4\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	o := newTestCloud(t, "pcl::PointXYZ", true)
	require.NoError(t, LoadPCD(path, o))
	var p testXYZ
	require.NoError(t, CloudAt(o, 1, unsafe.Pointer(&p)))
	assert.Equal(t, testXYZ{X: 3, Y: 4}, p)
}

func newTestRangeImage(t *testing.T) Object {
	t.Helper()
	o, err := Construct(CtorKey{Kind: KindRangeImage, Symbol: "pcl::RangeImage()"}, nil, true)
	require.NoError(t, err)
	t.Cleanup(func() { Free(o) })
	return o
}

func rangeParams() RangeImageParams {
	res := float32(math.Pi / 180)
	return RangeImageParams{
		AngularResolutionX: res,
		AngularResolutionY: res,
		MaxAngleWidth:      2 * math.Pi,
		MaxAngleHeight:     math.Pi,
		Pose:               identity16(),
		Frame:              CameraFrame,
		BorderSize:         1,
	}
}

func TestRangeImageCreate(t *testing.T) {
	src := newTestCloud(t, "pcl::PointXYZ", true)
	for a := -10; a <= 10; a++ {
		s, c := math.Sincos(float64(a) * math.Pi / 180)
		pushXYZ(t, src, testXYZ{X: float32(5 * s), Z: float32(5 * c)})
	}

	ri := newTestRangeImage(t)
	p := rangeParams()
	require.NoError(t, RangeImageCreate(ri, src, p))

	info, err := RangeImageGetInfo(ri)
	require.NoError(t, err)
	assert.Equal(t, p.AngularResolutionX, info.AngularResolutionX)
	assert.Equal(t, p.AngularResolutionY, info.AngularResolutionY)
	assert.Equal(t, identity16(), info.ToWorld)

	w, h, _ := CloudDims(ri)
	require.Greater(t, w, uint32(20))
	require.Greater(t, h, uint32(2))
	n, _ := CloudSize(ri)
	assert.Equal(t, int(w)*int(h), n)

	var corner [8]float32
	require.NoError(t, CloudAt(ri, 0, unsafe.Pointer(&corner)))
	assert.True(t, math.IsInf(float64(corner[4]), -1), "border pixel must be unobserved")

	valid := 0
	for i := range n {
		var pt [8]float32
		require.NoError(t, CloudAt(ri, i, unsafe.Pointer(&pt)))
		if math.IsInf(float64(pt[4]), 0) {
			continue
		}
		valid++
		assert.InDelta(t, 5, pt[4], 1e-3)
		norm := math.Sqrt(float64(pt[0]*pt[0] + pt[1]*pt[1] + pt[2]*pt[2]))
		assert.InDelta(t, 5, norm, 1e-3)
	}
	assert.GreaterOrEqual(t, valid, 21)
}

func TestRangeImageEmpty(t *testing.T) {
	src := newTestCloud(t, "pcl::PointXYZ", true)
	pushXYZ(t, src, testXYZ{X: float32(math.NaN())})

	ri := newTestRangeImage(t)
	require.NoError(t, RangeImageCreate(ri, src, rangeParams()))
	w, h, _ := CloudDims(ri)
	assert.Equal(t, [2]uint32{0, 0}, [2]uint32{w, h})

	p := rangeParams()
	p.AngularResolutionX = 0
	assert.Equal(t, CodeRange, code(RangeImageCreate(ri, src, p)))
}

func TestRangeImageRejectsBadParams(t *testing.T) {
	src := newTestCloud(t, "pcl::PointXYZ", true)
	pushXYZ(t, src, testXYZ{Z: 5}, testXYZ{X: 1, Z: 5})

	nan := float32(math.NaN())
	inf := float32(math.Inf(1))
	tests := []struct {
		name  string
		tweak func(*RangeImageParams)
	}{
		{"nan resolution", func(p *RangeImageParams) { p.AngularResolutionY = nan }},
		{"infinite resolution", func(p *RangeImageParams) { p.AngularResolutionX = inf }},
		{"negative resolution", func(p *RangeImageParams) { p.AngularResolutionX = -0.01 }},
		{"tiny resolution", func(p *RangeImageParams) { p.AngularResolutionX = 1e-30 }},
		{"nan width", func(p *RangeImageParams) { p.MaxAngleWidth = nan }},
		{"negative height", func(p *RangeImageParams) { p.MaxAngleHeight = -1 }},
		{"negative border", func(p *RangeImageParams) { p.BorderSize = -50 }},
		{"huge border", func(p *RangeImageParams) { p.BorderSize = math.MaxInt32 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ri := newTestRangeImage(t)
			p := rangeParams()
			tt.tweak(&p)
			assert.Equal(t, CodeRange, code(RangeImageCreate(ri, src, p)))
		})
	}
}

func TestMiscObjects(t *testing.T) {
	c, err := Construct(CtorKey{Kind: KindCorrespondence, Arity: 3}, []Arg{IntArg(4), IntArg(7), FloatArg(0.5)}, false)
	require.NoError(t, err)
	defer Free(c)
	v, err := CorrespondenceGet(c)
	require.NoError(t, err)
	assert.Equal(t, Correspondence{IndexQuery: 4, IndexMatch: 7, Distance: 0.5}, v)

	list, err := Construct(CtorKey{Kind: KindCorrespondences}, nil, true)
	require.NoError(t, err)
	defer Free(list)
	require.NoError(t, CorrespondencesAppend(list, v))
	got, err := CorrespondencesAt(list, 0)
	require.NoError(t, err)
	assert.Equal(t, v, got)
	_, err = CorrespondencesAt(list, 1)
	assert.Equal(t, CodeRange, code(err))

	idx, err := Construct(CtorKey{Kind: KindPointIndices}, nil, true)
	require.NoError(t, err)
	defer Free(idx)
	require.NoError(t, PointIndicesAppend(idx, 3, 1, 4))
	ids, _ := PointIndicesGet(idx)
	assert.Equal(t, []int32{3, 1, 4}, ids)

	mc, err := Construct(CtorKey{Kind: KindModelCoefficients}, nil, true)
	require.NoError(t, err)
	defer Free(mc)
	require.NoError(t, ModelCoefficientsSet(mc, []float32{0, 0, 1, -2}))
	vals, _ := ModelCoefficientsGet(mc)
	assert.Equal(t, []float32{0, 0, 1, -2}, vals)

	_, err = CorrespondenceGet(idx)
	assert.Equal(t, CodeType, code(err))
}
