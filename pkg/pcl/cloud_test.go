package pcl_test

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pclgo/pcl-go/pkg/pcl"
)

func newCloud(t *testing.T, pts ...pcl.PointXYZ) *pcl.PointCloud[pcl.PointXYZ] {
	t.Helper()
	c, err := pcl.NewPointCloud[pcl.PointXYZ]()
	require.NoError(t, err)
	t.Cleanup(c.Release)
	for _, p := range pts {
		require.NoError(t, c.Push(p))
	}
	return c
}

func length(t *testing.T, c interface{ Len() (int, error) }) int {
	t.Helper()
	n, err := c.Len()
	require.NoError(t, err)
	return n
}

func TestNewPointCloudOwnCount(t *testing.T) {
	c := newCloud(t)
	n, err := c.OwnCount()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "pcl::PointCloud<pcl::PointXYZ>", c.NativeName())
	assert.Zero(t, length(t, c))
}

func TestAliasSharesObject(t *testing.T) {
	c := newCloud(t)
	a, err := c.Alias()
	require.NoError(t, err)

	n, _ := c.OwnCount()
	assert.Equal(t, 2, n)
	m, _ := a.OwnCount()
	assert.Equal(t, 2, m)

	pc, err := c.Pointer()
	require.NoError(t, err)
	pa, err := a.Pointer()
	require.NoError(t, err)
	assert.Equal(t, pc, pa)

	require.NoError(t, a.Push(pcl.PointXYZ{X: 1}))
	assert.Equal(t, 1, length(t, c), "push through an alias must be visible")

	a.Release()
	a.Release()
	assert.True(t, a.Released())
	n, _ = c.OwnCount()
	assert.Equal(t, 1, n)
	_, err = a.OwnCount()
	assert.ErrorIs(t, err, pcl.ErrReleased)
	_, err = a.Pointer()
	assert.ErrorIs(t, err, pcl.ErrReleased)
}

func TestCloneIsIndependent(t *testing.T) {
	c := newCloud(t, pcl.PointXYZ{X: 1})
	d, err := c.Clone()
	require.NoError(t, err)
	defer d.Release()

	pc, _ := c.Pointer()
	pd, _ := d.Pointer()
	assert.NotEqual(t, pc, pd)
	n, _ := d.OwnCount()
	assert.Equal(t, 1, n)

	require.NoError(t, d.Push(pcl.PointXYZ{X: 2}))
	require.NoError(t, d.Set(0, pcl.PointXYZ{X: 9}))
	assert.Equal(t, 1, length(t, c))
	p, err := c.At(0)
	require.NoError(t, err)
	assert.Equal(t, pcl.PointXYZ{X: 1}, p)

	require.NoError(t, c.Set(0, pcl.PointXYZ{Y: 5}))
	require.NoError(t, c.Push(pcl.PointXYZ{Z: 6}))
	require.NoError(t, c.Push(pcl.PointXYZ{Z: 7}))
	assert.Equal(t, 2, length(t, d))
	got, err := d.Points()
	require.NoError(t, err)
	if diff := cmp.Diff([]pcl.PointXYZ{{X: 9}, {X: 2}}, got); diff != "" {
		t.Fatalf("clone changed with its source (-want +got):\n%s", diff)
	}
}

func TestResizeTooLarge(t *testing.T) {
	c := newCloud(t, pcl.PointXYZ{X: 1})
	assert.ErrorIs(t, c.Resize(math.MaxInt/8), pcl.ErrIndexOutOfRange)
	assert.Equal(t, 1, length(t, c))
}

func TestSizedCloud(t *testing.T) {
	c, err := pcl.NewPointCloudSized[pcl.PointXYZ](2, 3)
	require.NoError(t, err)
	defer c.Release()

	assert.Equal(t, 6, length(t, c))
	w, _ := c.Width()
	h, _ := c.Height()
	assert.Equal(t, uint32(2), w)
	assert.Equal(t, uint32(3), h)
	dense, _ := c.IsDense()
	assert.True(t, dense)
	organized, _ := c.IsOrganized()
	assert.True(t, organized)

	pts, err := c.Points()
	require.NoError(t, err)
	assert.Equal(t, make([]pcl.PointXYZ, 6), pts)
}

func TestPushMakesUnorganized(t *testing.T) {
	c := newCloud(t)
	require.NoError(t, c.Push(pcl.PointXYZ{X: 1, Y: 2, Z: 3}))
	assert.Equal(t, 1, length(t, c))
	w, _ := c.Width()
	h, _ := c.Height()
	assert.Equal(t, [2]uint32{1, 1}, [2]uint32{w, h})

	p, err := c.At(0)
	require.NoError(t, err)
	assert.Equal(t, pcl.PointXYZ{X: 1, Y: 2, Z: 3}, p)

	_, err = c.At(1)
	assert.ErrorIs(t, err, pcl.ErrIndexOutOfRange)
	var ne *pcl.NativeError
	assert.ErrorAs(t, err, &ne)
	assert.ErrorIs(t, c.Set(-1, p), pcl.ErrIndexOutOfRange)
}

func TestResizeAndClear(t *testing.T) {
	c, err := pcl.NewPointCloudSized[pcl.PointXYZI](4, 2)
	require.NoError(t, err)
	defer c.Release()

	require.NoError(t, c.Resize(8))
	h, _ := c.Height()
	assert.Equal(t, uint32(2), h)

	require.NoError(t, c.Resize(3))
	w, _ := c.Width()
	h, _ = c.Height()
	assert.Equal(t, [2]uint32{3, 1}, [2]uint32{w, h})
	organized, _ := c.IsOrganized()
	assert.False(t, organized)

	require.NoError(t, c.SetIsDense(false))
	dense, _ := c.IsDense()
	assert.False(t, dense)

	require.NoError(t, c.Clear())
	assert.Zero(t, length(t, c))
}

func TestValueHandle(t *testing.T) {
	v, err := pcl.NewPointCloudVal[pcl.PointXYZ]()
	require.NoError(t, err)
	require.NoError(t, v.Push(pcl.PointXYZ{Z: 1}))

	m, err := v.Move()
	require.NoError(t, err)
	defer m.Free()
	assert.True(t, v.Released())
	_, err = v.Len()
	assert.ErrorIs(t, err, pcl.ErrReleased)
	_, err = v.Move()
	assert.ErrorIs(t, err, pcl.ErrReleased)
	assert.Equal(t, 1, length(t, m))

	cl, err := m.Clone()
	require.NoError(t, err)
	require.NoError(t, cl.Push(pcl.PointXYZ{}))
	assert.Equal(t, 1, length(t, m))
	assert.Equal(t, 2, length(t, cl))

	cl.Free()
	cl.Free()
	_, err = cl.Pointer()
	assert.ErrorIs(t, err, pcl.ErrReleased)
}

func TestReleasedHandleFailsEverywhere(t *testing.T) {
	c, err := pcl.NewPointCloud[pcl.PointXYZ]()
	require.NoError(t, err)
	other := newCloud(t, pcl.PointXYZ{})
	c.Release()

	var centroid [4]float32
	checks := map[string]error{
		"Len": func() error {
			_, err := c.Len()
			return err
		}(),
		"Push": c.Push(pcl.PointXYZ{}),
		"Alias": func() error {
			_, err := c.Alias()
			return err
		}(),
		"Clone": func() error {
			_, err := c.Clone()
			return err
		}(),
		"ComputeCentroid": func() error {
			_, err := pcl.ComputeCentroid[pcl.PointXYZ](c, &centroid)
			return err
		}(),
		"RemoveNaN": func() error {
			_, err := pcl.RemoveNaN[pcl.PointXYZ](other, c)
			return err
		}(),
		"Transform": pcl.TransformPointCloud[pcl.PointXYZ](c, other, pcl.Identity()),
		"SavePCD":   pcl.SavePCD[pcl.PointXYZ](t.TempDir()+"/x.pcd", c, pcl.PCDBinary),
	}
	for name, err := range checks {
		assert.ErrorIs(t, err, pcl.ErrReleased, name)
	}
}

func TestRemoveNaN(t *testing.T) {
	nan := float32(math.NaN())
	pts := []pcl.PointXYZ{{X: 0}, {X: nan}, {X: 2}, {Y: float32(math.Inf(-1))}, {X: 4}}
	c := newCloud(t, pts...)
	require.NoError(t, c.SetIsDense(false))

	idx, err := pcl.RemoveNaNIndices[pcl.PointXYZ](c)
	require.NoError(t, err)
	if diff := cmp.Diff([]int{0, 2, 4}, idx); diff != "" {
		t.Fatalf("indices (-want +got):\n%s", diff)
	}
	assert.Equal(t, len(pts), length(t, c))

	out := newCloud(t)
	idx, err = pcl.RemoveNaN[pcl.PointXYZ](c, out)
	require.NoError(t, err)
	assert.Len(t, idx, 3)
	assert.Equal(t, 3, length(t, out))
	dense, _ := out.IsDense()
	assert.True(t, dense)
	got, _ := out.Points()
	assert.Equal(t, []pcl.PointXYZ{{X: 0}, {X: 2}, {X: 4}}, got)

	_, err = pcl.RemoveNaN[pcl.PointXYZ](c, c)
	require.NoError(t, err)
	assert.Equal(t, 3, length(t, c))
	h, _ := c.Height()
	assert.Equal(t, uint32(1), h)
}

func TestConvertPointCloudRoundTrip(t *testing.T) {
	src := newCloud(t, pcl.PointXYZ{X: 1, Y: 2, Z: 3}, pcl.PointXYZ{X: -1, Y: -2, Z: -3})
	want, err := src.Points()
	require.NoError(t, err)

	colored, err := pcl.ConvertPointCloud[pcl.PointXYZRGB, pcl.PointXYZ](src)
	require.NoError(t, err)
	defer colored.Release()
	p, err := colored.At(1)
	require.NoError(t, err)
	assert.Equal(t, pcl.PointXYZRGB{X: -1, Y: -2, Z: -3}, p)

	back, err := pcl.ConvertPointCloud[pcl.PointXYZ, pcl.PointXYZRGB](colored)
	require.NoError(t, err)
	defer back.Release()
	got, err := back.Points()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	rgb, err := pcl.NewPointCloud[pcl.PointXYZRGB]()
	require.NoError(t, err)
	defer rgb.Release()
	require.NoError(t, rgb.Push(pcl.PointXYZRGB{X: 1, R: 200, G: 100, B: 50, A: 255}))
	rgba, err := pcl.ConvertPointCloud[pcl.PointXYZRGBA, pcl.PointXYZRGB](rgb)
	require.NoError(t, err)
	defer rgba.Release()
	q, err := rgba.At(0)
	require.NoError(t, err)
	assert.Equal(t, pcl.PointXYZRGBA{X: 1, R: 200, G: 100, B: 50, A: 255}, q)

	normals, err := pcl.ConvertPointCloud[pcl.Normal, pcl.PointXYZ](src)
	require.NoError(t, err)
	defer normals.Release()
	n, err := normals.At(0)
	require.NoError(t, err)
	assert.Equal(t, pcl.Normal{}, n)
}

func TestTransformPointCloud(t *testing.T) {
	c := newCloud(t, pcl.PointXYZ{X: 1}, pcl.PointXYZ{Y: 1})
	out := newCloud(t)

	require.NoError(t, pcl.TransformPointCloud[pcl.PointXYZ](c, out, pcl.Translation(0, 0, 5)))
	got, _ := out.Points()
	assert.Equal(t, []pcl.PointXYZ{{X: 1, Z: 5}, {Y: 1, Z: 5}}, got)
	orig, _ := c.Points()
	assert.Equal(t, []pcl.PointXYZ{{X: 1}, {Y: 1}}, orig)

	require.NoError(t, pcl.TransformPointCloud[pcl.PointXYZ](c, c, pcl.Translation(1, 1, 1)))
	p, _ := c.At(0)
	assert.Equal(t, pcl.PointXYZ{X: 2, Y: 1, Z: 1}, p)

	pn, err := pcl.NewPointCloud[pcl.PointNormal]()
	require.NoError(t, err)
	defer pn.Release()
	require.NoError(t, pn.Push(pcl.PointNormal{X: 1, NormalX: 1}))
	require.NoError(t, pcl.TransformPointCloudWithNormals[pcl.PointNormal](pn, pn, pcl.RotationZ(math.Pi/2)))
	q, _ := pn.At(0)
	assert.InDelta(t, 0, q.X, 1e-6)
	assert.InDelta(t, 1, q.Y, 1e-6)
	assert.InDelta(t, 0, q.NormalX, 1e-6)
	assert.InDelta(t, 1, q.NormalY, 1e-6)

	err = pcl.TransformPointCloudWithNormals[pcl.PointXYZ](c, c, pcl.Identity())
	assert.ErrorIs(t, err, pcl.ErrTypeMismatch)
}

func TestComputeCentroid(t *testing.T) {
	c := newCloud(t, pcl.PointXYZ{X: 1, Y: 1, Z: 1}, pcl.PointXYZ{X: 3, Y: 5, Z: -1})
	var out [4]float32
	n, err := pcl.ComputeCentroid[pcl.PointXYZ](c, &out)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, [4]float32{2, 3, 0, 1}, out)

	require.NoError(t, c.Push(pcl.PointXYZ{X: float32(math.NaN())}))
	require.NoError(t, c.SetIsDense(false))
	n, err = pcl.ComputeCentroid[pcl.PointXYZ](c, &out)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	empty := newCloud(t)
	out = [4]float32{7, 7, 7, 7}
	_, err = pcl.ComputeCentroid[pcl.PointXYZ](empty, &out)
	assert.True(t, errors.Is(err, pcl.ErrNoValidPoints))
	assert.Equal(t, [4]float32{7, 7, 7, 7}, out)
}
