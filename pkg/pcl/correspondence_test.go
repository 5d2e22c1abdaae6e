package pcl_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pclgo/pcl-go/pkg/pcl"
)

func TestCorrespondence(t *testing.T) {
	c, err := pcl.NewCorrespondence()
	require.NoError(t, err)
	defer c.Free()

	q, _ := c.IndexQuery()
	m, _ := c.IndexMatch()
	d, _ := c.Distance()
	assert.Equal(t, 0, q)
	assert.Equal(t, -1, m)
	assert.Equal(t, float32(math.MaxFloat32), d)

	require.NoError(t, c.SetIndexQuery(3))
	require.NoError(t, c.SetIndexMatch(8))
	require.NoError(t, c.SetDistance(0.25))
	m, _ = c.IndexMatch()
	assert.Equal(t, 8, m)

	shared, err := pcl.NewCorrespondencePtrOf(1, 2, 0.5)
	require.NoError(t, err)
	defer shared.Release()
	n, _ := shared.OwnCount()
	assert.Equal(t, 1, n)
}

func TestCorrespondences(t *testing.T) {
	list, err := pcl.NewCorrespondences()
	require.NoError(t, err)
	defer list.Release()

	for i := range 3 {
		c, err := pcl.NewCorrespondenceOf(i, 10+i, float32(i)/2)
		require.NoError(t, err)
		require.NoError(t, list.Append(c))
		c.Free()
	}
	assert.Equal(t, 3, length(t, list))

	got, err := list.At(2)
	require.NoError(t, err)
	defer got.Free()
	q, _ := got.IndexQuery()
	m, _ := got.IndexMatch()
	d, _ := got.Distance()
	assert.Equal(t, [3]float32{2, 12, 1}, [3]float32{float32(q), float32(m), d})

	_, err = list.At(3)
	assert.ErrorIs(t, err, pcl.ErrIndexOutOfRange)

	released, err := pcl.NewCorrespondence()
	require.NoError(t, err)
	released.Free()
	assert.ErrorIs(t, list.Append(released), pcl.ErrReleased)
}

func TestPointIndices(t *testing.T) {
	idx, err := pcl.NewPointIndices()
	require.NoError(t, err)
	defer idx.Release()

	require.NoError(t, idx.Append(5, 2))
	require.NoError(t, idx.Append(9))
	got, err := idx.Indices()
	require.NoError(t, err)
	assert.Equal(t, []int32{5, 2, 9}, got)
	assert.Equal(t, 3, length(t, idx))

	cl, err := idx.Clone()
	require.NoError(t, err)
	defer cl.Release()
	require.NoError(t, cl.Append(1))
	assert.Equal(t, 3, length(t, idx))
}

func TestModelCoefficients(t *testing.T) {
	mc, err := pcl.NewModelCoefficientsVal()
	require.NoError(t, err)
	defer mc.Free()

	assert.Zero(t, length(t, mc))
	plane := []float32{0, 0, 1, -0.5}
	require.NoError(t, mc.SetValues(plane))
	plane[0] = 9
	got, err := mc.Values()
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0, 1, -0.5}, got)
}
