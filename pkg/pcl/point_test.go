package pcl

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var goFieldOf = map[string]string{
	"x":         "X",
	"y":         "Y",
	"z":         "Z",
	"normal_x":  "NormalX",
	"normal_y":  "NormalY",
	"normal_z":  "NormalZ",
	"curvature": "Curvature",
	"intensity": "Intensity",
	"label":     "Label",
	"range":     "Range",
	"strength":  "Strength",
	"rgb":       "B",
	"rgba":      "B",
}

func checkLayout[P Point](t *testing.T) {
	t.Helper()
	typ := reflect.TypeFor[P]()
	t.Run(typ.Name(), func(t *testing.T) {
		size, fields := NativeLayout[P]()
		assert.Equal(t, size, int(typ.Size()), "struct size")
		require.NotEmpty(t, fields)
		for _, f := range fields {
			name, ok := goFieldOf[f.Name]
			require.True(t, ok, "no Go field for %s", f.Name)
			sf, ok := typ.FieldByName(name)
			require.True(t, ok, "%s has no field %s", typ.Name(), name)
			assert.Equal(t, f.Offset, int(sf.Offset), "offset of %s", f.Name)
		}
		assert.Equal(t, "pcl::"+typ.Name(), templateArg[P]())
	})
}

func TestPointLayoutsMatchNative(t *testing.T) {
	checkLayout[PointXYZ](t)
	checkLayout[PointXYZI](t)
	checkLayout[PointXYZL](t)
	checkLayout[PointXYZRGB](t)
	checkLayout[PointXYZRGBA](t)
	checkLayout[PointXY](t)
	checkLayout[Normal](t)
	checkLayout[PointNormal](t)
	checkLayout[PointXYZRGBNormal](t)
	checkLayout[PointXYZINormal](t)
	checkLayout[PointWithRange](t)
	checkLayout[InterestPoint](t)
}

func TestPackedColor(t *testing.T) {
	p := PointXYZRGB{R: 0x11, G: 0x22, B: 0x33, A: 0xff}
	assert.Equal(t, uint32(0xff112233), p.RGB())
	q := PointXYZRGBA{R: 1, G: 2, B: 3, A: 4}
	assert.Equal(t, uint32(0x04010203), q.RGBA())
}
