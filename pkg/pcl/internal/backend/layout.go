package backend

// PointType identifies one of the fixed native point layouts. Values match
// the GOPCL_POINT_* constants in capi.h.
type PointType int

const (
	PointUnknown PointType = iota
	PointXYZ
	PointXYZI
	PointXYZL
	PointXYZRGB
	PointXYZRGBA
	PointXY
	Normal
	PointNormal
	PointXYZRGBNormal
	PointXYZINormal
	PointWithRange
	InterestPoint
)

// Datatype values follow pcl::PCLPointField.
type Datatype uint8

const (
	Int8    Datatype = 1
	Uint8   Datatype = 2
	Int16   Datatype = 3
	Uint16  Datatype = 4
	Int32   Datatype = 5
	Uint32  Datatype = 6
	Float32 Datatype = 7
	Float64 Datatype = 8
)

// Size returns the byte width of one element.
func (d Datatype) Size() int {
	switch d {
	case Int8, Uint8:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Float64:
		return 8
	}
	return 0
}

// Field describes one named field inside a point layout.
type Field struct {
	Name     string
	Offset   int
	Datatype Datatype
	Count    int
}

// Layout is the in-memory shape of a native point struct, padding included.
type Layout struct {
	Type   PointType
	Native string
	Size   int
	Fields []Field
}

// Field returns the named field.
func (l *Layout) Field(name string) (Field, bool) {
	for _, f := range l.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// HasXYZ reports whether the layout carries x, y and z coordinates.
func (l *Layout) HasXYZ() bool {
	_, x := l.Field("x")
	_, y := l.Field("y")
	_, z := l.Field("z")
	return x && y && z
}

// HasNormals reports whether the layout carries normal_x, normal_y and normal_z.
func (l *Layout) HasNormals() bool {
	_, x := l.Field("normal_x")
	_, y := l.Field("normal_y")
	_, z := l.Field("normal_z")
	return x && y && z
}

func f32(name string, off int) Field { return Field{Name: name, Offset: off, Datatype: Float32, Count: 1} }

var xyz = []Field{f32("x", 0), f32("y", 4), f32("z", 8)}

func with(base []Field, extra ...Field) []Field {
	out := make([]Field, 0, len(base)+len(extra))
	out = append(out, base...)
	return append(out, extra...)
}

var normals = []Field{f32("normal_x", 16), f32("normal_y", 20), f32("normal_z", 24)}

var layouts = map[PointType]*Layout{
	PointXYZ:  {Type: PointXYZ, Native: "pcl::PointXYZ", Size: 16, Fields: xyz},
	PointXYZI: {Type: PointXYZI, Native: "pcl::PointXYZI", Size: 32, Fields: with(xyz, f32("intensity", 16))},
	PointXYZL: {Type: PointXYZL, Native: "pcl::PointXYZL", Size: 32, Fields: with(xyz,
		Field{Name: "label", Offset: 16, Datatype: Uint32, Count: 1})},
	PointXYZRGB: {Type: PointXYZRGB, Native: "pcl::PointXYZRGB", Size: 32, Fields: with(xyz, f32("rgb", 16))},
	PointXYZRGBA: {Type: PointXYZRGBA, Native: "pcl::PointXYZRGBA", Size: 32, Fields: with(xyz,
		Field{Name: "rgba", Offset: 16, Datatype: Uint32, Count: 1})},
	PointXY: {Type: PointXY, Native: "pcl::PointXY", Size: 8, Fields: []Field{f32("x", 0), f32("y", 4)}},
	Normal: {Type: Normal, Native: "pcl::Normal", Size: 32, Fields: []Field{
		f32("normal_x", 0), f32("normal_y", 4), f32("normal_z", 8), f32("curvature", 16)}},
	PointNormal: {Type: PointNormal, Native: "pcl::PointNormal", Size: 48,
		Fields: with(with(xyz, normals...), f32("curvature", 32))},
	PointXYZRGBNormal: {Type: PointXYZRGBNormal, Native: "pcl::PointXYZRGBNormal", Size: 48,
		Fields: with(with(xyz, normals...), f32("rgb", 32), f32("curvature", 36))},
	PointXYZINormal: {Type: PointXYZINormal, Native: "pcl::PointXYZINormal", Size: 48,
		Fields: with(with(xyz, normals...), f32("intensity", 32), f32("curvature", 36))},
	PointWithRange: {Type: PointWithRange, Native: "pcl::PointWithRange", Size: 32, Fields: with(xyz, f32("range", 16))},
	InterestPoint:  {Type: InterestPoint, Native: "pcl::InterestPoint", Size: 32, Fields: with(xyz, f32("strength", 16))},
}

// LayoutOf returns the layout for t, or nil.
func LayoutOf(t PointType) *Layout { return layouts[t] }

// PointTypeByNative resolves a native point type name such as "pcl::PointXYZ".
func PointTypeByNative(native string) (PointType, bool) {
	for t, l := range layouts {
		if l.Native == native {
			return t, true
		}
	}
	return PointUnknown, false
}
