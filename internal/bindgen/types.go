package bindgen

import (
	"fmt"
	"slices"
)

// kinds are the backend object families a catalog class can construct.
var kinds = []string{
	"correspondence",
	"correspondences",
	"model_coefficients",
	"point_cloud",
	"point_indices",
	"range_image",
}

// KnownKind reports whether name is a backend object kind.
func KnownKind(name string) bool { return slices.Contains(kinds, name) }

// Kinds returns the backend object kinds in sorted order.
func Kinds() []string { return slices.Clone(kinds) }

// NativeType maps a native constructor parameter type onto the Go parameter
// type and the backend argument slot that carries it across the C ABI.
type NativeType struct {
	Native string
	Go     string
	// Float selects the floating slot of backend.Arg instead of the integer one.
	Float bool
}

var nativeTypes = map[string]NativeType{
	"int":           {Native: "int", Go: "int"},
	"unsigned":      {Native: "unsigned", Go: "uint32"},
	"std::uint32_t": {Native: "std::uint32_t", Go: "uint32"},
	"std::int32_t":  {Native: "std::int32_t", Go: "int32"},
	"std::int64_t":  {Native: "std::int64_t", Go: "int64"},
	"std::size_t":   {Native: "std::size_t", Go: "int"},
	"float":         {Native: "float", Go: "float32", Float: true},
	"double":        {Native: "double", Go: "float64", Float: true},
}

// LookupType returns the mapping for a native parameter type.
func LookupType(native string) (NativeType, bool) {
	t, ok := nativeTypes[native]
	return t, ok
}

// GoArg returns the Go expression that packs name into a backend.Arg.
func (t NativeType) GoArg(name string) string {
	if t.Float {
		return fmt.Sprintf("backend.FloatArg(float64(%s))", name)
	}
	return fmt.Sprintf("backend.IntArg(int64(%s))", name)
}

// CArg returns the C++ expression that unpacks argument i from the shim's
// argument array.
func (t NativeType) CArg(i int) string {
	slot := "i"
	if t.Float {
		slot = "f"
	}
	return fmt.Sprintf("static_cast<%s>(args[%d].%s)", t.Native, i, slot)
}
