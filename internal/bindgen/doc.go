// Package bindgen describes the native classes pcl-go wraps and renders the
// code that binds them.
//
// # Catalog
//
// A catalog (pkg/pcl/catalog.yaml) lists each class with its native name,
// template parameters written as {P} placeholders, the concrete instantiations
// the C++ shim is compiled for, its constructor signatures and the backend
// kind of object it produces. Load rejects a catalog whose placeholders,
// instantiations, constructors or kinds do not line up, so these mistakes
// stop generation instead of surfacing at run time.
//
// # Outputs
//
// cmd/pclgen renders three files from one catalog:
//
//  1. The Go wrapper families: a shared and a value wrapper per class plus
//     the preferred alias and the constructors.
//  2. The C++ constructor shim used by the cgo backend.
//  3. The Go table mapping constructor symbols to shim entries.
//
// # Runtime use
//
// The generated wrappers keep a *Class per catalog entry. At run time only
// Symbol and NativeName are called; they substitute template arguments by
// position and never re-run validation.
package bindgen
