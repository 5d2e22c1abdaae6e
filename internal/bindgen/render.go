package bindgen

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"
)

// Import paths baked into generated Go.
const (
	bindgenImport = "github.com/pclgo/pcl-go/internal/bindgen"
	backendImport = "github.com/pclgo/pcl-go/pkg/pcl/internal/backend"
)

type goCtor struct {
	Index   int
	Native  string
	PtrName string
	ValName string
	Params  string
	Args    string
	SigLit  string
}

type goOps struct {
	Field string
	Type  string
}

type goClass struct {
	*Class
	Var         string
	TDecl       string
	TUse        string
	TArgs       string
	ParamsLit   string
	DocNative   string
	PreferValue bool
	Ops         []goOps
	Ctors       []goCtor
}

var goTemplate = template.Must(template.New("go").Parse(`// Code generated by pclgen from {{.Source}}. DO NOT EDIT.

package {{.Package}}

import (
	"{{.BindgenImport}}"
	"{{.BackendImport}}"
)
{{range .Classes}}{{$c := .}}
// {{.Var}} describes {{.DocNative}}.
var {{.Var}} = &bindgen.Class{
	Name:   "{{.Name}}",
	Native: "{{.Native}}",
	Kind:   "{{.Kind}}",
{{- if .ParamsLit}}
	Params: []bindgen.TemplateParam{ {{.ParamsLit}} },
{{- end}}
	Ctors: []bindgen.Signature{
{{- range .Ctors}}
		{ {{.SigLit}} },
{{- end}}
	},
}

// {{.Name}}Ptr holds {{.DocNative}} through a shared owner.{{if .Doc}}
// {{.Doc}}{{end}}
type {{.Name}}Ptr{{.TDecl}} struct {
	Shared
{{- range .Ops}}
	{{.Type}}
{{- end}}
}

// {{.Name}}Val holds {{.DocNative}} by value.
type {{.Name}}Val{{.TDecl}} struct {
	Value
{{- range .Ops}}
	{{.Type}}
{{- end}}
}

// {{.Name}} is the preferred wrapper for {{.DocNative}}.
type {{.Name}}{{.TDecl}} = {{.Name}}{{if .PreferValue}}Val{{else}}Ptr{{end}}{{.TUse}}

func wrap{{.Name}}Ptr{{.TDecl}}(r *ref) *{{.Name}}Ptr{{.TUse}} {
	return &{{.Name}}Ptr{{.TUse}}{Shared: Shared{r}{{range .Ops}}, {{.Field}}: {{.Type}}{r}{{end}}}
}

func wrap{{.Name}}Val{{.TDecl}}(r *ref) *{{.Name}}Val{{.TUse}} {
	return &{{.Name}}Val{{.TUse}}{Value: Value{r}{{range .Ops}}, {{.Field}}: {{.Type}}{r}{{end}}}
}
{{range .Ctors}}
// {{.PtrName}} constructs {{.Native}} behind a new shared owner.
func {{.PtrName}}{{$c.TDecl}}({{.Params}}) (*{{$c.Name}}Ptr{{$c.TUse}}, error) {
	r, err := construct({{$c.Var}}, {{.Index}}, {{$c.TArgs}}, {{.Args}}, true)
	if err != nil {
		return nil, err
	}
	return wrap{{$c.Name}}Ptr{{$c.TUse}}(r), nil
}

// {{.ValName}} constructs {{.Native}} into value storage.
func {{.ValName}}{{$c.TDecl}}({{.Params}}) (*{{$c.Name}}Val{{$c.TUse}}, error) {
	r, err := construct({{$c.Var}}, {{.Index}}, {{$c.TArgs}}, {{.Args}}, false)
	if err != nil {
		return nil, err
	}
	return wrap{{$c.Name}}Val{{$c.TUse}}(r), nil
}
{{end}}
// Alias returns another shared owner of the same native object.
func (w *{{.Name}}Ptr{{.TUse}}) Alias() (*{{.Name}}Ptr{{.TUse}}, error) {
	r, err := w.share()
	if err != nil {
		return nil, err
	}
	return wrap{{.Name}}Ptr{{.TUse}}(r), nil
}

// Clone copies the native object into a new shared owner.
func (w *{{.Name}}Ptr{{.TUse}}) Clone() (*{{.Name}}Ptr{{.TUse}}, error) {
	r, err := w.Shared.r.clone(true)
	if err != nil {
		return nil, err
	}
	return wrap{{.Name}}Ptr{{.TUse}}(r), nil
}

// Clone copies the native object into new value storage.
func (w *{{.Name}}Val{{.TUse}}) Clone() (*{{.Name}}Val{{.TUse}}, error) {
	r, err := w.Value.r.clone(false)
	if err != nil {
		return nil, err
	}
	return wrap{{.Name}}Val{{.TUse}}(r), nil
}

// Move transfers the storage to a new wrapper; w is released.
func (w *{{.Name}}Val{{.TUse}}) Move() (*{{.Name}}Val{{.TUse}}, error) {
	r, err := w.move()
	if err != nil {
		return nil, err
	}
	return wrap{{.Name}}Val{{.TUse}}(r), nil
}
{{end}}`))

// RenderGo emits the Go wrapper types for every class in the catalog. source
// names the catalog file in the generated header.
func RenderGo(cat *Catalog, source string) ([]byte, error) {
	classes := make([]goClass, 0, len(cat.Classes))
	for i := range cat.Classes {
		gc, err := newGoClass(&cat.Classes[i])
		if err != nil {
			return nil, err
		}
		classes = append(classes, gc)
	}

	var buf bytes.Buffer
	err := goTemplate.Execute(&buf, map[string]any{
		"Source":        source,
		"Package":       cat.Package,
		"BindgenImport": bindgenImport,
		"BackendImport": backendImport,
		"Classes":       classes,
	})
	if err != nil {
		return nil, fmt.Errorf("bindgen: render go: %w", err)
	}
	out, err := imports.Process("zz_generated_classes.go", buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: false,
	})
	if err != nil {
		return nil, fmt.Errorf("bindgen: format go: %w", err)
	}
	return out, nil
}

func newGoClass(c *Class) (goClass, error) {
	gc := goClass{
		Class:       c,
		Var:         lowerFirst(c.Name) + "Class",
		DocNative:   placeholderRE.ReplaceAllString(c.Native, "$1"),
		TArgs:       "nil",
		PreferValue: c.Preferred() == PreferValue,
	}

	if c.Templated() {
		decl := make([]string, len(c.Params))
		use := make([]string, len(c.Params))
		targs := make([]string, len(c.Params))
		lits := make([]string, len(c.Params))
		for i, p := range c.Params {
			constraint := p.Constraint
			if constraint == "" {
				constraint = "any"
			}
			decl[i] = p.Name + " " + constraint
			use[i] = p.Name
			targs[i] = "templateArg[" + p.Name + "]()"
			lits[i] = fmt.Sprintf("{Name: %q, Constraint: %q}", p.Name, p.Constraint)
		}
		gc.TDecl = "[" + strings.Join(decl, ", ") + "]"
		gc.TUse = "[" + strings.Join(use, ", ") + "]"
		gc.TArgs = "[]string{" + strings.Join(targs, ", ") + "}"
		gc.ParamsLit = strings.Join(lits, ", ")
	}

	for _, op := range c.Ops {
		field := op
		if i := strings.IndexByte(op, '['); i >= 0 {
			field = op[:i]
		}
		gc.Ops = append(gc.Ops, goOps{Field: field, Type: op})
	}

	for i, sig := range c.Ctors {
		params := make([]string, len(sig.Params))
		args := make([]string, len(sig.Params))
		plits := make([]string, len(sig.Params))
		for j, p := range sig.Params {
			t, ok := LookupType(p.Type)
			if !ok {
				return goClass{}, fmt.Errorf("%w: %s: unsupported parameter type %q", ErrMalformed, c.Name, p.Type)
			}
			params[j] = p.Name + " " + t.Go
			args[j] = t.GoArg(p.Name)
			plits[j] = fmt.Sprintf("{Name: %q, Type: %q}", p.Name, p.Type)
		}

		ctor := goCtor{
			Index:   i,
			Native:  placeholderRE.ReplaceAllString(c.Native, "$1") + "(" + sig.typeList() + ")",
			PtrName: "New" + c.Name + sig.Suffix,
			ValName: "New" + c.Name + "Val" + sig.Suffix,
			Params:  strings.Join(params, ", "),
			Args:    "nil",
		}
		if gc.PreferValue {
			ctor.PtrName = "New" + c.Name + "Ptr" + sig.Suffix
			ctor.ValName = "New" + c.Name + sig.Suffix
		}
		if len(args) > 0 {
			ctor.Args = "[]backend.Arg{" + strings.Join(args, ", ") + "}"
		}

		var lit []string
		if sig.Suffix != "" {
			lit = append(lit, fmt.Sprintf("Suffix: %q", sig.Suffix))
		}
		if len(plits) > 0 {
			lit = append(lit, "Params: []bindgen.Param{"+strings.Join(plits, ", ")+"}")
		}
		ctor.SigLit = strings.Join(lit, ", ")
		gc.Ctors = append(gc.Ctors, ctor)
	}
	return gc, nil
}

var cxxTemplate = template.Must(template.New("cxx").Parse(`//go:build cgo && pcl

// Code generated by pclgen from {{.Source}}. DO NOT EDIT.

#include "capi_internal.hpp"

namespace gopcl {

int construct(int ctor, const gopcl_arg* args, int nargs, int shared, int kind, int point, gopcl_object** out) {
  (void)args;
  switch (ctor) {
{{- range .Ctors}}
  case {{.ID}}: // {{.Symbol}}
    if (nargs != {{.Arity}}) return GOPCL_E_ARITY;
    return adopt(new {{.Expr}}, shared, kind, point, out);
{{- end}}
  default:
    return GOPCL_E_UNKNOWN_CTOR;
  }
}

}  // namespace gopcl
`))

// RenderCXX emits the C++ constructor shim: one switch case per concrete
// constructor, each allocating the object with the synthesized invocation.
func RenderCXX(cat *Catalog, source string) ([]byte, error) {
	ctors, err := cat.Ctors()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := cxxTemplate.Execute(&buf, map[string]any{"Source": source, "Ctors": ctors}); err != nil {
		return nil, fmt.Errorf("bindgen: render c++: %w", err)
	}
	return buf.Bytes(), nil
}

var tableTemplate = template.Must(template.New("table").Parse(`//go:build cgo && pcl

// Code generated by pclgen from {{.Source}}. DO NOT EDIT.

package backend

// ctorSymbols lists native constructor symbols by gopcl_construct case label.
var ctorSymbols = [...]string{
{{- range .Ctors}}
	{{printf "%q" .Symbol}},
{{- end}}
}
`))

// RenderTable emits the Go side of the constructor shim: the symbol list whose
// indices match the case labels produced by RenderCXX.
func RenderTable(cat *Catalog, source string) ([]byte, error) {
	ctors, err := cat.Ctors()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := tableTemplate.Execute(&buf, map[string]any{"Source": source, "Ctors": ctors}); err != nil {
		return nil, fmt.Errorf("bindgen: render table: %w", err)
	}
	out, err := imports.Process("zz_generated_ctors.go", buf.Bytes(), &imports.Options{Comments: true, TabIndent: true, TabWidth: 8})
	if err != nil {
		return nil, fmt.Errorf("bindgen: format table: %w", err)
	}
	return out, nil
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
