package bindgen

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog is the set of classes generated into one Go package.
type Catalog struct {
	Package string  `yaml:"package"`
	Classes []Class `yaml:"classes"`
}

// CtorEntry is one concrete native constructor: a class instantiation paired
// with one of its signatures. IDs are dense and stable for a given catalog.
type CtorEntry struct {
	ID           int
	Class        *Class
	Ctor         int
	TemplateArgs []string
	Arity        int
	Symbol       string
	// Expr is the native invocation with arguments unpacked from the shim's
	// argument array.
	Expr string
}

// LoadFile reads and validates a catalog from path.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bindgen: read catalog: %w", err)
	}
	return Load(bytes.NewReader(data))
}

// Load decodes and validates a catalog. Unknown keys are rejected.
func Load(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var cat Catalog
	if err := dec.Decode(&cat); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty catalog", ErrMalformed)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Validate checks every class and rejects duplicate names.
func (c *Catalog) Validate() error {
	if c.Package == "" {
		return fmt.Errorf("%w: catalog package is required", ErrMalformed)
	}
	if len(c.Classes) == 0 {
		return fmt.Errorf("%w: catalog declares no classes", ErrMalformed)
	}
	names := make(map[string]bool, len(c.Classes))
	for i := range c.Classes {
		cls := &c.Classes[i]
		if err := cls.Validate(); err != nil {
			return err
		}
		if names[cls.Name] {
			return fmt.Errorf("%w: class %s declared twice", ErrMalformed, cls.Name)
		}
		names[cls.Name] = true
	}
	return nil
}

// Class returns the named class, or nil.
func (c *Catalog) Class(name string) *Class {
	for i := range c.Classes {
		if c.Classes[i].Name == name {
			return &c.Classes[i]
		}
	}
	return nil
}

// Ctors expands every instantiation of every class into constructor entries.
func (c *Catalog) Ctors() ([]CtorEntry, error) {
	var out []CtorEntry
	for i := range c.Classes {
		cls := &c.Classes[i]
		insts := cls.Instantiate
		if !cls.Templated() {
			insts = [][]string{nil}
		}
		for _, targs := range insts {
			for ci, sig := range cls.Ctors {
				sym, err := cls.Symbol(ci, targs...)
				if err != nil {
					return nil, err
				}
				cargs := make([]string, len(sig.Params))
				for pi, p := range sig.Params {
					t, _ := LookupType(p.Type)
					cargs[pi] = t.CArg(pi)
				}
				expr, err := cls.Expr(ci, targs, cargs)
				if err != nil {
					return nil, err
				}
				out = append(out, CtorEntry{
					ID:           len(out),
					Class:        cls,
					Ctor:         ci,
					TemplateArgs: targs,
					Arity:        len(sig.Params),
					Symbol:       sym,
					Expr:         expr,
				})
			}
		}
	}
	return out, nil
}
