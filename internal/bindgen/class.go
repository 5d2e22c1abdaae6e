package bindgen

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Generation-time failures. Load and Validate wrap them with the offending
// class so errors.Is still matches.
var (
	ErrMissingPlaceholder = errors.New("bindgen: missing template placeholder")
	ErrArity              = errors.New("bindgen: arity mismatch")
	ErrMalformed          = errors.New("bindgen: malformed class descriptor")
)

// Ownership selects which wrapper a class exports under its bare name.
type Ownership string

const (
	PreferShared Ownership = "shared"
	PreferValue  Ownership = "value"
)

// TemplateParam is one template parameter of a wrapped class. Constraint names
// the Go constraint used for the type parameter in the generated wrapper.
type TemplateParam struct {
	Name       string `yaml:"name"`
	Constraint string `yaml:"constraint"`
}

// Param is one native constructor parameter.
type Param struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Signature is one native constructor. Suffix is appended to the generated Go
// constructor name so overloads stay distinct.
type Signature struct {
	Suffix string  `yaml:"suffix"`
	Params []Param `yaml:"params"`
}

// Class describes a native class template to wrap.
type Class struct {
	Name        string          `yaml:"name"`
	Native      string          `yaml:"native"`
	Kind        string          `yaml:"kind"`
	Params      []TemplateParam `yaml:"params"`
	Instantiate [][]string      `yaml:"instantiate"`
	Ctors       []Signature     `yaml:"ctors"`
	Prefer      Ownership       `yaml:"prefer"`
	Ops         []string        `yaml:"ops"`
	Doc         string          `yaml:"doc"`
}

var placeholderRE = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Templated reports whether the class takes template parameters.
func (c *Class) Templated() bool { return len(c.Params) > 0 }

// Preferred returns the effective preferred ownership.
func (c *Class) Preferred() Ownership {
	if c.Prefer == "" {
		return PreferShared
	}
	return c.Prefer
}

// Validate checks the descriptor. Every declared template parameter must occur
// in Native, every placeholder must be declared, and every instantiation must
// supply exactly one argument per parameter.
func (c *Class) Validate() error {
	if c.Name == "" || c.Native == "" {
		return fmt.Errorf("%w: class needs both name and native", ErrMalformed)
	}
	if c.Kind == "" {
		return fmt.Errorf("%w: %s: kind is required", ErrMalformed, c.Name)
	}
	if !KnownKind(c.Kind) {
		return fmt.Errorf("%w: %s: unknown kind %q, want one of %v", ErrMalformed, c.Name, c.Kind, kinds)
	}
	switch c.Prefer {
	case "", PreferShared, PreferValue:
	default:
		return fmt.Errorf("%w: %s: prefer must be %q or %q, got %q", ErrMalformed, c.Name, PreferShared, PreferValue, c.Prefer)
	}

	declared := make(map[string]bool, len(c.Params))
	for _, p := range c.Params {
		if p.Name == "" {
			return fmt.Errorf("%w: %s: unnamed template parameter", ErrMalformed, c.Name)
		}
		if declared[p.Name] {
			return fmt.Errorf("%w: %s: template parameter %s declared twice", ErrMalformed, c.Name, p.Name)
		}
		declared[p.Name] = true
	}

	used := make(map[string]bool)
	for _, m := range placeholderRE.FindAllStringSubmatch(c.Native, -1) {
		if !declared[m[1]] {
			return fmt.Errorf("%w: %s: placeholder {%s} has no template parameter", ErrMissingPlaceholder, c.Name, m[1])
		}
		used[m[1]] = true
	}
	for _, p := range c.Params {
		if !used[p.Name] {
			return fmt.Errorf("%w: %s: template parameter %s never appears in %q", ErrMissingPlaceholder, c.Name, p.Name, c.Native)
		}
	}

	if c.Templated() && len(c.Instantiate) == 0 {
		return fmt.Errorf("%w: %s: templated class has no instantiations", ErrMalformed, c.Name)
	}
	for i, args := range c.Instantiate {
		if len(args) != len(c.Params) {
			return fmt.Errorf("%w: %s: instantiation %d has %d template arguments, want %d", ErrArity, c.Name, i, len(args), len(c.Params))
		}
	}

	if len(c.Ctors) == 0 {
		return fmt.Errorf("%w: %s: no constructors declared", ErrMalformed, c.Name)
	}
	seen := make(map[string]bool, len(c.Ctors))
	suffixes := make(map[string]bool, len(c.Ctors))
	for _, sig := range c.Ctors {
		key := sig.typeList()
		if seen[key] {
			return fmt.Errorf("%w: %s: duplicate constructor (%s)", ErrMalformed, c.Name, key)
		}
		seen[key] = true
		if suffixes[sig.Suffix] {
			return fmt.Errorf("%w: %s: duplicate constructor suffix %q", ErrMalformed, c.Name, sig.Suffix)
		}
		suffixes[sig.Suffix] = true
		for _, p := range sig.Params {
			if p.Name == "" {
				return fmt.Errorf("%w: %s: unnamed constructor parameter", ErrMalformed, c.Name)
			}
			if _, ok := LookupType(p.Type); !ok {
				return fmt.Errorf("%w: %s: unsupported parameter type %q", ErrMalformed, c.Name, p.Type)
			}
		}
	}
	return nil
}

// NativeName substitutes template arguments into Native by position.
func (c *Class) NativeName(targs ...string) (string, error) {
	if len(targs) != len(c.Params) {
		return "", fmt.Errorf("%w: %s takes %d template arguments, got %d", ErrArity, c.Name, len(c.Params), len(targs))
	}
	byName := make(map[string]string, len(targs))
	for i, p := range c.Params {
		byName[p.Name] = targs[i]
	}
	var missing string
	out := placeholderRE.ReplaceAllStringFunc(c.Native, func(m string) string {
		name := m[1 : len(m)-1]
		v, ok := byName[name]
		if !ok {
			missing = name
			return m
		}
		return v
	})
	if missing != "" {
		return "", fmt.Errorf("%w: %s: {%s}", ErrMissingPlaceholder, c.Name, missing)
	}
	return out, nil
}

// Symbol returns the native constructor signature for ctor, e.g.
// "pcl::PointCloud<pcl::PointXYZ>(std::uint32_t,std::uint32_t)". Backends
// key their constructor tables on it.
func (c *Class) Symbol(ctor int, targs ...string) (string, error) {
	if ctor < 0 || ctor >= len(c.Ctors) {
		return "", fmt.Errorf("%w: %s has no constructor %d", ErrArity, c.Name, ctor)
	}
	name, err := c.NativeName(targs...)
	if err != nil {
		return "", err
	}
	return name + "(" + c.Ctors[ctor].typeList() + ")", nil
}

// Expr builds the native constructor invocation for ctor. Argument
// expressions are placed in declared order; their count must match exactly.
func (c *Class) Expr(ctor int, targs []string, args []string) (string, error) {
	if ctor < 0 || ctor >= len(c.Ctors) {
		return "", fmt.Errorf("%w: %s has no constructor %d", ErrArity, c.Name, ctor)
	}
	sig := c.Ctors[ctor]
	if len(args) != len(sig.Params) {
		return "", fmt.Errorf("%w: %s constructor (%s) takes %d arguments, got %d", ErrArity, c.Name, sig.typeList(), len(sig.Params), len(args))
	}
	name, err := c.NativeName(targs...)
	if err != nil {
		return "", err
	}
	return name + "(" + strings.Join(args, ", ") + ")", nil
}

func (s Signature) typeList() string {
	types := make([]string, len(s.Params))
	for i, p := range s.Params {
		types[i] = p.Type
	}
	return strings.Join(types, ",")
}
