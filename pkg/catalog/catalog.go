package catalog

import "github.com/jling-NM/CACTI-sub000/pkg/types"

// Catalog is the registry of behavioral codes.
type Catalog struct {
	reg registry[types.Code]
}

// New returns an empty, unsealed Catalog.
func New() *Catalog {
	return &Catalog{
		reg: newRegistry(func(c types.Code) types.Code { return c }, types.InvalidCode),
	}
}

// AddCode registers code. Returns ErrConflict if its value or name is
// already taken and ErrSealed after Seal; the catalog is unchanged on error.
func (c *Catalog) AddCode(code types.Code) error {
	return c.reg.add(code)
}

// NumCodes returns the number of registered codes.
func (c *Catalog) NumCodes() int {
	return c.reg.len()
}

// CodeAtIndex returns the i-th code in registration order.
func (c *Catalog) CodeAtIndex(i int) (types.Code, error) {
	return c.reg.at(i)
}

// CodeWithValue looks a code up by value. The InvalidCode sentinel always
// resolves. Returns ErrCodeNotFound otherwise.
func (c *Catalog) CodeWithValue(v int) (types.Code, error) {
	return c.reg.withValue(v)
}

// CodeWithName looks a code up by name. The InvalidCode sentinel (empty
// name) always resolves. Returns ErrCodeNotFound otherwise.
func (c *Catalog) CodeWithName(name string) (types.Code, error) {
	return c.reg.withName(name)
}

// MustCodeWithValue is CodeWithValue for callers that treat a missing code
// as a programming error. It panics instead of returning an error.
func (c *Catalog) MustCodeWithValue(v int) types.Code {
	code, err := c.CodeWithValue(v)
	if err != nil {
		panic(err)
	}
	return code
}

// MustCodeWithName panics if name is not registered.
func (c *Catalog) MustCodeWithName(name string) types.Code {
	code, err := c.CodeWithName(name)
	if err != nil {
		panic(err)
	}
	return code
}

// Codes returns a copy of all codes in registration order.
func (c *Catalog) Codes() []types.Code {
	return c.reg.all()
}

// Seal makes the catalog read-only.
func (c *Catalog) Seal() {
	c.reg.seal()
}

// Sealed reports whether Seal has been called.
func (c *Catalog) Sealed() bool {
	return c.reg.isSealed()
}

// GlobalCatalog is the registry of global rating codes.
type GlobalCatalog struct {
	reg registry[types.GlobalCode]
}

// NewGlobal returns an empty, unsealed GlobalCatalog.
func NewGlobal() *GlobalCatalog {
	return &GlobalCatalog{
		reg: newRegistry(func(g types.GlobalCode) types.Code { return g.Code }, types.InvalidGlobalCode),
	}
}

// AddCode registers a global code after checking its rating range.
// Returns types.ErrInvalidRange, ErrConflict, or ErrSealed.
func (g *GlobalCatalog) AddCode(code types.GlobalCode) error {
	if err := code.Validate(); err != nil {
		return err
	}
	return g.reg.add(code)
}

func (g *GlobalCatalog) NumCodes() int { return g.reg.len() }

func (g *GlobalCatalog) CodeAtIndex(i int) (types.GlobalCode, error) { return g.reg.at(i) }

func (g *GlobalCatalog) CodeWithValue(v int) (types.GlobalCode, error) { return g.reg.withValue(v) }

func (g *GlobalCatalog) CodeWithName(name string) (types.GlobalCode, error) {
	return g.reg.withName(name)
}

// Codes returns a copy of all global codes in registration order.
func (g *GlobalCatalog) Codes() []types.GlobalCode { return g.reg.all() }

func (g *GlobalCatalog) Seal() { g.reg.seal() }

func (g *GlobalCatalog) Sealed() bool { return g.reg.isSealed() }
