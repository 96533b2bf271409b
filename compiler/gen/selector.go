package gen

import (
	"github.com/syssam/forcegen/compiler/load"
	"github.com/syssam/forcegen/schema"
)

// Template attribute keys set by the entity selector.
const (
	KeyPackage = "package"
	KeyCaller  = "caller"
	KeyObject  = "object"
	KeyType    = "type"
)

type (
	// Selector fills a template with the attributes of one object. It does
	// not decide which objects or fields are generated.
	Selector interface {
		Select(caller *load.Caller, o *schema.Object, t Template) error
	}

	// The SelectorFunc type is an adapter to allow the use of ordinary
	// functions as selectors.
	SelectorFunc func(*load.Caller, *schema.Object, Template) error
)

// Select calls f(caller, o, t).
func (f SelectorFunc) Select(caller *load.Caller, o *schema.Object, t Template) error {
	return f(caller, o, t)
}

// EntitySelector sets the package, caller, object and type attributes
// rendered by EntityTemplate.
type EntitySelector struct {
	Config *Config
}

// NewEntitySelector returns a selector building types with c.
func NewEntitySelector(c *Config) *EntitySelector {
	return &EntitySelector{Config: c}
}

// Select builds the type view of o and stores it in t.
func (s *EntitySelector) Select(caller *load.Caller, o *schema.Object, t Template) error {
	typ, err := NewType(s.Config, caller, o)
	if err != nil {
		return err
	}
	t.Set(KeyPackage, typ.Package)
	t.Set(KeyCaller, caller)
	t.Set(KeyObject, o)
	t.Set(KeyType, typ)
	return nil
}
