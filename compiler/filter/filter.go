// Package filter implements the object and field filter chains applied to a
// catalog before code generation.
//
// Both chain types compose strictly in registration order: the output of
// filter i is the input of filter i+1. A FieldChain also writes each
// intermediate result back onto the object before running the next stage,
// so later stages observe the live object state.
package filter

import (
	"slices"

	"github.com/syssam/forcegen/schema"
)

type (
	// ObjectFilter selects objects from a catalog.
	ObjectFilter interface {
		Filter([]*schema.Object) []*schema.Object
	}

	// The ObjectFilterFunc type is an adapter to allow the use of ordinary
	// functions as ObjectFilter.
	ObjectFilterFunc func([]*schema.Object) []*schema.Object

	// FieldFilter selects, and possibly renames, the fields of one object.
	// It must not assume any particular predecessor in a chain.
	FieldFilter interface {
		Filter(*schema.Object) ([]*schema.Field, error)
	}

	// The FieldFilterFunc type is an adapter to allow the use of ordinary
	// functions as FieldFilter.
	FieldFilterFunc func(*schema.Object) ([]*schema.Field, error)
)

// Filter calls f(objects).
func (f ObjectFilterFunc) Filter(objects []*schema.Object) []*schema.Object {
	return f(objects)
}

// Filter calls f(o).
func (f FieldFilterFunc) Filter(o *schema.Object) ([]*schema.Field, error) {
	return f(o)
}

// ObjectChain runs a sequence of object filters.
type ObjectChain struct {
	filters []ObjectFilter
}

// NewObjectChain returns a chain of the given filters.
func NewObjectChain(filters ...ObjectFilter) *ObjectChain {
	return &ObjectChain{filters: slices.Clone(filters)}
}

// Add appends a filter to the chain.
func (c *ObjectChain) Add(f ObjectFilter) *ObjectChain {
	c.filters = append(c.filters, f)
	return c
}

// Filters returns the registered filters in order.
func (c *ObjectChain) Filters() []ObjectFilter {
	return slices.Clone(c.filters)
}

// Filter implements ObjectFilter. An empty chain returns its input.
func (c *ObjectChain) Filter(objects []*schema.Object) []*schema.Object {
	for _, f := range c.filters {
		objects = f.Filter(objects)
	}
	return objects
}

// FieldChain runs a sequence of field filters over one object.
type FieldChain struct {
	filters []FieldFilter
}

// NewFieldChain returns a chain of the given filters.
func NewFieldChain(filters ...FieldFilter) *FieldChain {
	return &FieldChain{filters: slices.Clone(filters)}
}

// Add appends a filter to the chain.
func (c *FieldChain) Add(f FieldFilter) *FieldChain {
	c.filters = append(c.filters, f)
	return c
}

// Filters returns the registered filters in order.
func (c *FieldChain) Filters() []FieldFilter {
	return slices.Clone(c.filters)
}

// Filter implements FieldFilter. After every stage the result replaces
// o.Fields. An empty chain returns the current fields of o.
func (c *FieldChain) Filter(o *schema.Object) ([]*schema.Field, error) {
	if o == nil {
		return nil, nil
	}
	for _, f := range c.filters {
		fields, err := f.Filter(o)
		if err != nil {
			return nil, err
		}
		o.Fields = fields
	}
	return o.Fields, nil
}

type objectPassThrough struct{}

func (objectPassThrough) Filter(objects []*schema.Object) []*schema.Object {
	return slices.Clone(objects)
}

// ObjectPassThrough returns a filter that keeps every object.
func ObjectPassThrough() ObjectFilter { return objectPassThrough{} }

type fieldPassThrough struct{}

func (fieldPassThrough) Filter(o *schema.Object) ([]*schema.Field, error) {
	if o == nil {
		return nil, nil
	}
	return slices.Clone(o.Fields), nil
}

// FieldPassThrough returns a filter that keeps every field. A nil object
// yields nil fields.
func FieldPassThrough() FieldFilter { return fieldPassThrough{} }
