package model

import "errors"

// ErrUnknownValue is returned when a picklist value is not declared.
var ErrUnknownValue = errors.New("model: unknown picklist value")

// PicklistValue is one value of a picklist. Generated picklist enums embed
// it:
//
//	type AccountTypeEnum struct {
//	    model.PicklistValue
//	}
type PicklistValue struct {
	active bool
	dflt   bool
	label  *string
	value  string
}

// NewPicklistValue returns a picklist value.
func NewPicklistValue(active, dflt bool, label *string, value string) PicklistValue {
	return PicklistValue{active: active, dflt: dflt, label: label, value: value}
}

// Label returns a pointer to s. It is used by generated code for labels.
func Label(s string) *string { return &s }

// Value returns the stored value.
func (v PicklistValue) Value() string { return v.value }

// Label returns the label, or the value when there is none.
func (v PicklistValue) Label() string {
	if v.label == nil {
		return v.value
	}
	return *v.label
}

// HasLabel reports if the value has its own label.
func (v PicklistValue) HasLabel() bool { return v.label != nil }

// Active reports if the value can be selected.
func (v PicklistValue) Active() bool { return v.active }

// Default reports if the value is the picklist default.
func (v PicklistValue) Default() bool { return v.dflt }

// IsZero reports if no value is set.
func (v PicklistValue) IsZero() bool { return v.value == "" }

// String implements fmt.Stringer.
func (v PicklistValue) String() string { return v.value }

// MarshalText encodes the stored value.
func (v PicklistValue) MarshalText() ([]byte, error) {
	return []byte(v.value), nil
}

// UnmarshalText decodes a stored value. Flags and label are not part of
// the encoding; use Find to resolve a declared value.
func (v *PicklistValue) UnmarshalText(text []byte) error {
	*v = PicklistValue{active: true, value: string(text)}
	return nil
}

// Valuer is implemented by picklist enums.
type Valuer interface {
	Value() string
}

// Find returns the member of values storing value.
func Find[T Valuer](values []T, value string) (T, error) {
	for _, v := range values {
		if v.Value() == value {
			return v, nil
		}
	}
	var zero T
	return zero, ErrUnknownValue
}

// DefaultOf returns the default member of values, if any.
func DefaultOf[T interface {
	Valuer
	Default() bool
}](values []T) (T, bool) {
	for _, v := range values {
		if v.Default() {
			return v, true
		}
	}
	var zero T
	return zero, false
}
