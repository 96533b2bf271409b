package schema

import (
	"fmt"
	"strings"
)

// A Type is the kind of value a field holds.
type Type uint8

// List of field types reported by the describe service.
const (
	TypeInvalid Type = iota
	TypeString
	TypeID
	TypeBoolean
	TypeInt
	TypeDouble
	TypePercent
	TypeCurrency
	TypeDate
	TypeTime
	TypeDateTime
	TypeURL
	TypePicklist
	TypeMultiPicklist
	TypeCombobox
	TypeReference
	TypeTextArea
	TypeEmail
	TypePhone
	TypeBase64
	TypeAnyType
	TypeEncryptedString
	endTypes
)

var typeNames = [...]string{
	TypeInvalid:         "invalid",
	TypeString:          "string",
	TypeID:              "id",
	TypeBoolean:         "boolean",
	TypeInt:             "int",
	TypeDouble:          "double",
	TypePercent:         "percent",
	TypeCurrency:        "currency",
	TypeDate:            "date",
	TypeTime:            "time",
	TypeDateTime:        "datetime",
	TypeURL:             "url",
	TypePicklist:        "picklist",
	TypeMultiPicklist:   "multipicklist",
	TypeCombobox:        "combobox",
	TypeReference:       "reference",
	TypeTextArea:        "textarea",
	TypeEmail:           "email",
	TypePhone:           "phone",
	TypeBase64:          "base64",
	TypeAnyType:         "anytype",
	TypeEncryptedString: "encryptedstring",
}

// String returns the describe name of the type.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return typeNames[TypeInvalid]
}

// Valid reports if the type is one of the known field types.
func (t Type) Valid() bool {
	return t > TypeInvalid && t < endTypes
}

// Numeric reports if the type holds a number.
func (t Type) Numeric() bool {
	return t == TypeInt || t == TypeDouble || t == TypePercent || t == TypeCurrency
}

// Temporal reports if the type holds a date or a time of day.
func (t Type) Temporal() bool {
	return t == TypeDate || t == TypeTime || t == TypeDateTime
}

// Enumerated reports if the type draws its values from a picklist.
func (t Type) Enumerated() bool {
	return t == TypePicklist || t == TypeMultiPicklist
}

// ParseType returns the Type for the given describe name. Matching is
// case-insensitive; unknown names return an error.
func ParseType(s string) (Type, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for t := TypeString; t < endTypes; t++ {
		if typeNames[t] == name {
			return t, nil
		}
	}
	return TypeInvalid, fmt.Errorf("forcegen: unknown field type %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("forcegen: cannot marshal field type %d", t)
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(text []byte) error {
	v, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
