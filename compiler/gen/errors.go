package gen

import (
	"errors"
	"fmt"

	"github.com/syssam/forcegen/compiler/naming"
)

var (
	// ErrInvalidSchema is matched by every SchemaError.
	ErrInvalidSchema = errors.New("forcegen: invalid schema")
	// ErrMissingConfig is matched by every ConfigError.
	ErrMissingConfig = errors.New("forcegen: missing configuration")
	// ErrGenerationFailed is matched by every GenerationError.
	ErrGenerationFailed = errors.New("forcegen: code generation failed")
	// ErrInvalidName is matched by every naming.NameError.
	ErrInvalidName = naming.ErrInvalidName
)

// SchemaError reports an object whose fields break the catalog invariants.
type SchemaError struct {
	Object string
	Cause  error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("forcegen: invalid object %s: %v", e.Object, e.Cause)
}

func (e *SchemaError) Unwrap() error        { return e.Cause }
func (e *SchemaError) Is(target error) bool { return target == ErrInvalidSchema }

// NewSchemaError returns a SchemaError for object.
func NewSchemaError(object string, cause error) *SchemaError {
	return &SchemaError{Object: object, Cause: cause}
}

// ConfigError reports an option rejected before any I/O takes place. Value
// is the rejected input, nil when the option was missing.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

func (e *ConfigError) Error() string {
	msg := "forcegen: option " + e.Option + ": " + e.Message
	if e.Value != nil {
		msg += fmt.Sprintf(" (got %v)", e.Value)
	}
	return msg
}

func (e *ConfigError) Is(target error) bool { return target == ErrMissingConfig }

// NewConfigError returns a ConfigError for option.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{Option: option, Value: value, Message: message}
}

// Generation phases of one object, in pipeline order.
const (
	PhaseFilter = "filter"
	PhaseSelect = "select"
	PhaseWriter = "writer"
	PhaseRender = "render"
	PhaseClose  = "close"
)

// GenerationError reports the phase in which emitting an object failed.
type GenerationError struct {
	Phase  string
	Object string
	Cause  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("forcegen: %s %s: %v", e.Phase, e.Object, e.Cause)
}

func (e *GenerationError) Unwrap() error        { return e.Cause }
func (e *GenerationError) Is(target error) bool { return target == ErrGenerationFailed }

// NewGenerationError returns a GenerationError for object.
func NewGenerationError(phase, object string, cause error) *GenerationError {
	return &GenerationError{Phase: phase, Object: object, Cause: cause}
}

// IsSchemaError reports whether err wraps a SchemaError.
func IsSchemaError(err error) bool {
	var target *SchemaError
	return errors.As(err, &target)
}

// IsConfigError reports whether err wraps a ConfigError.
func IsConfigError(err error) bool {
	var target *ConfigError
	return errors.As(err, &target)
}

// IsGenerationError reports whether err wraps a GenerationError.
func IsGenerationError(err error) bool {
	var target *GenerationError
	return errors.As(err, &target)
}

// IsNameError reports whether err wraps a naming.NameError.
func IsNameError(err error) bool {
	return naming.IsNameError(err)
}
