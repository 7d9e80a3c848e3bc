package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// Type defines the contract for parameter value validation.
// Implementations determine how values are validated against a type.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "integer").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

// --- Built-in Type Implementations ---

// StringType validates string values.
type StringType struct{}

func (t *StringType) Name() string { return "string" }

func (t *StringType) Validate(value any) error {
	if _, ok := value.(string); !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	return nil
}

// IntType validates integer values.
type IntType struct{}

func (t *IntType) Name() string { return "integer" }

func (t *IntType) Validate(value any) error {
	_, err := asInt64(value)
	return err
}

// BoolType validates boolean values.
type BoolType struct{}

func (t *BoolType) Name() string { return "boolean" }

func (t *BoolType) Validate(value any) error {
	if _, ok := value.(bool); !ok {
		return fmt.Errorf("expected boolean, got %T", value)
	}
	return nil
}

// EnumType validates string values restricted to a fixed set.
type EnumType struct {
	values []string
}

func (t *EnumType) Name() string {
	return fmt.Sprintf("enum(%s)", strings.Join(t.values, "|"))
}

// Values returns the accepted set in declaration order.
func (t *EnumType) Values() []string { return t.values }

func (t *EnumType) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	for _, v := range t.values {
		if s == v {
			return nil
		}
	}
	return fmt.Errorf("must be one of [%s], got %q", strings.Join(t.values, ", "), s)
}

// IntRangeType validates integers bounded to [min, max] inclusive.
type IntRangeType struct {
	min, max int64
}

func (t *IntRangeType) Name() string {
	return fmt.Sprintf("integer(%d..%d)", t.min, t.max)
}

func (t *IntRangeType) Validate(value any) error {
	n, err := asInt64(value)
	if err != nil {
		return err
	}
	if n < t.min || n > t.max {
		return fmt.Errorf("must be between %d and %d, got %d", t.min, t.max, n)
	}
	return nil
}

// SnowflakeType validates platform entity identifiers. Snowflakes exceed
// the integer precision of JSON numbers, so they must arrive as strings
// of decimal digits.
type SnowflakeType struct{}

func (t *SnowflakeType) Name() string { return "snowflake" }

func (t *SnowflakeType) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected snowflake id as string, got %T", value)
	}
	if s == "" || len(s) > 20 {
		return fmt.Errorf("malformed snowflake id %q", s)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return fmt.Errorf("malformed snowflake id %q", s)
		}
	}
	return nil
}

// SliceType validates lists of a specific element type.
type SliceType struct {
	elemType Type
}

func (t *SliceType) Name() string {
	return fmt.Sprintf("[%s]", t.elemType.Name())
}

// Elem returns the element type.
func (t *SliceType) Elem() Type { return t.elemType }

func (t *SliceType) Validate(value any) error {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return fmt.Errorf("expected list, got %T", value)
	}
	if rv.Len() == 0 {
		return fmt.Errorf("list must not be empty")
	}
	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i).Interface()
		if err := t.elemType.Validate(elem); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// --- Factory Functions ---

// String creates a string type validator.
func String() Type { return &StringType{} }

// Int creates an integer type validator.
func Int() Type { return &IntType{} }

// IntRange creates an integer validator bounded to [min, max] inclusive.
func IntRange(min, max int64) Type { return &IntRangeType{min: min, max: max} }

// Bool creates a boolean type validator.
func Bool() Type { return &BoolType{} }

// Enum creates a validator for strings restricted to the given set.
func Enum(values ...string) Type { return &EnumType{values: values} }

// Snowflake creates a validator for platform entity identifiers.
func Snowflake() Type { return &SnowflakeType{} }

// Slice creates a list type validator for elements of the given type.
func Slice(elemType Type) Type {
	return &SliceType{elemType: elemType}
}

// asInt64 accepts native integers plus whole floats, which is what JSON
// unmarshaling produces for numbers.
func asInt64(value any) (int64, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		if v == float64(int64(v)) {
			return int64(v), nil
		}
		return 0, fmt.Errorf("expected integer, got float (not a whole number)")
	default:
		return 0, fmt.Errorf("expected integer, got %T", value)
	}
}
