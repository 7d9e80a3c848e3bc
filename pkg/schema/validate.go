package schema

// Field describes one named tool parameter.
type Field struct {
	Name        string
	Type        Type
	Required    bool
	Description string
}

// Schema is the ordered parameter list for one tool.
type Schema []Field

// Validate checks args against the schema. See Validate.
func (s Schema) Validate(args map[string]any) error {
	return Validate(s, args)
}

// Validate checks args against the schema. It reports every failure found:
// missing required fields, wrong primitive types, out-of-range and
// out-of-enum values. Keys not declared in the schema are ignored, since
// clients are free to attach metadata. A nil value is treated as absent.
func Validate(s Schema, args map[string]any) error {
	var errs []*FieldError

	for _, f := range s {
		value, exists := args[f.Name]
		if !exists || value == nil {
			if f.Required {
				errs = append(errs, &FieldError{
					Field:  f.Name,
					Reason: "required",
				})
			}
			continue
		}

		if err := f.Type.Validate(value); err != nil {
			errs = append(errs, &FieldError{
				Field:  f.Name,
				Reason: err.Error(),
				Value:  value,
			})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}
