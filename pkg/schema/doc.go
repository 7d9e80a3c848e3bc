// Package schema validates untyped tool arguments against a declared
// parameter list before any platform call is attempted.
//
// Each tool declares an ordered list of Fields; every field has a Type
// (string, integer, boolean, enum, snowflake, or a list of one of these)
// and a required/optional flag. Validation catches missing required
// fields, wrong primitive types, and out-of-range or out-of-enum values,
// reporting every offending field by name.
package schema
