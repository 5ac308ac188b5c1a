package model

import "fmt"

// SchemaError reports a required column missing from the input header.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema: missing column %q", e.Column)
}

// ClassificationError reports a row that is neither income, expense nor transfer.
type ClassificationError struct {
	Line int
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("line %d: cannot classify record: no transfer-out or transfer-in account", e.Line)
}

// FormatError reports a value that cannot be parsed.
type FormatError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d: column %s: invalid value %q: %v", e.Line, e.Column, e.Value, e.Err)
	}
	return fmt.Sprintf("line %d: column %s: invalid value %q", e.Line, e.Column, e.Value)
}

func (e *FormatError) Unwrap() error { return e.Err }
