package filter

import "errors"

// Common errors returned when compiling title filters.
var (
	// ErrEmptyExpression is returned when the expression is blank.
	ErrEmptyExpression = errors.New("empty filter expression")
)
