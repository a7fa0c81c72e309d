// Package customerr holds the domain error kinds recognised at operation
// boundaries. They are converted to user-facing messages by the facade and
// never cross it.
package customerr

// ValidationError marks operator input that failed to parse: a bad amount,
// a bad date, or an empty required field.
type ValidationError struct {
	Err string
}

func (e *ValidationError) Error() string {
	return e.Err
}

// NotFoundError covers both a missing id and an id owned by another
// account. The two cases are deliberately indistinguishable.
type NotFoundError struct {
	Err string
}

func (e *NotFoundError) Error() string {
	return e.Err
}

// DuplicateError marks a registration collision on the account name.
type DuplicateError struct {
	Err string
}

func (e *DuplicateError) Error() string {
	return e.Err
}
