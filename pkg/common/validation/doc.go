/*
Package validation provides shared parameter validation helpers for flowkit
constructors and combinators.

Each helper returns a *errors.ValidationError identifying the module, field,
and offending value, or nil when the value is acceptable:

	if err := validation.ValidatePositive("taskqueue", "concurrency", n); err != nil {
		return nil, err
	}

All returned errors match errors.ErrInvalidConfiguration via errors.Is.
*/
package validation
