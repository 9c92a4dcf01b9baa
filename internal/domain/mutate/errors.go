// Package mutate holds the pure aggregate-mutation rules for profiles and
// posts: how embedded sub-collections (experience, education, likes, comments)
// are added, replaced, and removed, and who is allowed to do it.
//
// Functions here never perform I/O. Handlers load an aggregate, apply one
// mutation in memory, and persist the result once (last-write-wins at the
// store layer). Failures are typed so the HTTP layer can map them to status
// codes without string matching.
package mutate

import "errors"

// ValidationError reports a missing or empty required field. Param carries
// the wire-level field name for field-level error responses.
type ValidationError struct {
	Param string
	Msg   string
}

func (e *ValidationError) Error() string { return e.Msg }

// NotFoundError reports an aggregate or sub-entity that does not exist.
type NotFoundError struct {
	What string
}

func (e *NotFoundError) Error() string { return e.What + " not found" }

// AuthorizationError reports an actor who does not own the resource being
// mutated.
type AuthorizationError struct {
	Msg string
}

func (e *AuthorizationError) Error() string { return e.Msg }

// AsValidation returns the ValidationError in err's chain, if any.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// IsNotFound reports whether err's chain contains a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsAuthorization reports whether err's chain contains an AuthorizationError.
func IsAuthorization(err error) bool {
	var ae *AuthorizationError
	return errors.As(err, &ae)
}
