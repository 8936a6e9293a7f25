package cellregion

import (
	"errors"
	"fmt"
)

// ErrInvalidFormat indicates malformed region text.
var ErrInvalidFormat = errors.New("invalid cell region format")

// ErrUnknownTable indicates a region naming a table that does not resolve.
var ErrUnknownTable = errors.New("unknown table")

// ErrUnresolvedRegion indicates a rectangle outside its table's current bounds.
var ErrUnresolvedRegion = errors.New("cell region out of table bounds")

// ParseError reports the token that failed to parse.
type ParseError struct {
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse cell region %q: %v", e.Token, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func newParseError(token string, err error) *ParseError {
	return &ParseError{Token: token, Err: err}
}
