package generator

import (
	"errors"
	"fmt"
)

// Generator errors
var (
	ErrUnknownFamily = errors.New("unknown family")
	ErrFamilyFailed  = errors.New("family failed")
	ErrNameCollision = errors.New("canonical name collision")
	ErrEmptyName     = errors.New("canonical name is empty")
	ErrNoModel       = errors.New("parser returned no model")
)

// ParseError reports the failure of one descriptor within a family
type ParseError struct {
	Family string
	// Index is the position of the descriptor in the family's list
	Index int
	Path  string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("family %q: descriptor %d (%s): %v", e.Family, e.Index, e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
