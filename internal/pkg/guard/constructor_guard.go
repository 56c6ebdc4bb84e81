// Package guard implements the constructor-guard pattern used by domain
// objects to distinguish properly constructed instances from zero values.
package guard

import "errors"

// ErrDefaultConstructorGuard is the default error returned by Validate when a
// nil validation error is passed. Validation always fails with a meaningful
// message even if no specific error is provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard ensures value objects and entities are only created through
// their designated constructor functions. Embedding a ConstructorGuard in a
// struct makes zero-value instances detectable: the internal flag is only set
// by NewConstructorGuard, so any struct built without its constructor fails
// validation.
//
// Example usage:
//
//	type Window struct {
//	    start, end int
//	    guard      guard.ConstructorGuard
//	}
//
//	func NewWindow(start, end int) (Window, error) {
//	    if start >= end {
//	        return Window{}, errors.New("start must be before end")
//	    }
//	    return Window{start: start, end: end, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (w Window) Validate() error {
//	    return w.guard.Validate(ErrWindowIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a ConstructorGuard that marks an object as
// properly constructed. Call it in the constructor of domain objects.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate checks whether the guarded object was created through its
// constructor. Returns the provided validation error for zero-value guards,
// or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
