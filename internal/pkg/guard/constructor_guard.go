// Package guard provides a defensive construction pattern for value objects
// and commands. Embedding a ConstructorGuard in a struct makes zero-value
// instances detectable, so objects can enforce creation through their
// designated constructor functions.
package guard

import "errors"

// ErrDefaultConstructorGuard is the default error returned by
// ConstructorGuard.Validate() when a nil error is passed as the validation
// error. This ensures that validation always fails with a meaningful message
// even if no specific error is provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard ensures value objects and commands are only created through
// their designated constructor functions. It works by maintaining an internal
// flag that is only set when the object is created through the proper
// constructor; a zero-value struct fails validation.
//
// Example usage:
//
//	var ErrTagNotConstructed = errors.New("Tag must be created via NewTag")
//
//	type Tag struct {
//	    name  string
//	    guard ConstructorGuard
//	}
//
//	func NewTag(name string) (Tag, error) {
//	    if name == "" {
//	        return Tag{}, errors.New("name is required")
//	    }
//	    return Tag{
//	        name:  name,
//	        guard: NewConstructorGuard(),
//	    }, nil
//	}
//
//	func (t Tag) Validate() error {
//	    return t.guard.Validate(ErrTagNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a ConstructorGuard that marks an object as
// properly constructed. Call it in the constructor of domain objects so they
// can be distinguished from zero-value instances.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil if the guard was created via NewConstructorGuard.
// For a zero-value guard it returns the provided error, or
// ErrDefaultConstructorGuard when the provided error is nil.
func (g ConstructorGuard) Validate(notConstructedErr error) error {
	if g.isConstructed {
		return nil
	}
	if notConstructedErr == nil {
		return ErrDefaultConstructorGuard
	}
	return notConstructedErr
}
