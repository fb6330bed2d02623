package asyncscope

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// Returned when there is no ambient scope in the context that was passed in,
	// i.e. the call is not inside any RunWithin.
	ErrScopeNotFound = errors.New("scope not found")

	// Matches any *VariableNotFoundError when used with errors.Is.
	ErrVariableNotFound = errors.New("variable not found")
)

// VariableNotFoundError is returned when an ambient scope exists, but no scope
// in its chain binds the requested variable.
type VariableNotFoundError struct {
	// The display name of the variable
	Name string
}

func (e *VariableNotFoundError) Error() string {
	return fmt.Sprintf("variable %q not found", e.Name)
}

func (e *VariableNotFoundError) Is(target error) bool {
	return target == ErrVariableNotFound
}

// VariableTypeError is returned when a global variable is read with a type
// other than the type of the value bound to it.
type VariableTypeError struct {
	Name string
	// The type that was requested
	Want string
	// The type of the value that is actually bound
	Got string
}

func (e *VariableTypeError) Error() string {
	return fmt.Sprintf("variable %q holds a %s, not a %s", e.Name, e.Got, e.Want)
}

func scopeNotFound() error {
	return errors.WithStack(ErrScopeNotFound)
}

func variableNotFound(name string) error {
	return errors.WithStack(&VariableNotFoundError{Name: name})
}

func variableTypeError(name string, want string, got string) error {
	return errors.WithStack(&VariableTypeError{
		Name: name,
		Want: want,
		Got:  got,
	})
}
