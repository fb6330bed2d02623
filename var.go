package asyncscope

import (
	"context"
	"fmt"
	"reflect"

	"go.uber.org/atomic"
)

// Instance identities are numbered from this counter so that every NewVar
// call yields a distinct identity, regardless of its name.
var identitySeq atomic.Uint64

// The key a variable is bound under. Identity equality, not name equality,
// decides whether a lookup matches.
type identity struct {
	name   string
	global bool
	// Zero for global identities
	seq uint64
}

func instanceIdentity(name string) identity {
	return identity{
		name: name,
		seq:  identitySeq.Inc(),
	}
}

func globalIdentity(name string) identity {
	return identity{
		name:   name,
		global: true,
	}
}

// Var is a handle to a variable whose value depends on the ambient scope of
// the context it is accessed with.
type Var[T any] struct {
	name string
	id   identity
}

// NewVar returns a variable with its own identity. Two variables created by
// NewVar never see each other's values, even if they share a name.
func NewVar[T any](name string) *Var[T] {
	return &Var[T]{
		name: name,
		id:   instanceIdentity(name),
	}
}

// NewGlobalVar returns a handle to the process-global variable with the given
// name. All handles (and the *Global functions) using the same name access the
// same variable.
func NewGlobalVar[T any](name string) *Var[T] {
	return &Var[T]{
		name: name,
		id:   globalIdentity(name),
	}
}

// Name returns the display name the variable was created with.
func (v *Var[T]) Name() string {
	return v.name
}

// String describes the variable for diagnostics. Instance variables include
// their sequence number, since names need not be unique.
func (v *Var[T]) String() string {
	if v.id.global {
		return fmt.Sprintf("global var %q", v.name)
	}
	return fmt.Sprintf("var %q #%d", v.name, v.id.seq)
}

// Set binds value in the ambient scope itself, never in an ancestor.
func (v *Var[T]) Set(ctx context.Context, value T) error {
	s, err := Current(ctx)
	if err != nil {
		return err
	}
	s.bind(v.id, value)
	return nil
}

// Get returns the value bound by the nearest scope in the ambient scope's
// chain. It fails with ErrScopeNotFound if there is no ambient scope, or
// with a *VariableNotFoundError if no scope in the chain binds the variable.
func (v *Var[T]) Get(ctx context.Context) (T, error) {
	var zero T
	s, err := Current(ctx)
	if err != nil {
		return zero, err
	}
	value, ok := s.lookup(v.id)
	if !ok {
		return zero, variableNotFound(v.name)
	}
	return v.cast(value)
}

// Lookup is the silent form of Get. It reports false instead of failing when
// there is no ambient scope or the variable is not bound.
func (v *Var[T]) Lookup(ctx context.Context) (T, bool) {
	value, err := v.Get(ctx)
	if err != nil {
		var zero T
		return zero, false
	}
	return value, true
}

// Exists reports whether any scope in the ambient chain binds the variable.
// Without an ambient scope it fails with ErrScopeNotFound.
func (v *Var[T]) Exists(ctx context.Context) (bool, error) {
	s, err := Current(ctx)
	if err != nil {
		return false, err
	}
	_, ok := s.lookup(v.id)
	return ok, nil
}

// Defined is the silent form of Exists.
func (v *Var[T]) Defined(ctx context.Context) bool {
	ok, _ := v.Exists(ctx)
	return ok
}

// Unset removes the variable from the ambient scope's own bindings. If an
// ancestor binds it too, that value becomes visible again.
func (v *Var[T]) Unset(ctx context.Context) error {
	s, err := Current(ctx)
	if err != nil {
		return err
	}
	s.unbind(v.id)
	return nil
}

// With sets the variable to value in the ambient scope, calls fn, and unsets
// the variable when fn returns or panics. See WithValue.
func (v *Var[T]) With(ctx context.Context, value T, fn func(ctx context.Context) error) error {
	_, err := WithValue(ctx, v, value, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// WithValue sets v to value in the ambient scope, calls fn, and unsets v
// afterwards regardless of how fn exits. The unset happens when fn returns, so
// any goroutines fn starts that rely on the binding must be waited for inside
// fn. If fn never returns, the variable is never unset.
func WithValue[T any, R any](ctx context.Context, v *Var[T], value T, fn func(ctx context.Context) (R, error)) (R, error) {
	s, err := Current(ctx)
	if err != nil {
		var zero R
		return zero, err
	}
	s.bind(v.id, value)
	defer s.unbind(v.id)
	return fn(ctx)
}

func (v *Var[T]) cast(value any) (T, error) {
	var zero T
	// A nil interface only comes out of a binding of a nil interface value.
	// It can be read back as any T that has nil as its zero value.
	if value == nil {
		if nilable[T]() {
			return zero, nil
		}
		return zero, variableTypeError(v.name, typeName[T](), "<nil>")
	}
	typed, ok := value.(T)
	if !ok {
		return zero, variableTypeError(v.name, typeName[T](), fmt.Sprintf("%T", value))
	}
	return typed, nil
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}

func nilable[T any]() bool {
	switch reflect.TypeOf((*T)(nil)).Elem().Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return true
	}
	return false
}
