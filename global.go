package asyncscope

import "context"

// The functions in this file address process-global variables by name. They
// are equivalent to calling the same method on NewGlobalVar[T](name).

// SetGlobal binds value to the global variable name in the ambient scope.
func SetGlobal[T any](ctx context.Context, name string, value T) error {
	return NewGlobalVar[T](name).Set(ctx, value)
}

// GetGlobal returns the value of the global variable name, as Var.Get does.
func GetGlobal[T any](ctx context.Context, name string) (T, error) {
	return NewGlobalVar[T](name).Get(ctx)
}

// LookupGlobal is the silent form of GetGlobal.
func LookupGlobal[T any](ctx context.Context, name string) (T, bool) {
	return NewGlobalVar[T](name).Lookup(ctx)
}

// GlobalExists reports whether the global variable name is bound anywhere in
// the ambient chain. It needs no type, since existence does not depend on it.
func GlobalExists(ctx context.Context, name string) (bool, error) {
	return NewGlobalVar[any](name).Exists(ctx)
}

// GlobalDefined is the silent form of GlobalExists.
func GlobalDefined(ctx context.Context, name string) bool {
	return NewGlobalVar[any](name).Defined(ctx)
}

// UnsetGlobal removes the global variable name from the ambient scope's own
// bindings.
func UnsetGlobal(ctx context.Context, name string) error {
	return NewGlobalVar[any](name).Unset(ctx)
}

// WithGlobal sets the global variable name for the duration of fn, as
// WithValue does.
func WithGlobal[T any, R any](ctx context.Context, name string, value T, fn func(ctx context.Context) (R, error)) (R, error) {
	return WithValue(ctx, NewGlobalVar[T](name), value, fn)
}
