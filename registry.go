package asyncscope

import "context"

type scopeCtxKey struct{}

// Current returns the scope that is ambient in ctx, or ErrScopeNotFound if
// ctx was not derived from a RunWithin (or NewContext) call.
func Current(ctx context.Context) (*Scope, error) {
	if s := CurrentOrNil(ctx); s != nil {
		return s, nil
	}
	return nil, scopeNotFound()
}

// CurrentOrNil is the silent form of Current. It returns nil if there is no
// ambient scope.
func CurrentOrNil(ctx context.Context) *Scope {
	if ctx == nil {
		return nil
	}
	s, _ := ctx.Value(scopeCtxKey{}).(*Scope)
	return s
}

// NewContext returns a copy of ctx in which s is the ambient scope. The
// scope stays ambient for everything that uses the returned context,
// including goroutines started with it, while ctx itself is left untouched.
func NewContext(ctx context.Context, s *Scope) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, scopeCtxKey{}, s)
}

// Run installs s as the ambient scope and calls fn with the resulting context.
// The scope that was ambient in ctx (if any) is ambient again for the caller
// as soon as Run returns, on every exit path, since ctx is never modified.
func Run[R any](ctx context.Context, s *Scope, fn func(ctx context.Context) (R, error)) (R, error) {
	if s == nil {
		panic("asyncscope: Run called with a nil scope")
	}
	return fn(NewContext(ctx, s))
}
