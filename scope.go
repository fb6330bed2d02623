package asyncscope

import (
	"context"
	"sync"
)

// A Scope is one link in a chain of variable bindings. Reads walk from the
// scope toward the root and stop at the first scope that binds the variable.
// Writes only ever go to the scope's own bindings.
type Scope struct {
	// Set once by NewScope, never changed.
	parent *Scope
	// identity -> value. A sync.Map because forked goroutines read an
	// ancestor's bindings while code in the ancestor may still be writing them.
	bindings sync.Map
}

// NewScope creates a scope whose parent is the scope ambient in ctx at the
// time of the call (nil if there is none, which makes it a root scope).
// Ancestry is fixed here and not at RunWithin time, so two scopes created from
// the same parent evolve independently of each other.
func NewScope(ctx context.Context) *Scope {
	return &Scope{
		parent: CurrentOrNil(ctx),
	}
}

// Parent returns the scope this one was created under, or nil for a root scope.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Depth returns the number of ancestors of s.
func (s *Scope) Depth() int {
	depth := 0
	for p := s.parent; p != nil; p = p.parent {
		depth++
	}
	return depth
}

// RunWithin makes s the ambient scope for fn and for anything fn starts with
// the context it is given. See Run for a form that returns a value.
func (s *Scope) RunWithin(ctx context.Context, fn func(ctx context.Context) error) error {
	_, err := Run(ctx, s, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// Fork creates a child of the scope ambient in ctx and runs fn within it.
func Fork(ctx context.Context, fn func(ctx context.Context) error) error {
	return NewScope(ctx).RunWithin(ctx, fn)
}

func (s *Scope) lookup(id identity) (any, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if value, ok := cur.bindings.Load(id); ok {
			return value, true
		}
	}
	return nil, false
}

func (s *Scope) bind(id identity, value any) {
	s.bindings.Store(id, value)
}

// Removing a local binding reveals whatever an ancestor binds for the same
// identity.
func (s *Scope) unbind(id identity) {
	s.bindings.Delete(id)
}
