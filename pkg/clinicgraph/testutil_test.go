package clinicgraph

import (
	"context"
)

// Test state types used across tests

// Counter is a simple state for testing incrementing.
type Counter struct {
	Value int
}

// Chat is a state for routing and tracking scenarios.
type Chat struct {
	Visited []string
	Urgent  bool
	Reply   string
}

// Helper node functions

// increment is a node that increments the counter.
func increment(ctx Context, s Counter) (Counter, error) {
	s.Value++
	return s, nil
}

// passthrough returns the state unchanged.
func passthrough[S any](ctx Context, s S) (S, error) {
	return s, nil
}

// visit creates a node that records its name in the state.
func visit(name string) NodeFunc[Chat] {
	return func(ctx Context, s Chat) (Chat, error) {
		s.Visited = append(s.Visited, name)
		return s, nil
	}
}

// failWith creates a node that returns the given error.
func failWith(err error) NodeFunc[Chat] {
	return func(ctx Context, s Chat) (Chat, error) {
		return s, err
	}
}

// panicWith creates a node that panics with the given value.
func panicWith(value any) NodeFunc[Chat] {
	return func(ctx Context, s Chat) (Chat, error) {
		panic(value)
	}
}

// testCtx creates a simple test context.
func testCtx() Context {
	return NewContext(context.Background())
}
