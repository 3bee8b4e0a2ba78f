package clinicgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCompile_LinearGraph tests compiling a simple linear graph.
func TestCompile_LinearGraph(t *testing.T) {
	compiled, err := NewGraph[Counter]().
		AddNode("a", increment).
		AddNode("b", increment).
		AddEdge("a", "b").
		AddEdge("b", END).
		SetEntry("a").
		Compile()

	require.NoError(t, err)
	require.NotNil(t, compiled)
	assert.Equal(t, "a", compiled.EntryPoint())
	assert.ElementsMatch(t, []string{"a", "b"}, compiled.NodeIDs())
	assert.True(t, compiled.HasNode("a"))
	assert.False(t, compiled.HasNode("ghost"))
}

// TestCompile_ConditionalGraph tests compiling a graph with a router.
func TestCompile_ConditionalGraph(t *testing.T) {
	router := func(ctx Context, s Chat) string { return END }

	compiled, err := NewGraph[Chat]().
		AddNode("triage", visit("triage")).
		AddNode("urgent", visit("urgent")).
		AddNode("respond", visit("respond")).
		AddConditionalEdge("triage", router).
		AddEdge("urgent", END).
		AddEdge("respond", END).
		SetEntry("triage").
		Compile()

	require.NoError(t, err)
	assert.True(t, compiled.IsConditional("triage"))
	assert.False(t, compiled.IsConditional("urgent"))
}

// TestCompile_NoEntryPoint tests that a missing entry point fails.
func TestCompile_NoEntryPoint(t *testing.T) {
	_, err := NewGraph[Counter]().
		AddNode("a", increment).
		AddEdge("a", END).
		Compile()

	assert.ErrorIs(t, err, ErrNoEntryPoint)
}

// TestCompile_EntryNotFound tests an entry point naming an unknown node.
func TestCompile_EntryNotFound(t *testing.T) {
	_, err := NewGraph[Counter]().
		AddNode("a", increment).
		AddEdge("a", END).
		SetEntry("ghost").
		Compile()

	assert.ErrorIs(t, err, ErrEntryNotFound)
}

// TestCompile_EdgeTargetNotFound tests edges to unknown nodes.
func TestCompile_EdgeTargetNotFound(t *testing.T) {
	_, err := NewGraph[Counter]().
		AddNode("a", increment).
		AddEdge("a", "ghost").
		SetEntry("a").
		Compile()

	assert.ErrorIs(t, err, ErrNodeNotFound)
}

// TestCompile_EdgeSourceNotFound tests edges from unknown nodes.
func TestCompile_EdgeSourceNotFound(t *testing.T) {
	_, err := NewGraph[Counter]().
		AddNode("a", increment).
		AddEdge("a", END).
		AddEdge("ghost", "a").
		SetEntry("a").
		Compile()

	assert.ErrorIs(t, err, ErrNodeNotFound)
}

// TestCompile_ConditionalSourceNotFound tests routers on unknown nodes.
func TestCompile_ConditionalSourceNotFound(t *testing.T) {
	router := func(ctx Context, s Counter) string { return END }

	_, err := NewGraph[Counter]().
		AddNode("a", increment).
		AddEdge("a", END).
		AddConditionalEdge("ghost", router).
		SetEntry("a").
		Compile()

	assert.ErrorIs(t, err, ErrNodeNotFound)
}

// TestCompile_NoPathToEnd tests a cycle with no way out.
func TestCompile_NoPathToEnd(t *testing.T) {
	_, err := NewGraph[Counter]().
		AddNode("a", increment).
		AddNode("b", increment).
		AddEdge("a", "b").
		AddEdge("b", "a").
		SetEntry("a").
		Compile()

	assert.ErrorIs(t, err, ErrNoPathToEnd)
}

// TestCompile_ConditionalAssumedToReachEnd tests that a router node
// satisfies reachability even without a static edge to END.
func TestCompile_ConditionalAssumedToReachEnd(t *testing.T) {
	router := func(ctx Context, s Counter) string { return END }

	_, err := NewGraph[Counter]().
		AddNode("a", increment).
		AddConditionalEdge("a", router).
		SetEntry("a").
		Compile()

	assert.NoError(t, err)
}

// TestCompile_MultipleErrors tests that validation errors are joined.
func TestCompile_MultipleErrors(t *testing.T) {
	_, err := NewGraph[Counter]().
		AddNode("a", increment).
		AddEdge("a", "ghost").
		Compile()

	assert.ErrorIs(t, err, ErrNoEntryPoint)
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

// TestCompile_Immutability tests that builder changes after Compile
// do not affect the compiled graph.
func TestCompile_Immutability(t *testing.T) {
	graph := NewGraph[Counter]().
		AddNode("a", increment).
		AddEdge("a", END).
		SetEntry("a")

	compiled, err := graph.Compile()
	require.NoError(t, err)

	graph.AddNode("b", increment).AddEdge("b", END)

	assert.False(t, compiled.HasNode("b"))
	assert.ElementsMatch(t, []string{"a"}, compiled.NodeIDs())
}

// TestCompiledGraph_Successors tests successor lookups.
func TestCompiledGraph_Successors(t *testing.T) {
	compiled, err := NewGraph[Counter]().
		AddNode("a", increment).
		AddNode("b", increment).
		AddEdge("a", "b").
		AddEdge("b", END).
		SetEntry("a").
		Compile()
	require.NoError(t, err)

	assert.Equal(t, []string{"b"}, compiled.Successors("a"))
	assert.Equal(t, []string{"a"}, compiled.Predecessors("b"))
}
