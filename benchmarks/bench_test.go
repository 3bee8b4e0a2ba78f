// Package benchmarks measures clinicgraph framework overhead.
package benchmarks

import (
	"context"
	"fmt"
	"testing"

	"github.com/goodhealth/clinicgraph/pkg/clinicgraph"
	"github.com/goodhealth/clinicgraph/pkg/clinicgraph/checkpoint"
)

// State for benchmarks.
type State struct {
	Value int
}

// noopNode does minimal work to measure framework overhead.
func noopNode(ctx clinicgraph.Context, s State) (State, error) {
	return s, nil
}

func nodeID(i int) string {
	return fmt.Sprintf("node-%d", i)
}

// buildLinearGraph builds an n-node linear graph.
func buildLinearGraph(n int) *clinicgraph.Graph[State] {
	graph := clinicgraph.NewGraph[State]()
	for i := 0; i < n; i++ {
		graph.AddNode(nodeID(i), noopNode)
	}
	for i := 0; i < n-1; i++ {
		graph.AddEdge(nodeID(i), nodeID(i+1))
	}
	graph.AddEdge(nodeID(n-1), clinicgraph.END)
	graph.SetEntry(nodeID(0))
	return graph
}

// compileLinearGraph builds and compiles an n-node linear graph.
func compileLinearGraph(b *testing.B, n int) *clinicgraph.CompiledGraph[State] {
	b.Helper()

	compiled, err := buildLinearGraph(n).Compile()
	if err != nil {
		b.Fatal(err)
	}
	return compiled
}

// BenchmarkBuildGraph_10 measures building a 10-node graph.
func BenchmarkBuildGraph_10(b *testing.B) {
	for i := 0; i < b.N; i++ {
		buildLinearGraph(10)
	}
}

// BenchmarkCompile_Linear_10 measures compiling a 10-node linear graph.
func BenchmarkCompile_Linear_10(b *testing.B) {
	graph := buildLinearGraph(10)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = graph.Compile()
	}
}

// BenchmarkRun_Linear measures per-node execution overhead.
func BenchmarkRun_Linear(b *testing.B) {
	for _, n := range []int{1, 5, 25} {
		b.Run(fmt.Sprintf("nodes_%d", n), func(b *testing.B) {
			compiled := compileLinearGraph(b, n)
			ctx := clinicgraph.NewContext(context.Background())
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := compiled.Run(ctx, State{}); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkRun_Conditional measures router dispatch overhead.
func BenchmarkRun_Conditional(b *testing.B) {
	router := func(ctx clinicgraph.Context, s State) string {
		return clinicgraph.END
	}
	compiled, err := clinicgraph.NewGraph[State]().
		AddNode("triage", noopNode).
		AddConditionalEdge("triage", router).
		SetEntry("triage").
		Compile()
	if err != nil {
		b.Fatal(err)
	}

	ctx := clinicgraph.NewContext(context.Background())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := compiled.Run(ctx, State{}); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkRun_WithCheckpointing measures checkpoint save overhead
// against the in-memory store.
func BenchmarkRun_WithCheckpointing(b *testing.B) {
	compiled := compileLinearGraph(b, 5)
	store := checkpoint.NewMemoryStore()
	defer store.Close()

	ctx := clinicgraph.NewContext(context.Background())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := compiled.Run(ctx, State{},
			clinicgraph.WithCheckpointing(store),
			clinicgraph.WithRunID(fmt.Sprintf("bench-%d", i)))
		if err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkCheckpointStore_Save measures raw store write throughput.
func BenchmarkCheckpointStore_Save(b *testing.B) {
	store := checkpoint.NewMemoryStore()
	defer store.Close()

	data := []byte(`{"value": 42}`)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := store.Save("bench", nodeID(i%10), data); err != nil {
			b.Fatal(err)
		}
	}
}
