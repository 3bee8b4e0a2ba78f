/*
Package clinicgraph provides graph-based orchestration for LLM workflows.

# Overview

clinicgraph is the execution engine behind the Good Health Clinic assistant.
It builds and runs directed graphs where nodes perform work and edges define
flow: a routing node inspects the conversation, control passes to a handler,
and a memory node persists what was learned.

The engine is inspired by LangGraph but built for Go with:
  - Type-safe generics for state management
  - Compile-time validation of graph structure
  - Conversation recovery via checkpointing
  - OpenTelemetry integration for observability

# Basic Usage

Create a graph with nodes and edges, then compile and run:

	type State struct {
	    Input  string
	    Output string
	}

	func process(ctx clinicgraph.Context, s State) (State, error) {
	    s.Output = "Processed: " + s.Input
	    return s, nil
	}

	func main() {
	    graph := clinicgraph.NewGraph[State]().
	        AddNode("process", process).
	        AddEdge("process", clinicgraph.END).
	        SetEntry("process")

	    compiled, err := graph.Compile()
	    if err != nil {
	        log.Fatal(err)
	    }

	    ctx := clinicgraph.NewContext(context.Background())
	    result, err := compiled.Run(ctx, State{Input: "hello"})
	    if err != nil {
	        log.Fatal(err)
	    }
	    fmt.Println(result.Output) // "Processed: hello"
	}

# Conditional Branching

Use conditional edges for decision points:

	graph.AddConditionalEdge("triage", func(ctx clinicgraph.Context, s State) string {
	    if s.Urgent {
	        return "handle-emergency"
	    }
	    return "call-model"
	})

The router function returns the ID of the next node to execute.
Invalid return values (referencing non-existent nodes) cause runtime errors.

# Checkpointing

Pass a checkpoint store and run ID to persist state after every node:

	result, err := compiled.Run(ctx, state,
	    clinicgraph.WithCheckpointing(store),
	    clinicgraph.WithRunID("thread-1"))

A later Run or Resume with the same run ID can restore the conversation.
Execution is sequential: one node at a time, one conversation per run.
*/
package clinicgraph
