// Package clinic implements the Good Health Clinic conversational
// assistant: a small graph that routes each patient message to either an
// emergency handler or a model-backed reply, then folds the conversation
// into a per-patient profile.
package clinic

import (
	"github.com/goodhealth/clinicgraph/pkg/clinicgraph/llm"
)

// State is the conversation state flowing through the graph.
// It is JSON-serializable so every node execution can be checkpointed
// and a thread restored on the next turn.
type State struct {
	// PatientID identifies the patient whose profile the graph reads
	// and updates.
	PatientID string `json:"patient_id,omitempty"`

	// Messages holds the conversation turns, oldest first.
	Messages []llm.Message `json:"messages"`

	// Decision is the routing outcome recorded by the triage node.
	Decision string `json:"decision,omitempty"`

	// Usage accumulates token consumption across the turn's model calls.
	Usage llm.TokenUsage `json:"usage,omitzero"`
}

// Routing decisions recorded by the triage node.
const (
	decisionEmergency = "emergency_route"
	decisionRegular   = "regular_route"
)

// Node identifiers.
const (
	nodeCheckCondition  = "check-condition"
	nodeHandleEmergency = "handle-emergency"
	nodeCallModel       = "call-model"
	nodeWriteMemory     = "write-memory"
)

// Session identifies one conversation with one patient.
type Session struct {
	// ThreadID keys the conversation's checkpoints. Reusing a thread ID
	// continues the conversation.
	ThreadID string

	// PatientID keys the patient's stored profile. Multiple threads may
	// share a patient.
	PatientID string
}

// lastMessage returns the newest message and true, or false when the
// conversation is empty.
func lastMessage(s State) (llm.Message, bool) {
	if len(s.Messages) == 0 {
		return llm.Message{}, false
	}
	return s.Messages[len(s.Messages)-1], true
}
