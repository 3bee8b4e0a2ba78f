package clinic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/goodhealth/clinicgraph/pkg/clinicgraph"
	"github.com/goodhealth/clinicgraph/pkg/clinicgraph/checkpoint"
	"github.com/goodhealth/clinicgraph/pkg/clinicgraph/llm"
	"github.com/goodhealth/clinicgraph/pkg/clinicgraph/store"
)

// ErrNoProfile indicates no profile has been stored for the patient yet.
var ErrNoProfile = errors.New("no stored patient profile")

// Assistant is the clinic's conversational agent.
//
// Each Send runs the conversation graph once:
//
//	check-condition --(emergency)--> handle-emergency --> write-memory --> END
//	       \--------(regular)------> call-model -------/
//
// Conversation turns are checkpointed per thread, and patient profiles
// persist across threads in the profile store.
//
// Assistant is safe for concurrent use as long as distinct sessions use
// distinct thread IDs.
type Assistant struct {
	graph       *clinicgraph.CompiledGraph[State]
	model       llm.Client
	profiles    store.Store
	checkpoints checkpoint.Store
	logger      *slog.Logger
	clinicName  string
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithClinicName sets the clinic name used in the assistant's system prompt.
func WithClinicName(name string) Option {
	return func(a *Assistant) {
		a.clinicName = name
	}
}

// WithProfileStore sets the store holding patient profiles.
// Defaults to an in-memory store.
func WithProfileStore(s store.Store) Option {
	return func(a *Assistant) {
		a.profiles = s
	}
}

// WithCheckpointStore sets the store holding per-thread conversation
// checkpoints. Defaults to an in-memory store.
func WithCheckpointStore(s checkpoint.Store) Option {
	return func(a *Assistant) {
		a.checkpoints = s
	}
}

// WithLogger sets the logger for graph runs and node execution.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assistant) {
		a.logger = logger
	}
}

// New creates an Assistant backed by the given model client.
func New(model llm.Client, opts ...Option) (*Assistant, error) {
	if model == nil {
		return nil, errors.New("clinic: model client is required")
	}

	a := &Assistant{
		model:       model,
		profiles:    store.NewMemoryStore(),
		checkpoints: checkpoint.NewMemoryStore(),
		logger:      slog.Default(),
		clinicName:  DefaultClinicName,
	}
	for _, opt := range opts {
		opt(a)
	}

	graph := clinicgraph.NewGraph[State]().
		AddNode(nodeCheckCondition, a.checkCondition).
		AddNode(nodeHandleEmergency, a.handleEmergency).
		AddNode(nodeCallModel, a.callModel).
		AddNode(nodeWriteMemory, a.writeMemory).
		AddConditionalEdge(nodeCheckCondition, a.route).
		AddEdge(nodeHandleEmergency, nodeWriteMemory).
		AddEdge(nodeCallModel, nodeWriteMemory).
		AddEdge(nodeWriteMemory, clinicgraph.END).
		SetEntry(nodeCheckCondition)

	compiled, err := graph.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile conversation graph: %w", err)
	}
	a.graph = compiled

	return a, nil
}

// Send delivers one patient message and returns the assistant's reply.
// Prior turns for the session's thread are restored from the latest
// checkpoint, so consecutive Sends with the same thread ID continue one
// conversation.
func (a *Assistant) Send(ctx context.Context, session Session, text string) (string, error) {
	if session.ThreadID == "" {
		return "", errors.New("clinic: session thread ID is required")
	}
	if session.PatientID == "" {
		return "", errors.New("clinic: session patient ID is required")
	}

	state, err := a.restoreThread(session.ThreadID)
	if err != nil {
		return "", fmt.Errorf("restore conversation: %w", err)
	}

	state.PatientID = session.PatientID
	state.Decision = ""
	state.Messages = append(state.Messages, llm.Message{
		Role:    llm.RoleUser,
		Content: text,
	})

	gctx := clinicgraph.NewContext(ctx,
		clinicgraph.WithLogger(a.logger),
		clinicgraph.WithLLM(a.model),
		clinicgraph.WithCheckpointer(a.checkpoints),
		clinicgraph.WithContextRunID(session.ThreadID),
	)

	result, err := a.graph.Run(gctx, state,
		clinicgraph.WithCheckpointing(a.checkpoints),
		clinicgraph.WithRunID(session.ThreadID),
		clinicgraph.WithRunLogger(a.logger),
	)
	if err != nil {
		return "", fmt.Errorf("run conversation graph: %w", err)
	}

	reply, ok := lastMessage(result)
	if !ok || reply.Role == llm.RoleUser {
		return "", errors.New("clinic: graph produced no reply")
	}
	return reply.Content, nil
}

// History returns the conversation turns recorded for a thread,
// or an empty slice for a new thread.
func (a *Assistant) History(threadID string) ([]llm.Message, error) {
	state, err := a.restoreThread(threadID)
	if err != nil {
		return nil, err
	}
	return state.Messages, nil
}

// Profile returns the stored profile text for a patient.
// Returns ErrNoProfile when nothing has been stored yet.
func (a *Assistant) Profile(ctx context.Context, patientID string) (string, error) {
	text, found, err := a.loadProfile(ctx, patientID)
	if err != nil {
		return "", err
	}
	if !found {
		return "", ErrNoProfile
	}
	return text, nil
}

// Reset forgets a thread's conversation. The patient profile is kept.
func (a *Assistant) Reset(threadID string) error {
	return a.checkpoints.DeleteRun(threadID)
}

// Close releases the underlying stores.
func (a *Assistant) Close() error {
	return errors.Join(a.profiles.Close(), a.checkpoints.Close())
}

// restoreThread loads the latest checkpointed state for a thread.
// A thread with no checkpoints yields a zero state.
func (a *Assistant) restoreThread(threadID string) (State, error) {
	infos, err := a.checkpoints.List(threadID)
	if err != nil {
		return State{}, fmt.Errorf("list checkpoints: %w", err)
	}
	if len(infos) == 0 {
		return State{}, nil
	}

	latest := infos[len(infos)-1]
	data, err := a.checkpoints.Load(threadID, latest.NodeID)
	if err != nil {
		return State{}, fmt.Errorf("load checkpoint: %w", err)
	}

	cp, err := checkpoint.Unmarshal(data)
	if err != nil {
		return State{}, fmt.Errorf("decode checkpoint: %w", err)
	}

	var state State
	if err := json.Unmarshal(cp.State, &state); err != nil {
		return State{}, fmt.Errorf("decode conversation state: %w", err)
	}
	return state, nil
}
