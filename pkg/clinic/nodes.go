package clinic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goodhealth/clinicgraph/pkg/clinicgraph"
	"github.com/goodhealth/clinicgraph/pkg/clinicgraph/llm"
	"github.com/goodhealth/clinicgraph/pkg/clinicgraph/store"
)

// Profile storage location: namespace ("patient_interactions", patientID),
// key "patient_data_memory". The profile text lives under the same key
// inside the value map.
const (
	profileNamespace = "patient_interactions"
	profileKey       = "patient_data_memory"
)

// checkCondition is the triage node. It records an emergency decision
// when the latest message contains the emergency keyword, otherwise the
// regular route. Only the newest message is inspected: an earlier
// emergency does not re-trigger the route on later turns.
func (a *Assistant) checkCondition(ctx clinicgraph.Context, s State) (State, error) {
	s.Decision = decisionRegular
	if msg, ok := lastMessage(s); ok {
		if strings.Contains(strings.ToLower(msg.Content), emergencyKeyword) {
			s.Decision = decisionEmergency
		}
	}
	ctx.Logger().Debug("triage decision", "decision", s.Decision)
	return s, nil
}

// route reads the triage decision and names the next node.
func (a *Assistant) route(ctx clinicgraph.Context, s State) string {
	if s.Decision == decisionEmergency {
		return nodeHandleEmergency
	}
	return nodeCallModel
}

// handleEmergency appends the fixed urgent-instructions message.
// The model is never consulted on this path.
func (a *Assistant) handleEmergency(ctx clinicgraph.Context, s State) (State, error) {
	s.Messages = append(s.Messages, llm.Message{
		Role:    llm.RoleSystem,
		Content: emergencyResponse,
	})
	return s, nil
}

// callModel generates the assistant's reply, grounding it in the
// patient's stored profile.
func (a *Assistant) callModel(ctx clinicgraph.Context, s State) (State, error) {
	history, found, err := a.loadProfile(ctx, s.PatientID)
	if err != nil {
		return s, fmt.Errorf("load patient profile: %w", err)
	}
	if !found {
		history = noProfileFound
	}

	resp, err := a.model.Complete(ctx, llm.CompletionRequest{
		SystemPrompt: fmt.Sprintf(modelSystemMessage, a.clinicName, history),
		Messages:     s.Messages,
	})
	if err != nil {
		return s, fmt.Errorf("generate reply: %w", err)
	}
	s.Usage.Add(resp.Usage)

	s.Messages = append(s.Messages, llm.Message{
		Role:    llm.RoleAssistant,
		Content: resp.Content,
	})
	return s, nil
}

// writeMemory folds the conversation into an updated patient profile and
// stores it. Both routes pass through here, so emergencies are recorded
// in the profile too.
func (a *Assistant) writeMemory(ctx clinicgraph.Context, s State) (State, error) {
	history, found, err := a.loadProfile(ctx, s.PatientID)
	if err != nil {
		return s, fmt.Errorf("load patient profile: %w", err)
	}
	if !found {
		history = noHistoryFound
	}

	resp, err := a.model.Complete(ctx, llm.CompletionRequest{
		SystemPrompt: fmt.Sprintf(updateProfileInstruction, history),
		Messages:     s.Messages,
	})
	if err != nil {
		return s, fmt.Errorf("update patient profile: %w", err)
	}
	s.Usage.Add(resp.Usage)

	err = a.profiles.Put(ctx, []string{profileNamespace, s.PatientID}, profileKey,
		map[string]any{profileKey: resp.Content})
	if err != nil {
		return s, fmt.Errorf("store patient profile: %w", err)
	}

	ctx.Logger().Debug("patient profile updated", "patient_id", s.PatientID)
	return s, nil
}

// loadProfile reads the stored profile text for a patient.
// A missing profile is a normal condition reported via found=false.
func (a *Assistant) loadProfile(ctx context.Context, patientID string) (text string, found bool, err error) {
	item, err := a.profiles.Get(ctx, []string{profileNamespace, patientID}, profileKey)
	if errors.Is(err, store.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	text, _ = item.Value[profileKey].(string)
	return text, true, nil
}
