package checkpoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNew tests checkpoint construction defaults.
func TestNew(t *testing.T) {
	cp := New("run-1", "triage", 3, []byte(`{"v":1}`), "respond")

	assert.Equal(t, Version, cp.Version)
	assert.Equal(t, "run-1", cp.RunID)
	assert.Equal(t, "triage", cp.NodeID)
	assert.Equal(t, 3, cp.Sequence)
	assert.Equal(t, "respond", cp.NextNode)
	assert.Equal(t, 1, cp.Attempt)
	assert.Empty(t, cp.PrevNodeID)
	assert.False(t, cp.Timestamp.IsZero())
}

// TestCheckpoint_Builders tests the WithAttempt and WithPrevNode chain.
func TestCheckpoint_Builders(t *testing.T) {
	cp := New("run-1", "b", 2, []byte("{}"), "c").
		WithAttempt(3).
		WithPrevNode("a")

	assert.Equal(t, 3, cp.Attempt)
	assert.Equal(t, "a", cp.PrevNodeID)
}

// TestCheckpoint_MarshalRoundTrip tests the wire format.
func TestCheckpoint_MarshalRoundTrip(t *testing.T) {
	cp := New("run-1", "triage", 1, []byte(`{"value":42}`), "respond").
		WithPrevNode("start")

	data, err := cp.Marshal()
	require.NoError(t, err)

	restored, err := Unmarshal(data)
	require.NoError(t, err)

	assert.Equal(t, cp.RunID, restored.RunID)
	assert.Equal(t, cp.NodeID, restored.NodeID)
	assert.Equal(t, cp.Sequence, restored.Sequence)
	assert.Equal(t, cp.NextNode, restored.NextNode)
	assert.Equal(t, cp.PrevNodeID, restored.PrevNodeID)
	assert.JSONEq(t, `{"value":42}`, string(restored.State))
}

// TestUnmarshal_Invalid tests malformed input.
func TestUnmarshal_Invalid(t *testing.T) {
	_, err := Unmarshal([]byte("not json"))
	assert.Error(t, err)
}
