package clinicgraph

import (
	"log/slog"

	"github.com/goodhealth/clinicgraph/pkg/clinicgraph/checkpoint"
	"github.com/goodhealth/clinicgraph/pkg/clinicgraph/observability"
)

// runConfig holds configuration for graph execution.
type runConfig struct {
	maxIterations int

	// Observability
	logger         *slog.Logger
	metrics        observability.MetricsRecorder
	spans          observability.SpanManager
	tracingEnabled bool

	// Checkpointing
	checkpointStore        checkpoint.Store
	runID                  string
	sequence               int
	checkpointFailureFatal bool
}

// defaultRunConfig returns the default execution configuration.
// Observability is no-op until explicitly enabled.
func defaultRunConfig() runConfig {
	return runConfig{
		maxIterations: 1000,
		metrics:       observability.NoopMetrics{},
		spans:         observability.NoopSpanManager{},
	}
}

// RunOption configures execution behavior.
type RunOption func(*runConfig)

// WithMaxIterations sets the maximum number of node executions.
// Default: 1000
//
// This prevents infinite loops from hanging forever. If a graph
// exceeds this limit, Run returns a MaxIterationsError.
//
// Example:
//
//	result, err := compiled.Run(ctx, state, clinicgraph.WithMaxIterations(100))
func WithMaxIterations(n int) RunOption {
	return func(c *runConfig) {
		if n > 0 {
			c.maxIterations = n
		}
	}
}

// WithCheckpointing enables checkpoint persistence to the given store.
// A run ID must also be provided via WithRunID, otherwise Run returns
// ErrRunIDRequired.
func WithCheckpointing(store checkpoint.Store) RunOption {
	return func(c *runConfig) {
		c.checkpointStore = store
	}
}

// WithRunID sets the run identifier used as the checkpoint key.
// Reusing a run ID overwrites that run's per-node checkpoints.
func WithRunID(id string) RunOption {
	return func(c *runConfig) {
		c.runID = id
	}
}

// WithCheckpointFailureFatal controls whether a failed checkpoint save
// aborts the run. By default checkpoint failures are logged and execution
// continues.
func WithCheckpointFailureFatal(fatal bool) RunOption {
	return func(c *runConfig) {
		c.checkpointFailureFatal = fatal
	}
}

// WithRunLogger sets the logger used for run-level log records.
// If not set, run-level logging is disabled (node contexts still carry
// the context logger).
func WithRunLogger(logger *slog.Logger) RunOption {
	return func(c *runConfig) {
		c.logger = logger
	}
}

// WithMetrics enables OpenTelemetry metrics for this run.
// The global OTel meter provider must be configured for metrics
// to be exported.
func WithMetrics(enabled bool) RunOption {
	return func(c *runConfig) {
		if enabled {
			c.metrics = observability.NewMetricsRecorder()
		} else {
			c.metrics = observability.NoopMetrics{}
		}
	}
}

// WithTracing enables OpenTelemetry spans for this run.
// The global OTel tracer provider must be configured for spans
// to be exported.
func WithTracing(enabled bool) RunOption {
	return func(c *runConfig) {
		c.tracingEnabled = enabled
		if enabled {
			c.spans = observability.NewSpanManager()
		} else {
			c.spans = observability.NoopSpanManager{}
		}
	}
}

// resumeConfig holds configuration for Resume and ResumeFrom.
type resumeConfig struct {
	stateOverride func(any) any
	validateState func(any) error
	replayNode    bool
}

// ResumeOption configures resume behavior.
type ResumeOption func(*resumeConfig)

// WithStateOverride transforms the restored state before execution continues.
// The function receives and must return the state type of the graph.
func WithStateOverride(fn func(any) any) ResumeOption {
	return func(c *resumeConfig) {
		c.stateOverride = fn
	}
}

// WithStateValidation validates the restored state before execution continues.
// A non-nil error aborts the resume.
func WithStateValidation(fn func(any) error) ResumeOption {
	return func(c *resumeConfig) {
		c.validateState = fn
	}
}

// WithReplayNode re-executes the checkpointed node instead of continuing
// from its successor. Useful when the checkpointed node's effects were lost.
func WithReplayNode() ResumeOption {
	return func(c *resumeConfig) {
		c.replayNode = true
	}
}
