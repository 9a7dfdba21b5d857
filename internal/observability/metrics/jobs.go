package metrics

import (
	"time"

	obserrors "github.com/readyplan/ready-api/internal/observability/errors"
	"github.com/readyplan/ready-api/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultNoop    = "noop"
)

// JobMetric captures details about a generation job lifecycle event for
// metric emission.
type JobMetric struct {
	Workflow   string
	Transition string
	Result     string
	// Duration is how long the job spent generating, when known.
	Duration time.Duration
	Err      error
}

// EmitJobLifecycle emits standardised generation job lifecycle metrics.
func EmitJobLifecycle(sink statsd.Sink, in JobMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"workflow":   in.Workflow,
		"transition": in.Transition,
		"result":     in.Result,
	}

	if in.Err != nil && in.Result == ResultError {
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count("generation.job.transition", 1, tags)

	if in.Duration > 0 {
		sink.Timing("generation.job.duration", in.Duration, CloneTags(tags))
	}
}

// CloneTags creates a shallow copy of a tag map, filtering out empty keys.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
