// Package delivery extracts correlation fields from webhook payloads.
//
// Payloads are treated as opaque: the compute service owns their shape, and
// the extraction paths are configurable JMESPath expressions so a payload
// format change is a config change, not a code change.
package delivery

import (
	"encoding/json"
	"fmt"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
)

// Paths holds the JMESPath expressions for each correlation field. Empty
// expressions disable extraction of that field.
type Paths struct {
	JobID    string
	Event    string
	Status   string
	Workflow string
	Content  string
	Error    string
}

// Fields is the result of extracting correlation data from one payload.
// Nil pointers mean the field was absent or the payload was unparseable.
type Fields struct {
	JobID    *string
	Event    *string
	Status   *string
	Workflow *string
	Content  *string
	Error    *string
}

// Extractor evaluates compiled JMESPath expressions against raw payloads.
type Extractor struct {
	jobID    jmespath.JMESPath
	event    jmespath.JMESPath
	status   jmespath.JMESPath
	workflow jmespath.JMESPath
	content  jmespath.JMESPath
	errMsg   jmespath.JMESPath
}

// NewExtractor compiles the configured paths. Invalid expressions fail here,
// at startup, rather than on the first delivery.
func NewExtractor(paths Paths) (*Extractor, error) {
	e := &Extractor{}
	for _, p := range []struct {
		name string
		expr string
		dst  *jmespath.JMESPath
	}{
		{"job_id", paths.JobID, &e.jobID},
		{"event", paths.Event, &e.event},
		{"status", paths.Status, &e.status},
		{"workflow", paths.Workflow, &e.workflow},
		{"content", paths.Content, &e.content},
		{"error", paths.Error, &e.errMsg},
	} {
		if strings.TrimSpace(p.expr) == "" {
			continue
		}
		compiled, err := jmespath.Compile(p.expr)
		if err != nil {
			return nil, fmt.Errorf("compile %s path %q: %w", p.name, p.expr, err)
		}
		*p.dst = compiled
	}
	return e, nil
}

// Extract pulls correlation fields from payload. An unparseable payload
// yields empty Fields and ok=false; extraction failures are a business
// outcome for the caller (the delivery becomes orphaned), not an error.
func (e *Extractor) Extract(payload []byte) (Fields, bool) {
	var data any
	if err := json.Unmarshal(payload, &data); err != nil {
		return Fields{}, false
	}

	return Fields{
		JobID:    e.search(e.jobID, data),
		Event:    e.search(e.event, data),
		Status:   e.search(e.status, data),
		Workflow: e.search(e.workflow, data),
		Content:  e.search(e.content, data),
		Error:    e.search(e.errMsg, data),
	}, true
}

func (e *Extractor) search(expr jmespath.JMESPath, data any) *string {
	if expr == nil {
		return nil
	}
	result, err := expr.Search(data)
	if err != nil || result == nil {
		return nil
	}
	s, ok := result.(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}
