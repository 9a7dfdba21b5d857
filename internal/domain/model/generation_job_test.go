package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobStatus_Valid(t *testing.T) {
	assert.True(t, JobStatusGenerating.Valid())
	assert.True(t, JobStatusCompleted.Valid())
	assert.True(t, JobStatusFailed.Valid())
	assert.True(t, JobStatusCancelled.Valid())
	assert.False(t, JobStatus("pending").Valid())
	assert.False(t, JobStatus("").Valid())
}

func TestJobStatus_Terminal(t *testing.T) {
	assert.False(t, JobStatusGenerating.Terminal())
	assert.True(t, JobStatusCompleted.Terminal())
	assert.True(t, JobStatusFailed.Terminal())
	assert.True(t, JobStatusCancelled.Terminal())
}

func TestJobStatus_Transition(t *testing.T) {
	tests := []struct {
		name    string
		from    JobStatus
		to      JobStatus
		wantErr bool
	}{
		{name: "generating to completed", from: JobStatusGenerating, to: JobStatusCompleted},
		{name: "generating to failed", from: JobStatusGenerating, to: JobStatusFailed},
		{name: "generating to cancelled", from: JobStatusGenerating, to: JobStatusCancelled},
		{name: "generating to generating", from: JobStatusGenerating, to: JobStatusGenerating, wantErr: true},
		{name: "completed to failed", from: JobStatusCompleted, to: JobStatusFailed, wantErr: true},
		{name: "completed to completed", from: JobStatusCompleted, to: JobStatusCompleted, wantErr: true},
		{name: "failed to completed", from: JobStatusFailed, to: JobStatusCompleted, wantErr: true},
		{name: "cancelled to completed", from: JobStatusCancelled, to: JobStatusCompleted, wantErr: true},
		{name: "generating to unknown", from: JobStatusGenerating, to: JobStatus("done"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.from.Transition(tt.to)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrIllegalTransition)
				// Status is unchanged on a rejected transition.
				assert.Equal(t, tt.from, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, got)
		})
	}
}

func TestJobStatus_UnmarshalText(t *testing.T) {
	var s JobStatus
	err := s.UnmarshalText([]byte(" Generating "))
	require.NoError(t, err)
	assert.Equal(t, JobStatusGenerating, s)

	err = s.UnmarshalText([]byte("running"))
	assert.Error(t, err)
}

func TestSubmitGenerationRequest_Validate(t *testing.T) {
	req := &SubmitGenerationRequest{ReportID: "r1", WorkflowName: "preparedness_report"}
	assert.NoError(t, req.Validate())

	req = &SubmitGenerationRequest{WorkflowName: "preparedness_report"}
	assert.Error(t, req.Validate())

	req = &SubmitGenerationRequest{ReportID: "r1", WorkflowName: "  "}
	assert.Error(t, req.Validate())
}

func TestCreateReportRequest_Validate(t *testing.T) {
	req := &CreateReportRequest{UserID: "u1", Title: "Flood plan"}
	assert.NoError(t, req.Validate())

	req = &CreateReportRequest{Title: "Flood plan"}
	assert.Error(t, req.Validate())

	req = &CreateReportRequest{UserID: "u1", Title: ""}
	assert.Error(t, req.Validate())
}
