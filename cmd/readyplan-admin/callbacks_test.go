package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/readyplan/ready-api/internal/domain/model"
	"github.com/stretchr/testify/require"
)

func TestRenderCallbackTable(t *testing.T) {
	jobID := "wf-ext-1"
	event := "job.completed"
	rows := []*model.CallbackDelivery{
		{
			ID:             "d-1",
			CallbackID:     "wf-ext-1:job.completed",
			SignatureValid: true,
			ExternalJobID:  &jobID,
			EventType:      &event,
			CreatedAt:      time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		},
		{
			ID:             "d-2",
			CallbackID:     "forged-1",
			SignatureValid: false,
			CreatedAt:      time.Date(2026, 3, 14, 9, 31, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, renderCallbackTable(&buf, rows))

	out := buf.String()
	require.Contains(t, out, "wf-ext-1:job.completed")
	require.Contains(t, out, "job.completed")
	require.Contains(t, out, "false")
	require.Contains(t, out, "2 deliveries")
}

func TestListCallbackOptionsParsing(t *testing.T) {
	opts, err := parseListCallbackFlags([]string{
		"-valid", "false",
		"-since", "2026-03-01T00:00:00Z",
		"-limit", "10",
	})
	require.NoError(t, err)

	listOpts, err := opts.toListOptions()
	require.NoError(t, err)
	require.NotNil(t, listOpts.SignatureValid)
	require.False(t, *listOpts.SignatureValid)
	require.Equal(t, 10, listOpts.Limit)
	require.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), listOpts.Since.UTC())
}

func TestListCallbackOptionsRejectsBadValid(t *testing.T) {
	opts, err := parseListCallbackFlags([]string{"-valid", "maybe"})
	require.NoError(t, err)

	_, err = opts.toListOptions()
	require.Error(t, err)
}

func TestShowCallbackFlagsRequireID(t *testing.T) {
	_, err := parseShowCallbackFlags(nil)
	require.Error(t, err)
}
