package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktracker/domain/dto"
	"tasktracker/domain/errs"
)

func TestValidate_CreateTaskRequest(t *testing.T) {
	tests := []struct {
		name   string
		req    dto.CreateTaskRequest
		fields map[string]string
	}{
		{
			name: "valid",
			req:  dto.CreateTaskRequest{Title: "x", DueDate: "2026-10-20", Type: "daily_goal"},
		},
		{
			name:   "missing title",
			req:    dto.CreateTaskRequest{},
			fields: map[string]string{"title": "is required"},
		},
		{
			name: "several fields",
			req: dto.CreateTaskRequest{
				Title:    strings.Repeat("x", 201),
				DueDate:  "soon",
				Category: strings.Repeat("c", 51),
				Type:     "habit",
			},
			fields: map[string]string{
				"title":    "must be at most 200 characters",
				"due_date": "must be a date in YYYY-MM-DD format",
				"category": "must be at most 50 characters",
				"type":     "must be one of: task, daily_goal",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.req)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, errs.ErrValidation)
			var verr *errs.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.fields, verr.Fields)
		})
	}
}

func TestValidate_ErrorMessageIsStable(t *testing.T) {
	err := Validate(&dto.CreateTaskRequest{Type: "habit"})
	require.Error(t, err)
	assert.Equal(t, "title: is required; type: must be one of: task, daily_goal", err.Error())
}
