package dto_test

import (
	"encoding/json"
	"taskServer/internal/handlers/dto"
	"taskServer/internal/models/task"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2025, 1, 30, 23, 59, 59, 0, time.UTC)

	tests := []struct {
		input      string
		want       time.Time
		wantOffset int
		wantErr    bool
	}{
		{input: "2025-01-30T23:59:59Z", want: want},
		{input: "2025-01-31T01:59:59+02:00", want: want, wantOffset: 2 * 60 * 60},
		{input: "2025-01-30T23:59:59", want: want},
		{input: "2025-01-30 23:59:59", want: want},
		{input: "2025-01-30", want: time.Date(2025, 1, 30, 0, 0, 0, 0, time.UTC)},
		{input: "30/01/2025", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := dto.ParseTimestamp(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got.Time), "got %s", got.Time)
			_, offset := got.Zone()
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

func TestTimestamp_KeepsOffset(t *testing.T) {
	ts, err := dto.ParseTimestamp("2025-01-30T23:59:59+02:00")
	require.NoError(t, err)

	data, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2025-01-30T23:59:59+02:00"`, string(data))
}

func TestCreateTaskRequest_ToFields(t *testing.T) {
	t.Run("absent status stays empty", func(t *testing.T) {
		var req dto.CreateTaskRequest
		require.NoError(t, json.Unmarshal([]byte(`{"title": "a"}`), &req))

		fields, nullField := req.ToFields()
		require.Empty(t, nullField)
		assert.Equal(t, "a", fields.Title)
		assert.Empty(t, fields.Status)
	})

	t.Run("status is carried verbatim", func(t *testing.T) {
		var req dto.CreateTaskRequest
		require.NoError(t, json.Unmarshal([]byte(`{"title": "a", "status": "done"}`), &req))

		fields, nullField := req.ToFields()
		require.Empty(t, nullField)
		assert.Equal(t, task.StatusDone, fields.Status)
	})

	t.Run("null status is rejected", func(t *testing.T) {
		var req dto.CreateTaskRequest
		require.NoError(t, json.Unmarshal([]byte(`{"title": "a", "status": null}`), &req))

		_, nullField := req.ToFields()
		assert.Equal(t, "status", nullField)
	})
}

func TestUpdateTaskRequest_ToPatch(t *testing.T) {
	t.Run("absent, null and present keys", func(t *testing.T) {
		var req dto.UpdateTaskRequest
		require.NoError(t, json.Unmarshal([]byte(`{"title": "New", "assignee": null, "due_date": "2025-02-01T10:00:00Z"}`), &req))

		patch, nullField := req.ToPatch()
		require.Empty(t, nullField)

		require.NotNil(t, patch.Title)
		assert.Equal(t, "New", *patch.Title)
		assert.False(t, patch.Description.Set)
		assert.True(t, patch.Assignee.Set)
		assert.Nil(t, patch.Assignee.Value)
		require.True(t, patch.DueDate.Set)
		assert.Equal(t, 2025, patch.DueDate.Value.Year())
		assert.Nil(t, patch.Status)
	})

	t.Run("empty body", func(t *testing.T) {
		var req dto.UpdateTaskRequest
		require.NoError(t, json.Unmarshal([]byte(`{}`), &req))

		patch, nullField := req.ToPatch()
		assert.Empty(t, nullField)
		assert.True(t, patch.IsEmpty())
	})

	t.Run("null status is rejected", func(t *testing.T) {
		var req dto.UpdateTaskRequest
		require.NoError(t, json.Unmarshal([]byte(`{"status": null}`), &req))

		_, nullField := req.ToPatch()
		assert.Equal(t, "status", nullField)
	})

	t.Run("status is carried verbatim", func(t *testing.T) {
		var req dto.UpdateTaskRequest
		require.NoError(t, json.Unmarshal([]byte(`{"status": "cancelled"}`), &req))

		patch, _ := req.ToPatch()
		require.NotNil(t, patch.Status)
		assert.Equal(t, task.StatusCancelled, *patch.Status)
	})
}

func TestFromTask_NullsSerialized(t *testing.T) {
	now := time.Date(2025, 1, 21, 10, 0, 0, 0, time.UTC)
	data, err := json.Marshal(dto.FromTask(task.Task{
		ID: 1, Title: "t", Status: task.StatusTodo, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"id": 1,
		"title": "t",
		"description": null,
		"assignee": null,
		"due_date": null,
		"status": "todo",
		"created_at": "2025-01-21T10:00:00Z",
		"updated_at": "2025-01-21T10:00:00Z"
	}`, string(data))
}
