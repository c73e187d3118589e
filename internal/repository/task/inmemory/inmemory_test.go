package inmemory_test

import (
	"context"
	"fmt"
	"sync"
	"taskServer/internal/models/task"
	"taskServer/internal/repository/task/inmemory"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances by one second on every call.
type fakeClock struct {
	mu  sync.Mutex
	cur time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{cur: time.Date(2025, 1, 21, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = c.cur.Add(time.Second)
	return c.cur
}

func newStorage() *inmemory.TaskStorage {
	return inmemory.NewTaskStorage(inmemory.WithClock(newFakeClock().Now))
}

func strPtr(s string) *string { return &s }

func TestTaskStorage_New(t *testing.T) {
	storage := inmemory.NewTaskStorage()
	assert.NotNil(t, storage)
	assert.Equal(t, 0, storage.Count(context.Background()))
}

func TestTaskStorage_HealthCheck(t *testing.T) {
	storage := inmemory.NewTaskStorage()
	assert.NoError(t, storage.HealthCheck(context.Background()))
}

func TestTaskStorage_Create(t *testing.T) {
	ctx := context.Background()
	storage := newStorage()

	created := storage.Create(ctx, task.NewFields("Test Task",
		task.WithDescription("Test Description"),
		task.WithAssignee("dev@example.com"),
	))

	assert.Equal(t, 1, created.ID)
	assert.Equal(t, task.StatusTodo, created.Status)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	require.NotNil(t, created.Description)
	assert.Equal(t, "Test Description", *created.Description)
	assert.Nil(t, created.DueDate)

	retrieved, ok := storage.Get(ctx, created.ID)
	require.True(t, ok)
	assert.Equal(t, created, retrieved)
}

func TestTaskStorage_Create_EmptyStatusDefaultsToTodo(t *testing.T) {
	storage := newStorage()
	created := storage.Create(context.Background(), task.Fields{Title: "no status"})
	assert.Equal(t, task.StatusTodo, created.Status)
}

func TestTaskStorage_Create_IDsStrictlyIncreasing(t *testing.T) {
	ctx := context.Background()
	storage := newStorage()

	prev := 0
	for i := 0; i < 20; i++ {
		created := storage.Create(ctx, task.NewFields(fmt.Sprintf("task %d", i)))
		assert.Greater(t, created.ID, prev)
		prev = created.ID
	}
	assert.Equal(t, 20, prev)
}

func TestTaskStorage_Create_IDsNotReusedAfterDelete(t *testing.T) {
	ctx := context.Background()
	storage := newStorage()

	first := storage.Create(ctx, task.NewFields("first"))
	second := storage.Create(ctx, task.NewFields("second"))
	require.True(t, storage.Delete(ctx, second.ID))

	third := storage.Create(ctx, task.NewFields("third"))
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 3, third.ID)
}

func TestTaskStorage_Get(t *testing.T) {
	ctx := context.Background()
	storage := newStorage()

	created := storage.Create(ctx, task.NewFields("Test Get Task", task.WithStatus(task.StatusInProgress)))

	retrieved, ok := storage.Get(ctx, created.ID)
	require.True(t, ok)
	assert.Equal(t, "Test Get Task", retrieved.Title)
	assert.Equal(t, task.StatusInProgress, retrieved.Status)

	_, ok = storage.Get(ctx, 999)
	assert.False(t, ok)
}

func TestTaskStorage_Get_ReturnsCopy(t *testing.T) {
	ctx := context.Background()
	storage := newStorage()

	created := storage.Create(ctx, task.NewFields("Original", task.WithAssignee("a@x.com")))
	created.Title = "mutated"
	*created.Assignee = "mutated@x.com"

	retrieved, ok := storage.Get(ctx, created.ID)
	require.True(t, ok)
	assert.Equal(t, "Original", retrieved.Title)
	assert.Equal(t, "a@x.com", *retrieved.Assignee)
}

func TestTaskStorage_List_InsertionOrder(t *testing.T) {
	ctx := context.Background()
	storage := newStorage()

	for _, title := range []string{"a", "b", "c", "d"} {
		storage.Create(ctx, task.NewFields(title))
	}
	require.True(t, storage.Delete(ctx, 2))

	tasks := storage.List(ctx)
	require.Len(t, tasks, 3)
	assert.Equal(t, []int{1, 3, 4}, []int{tasks[0].ID, tasks[1].ID, tasks[2].ID})
}

func TestTaskStorage_List_Empty(t *testing.T) {
	tasks := newStorage().List(context.Background())
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestTaskStorage_Update(t *testing.T) {
	ctx := context.Background()
	storage := newStorage()
	due := time.Date(2025, 1, 30, 23, 59, 59, 0, time.UTC)

	created := storage.Create(ctx, task.NewFields("Original Title",
		task.WithDescription("Original Description"),
		task.WithAssignee("dev@example.com"),
		task.WithDueDate(due),
	))

	t.Run("status only", func(t *testing.T) {
		done := task.StatusDone
		updated, ok := storage.Update(ctx, created.ID, task.Patch{Status: &done})
		require.True(t, ok)

		assert.Equal(t, task.StatusDone, updated.Status)
		assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
		assert.Equal(t, created.CreatedAt, updated.CreatedAt)
		assert.Equal(t, created.Title, updated.Title)
		assert.Equal(t, created.Description, updated.Description)
		assert.Equal(t, created.Assignee, updated.Assignee)
		assert.Equal(t, created.DueDate, updated.DueDate)
	})

	t.Run("empty patch leaves task unchanged", func(t *testing.T) {
		before, ok := storage.Get(ctx, created.ID)
		require.True(t, ok)

		after, ok := storage.Update(ctx, created.ID, task.Patch{})
		require.True(t, ok)
		assert.Equal(t, before, after)

		stored, _ := storage.Get(ctx, created.ID)
		assert.Equal(t, before, stored)
	})

	t.Run("clear optional fields", func(t *testing.T) {
		updated, ok := storage.Update(ctx, created.ID, task.Patch{
			Description: task.Clear[string](),
			DueDate:     task.Clear[time.Time](),
		})
		require.True(t, ok)
		assert.Nil(t, updated.Description)
		assert.Nil(t, updated.DueDate)
		require.NotNil(t, updated.Assignee)
		assert.Equal(t, "dev@example.com", *updated.Assignee)
	})

	t.Run("backward status transition is allowed", func(t *testing.T) {
		todo := task.StatusTodo
		updated, ok := storage.Update(ctx, created.ID, task.Patch{Status: &todo})
		require.True(t, ok)
		assert.Equal(t, task.StatusTodo, updated.Status)
	})

	t.Run("get returns latest update", func(t *testing.T) {
		updated, ok := storage.Update(ctx, created.ID, task.Patch{
			Title:    strPtr("New Title"),
			Assignee: task.Value("qa@example.com"),
		})
		require.True(t, ok)

		stored, ok := storage.Get(ctx, created.ID)
		require.True(t, ok)
		assert.Equal(t, updated, stored)
		assert.False(t, stored.CreatedAt.After(stored.UpdatedAt))
	})
}

func TestTaskStorage_Update_NotFound(t *testing.T) {
	ctx := context.Background()
	storage := newStorage()

	_, ok := storage.Update(ctx, 42, task.Patch{Title: strPtr("x")})
	assert.False(t, ok)
	assert.Equal(t, 0, storage.Count(ctx))
}

func TestTaskStorage_Delete(t *testing.T) {
	ctx := context.Background()
	storage := newStorage()

	created := storage.Create(ctx, task.NewFields("Task to delete"))

	assert.True(t, storage.Delete(ctx, created.ID))
	_, ok := storage.Get(ctx, created.ID)
	assert.False(t, ok)
	assert.False(t, storage.Delete(ctx, created.ID))
}

func TestTaskStorage_Search(t *testing.T) {
	ctx := context.Background()
	storage := newStorage()

	storage.Create(ctx, task.NewFields("Setup environment",
		task.WithAssignee("dev@example.com"), task.WithStatus(task.StatusDone)))
	storage.Create(ctx, task.NewFields("Implement server",
		task.WithAssignee("dev@example.com"), task.WithStatus(task.StatusInProgress)))
	storage.Create(ctx, task.NewFields("Write documentation",
		task.WithAssignee("tech-writer@example.com")))
	storage.Create(ctx, task.NewFields("Unassigned write-up"))

	tests := []struct {
		name     string
		filter   task.Filter
		expected []int
	}{
		{
			name:     "no criteria equals list",
			filter:   task.Filter{},
			expected: []int{1, 2, 3, 4},
		},
		{
			name:     "assignee case-insensitive substring",
			filter:   task.Filter{Assignee: "DEV"},
			expected: []int{1, 2},
		},
		{
			name:     "assignee skips unassigned tasks",
			filter:   task.Filter{Assignee: "example"},
			expected: []int{1, 2, 3},
		},
		{
			name:     "status exact",
			filter:   task.Filter{Status: task.StatusDone},
			expected: []int{1},
		},
		{
			name:     "title case-insensitive substring",
			filter:   task.Filter{TitleContains: "WRITE"},
			expected: []int{3, 4},
		},
		{
			name:     "criteria combine with AND",
			filter:   task.Filter{Assignee: "dev", Status: task.StatusInProgress},
			expected: []int{2},
		},
		{
			name:     "no match",
			filter:   task.Filter{Status: task.StatusCancelled},
			expected: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found := storage.Search(ctx, tt.filter)
			ids := make([]int, 0, len(found))
			for _, f := range found {
				ids = append(ids, f.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestTaskStorage_Clear(t *testing.T) {
	ctx := context.Background()
	storage := newStorage()

	for i := 0; i < 3; i++ {
		storage.Create(ctx, task.NewFields(fmt.Sprintf("task %d", i)))
	}
	storage.Delete(ctx, 3)

	assert.Equal(t, 2, storage.Clear(ctx))
	assert.Equal(t, 0, storage.Count(ctx))
	assert.Empty(t, storage.List(ctx))

	next := storage.Create(ctx, task.NewFields("after clear"))
	assert.Equal(t, 1, next.ID)
	assert.Equal(t, 1, storage.Clear(ctx))
}

func TestTaskStorage_Scenario(t *testing.T) {
	ctx := context.Background()
	storage := newStorage()

	a := storage.Create(ctx, task.NewFields("Write docs", task.WithAssignee("a@x.com")))
	b := storage.Create(ctx, task.NewFields("Fix bug",
		task.WithAssignee("b@x.com"), task.WithStatus(task.StatusInProgress)))
	assert.Equal(t, 1, a.ID)
	assert.Equal(t, 2, b.ID)

	found := storage.Search(ctx, task.Filter{TitleContains: "write"})
	require.Len(t, found, 1)
	assert.Equal(t, a.ID, found[0].ID)

	done := task.StatusDone
	updated, ok := storage.Update(ctx, b.ID, task.Patch{Status: &done})
	require.True(t, ok)
	assert.Equal(t, task.StatusDone, updated.Status)
	assert.True(t, updated.UpdatedAt.After(b.UpdatedAt))

	assert.True(t, storage.Delete(ctx, a.ID))

	all := storage.List(ctx)
	require.Len(t, all, 1)
	assert.Equal(t, b.ID, all[0].ID)
	assert.Equal(t, 1, storage.Count(ctx))
}

func TestTaskStorage_Concurrent(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTaskStorage()

	const workers = 10
	const perWorker = 50

	var wg sync.WaitGroup
	ids := make(chan int, workers*perWorker)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				created := storage.Create(ctx, task.NewFields(fmt.Sprintf("w%d-%d", w, i)))
				ids <- created.ID
				storage.Search(ctx, task.Filter{TitleContains: "w"})
				done := task.StatusDone
				storage.Update(ctx, created.ID, task.Patch{Status: &done})
			}
		}(w)
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers*perWorker)
	assert.Equal(t, workers*perWorker, storage.Count(ctx))
}

func TestTaskStorage_Update_ClockMovedBackwards(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2025, 1, 21, 10, 0, 0, 0, time.UTC)
	times := []time.Time{createdAt, createdAt.Add(-time.Hour)}
	calls := 0
	storage := inmemory.NewTaskStorage(inmemory.WithClock(func() time.Time {
		now := times[calls]
		calls++
		return now
	}))

	created := storage.Create(ctx, task.NewFields("Skewed"))
	done := task.StatusDone
	updated, ok := storage.Update(ctx, created.ID, task.Patch{Status: &done})

	require.True(t, ok)
	assert.Equal(t, 2, calls)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, updated.CreatedAt, updated.UpdatedAt)
	assert.Equal(t, task.StatusDone, updated.Status)
}
