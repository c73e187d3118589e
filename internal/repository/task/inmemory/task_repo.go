package inmemory

import (
	"context"
	"strings"
	"sync"
	"taskServer/internal/models/task"
	"time"
)

// TaskStorage is a process-local task store. One lock guards the map, the
// insertion order and the id counter for the whole of every call.
type TaskStorage struct {
	storage map[int]*task.Task
	ids     []int
	nextID  int
	mtx     *sync.RWMutex
	now     func() time.Time
}

type Option func(*TaskStorage)

// WithClock replaces the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *TaskStorage) {
		s.now = now
	}
}

func NewTaskStorage(opts ...Option) *TaskStorage {
	s := &TaskStorage{
		storage: make(map[int]*task.Task),
		ids:     []int{},
		nextID:  1,
		mtx:     &sync.RWMutex{},
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HealthCheck always succeeds: the store has no external resources.
func (s *TaskStorage) HealthCheck(ctx context.Context) error {
	return nil
}

func (s *TaskStorage) Create(ctx context.Context, fields task.Fields) task.Task {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	status := fields.Status
	if status == "" {
		status = task.StatusTodo
	}

	now := s.now()
	created := task.Task{
		ID:          s.nextID,
		Title:       fields.Title,
		Description: fields.Description,
		Assignee:    fields.Assignee,
		DueDate:     fields.DueDate,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}.Clone()

	s.storage[created.ID] = &created
	s.ids = append(s.ids, created.ID)
	s.nextID++

	return created.Clone()
}

func (s *TaskStorage) Get(ctx context.Context, id int) (task.Task, bool) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	stored, ok := s.storage[id]
	if !ok {
		return task.Task{}, false
	}
	return stored.Clone(), true
}

// List returns every task in insertion order.
func (s *TaskStorage) List(ctx context.Context) []task.Task {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := make([]task.Task, 0, len(s.ids))
	for _, id := range s.ids {
		res = append(res, s.storage[id].Clone())
	}
	return res
}

// Update applies the present patch slots. An empty patch returns the task untouched.
func (s *TaskStorage) Update(ctx context.Context, id int, patch task.Patch) (task.Task, bool) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	stored, ok := s.storage[id]
	if !ok {
		return task.Task{}, false
	}
	if patch.IsEmpty() {
		return stored.Clone(), true
	}

	patch.Apply(stored)
	now := s.now()
	if now.Before(stored.CreatedAt) {
		now = stored.CreatedAt
	}
	stored.UpdatedAt = now

	return stored.Clone(), true
}

func (s *TaskStorage) Delete(ctx context.Context, id int) bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[id]; !ok {
		return false
	}
	delete(s.storage, id)
	for ind, val := range s.ids {
		if val == id {
			s.ids = append(s.ids[:ind], s.ids[ind+1:]...)
			break
		}
	}
	return true
}

// Search returns tasks matching every non-empty criterion, in List order.
func (s *TaskStorage) Search(ctx context.Context, filter task.Filter) []task.Task {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	assignee := strings.ToLower(filter.Assignee)
	title := strings.ToLower(filter.TitleContains)

	res := []task.Task{}
	for _, id := range s.ids {
		t := s.storage[id]
		if assignee != "" {
			if t.Assignee == nil || !strings.Contains(strings.ToLower(*t.Assignee), assignee) {
				continue
			}
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if title != "" && !strings.Contains(strings.ToLower(t.Title), title) {
			continue
		}
		res = append(res, t.Clone())
	}
	return res
}

func (s *TaskStorage) Count(ctx context.Context) int {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return len(s.storage)
}

// Clear drops every task and restarts ids at 1, so ids issued after a clear
// start a fresh namespace and may repeat ids from before it.
func (s *TaskStorage) Clear(ctx context.Context) int {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	removed := len(s.storage)
	s.storage = make(map[int]*task.Task)
	s.ids = []int{}
	s.nextID = 1
	return removed
}
