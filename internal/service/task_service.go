package service

import (
	"context"
	"fmt"
	"taskServer/internal/logger"
	"taskServer/internal/models/task"
	"time"

	"go.uber.org/zap"
)

const resourceTask = "Task"

// TaskService validates input and maps repository signals to business errors.
type TaskService struct {
	repo TaskRepository
}

func NewTaskService(repo TaskRepository) *TaskService {
	return &TaskService{
		repo: repo,
	}
}

func (s *TaskService) HealthCheck(ctx context.Context) error {
	if err := s.repo.HealthCheck(ctx); err != nil {
		return fmt.Errorf("service health check: %w", err)
	}
	return nil
}

func (s *TaskService) CreateTask(ctx context.Context, fields task.Fields) (task.Task, error) {
	if fields.Status == "" {
		fields.Status = task.StatusTodo
	}
	if err := Validate(fields); err != nil {
		logger.Info("Service: Rejected task creation", zap.String("reason", err.Error()))
		return task.Task{}, err
	}

	created := s.repo.Create(ctx, fields)
	logger.Info("Service: Task created",
		zap.Int("task_id", created.ID),
		zap.String("status", string(created.Status)))
	return created, nil
}

func (s *TaskService) GetTask(ctx context.Context, id int) (task.Task, error) {
	found, ok := s.repo.Get(ctx, id)
	if !ok {
		logger.Info("Service: Task not found", zap.Int("target_id", id))
		return task.Task{}, NewNotFound(resourceTask, id)
	}
	return found, nil
}

// ListTasks returns all tasks, or the tasks matching filter when any criterion is set.
func (s *TaskService) ListTasks(ctx context.Context, filter task.Filter) ([]task.Task, error) {
	if err := Validate(filter); err != nil {
		return nil, err
	}
	if filter.IsEmpty() {
		return s.repo.List(ctx), nil
	}
	return s.repo.Search(ctx, filter), nil
}

func (s *TaskService) UpdateTask(ctx context.Context, id int, patch task.Patch) (task.Task, error) {
	if err := Validate(patch); err != nil {
		logger.Info("Service: Rejected task update", zap.Int("target_id", id), zap.String("reason", err.Error()))
		return task.Task{}, err
	}

	updated, ok := s.repo.Update(ctx, id, patch)
	if !ok {
		logger.Info("Service: Task not found", zap.Int("target_id", id))
		return task.Task{}, NewNotFound(resourceTask, id)
	}
	logger.Info("Service: Task updated", zap.Int("task_id", id), zap.Bool("changed", !patch.IsEmpty()))
	return updated, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id int) error {
	if !s.repo.Delete(ctx, id) {
		logger.Info("Service: Task not found", zap.Int("target_id", id))
		return NewNotFound(resourceTask, id)
	}
	logger.Info("Service: Task deleted", zap.Int("task_id", id))
	return nil
}

func (s *TaskService) CountTasks(ctx context.Context) int {
	return s.repo.Count(ctx)
}

// ClearTasks removes every task and resets the id sequence.
func (s *TaskService) ClearTasks(ctx context.Context) int {
	removed := s.repo.Clear(ctx)
	logger.Warn("Service: All tasks cleared", zap.Int("deleted_count", removed))
	return removed
}

// OverdueTasks returns open tasks whose due date is before now.
func (s *TaskService) OverdueTasks(ctx context.Context, now time.Time) []task.Task {
	res := []task.Task{}
	for _, t := range s.repo.List(ctx) {
		if t.DueDate == nil || !t.DueDate.Before(now) {
			continue
		}
		if t.Status == task.StatusDone || t.Status == task.StatusCancelled {
			continue
		}
		res = append(res, t)
	}
	return res
}
