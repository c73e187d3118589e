package service

import (
	"context"
	"taskServer/internal/models/task"
)

type TaskRepository interface {
	HealthCheck(context.Context) error
	Create(context.Context, task.Fields) task.Task
	Get(context.Context, int) (task.Task, bool)
	List(context.Context) []task.Task
	Update(context.Context, int, task.Patch) (task.Task, bool)
	Delete(context.Context, int) bool
	Search(context.Context, task.Filter) []task.Task
	Count(context.Context) int
	Clear(context.Context) int
}
