package handlers

import (
	"context"
	"taskServer/internal/models/task"
)

type Service interface {
	HealthCheck(context.Context) error
	CreateTask(context.Context, task.Fields) (task.Task, error)
	GetTask(context.Context, int) (task.Task, error)
	ListTasks(context.Context, task.Filter) ([]task.Task, error)
	UpdateTask(context.Context, int, task.Patch) (task.Task, error)
	DeleteTask(context.Context, int) error
	CountTasks(context.Context) int
	ClearTasks(context.Context) int
}
