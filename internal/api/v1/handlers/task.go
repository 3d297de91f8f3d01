package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"todo-calendar/internal/calendar"
	"todo-calendar/internal/config"
	"todo-calendar/internal/models"
	"todo-calendar/internal/repository"
	"todo-calendar/pkg/logger"
)

const msgInvalidInteger = "A valid integer is required."

// Nama event yang dikirim ke klien WebSocket.
const (
	EventTaskCreated = "task.created"
	EventTaskUpdated = "task.updated"
	EventTaskDeleted = "task.deleted"
)

// TaskEvent adalah payload yang dikirim hub ke klien pemilik task.
type TaskEvent struct {
	Event string      `json:"event"`
	Task  models.Task `json:"task"`
}

func publishTask(event string, task models.Task) {
	if config.Hub == nil {
		return
	}
	config.Hub.Publish(task.UserID, TaskEvent{Event: event, Task: task})
}

// taskFilterFromQuery membaca year, month dan day. Parameter kosong diabaikan.
func taskFilterFromQuery(c *fiber.Ctx) (models.TaskFilter, *calendar.FieldError) {
	var filter models.TaskFilter
	params := []struct {
		name string
		dst  **int
	}{
		{"year", &filter.Year},
		{"month", &filter.Month},
		{"day", &filter.Day},
	}
	for _, p := range params {
		raw := strings.TrimSpace(c.Query(p.name))
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return filter, &calendar.FieldError{Field: p.name, Message: msgInvalidInteger}
		}
		*p.dst = &v
	}
	return filter, nil
}

// loadTask mengambil task milik user saat ini berdasarkan parameter id.
// ok bernilai false jika respons sudah ditulis.
func loadTask(c *fiber.Ctx) (task models.Task, ok bool, err error) {
	id, perr := strconv.Atoi(c.Params("id"))
	if perr != nil {
		return task, false, notFound(c)
	}
	task, err = config.Tasks.Get(c.UserContext(), currentUserID(c), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return task, false, notFound(c)
		}
		logger.ErrorLogger.Error("Error loading task", zap.Int("task_id", id), zap.Error(err))
		return task, false, serverError(c)
	}
	return task, true, nil
}

// ListTasks mengembalikan task milik user, bisa difilter dengan year/month/day.
func ListTasks(c *fiber.Ctx) error {
	userID := currentUserID(c)

	filter, ferr := taskFilterFromQuery(c)
	if ferr != nil {
		return fieldError(c, ferr.Field, ferr.Message)
	}

	tasks, err := config.Tasks.List(c.UserContext(), userID, filter)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching tasks", zap.Int("user_id", userID), zap.Error(err))
		return serverError(c)
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return c.JSON(tasks)
}

// CreateTask membuat task baru untuk user saat ini.
func CreateTask(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var in calendar.TaskInput
	if err := parseBody(c, &in); err != nil {
		logger.ErrorLogger.Error("Bad request in create task", zap.Error(err))
		return bodyError(c, err)
	}

	task, ferr := calendar.ApplyTask(models.Task{UserID: userID}, in, calendar.ModeCreate)
	if ferr != nil {
		logger.AuditLogger.Warn("Validation error in create task", zap.String("field", ferr.Field))
		return fieldError(c, ferr.Field, ferr.Message)
	}

	if err := config.Tasks.Create(c.UserContext(), &task); err != nil {
		logger.ErrorLogger.Error("Error creating task", zap.Error(err))
		return serverError(c)
	}

	logger.AuditLogger.Info("Task created", zap.Int("task_id", task.ID), zap.Int("user_id", userID))
	publishTask(EventTaskCreated, task)
	return c.Status(fiber.StatusCreated).JSON(task)
}

// GetTask mengembalikan satu task milik user saat ini.
func GetTask(c *fiber.Ctx) error {
	task, ok, err := loadTask(c)
	if !ok {
		return err
	}
	return c.JSON(task)
}

// ReplaceTask menangani PUT: title, start_date dan end_date wajib ada.
func ReplaceTask(c *fiber.Ctx) error {
	return updateTask(c, calendar.ModeReplace)
}

// PatchTask menangani PATCH: hanya field yang dikirim yang diubah.
func PatchTask(c *fiber.Ctx) error {
	return updateTask(c, calendar.ModePatch)
}

func updateTask(c *fiber.Ctx, mode calendar.Mode) error {
	current, ok, err := loadTask(c)
	if !ok {
		return err
	}

	var in calendar.TaskInput
	if err := parseBody(c, &in); err != nil {
		logger.ErrorLogger.Error("Bad request in update task", zap.Error(err))
		return bodyError(c, err)
	}

	task, ferr := calendar.ApplyTask(current, in, mode)
	if ferr != nil {
		logger.AuditLogger.Warn("Validation error in update task", zap.String("field", ferr.Field))
		return fieldError(c, ferr.Field, ferr.Message)
	}

	if err := config.Tasks.Update(c.UserContext(), task); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c)
		}
		logger.ErrorLogger.Error("Error updating task", zap.Int("task_id", task.ID), zap.Error(err))
		return serverError(c)
	}

	logger.AuditLogger.Info("Task updated", zap.Int("task_id", task.ID), zap.Int("user_id", task.UserID))
	publishTask(EventTaskUpdated, task)
	return c.JSON(task)
}

// DeleteTask menghapus task milik user saat ini dan menjawab 204.
func DeleteTask(c *fiber.Ctx) error {
	task, ok, err := loadTask(c)
	if !ok {
		return err
	}

	if err := config.Tasks.Delete(c.UserContext(), task.UserID, task.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c)
		}
		logger.ErrorLogger.Error("Error deleting task", zap.Int("task_id", task.ID), zap.Error(err))
		return serverError(c)
	}

	logger.AuditLogger.Info("Task deleted", zap.Int("task_id", task.ID), zap.Int("user_id", task.UserID))
	publishTask(EventTaskDeleted, task)
	return c.SendStatus(fiber.StatusNoContent)
}

// TaskStatuses mengembalikan ringkasan completed/not_completed per hari
// dari semua task milik user saat ini.
func TaskStatuses(c *fiber.Ctx) error {
	userID := currentUserID(c)

	tasks, err := config.Tasks.List(c.UserContext(), userID, models.TaskFilter{})
	if err != nil {
		logger.ErrorLogger.Error("Error fetching tasks for statuses", zap.Int("user_id", userID), zap.Error(err))
		return serverError(c)
	}
	return c.JSON(calendar.Statuses(tasks))
}
