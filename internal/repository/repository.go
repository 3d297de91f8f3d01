package repository

import (
	"context"
	"errors"

	"todo-calendar/internal/models"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already exists")
)

// UserRepository menyimpan identitas user. Email selalu disimpan lowercase.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// TaskRepository menyimpan task. Setiap operasi dibatasi pada ownerID di
// level query, task milik user lain dilaporkan sebagai ErrNotFound.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	Get(ctx context.Context, ownerID, id int) (models.Task, error)
	Update(ctx context.Context, task models.Task) error
	Delete(ctx context.Context, ownerID, id int) error
	List(ctx context.Context, ownerID int, filter models.TaskFilter) ([]models.Task, error)
}
