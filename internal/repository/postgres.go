package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"todo-calendar/internal/models"
)

const (
	uniqueViolation    = "23505"
	usernameConstraint = "users_username_key"
	emailConstraint    = "users_email_lower_key"
	taskColumns        = "id, user_id, title, description, start_date, end_date, completed"
)

// PostgresUserStore adalah UserRepository di atas tabel users.
type PostgresUserStore struct {
	db *sql.DB
}

func NewPostgresUserStore(db *sql.DB) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

func (s *PostgresUserStore) Create(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(user.Email)
	err := s.db.QueryRowContext(ctx,
		"INSERT INTO users (username, email, password) VALUES ($1, $2, $3) RETURNING id",
		user.Username, user.Email, user.PasswordHash,
	).Scan(&user.ID)
	if err != nil {
		// Unique violation dipetakan ke error duplikat sesuai constraint-nya
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			switch pqErr.Constraint {
			case usernameConstraint:
				return ErrDuplicateUsername
			case emailConstraint:
				return ErrDuplicateEmail
			}
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PostgresUserStore) GetByID(ctx context.Context, id int) (models.User, error) {
	return s.getOne(ctx, "SELECT id, username, email, password FROM users WHERE id = $1", id)
}

func (s *PostgresUserStore) GetByUsername(ctx context.Context, username string) (models.User, error) {
	return s.getOne(ctx, "SELECT id, username, email, password FROM users WHERE username = $1", username)
}

func (s *PostgresUserStore) getOne(ctx context.Context, query string, arg interface{}) (models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("select user: %w", err)
	}
	return u, nil
}

func (s *PostgresUserStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.exists(ctx, "SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)", username)
}

func (s *PostgresUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, "SELECT EXISTS (SELECT 1 FROM users WHERE lower(email) = lower($1))", email)
}

func (s *PostgresUserStore) exists(ctx context.Context, query string, arg interface{}) (bool, error) {
	var found bool
	if err := s.db.QueryRowContext(ctx, query, arg).Scan(&found); err != nil {
		return false, fmt.Errorf("check user: %w", err)
	}
	return found, nil
}

// PostgresTaskStore adalah TaskRepository di atas tabel tasks.
type PostgresTaskStore struct {
	db *sql.DB
}

func NewPostgresTaskStore(db *sql.DB) *PostgresTaskStore {
	return &PostgresTaskStore{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row rowScanner) (models.Task, error) {
	var (
		t    models.Task
		desc sql.NullString
	)
	if err := row.Scan(&t.ID, &t.UserID, &t.Title, &desc, &t.StartDate, &t.EndDate, &t.Completed); err != nil {
		return models.Task{}, err
	}
	if desc.Valid {
		t.Description = &desc.String
	}
	t.StartDate = t.StartDate.UTC()
	t.EndDate = t.EndDate.UTC()
	return t, nil
}

func (s *PostgresTaskStore) Create(ctx context.Context, task *models.Task) error {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO tasks (user_id, title, description, start_date, end_date, completed)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		task.UserID, task.Title, task.Description, task.StartDate, task.EndDate, task.Completed,
	).Scan(&task.ID)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (s *PostgresTaskStore) Get(ctx context.Context, ownerID, id int) (models.Task, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE id = $1 AND user_id = $2", id, ownerID)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, ErrNotFound
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("select task: %w", err)
	}
	return t, nil
}

func (s *PostgresTaskStore) Update(ctx context.Context, task models.Task) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks
		SET title = $1, description = $2, start_date = $3, end_date = $4, completed = $5, updated_at = now()
		WHERE id = $6 AND user_id = $7`,
		task.Title, task.Description, task.StartDate, task.EndDate, task.Completed, task.ID, task.UserID,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return expectOneRow(res)
}

func (s *PostgresTaskStore) Delete(ctx context.Context, ownerID, id int) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = $1 AND user_id = $2", id, ownerID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresTaskStore) List(ctx context.Context, ownerID int, filter models.TaskFilter) ([]models.Task, error) {
	query := "SELECT " + taskColumns + " FROM tasks WHERE user_id = $1"
	args := []interface{}{ownerID}
	for _, part := range []struct {
		field string
		value *int
	}{
		{"YEAR", filter.Year},
		{"MONTH", filter.Month},
		{"DAY", filter.Day},
	} {
		if part.value == nil {
			continue
		}
		args = append(args, *part.value)
		query += fmt.Sprintf(" AND EXTRACT(%s FROM start_date AT TIME ZONE 'UTC') = $%d", part.field, len(args))
	}
	query += " ORDER BY start_date, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}
