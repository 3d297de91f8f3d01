package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-calendar/internal/models"
)

func intPtr(v int) *int { return &v }

func newUser(t *testing.T, users UserRepository, name string) models.User {
	t.Helper()
	u := models.User{Username: name, Email: name + "@Mail.ru", PasswordHash: "hash"}
	require.NoError(t, users.Create(context.Background(), &u))
	return u
}

// runStoreSuite menguji perilaku yang wajib sama di setiap pasangan UserRepository/TaskRepository.
func runStoreSuite(t *testing.T, users UserRepository, tasks TaskRepository) {
	ctx := context.Background()

	t.Run("users", func(t *testing.T) {
		u := newUser(t, users, "testacc")
		assert.NotZero(t, u.ID)
		assert.Equal(t, "testacc@mail.ru", u.Email)

		got, err := users.GetByUsername(ctx, "testacc")
		require.NoError(t, err)
		assert.Equal(t, u, got)

		got, err = users.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "hash", got.PasswordHash)

		_, err = users.GetByID(ctx, u.ID+1000)
		assert.ErrorIs(t, err, ErrNotFound)

		ok, err := users.EmailExists(ctx, "TESTACC@mail.ru")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = users.UsernameExists(ctx, "TestAcc")
		require.NoError(t, err)
		assert.False(t, ok)

		dup := models.User{Username: "testacc", Email: "other@mail.ru", PasswordHash: "x"}
		assert.ErrorIs(t, users.Create(ctx, &dup), ErrDuplicateUsername)

		dup = models.User{Username: "other", Email: "TestAcc@MAIL.RU", PasswordHash: "x"}
		assert.ErrorIs(t, users.Create(ctx, &dup), ErrDuplicateEmail)
	})

	t.Run("tasks", func(t *testing.T) {
		owner := newUser(t, users, "owner")
		stranger := newUser(t, users, "stranger")

		desc := "string1"
		task := models.Task{
			UserID:      owner.ID,
			Title:       "task1",
			Description: &desc,
			StartDate:   time.Date(2019, 8, 24, 14, 15, 22, 0, time.UTC),
			EndDate:     time.Date(2019, 10, 24, 14, 15, 22, 0, time.UTC),
		}
		require.NoError(t, tasks.Create(ctx, &task))
		require.NotZero(t, task.ID)

		got, err := tasks.Get(ctx, owner.ID, task.ID)
		require.NoError(t, err)
		assert.Equal(t, task, got)

		_, err = tasks.Get(ctx, stranger.ID, task.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		foreign := task
		foreign.UserID = stranger.ID
		foreign.Title = "hijacked"
		assert.ErrorIs(t, tasks.Update(ctx, foreign), ErrNotFound)
		assert.ErrorIs(t, tasks.Delete(ctx, stranger.ID, task.ID), ErrNotFound)

		got, err = tasks.Get(ctx, owner.ID, task.ID)
		require.NoError(t, err)
		assert.Equal(t, "task1", got.Title)

		got.Title = "renamed"
		got.Description = nil
		got.Completed = true
		require.NoError(t, tasks.Update(ctx, got))

		updated, err := tasks.Get(ctx, owner.ID, task.ID)
		require.NoError(t, err)
		assert.Equal(t, got, updated)

		require.NoError(t, tasks.Delete(ctx, owner.ID, task.ID))
		_, err = tasks.Get(ctx, owner.ID, task.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, tasks.Delete(ctx, owner.ID, task.ID), ErrNotFound)
	})

	t.Run("list", func(t *testing.T) {
		owner := newUser(t, users, "lister")
		other := newUser(t, users, "other_lister")

		for i, year := range []int{2014, 2010, 2013, 2012, 2011} {
			start := time.Date(year, time.Month(i+1), 10+i, 8, 0, 0, 0, time.UTC)
			task := models.Task{
				UserID:    owner.ID,
				Title:     fmt.Sprintf("task %d", year),
				StartDate: start,
				EndDate:   start.Add(time.Hour),
			}
			require.NoError(t, tasks.Create(ctx, &task))
		}
		extra := models.Task{
			UserID:    owner.ID,
			Title:     "second 2013",
			StartDate: time.Date(2013, 7, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2013, 7, 2, 0, 0, 0, 0, time.UTC),
		}
		require.NoError(t, tasks.Create(ctx, &extra))
		foreign := models.Task{
			UserID:    other.ID,
			Title:     "not mine",
			StartDate: time.Date(2013, 3, 12, 8, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2013, 3, 12, 9, 0, 0, 0, time.UTC),
		}
		require.NoError(t, tasks.Create(ctx, &foreign))

		all, err := tasks.List(ctx, owner.ID, models.TaskFilter{})
		require.NoError(t, err)
		require.Len(t, all, 6)
		for i := 1; i < len(all); i++ {
			assert.False(t, all[i].StartDate.Before(all[i-1].StartDate), "list must be ordered by start_date")
		}

		in2013, err := tasks.List(ctx, owner.ID, models.TaskFilter{Year: intPtr(2013)})
		require.NoError(t, err)
		require.Len(t, in2013, 2)
		assert.Equal(t, "task 2013", in2013[0].Title)
		assert.Equal(t, "second 2013", in2013[1].Title)

		exact, err := tasks.List(ctx, owner.ID, models.TaskFilter{Year: intPtr(2013), Month: intPtr(3), Day: intPtr(12)})
		require.NoError(t, err)
		require.Len(t, exact, 1)
		assert.Equal(t, "task 2013", exact[0].Title)

		none, err := tasks.List(ctx, owner.ID, models.TaskFilter{Year: intPtr(2013), Month: intPtr(4)})
		require.NoError(t, err)
		assert.Empty(t, none)
		assert.NotNil(t, none)
	})
}
