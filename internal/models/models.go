package models

import (
	"encoding/json"
	"time"
)

// DateTimeLayout adalah format tanggal-waktu di request dan response API.
const DateTimeLayout = "2006-01-02T15:04:05Z"

// DateLayout dipakai untuk tanggal kalender pada ringkasan statuses.
const DateLayout = "2006-01-02"

type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

type Task struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Completed   bool      `json:"completed"`
	UserID      int       `json:"user"`
}

// MarshalJSON menulis tanggal dalam UTC dengan akhiran Z.
func (t Task) MarshalJSON() ([]byte, error) {
	type alias Task
	return json.Marshal(struct {
		alias
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
	}{
		alias:     alias(t),
		StartDate: t.StartDate.UTC().Format(DateTimeLayout),
		EndDate:   t.EndDate.UTC().Format(DateTimeLayout),
	})
}

// TaskFilter membatasi list task berdasarkan komponen start_date (UTC).
// Field nil berarti tidak difilter.
type TaskFilter struct {
	Year  *int
	Month *int
	Day   *int
}

// Match bernilai true jika t lolos filter.
func (f TaskFilter) Match(t Task) bool {
	start := t.StartDate.UTC()
	if f.Year != nil && start.Year() != *f.Year {
		return false
	}
	if f.Month != nil && int(start.Month()) != *f.Month {
		return false
	}
	if f.Day != nil && start.Day() != *f.Day {
		return false
	}
	return true
}

// DayStatus merangkum task yang dimulai pada satu hari kalender.
type DayStatus struct {
	Date         time.Time `json:"date"`
	Completed    bool      `json:"completed"`
	NotCompleted bool      `json:"not_completed"`
}

func (d DayStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date         string `json:"date"`
		Completed    bool   `json:"completed"`
		NotCompleted bool   `json:"not_completed"`
	}{
		Date:         d.Date.Format(DateLayout),
		Completed:    d.Completed,
		NotCompleted: d.NotCompleted,
	})
}
