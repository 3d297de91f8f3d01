package calendar

import (
	"sort"
	"time"

	"todo-calendar/internal/models"
)

// DayOf membulatkan t ke tengah malam hari kalendernya (UTC).
func DayOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Statuses mengelompokkan task per hari kalender start_date dan menandai
// apakah hari itu punya task selesai dan/atau belum selesai. Hasil diurutkan
// naik berdasarkan tanggal.
func Statuses(tasks []models.Task) []models.DayStatus {
	byDay := make(map[time.Time]*models.DayStatus)
	for _, task := range tasks {
		day := DayOf(task.StartDate)
		status, ok := byDay[day]
		if !ok {
			status = &models.DayStatus{Date: day}
			byDay[day] = status
		}
		if task.Completed {
			status.Completed = true
		} else {
			status.NotCompleted = true
		}
	}

	out := make([]models.DayStatus, 0, len(byDay))
	for _, status := range byDay {
		out = append(out, *status)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
