package calendar

import (
	"strings"
	"time"
	"unicode/utf8"

	"todo-calendar/internal/models"
)

const TitleMaxLength = 255

const (
	MsgRequired     = "This field is required."
	MsgNull         = "This field may not be null."
	MsgBlank        = "This field may not be blank."
	MsgNotString    = "Not a valid string."
	MsgTitleTooLong = "Ensure this field has no more than 255 characters."
	MsgDateFormat   = "Datetime has wrong format. Use one of these formats instead: YYYY-MM-DDThh:mm[:ss[.uuuuuu]][+HH:MM|-HH:MM|Z]."
	MsgBoolean      = "Must be a valid boolean."
	MsgDateOrder    = "End date must be greater than start date."
)

// FieldError adalah kegagalan validasi pada satu field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Mode menentukan field task mana yang wajib ada.
type Mode int

const (
	ModeCreate Mode = iota
	ModeReplace
	ModePatch
)

func (m Mode) requiresAll() bool {
	return m != ModePatch
}

type validator func(in TaskInput, mode Mode, task *models.Task) *FieldError

// Urutan cek field. Cek urutan tanggal untuk seluruh objek selalu terakhir.
var taskValidators = []validator{
	validateTitle,
	validateDescription,
	validateStartDate,
	validateEndDate,
	validateCompleted,
	validateDateOrder,
}

// ApplyTask memvalidasi in sesuai mode lalu mengembalikan base yang sudah
// diisi field yang dikirim. Error pertama yang menang. Untuk replace dan patch
// base berisi nilai tersimpan, untuk create berisi Task kosong plus owner.
func ApplyTask(base models.Task, in TaskInput, mode Mode) (models.Task, *FieldError) {
	task := base
	for _, v := range taskValidators {
		if ferr := v(in, mode, &task); ferr != nil {
			return base, ferr
		}
	}
	return task, nil
}

func validateTitle(in TaskInput, mode Mode, task *models.Task) *FieldError {
	f := in.Title
	if !f.Set {
		if mode.requiresAll() {
			return &FieldError{"title", MsgRequired}
		}
		return nil
	}
	switch {
	case f.Null:
		return &FieldError{"title", MsgNull}
	case f.Invalid:
		return &FieldError{"title", MsgNotString}
	}
	title := strings.TrimSpace(f.Value)
	if title == "" {
		return &FieldError{"title", MsgBlank}
	}
	if utf8.RuneCountInString(title) > TitleMaxLength {
		return &FieldError{"title", MsgTitleTooLong}
	}
	task.Title = title
	return nil
}

func validateDescription(in TaskInput, _ Mode, task *models.Task) *FieldError {
	f := in.Description
	if !f.Set {
		return nil
	}
	if f.Null {
		task.Description = nil
		return nil
	}
	if f.Invalid {
		return &FieldError{"description", MsgNotString}
	}
	desc := strings.TrimSpace(f.Value)
	task.Description = &desc
	return nil
}

func validateStartDate(in TaskInput, mode Mode, task *models.Task) *FieldError {
	return applyDate("start_date", in.StartDate, mode, &task.StartDate)
}

func validateEndDate(in TaskInput, mode Mode, task *models.Task) *FieldError {
	return applyDate("end_date", in.EndDate, mode, &task.EndDate)
}

func applyDate(field string, f OptionalString, mode Mode, dst *time.Time) *FieldError {
	if !f.Set {
		if mode.requiresAll() {
			return &FieldError{field, MsgRequired}
		}
		return nil
	}
	if f.Null {
		return &FieldError{field, MsgNull}
	}
	if f.Invalid {
		return &FieldError{field, MsgDateFormat}
	}
	t, err := ParseDateTime(f.Value)
	if err != nil {
		return &FieldError{field, MsgDateFormat}
	}
	*dst = t
	return nil
}

func validateCompleted(in TaskInput, _ Mode, task *models.Task) *FieldError {
	f := in.Completed
	if !f.Set {
		return nil
	}
	switch {
	case f.Null:
		return &FieldError{"completed", MsgNull}
	case f.Invalid:
		return &FieldError{"completed", MsgBoolean}
	}
	task.Completed = f.Value
	return nil
}

// validateDateOrder memakai tanggal efektif: patch yang hanya mengubah satu
// ujung dibandingkan dengan nilai tersimpan ujung lainnya.
func validateDateOrder(_ TaskInput, _ Mode, task *models.Task) *FieldError {
	if !task.EndDate.After(task.StartDate) {
		return &FieldError{"date", MsgDateOrder}
	}
	return nil
}

// dateTimeLayouts mengikuti format YYYY-MM-DDThh:mm[:ss[.uuuuuu]][+HH:MM|-HH:MM|Z].
// Pecahan detik diterima oleh time.Parse walau tidak ada di layout.
var dateTimeLayouts = func() []string {
	var layouts []string
	for _, clock := range []string{"15:04:05", "15:04"} {
		for _, zone := range []string{"Z07:00", "Z0700", "Z07", ""} {
			layouts = append(layouts, "2006-01-02T"+clock+zone)
		}
	}
	return layouts
}()

// ParseDateTime membaca tanggal-waktu ISO 8601 dan mengubahnya ke UTC.
// Tanpa offset dianggap UTC. Pemisah tanggal dan jam boleh 'T' atau spasi.
func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) > 10 && s[10] == ' ' {
		s = s[:10] + "T" + s[11:]
	}
	var firstErr error
	for _, layout := range dateTimeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}
