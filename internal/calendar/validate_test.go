package calendar

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-calendar/internal/models"
)

func decodeInput(t *testing.T, body string) TaskInput {
	t.Helper()
	var in TaskInput
	require.NoError(t, json.Unmarshal([]byte(body), &in))
	return in
}

func TestDecodeTaskInput(t *testing.T) {
	in := decodeInput(t, `{"title":"a","description":null,"completed":"true","start_date":5}`)

	assert.True(t, in.Title.Set)
	assert.Equal(t, "a", in.Title.Value)
	assert.True(t, in.Description.Set)
	assert.True(t, in.Description.Null)
	assert.True(t, in.StartDate.Invalid)
	assert.False(t, in.EndDate.Set)
	assert.True(t, in.Completed.Value)

	in = decodeInput(t, `{"completed":"maybe"}`)
	assert.True(t, in.Completed.Invalid)
}

func TestDecodeCompletedForms(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    bool
		invalid bool
	}{
		{"json true", `true`, true, false},
		{"json false", `false`, false, false},
		{"number one", `1`, true, false},
		{"number zero", `0`, false, false},
		{"string yes", `"yes"`, true, false},
		{"string on", `"on"`, true, false},
		{"string off", `"off"`, false, false},
		{"string one", `"1"`, true, false},
		{"string N", `"N"`, false, false},
		{"number two", `2`, false, true},
		{"fraction", `0.5`, false, true},
		{"string maybe", `"maybe"`, false, true},
		{"empty string", `""`, false, true},
		{"array", `[true]`, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := decodeInput(t, `{"completed":`+tt.raw+`}`)
			assert.True(t, in.Completed.Set)
			assert.Equal(t, tt.invalid, in.Completed.Invalid)
			assert.Equal(t, tt.want, in.Completed.Value)
		})
	}
}

func TestApplyTaskCreate(t *testing.T) {
	in := decodeInput(t, `{
		"title": "  string  ",
		"description": "desc",
		"start_date": "2019-08-24T14:15:22Z",
		"end_date": "2019-10-24T16:15:22+02:00",
		"user": 99,
		"id": 12
	}`)

	task, ferr := ApplyTask(models.Task{UserID: 1}, in, ModeCreate)
	require.Nil(t, ferr)
	assert.Equal(t, "string", task.Title)
	require.NotNil(t, task.Description)
	assert.Equal(t, "desc", *task.Description)
	assert.Equal(t, time.Date(2019, 8, 24, 14, 15, 22, 0, time.UTC), task.StartDate)
	assert.Equal(t, time.Date(2019, 10, 24, 14, 15, 22, 0, time.UTC), task.EndDate)
	assert.False(t, task.Completed)
	assert.Equal(t, 1, task.UserID)
	assert.Zero(t, task.ID)
}

func TestApplyTaskCreateDateFormats(t *testing.T) {
	tests := []struct {
		name  string
		start string
		want  time.Time
	}{
		{"seconds and Z", "2019-08-24T14:15:22Z", time.Date(2019, 8, 24, 14, 15, 22, 0, time.UTC)},
		{"minutes and Z", "2019-08-24T14:15Z", time.Date(2019, 8, 24, 14, 15, 0, 0, time.UTC)},
		{"microseconds", "2019-08-24T14:15:22.123456Z", time.Date(2019, 8, 24, 14, 15, 22, 123456000, time.UTC)},
		{"offset with colon", "2019-08-24T16:15:22+02:00", time.Date(2019, 8, 24, 14, 15, 22, 0, time.UTC)},
		{"offset without colon", "2019-08-24T16:15+0200", time.Date(2019, 8, 24, 14, 15, 0, 0, time.UTC)},
		{"hour offset", "2019-08-24T11:15:22-03", time.Date(2019, 8, 24, 14, 15, 22, 0, time.UTC)},
		{"no offset is UTC", "2019-08-24T14:15:22", time.Date(2019, 8, 24, 14, 15, 22, 0, time.UTC)},
		{"no seconds no offset", "2019-08-24T14:15", time.Date(2019, 8, 24, 14, 15, 0, 0, time.UTC)},
		{"space separator", "2019-08-24 14:15:22Z", time.Date(2019, 8, 24, 14, 15, 22, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := decodeInput(t, `{"title":"t","start_date":"`+tt.start+`","end_date":"2019-12-31T00:00:00Z"}`)
			task, ferr := ApplyTask(models.Task{UserID: 1}, in, ModeCreate)
			require.Nil(t, ferr)
			assert.Equal(t, tt.want, task.StartDate)
		})
	}
}

func TestApplyTaskFirstErrorWins(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		mode  Mode
		field string
		msg   string
	}{
		{"missing title before bad start", `{"start_date":"string","end_date":"2019-10-24T14:15:22Z"}`, ModeCreate, "title", MsgRequired},
		{"bad start", `{"title":"t","start_date":"string","end_date":"2019-10-24T14:15:22Z"}`, ModeCreate, "start_date", MsgDateFormat},
		{"date only start", `{"title":"t","start_date":"2019-08-24","end_date":"2019-10-24T14:15:22Z"}`, ModeCreate, "start_date", MsgDateFormat},
		{"hour only end", `{"title":"t","start_date":"2019-08-24T14:15Z","end_date":"2019-10-24T14"}`, ModeCreate, "end_date", MsgDateFormat},
		{"bad offset end", `{"title":"t","start_date":"2019-08-24T14:15Z","end_date":"2019-10-24T14:15+2"}`, ModeCreate, "end_date", MsgDateFormat},
		{"short forms still ordered", `{"title":"t","start_date":"2019-08-24T14:15","end_date":"2019-08-24T14:15Z"}`, ModeCreate, "date", MsgDateOrder},
		{"blank title", `{"title":"   ","start_date":"2019-08-24T14:15:22Z","end_date":"2019-10-24T14:15:22Z"}`, ModeCreate, "title", MsgBlank},
		{"null title", `{"title":null}`, ModePatch, "title", MsgNull},
		{"numeric title", `{"title":5}`, ModePatch, "title", MsgNotString},
		{"long title", `{"title":"` + strings.Repeat("x", 256) + `"}`, ModePatch, "title", MsgTitleTooLong},
		{"missing end", `{"title":"t","start_date":"2019-08-24T14:15:22Z"}`, ModeReplace, "end_date", MsgRequired},
		{"null start", `{"start_date":null}`, ModePatch, "start_date", MsgNull},
		{"bad completed", `{"completed":"maybe"}`, ModePatch, "completed", MsgBoolean},
		{"equal dates", `{"title":"t","start_date":"2019-08-24T14:15:22Z","end_date":"2019-08-24T14:15:22Z"}`, ModeCreate, "date", MsgDateOrder},
		{"end before start", `{"title":"t","start_date":"2019-08-24T14:15:22Z","end_date":"2019-08-23T14:15:22Z"}`, ModeCreate, "date", MsgDateOrder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := models.Task{
				ID:        1,
				Title:     "existing",
				StartDate: time.Date(2019, 8, 24, 14, 15, 22, 0, time.UTC),
				EndDate:   time.Date(2019, 10, 24, 14, 15, 22, 0, time.UTC),
			}
			got, ferr := ApplyTask(base, decodeInput(t, tt.body), tt.mode)
			require.NotNil(t, ferr)
			assert.Equal(t, tt.field, ferr.Field)
			assert.Equal(t, tt.msg, ferr.Message)
			assert.Equal(t, base, got)
		})
	}
}

func TestApplyTaskPatchUsesStoredDates(t *testing.T) {
	desc := "keep me"
	base := models.Task{
		ID:          4,
		Title:       "old",
		Description: &desc,
		StartDate:   time.Date(2019, 8, 24, 14, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2019, 8, 25, 14, 0, 0, 0, time.UTC),
		Completed:   true,
		UserID:      2,
	}

	got, ferr := ApplyTask(base, decodeInput(t, `{"title":"new"}`), ModePatch)
	require.Nil(t, ferr)
	assert.Equal(t, "new", got.Title)
	assert.Equal(t, &desc, got.Description)
	assert.Equal(t, base.StartDate, got.StartDate)
	assert.Equal(t, base.EndDate, got.EndDate)
	assert.True(t, got.Completed)

	_, ferr = ApplyTask(base, decodeInput(t, `{"start_date":"2019-08-25T14:00:00Z"}`), ModePatch)
	require.NotNil(t, ferr)
	assert.Equal(t, "date", ferr.Field)

	got, ferr = ApplyTask(base, decodeInput(t, `{"end_date":"2019-08-24T14:00:01Z","completed":false}`), ModePatch)
	require.Nil(t, ferr)
	assert.Equal(t, time.Date(2019, 8, 24, 14, 0, 1, 0, time.UTC), got.EndDate)
	assert.False(t, got.Completed)
}

func TestApplyTaskReplaceKeepsOmittedOptionals(t *testing.T) {
	desc := "kept"
	base := models.Task{Title: "old", Description: &desc, Completed: true}

	got, ferr := ApplyTask(base, decodeInput(t, `{
		"title": "new",
		"start_date": "2020-01-01T00:00:00Z",
		"end_date": "2020-01-02T00:00:00Z"
	}`), ModeReplace)
	require.Nil(t, ferr)
	assert.Equal(t, &desc, got.Description)
	assert.True(t, got.Completed)

	got, ferr = ApplyTask(base, decodeInput(t, `{
		"title": "new",
		"description": null,
		"start_date": "2020-01-01T00:00:00Z",
		"end_date": "2020-01-02T00:00:00Z"
	}`), ModeReplace)
	require.Nil(t, ferr)
	assert.Nil(t, got.Description)
}
