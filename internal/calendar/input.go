// Package calendar berisi aturan task di antara layer HTTP dan storage:
// validasi input task dan ringkasan statuses per hari.
package calendar

import (
	"bytes"
	"encoding/json"
)

var jsonNull = []byte("null")

// OptionalString menyimpan nilai field beserta status kirimnya (Set, Null, Invalid).
type OptionalString struct {
	Set     bool
	Null    bool
	Invalid bool
	Value   string
}

func (o *OptionalString) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(b, jsonNull) {
		o.Null = true
		return nil
	}
	if err := json.Unmarshal(b, &o.Value); err != nil {
		o.Invalid = true
	}
	return nil
}

// OptionalBool menerima boolean JSON serta bentuk yang biasa dikirim form:
// angka 1/0 atau string seperti "yes"/"no".
type OptionalBool struct {
	Set     bool
	Null    bool
	Invalid bool
	Value   bool
}

var (
	trueStrings  = map[string]bool{"t": true, "T": true, "y": true, "Y": true, "yes": true, "Yes": true, "YES": true, "true": true, "True": true, "TRUE": true, "on": true, "On": true, "ON": true, "1": true}
	falseStrings = map[string]bool{"f": true, "F": true, "n": true, "N": true, "no": true, "No": true, "NO": true, "false": true, "False": true, "FALSE": true, "off": true, "Off": true, "OFF": true, "0": true}
)

// parseBool mengenali string boolean yang diterima OptionalBool.
func parseBool(s string) (value, ok bool) {
	switch {
	case trueStrings[s]:
		return true, true
	case falseStrings[s]:
		return false, true
	}
	return false, false
}

func (o *OptionalBool) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(b, jsonNull) {
		o.Null = true
		return nil
	}
	var raw interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		o.Invalid = true
		return nil
	}
	switch v := raw.(type) {
	case bool:
		o.Value = v
		return nil
	case float64:
		if v == 1 || v == 0 {
			o.Value = v == 1
			return nil
		}
	case string:
		if value, ok := parseBool(v); ok {
			o.Value = value
			return nil
		}
	}
	o.Invalid = true
	return nil
}

// TaskInput adalah body request tulis task. Field id dan user dari klien diabaikan.
type TaskInput struct {
	Title       OptionalString `json:"title"`
	Description OptionalString `json:"description"`
	StartDate   OptionalString `json:"start_date"`
	EndDate     OptionalString `json:"end_date"`
	Completed   OptionalBool   `json:"completed"`
}
