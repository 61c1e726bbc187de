package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Cell is one key/value pair of a feedback row.
type Cell struct {
	Key   string
	Value any
}

// FeedbackRow is one recorded response instance for a measure. The columns
// are not fixed by the API, so the row keeps its cells in the order the keys
// appeared in the response.
type FeedbackRow []Cell

// Get returns the value stored under key.
func (r FeedbackRow) Get(key string) (any, bool) {
	for _, c := range r {
		if c.Key == key {
			return c.Value, true
		}
	}
	return nil, false
}

// Keys returns the row's keys in order.
func (r FeedbackRow) Keys() []string {
	keys := make([]string, len(r))
	for i, c := range r {
		keys[i] = c.Key
	}
	return keys
}

// UnmarshalJSON decodes an object while preserving key order.
func (r *FeedbackRow) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid feedback row JSON")
	}
	res := gjson.ParseBytes(data)
	if res.Type == gjson.Null {
		*r = nil
		return nil
	}
	if !res.IsObject() {
		return fmt.Errorf("feedback row must be an object, got %s", res.Type)
	}

	row := FeedbackRow{}
	res.ForEach(func(key, value gjson.Result) bool {
		row = append(row, Cell{Key: key.String(), Value: value.Value()})
		return true
	})
	*r = row
	return nil
}

// MarshalJSON encodes the row as an object in its original key order.
func (r FeedbackRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(c.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(c.Value)
		if err != nil {
			return nil, fmt.Errorf("encode %q: %w", c.Key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MeasureFeedback is a measure assigned to a patient together with the
// responses recorded for it.
type MeasureFeedback struct {
	MeasureID        int           `json:"measureId"`
	MeasureName      string        `json:"measureName"`
	MeasuringCadence string        `json:"measuringCadence"`
	FeedbackRows     []FeedbackRow `json:"feedbackRows"`
}

// PatientData is the feedback document returned for a legacy patient ID.
type PatientData struct {
	PatientID            int               `json:"patientId"`
	LegacyPatientID      string            `json:"legacyPatientId"`
	PatientName          PatientName       `json:"patientName"`
	EmailID              string            `json:"emailId"`
	MeasuresWithFeedback []MeasureFeedback `json:"measuresWithFeedback"`
}

// Measure returns the feedback block for measureID.
func (d *PatientData) Measure(measureID int) (MeasureFeedback, bool) {
	if d == nil {
		return MeasureFeedback{}, false
	}
	for _, m := range d.MeasuresWithFeedback {
		if m.MeasureID == measureID {
			return m, true
		}
	}
	return MeasureFeedback{}, false
}
