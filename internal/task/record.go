package task

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Record is the persisted field set of a Task, derived fields included.
type Record struct {
	Context      string `yaml:"context" json:"context"`
	Description  string `yaml:"description" json:"description"`
	DaysToStart  uint   `yaml:"days_to_start" json:"days_to_start"`
	DaysToEnd    uint   `yaml:"days_to_end" json:"days_to_end"`
	DaysToFinish uint   `yaml:"days_to_finish" json:"days_to_finish"`
	Weight       Weight `yaml:"weight" json:"weight"`
	Priority     Score  `yaml:"priority" json:"priority"`
}

// Record returns the task's persisted field set.
func (t Task) Record() Record {
	return Record{
		Context:      t.context,
		Description:  t.description,
		DaysToStart:  t.daysToStart,
		DaysToEnd:    t.daysToEnd,
		DaysToFinish: t.daysToFinish,
		Weight:       t.weight,
		Priority:     Score(t.priority),
	}
}

// FromRecord restores a Task exactly as recorded. Derived fields are taken
// as-is; call Rebuild on the result to recompute them.
func FromRecord(r Record) Task {
	return Task{
		context:      r.Context,
		description:  r.Description,
		daysToStart:  r.DaysToStart,
		daysToEnd:    r.DaysToEnd,
		daysToFinish: r.DaysToFinish,
		weight:       r.Weight,
		priority:     float64(r.Priority),
	}
}

// MarshalYAML implements yaml.Marshaler.
func (t Task) MarshalYAML() (interface{}, error) {
	return t.Record(), nil
}

// UnmarshalYAML implements yaml.v3 Unmarshaler.
func (t *Task) UnmarshalYAML(value *yaml.Node) error {
	var r Record
	if err := value.Decode(&r); err != nil {
		return err
	}
	*t = FromRecord(r)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Task) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Record())
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Task) UnmarshalJSON(data []byte) error {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*t = FromRecord(r)
	return nil
}

// Score is a priority value. JSON has no literal for infinity, so
// non-finite scores are written as the strings "inf", "-inf" and "nan".
// YAML uses its native .inf and .nan.
type Score float64

// MarshalJSON implements json.Marshaler.
func (s Score) MarshalJSON() ([]byte, error) {
	f := float64(s)
	switch {
	case math.IsInf(f, 1):
		return []byte(`"inf"`), nil
	case math.IsInf(f, -1):
		return []byte(`"-inf"`), nil
	case math.IsNaN(f):
		return []byte(`"nan"`), nil
	}
	return []byte(strconv.FormatFloat(f, 'g', -1, 64)), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Score) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		switch strings.ToLower(text) {
		case "inf", "+inf":
			*s = Score(math.Inf(1))
		case "-inf":
			*s = Score(math.Inf(-1))
		case "nan":
			*s = Score(math.NaN())
		default:
			return fmt.Errorf("invalid priority %q", text)
		}
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid priority %s: %w", data, err)
	}
	*s = Score(f)
	return nil
}
