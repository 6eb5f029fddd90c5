package task

import (
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/twiced-technology-gmbh/taskrank/internal/clierr"
)

// Weight is the declared importance of a task. The zero value is Low and
// the constants are ordered, so weights compare with < and >.
type Weight int

const (
	Low Weight = iota
	Med
	High
)

// Weights lists every weight from least to most important.
var Weights = []Weight{Low, Med, High}

// String returns the canonical name: Low, Med or High.
func (w Weight) String() string {
	switch w {
	case Low:
		return "Low"
	case Med:
		return "Med"
	case High:
		return "High"
	default:
		return fmt.Sprintf("Weight(%d)", int(w))
	}
}

// Multiplier is the numerator of the priority formula.
func (w Weight) Multiplier() float64 {
	switch w {
	case High:
		return 3.0 //nolint:mnd // priority multiplier
	case Med:
		return 2.0 //nolint:mnd // priority multiplier
	default:
		return 1.0
	}
}

// Valid reports whether w is one of the declared weights.
func (w Weight) Valid() bool {
	return w >= Low && w <= High
}

// ParseWeight accepts low, med, medium and high in any case.
func ParseWeight(s string) (Weight, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return Low, nil
	case "med", "medium":
		return Med, nil
	case "high":
		return High, nil
	default:
		return Med, clierr.Newf(clierr.InvalidWeight, "unknown weight: %s", s).
			WithDetails(map[string]any{
				"input":   s,
				"allowed": []string{"low", "medium", "high"},
			})
	}
}

// MarshalText implements encoding.TextMarshaler.
func (w Weight) MarshalText() ([]byte, error) {
	if !w.Valid() {
		return nil, fmt.Errorf("invalid weight %d", int(w))
	}
	return []byte(w.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (w *Weight) UnmarshalText(text []byte) error {
	parsed, err := ParseWeight(string(text))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (w Weight) MarshalYAML() (interface{}, error) {
	if !w.Valid() {
		return nil, fmt.Errorf("invalid weight %d", int(w))
	}
	return w.String(), nil
}

// UnmarshalYAML implements yaml.v3 Unmarshaler.
func (w *Weight) UnmarshalYAML(value *yaml.Node) error {
	return w.UnmarshalText([]byte(value.Value))
}
