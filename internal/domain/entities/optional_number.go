package entities

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// OptionalNumber is a numeric field that may be blank. The shared documents
// store blank vitals as empty strings, so "", null and a plain number must
// all decode without error.
type OptionalNumber struct {
	Value float64
	Set   bool
}

// Num is a convenience constructor for a present value.
func Num(v float64) OptionalNumber {
	return OptionalNumber{Value: v, Set: true}
}

// MarshalJSON writes the value, or "" when unset, mirroring the document
// schema the web client produces.
func (n OptionalNumber) MarshalJSON() ([]byte, error) {
	if !n.Set {
		return []byte(`""`), nil
	}
	return json.Marshal(n.Value)
}

func (n *OptionalNumber) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*n = OptionalNumber{}
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		s = strings.TrimSpace(raw)
		if s == "" {
			*n = OptionalNumber{}
			return nil
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid numeric value %q", s)
	}
	*n = OptionalNumber{Value: v, Set: true}
	return nil
}

// Display returns the value for rendering, with "-" as the placeholder for
// an unset field.
func (n OptionalNumber) Display() string {
	if !n.Set {
		return "-"
	}
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}
