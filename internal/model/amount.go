package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// FlexAmount is a nullable monetary amount, in millions, that tolerates the
// loose typing found in flat-file CRM records and inbound requests: JSON
// numbers, numeric strings, "$25M"-style strings, empty strings, and null all
// parse without error. An unparsable value becomes null instead of failing
// the enclosing record.
type FlexAmount struct {
	value float64
	valid bool
}

// NewAmount returns a set FlexAmount.
func NewAmount(v float64) FlexAmount {
	return FlexAmount{value: v, valid: true}
}

// Valid reports whether the amount is set.
func (a FlexAmount) Valid() bool { return a.valid }

// Float returns the amount, or 0 when unset.
func (a FlexAmount) Float() float64 {
	if !a.valid {
		return 0
	}
	return a.value
}

// Ptr returns a pointer to the amount, or nil when unset.
func (a FlexAmount) Ptr() *float64 {
	if !a.valid {
		return nil
	}
	v := a.value
	return &v
}

// UnmarshalJSON accepts numbers, numeric strings, and currency-decorated
// strings. Nulls and garbage yield an unset amount, never an error.
func (a *FlexAmount) UnmarshalJSON(data []byte) error {
	*a = FlexAmount{}

	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*a = NewAmount(num)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return nil
	}
	if v, ok := parseAmountString(str); ok {
		*a = NewAmount(v)
	}
	return nil
}

// MarshalJSON emits the numeric value, or null when unset.
func (a FlexAmount) MarshalJSON() ([]byte, error) {
	if !a.valid {
		return []byte("null"), nil
	}
	return json.Marshal(a.value)
}

// parseAmountString strips currency decoration ("$25M", "25 mm", "1,000")
// before parsing.
func parseAmountString(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	lower := strings.ToLower(s)
	for _, suffix := range []string{"mm", "m"} {
		if strings.HasSuffix(lower, suffix) {
			s = strings.TrimSpace(s[:len(s)-len(suffix)])
			break
		}
	}
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
