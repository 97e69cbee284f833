package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Form inputs arrive as strings ("4", "") as often as numbers. These types accept both.

// numberError is a well-formed JSON value that is not a usable number. It is
// reported as invalid input rather than a malformed body.
type numberError struct {
	raw    string
	reason string
}

func (e *numberError) Error() string {
	return fmt.Sprintf("%q is not %s", e.raw, e.reason)
}

type flexInt int

func (n *flexInt) UnmarshalJSON(data []byte) error {
	raw, err := unquoteNumber(data)
	if err != nil || raw == "" {
		*n = 0
		return err
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || f != float64(int(f)) {
			return &numberError{raw: raw, reason: "a whole number"}
		}
		v = int(f)
	}
	*n = flexInt(v)
	return nil
}

type flexFloat float64

func (n *flexFloat) UnmarshalJSON(data []byte) error {
	raw, err := unquoteNumber(data)
	if err != nil || raw == "" {
		*n = 0
		return err
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return &numberError{raw: raw, reason: "a number"}
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return &numberError{raw: raw, reason: "a finite number"}
	}
	*n = flexFloat(v)
	return nil
}

// flexString accepts a JSON string or number, e.g. check-in hour 14 or "14".
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*s = flexString(num.String())
	return nil
}

func unquoteNumber(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return "", nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return "", err
		}
		return strings.TrimSpace(v), nil
	}
	return string(data), nil
}

// parseDate accepts a calendar date or a full RFC 3339 timestamp.
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
