package types

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// The backend's response shapes are only loosely specified. The types in this file decode a
// single JSON value and never report an error: a missing, null or mistyped value leaves the
// zero value in place so one bad field cannot sink the rest of a response.

// Text is a lenient string. Numbers and booleans are kept in their textual form.
type Text string

// UnmarshalJSON implements json.Unmarshaler and never fails.
func (t *Text) UnmarshalJSON(data []byte) error {
	*t = ""
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*t = Text(n.String())
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*t = Text(strconv.FormatBool(b))
	}
	return nil
}

// String returns the decoded text.
func (t Text) String() string { return string(t) }

// Count is a lenient non-negative integer. Floats are truncated, numeric strings are parsed
// and negative values decode as 0.
type Count int

// UnmarshalJSON implements json.Unmarshaler and never fails.
func (c *Count) UnmarshalJSON(data []byte) error {
	*c = 0
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*c = NonNegative(int(f))
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*c = NonNegative(int(f))
		}
	}
	return nil
}

// NonNegative clamps n to 0 from below.
func NonNegative(n int) Count {
	return Count(max(n, 0))
}

// Int returns the decoded count.
func (c Count) Int() int { return int(c) }

// Flag is a lenient boolean. "true"/"false" strings and non-zero numbers are accepted.
type Flag bool

// UnmarshalJSON implements json.Unmarshaler and never fails.
func (f *Flag) UnmarshalJSON(data []byte) error {
	*f = false
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = Flag(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if parsed, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			*f = Flag(parsed)
		}
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = n != 0
	}
	return nil
}

// Bool returns the decoded flag.
func (f Flag) Bool() bool { return bool(f) }

// Opt holds a value of any shape. Valid is false when the value was absent, null or did not
// decode into T.
type Opt[T any] struct {
	Value T
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler and never fails.
func (o *Opt[T]) UnmarshalJSON(data []byte) error {
	*o = Opt[T]{}
	if isNull(data) {
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	o.Value = v
	o.Valid = true
	return nil
}

// Or returns the value when valid and def otherwise.
func (o Opt[T]) Or(def T) T {
	if !o.Valid {
		return def
	}
	return o.Value
}

// List is a lenient array. A non-array value decodes as empty and elements that do not
// decode into T are dropped.
type List[T any] []T

// UnmarshalJSON implements json.Unmarshaler and never fails.
func (l *List[T]) UnmarshalJSON(data []byte) error {
	*l = nil
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	out := make(List[T], 0, len(raw))
	for _, item := range raw {
		if isNull(item) {
			continue
		}
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	*l = out
	return nil
}

// DecodeLenient decodes body into v, ignoring malformed input. Fields built from the lenient
// types above keep their defaults when the body is not a JSON object.
func DecodeLenient(body []byte, v any) {
	_ = json.Unmarshal(body, v)
}

// TextList converts a list of lenient strings into plain strings, dropping empty entries.
func TextList(items List[Text]) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item.String()); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func isNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}
