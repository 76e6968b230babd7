package datatype

import (
	"testing"
	"time"
)

func TestSerializeUnknownType(t *testing.T) {
	r := newTestRegistry()
	_, err := r.Serialize("decimal", 1.5, Options{})
	if err != ErrUnknownType {
		t.Errorf("Serialize(decimal) error = %v, want ErrUnknownType", err)
	}
}

func TestSerializeStringEscape(t *testing.T) {
	r := newTestRegistry()
	tests := []struct {
		name string
		in   string
		opts Options
		want string
	}{
		{"plain", "hello", Options{}, "hello"},
		{"escape doubles quotes", "O'Brien", Options{Escape: true}, "O''Brien"},
		{"quotes wrap", "hello", Options{UseQuotes: true}, "'hello'"},
		{"escape then quote", "O'Brien", Options{Escape: true, UseQuotes: true}, "'O''Brien'"},
		{"multiple quotes", "it's a' test", Options{Escape: true}, "it''s a'' test"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Serialize(TypeString, tt.in, tt.opts)
			if err != nil {
				t.Fatalf("Serialize returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Serialize(%q, %+v) = %q, want %q", tt.in, tt.opts, got, tt.want)
			}
		})
	}
}

func TestSerializeNumericNeverQuoted(t *testing.T) {
	r := newTestRegistry()
	opts := Options{Escape: true, UseQuotes: true}

	got, _ := r.Serialize(TypeNumber, 3.5, opts)
	if got != "3.5" {
		t.Errorf("number with quotes = %q, want 3.5", got)
	}
	got, _ = r.Serialize(TypeInt, int64(42), opts)
	if got != "42" {
		t.Errorf("int with quotes = %q, want 42", got)
	}
	got, _ = r.Serialize(TypeBoolean, true, opts)
	if got != "true" {
		t.Errorf("boolean with quotes = %q, want true", got)
	}
}

func TestSerializeIntNoDecimalPoint(t *testing.T) {
	r := newTestRegistry()

	// A whole float coerced by Validate renders as an integer literal.
	res, err := r.Validate(TypeInt, "age", 10.0, "en-US")
	if err != nil || !res.OK() {
		t.Fatalf("Validate(10.0) failed: %v %q", err, res.Error)
	}
	got, _ := r.Serialize(TypeInt, res.Value, Options{})
	if got != "10" {
		t.Errorf("Serialize = %q, want 10", got)
	}
}

func TestSerializeObject(t *testing.T) {
	r := newTestRegistry()

	got, _ := r.Serialize(TypeObject, map[string]any{"k": "v"}, Options{})
	if got != `{"k":"v"}` {
		t.Errorf("object = %q, want JSON encoding", got)
	}

	// A value with its own string conversion wins over JSON.
	got, _ = r.Serialize(TypeObject, TimeOfDay{Hour: 9, Minute: 5}, Options{})
	if got != "09:05:00" {
		t.Errorf("stringer object = %q, want 09:05:00", got)
	}
}

func TestSerializeArray(t *testing.T) {
	r := newTestRegistry()

	got, _ := r.Serialize(TypeArray, []any{1, 2, 3}, Options{})
	if got != "[1,2,3]" {
		t.Errorf("array = %q, want [1,2,3]", got)
	}
	got, _ = r.Serialize(TypeArray, []string{"a'b"}, Options{Escape: true, UseQuotes: true})
	if got != `'["a''b"]'` {
		t.Errorf("array with options = %q", got)
	}
}

func TestSerializeTemporal(t *testing.T) {
	r := newTestRegistry()
	d := time.Date(2024, time.March, 15, 13, 45, 7, 0, time.UTC)

	got, _ := r.Serialize(TypeDate, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), Options{UseQuotes: true})
	if got != "'2024-03-15'" {
		t.Errorf("date = %q, want '2024-03-15'", got)
	}

	got, _ = r.Serialize(TypeDatetime, d, Options{})
	if got != "2024-03-15 13:45:07" {
		t.Errorf("datetime = %q", got)
	}

	// Time values serialize on the sentinel date.
	got, _ = r.Serialize(TypeTime, TimeOfDay{Hour: 13, Minute: 45, Second: 7}, Options{})
	if got != "1969-12-31 13:45:07" {
		t.Errorf("time = %q, want sentinel date form", got)
	}
}

// Round-trip: validated values serialize to text consistent with the
// datatype's convention, and temporal text re-validates to the same value.
func TestValidateSerializeRoundTrip(t *testing.T) {
	r := newTestRegistry()
	tests := []struct {
		typeName string
		raw      any
		want     string
	}{
		{TypeString, 42, "42"},
		{TypeNumber, "2.5", "2.5"},
		{TypeInt, "10.0", "10"},
		{TypeBoolean, "true", "true"},
		{TypeDate, "2024-03-15", "2024-03-15"},
		{TypeDatetime, "2024-03-15 13:45:07", "2024-03-15 13:45:07"},
		{TypeTime, "13:45:07", "1969-12-31 13:45:07"},
	}
	for _, tt := range tests {
		t.Run(tt.typeName, func(t *testing.T) {
			res, err := r.Validate(tt.typeName, "f", tt.raw, "en-US")
			if err != nil || !res.OK() {
				t.Fatalf("Validate failed: %v %q", err, res.Error)
			}
			got, err := r.Serialize(tt.typeName, res.Value, Options{})
			if err != nil {
				t.Fatalf("Serialize returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("round trip = %q, want %q", got, tt.want)
			}

			// Serialized temporal text is itself valid input.
			res2, _ := r.Validate(tt.typeName, "f", got, "en-US")
			if !res2.OK() {
				t.Errorf("serialized form %q does not re-validate: %s", got, res2.Error)
			}
		})
	}
}
