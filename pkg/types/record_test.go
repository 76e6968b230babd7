package types

import (
	"errors"
	"testing"
)

func TestRecordValues(t *testing.T) {
	r := &Record{Name: "test"}

	if _, err := r.GetValue("age"); err != ErrFieldNotFound {
		t.Errorf("GetValue on empty record = %v, want ErrFieldNotFound", err)
	}

	r.SetValue("age", 30)
	v, err := r.GetValue("age")
	if err != nil {
		t.Fatalf("GetValue failed: %v", err)
	}
	if v != 30 {
		t.Errorf("GetValue = %v, want 30", v)
	}
	if r.UpdatedAt.IsZero() {
		t.Error("SetValue did not touch UpdatedAt")
	}

	values := r.GetValues()
	values["age"] = 99
	if v, _ := r.GetValue("age"); v != 30 {
		t.Error("GetValues did not return a copy")
	}
}

func TestRecordGetValuesEmpty(t *testing.T) {
	r := &Record{}
	values := r.GetValues()
	if values == nil {
		t.Error("GetValues returned nil, want empty map")
	}
	if len(values) != 0 {
		t.Errorf("GetValues returned %d entries, want 0", len(values))
	}
}

func TestValueErrorWrapsSentinel(t *testing.T) {
	err := &ValueError{Field: "age", Message: "age is not an integer"}
	if !errors.Is(err, ErrValueRejected) {
		t.Error("ValueError does not wrap ErrValueRejected")
	}
	if err.Error() != "field age: age is not an integer" {
		t.Errorf("Error() = %q", err.Error())
	}
}
