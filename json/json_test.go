package json

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	c := New()
	if c == nil {
		t.Error("New() should return non-nil codec")
	}
}

func TestContentType(t *testing.T) {
	c := New()
	if c.ContentType() != "application/json" {
		t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/json")
	}
}

func TestMarshalUnmarshal(t *testing.T) {
	c := New()

	type TestStruct struct {
		Name  string `json:"name"`
		Value int    `json:"value"`
	}

	original := TestStruct{Name: "test", Value: 42}

	data, err := c.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var restored TestStruct
	if err := c.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	if restored.Name != original.Name || restored.Value != original.Value {
		t.Errorf("round-trip failed: got %+v, want %+v", restored, original)
	}
}

func TestUnmarshal_Record(t *testing.T) {
	c := New()

	var r map[string]any
	if err := c.Unmarshal([]byte(`{"id":9007199254740993,"user":{"tags":["a","b"]}}`), &r); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	if r["id"] != json.Number("9007199254740993") {
		t.Errorf("id = %#v, want exact json.Number", r["id"])
	}
	user, ok := r["user"].(map[string]any)
	if !ok {
		t.Fatalf("user = %T, want map[string]any", r["user"])
	}
	if tags, ok := user["tags"].([]any); !ok || len(tags) != 2 {
		t.Errorf("tags = %#v, want []any of 2", user["tags"])
	}

	data, err := c.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if want := `{"id":9007199254740993,"user":{"tags":["a","b"]}}`; string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

func TestMarshalNil(t *testing.T) {
	c := New()

	data, err := c.Marshal(nil)
	if err != nil {
		t.Fatalf("Marshal(nil) error: %v", err)
	}

	if string(data) != "null" {
		t.Errorf("Marshal(nil) = %q, want %q", data, "null")
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	c := New()

	var v struct{}
	err := c.Unmarshal([]byte("invalid json"), &v)
	if err == nil {
		t.Error("Unmarshal(invalid) should return error")
	}
}

func TestUnmarshalTrailingData(t *testing.T) {
	c := New()

	var v map[string]any
	err := c.Unmarshal([]byte(`{"a":1} {"b":2}`), &v)
	if !errors.Is(err, ErrTrailingData) {
		t.Errorf("Unmarshal() error = %v, want ErrTrailingData", err)
	}
	if err := c.Unmarshal([]byte("{\"a\":1}\n"), &v); err != nil {
		t.Errorf("Unmarshal() with trailing whitespace error: %v", err)
	}
}
