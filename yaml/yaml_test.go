package yaml

import (
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
	if c.ContentType() != "application/yaml" {
		t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/yaml")
	}
}

func TestUnmarshal_Record(t *testing.T) {
	c := New()

	input := `
user:
  email: alice@example.com
  age: 34
  contacts:
    - email: bob@example.com
    - email: carol@example.com
lookup:
  1: one
  true: yes-value
`
	var r map[string]any
	if err := c.Unmarshal([]byte(input), &r); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	user, ok := r["user"].(map[string]any)
	if !ok {
		t.Fatalf("user = %T, want map[string]any", r["user"])
	}
	if user["email"] != "alice@example.com" || user["age"] != 34 {
		t.Errorf("user = %v", user)
	}
	contacts, ok := user["contacts"].([]any)
	if !ok || len(contacts) != 2 {
		t.Fatalf("contacts = %#v", user["contacts"])
	}
	if _, ok := contacts[0].(map[string]any); !ok {
		t.Errorf("contacts[0] = %T, want map[string]any", contacts[0])
	}

	lookup, ok := r["lookup"].(map[string]any)
	if !ok {
		t.Fatalf("lookup = %T, want map[string]any with formatted keys", r["lookup"])
	}
	if lookup["1"] != "one" || lookup["true"] != "yes-value" {
		t.Errorf("lookup = %v", lookup)
	}
}

func TestMarshal_RecordRoundTrip(t *testing.T) {
	c := New()

	original := map[string]any{
		"ssn":   "c2b3505c49f3c53ef0035efdb7fd1003",
		"digit": "1234",
		"list":  []any{"a", "b"},
	}
	data, err := c.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var restored map[string]any
	if err := c.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if restored["ssn"] != original["ssn"] || restored["digit"] != "1234" {
		t.Errorf("round-trip failed: got %v", restored)
	}
}

func TestUnmarshal_Struct(t *testing.T) {
	c := New()

	var v struct {
		Name string `yaml:"name"`
	}
	if err := c.Unmarshal([]byte("name: test"), &v); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if v.Name != "test" {
		t.Errorf("Name = %q, want test", v.Name)
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	c := New()

	var v map[string]any
	if err := c.Unmarshal([]byte("name: [invalid"), &v); err == nil {
		t.Error("Unmarshal(invalid) should return error")
	}
}

func TestUnmarshal_EmptyInput(t *testing.T) {
	c := New()

	var v map[string]any
	if err := c.Unmarshal([]byte{}, &v); err != nil {
		t.Errorf("Unmarshal(empty) error: %v", err)
	}
	if v != nil {
		t.Errorf("Unmarshal(empty) = %v, want nil record", v)
	}
}
