package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/zoobzio/aegis"
	"github.com/zoobzio/aegis/bson"
	"github.com/zoobzio/aegis/json"
	"github.com/zoobzio/aegis/msgpack"
	"github.com/zoobzio/aegis/yaml"
	aegistest "github.com/zoobzio/aegis/testing"
)

func codecs() []aegis.Codec {
	return []aegis.Codec{json.New(), yaml.New(), msgpack.New(), bson.New()}
}

func decode(t *testing.T, c aegis.Codec, data []byte) aegis.Record {
	t.Helper()
	var r aegis.Record
	if err := c.Unmarshal(data, &r); err != nil {
		t.Fatalf("%s: Unmarshal error: %v", c.ContentType(), err)
	}
	return r
}

func TestProcessor_ProtectReveal(t *testing.T) {
	for _, c := range codecs() {
		t.Run(c.ContentType(), func(t *testing.T) {
			proc := aegis.NewProcessor(aegistest.TestShield(t), c)
			ctx := context.Background()

			input, err := c.Marshal(aegistest.SampleRecord())
			if err != nil {
				t.Fatalf("Marshal error: %v", err)
			}

			protected, err := proc.Protect(ctx, input)
			if err != nil {
				t.Fatalf("Protect error: %v", err)
			}

			user := decode(t, c, protected)["user"].(map[string]any)
			if ssn, _ := user["ssn"].(string); !aegis.LooksEncrypted(ssn) {
				t.Errorf("ssn = %v, want ciphertext", user["ssn"])
			}
			if user["card"] != "****-****-****-1111" {
				t.Errorf("card = %v, want masked", user["card"])
			}
			if user["notes"] != "***" {
				t.Errorf("notes = %v, want custom redaction", user["notes"])
			}
			if email, _ := user["email"].(string); !aegis.LooksEncrypted(email) {
				t.Errorf("email = %v, want heuristic ciphertext", user["email"])
			}
			if user["name"] != "Alice Smith" {
				t.Errorf("name = %v, want unchanged", user["name"])
			}

			revealed, err := proc.Reveal(ctx, protected)
			if err != nil {
				t.Fatalf("Reveal error: %v", err)
			}

			user = decode(t, c, revealed)["user"].(map[string]any)
			if user["ssn"] != "123-45-6789" {
				t.Errorf("ssn = %v, want 123-45-6789", user["ssn"])
			}
			if user["token"] != "tok_live_abcdef" {
				t.Errorf("token = %v, want tok_live_abcdef", user["token"])
			}
			if email, _ := user["email"].(string); !aegis.LooksEncrypted(email) {
				t.Errorf("email = %v, heuristic ciphertext should stay encrypted", user["email"])
			}
		})
	}
}

func TestProcessor_SequencesOfRecords(t *testing.T) {
	shield, err := aegis.New(aegis.Config{
		Fields: map[string]aegis.FieldConfig{
			"contacts.email": {Action: aegis.ActionMask, Mask: aegis.MaskEmail},
		},
	})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	for _, c := range codecs() {
		t.Run(c.ContentType(), func(t *testing.T) {
			proc := aegis.NewProcessor(shield, c)

			input, err := c.Marshal(aegistest.SampleRecord())
			if err != nil {
				t.Fatalf("Marshal error: %v", err)
			}
			out, err := proc.Protect(context.Background(), input)
			if err != nil {
				t.Fatalf("Protect error: %v", err)
			}

			contacts := decode(t, c, out)["contacts"].([]any)
			if len(contacts) != 2 {
				t.Fatalf("contacts length = %d, want 2", len(contacts))
			}
			want := []string{"b***@example.com", "c***@example.com"}
			for i, elem := range contacts {
				got := elem.(map[string]any)["email"]
				if got != want[i] {
					t.Errorf("contacts[%d].email = %v, want %s", i, got, want[i])
				}
			}
		})
	}
}

func TestProcessor_BinaryPassesThrough(t *testing.T) {
	shield, err := aegis.New(aegis.Config{
		Fields: map[string]aegis.FieldConfig{
			"blob": {Action: aegis.ActionRedact},
		},
	})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	for _, c := range []aegis.Codec{msgpack.New(), bson.New()} {
		t.Run(c.ContentType(), func(t *testing.T) {
			proc := aegis.NewProcessor(shield, c)
			input, err := c.Marshal(map[string]any{"blob": []byte{0x00, 0x01, 0xff}})
			if err != nil {
				t.Fatalf("Marshal error: %v", err)
			}

			out, err := proc.Protect(context.Background(), input)
			if err != nil {
				t.Fatalf("Protect error: %v", err)
			}
			blob, ok := decode(t, c, out)["blob"].([]byte)
			if !ok || len(blob) != 3 || blob[2] != 0xff {
				t.Errorf("blob = %#v, want unchanged bytes", decode(t, c, out)["blob"])
			}
		})
	}
}

func TestProcessor_InvalidPayload(t *testing.T) {
	for _, c := range []aegis.Codec{json.New(), msgpack.New(), bson.New()} {
		t.Run(c.ContentType(), func(t *testing.T) {
			proc := aegis.NewProcessor(aegistest.TestShield(t), c)

			_, err := proc.Protect(context.Background(), []byte("\xc1 not a document"))
			if !errors.Is(err, aegis.ErrUnmarshal) {
				t.Errorf("Protect error = %v, want ErrUnmarshal", err)
			}
			var ce *aegis.CodecError
			if !errors.As(err, &ce) {
				t.Errorf("Protect error should be *CodecError, got %T", err)
			}
		})
	}
}

func TestProcessor_DerivedFields(t *testing.T) {
	fields, err := aegis.FieldsFromStruct[aegistest.SampleUser]()
	if err != nil {
		t.Fatalf("FieldsFromStruct error: %v", err)
	}
	shield, err := aegis.New(aegis.Config{Encryption: aegistest.TestEncryption(t), Fields: fields})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	proc := aegis.NewProcessor(shield, json.New())

	body := []byte(`{"id":"u1","email":"alice@example.com","ssn":"123-45-6789","note":"x","address":{"street":"1 Main St","city":"Springfield"}}`)
	out, err := proc.Protect(context.Background(), body)
	if err != nil {
		t.Fatalf("Protect error: %v", err)
	}

	r := decode(t, json.New(), out)
	if r["email"] != "a***@example.com" {
		t.Errorf("email = %v, want masked", r["email"])
	}
	if r["note"] != "***" {
		t.Errorf("note = %v, want ***", r["note"])
	}
	addr := r["address"].(map[string]any)
	if addr["street"] != aegis.DefaultRedaction {
		t.Errorf("address.street = %v, want redacted", addr["street"])
	}
	if addr["city"] != "Springfield" {
		t.Errorf("address.city = %v, want unchanged", addr["city"])
	}

	back, err := proc.Reveal(context.Background(), out)
	if err != nil {
		t.Fatalf("Reveal error: %v", err)
	}
	if got := decode(t, json.New(), back)["ssn"]; got != "123-45-6789" {
		t.Errorf("ssn = %v, want round trip", got)
	}
}
