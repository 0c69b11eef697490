package aegis

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/zoobzio/sentinel"
)

func init() {
	sentinel.Tag("pii")
}

// FieldsFromStruct derives explicit field configuration from the pii struct
// tags of T. Paths follow json tag names, falling back to Go field names,
// so the result matches records produced by encoding T as JSON.
//
// Tag syntax is action[:capability]:
//
//	pii:"redact"          redact with DefaultRedaction
//	pii:"redact:***"      redact with custom text
//	pii:"mask"            mask keeping the last 4 characters
//	pii:"mask:email"      mask with a named format
//	pii:"hash:argon2"     hash with a named algorithm
//	pii:"encrypt"         encrypt with the global key
//
// Nested structs extend the path; slices of structs share the slice's path.
// Encryption keys cannot be expressed in tags.
func FieldsFromStruct[T any]() (map[string]FieldConfig, error) {
	rt := reflect.TypeFor[T]()

	var spec sentinel.Metadata
	switch {
	case rt.Kind() == reflect.Struct:
		spec = sentinel.Scan[T]()
	case rt.Kind() == reflect.Pointer && rt.Elem().Kind() == reflect.Struct:
		rt = rt.Elem()
		spec = *scanNestedType(rt)
	default:
		return nil, fmt.Errorf("aegis: %s is not a struct type", rt)
	}

	fields := make(map[string]FieldConfig)
	b := tagBuilder{fields: fields, seen: map[reflect.Type]bool{}}
	if err := b.walk(spec, rt, ""); err != nil {
		return nil, err
	}
	return fields, nil
}

type tagBuilder struct {
	fields map[string]FieldConfig
	seen   map[reflect.Type]bool
}

func (b *tagBuilder) walk(spec sentinel.Metadata, rt reflect.Type, prefix string) error {
	if b.seen[rt] {
		return nil
	}
	b.seen[rt] = true
	defer delete(b.seen, rt)

	for _, field := range spec.Fields {
		sf := rt.FieldByIndex(field.Index)
		name, ok := jsonName(sf)
		if !ok {
			continue
		}
		path := joinPath(prefix, name)

		tag, ok := field.Tags["pii"]
		if !ok {
			tag, ok = sf.Tag.Lookup("pii")
		}
		if tag == "-" {
			continue
		}
		if !ok || tag == "" {
			if nested, nrt := nestedStruct(field.ReflectType); nested != nil {
				if err := b.walk(*nested, nrt, path); err != nil {
					return err
				}
			}
			continue
		}

		fc, err := parsePIITag(tag)
		if err != nil {
			return fmt.Errorf("field %s: %w", path, err)
		}
		b.fields[path] = fc
	}
	return nil
}

// nestedStruct unwraps pointers and slices down to a struct type, if any.
// []byte and other non-struct element types yield nil.
func nestedStruct(rt reflect.Type) (*sentinel.Metadata, reflect.Type) {
	for rt.Kind() == reflect.Pointer || rt.Kind() == reflect.Slice || rt.Kind() == reflect.Array {
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct {
		return nil, nil
	}
	return scanNestedType(rt), rt
}

// scanNestedType returns sentinel metadata for a nested struct, building it
// from reflection when sentinel has not already scanned the type.
func scanNestedType(rt reflect.Type) *sentinel.Metadata {
	if spec, ok := sentinel.Lookup(rt.String()); ok {
		return &spec
	}

	spec := sentinel.Metadata{
		TypeName:    rt.Name(),
		PackageName: rt.PkgPath(),
		Fields:      make([]sentinel.FieldMetadata, 0, rt.NumField()),
	}
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		fm := sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			ReflectType: sf.Type,
			Index:       sf.Index,
			Tags:        map[string]string{},
		}
		if v, ok := sf.Tag.Lookup("pii"); ok {
			fm.Tags["pii"] = v
		}

		switch sf.Type.Kind() {
		case reflect.Struct:
			fm.Kind = sentinel.KindStruct
		case reflect.Ptr:
			fm.Kind = sentinel.KindPointer
		case reflect.Slice, reflect.Array:
			fm.Kind = sentinel.KindSlice
		case reflect.Map:
			fm.Kind = sentinel.KindMap
		default:
			fm.Kind = sentinel.KindScalar
		}
		spec.Fields = append(spec.Fields, fm)
	}
	return &spec
}

// jsonName returns the record key encoding/json would use for sf.
func jsonName(sf reflect.StructField) (string, bool) {
	tag := sf.Tag.Get("json")
	if tag == "-" {
		return "", false
	}
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name, true
	}
	return sf.Name, true
}

// parsePIITag parses action[:capability].
func parsePIITag(tag string) (FieldConfig, error) {
	action, capability, hasCap := strings.Cut(tag, ":")
	fc := FieldConfig{Action: Action(action)}
	if !IsValidAction(fc.Action) {
		return FieldConfig{}, fmt.Errorf("%w: %q", ErrInvalidAction, action)
	}
	if !hasCap {
		return fc, nil
	}

	switch fc.Action {
	case ActionRedact:
		fc.Redaction = capability
	case ActionMask:
		if !IsValidMaskType(MaskType(capability)) {
			return FieldConfig{}, fmt.Errorf("%w: %q", ErrInvalidMaskType, capability)
		}
		fc.Mask = MaskType(capability)
	case ActionHash:
		if !IsValidHashAlgo(HashAlgo(capability)) {
			return FieldConfig{}, fmt.Errorf("%w: %q", ErrInvalidHashAlgo, capability)
		}
		fc.Hash = HashAlgo(capability)
	case ActionEncrypt:
		return FieldConfig{}, fmt.Errorf("%w: encrypt takes no capability", ErrUnexpectedKey)
	}
	return fc, nil
}
