package aegis

// source records why a leaf received its treatment.
type source int

const (
	sourceNone source = iota
	sourceExplicit
	sourceHeuristic
)

// classify decides how the leaf at path, whose unqualified name is name,
// should be treated. An explicit entry always wins; the heuristic table is
// consulted only when there is none, and only on the forward pass.
func (s *Shield) classify(path, name string, reverse bool) (FieldConfig, source) {
	if fc, ok := s.fields[path]; ok {
		return fc, sourceExplicit
	}
	if reverse || !s.patterns.match(name) {
		return FieldConfig{}, sourceNone
	}
	if s.encryption == nil {
		return FieldConfig{Action: ActionRedact}, sourceHeuristic
	}
	return FieldConfig{Action: ActionEncrypt}, sourceHeuristic
}

// IsPIIField reports whether an unqualified field name matches the heuristic table.
func (s *Shield) IsPIIField(name string) bool {
	return s.patterns.match(name)
}

// FieldConfig returns a copy of the explicit entry for path, if any.
func (s *Shield) FieldConfig(path string) (FieldConfig, bool) {
	fc, ok := s.fields[path]
	if !ok {
		return FieldConfig{}, false
	}
	fc.Key = append([]byte(nil), fc.Key...)
	return fc, true
}

// Patterns returns the heuristic table in match order.
func (s *Shield) Patterns() []string {
	return s.patterns.strings()
}
