package aegis

// stats counts what a single traversal did. It feeds signal fields.
type stats struct {
	paths     int
	redacted  int
	masked    int
	encrypted int
	decrypted int
	hashed    int
	heuristic int
}

// Redact replaces a string value with DefaultRedaction.
// Non-string values are returned unchanged.
func Redact(value any) any {
	if _, ok := value.(string); !ok {
		return value
	}
	return DefaultRedaction
}

// transformLeaf classifies one leaf and applies or reverses its treatment.
func (s *Shield) transformLeaf(path, name string, value any, reverse bool, st *stats) (any, error) {
	st.paths++

	fc, src := s.classify(path, name, reverse)
	if src == sourceNone {
		return value, nil
	}

	str, ok := value.(string)
	if !ok {
		// Only strings are transformable.
		return value, nil
	}

	if src == sourceHeuristic {
		st.heuristic++
	}
	if reverse {
		return s.invert(path, fc, str, st)
	}
	return s.apply(path, fc, str, st)
}

// apply performs the forward treatment of a string leaf.
func (s *Shield) apply(path string, fc FieldConfig, value string, st *stats) (any, error) {
	switch fc.Action {
	case ActionRedact:
		st.redacted++
		if fc.Redaction != "" {
			return fc.Redaction, nil
		}
		return DefaultRedaction, nil

	case ActionMask:
		st.masked++
		mt := fc.Mask
		if mt == "" {
			mt = MaskLast4
		}
		return s.maskers[mt].Mask(value), nil

	case ActionEncrypt:
		key := fc.Key
		if key == nil {
			key = s.encryption.Key
		}
		out, err := wrapCipher(ErrEncrypt, "encrypt", path)(
			encryptString(s.encryption.Algorithm, value, key, s.encryption.IV))
		if err != nil {
			return nil, err
		}
		st.encrypted++
		return out, nil

	case ActionHash:
		algo := fc.Hash
		if algo == "" {
			algo = HashSHA256
		}
		out, err := s.hashers[algo].Hash(value)
		if err != nil {
			return nil, newCipherError(ErrHash, "hash", path, err)
		}
		st.hashed++
		return out, nil
	}

	return value, nil
}

// invert undoes the treatment of a string leaf. Only encryption is reversible;
// every other action leaves the value as it is.
func (s *Shield) invert(path string, fc FieldConfig, value string, st *stats) (any, error) {
	if fc.Action != ActionEncrypt {
		return value, nil
	}

	key := fc.Key
	if key == nil {
		key = s.encryption.Key
	}
	out, err := wrapCipher(ErrDecrypt, "decrypt", path)(
		decryptString(s.encryption.Algorithm, value, key, s.encryption.IV))
	if err != nil {
		return nil, err
	}
	st.decrypted++
	return out, nil
}
