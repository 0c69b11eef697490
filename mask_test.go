package aegis

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestMask(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  any
	}{
		{"card number", "4111111111111111", "************1111"},
		{"five chars", "abcde", "*bcde"},
		{"four chars", "abcd", "abcd"},
		{"short", "ab", "ab"},
		{"empty", "", ""},
		{"multibyte", "héllo wörld", "*******örld"},
		{"int", 42, 42},
		{"bool", true, true},
		{"nil", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mask(tt.input); got != tt.want {
				t.Errorf("Mask(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestMask_LengthPreserving(t *testing.T) {
	for n := 5; n < 40; n++ {
		s := strings.Repeat("x", n-4) + "9876"
		got := Mask(s).(string)
		if utf8.RuneCountInString(got) != n {
			t.Errorf("Mask(len %d) has length %d", n, utf8.RuneCountInString(got))
		}
		if !strings.HasSuffix(got, "9876") {
			t.Errorf("Mask(%q) = %q, want suffix 9876", s, got)
		}
		if strings.Trim(got[:len(got)-4], "*") != "" {
			t.Errorf("Mask(%q) = %q, want only '*' before the suffix", s, got)
		}
	}
}

func TestBuiltinMaskers(t *testing.T) {
	maskers := builtinMaskers()

	tests := []struct {
		mt    MaskType
		input string
		want  string
	}{
		{MaskLast4, "4111111111111111", "************1111"},
		{MaskEmail, "alice@example.com", "a***@example.com"},
		{MaskEmail, "not-an-email", "********mail"},
		{MaskCard, "4111 1111 1111 1111", "**** **** **** 1111"},
		{MaskCard, "4111-1111-1111-1111", "****-****-****-1111"},
		{MaskCard, "4111111111111111", "************1111"},
		{MaskCard, "123", "123"},
		{MaskPhone, "(555) 123-4567", "(***) ***-4567"},
		{MaskPhone, "555-123-4567", "***-***-4567"},
		{MaskPhone, "123-4567", "***-4567"},
		{MaskSSN, "123-45-6789", "***-**-6789"},
		{MaskIP, "192.168.1.100", "192.168.xxx.xxx"},
		{MaskIP, "2001:0db8:85a3:0000:0000:8a2e:0370:7334", "2001:0db8:85a3:0000:xxxx:xxxx:xxxx:xxxx"},
		{MaskName, "John Smith", "J*** S****"},
		{MaskName, "Zoë", "Z**"},
	}

	for _, tt := range tests {
		t.Run(string(tt.mt)+"/"+tt.input, func(t *testing.T) {
			if got := maskers[tt.mt].Mask(tt.input); got != tt.want {
				t.Errorf("%s mask(%q) = %q, want %q", tt.mt, tt.input, got, tt.want)
			}
		})
	}
}

func TestBuiltinMaskers_Complete(t *testing.T) {
	maskers := builtinMaskers()
	for mt := range validMaskTypes {
		if maskers[mt] == nil {
			t.Errorf("no builtin masker for %q", mt)
		}
	}
}

func TestMaskerFunc(t *testing.T) {
	m := MaskerFunc(strings.ToUpper)
	if got := m.Mask("abc"); got != "ABC" {
		t.Errorf("MaskerFunc.Mask() = %q, want ABC", got)
	}
}
