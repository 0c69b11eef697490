package aegis

import (
	"strings"
	"unicode"
)

// MaskType selects a masking format for ActionMask.
type MaskType string

const (
	MaskLast4 MaskType = "last4" // 4111111111111111 -> ************1111 (default)
	MaskEmail MaskType = "email" // alice@example.com -> a***@example.com
	MaskCard  MaskType = "card"  // 4111 1111 1111 1111 -> **** **** **** 1111
	MaskPhone MaskType = "phone" // (555) 123-4567 -> (***) ***-4567
	MaskSSN   MaskType = "ssn"   // 123-45-6789 -> ***-**-6789
	MaskIP    MaskType = "ip"    // 192.168.1.100 -> 192.168.xxx.xxx
	MaskName  MaskType = "name"  // John Smith -> J*** S****
)

// visibleSuffix is the number of trailing characters MaskLast4 leaves intact.
const visibleSuffix = 4

// Masker obscures a string value.
type Masker interface {
	Mask(value string) string
}

// MaskerFunc adapts a function to the Masker interface.
type MaskerFunc func(string) string

// Mask calls f(value).
func (f MaskerFunc) Mask(value string) string { return f(value) }

// Mask applies the default masking to a leaf value: strings longer than four
// characters keep their last four and every earlier character becomes '*'.
// Shorter strings and non-string values are returned unchanged.
func Mask(value any) any {
	s, ok := value.(string)
	if !ok {
		return value
	}
	return maskLast4(s)
}

func maskLast4(s string) string {
	runes := []rune(s)
	if len(runes) <= visibleSuffix {
		return s
	}
	cut := len(runes) - visibleSuffix
	return strings.Repeat("*", cut) + string(runes[cut:])
}

// maskEmail keeps the first rune of the local part and the whole domain.
func maskEmail(s string) string {
	at := strings.LastIndex(s, "@")
	if at < 1 {
		return maskLast4(s)
	}
	first := []rune(s[:at])[0]
	return string(first) + "***" + s[at:]
}

// maskCard keeps the last four digits and the grouping separator, if any.
func maskCard(s string) string {
	digits := onlyDigits(s)
	if len(digits) <= visibleSuffix {
		return s
	}
	last := digits[len(digits)-visibleSuffix:]

	var sep string
	switch {
	case strings.Contains(s, " "):
		sep = " "
	case strings.Contains(s, "-"):
		sep = "-"
	default:
		return strings.Repeat("*", len(digits)-visibleSuffix) + last
	}

	groups := (len(digits) - visibleSuffix + 3) / 4
	parts := make([]string, groups, groups+1)
	for i := range parts {
		parts[i] = "****"
	}
	return strings.Join(append(parts, last), sep)
}

func maskPhone(s string) string {
	digits := onlyDigits(s)
	if len(digits) <= visibleSuffix {
		return s
	}
	last := digits[len(digits)-visibleSuffix:]
	switch {
	case strings.HasPrefix(s, "(") && len(digits) >= 10:
		return "(***) ***-" + last
	case len(digits) >= 10:
		return "***-***-" + last
	default:
		return "***-" + last
	}
}

func maskSSN(s string) string {
	digits := onlyDigits(s)
	if len(digits) <= visibleSuffix {
		return s
	}
	return "***-**-" + digits[len(digits)-visibleSuffix:]
}

// maskIP keeps the network half of an address.
func maskIP(s string) string {
	if parts := strings.Split(s, "."); len(parts) == 4 {
		return parts[0] + "." + parts[1] + ".xxx.xxx"
	}
	if groups := strings.Split(s, ":"); len(groups) > 4 && !strings.Contains(s, "::") {
		return strings.Join(groups[:4], ":") + strings.Repeat(":xxxx", len(groups)-4)
	}
	return maskLast4(s)
}

// maskName keeps the initial of each word.
func maskName(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		words[i] = string(runes[0]) + strings.Repeat("*", len(runes)-1)
	}
	return strings.Join(words, " ")
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// builtinMaskers returns the mask registry used by every Shield.
func builtinMaskers() map[MaskType]Masker {
	return map[MaskType]Masker{
		MaskLast4: MaskerFunc(maskLast4),
		MaskEmail: MaskerFunc(maskEmail),
		MaskCard:  MaskerFunc(maskCard),
		MaskPhone: MaskerFunc(maskPhone),
		MaskSSN:   MaskerFunc(maskSSN),
		MaskIP:    MaskerFunc(maskIP),
		MaskName:  MaskerFunc(maskName),
	}
}
