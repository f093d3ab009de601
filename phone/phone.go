// Package phone canonicalizes locally formatted phone numbers into the
// E.164-like form the upstream lookup service expects.
package phone

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"github.com/jmcleod/tagrelay/internal/util"
)

// DefaultDialCode is used when no dial code is configured.
const DefaultDialCode = "+62"

// ErrValidation indicates input that cannot be normalized.
var ErrValidation = errors.New("number is not defined")

var dialCodeRE = regexp.MustCompile(`^\+[0-9]{1,4}$`)

// ValidDialCode reports whether s looks like "+" followed by 1-4 digits.
func ValidDialCode(s string) bool {
	return dialCodeRE.MatchString(s)
}

// Normalize strips whitespace and dashes from raw and rewrites a trunk
// prefix "0" as dialCode. A number starting with the bare dial-code digits
// gets a "+" prepended. Anything else is returned stripped but unchanged.
func Normalize(raw, dialCode string) (string, error) {
	number := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' {
			return -1
		}
		return r
	}, util.Normalize(raw))
	if number == "" {
		return "", ErrValidation
	}

	dialCode = canonicalDialCode(dialCode)
	digits := strings.TrimPrefix(dialCode, "+")

	if strings.HasPrefix(number, "0") {
		number = dialCode + number[1:]
	}
	if digits != "" && strings.HasPrefix(number, digits) {
		number = "+" + number
	}
	return number, nil
}

func canonicalDialCode(dialCode string) string {
	dialCode = strings.TrimSpace(dialCode)
	if dialCode == "" {
		return DefaultDialCode
	}
	if !strings.HasPrefix(dialCode, "+") {
		dialCode = "+" + dialCode
	}
	return dialCode
}
