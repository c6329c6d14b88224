package kernel

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/daniel06264831/menuia/internal/pkg/errs"
)

const (
	minPhoneDigits = 7
	maxPhoneDigits = 15
)

// Phone is a contact number reduced to its digits, so "+52 (443) 123-4567"
// and "524431234567" identify the same customer or driver.
type Phone struct {
	digits string
}

func NewPhone(raw string) (Phone, error) {
	if strings.TrimSpace(raw) == "" {
		return Phone{}, errs.NewValueIsRequiredError("phone")
	}

	var b strings.Builder
	for _, r := range raw {
		switch {
		case unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '+' || r == '-' || r == '(' || r == ')' || r == '.' || unicode.IsSpace(r):
		default:
			return Phone{}, errs.NewValueIsInvalidErrorWithCause("phone", fmt.Errorf("unexpected character %q", r))
		}
	}

	digits := b.String()
	if len(digits) < minPhoneDigits || len(digits) > maxPhoneDigits {
		return Phone{}, errs.NewValueIsOutOfRangeError("phone digits", len(digits), minPhoneDigits, maxPhoneDigits)
	}

	return Phone{digits: digits}, nil
}

func (p Phone) String() string {
	return p.digits
}

func (p Phone) IsEmpty() bool {
	return p.digits == ""
}
