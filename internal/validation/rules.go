package validation

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var (
	validate   = validator.New()
	phoneRegex = regexp.MustCompile(`^\+?[\d\s\-()]+$`)

	currentYear = func() int { return time.Now().Year() }
)

func length(s string) int {
	return utf8.RuneCountInString(s)
}

func checkLength(errs *Errors, field, value string, minLen, maxLen int) {
	n := length(value)
	switch {
	case n < minLen:
		errs.add(field, fmt.Sprintf("must be at least %d characters", minLen))
	case n > maxLen:
		errs.add(field, fmt.Sprintf("must be at most %d characters", maxLen))
	}
}

func isEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

func isHTTPURL(s string) bool {
	return validate.Var(s, "required,http_url") == nil
}

func isPhone(s string) bool {
	return phoneRegex.MatchString(s)
}

func checkOptionalURL(errs *Errors, field, value string) {
	if value != "" && !isHTTPURL(value) {
		errs.add(field, "must be a valid URL")
	}
}

func oneOf[T ~string](value T, allowed []T) bool {
	return slices.Contains(allowed, value)
}

func trim(s string) string {
	return strings.TrimSpace(s)
}
