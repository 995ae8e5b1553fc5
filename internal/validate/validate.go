// Package validate holds the input validation helpers shared by the resource
// services: required-field checks, identifier shape checks and the
// normalization rules for phone numbers, role keys and SKUs.
package validate

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// DefaultCountryCode prefixes national phone numbers when normalizing to
// E.164 form.
const DefaultCountryCode = "+84"

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9]{8,15}$`)
	alnumPattern = regexp.MustCompile(`[^A-Z0-9]`)
)

// FieldError lists the required fields missing from an input shape.
type FieldError struct {
	Fields []string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("required fields missing: %s", strings.Join(e.Fields, ", "))
}

// Required checks that every named value is non-empty and returns a
// *FieldError naming the offenders, or nil.
func Required(fields map[string]string) error {
	var missing []string
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return &FieldError{Fields: missing}
}

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// IsPhoneShaped reports whether the input plausibly is a phone number: an
// optional leading + followed by 8 to 15 digits, possibly written in national
// form with a leading zero.
func IsPhoneShaped(number string) bool {
	return phonePattern.MatchString(strings.TrimSpace(number))
}

// StandardPhoneNumber normalizes a phone number to E.164-style form: a
// national leading zero is replaced with the country code, a bare number
// gains the country code, and the result always starts with +.
func StandardPhoneNumber(number, countryCode string) string {
	number = strings.TrimSpace(number)
	if number == "" {
		return number
	}
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}
	countryCode = strings.TrimPrefix(countryCode, "+")

	switch {
	case strings.HasPrefix(number, "0"):
		number = countryCode + number[1:]
	case !strings.HasPrefix(number, "+"):
		number = countryCode + strings.TrimPrefix(number, countryCode)
	}
	if !strings.HasPrefix(number, "+") {
		number = "+" + number
	}
	return number
}

// ConvertRoleKey normalizes a role key to UPPER_SNAKE form.
func ConvertRoleKey(key string) string {
	return strings.ToUpper(strings.Join(strings.Fields(strings.TrimSpace(key)), "_"))
}

// GenerateSKU derives a product SKU from its name and primary category:
// both uppercased, stripped to alphanumerics, joined as CATEGORY-NAME.
func GenerateSKU(productName, categoryName string) string {
	clean := func(s string) string {
		return alnumPattern.ReplaceAllString(strings.ToUpper(s), "")
	}
	return clean(categoryName) + "-" + clean(productName)
}
