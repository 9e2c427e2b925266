// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{6,14}$`)

var phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")

// CleanPhone strips the separators people type into phone numbers.
func CleanPhone(phone string) string {
	return phoneSeparators.Replace(strings.TrimSpace(phone))
}

// ValidatePhone checks if a phone number is in a valid international format
// (optional + followed by 7-15 digits).
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(CleanPhone(phone))
}
