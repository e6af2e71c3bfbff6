package domain

import "regexp"

// rePhone matches local phone numbers: digits only, 10 to 13 of them.
var rePhone = regexp.MustCompile(`^[0-9]{10,13}$`)

// ValidatePhone validates the phone number format.
func ValidatePhone(s string) bool {
	return rePhone.MatchString(s)
}
