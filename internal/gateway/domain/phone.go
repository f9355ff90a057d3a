package domain

import "errors"

// ErrInvalidPhone reports a phone number that does not match the documented
// local format.
var ErrInvalidPhone = errors.New("domain: invalid phone number format")

// phoneCountryCode is prefixed to every accepted local number.
const phoneCountryCode = "254"

// NormalizePhone validates a phone number in the documented local format
// and returns it with the country code prefixed.
//
// Accepted input is exactly 9 digits starting with 7 or 1 (e.g. 712345678).
// Anything else is rejected: a leading +, an input already carrying the
// country code, a leading 0, non-digits, or leading/trailing whitespace.
// The caller gets back "254" + input on success.
func NormalizePhone(phone string) (string, error) {
	if len(phone) != 9 {
		return "", ErrInvalidPhone
	}
	if phone[0] != '7' && phone[0] != '1' {
		return "", ErrInvalidPhone
	}
	for i := range len(phone) {
		if phone[i] < '0' || phone[i] > '9' {
			return "", ErrInvalidPhone
		}
	}
	return phoneCountryCode + phone, nil
}
