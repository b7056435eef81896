// Package sanitizer normalizes free-form values read from the booking
// backend before they reach the calendar or the API.
//
// Every function is idempotent and never fails: input that cannot be
// normalized becomes the empty string.
package sanitizer
