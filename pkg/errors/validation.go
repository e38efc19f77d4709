package errors

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

// DateLayout is the wire format of departure dates (ISO 8601 calendar date).
const DateLayout = "2006-01-02"

// tripIDRegex matches backend trip identifiers: numeric ids, UUIDs and slugs.
var tripIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// ValidateTripID validates a trip identifier before it is placed in a URL path.
//
// The validation rules are intentionally conservative:
//   - No empty ids
//   - Maximum length of 64 characters
//   - Letters, digits, dashes and underscores only
func ValidateTripID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidTrip, "trip id cannot be empty")
	}
	if len(id) > 64 {
		return New(ErrCodeInvalidTrip, "trip id too long (max 64 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidTrip, "trip id contains invalid control characters")
		}
	}
	if !tripIDRegex.MatchString(id) {
		return New(ErrCodeInvalidTrip, "invalid trip id: %q", id)
	}
	return nil
}

// ValidateDepartureDate validates a departure date in YYYY-MM-DD form.
func ValidateDepartureDate(date string) error {
	if date == "" {
		return New(ErrCodeInvalidDate, "departure date cannot be empty")
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return Wrap(ErrCodeInvalidDate, err, "invalid departure date %q (want YYYY-MM-DD)", date)
	}
	return nil
}

// ValidateSeatNumber validates a seat number. Backend numbering starts at 1.
func ValidateSeatNumber(n int) error {
	if n < 1 {
		return New(ErrCodeInvalidSeat, "seat number must be positive, got %d", n)
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
