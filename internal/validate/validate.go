package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reQ     = regexp.MustCompile(`^[A-Za-z0-9 _'\-]{1,50}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 50 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Q validates a pet search query: trims, enforces allowed characters and max length.
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if len(s) > 50 {
		s = s[:50]
	}
	return s, reQ.MatchString(s)
}

// ID parses a positive integer route parameter (pet/request/post ids).
func ID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Age parses a non-negative whole number of years.
func Age(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 60 {
		return "", false
	}
	return s, true
}

// Password enforces a simple length window; composition rules are left to
// the registration form.
func Password(s string) bool {
	l := len(s)
	return l >= 6 && l <= 72 // bcrypt input cap
}

// RequestStatus validates the decision sent by an owner.
func RequestStatus(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s == "approved" || s == "rejected"
}

// PetStatus validates an adoption status value.
func PetStatus(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s == "available" || s == "adopted"
}

// SearchStatus validates the status filter of the search endpoint.
func SearchStatus(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "all", true
	}
	return s, s == "all" || s == "available" || s == "adopted"
}
