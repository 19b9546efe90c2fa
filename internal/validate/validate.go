package validate

import (
	"regexp"
	"strings"

	"intellivend/internal/domain"
)

var (
	reZIP   = regexp.MustCompile(`^[0-9]{5}(-[0-9]{4})?$`)
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reQ     = regexp.MustCompile(`^[A-Za-z0-9 _'&.,\-]{0,60}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reCode  = regexp.MustCompile(`^[0-9]{6}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 80 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Q validates a search query. An empty query is allowed and matches all.
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reQ.MatchString(s)
}

// ID validates a resource identifier (product, user and order ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reID.MatchString(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 80 {
		return "", false
	}
	return s, true
}

func Role(s string) (domain.Role, bool) {
	return domain.ParseRole(strings.ToUpper(strings.TrimSpace(s)))
}

// Rating accepts whole stars 1..5.
func Rating(n int) bool { return n >= 1 && n <= 5 }

// Price accepts positive amounts below one million.
func Price(v float64) bool { return v > 0 && v < 1_000_000 }

// Delta clamps a cart quantity change.
func Delta(n int) int { return max(-50, min(50, n)) }

func ZIP(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	return s, reZIP.MatchString(s)
}

// ResetCode checks the shape of a reset code, not its value.
func ResetCode(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reCode.MatchString(s)
}

// Text trims free text and enforces a length cap.
func Text(s string, maxLen int) (string, bool) {
	s = strings.TrimSpace(s)
	return s, len(s) <= maxLen
}
