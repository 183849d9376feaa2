package validate

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	reUsername = regexp.MustCompile(`^[a-z0-9._-]{3,30}$`)
	reID       = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reDocket   = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 /-]{2,40}$`)
	reDate     = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`)
	rePhone    = regexp.MustCompile(`^[0-9+][0-9 -]{7,20}$`)
)

func Username(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	return s, reUsername.MatchString(s)
}

// Password enforces a simple length window for login checks.
func Password(s string) bool {
	return len(s) >= 6 && len(s) <= 64
}

// ID validates a simple resource identifier (product/order/user ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Q trims and caps a free-text search query.
func Q(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 80 {
		s = s[:80]
	}
	return s
}

func Qty(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	if n > 10000 {
		return 10000
	} // clamp bulk inquiries
	return n
}

// Amount parses a positive money value.
func Amount(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || !d.IsPositive() {
		return decimal.Zero, false
	}
	return d, true
}

// Price parses a non-negative money value (0 = complimentary item).
func Price(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}

func Docket(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reDocket.MatchString(s)
}

// Date validates YYYY-MM-DD.
func Date(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	return s, reDate.MatchString(s)
}

func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, rePhone.MatchString(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 60 {
		return "", false
	}
	return s, true
}

// FileRef accepts an uploaded-document reference: http(s) URL or data URL.
func FileRef(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 2_000_000 {
		return "", false
	}
	ok := strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") ||
		strings.HasPrefix(s, "data:") || strings.HasPrefix(s, "/media/")
	return s, ok
}
