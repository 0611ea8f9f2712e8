package matchservice

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/en"
)

var ErrInvalidWindow = errors.New("invalid date window")

var windowParser = func() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	return w
}()

// ResolveWindow turns a relative expression such as "3 weeks ago" or
// "last month" into an absolute instant, measured back from base (the last
// tournament date of the season rather than the wall clock).
func ResolveWindow(expr string, base time.Time) (time.Time, error) {
	expr = normalizeWindow(expr)
	if expr == "" {
		return time.Time{}, nil
	}

	r, err := windowParser.Parse(expr, base)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrInvalidWindow, expr, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidWindow, expr)
	}
	if r.Time.After(base) {
		return time.Time{}, fmt.Errorf("%w: %q resolves after the season end", ErrInvalidWindow, expr)
	}
	return r.Time, nil
}

// normalizeWindow rewrites "last N units" into the "N units ago" form the
// english rules understand.
func normalizeWindow(expr string) string {
	expr = strings.ToLower(strings.TrimSpace(expr))
	rest, ok := strings.CutPrefix(expr, "last ")
	if !ok {
		return expr
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return expr
	}
	if !unicode.IsDigit(rune(rest[0])) {
		rest = "1 " + rest
	}
	return rest + " ago"
}
