package attendees

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrBaseURLNotConfigured is returned by every client call when no
	// attendance service URL was configured.
	ErrBaseURLNotConfigured = errors.New("attendance service base url is not configured")
)

// StatusError is returned when the attendance service answers with a non-2xx status
type StatusError struct {
	Method     string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("attendance service %s returned status %d", e.Method, e.StatusCode)
	}
	return fmt.Sprintf("attendance service %s returned status %d: %s", e.Method, e.StatusCode, e.Body)
}

// ValidationErrors maps a form field to its message
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, v[field])
	}
	return strings.Join(msgs, " ")
}
