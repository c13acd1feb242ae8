package application

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrValidation           = errors.New("validation failed")
	ErrDuplicateEmail       = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUserNotFound         = errors.New("user not found")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotParticipant       = errors.New("not a participant of this conversation")
	ErrListingNotFound      = errors.New("listing not found")
	ErrNotOwner             = errors.New("only the owner can do this")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrUploadsNotConfigured = errors.New("uploads not configured")
	ErrSessionExpired       = errors.New("session expired")
)

// ValidationError reports the fields that failed validation, keyed by json field name.
// It matches ErrValidation with errors.Is.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// required returns a ValidationError naming every blank value, or nil.
// Arguments are field name and value pairs.
func required(pairs ...string) error {
	var fields map[string]string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) != "" {
			continue
		}
		if fields == nil {
			fields = map[string]string{}
		}
		fields[pairs[i]] = "is required"
	}
	if fields == nil {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func invalid(field, msg string) error {
	return &ValidationError{Fields: map[string]string{field: msg}}
}
