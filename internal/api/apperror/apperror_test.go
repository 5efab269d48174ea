package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestError_StatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want int
	}{
		{name: "validation", err: NewValidation("missing field"), want: http.StatusBadRequest},
		{name: "duplicate email", err: NewDuplicateEmail("exists"), want: http.StatusBadRequest},
		{name: "auth", err: NewAuth("bad credentials"), want: http.StatusUnauthorized},
		{name: "not found", err: NewNotFound("gone"), want: http.StatusNotFound},
		{name: "timeout", err: NewTimeout("slow", nil), want: http.StatusGatewayTimeout},
		{name: "internal", err: NewInternal("boom", nil), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.StatusCode(); got != tt.want {
				t.Errorf("StatusCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFrom(t *testing.T) {
	typed := NewNotFound("gone")
	if got := From(typed); got != typed {
		t.Errorf("From() did not return the typed error unchanged")
	}

	wrapped := fmt.Errorf("outer context: %w", NewAuth("bad token"))
	if got := From(wrapped); got.Kind != Auth {
		t.Errorf("From() on wrapped error: kind = %v, want Auth", got.Kind)
	}

	unknown := From(errors.New("driver exploded"))
	if unknown.Kind != Internal {
		t.Errorf("From() on unknown error: kind = %v, want Internal", unknown.Kind)
	}
	if unknown.Message != "internal server error" {
		t.Errorf("From() on unknown error leaked message %q", unknown.Message)
	}
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewDuplicateEmail("exists"))
	if !IsKind(err, DuplicateEmail) {
		t.Error("IsKind() missed a wrapped DuplicateEmail")
	}
	if IsKind(err, NotFound) {
		t.Error("IsKind() matched the wrong kind")
	}
	if IsKind(errors.New("plain"), Internal) {
		t.Error("IsKind() matched a non-application error")
	}
}
