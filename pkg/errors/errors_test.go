package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestErrorIncludesInternal(t *testing.T) {
	internal := stdErrors.New("boom")
	err := New("TEST", "failed", 500).WithInternal(internal)

	if err.Error() != "failed: boom" {
		t.Fatalf("unexpected error string: %s", err.Error())
	}
	if !stdErrors.Is(err, internal) {
		t.Fatal("expected wrapped error to unwrap to the internal error")
	}
}

func TestWithInternalCopies(t *testing.T) {
	base := New("TEST", "test", 400)
	with := base.WithInternal(stdErrors.New("oops"))

	if with == base {
		t.Fatal("expected WithInternal to return a copy")
	}
	if base.Internal != nil {
		t.Fatal("expected original error to remain unchanged")
	}
	if with.Internal == nil {
		t.Fatal("expected internal error to be set")
	}
}

func TestCopiesMatchSentinelByCode(t *testing.T) {
	sentinel := New("SETTINGS_NOT_FOUND", "missing", 500)
	wrapped := fmt.Errorf("lookup: %w", sentinel.WithInternal(stdErrors.New("no rows")))

	if !stdErrors.Is(wrapped, sentinel) {
		t.Fatal("expected copy to match sentinel")
	}
	if stdErrors.Is(wrapped, ErrNotFound) {
		t.Fatal("expected different codes not to match")
	}
}

func TestFromError(t *testing.T) {
	appErr := ErrNotFound
	if out := FromError(appErr); out != appErr {
		t.Fatal("expected FromError to return the same AppError instance")
	}

	raw := stdErrors.New("raw")
	out := FromError(raw)
	if out.Code != ErrInternalServer.Code {
		t.Fatalf("expected internal server code, got %s", out.Code)
	}
	if out.Internal == nil {
		t.Fatal("expected internal error to be attached")
	}
	if FromError(nil) != nil {
		t.Fatal("expected nil for nil input")
	}
}

func TestNewNotFoundKeepsSentinelCode(t *testing.T) {
	err := NewNotFound("route /x not found")
	if !stdErrors.Is(err, ErrNotFound) {
		t.Fatal("expected NewNotFound to match ErrNotFound")
	}
	if ErrNotFound.Message != "Resource not found" {
		t.Fatalf("expected sentinel message to stay unchanged, got %q", ErrNotFound.Message)
	}
	if err.StatusCode != 404 {
		t.Fatalf("unexpected status: %d", err.StatusCode)
	}
}

func TestNewBadRequest(t *testing.T) {
	err := NewBadRequest("invalid payload")
	if err.Code != ErrBadRequest.Code {
		t.Fatalf("expected %s, got %s", ErrBadRequest.Code, err.Code)
	}
	if err.Message != "invalid payload" {
		t.Fatalf("unexpected message: %s", err.Message)
	}
	if err.StatusCode != ErrBadRequest.StatusCode {
		t.Fatalf("unexpected status: %d", err.StatusCode)
	}
}
