package errs

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	e := New(KindConnection, "dial refused")
	if got := e.Error(); got != "[connection] dial refused" {
		t.Errorf("Error() = %q", got)
	}

	cause := errors.New("broken pipe")
	wrapped := Wrap(KindQuery, "list tables", cause)
	if got := wrapped.Error(); !strings.Contains(got, "broken pipe") || !strings.Contains(got, "[query]") {
		t.Errorf("Error() = %q", got)
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	wrapped := Wrap(KindConnection, "connect", cause)
	if !errors.Is(wrapped, cause) {
		t.Error("errors.Is should reach the cause through Unwrap")
	}
	if New(KindQuery, "x").Unwrap() != nil {
		t.Error("Unwrap of a cause-less error should be nil")
	}
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		err  error
		pred func(error) bool
		want bool
	}{
		{New(KindConnection, "x"), IsConnection, true},
		{New(KindUnsupportedDriver, "x"), IsUnsupportedDriver, true},
		{New(KindUnsupportedOperation, "x"), IsUnsupportedOperation, true},
		{New(KindTypeMapping, "x"), IsTypeMapping, true},
		{New(KindQuery, "x"), IsQuery, true},
		{New(KindQuery, "x"), IsConnection, false},
		{errors.New("plain"), IsQuery, false},
		{nil, IsConnection, false},
	}

	for i, tt := range tests {
		if got := tt.pred(tt.err); got != tt.want {
			t.Errorf("case %d: predicate = %v, want %v", i, got, tt.want)
		}
	}
}

func TestPredicatesThroughWrapping(t *testing.T) {
	inner := New(KindTypeMapping, "no mapping")
	outer := fmt.Errorf("columns of %q: %w", "users", inner)
	if !IsTypeMapping(outer) {
		t.Error("predicate should see through fmt.Errorf wrapping")
	}
}

func TestKindString(t *testing.T) {
	if Kind(42).String() != "unknown" {
		t.Error("out-of-range kind should stringify as unknown")
	}
	if KindUnsupportedOperation.String() != "unsupported_operation" {
		t.Error("unexpected spelling for unsupported operation")
	}
}
